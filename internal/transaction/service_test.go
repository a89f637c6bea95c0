package transaction

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fintrack/internal/httpclient"
	"fintrack/internal/tokenstore"
)

func newService(t *testing.T, handler http.Handler) *Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := httpclient.New(httpclient.Config{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
		Tokens:  tokenstore.NewInMemoryStore(),
	})
	require.NoError(t, err)
	return NewService(client)
}

func TestListBuildsQueryAndMapsUserID(t *testing.T) {
	service := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/transactions/me", r.URL.Path)
		require.Equal(t, "2024-01-01", r.URL.Query().Get("from"))
		require.Equal(t, "2024-01-31", r.URL.Query().Get("to"))

		json.NewEncoder(w).Encode([]map[string]string{
			{
				"id":      "t-1",
				"date":    "2024-01-05",
				"user_id": "u-1",
				"name":    "Salary",
				"type":    "EARNING",
				"amount":  "5000",
			},
		})
	}))

	transactions, err := service.List(context.Background(), "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	require.Equal(t, Transaction{
		ID:     "t-1",
		Date:   "2024-01-05",
		UserID: "u-1",
		Name:   "Salary",
		Type:   TypeEarning,
		Amount: "5000",
	}, transactions[0])
}

func TestCreateSendsWriteFieldsAndMapsResponse(t *testing.T) {
	service := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/transactions/me", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "Salary", req["name"])
		require.Equal(t, "2024-01-05", req["date"])
		require.Equal(t, "EARNING", req["type"])
		require.Equal(t, "5000", req["amount"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{
			"id":      "t-1",
			"date":    req["date"],
			"user_id": "u-1",
			"name":    req["name"],
			"type":    req["type"],
			"amount":  req["amount"],
		})
	}))

	created, err := service.Create(context.Background(), CreateInput{
		Name:   "Salary",
		Date:   "2024-01-05",
		Type:   TypeEarning,
		Amount: "5000",
	})
	require.NoError(t, err)
	require.Equal(t, "t-1", created.ID)
	require.Equal(t, "u-1", created.UserID)
	require.Equal(t, "5000", created.Amount)
}

func TestUpdateTargetsTransactionPath(t *testing.T) {
	service := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/transactions/me/t-1", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]string{
			"id":      "t-1",
			"date":    "2024-01-05",
			"user_id": "u-1",
			"name":    "Salary adjusted",
			"type":    "EARNING",
			"amount":  "5500",
		})
	}))

	updated, err := service.Update(context.Background(), UpdateInput{
		ID:     "t-1",
		Name:   "Salary adjusted",
		Date:   "2024-01-05",
		Type:   TypeEarning,
		Amount: "5500",
	})
	require.NoError(t, err)
	require.Equal(t, "Salary adjusted", updated.Name)
	require.Equal(t, "5500", updated.Amount)
}

func TestValidateFields(t *testing.T) {
	valid := CreateInput{Name: "Salary", Date: "2024-01-05", Type: TypeEarning, Amount: "5000"}
	require.NoError(t, valid.ValidateFields())

	tests := []struct {
		name  string
		input CreateInput
	}{
		{"empty name", CreateInput{Date: "2024-01-05", Type: TypeEarning, Amount: "5000"}},
		{"bad date", CreateInput{Name: "Salary", Date: "05/01/2024", Type: TypeEarning, Amount: "5000"}},
		{"bad type", CreateInput{Name: "Salary", Date: "2024-01-05", Type: "SALARY", Amount: "5000"}},
		{"bad amount", CreateInput{Name: "Salary", Date: "2024-01-05", Type: TypeEarning, Amount: "a lot"}},
		{"zero amount", CreateInput{Name: "Salary", Date: "2024-01-05", Type: TypeEarning, Amount: "0"}},
		{"negative amount", CreateInput{Name: "Salary", Date: "2024-01-05", Type: TypeEarning, Amount: "-10"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.input.ValidateFields())
		})
	}

	update := UpdateInput{Name: "Salary", Date: "2024-01-05", Type: TypeEarning, Amount: "5000"}
	require.Error(t, update.ValidateFields()) // missing id
	update.ID = "t-1"
	require.NoError(t, update.ValidateFields())
}
