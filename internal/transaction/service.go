package transaction

import (
	"context"
	"net/http"
	"net/url"
)

// APIClient is the slice of the HTTP client the transaction service needs.
type APIClient interface {
	Protected(ctx context.Context, method, path string, body any, out any) error
}

// Service maps between the API's wire shapes and the internal transaction
// types. One HTTP call per operation; failures propagate unchanged.
type Service struct {
	api APIClient
}

func NewService(api APIClient) *Service {
	return &Service{api: api}
}

func (s *Service) List(ctx context.Context, from, to string) ([]Transaction, error) {
	query := url.Values{}
	query.Set("from", from)
	query.Set("to", to)

	var resp []transactionResponse
	if err := s.api.Protected(ctx, http.MethodGet, "/transactions/me?"+query.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	transactions := make([]Transaction, 0, len(resp))
	for _, item := range resp {
		transactions = append(transactions, mapTransaction(item))
	}
	return transactions, nil
}

func (s *Service) Create(ctx context.Context, input CreateInput) (Transaction, error) {
	req := writeRequest{
		Name:   input.Name,
		Date:   input.Date,
		Type:   input.Type,
		Amount: input.Amount,
	}

	var resp transactionResponse
	if err := s.api.Protected(ctx, http.MethodPost, "/transactions/me", req, &resp); err != nil {
		return Transaction{}, err
	}
	return mapTransaction(resp), nil
}

func (s *Service) Update(ctx context.Context, input UpdateInput) (Transaction, error) {
	req := writeRequest{
		Name:   input.Name,
		Date:   input.Date,
		Type:   input.Type,
		Amount: input.Amount,
	}

	var resp transactionResponse
	if err := s.api.Protected(ctx, http.MethodPatch, "/transactions/me/"+input.ID, req, &resp); err != nil {
		return Transaction{}, err
	}
	return mapTransaction(resp), nil
}

func mapTransaction(resp transactionResponse) Transaction {
	return Transaction{
		ID:     resp.ID,
		Date:   resp.Date,
		UserID: resp.UserID,
		Name:   resp.Name,
		Type:   resp.Type,
		Amount: resp.Amount,
	}
}
