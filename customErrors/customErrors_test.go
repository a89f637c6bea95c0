package customErrors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status int
		code   string
	}{
		{401, ErrAuth},
		{403, ErrAccessDenied},
		{404, ErrNotFound},
		{409, ErrConflict},
		{400, ErrInvalidInput},
		{422, ErrInvalidInput},
		{500, ErrInternal},
	}

	for _, tt := range tests {
		resp := FromStatus(tt.status, "boom")
		require.Equal(t, tt.code, resp.Code)
		require.Equal(t, tt.status, resp.StatusCode)
		require.Equal(t, "boom", resp.Message)
	}

	// Empty body falls back to the status text.
	resp := FromStatus(404, "  ")
	require.Equal(t, "Not Found", resp.Message)
}

func TestIsUnauthorized(t *testing.T) {
	require.True(t, IsUnauthorized(FromStatus(401, "expired")))
	require.False(t, IsUnauthorized(FromStatus(403, "nope")))
	require.False(t, IsUnauthorized(fmt.Errorf("network down")))

	// Works through wrapping.
	wrapped := fmt.Errorf("request failed: %w", FromStatus(401, "expired"))
	require.True(t, IsUnauthorized(wrapped))
}
