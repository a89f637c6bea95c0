package user

import (
	"context"
	"net/http"
	"net/url"

	"fintrack/internal/tokenstore"
)

// APIClient is the slice of the HTTP client the user service needs.
type APIClient interface {
	Public(ctx context.Context, method, path string, body any, out any) error
	Protected(ctx context.Context, method, path string, body any, out any) error
}

// Service maps between the API's wire shapes and the internal user types.
// One HTTP call per operation; failures propagate unchanged.
type Service struct {
	api APIClient
}

func NewService(api APIClient) *Service {
	return &Service{api: api}
}

func (s *Service) Signup(ctx context.Context, input SignupInput) (UserWithTokens, error) {
	req := signupRequest{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  input.Password,
	}

	var resp userWithTokensResponse
	if err := s.api.Public(ctx, http.MethodPost, "/users", req, &resp); err != nil {
		return UserWithTokens{}, err
	}
	return mapUserWithTokens(resp), nil
}

func (s *Service) Login(ctx context.Context, input LoginInput) (UserWithTokens, error) {
	req := loginRequest{
		Email:    input.Email,
		Password: input.Password,
	}

	var resp userWithTokensResponse
	if err := s.api.Public(ctx, http.MethodPost, "/users/login", req, &resp); err != nil {
		return UserWithTokens{}, err
	}
	return mapUserWithTokens(resp), nil
}

func (s *Service) Me(ctx context.Context) (User, error) {
	var resp userResponse
	if err := s.api.Protected(ctx, http.MethodGet, "/users/me", nil, &resp); err != nil {
		return User{}, err
	}
	return mapUser(resp), nil
}

func (s *Service) Balance(ctx context.Context, from, to string) (Balance, error) {
	query := url.Values{}
	query.Set("from", from)
	query.Set("to", to)

	var balance Balance
	if err := s.api.Protected(ctx, http.MethodGet, "/users/me/balance?"+query.Encode(), nil, &balance); err != nil {
		return Balance{}, err
	}
	return balance, nil
}

func mapUser(resp userResponse) User {
	return User{
		ID:        resp.ID,
		FirstName: resp.FirstName,
		LastName:  resp.LastName,
		Email:     resp.Email,
	}
}

func mapUserWithTokens(resp userWithTokensResponse) UserWithTokens {
	return UserWithTokens{
		User: mapUser(resp.userResponse),
		Tokens: tokenstore.TokenPair{
			AccessToken:  resp.Tokens.AccessToken,
			RefreshToken: resp.Tokens.RefreshToken,
		},
	}
}
