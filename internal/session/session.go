package session

import (
	"context"
	"sync"

	"fintrack/internal/tokenstore"
	"fintrack/internal/user"
	"fintrack/logging"
)

type State string

const (
	StateValidating    State = "validating"
	StateAuthenticated State = "authenticated"
	StateAnonymous     State = "anonymous"
)

type UserAPI interface {
	Signup(ctx context.Context, input user.SignupInput) (user.UserWithTokens, error)
	Login(ctx context.Context, input user.LoginInput) (user.UserWithTokens, error)
	Me(ctx context.Context) (user.User, error)
}

// Session owns the current-user value and the login/signup/logout
// transitions. It starts in StateValidating until Validate has checked any
// persisted tokens. Tokens themselves live only in the Token Store.
type Session struct {
	mu      sync.RWMutex
	state   State
	current user.User
	hasUser bool

	tokens tokenstore.Store
	users  UserAPI
}

func New(tokens tokenstore.Store, users UserAPI) *Session {
	return &Session{
		state:  StateValidating,
		tokens: tokens,
		users:  users,
	}
}

// Validate resolves the startup state: an empty Token Store goes straight to
// anonymous without touching the network; otherwise the persisted tokens are
// checked against the current-user endpoint.
func (s *Session) Validate(ctx context.Context) {
	_, present, err := s.tokens.Load()
	if err != nil {
		logging.Logger.Warnf("failed to load persisted tokens: %v", err)
		s.setAnonymous()
		return
	}
	if !present {
		s.setAnonymous()
		return
	}

	current, err := s.users.Me(ctx)
	if err != nil {
		logging.Logger.Warnf("persisted tokens rejected, clearing session: %v", err)
		if clearErr := s.tokens.Clear(); clearErr != nil {
			logging.Logger.Errorf("failed to clear token store: %v", clearErr)
		}
		s.setAnonymous()
		return
	}
	s.setUser(current)
}

func (s *Session) Signup(ctx context.Context, input user.SignupInput) (user.User, error) {
	if err := input.ValidateFields(); err != nil {
		return user.User{}, err
	}

	result, err := s.users.Signup(ctx, input)
	if err != nil {
		return user.User{}, err
	}
	if err := s.tokens.Save(result.Tokens); err != nil {
		return user.User{}, err
	}
	s.setUser(result.User)
	return result.User, nil
}

func (s *Session) Login(ctx context.Context, input user.LoginInput) (user.User, error) {
	if err := input.ValidateFields(); err != nil {
		return user.User{}, err
	}

	result, err := s.users.Login(ctx, input)
	if err != nil {
		return user.User{}, err
	}
	if err := s.tokens.Save(result.Tokens); err != nil {
		return user.User{}, err
	}
	s.setUser(result.User)
	return result.User, nil
}

func (s *Session) Logout() {
	if err := s.tokens.Clear(); err != nil {
		logging.Logger.Errorf("failed to clear token store: %v", err)
	}
	s.setAnonymous()
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) User() (user.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.hasUser
}

func (s *Session) setUser(current user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = current
	s.hasUser = true
	s.state = StateAuthenticated
}

func (s *Session) setAnonymous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = user.User{}
	s.hasUser = false
	s.state = StateAnonymous
}
