package tokenstore

// TokenPair is the pair of opaque bearer credentials issued by the API.
// The access token authenticates protected requests, the refresh token is
// exchanged for a new pair when the access token expires.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Store persists the current token pair. Save overwrites any existing pair,
// Load reports whether a pair is present, Clear removes it and is idempotent.
type Store interface {
	Save(pair TokenPair) error
	Load() (TokenPair, bool, error)
	Clear() error
}
