package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	appErrors "fintrack/customErrors"
	"fintrack/internal/contextutil"
	"fintrack/internal/tokenstore"
	"fintrack/logging"
)

// RefreshPath is the token refresh endpoint. A 401 from this path is
// terminal: it is never answered with another refresh attempt.
const RefreshPath = "/users/refresh-token"

const defaultTimeout = 30 * time.Second

// Client wraps outbound requests to the finance API. Public requests carry
// no credentials; Protected requests attach the stored access token and run
// the single-refresh-single-retry protocol on 401.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     tokenstore.Store

	// refreshing coalesces concurrent token refreshes so that at most one
	// refresh call is in flight per session.
	refreshing singleflight.Group
}

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	Tokens     tokenstore.Store
	HTTPClient *http.Client
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if cfg.Tokens == nil {
		return nil, fmt.Errorf("token store is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
		tokens:     cfg.Tokens,
	}, nil
}

// Public sends a request without credentials. Failures propagate unchanged.
func (c *Client) Public(ctx context.Context, method, path string, body any, out any) error {
	payload, err := marshalBody(body)
	if err != nil {
		return err
	}
	return c.send(ctx, method, path, payload, "", out)
}

// Protected sends a request with the stored access token attached. When the
// server answers 401 and a refresh token is available, the client exchanges
// it for a new pair and resends the original request exactly once; the
// outcome of that resend is returned as-is.
func (c *Client) Protected(ctx context.Context, method, path string, body any, out any) error {
	payload, err := marshalBody(body)
	if err != nil {
		return err
	}

	pair, present, err := c.tokens.Load()
	if err != nil {
		return fmt.Errorf("failed to load tokens: %w", err)
	}

	// Absent token still goes out; the server decides with a 401.
	sendErr := c.send(ctx, method, path, payload, pair.AccessToken, out)
	if sendErr == nil {
		return nil
	}
	if !appErrors.IsUnauthorized(sendErr) {
		return sendErr
	}
	if !present || pair.RefreshToken == "" {
		return sendErr
	}
	if strings.Contains(path, RefreshPath) {
		return sendErr
	}

	newPair, refreshErr := c.refresh(ctx, pair.RefreshToken)
	if refreshErr != nil {
		logging.Logger.Warnf("token refresh failed, clearing session: %v", refreshErr)
		if clearErr := c.tokens.Clear(); clearErr != nil {
			logging.Logger.Errorf("failed to clear token store: %v", clearErr)
		}
		return sendErr
	}

	// The retry budget is one: whatever this send returns goes back to the
	// caller, 401 included.
	return c.send(ctx, method, path, payload, newPair.AccessToken, out)
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (c *Client) refresh(ctx context.Context, refreshToken string) (tokenstore.TokenPair, error) {
	v, err, _ := c.refreshing.Do("refresh", func() (interface{}, error) {
		payload, err := json.Marshal(refreshRequest{RefreshToken: refreshToken})
		if err != nil {
			return nil, fmt.Errorf("failed to encode refresh request: %w", err)
		}

		var pair tokenstore.TokenPair
		if err := c.send(ctx, http.MethodPost, RefreshPath, payload, "", &pair); err != nil {
			return nil, err
		}

		// The new pair must be persisted before any waiter retries with it.
		if err := c.tokens.Save(pair); err != nil {
			return nil, fmt.Errorf("failed to save refreshed tokens: %w", err)
		}
		return pair, nil
	})
	if err != nil {
		return tokenstore.TokenPair{}, err
	}
	return v.(tokenstore.TokenPair), nil
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte, accessToken string, out any) error {
	ctx, traceID := contextutil.EnsureTraceID(ctx)

	var body io.Reader = http.NoBody
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", traceID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logging.Logger.Debugf("request %s %s returned %d, traceID: %s", method, path, resp.StatusCode, traceID)
		return appErrors.FromStatus(resp.StatusCode, string(respBody))
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response of %s %s: %w", method, path, err)
		}
	}
	return nil
}

func marshalBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return payload, nil
}
