package authgw

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/aurumlab/goldtrade/internal/domain/model"
)

// ErrInvalidCredential indicates the auth service rejected the credential.
var ErrInvalidCredential = errors.New("invalid credential")

// Client resolves a bearer credential to a user identity. The credential is
// opaque to this service; only the auth service inspects it.
type Client interface {
	Validate(ctx context.Context, credential string) (*model.Identity, error)
}

// HTTPClient implements Client against the auth service's HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// response mirrors the auth service's validation payload.
type response struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// NewHTTPClient creates an auth gateway client with a default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse auth service url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("auth service url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}, nil
}

// Validate asks the auth service to resolve the credential.
func (c *HTTPClient) Validate(ctx context.Context, credential string) (*model.Identity, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/auth/validate")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+credential)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var payload response
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("decode auth response: %w", err)
		}
		return &model.Identity{UserID: payload.UserID, Username: payload.Username}, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrInvalidCredential
	default:
		c.logger.Error("auth service returned unexpected status", slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("auth service status %d", resp.StatusCode)
	}
}
