// Package auth implements the platform login exchange backing the core
// TokenSource contract.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/apachler/thingsboard-mcp-server/core"
)

const (
	loginPath                 = "/auth/login"
	defaultLoginTimeout       = 30 * time.Second
	maxLoginResponseBodyBytes = 1 << 20 // 1 MiB
)

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type PasswordLoginConfig struct {
	BaseURL      string
	Username     string
	Password     string
	LoginTimeout time.Duration
	Now          func() time.Time
	HTTPClient   HTTPDoer
}

// PasswordLoginSource exchanges the configured identity material for a
// bearer token via POST {base}/auth/login. Each Login call is a fresh
// exchange; the platform's refreshToken is captured but a refresh is simply
// another login.
type PasswordLoginSource struct {
	cfg        PasswordLoginConfig
	httpClient HTTPDoer
}

type loginPayload struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

func NewPasswordLoginSource(cfg PasswordLoginConfig) (*PasswordLoginSource, error) {
	cfg.BaseURL = strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	cfg.Username = strings.TrimSpace(cfg.Username)
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("auth: base url is required")
	}
	if cfg.Username == "" {
		return nil, fmt.Errorf("auth: username is required")
	}
	if strings.TrimSpace(cfg.Password) == "" {
		return nil, fmt.Errorf("auth: password is required")
	}
	if cfg.LoginTimeout <= 0 {
		cfg.LoginTimeout = defaultLoginTimeout
	}
	if cfg.Now == nil {
		cfg.Now = func() time.Time {
			return time.Now().UTC()
		}
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.LoginTimeout}
	}

	return &PasswordLoginSource{
		cfg:        cfg,
		httpClient: httpClient,
	}, nil
}

// PasswordLoginFactory adapts the source onto the core builder, binding the
// login exchange to the service's resolved config. A non-nil client
// overrides the default HTTP client, which tests use.
func PasswordLoginFactory(client HTTPDoer) core.TokenSourceFactory {
	return func(cfg core.Config) (core.TokenSource, error) {
		return NewPasswordLoginSource(PasswordLoginConfig{
			BaseURL:      cfg.BaseURL,
			Username:     cfg.Username,
			Password:     cfg.Password,
			LoginTimeout: cfg.RequestTimeout(),
			HTTPClient:   client,
		})
	}
}

func (s *PasswordLoginSource) Login(ctx context.Context) (core.Credential, error) {
	if s == nil || s.httpClient == nil {
		return core.Credential{}, fmt.Errorf("auth: login source is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	body, err := json.Marshal(map[string]string{
		"username": s.cfg.Username,
		"password": s.cfg.Password,
	})
	if err != nil {
		return core.Credential{}, fmt.Errorf("auth: encode login request: %w", err)
	}

	requestCtx := ctx
	cancel := func() {}
	if s.cfg.LoginTimeout > 0 {
		requestCtx, cancel = context.WithTimeout(ctx, s.cfg.LoginTimeout)
	}
	defer cancel()

	httpReq, err := http.NewRequestWithContext(
		requestCtx,
		http.MethodPost,
		s.cfg.BaseURL+loginPath,
		bytes.NewReader(body),
	)
	if err != nil {
		return core.Credential{}, fmt.Errorf("auth: create login request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	response, err := s.httpClient.Do(httpReq)
	if err != nil {
		return core.Credential{}, fmt.Errorf("auth: login request failed: %w", err)
	}
	defer response.Body.Close()

	payloadBytes, readErr := io.ReadAll(io.LimitReader(response.Body, maxLoginResponseBodyBytes+1))
	if readErr != nil {
		return core.Credential{}, fmt.Errorf("auth: read login response: %w", readErr)
	}
	if int64(len(payloadBytes)) > maxLoginResponseBodyBytes {
		return core.Credential{}, fmt.Errorf("auth: login response exceeds %d bytes", maxLoginResponseBodyBytes)
	}
	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return core.Credential{}, fmt.Errorf(
			"auth: login endpoint error (%d): %s",
			response.StatusCode,
			describeLoginError(payloadBytes),
		)
	}

	var payload loginPayload
	if err := json.Unmarshal(payloadBytes, &payload); err != nil {
		return core.Credential{}, fmt.Errorf("auth: decode login response: %w", err)
	}
	if strings.TrimSpace(payload.Token) == "" {
		return core.Credential{}, fmt.Errorf("auth: login response missing token")
	}

	return core.Credential{
		Token:        strings.TrimSpace(payload.Token),
		RefreshToken: strings.TrimSpace(payload.RefreshToken),
		IssuedAt:     s.cfg.Now().UTC(),
	}, nil
}

func describeLoginError(body []byte) string {
	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err == nil {
		if message, ok := decoded["message"].(string); ok && strings.TrimSpace(message) != "" {
			return strings.TrimSpace(message)
		}
	}
	text := strings.TrimSpace(string(body))
	if text == "" {
		return "unknown error"
	}
	return text
}

var _ core.TokenSource = (*PasswordLoginSource)(nil)
