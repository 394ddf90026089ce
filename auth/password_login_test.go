package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/apachler/thingsboard-mcp-server/core"
)

type scriptedDoer struct {
	requests  []*http.Request
	bodies    [][]byte
	responses []*http.Response
	errs      []error
	cursor    int
}

func (d *scriptedDoer) Do(req *http.Request) (*http.Response, error) {
	d.requests = append(d.requests, req)
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
	}
	d.bodies = append(d.bodies, body)

	idx := d.cursor
	if idx >= len(d.responses) {
		idx = len(d.responses) - 1
	}
	d.cursor++
	if idx < 0 {
		return nil, io.ErrUnexpectedEOF
	}
	if err := d.errs[idx]; err != nil {
		return nil, err
	}
	return d.responses[idx], nil
}

func (d *scriptedDoer) enqueue(status int, body string) {
	d.responses = append(d.responses, &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		Header:     http.Header{},
	})
	d.errs = append(d.errs, nil)
}

func newLoginSource(t *testing.T, doer *scriptedDoer) *PasswordLoginSource {
	t.Helper()

	source, err := NewPasswordLoginSource(PasswordLoginConfig{
		BaseURL:    "https://things.example.com/",
		Username:   "tenant@example.com",
		Password:   "secret",
		HTTPClient: doer,
		Now: func() time.Time {
			return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
		},
	})
	if err != nil {
		t.Fatalf("NewPasswordLoginSource returned error: %v", err)
	}
	return source
}

func TestNewPasswordLoginSourceValidation(t *testing.T) {
	testCases := []struct {
		name string
		cfg  PasswordLoginConfig
	}{
		{name: "missing base url", cfg: PasswordLoginConfig{Username: "u", Password: "p"}},
		{name: "missing username", cfg: PasswordLoginConfig{BaseURL: "https://x", Password: "p"}},
		{name: "missing password", cfg: PasswordLoginConfig{BaseURL: "https://x", Username: "u"}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if _, err := NewPasswordLoginSource(testCase.cfg); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestPasswordLoginSourceLogin(t *testing.T) {
	doer := &scriptedDoer{}
	doer.enqueue(http.StatusOK, `{"token":"jwt-token","refreshToken":"jwt-refresh"}`)

	source := newLoginSource(t, doer)

	credential, err := source.Login(context.Background())
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if credential.Token != "jwt-token" {
		t.Fatalf("expected token jwt-token, got %q", credential.Token)
	}
	if credential.RefreshToken != "jwt-refresh" {
		t.Fatalf("expected refresh token jwt-refresh, got %q", credential.RefreshToken)
	}
	if credential.IssuedAt.IsZero() {
		t.Fatal("expected issued-at timestamp")
	}

	if len(doer.requests) != 1 {
		t.Fatalf("expected one login request, got %d", len(doer.requests))
	}
	request := doer.requests[0]
	if request.Method != http.MethodPost {
		t.Fatalf("expected POST, got %s", request.Method)
	}
	if request.URL.String() != "https://things.example.com/auth/login" {
		t.Fatalf("unexpected login URL %q", request.URL.String())
	}
	if contentType := request.Header.Get("Content-Type"); contentType != "application/json" {
		t.Fatalf("unexpected content type %q", contentType)
	}

	var sent map[string]string
	if err := json.Unmarshal(doer.bodies[0], &sent); err != nil {
		t.Fatalf("decode login body: %v", err)
	}
	if sent["username"] != "tenant@example.com" || sent["password"] != "secret" {
		t.Fatalf("unexpected login body %v", sent)
	}
}

func TestPasswordLoginSourceLoginFailure(t *testing.T) {
	doer := &scriptedDoer{}
	doer.enqueue(http.StatusUnauthorized, `{"message":"Invalid username or password"}`)

	source := newLoginSource(t, doer)

	if _, err := source.Login(context.Background()); err == nil {
		t.Fatal("expected login error")
	} else if !strings.Contains(err.Error(), "Invalid username or password") {
		t.Fatalf("expected platform message in error, got %v", err)
	}
}

func TestPasswordLoginSourceMissingToken(t *testing.T) {
	doer := &scriptedDoer{}
	doer.enqueue(http.StatusOK, `{"refreshToken":"only-refresh"}`)

	source := newLoginSource(t, doer)

	if _, err := source.Login(context.Background()); err == nil {
		t.Fatal("expected missing token error")
	} else if !strings.Contains(err.Error(), "missing token") {
		t.Fatalf("expected missing token error, got %v", err)
	}
}

func TestPasswordLoginFactory(t *testing.T) {
	factory := PasswordLoginFactory(&scriptedDoer{})

	source, err := factory(core.Config{
		BaseURL:               "https://things.example.com",
		Username:              "tenant@example.com",
		Password:              "secret",
		RequestTimeoutSeconds: 5,
	})
	if err != nil {
		t.Fatalf("factory returned error: %v", err)
	}
	if source == nil {
		t.Fatal("expected token source")
	}

	if _, err := factory(core.Config{BaseURL: "https://things.example.com"}); err == nil {
		t.Fatal("expected error for incomplete config")
	}
}
