package core

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestNewHTTPStatusError(t *testing.T) {
	err := NewHTTPStatusError(http.StatusUnauthorized, []byte(`{"message":"Token has expired"}`))
	if err.Category != goerrors.CategoryAuth {
		t.Fatalf("401 must map to the auth category, got %v", err.Category)
	}
	if err.Code != http.StatusUnauthorized {
		t.Fatalf("expected code 401, got %d", err.Code)
	}
	if err.TextCode != DispatchErrorHTTPStatus {
		t.Fatalf("expected %s, got %s", DispatchErrorHTTPStatus, err.TextCode)
	}

	other := NewHTTPStatusError(http.StatusBadGateway, nil)
	if other.Category != goerrors.CategoryExternal {
		t.Fatalf("non-401 must map to the external category, got %v", other.Category)
	}
}

func TestDetailStringIncludesResponseBody(t *testing.T) {
	err := NewHTTPStatusError(http.StatusInternalServerError, []byte(`  {"message":"boom"}  `))
	detail := DetailString(err)
	if !strings.Contains(detail, `{"message":"boom"}`) {
		t.Fatalf("expected body in detail, got %q", detail)
	}
	if !strings.Contains(detail, "platform returned status") {
		t.Fatalf("expected status message in detail, got %q", detail)
	}

	plain := errors.New("dial tcp: connection refused")
	if DetailString(plain) != plain.Error() {
		t.Fatalf("plain errors pass through, got %q", DetailString(plain))
	}
	if DetailString(nil) != "" {
		t.Fatal("nil error yields empty detail")
	}
}

func TestDispatchErrorMapperCategorization(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		textCode string
	}{
		{"login failure", errors.New("login exchange rejected"), DispatchErrorAuthFailed},
		{"unsupported method", errors.New("unsupported HTTP method: PATCH"), DispatchErrorMethodUnsupported},
		{"connection failure", errors.New("dial tcp 10.0.0.1:443: i/o timeout"), DispatchErrorTransportFailed},
		{"missing input", errors.New("endpoint is required"), DispatchErrorBadInput},
	}
	for _, tc := range tests {
		mapped := dispatchErrorMapper(tc.err)
		if mapped == nil {
			t.Fatalf("%s: expected mapped error", tc.name)
		}
		if mapped.TextCode != tc.textCode {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.textCode, mapped.TextCode)
		}
		if mapped.Code == 0 {
			t.Fatalf("%s: expected http code assigned", tc.name)
		}
	}

	if dispatchErrorMapper(nil) != nil {
		t.Fatal("nil error maps to nil")
	}
}

func TestDispatchErrorMapperPreservesRichErrors(t *testing.T) {
	original := goerrors.New("already mapped", goerrors.CategoryOperation).
		WithTextCode(DispatchErrorMethodUnsupported)
	mapped := dispatchErrorMapper(original)
	if mapped.TextCode != DispatchErrorMethodUnsupported {
		t.Fatalf("expected text code preserved, got %s", mapped.TextCode)
	}
	if mapped.Code != http.StatusInternalServerError {
		t.Fatalf("expected envelope to fill code, got %d", mapped.Code)
	}
}
