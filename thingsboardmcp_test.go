package thingsboardmcp

import (
	"context"
	"testing"

	"github.com/apachler/thingsboard-mcp-server/core"
	"github.com/apachler/thingsboard-mcp-server/transport"
)

type staticTokenSource struct{}

func (staticTokenSource) Login(context.Context) (core.Credential, error) {
	return core.Credential{Token: "token-1", RefreshToken: "refresh-1"}, nil
}

func TestNewResolvesRESTTransportFromRegistry(t *testing.T) {
	service, err := New(Config{
		BaseURL:  "https://tb.example.com/api",
		Username: "tenant@example.com",
		Password: "secret",
	}, WithTokenSource(staticTokenSource{}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	adapter := service.Dependencies().Transport
	if adapter == nil {
		t.Fatalf("expected a transport adapter from the default registry")
	}
	if adapter.Kind() != transport.KindREST {
		t.Fatalf("expected the rest adapter, got %q", adapter.Kind())
	}
}

func TestNewHonorsExplicitTransportAdapter(t *testing.T) {
	capture := transport.NewCaptureAdapter()
	service, err := New(Config{
		BaseURL:  "https://tb.example.com/api",
		Username: "tenant@example.com",
		Password: "secret",
	},
		WithTokenSource(staticTokenSource{}),
		WithTransportAdapter(capture),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if service.Dependencies().Transport.Kind() != transport.KindCapture {
		t.Fatalf("expected the capture adapter, got %q", service.Dependencies().Transport.Kind())
	}
}
