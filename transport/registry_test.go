package transport

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/apachler/thingsboard-mcp-server/core"
)

func TestDefaultRegistry(t *testing.T) {
	registry := NewDefaultRegistry()

	rest, ok := registry.Get(KindREST)
	if !ok || rest.Kind() != KindREST {
		t.Fatal("expected rest adapter registered")
	}

	capture, err := registry.Build(KindCapture, nil)
	if err != nil {
		t.Fatalf("build capture: %v", err)
	}
	if capture.Kind() != KindCapture {
		t.Fatalf("expected capture adapter, got %q", capture.Kind())
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(NewRESTAdapter(nil)); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := registry.Register(NewRESTAdapter(nil)); err == nil {
		t.Fatal("expected duplicate rejection")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatal("expected nil adapter rejection")
	}
}

func TestRegistryBuildUnknownKind(t *testing.T) {
	registry := NewRegistry()
	if _, err := registry.Build("grpc", nil); err == nil {
		t.Fatal("expected error for unregistered kind")
	}
}

func TestRegistryKindNormalization(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(NewRESTAdapter(nil)); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, ok := registry.Get("  REST  "); !ok {
		t.Fatal("expected case-insensitive lookup")
	}
}

func TestRegistryList(t *testing.T) {
	registry := NewDefaultRegistry()
	adapters := registry.List()
	if len(adapters) != 1 {
		t.Fatalf("expected one eagerly registered adapter, got %d", len(adapters))
	}
	if adapters[0].Kind() != KindREST {
		t.Fatalf("unexpected adapter %q", adapters[0].Kind())
	}
}

func TestCaptureAdapterScriptedReplay(t *testing.T) {
	adapter := NewCaptureAdapter()
	adapter.Enqueue(core.TransportResponse{StatusCode: http.StatusUnauthorized}, nil)
	adapter.Enqueue(core.TransportResponse{StatusCode: http.StatusOK, Body: []byte(`{"id":"abc"}`)}, nil)
	adapter.Enqueue(core.TransportResponse{}, errors.New("scripted failure"))

	first, err := adapter.Do(context.Background(), core.TransportRequest{Method: "GET", URL: "device/abc"})
	if err != nil || first.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected first step: %v %v", first, err)
	}
	second, err := adapter.Do(context.Background(), core.TransportRequest{Method: "GET", URL: "device/abc"})
	if err != nil || second.StatusCode != http.StatusOK {
		t.Fatalf("unexpected second step: %v %v", second, err)
	}
	if _, err := adapter.Do(context.Background(), core.TransportRequest{}); err == nil {
		t.Fatal("expected scripted failure")
	}

	// Past the script, the last step repeats.
	if _, err := adapter.Do(context.Background(), core.TransportRequest{}); err == nil {
		t.Fatal("expected repeated last step")
	}

	if adapter.CallCount() != 4 {
		t.Fatalf("expected 4 recorded calls, got %d", adapter.CallCount())
	}
	if len(adapter.Requests()) != 4 {
		t.Fatalf("expected 4 recorded requests")
	}
}

func TestCaptureAdapterDefaultsToOK(t *testing.T) {
	adapter := NewCaptureAdapter()
	response, err := adapter.Do(context.Background(), core.TransportRequest{Method: "GET", URL: "device/abc"})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if response.StatusCode != http.StatusOK || string(response.Body) != "{}" {
		t.Fatalf("unexpected default response %+v", response)
	}
}
