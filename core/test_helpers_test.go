package core

import (
	"context"
	"fmt"
	"sync"
	"testing"
)

type scriptedTokenSource struct {
	mu     sync.Mutex
	logins int
	tokens []string
	err    error
}

func (s *scriptedTokenSource) Login(context.Context) (Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logins++
	if s.err != nil {
		return Credential{}, s.err
	}
	token := fmt.Sprintf("token-%d", s.logins)
	if len(s.tokens) > 0 {
		index := s.logins - 1
		if index >= len(s.tokens) {
			index = len(s.tokens) - 1
		}
		token = s.tokens[index]
	}
	return Credential{Token: token, RefreshToken: "refresh-" + token}, nil
}

func (s *scriptedTokenSource) loginCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logins
}

type scriptedTransport struct {
	mu        sync.Mutex
	calls     int
	requests  []TransportRequest
	responses []TransportResponse
	errs      []error
}

func (t *scriptedTransport) Kind() string { return "scripted" }

func (t *scriptedTransport) Do(_ context.Context, req TransportRequest) (TransportResponse, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	index := t.calls
	t.calls++
	t.requests = append(t.requests, req)
	if index < len(t.errs) && t.errs[index] != nil {
		return TransportResponse{}, t.errs[index]
	}
	if index < len(t.responses) {
		return t.responses[index], nil
	}
	if len(t.responses) > 0 {
		return t.responses[len(t.responses)-1], nil
	}
	return TransportResponse{StatusCode: 200, Body: []byte(`{}`)}, nil
}

func (t *scriptedTransport) callCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls
}

func (t *scriptedTransport) request(index int) TransportRequest {
	t.mu.Lock()
	defer t.mu.Unlock()
	if index < 0 || index >= len(t.requests) {
		return TransportRequest{}
	}
	return t.requests[index]
}

type memoryActivitySink struct {
	mu      sync.Mutex
	entries []DispatchActivityEntry
}

func (s *memoryActivitySink) Record(_ context.Context, entry DispatchActivityEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *memoryActivitySink) List(_ context.Context, filter DispatchActivityFilter) (DispatchActivityPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := []DispatchActivityEntry{}
	for _, entry := range s.entries {
		if filter.Status != "" && entry.Status != filter.Status {
			continue
		}
		if filter.Method != "" && entry.Method != filter.Method {
			continue
		}
		items = append(items, entry)
	}
	return DispatchActivityPage{Items: items, Page: 1, PerPage: len(items), Total: len(items)}, nil
}

func (s *memoryActivitySink) recorded() []DispatchActivityEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]DispatchActivityEntry(nil), s.entries...)
}

func testConfig() Config {
	return Config{
		ServiceName:           "thingsboard-mcp",
		BaseURL:               "https://tb.example.com/api",
		Username:              "tenant@example.com",
		Password:              "secret",
		Transport:             "stdio",
		RequestTimeoutSeconds: 5,
	}
}

func newTestService(t *testing.T, transport TransportAdapter, source TokenSource, extra ...Option) *Service {
	t.Helper()
	options := append([]Option{
		WithTransportAdapter(transport),
		WithTokenSource(source),
	}, extra...)
	service, err := NewService(testConfig(), options...)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return service
}
