package transport

import (
	"context"
	"net/http"
	"sync"

	goerrors "github.com/goliatone/go-errors"

	"github.com/apachler/thingsboard-mcp-server/core"
)

const KindCapture = "capture"

// CaptureAdapter records every request and replays scripted responses in
// order, repeating the last one once the script runs out. It backs dry runs
// and tests that assert on call counts without a live platform.
type CaptureAdapter struct {
	mu        sync.Mutex
	requests  []core.TransportRequest
	responses []core.TransportResponse
	errs      []error
	cursor    int
}

func NewCaptureAdapter() *CaptureAdapter {
	return &CaptureAdapter{}
}

func (*CaptureAdapter) Kind() string {
	return KindCapture
}

// Enqueue appends one scripted step: a response, or an error when err is
// non-nil.
func (a *CaptureAdapter) Enqueue(response core.TransportResponse, err error) {
	if a == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responses = append(a.responses, response)
	a.errs = append(a.errs, err)
}

func (a *CaptureAdapter) Do(ctx context.Context, req core.TransportRequest) (core.TransportResponse, error) {
	if a == nil {
		return core.TransportResponse{}, transportError(
			"transport: capture adapter is nil",
			goerrors.CategoryInternal,
			http.StatusInternalServerError,
			map[string]any{"adapter": KindCapture},
		)
	}
	if ctx != nil {
		select {
		case <-ctx.Done():
			return core.TransportResponse{}, ctx.Err()
		default:
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.requests = append(a.requests, req)
	if len(a.responses) == 0 {
		return core.TransportResponse{StatusCode: http.StatusOK, Body: []byte("{}")}, nil
	}
	index := a.cursor
	if index >= len(a.responses) {
		index = len(a.responses) - 1
	}
	a.cursor++
	if a.errs[index] != nil {
		return core.TransportResponse{}, a.errs[index]
	}
	return a.responses[index], nil
}

// Requests returns a copy of everything sent through the adapter.
func (a *CaptureAdapter) Requests() []core.TransportRequest {
	if a == nil {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]core.TransportRequest, len(a.requests))
	copy(out, a.requests)
	return out
}

func (a *CaptureAdapter) CallCount() int {
	if a == nil {
		return 0
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.requests)
}

var _ core.TransportAdapter = (*CaptureAdapter)(nil)
