package inbound

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/apachler/thingsboard-mcp-server/core"
	"github.com/apachler/thingsboard-mcp-server/toolkit"
)

const maxInvokeBodyBytes = 4 << 20 // 4 MiB

// HTTPServer serves the tool catalog over plain HTTP:
//
//	GET  /tools         catalog of tool specs
//	POST /tools/{name}  invoke one tool with a JSON argument object
type HTTPServer struct {
	registry *toolkit.Registry
	logger   core.Logger
	server   *http.Server
}

func NewHTTPServer(addr string, registry *toolkit.Registry, logger core.Logger) (*HTTPServer, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, fmt.Errorf("inbound: listen address is required")
	}
	if registry == nil {
		return nil, fmt.Errorf("inbound: tool registry is required")
	}

	surface := &HTTPServer{
		registry: registry,
		logger:   logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/tools", surface.handleCatalog)
	mux.HandleFunc("/tools/", surface.handleInvoke)

	surface.server = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return surface, nil
}

// Serve blocks until the listener fails or Shutdown is called.
func (s *HTTPServer) Serve() error {
	if s.logger != nil {
		s.logger.Info("http surface listening", "addr", s.server.Addr)
	}
	err := s.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{
			"error": "method not allowed",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"tools": s.registry.Specs(),
	})
}

func (s *HTTPServer) handleInvoke(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{
			"error": "method not allowed",
		})
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/tools/")
	name = strings.Trim(name, "/")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": "tool name is required",
		})
		return
	}

	args := map[string]any{}
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxInvokeBodyBytes))
	if err := decoder.Decode(&args); err != nil && err.Error() != "EOF" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": "invalid JSON body: " + err.Error(),
		})
		return
	}

	result, err := s.registry.Invoke(r.Context(), name, args)
	if err != nil {
		status := http.StatusBadRequest
		if _, exists := s.registry.Get(name); !exists {
			status = http.StatusNotFound
		}
		if s.logger != nil {
			s.logger.Error("tool invocation failed", "tool", name, "error", err)
		}
		writeJSON(w, status, map[string]any{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"tool":   name,
		"result": result,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
