package inbound

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/apachler/thingsboard-mcp-server/core"
	"github.com/apachler/thingsboard-mcp-server/toolkit"
)

const maxStdioLineBytes = 4 << 20 // 4 MiB

type stdioRequest struct {
	Tool      string         `json:"tool"`
	Arguments map[string]any `json:"arguments"`
}

type stdioResponse struct {
	Tool   string `json:"tool,omitempty"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// StdioServer reads one JSON request per line and writes one JSON response
// per line. Malformed lines produce an error response instead of ending
// the session.
type StdioServer struct {
	registry *toolkit.Registry
	logger   core.Logger
	input    io.Reader
	output   io.Writer
}

func NewStdioServer(
	input io.Reader,
	output io.Writer,
	registry *toolkit.Registry,
	logger core.Logger,
) (*StdioServer, error) {
	if input == nil || output == nil {
		return nil, fmt.Errorf("inbound: input and output streams are required")
	}
	if registry == nil {
		return nil, fmt.Errorf("inbound: tool registry is required")
	}
	return &StdioServer{
		registry: registry,
		logger:   logger,
		input:    input,
		output:   output,
	}, nil
}

// Serve processes lines until EOF or context cancellation.
func (s *StdioServer) Serve(ctx context.Context) error {
	scanner := bufio.NewScanner(s.input)
	scanner.Buffer(make([]byte, 64*1024), maxStdioLineBytes)
	encoder := json.NewEncoder(s.output)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var request stdioRequest
		if err := json.Unmarshal([]byte(line), &request); err != nil {
			if encodeErr := encoder.Encode(stdioResponse{
				Error: "invalid JSON request: " + err.Error(),
			}); encodeErr != nil {
				return encodeErr
			}
			continue
		}
		if strings.TrimSpace(request.Tool) == "" {
			if encodeErr := encoder.Encode(stdioResponse{
				Error: "tool name is required",
			}); encodeErr != nil {
				return encodeErr
			}
			continue
		}

		result, err := s.registry.Invoke(ctx, request.Tool, request.Arguments)
		response := stdioResponse{Tool: request.Tool, Result: result}
		if err != nil {
			if s.logger != nil {
				s.logger.Error("tool invocation failed", "tool", request.Tool, "error", err)
			}
			response = stdioResponse{Tool: request.Tool, Error: err.Error()}
		}
		if encodeErr := encoder.Encode(response); encodeErr != nil {
			return encodeErr
		}
	}
	return scanner.Err()
}
