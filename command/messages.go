package command

import (
	"fmt"
	"strings"

	"github.com/apachler/thingsboard-mcp-server/core"
)

const (
	TypeExecuteDispatch  = "dispatch.command.execute"
	TypeExecuteConfirmed = "dispatch.command.execute_confirmed"
	TypePruneActivity    = "dispatch.command.activity.prune"
)

// ExecuteDispatchMessage runs one request through the full dispatch
// pipeline, gate included.
type ExecuteDispatchMessage struct {
	Spec      core.RequestSpec
	Confirmed bool
}

func (ExecuteDispatchMessage) Type() string { return TypeExecuteDispatch }

func (m ExecuteDispatchMessage) Validate() error {
	if strings.TrimSpace(m.Spec.Method) == "" {
		return fmt.Errorf("command: method is required")
	}
	if strings.TrimSpace(m.Spec.Endpoint) == "" {
		return fmt.Errorf("command: endpoint is required")
	}
	return nil
}

// ExecuteConfirmedMessage builds a spec from loose fields and dispatches it
// pre-confirmed. It is the replay path for a previously issued descriptor.
type ExecuteConfirmedMessage struct {
	Method   string
	Endpoint string
	Params   core.Params
	JSONData core.Params
}

func (ExecuteConfirmedMessage) Type() string { return TypeExecuteConfirmed }

func (m ExecuteConfirmedMessage) Validate() error {
	if strings.TrimSpace(m.Method) == "" {
		return fmt.Errorf("command: method is required")
	}
	if strings.TrimSpace(m.Endpoint) == "" {
		return fmt.Errorf("command: endpoint is required")
	}
	return nil
}

func (m ExecuteConfirmedMessage) Spec() core.RequestSpec {
	return core.NewRequestSpec(m.Method, m.Endpoint, m.Params, m.JSONData)
}

// PruneActivityMessage triggers one retention sweep over the activity
// ledger.
type PruneActivityMessage struct{}

func (PruneActivityMessage) Type() string { return TypePruneActivity }

func (PruneActivityMessage) Validate() error { return nil }
