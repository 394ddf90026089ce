package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"

	"github.com/apachler/thingsboard-mcp-server/core"
)

// DispatchService is the mutating slice of the core service the command
// handlers need.
type DispatchService interface {
	Dispatch(ctx context.Context, spec core.RequestSpec, confirmed bool) (core.Outcome, error)
	DispatchConfirmed(ctx context.Context, spec core.RequestSpec) (core.Outcome, error)
}

// ActivityMaintenanceService prunes the dispatch activity ledger.
type ActivityMaintenanceService interface {
	Prune(ctx context.Context, policy core.ActivityRetentionPolicy) (int, error)
}

type ExecuteDispatchCommand struct {
	service DispatchService
}

func NewExecuteDispatchCommand(service DispatchService) *ExecuteDispatchCommand {
	return &ExecuteDispatchCommand{service: service}
}

func (c *ExecuteDispatchCommand) Execute(ctx context.Context, msg ExecuteDispatchMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: dispatch service is required")
	}
	out, err := c.service.Dispatch(ctx, msg.Spec, msg.Confirmed)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type ExecuteConfirmedCommand struct {
	service DispatchService
}

func NewExecuteConfirmedCommand(service DispatchService) *ExecuteConfirmedCommand {
	return &ExecuteConfirmedCommand{service: service}
}

func (c *ExecuteConfirmedCommand) Execute(ctx context.Context, msg ExecuteConfirmedMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: dispatch service is required")
	}
	out, err := c.service.DispatchConfirmed(ctx, msg.Spec())
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type PruneActivityCommand struct {
	service ActivityMaintenanceService
	policy  core.ActivityRetentionPolicy
}

func NewPruneActivityCommand(
	service ActivityMaintenanceService,
	policy core.ActivityRetentionPolicy,
) *PruneActivityCommand {
	return &PruneActivityCommand{service: service, policy: policy}
}

func (c *PruneActivityCommand) Execute(ctx context.Context, msg PruneActivityMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: activity maintenance service is required")
	}
	deleted, err := c.service.Prune(ctx, c.policy)
	if err != nil {
		return err
	}
	storeResult(ctx, deleted)
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
