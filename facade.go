package thingsboardmcp

import (
	"fmt"

	"github.com/apachler/thingsboard-mcp-server/command"
	"github.com/apachler/thingsboard-mcp-server/core"
	"github.com/apachler/thingsboard-mcp-server/query"
)

// CommandQueryService is the slice of the dispatch service the command and
// query handlers depend on.
type CommandQueryService interface {
	command.DispatchService
	query.ResourceReader
}

type Commands struct {
	ExecuteDispatch  *command.ExecuteDispatchCommand
	ExecuteConfirmed *command.ExecuteConfirmedCommand
	PruneActivity    *command.PruneActivityCommand
}

type Queries struct {
	FetchResource        *query.FetchResourceQuery
	ListDispatchActivity *query.ListDispatchActivityQuery
}

type Facade struct {
	service  CommandQueryService
	commands Commands
	queries  Queries
}

type FacadeOption func(*facadeOptions)

type facadeOptions struct {
	activityReader  query.DispatchActivityReader
	maintenance     command.ActivityMaintenanceService
	retentionPolicy core.ActivityRetentionPolicy
}

func WithActivityReader(reader query.DispatchActivityReader) FacadeOption {
	return func(options *facadeOptions) {
		options.activityReader = reader
	}
}

func WithActivityMaintenance(
	service command.ActivityMaintenanceService,
	policy core.ActivityRetentionPolicy,
) FacadeOption {
	return func(options *facadeOptions) {
		options.maintenance = service
		options.retentionPolicy = policy
	}
}

func NewFacade(service CommandQueryService, opts ...FacadeOption) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("thingsboardmcp: command/query service is required")
	}
	cfg := facadeOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	reader := cfg.activityReader
	if reader == nil {
		reader = resolveActivityReader(service)
	}

	facade := &Facade{service: service}
	facade.commands = Commands{
		ExecuteDispatch:  command.NewExecuteDispatchCommand(service),
		ExecuteConfirmed: command.NewExecuteConfirmedCommand(service),
	}
	if cfg.maintenance != nil {
		facade.commands.PruneActivity = command.NewPruneActivityCommand(cfg.maintenance, cfg.retentionPolicy)
	}
	facade.queries = Queries{
		FetchResource:        query.NewFetchResourceQuery(service),
		ListDispatchActivity: query.NewListDispatchActivityQuery(reader),
	}

	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Service() CommandQueryService {
	if f == nil {
		return nil
	}
	return f.service
}

func resolveActivityReader(service CommandQueryService) query.DispatchActivityReader {
	if service == nil {
		return nil
	}
	if reader, ok := service.(query.DispatchActivityReader); ok {
		return reader
	}
	provider, ok := service.(interface {
		Dependencies() core.ServiceDependencies
	})
	if !ok {
		return nil
	}
	deps := provider.Dependencies()
	if deps.ActivitySink == nil {
		return nil
	}
	return deps.ActivitySink
}
