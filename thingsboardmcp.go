package thingsboardmcp

import (
	"github.com/apachler/thingsboard-mcp-server/auth"
	"github.com/apachler/thingsboard-mcp-server/core"
	"github.com/apachler/thingsboard-mcp-server/transport"
)

type Config = core.Config

type ActivityConfig = core.ActivityConfig

type Option = core.Option

type Service = core.Service

type ServiceDependencies = core.ServiceDependencies
type RequestSpec = core.RequestSpec
type Params = core.Params
type Outcome = core.Outcome
type ConfirmationDescriptor = core.ConfirmationDescriptor
type Credential = core.Credential
type TokenSource = core.TokenSource
type TokenSourceFactory = core.TokenSourceFactory
type TransportAdapter = core.TransportAdapter
type TransportResolver = core.TransportResolver
type DispatchActivitySink = core.DispatchActivitySink
type DispatchActivityEntry = core.DispatchActivityEntry
type DispatchActivityFilter = core.DispatchActivityFilter
type DispatchActivityPage = core.DispatchActivityPage
type ActivityRetentionPolicy = core.ActivityRetentionPolicy

var (
	WithLogger             = core.WithLogger
	WithLoggerProvider     = core.WithLoggerProvider
	WithMetricsRecorder    = core.WithMetricsRecorder
	WithErrorFactory       = core.WithErrorFactory
	WithErrorMapper        = core.WithErrorMapper
	WithConfigProvider     = core.WithConfigProvider
	WithOptionsResolver    = core.WithOptionsResolver
	WithTokenSource        = core.WithTokenSource
	WithTokenSourceFactory = core.WithTokenSourceFactory
	WithTransportAdapter   = core.WithTransportAdapter
	WithTransportResolver  = core.WithTransportResolver
	WithActivitySink       = core.WithActivitySink
	WithActor              = core.WithActor
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

func NewRequestSpec(method, endpoint string, params, jsonData Params) RequestSpec {
	return core.NewRequestSpec(method, endpoint, params, jsonData)
}

// New builds a dispatch service with the production defaults wired in: the
// transport registry (REST eager, capture by factory) and the
// password-login token source. Explicit options override either default.
func New(cfg Config, opts ...Option) (*Service, error) {
	defaults := []Option{
		core.WithTransportResolver(transport.NewDefaultRegistry()),
		core.WithTokenSourceFactory(auth.PasswordLoginFactory(nil)),
	}
	return core.NewService(cfg, append(defaults, opts...)...)
}

// NewFromEnv builds a service whose configuration is read from the
// THINGSBOARD_* and MCP_SERVER_TRANSPORT environment variables.
func NewFromEnv(opts ...Option) (*Service, error) {
	envOpts := []Option{
		core.WithConfigProvider(core.NewCfgxConfigProvider(core.NewEnvRawConfigLoader(nil))),
	}
	return New(Config{}, append(envOpts, opts...)...)
}
