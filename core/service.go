package core

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
)

// defaultTransportKind names the adapter the resolver builds when no
// explicit adapter is supplied.
const defaultTransportKind = "rest"

// Service is the long-lived owner of the dispatch core: one credential
// manager, one transport, one mutation gate. Every resource operation
// funnels through Dispatch or DispatchConfirmed.
type Service struct {
	config          Config
	logger          Logger
	loggerProvider  LoggerProvider
	metricsRecorder MetricsRecorder
	errorFactory    ErrorFactory
	errorMapper     ErrorMapper
	configProvider  ConfigProvider
	optionsResolver OptionsResolver
	credentials     *CredentialManager
	transport       TransportAdapter
	gate            MutationGate
	activitySink    DispatchActivitySink
	actor           string
}

type ServiceDependencies struct {
	Logger          Logger
	LoggerProvider  LoggerProvider
	MetricsRecorder MetricsRecorder
	ErrorFactory    ErrorFactory
	ErrorMapper     ErrorMapper
	ConfigProvider  ConfigProvider
	OptionsResolver OptionsResolver
	Credentials     *CredentialManager
	Transport       TransportAdapter
	ActivitySink    DispatchActivitySink
}

func NewService(cfg Config, options ...Option) (*Service, error) {
	builder := defaultServiceBuilder(cfg)
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("thingsboard", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("thingsboard"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.errorFactory == nil {
		builder.errorFactory = goerrors.New
	}
	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}
	if builder.actor == "" {
		builder.actor = "agent"
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	if builder.tokenSource == nil && builder.tokenSourceFactory != nil {
		source, buildErr := builder.tokenSourceFactory(finalConfig)
		if buildErr != nil {
			return nil, mapBuildError(builder.errorMapper, buildErr)
		}
		builder.tokenSource = source
	}
	if builder.tokenSource == nil {
		return nil, mapBuildError(builder.errorMapper, fmt.Errorf("core: token source is required"))
	}
	if builder.transport == nil && builder.transportResolver != nil {
		adapter, buildErr := builder.transportResolver.Build(defaultTransportKind, nil)
		if buildErr != nil {
			return nil, mapBuildError(builder.errorMapper, buildErr)
		}
		builder.transport = adapter
	}
	if builder.transport == nil {
		return nil, mapBuildError(builder.errorMapper, fmt.Errorf("core: transport adapter is required"))
	}

	credentials, err := NewCredentialManager(builder.tokenSource)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	return &Service{
		config:          finalConfig,
		logger:          logger,
		loggerProvider:  provider,
		metricsRecorder: builder.metricsRecorder,
		errorFactory:    builder.errorFactory,
		errorMapper:     builder.errorMapper,
		configProvider:  builder.configProvider,
		optionsResolver: builder.optionsResolver,
		credentials:     credentials,
		transport:       builder.transport,
		gate:            MutationGate{},
		activitySink:    builder.activitySink,
		actor:           builder.actor,
	}, nil
}

func Setup(cfg Config, options ...Option) (*Service, error) {
	return NewService(cfg, options...)
}

func mapBuildError(mapper ErrorMapper, err error) error {
	if err == nil {
		return nil
	}
	if mapper == nil {
		return err
	}
	mapped := mapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

func (s *Service) Config() Config {
	if s == nil {
		return Config{}
	}
	return s.config
}

func (s *Service) Dependencies() ServiceDependencies {
	if s == nil {
		return ServiceDependencies{}
	}
	return ServiceDependencies{
		Logger:          s.logger,
		LoggerProvider:  s.loggerProvider,
		MetricsRecorder: s.metricsRecorder,
		ErrorFactory:    s.errorFactory,
		ErrorMapper:     s.errorMapper,
		ConfigProvider:  s.configProvider,
		OptionsResolver: s.optionsResolver,
		Credentials:     s.credentials,
		Transport:       s.transport,
		ActivitySink:    s.activitySink,
	}
}

// EnsureCredential performs the eager startup login when no credential is
// held yet.
func (s *Service) EnsureCredential(ctx context.Context) error {
	if s == nil || s.credentials == nil {
		return newDispatchError("core: service is not configured", goerrors.CategoryInternal, DispatchErrorInternal)
	}
	_, err := s.credentials.GetOrRefresh(ctx, false)
	if err != nil {
		return s.mapError(err)
	}
	return nil
}

// Dispatch executes one RequestSpec. Unconfirmed mutations short-circuit at
// the gate with zero network calls and zero credential touches; a 401 from
// the platform forces exactly one credential refresh and one retry.
func (s *Service) Dispatch(ctx context.Context, spec RequestSpec, confirmed bool) (outcome Outcome, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"method":   spec.Method,
		"endpoint": spec.Endpoint,
	}
	defer func() {
		if outcome.RequiresConfirmation() {
			fields["decision"] = "confirmation_required"
		}
		s.observeOperation(ctx, startedAt, "dispatch", err, fields)
	}()

	if err = spec.Validate(); err != nil {
		err = s.mapError(err)
		return Outcome{}, err
	}

	if !spec.IsRead() {
		decision := s.gate.Evaluate(spec, confirmed)
		if !decision.Proceed {
			outcome = Outcome{Confirmation: decision.Descriptor}
			s.recordActivity(ctx, spec, outcome, nil)
			return outcome, nil
		}
	}

	credential, err := s.credentials.GetOrRefresh(ctx, false)
	if err != nil {
		err = s.mapError(err)
		s.recordActivity(ctx, spec, Outcome{}, err)
		return Outcome{}, err
	}

	response, err := s.send(ctx, credential, spec)
	if err == nil && response.StatusCode == http.StatusUnauthorized {
		credential, err = s.credentials.GetOrRefresh(ctx, true)
		if err == nil {
			response, err = s.send(ctx, credential, spec)
		}
	}
	if err != nil {
		err = s.mapError(err)
		s.recordActivity(ctx, spec, Outcome{}, err)
		return Outcome{}, err
	}

	outcome, err = classifyResponse(response)
	if err != nil {
		err = s.mapError(err)
		s.recordActivity(ctx, spec, Outcome{StatusCode: response.StatusCode}, err)
		return Outcome{}, err
	}
	s.recordActivity(ctx, spec, outcome, nil)
	return outcome, nil
}

// DispatchConfirmed is the explicit "I have permission now" entry point.
func (s *Service) DispatchConfirmed(ctx context.Context, spec RequestSpec) (Outcome, error) {
	return s.Dispatch(ctx, spec, true)
}

// Activity reads the dispatch ledger when one is configured.
func (s *Service) Activity(ctx context.Context, filter DispatchActivityFilter) (DispatchActivityPage, error) {
	if s == nil || s.activitySink == nil {
		return DispatchActivityPage{}, s.mapError(fmt.Errorf("core: activity sink is not configured"))
	}
	page, err := s.activitySink.List(ctx, filter)
	if err != nil {
		return DispatchActivityPage{}, s.mapError(err)
	}
	return page, nil
}

func (s *Service) send(ctx context.Context, credential Credential, spec RequestSpec) (TransportResponse, error) {
	headers := map[string]string{
		"Authorization": "Bearer " + credential.Token,
		"Accept":        "application/json",
	}
	var body []byte
	if len(spec.JSONData) > 0 {
		encoded, err := json.Marshal(spec.JSONData)
		if err != nil {
			return TransportResponse{}, s.errorFactory(
				"core: encode request body: "+err.Error(),
				goerrors.CategoryBadInput,
			).WithTextCode(DispatchErrorBadInput)
		}
		body = encoded
		headers["Content-Type"] = "application/json"
	}

	return s.transport.Do(ctx, TransportRequest{
		Method:  spec.Method,
		URL:     joinURL(s.config.BaseURL, spec.Endpoint),
		Headers: headers,
		Query:   spec.Params.StringMap(),
		Body:    body,
		Timeout: s.config.RequestTimeout(),
	})
}

func classifyResponse(response TransportResponse) (Outcome, error) {
	if response.StatusCode == http.StatusNoContent {
		return Outcome{StatusCode: response.StatusCode, Payload: SuccessMarker()}, nil
	}
	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return Outcome{}, NewHTTPStatusError(response.StatusCode, response.Body)
	}
	if len(strings.TrimSpace(string(response.Body))) == 0 {
		return Outcome{StatusCode: response.StatusCode, Payload: SuccessMarker()}, nil
	}
	var payload any
	if err := json.Unmarshal(response.Body, &payload); err != nil {
		wrapped := goerrors.Wrap(err, goerrors.CategoryExternal, "core: decode platform response").
			WithTextCode(DispatchErrorTransportFailed)
		return Outcome{}, ensureDispatchErrorEnvelope(wrapped)
	}
	return Outcome{StatusCode: response.StatusCode, Payload: payload}, nil
}

func (s *Service) recordActivity(ctx context.Context, spec RequestSpec, outcome Outcome, dispatchErr error) {
	if s == nil || s.activitySink == nil {
		return
	}
	entry := DispatchActivityEntry{
		Method:     spec.Method,
		Endpoint:   spec.Endpoint,
		Status:     DispatchActivityStatusOK,
		StatusCode: outcome.StatusCode,
		Actor:      s.actor,
		Metadata:   map[string]any{},
	}
	if len(spec.Params) > 0 {
		entry.Metadata["params"] = map[string]any(spec.Params.Clone())
	}
	switch {
	case dispatchErr != nil:
		entry.Status = DispatchActivityStatusError
		var richErr *goerrors.Error
		if goerrors.As(dispatchErr, &richErr) && richErr != nil {
			entry.ErrorCode = richErr.TextCode
			entry.StatusCode = richErr.Code
		}
	case outcome.RequiresConfirmation():
		entry.Status = DispatchActivityStatusConfirmation
	}
	if err := s.activitySink.Record(ctx, entry); err != nil {
		s.logError(ctx, "activity record failed", map[string]any{
			"method":   spec.Method,
			"endpoint": spec.Endpoint,
			"error":    err.Error(),
		})
	}
}

func (s *Service) mapError(err error) error {
	if err == nil {
		return nil
	}
	if s == nil || s.errorMapper == nil {
		return err
	}
	mapped := s.errorMapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

func joinURL(base string, endpoint string) string {
	return strings.TrimSuffix(strings.TrimSpace(base), "/") + "/" + strings.TrimPrefix(strings.TrimSpace(endpoint), "/")
}
