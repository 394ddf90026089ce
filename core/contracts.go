package core

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

// Credential is the bearer token presented on every platform request. It is
// replaced wholesale on refresh, never mutated in place.
type Credential struct {
	Token        string
	RefreshToken string
	IssuedAt     time.Time
}

func (c Credential) IsZero() bool {
	return strings.TrimSpace(c.Token) == ""
}

// TokenSource performs the login exchange against the platform. The
// production implementation lives in the auth package; tests supply stubs.
type TokenSource interface {
	Login(ctx context.Context) (Credential, error)
}

// Params is a JSON-value parameter mapping. Blank keys and nil values are
// dropped at construction so absent parameters never reach the wire.
type Params map[string]any

func NewParams(values map[string]any) Params {
	if len(values) == 0 {
		return nil
	}
	out := make(Params, len(values))
	for key, value := range values {
		if strings.TrimSpace(key) == "" || value == nil {
			continue
		}
		out[strings.TrimSpace(key)] = value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (p Params) Clone() Params {
	if len(p) == 0 {
		return nil
	}
	out := make(Params, len(p))
	for key, value := range p {
		out[key] = value
	}
	return out
}

// StringMap renders scalar values the way they are sent as query parameters.
func (p Params) StringMap() map[string]string {
	if len(p) == 0 {
		return map[string]string{}
	}
	out := make(map[string]string, len(p))
	for key, value := range p {
		text := strings.TrimSpace(fmt.Sprint(value))
		if text == "" || text == "<nil>" {
			continue
		}
		out[key] = text
	}
	return out
}

// RequestSpec fully determines one platform call. Immutable once built via
// NewRequestSpec; the method is normalized to uppercase so lowercase
// spellings behave identically.
type RequestSpec struct {
	Method   string
	Endpoint string
	Params   Params
	JSONData Params
}

func NewRequestSpec(method string, endpoint string, params Params, jsonData Params) RequestSpec {
	return RequestSpec{
		Method:   strings.ToUpper(strings.TrimSpace(method)),
		Endpoint: strings.TrimPrefix(strings.TrimSpace(endpoint), "/"),
		Params:   NewParams(params),
		JSONData: NewParams(jsonData),
	}
}

func (s RequestSpec) Validate() error {
	if strings.TrimSpace(s.Method) == "" {
		return fmt.Errorf("core: request method is required")
	}
	if strings.TrimSpace(s.Endpoint) == "" {
		return fmt.Errorf("core: request endpoint is required")
	}
	return nil
}

func (s RequestSpec) IsRead() bool {
	return s.Method == "GET"
}

// ConfirmationDescriptor is returned instead of executing an unconfirmed
// mutation. The JSON keys match the agent-facing wire contract.
type ConfirmationDescriptor struct {
	RequiresPermission bool   `json:"requires_permission"`
	Method             string `json:"method"`
	Endpoint           string `json:"endpoint"`
	Params             Params `json:"params"`
	JSONData           Params `json:"json_data"`
	Message            string `json:"message"`
}

// Spec echoes the descriptor back into the spec it was issued for, so the
// exact same call can be replayed through the confirmed path.
func (d ConfirmationDescriptor) Spec() RequestSpec {
	return NewRequestSpec(d.Method, d.Endpoint, d.Params, d.JSONData)
}

// SuccessMarker is the synthetic payload for responses without a body.
func SuccessMarker() map[string]any {
	return map[string]any{"success": true}
}

// Outcome is the single value every dispatch returns: either a decoded
// payload or a confirmation descriptor, never both.
type Outcome struct {
	StatusCode   int
	Payload      any
	Confirmation *ConfirmationDescriptor
}

func (o Outcome) RequiresConfirmation() bool {
	return o.Confirmation != nil
}

type TransportRequest struct {
	Method               string
	URL                  string
	Headers              map[string]string
	Query                map[string]string
	Body                 []byte
	Metadata             map[string]any
	Timeout              time.Duration
	MaxResponseBodyBytes int64
}

type TransportResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	Metadata   map[string]any
}

type TransportAdapter interface {
	Kind() string
	Do(ctx context.Context, req TransportRequest) (TransportResponse, error)
}

// TransportResolver builds adapters by kind. The transport registry
// satisfies this, so the service can select its outbound adapter without
// depending on the transport package.
type TransportResolver interface {
	Build(kind string, config map[string]any) (TransportAdapter, error)
}

type DispatchActivityStatus string

const (
	DispatchActivityStatusOK           DispatchActivityStatus = "ok"
	DispatchActivityStatusConfirmation DispatchActivityStatus = "confirmation"
	DispatchActivityStatusError        DispatchActivityStatus = "error"
)

// DispatchActivityEntry is one ledger row: a dispatch outcome or an issued
// confirmation descriptor, recorded for operator audit.
type DispatchActivityEntry struct {
	ID         string
	Method     string
	Endpoint   string
	Status     DispatchActivityStatus
	StatusCode int
	ErrorCode  string
	Actor      string
	Metadata   map[string]any
	CreatedAt  time.Time
}

type DispatchActivityFilter struct {
	Method   string
	Endpoint string
	Status   DispatchActivityStatus
	From     *time.Time
	To       *time.Time
	Page     int
	PerPage  int
}

type DispatchActivityPage struct {
	Items      []DispatchActivityEntry
	Page       int
	PerPage    int
	Total      int
	HasNext    bool
	NextCursor string
}

type DispatchActivitySink interface {
	Record(ctx context.Context, entry DispatchActivityEntry) error
	List(ctx context.Context, filter DispatchActivityFilter) (DispatchActivityPage, error)
}

func copyAnyMap(input map[string]any) map[string]any {
	if len(input) == 0 {
		return map[string]any{}
	}
	output := make(map[string]any, len(input))
	for key, value := range input {
		output[key] = value
	}
	return output
}

func copyStringMap(input map[string]string) map[string]string {
	if len(input) == 0 {
		return map[string]string{}
	}
	output := make(map[string]string, len(input))
	for key, value := range input {
		output[key] = value
	}
	return output
}

func marshalJSONValue(value any) string {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	return string(encoded)
}
