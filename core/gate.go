package core

import (
	"fmt"
	"net/http"
	"strings"
)

// Decision is the mutation gate verdict: proceed to the network, or hand a
// confirmation descriptor back to the caller instead.
type Decision struct {
	Proceed    bool
	Descriptor *ConfirmationDescriptor
}

// MutationGate decides whether a non-read call may execute. It is pure
// in-memory logic: it never blocks and never touches network or credential.
type MutationGate struct{}

// Evaluate lets reads and confirmed calls through; an unconfirmed non-GET
// call yields a descriptor echoing the spec verbatim so the exact same call
// can be replayed once confirmed. Confirmation is a one-shot caller-supplied
// flag with no binding to a previously issued descriptor.
func (MutationGate) Evaluate(spec RequestSpec, confirmed bool) Decision {
	if spec.IsRead() || confirmed {
		return Decision{Proceed: true}
	}
	descriptor := &ConfirmationDescriptor{
		RequiresPermission: true,
		Method:             spec.Method,
		Endpoint:           spec.Endpoint,
		Params:             spec.Params.Clone(),
		JSONData:           spec.JSONData.Clone(),
		Message:            confirmationMessage(spec),
	}
	return Decision{Descriptor: descriptor}
}

func effectDescription(method string) string {
	switch strings.ToUpper(strings.TrimSpace(method)) {
	case http.MethodPost:
		return "create or add new data"
	case http.MethodPut:
		return "update existing data"
	case http.MethodDelete:
		return "permanently remove data"
	default:
		return fmt.Sprintf("perform a %s operation", strings.ToUpper(strings.TrimSpace(method)))
	}
}

func confirmationMessage(spec RequestSpec) string {
	dataInfo := ""
	if len(spec.JSONData) > 0 {
		dataInfo = ", data: " + marshalJSONValue(spec.JSONData)
	}
	return fmt.Sprintf(
		"This operation will %s in ThingsBoard (endpoint: %s%s). Do you want to proceed?",
		effectDescription(spec.Method),
		spec.Endpoint,
		dataInfo,
	)
}
