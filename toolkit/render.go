package toolkit

import (
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/apachler/thingsboard-mcp-server/core"
)

// renderOutcome maps a dispatch outcome to the value handed back to the
// agent: the confirmation descriptor when the gate withheld the call,
// otherwise the platform payload.
func renderOutcome(outcome core.Outcome) any {
	if outcome.RequiresConfirmation() {
		return outcome.Confirmation
	}
	return outcome.Payload
}

// renderDispatchError keeps the agent-facing failure shape stable: a fixed
// operation-describing message plus the underlying detail.
func renderDispatchError(method string, err error) map[string]any {
	method = strings.ToUpper(strings.TrimSpace(method))

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr != nil {
		if richErr.TextCode == core.DispatchErrorMethodUnsupported {
			return map[string]any{
				"error": fmt.Sprintf("Unsupported HTTP method: %s", method),
			}
		}
	}

	return map[string]any{
		"error":   fmt.Sprintf("Unable to %s data from ThingsBoard", strings.ToLower(method)),
		"details": core.DetailString(err),
	}
}

// dispatchResult folds the outcome/error pair into a single tool result.
// Dispatch failures become structured error records rather than Go errors
// so the agent always receives a JSON value it can reason about.
func dispatchResult(method string, outcome core.Outcome, err error) (any, error) {
	if err != nil {
		return renderDispatchError(method, err), nil
	}
	return renderOutcome(outcome), nil
}
