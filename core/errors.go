package core

import (
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	DispatchErrorBadInput          = "DISPATCH_BAD_INPUT"
	DispatchErrorAuthFailed        = "DISPATCH_AUTH_FAILED"
	DispatchErrorMethodUnsupported = "DISPATCH_METHOD_UNSUPPORTED"
	DispatchErrorHTTPStatus        = "DISPATCH_HTTP_STATUS"
	DispatchErrorTransportFailed   = "DISPATCH_TRANSPORT_FAILED"
	DispatchErrorInternal          = "DISPATCH_INTERNAL_ERROR"
)

func dispatchErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureDispatchErrorEnvelope(richErr)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "login"), strings.Contains(msg, "token"):
		return newDispatchError(err.Error(), goerrors.CategoryAuth, DispatchErrorAuthFailed)
	case strings.Contains(msg, "unsupported") && strings.Contains(msg, "method"):
		return newDispatchError(err.Error(), goerrors.CategoryOperation, DispatchErrorMethodUnsupported)
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "connection"), strings.Contains(msg, "dial"):
		return newDispatchError(err.Error(), goerrors.CategoryExternal, DispatchErrorTransportFailed)
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"):
		return newDispatchError(err.Error(), goerrors.CategoryBadInput, DispatchErrorBadInput)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureDispatchErrorEnvelope(mapped)
}

func newDispatchError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureDispatchErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func ensureDispatchErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = dispatchHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultDispatchTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultDispatchTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return DispatchErrorBadInput
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return DispatchErrorAuthFailed
	case goerrors.CategoryOperation:
		return DispatchErrorMethodUnsupported
	case goerrors.CategoryExternal:
		return DispatchErrorTransportFailed
	default:
		return DispatchErrorInternal
	}
}

func dispatchHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryConflict:
		return http.StatusConflict
	case goerrors.CategoryRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// NewHTTPStatusError wraps a non-2xx platform response. 401 maps onto the
// auth category so the retry path can recognize it.
func NewHTTPStatusError(statusCode int, body []byte) *goerrors.Error {
	category := goerrors.CategoryExternal
	if statusCode == http.StatusUnauthorized {
		category = goerrors.CategoryAuth
	}
	err := goerrors.New(
		"core: platform returned status "+http.StatusText(statusCode),
		category,
	).
		WithCode(statusCode).
		WithTextCode(DispatchErrorHTTPStatus)
	return err.WithMetadata(map[string]any{
		"status_code":   statusCode,
		"response_body": strings.TrimSpace(string(body)),
	})
}

// DetailString extracts the human-readable failure detail carried to the
// agent boundary alongside the fixed operation-describing message.
func DetailString(err error) string {
	if err == nil {
		return ""
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr != nil {
		if body, ok := richErr.Metadata["response_body"].(string); ok && strings.TrimSpace(body) != "" {
			return richErr.Message + ": " + strings.TrimSpace(body)
		}
		return richErr.Message
	}
	return err.Error()
}
