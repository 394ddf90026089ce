package transport

import (
	"fmt"
	"net/http"

	goerrors "github.com/goliatone/go-errors"

	"github.com/apachler/thingsboard-mcp-server/core"
)

func transportError(
	message string,
	category goerrors.Category,
	code int,
	metadata map[string]any,
) error {
	err := goerrors.New(message, category).
		WithCode(code).
		WithTextCode(transportTextCode(category))
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func transportWrapError(
	source error,
	category goerrors.Category,
	message string,
	code int,
	metadata map[string]any,
) error {
	if source == nil {
		return transportError(message, category, code, metadata)
	}
	err := goerrors.Wrap(source, category, message).
		WithCode(code).
		WithTextCode(transportTextCode(category))
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func unsupportedMethodError(method string) error {
	return goerrors.New(
		fmt.Sprintf("transport: unsupported HTTP method %q", method),
		goerrors.CategoryOperation,
	).
		WithCode(http.StatusMethodNotAllowed).
		WithTextCode(core.DispatchErrorMethodUnsupported).
		WithMetadata(map[string]any{"method": method})
}

func transportTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return core.DispatchErrorBadInput
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return core.DispatchErrorAuthFailed
	case goerrors.CategoryOperation:
		return core.DispatchErrorMethodUnsupported
	case goerrors.CategoryExternal:
		return core.DispatchErrorTransportFailed
	default:
		return core.DispatchErrorInternal
	}
}
