// Package resources exposes the ThingsBoard REST catalog as typed
// operations over the dispatch pipeline. Each operation builds a request
// spec and forwards it; mutations surface a confirmation descriptor on
// their first unconfirmed invocation.
package resources

import (
	"context"
	"fmt"
	"strings"

	"github.com/apachler/thingsboard-mcp-server/core"
)

// Dispatcher is the slice of the core service the catalog needs.
type Dispatcher interface {
	Dispatch(ctx context.Context, spec core.RequestSpec, confirmed bool) (core.Outcome, error)
	DispatchConfirmed(ctx context.Context, spec core.RequestSpec) (core.Outcome, error)
}

type Client struct {
	dispatcher Dispatcher
}

func NewClient(dispatcher Dispatcher) (*Client, error) {
	if dispatcher == nil {
		return nil, fmt.Errorf("resources: dispatcher is required")
	}
	return &Client{dispatcher: dispatcher}, nil
}

// PageQuery carries the paging parameters shared by every list endpoint.
// Zero values are omitted from the request.
type PageQuery struct {
	PageSize     int
	Page         int
	TextSearch   string
	SortProperty string
	SortOrder    string
}

func (q PageQuery) params() core.Params {
	params := core.Params{}
	if q.PageSize > 0 {
		params["pageSize"] = q.PageSize
	} else {
		params["pageSize"] = 10
	}
	params["page"] = q.Page
	if strings.TrimSpace(q.TextSearch) != "" {
		params["textSearch"] = strings.TrimSpace(q.TextSearch)
	}
	if strings.TrimSpace(q.SortProperty) != "" {
		params["sortProperty"] = strings.TrimSpace(q.SortProperty)
	}
	if strings.TrimSpace(q.SortOrder) != "" {
		params["sortOrder"] = strings.ToUpper(strings.TrimSpace(q.SortOrder))
	}
	return params
}

func (c *Client) get(ctx context.Context, endpoint string, params core.Params) (core.Outcome, error) {
	spec := core.NewRequestSpec("GET", endpoint, params, nil)
	return c.dispatcher.Dispatch(ctx, spec, true)
}

func (c *Client) mutate(
	ctx context.Context,
	method string,
	endpoint string,
	params core.Params,
	jsonData core.Params,
	confirmed bool,
) (core.Outcome, error) {
	spec := core.NewRequestSpec(method, endpoint, params, jsonData)
	return c.dispatcher.Dispatch(ctx, spec, confirmed)
}

// ExecuteWithPermission dispatches an arbitrary request through the
// confirmation gate. It is the generic escape hatch for endpoints the
// catalog does not model.
func (c *Client) ExecuteWithPermission(
	ctx context.Context,
	method string,
	endpoint string,
	params core.Params,
	jsonData core.Params,
	confirmed bool,
) (core.Outcome, error) {
	spec := core.NewRequestSpec(method, endpoint, params, jsonData)
	return c.dispatcher.Dispatch(ctx, spec, confirmed)
}

func requireID(label string, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("resources: %s is required", label)
	}
	return value, nil
}
