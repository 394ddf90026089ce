package query

import (
	"fmt"
	"strings"

	"github.com/apachler/thingsboard-mcp-server/core"
)

const (
	TypeFetchResource        = "dispatch.query.resource.fetch"
	TypeListDispatchActivity = "dispatch.query.activity.list"
)

// FetchResourceMessage reads one platform resource through the dispatcher.
// Reads are never gated, so there is no confirmation flag.
type FetchResourceMessage struct {
	Endpoint string
	Params   core.Params
}

func (FetchResourceMessage) Type() string { return TypeFetchResource }

func (m FetchResourceMessage) Validate() error {
	if strings.TrimSpace(m.Endpoint) == "" {
		return fmt.Errorf("query: endpoint is required")
	}
	return nil
}

func (m FetchResourceMessage) Spec() core.RequestSpec {
	return core.NewRequestSpec("GET", m.Endpoint, m.Params, nil)
}

type ListDispatchActivityMessage struct {
	Filter core.DispatchActivityFilter
}

func (ListDispatchActivityMessage) Type() string { return TypeListDispatchActivity }

func (m ListDispatchActivityMessage) Validate() error {
	if m.Filter.Page < 0 {
		return fmt.Errorf("query: page must be >= 0")
	}
	if m.Filter.PerPage < 0 {
		return fmt.Errorf("query: per_page must be >= 0")
	}
	return nil
}
