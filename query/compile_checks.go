package query

import (
	gocmd "github.com/goliatone/go-command"

	"github.com/apachler/thingsboard-mcp-server/core"
)

var (
	_ gocmd.Querier[FetchResourceMessage, core.Outcome]                     = (*FetchResourceQuery)(nil)
	_ gocmd.Querier[ListDispatchActivityMessage, core.DispatchActivityPage] = (*ListDispatchActivityQuery)(nil)
)
