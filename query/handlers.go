package query

import (
	"context"

	"github.com/apachler/thingsboard-mcp-server/core"
)

// ResourceReader is the read-only slice of the core service.
type ResourceReader interface {
	Dispatch(ctx context.Context, spec core.RequestSpec, confirmed bool) (core.Outcome, error)
}

// DispatchActivityReader lists ledger entries.
type DispatchActivityReader interface {
	List(ctx context.Context, filter core.DispatchActivityFilter) (core.DispatchActivityPage, error)
}

type FetchResourceQuery struct {
	reader ResourceReader
}

func NewFetchResourceQuery(reader ResourceReader) *FetchResourceQuery {
	return &FetchResourceQuery{reader: reader}
}

func (q *FetchResourceQuery) Query(ctx context.Context, msg FetchResourceMessage) (core.Outcome, error) {
	if q == nil || q.reader == nil {
		return core.Outcome{}, queryDependencyError("query: resource reader is required")
	}
	return q.reader.Dispatch(ctx, msg.Spec(), true)
}

type ListDispatchActivityQuery struct {
	reader DispatchActivityReader
}

func NewListDispatchActivityQuery(reader DispatchActivityReader) *ListDispatchActivityQuery {
	return &ListDispatchActivityQuery{reader: reader}
}

func (q *ListDispatchActivityQuery) Query(
	ctx context.Context,
	msg ListDispatchActivityMessage,
) (core.DispatchActivityPage, error) {
	if q == nil || q.reader == nil {
		return core.DispatchActivityPage{}, queryDependencyError("query: activity reader is required")
	}
	return q.reader.List(ctx, msg.Filter)
}
