// Package sqlstore persists the dispatch activity ledger through bun
// repositories.
package sqlstore

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/apachler/thingsboard-mcp-server/core"
)

type ActivityStore struct {
	db   *bun.DB
	repo repository.Repository[*dispatchActivityRecord]
}

func NewActivityStore(db *bun.DB) (*ActivityStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*dispatchActivityRecord](db, activityHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid activity repository wiring: %w", err)
		}
	}
	return &ActivityStore{db: db, repo: repo}, nil
}

func (s *ActivityStore) Record(ctx context.Context, entry core.DispatchActivityEntry) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("sqlstore: activity store is not configured")
	}
	method := strings.ToUpper(strings.TrimSpace(entry.Method))
	endpoint := strings.TrimSpace(entry.Endpoint)
	if method == "" || endpoint == "" {
		return fmt.Errorf("sqlstore: activity entry requires method and endpoint")
	}

	id := strings.TrimSpace(entry.ID)
	if id == "" {
		id = uuid.NewString()
	}
	createdAt := entry.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	status := strings.TrimSpace(string(entry.Status))
	if status == "" {
		status = string(core.DispatchActivityStatusOK)
	}
	actor := strings.TrimSpace(entry.Actor)
	if actor == "" {
		actor = "agent"
	}

	record := &dispatchActivityRecord{
		ID:         id,
		Method:     method,
		Endpoint:   endpoint,
		Status:     status,
		StatusCode: entry.StatusCode,
		ErrorCode:  strings.TrimSpace(entry.ErrorCode),
		Actor:      actor,
		Metadata:   copyAnyMap(entry.Metadata),
		CreatedAt:  createdAt,
	}

	_, err := s.repo.Create(ctx, record)
	return err
}

// Get loads one ledger entry by id.
func (s *ActivityStore) Get(ctx context.Context, id string) (core.DispatchActivityEntry, error) {
	if s == nil || s.repo == nil {
		return core.DispatchActivityEntry{}, fmt.Errorf("sqlstore: activity store is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return core.DispatchActivityEntry{}, fmt.Errorf("sqlstore: activity entry id is required")
	}
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return core.DispatchActivityEntry{}, err
	}
	return activityRecordToDomain(record), nil
}

func (s *ActivityStore) List(
	ctx context.Context,
	filter core.DispatchActivityFilter,
) (core.DispatchActivityPage, error) {
	if s == nil || s.repo == nil {
		return core.DispatchActivityPage{}, fmt.Errorf("sqlstore: activity store is not configured")
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = 25
	}
	offset := (page - 1) * perPage

	selectors := []repository.SelectCriteria{
		repository.OrderBy("created_at DESC"),
		repository.SelectPaginate(perPage, offset),
	}
	if method := strings.ToUpper(strings.TrimSpace(filter.Method)); method != "" {
		selectors = append(selectors, repository.SelectBy("method", "=", method))
	}
	if endpoint := strings.TrimSpace(filter.Endpoint); endpoint != "" {
		selectors = append(selectors, repository.SelectBy("endpoint", "=", endpoint))
	}
	if status := strings.TrimSpace(string(filter.Status)); status != "" {
		selectors = append(selectors, repository.SelectBy("status", "=", status))
	}
	if filter.From != nil {
		selectors = append(selectors, repository.SelectByTimetz("created_at", ">=", filter.From.UTC()))
	}
	if filter.To != nil {
		selectors = append(selectors, repository.SelectByTimetz("created_at", "<=", filter.To.UTC()))
	}

	records, total, err := s.repo.List(ctx, selectors...)
	if err != nil {
		return core.DispatchActivityPage{}, err
	}
	items := make([]core.DispatchActivityEntry, 0, len(records))
	for _, record := range records {
		items = append(items, activityRecordToDomain(record))
	}
	hasNext := offset+len(items) < total
	nextOffset := ""
	if hasNext {
		nextOffset = strconv.Itoa(offset + len(items))
	}
	return core.DispatchActivityPage{
		Items:      items,
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		HasNext:    hasNext,
		NextCursor: nextOffset,
	}, nil
}

func (s *ActivityStore) Prune(ctx context.Context, policy core.ActivityRetentionPolicy) (int, error) {
	if s == nil || s.db == nil {
		return 0, fmt.Errorf("sqlstore: activity store is not configured")
	}
	deleted := 0
	now := time.Now().UTC()

	if policy.TTL > 0 {
		cutoff := now.Add(-policy.TTL)
		res, err := s.db.NewDelete().
			Model((*dispatchActivityRecord)(nil)).
			Where("created_at < ?", cutoff).
			Exec(ctx)
		if err != nil {
			return deleted, err
		}
		affected, _ := res.RowsAffected()
		deleted += int(affected)
	}

	if policy.RowCap > 0 {
		total, err := s.db.NewSelect().Model((*dispatchActivityRecord)(nil)).Count(ctx)
		if err != nil {
			return deleted, err
		}
		excess := total - policy.RowCap
		if excess > 0 {
			res, err := s.db.NewRaw(
				"DELETE FROM dispatch_activity_entries WHERE id IN (SELECT id FROM dispatch_activity_entries ORDER BY created_at ASC LIMIT ?)",
				excess,
			).Exec(ctx)
			if err != nil {
				return deleted, err
			}
			affected, _ := res.RowsAffected()
			deleted += int(affected)
		}
	}

	return deleted, nil
}

func activityRecordToDomain(record *dispatchActivityRecord) core.DispatchActivityEntry {
	if record == nil {
		return core.DispatchActivityEntry{}
	}
	return core.DispatchActivityEntry{
		ID:         record.ID,
		Method:     record.Method,
		Endpoint:   record.Endpoint,
		Status:     core.DispatchActivityStatus(record.Status),
		StatusCode: record.StatusCode,
		ErrorCode:  record.ErrorCode,
		Actor:      record.Actor,
		Metadata:   copyAnyMap(record.Metadata),
		CreatedAt:  record.CreatedAt,
	}
}

func copyAnyMap(input map[string]any) map[string]any {
	output := make(map[string]any, len(input))
	for key, value := range input {
		output[key] = value
	}
	return output
}

var (
	_ core.DispatchActivitySink    = (*ActivityStore)(nil)
	_ core.ActivityRetentionPruner = (*ActivityStore)(nil)
)
