package sqlstore

import (
	"time"

	"github.com/uptrace/bun"
)

type dispatchActivityRecord struct {
	bun.BaseModel `bun:"table:dispatch_activity_entries,alias:dae"`

	ID         string         `bun:"id,pk"`
	Method     string         `bun:"method,notnull"`
	Endpoint   string         `bun:"endpoint,notnull"`
	Status     string         `bun:"status,notnull"`
	StatusCode int            `bun:"status_code"`
	ErrorCode  string         `bun:"error_code"`
	Actor      string         `bun:"actor,notnull"`
	Metadata   map[string]any `bun:"metadata,type:jsonb,notnull"`
	CreatedAt  time.Time      `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
