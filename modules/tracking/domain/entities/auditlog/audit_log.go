package auditlog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AuditLog records one processed conversion event, regardless of the branch
// taken. The pipeline only ever appends; nothing reads these back at runtime.
type AuditLog struct {
	ID             uuid.UUID
	StoreID        uuid.UUID
	EventID        string
	EventName      string
	IsCatalogEvent bool
	Outcome        string
	Response       json.RawMessage
	Error          string
	CreatedAt      time.Time
}

type FindParams struct {
	StoreID   *uuid.UUID
	EventID   string
	EventName string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

type Repository interface {
	List(ctx context.Context, params *FindParams) ([]*AuditLog, error)
	Count(ctx context.Context, params *FindParams) (int64, error)
	Create(ctx context.Context, log *AuditLog) error
}
