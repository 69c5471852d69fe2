package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("catalog not found")

// Catalog is a remote product inventory registered with the ads platform.
// ExternalID is the platform-side catalog identifier.
type Catalog struct {
	ID         uuid.UUID
	StoreID    uuid.UUID
	ExternalID string
	Name       string
	Enabled    bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Catalog, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]*Catalog, error)
	Create(ctx context.Context, c *Catalog) error
	Update(ctx context.Context, c *Catalog) error
	Delete(ctx context.Context, id uuid.UUID) error
}
