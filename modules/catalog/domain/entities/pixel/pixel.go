package pixel

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("pixel not found")

// Pixel is a per-store tracking identifier issued by the ads platform.
// CatalogID is nil until the merchant binds a product catalog for dynamic ads.
type Pixel struct {
	ID         uuid.UUID
	StoreID    uuid.UUID
	ExternalID string
	CatalogID  *uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Pixel, error)
	GetByExternalID(ctx context.Context, storeID uuid.UUID, externalID string) (*Pixel, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]*Pixel, error)
	Create(ctx context.Context, p *Pixel) error
	Update(ctx context.Context, p *Pixel) error
	Delete(ctx context.Context, id uuid.UUID) error
}
