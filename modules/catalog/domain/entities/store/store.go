package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("store not found")

// Store is a connected Shopify shop. AccessToken is the ads-platform dispatch
// credential obtained during onboarding, not the Shopify token.
type Store struct {
	ID          uuid.UUID
	Domain      string
	AccessToken string
	Enabled     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Store, error)
	GetByDomain(ctx context.Context, domain string) (*Store, error)
	List(ctx context.Context, limit, offset int) ([]*Store, error)
	Create(ctx context.Context, s *Store) error
	Update(ctx context.Context, s *Store) error
}
