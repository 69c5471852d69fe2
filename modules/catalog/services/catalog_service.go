package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pixelport/pixelport/modules/catalog/domain/entities/catalog"
)

type CatalogService struct {
	repo catalog.Repository
}

func NewCatalogService(repo catalog.Repository) *CatalogService {
	return &CatalogService{repo: repo}
}

type CreateCatalogDTO struct {
	StoreID    uuid.UUID
	ExternalID string
	Name       string
}

func (s *CatalogService) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Catalog, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CatalogService) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*catalog.Catalog, error) {
	return s.repo.ListByStore(ctx, storeID)
}

func (s *CatalogService) Create(ctx context.Context, dto CreateCatalogDTO) (*catalog.Catalog, error) {
	now := time.Now()
	c := &catalog.Catalog{
		ID:         uuid.New(),
		StoreID:    dto.StoreID,
		ExternalID: dto.ExternalID,
		Name:       dto.Name,
		Enabled:    true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SetEnabled toggles a catalog. Disabled catalogs stop resolving in the
// tracking pipeline immediately (modulo cache TTL).
func (s *CatalogService) SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) (*catalog.Catalog, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Enabled = enabled
	c.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
