package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/pixelport/pixelport/modules/catalog/domain/entities/catalog"
	"github.com/pixelport/pixelport/modules/catalog/domain/entities/pixel"
)

// ErrCatalogOwnership is returned when a merchant tries to bind a catalog that
// belongs to another store. The same rule is enforced again at event time.
var ErrCatalogOwnership = errors.New("catalog belongs to a different store")

type PixelService struct {
	pixels   pixel.Repository
	catalogs catalog.Repository
}

func NewPixelService(pixels pixel.Repository, catalogs catalog.Repository) *PixelService {
	return &PixelService{pixels: pixels, catalogs: catalogs}
}

type CreatePixelDTO struct {
	StoreID    uuid.UUID
	ExternalID string
}

func (s *PixelService) GetByID(ctx context.Context, id uuid.UUID) (*pixel.Pixel, error) {
	return s.pixels.GetByID(ctx, id)
}

func (s *PixelService) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*pixel.Pixel, error) {
	return s.pixels.ListByStore(ctx, storeID)
}

func (s *PixelService) Create(ctx context.Context, dto CreatePixelDTO) (*pixel.Pixel, error) {
	now := time.Now()
	p := &pixel.Pixel{
		ID:         uuid.New(),
		StoreID:    dto.StoreID,
		ExternalID: dto.ExternalID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.pixels.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// BindCatalog links a pixel to a catalog for dynamic-ad enrichment. The
// catalog must belong to the pixel's store; the tracking pipeline re-checks
// this on every event as a second line of defense.
func (s *PixelService) BindCatalog(ctx context.Context, pixelID, catalogID uuid.UUID) (*pixel.Pixel, error) {
	p, err := s.pixels.GetByID(ctx, pixelID)
	if err != nil {
		return nil, err
	}
	c, err := s.catalogs.GetByID(ctx, catalogID)
	if err != nil {
		return nil, err
	}
	if c.StoreID != p.StoreID {
		return nil, ErrCatalogOwnership
	}

	p.CatalogID = &c.ID
	p.UpdatedAt = time.Now()
	if err := s.pixels.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PixelService) UnbindCatalog(ctx context.Context, pixelID uuid.UUID) (*pixel.Pixel, error) {
	p, err := s.pixels.GetByID(ctx, pixelID)
	if err != nil {
		return nil, err
	}
	p.CatalogID = nil
	p.UpdatedAt = time.Now()
	if err := s.pixels.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PixelService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.pixels.Delete(ctx, id)
}
