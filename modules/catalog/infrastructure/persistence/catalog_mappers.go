package persistence

import (
	"github.com/google/uuid"

	"github.com/pixelport/pixelport/modules/catalog/domain/entities/catalog"
	"github.com/pixelport/pixelport/modules/catalog/domain/entities/pixel"
	"github.com/pixelport/pixelport/modules/catalog/domain/entities/store"
	"github.com/pixelport/pixelport/modules/catalog/infrastructure/persistence/models"
)

func parseUUID(raw string) uuid.UUID {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func toDBStore(s *store.Store) *models.Store {
	return &models.Store{
		ID:          s.ID.String(),
		Domain:      s.Domain,
		AccessToken: s.AccessToken,
		Enabled:     s.Enabled,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func toDomainStore(row *models.Store) *store.Store {
	return &store.Store{
		ID:          parseUUID(row.ID),
		Domain:      row.Domain,
		AccessToken: row.AccessToken,
		Enabled:     row.Enabled,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func toDBPixel(p *pixel.Pixel) *models.Pixel {
	row := &models.Pixel{
		ID:         p.ID.String(),
		StoreID:    p.StoreID.String(),
		ExternalID: p.ExternalID,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	if p.CatalogID != nil {
		catalogID := p.CatalogID.String()
		row.CatalogID = &catalogID
	}
	return row
}

func toDomainPixel(row *models.Pixel) *pixel.Pixel {
	p := &pixel.Pixel{
		ID:         parseUUID(row.ID),
		StoreID:    parseUUID(row.StoreID),
		ExternalID: row.ExternalID,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
	if row.CatalogID != nil {
		catalogID := parseUUID(*row.CatalogID)
		p.CatalogID = &catalogID
	}
	return p
}

func toDBCatalog(c *catalog.Catalog) *models.Catalog {
	return &models.Catalog{
		ID:         c.ID.String(),
		StoreID:    c.StoreID.String(),
		ExternalID: c.ExternalID,
		Name:       c.Name,
		Enabled:    c.Enabled,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func toDomainCatalog(row *models.Catalog) *catalog.Catalog {
	return &catalog.Catalog{
		ID:         parseUUID(row.ID),
		StoreID:    parseUUID(row.StoreID),
		ExternalID: row.ExternalID,
		Name:       row.Name,
		Enabled:    row.Enabled,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
