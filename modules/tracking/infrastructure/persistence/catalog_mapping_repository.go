package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pixelport/pixelport/modules/tracking/domain/entities/catalogmapping"
	"github.com/pixelport/pixelport/modules/tracking/infrastructure/persistence/models"
	"github.com/pixelport/pixelport/pkg/composables"
)

type CatalogMappingRepository struct{}

func NewCatalogMappingRepository() catalogmapping.Repository {
	return &CatalogMappingRepository{}
}

func (r *CatalogMappingRepository) ResolveByPixel(ctx context.Context, storeID uuid.UUID, pixelID string) (*catalogmapping.CatalogMapping, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT p.external_id, c.id, c.enabled, s.access_token, s.enabled
		FROM pixels p
		JOIN stores s ON s.id = p.store_id
		LEFT JOIN catalogs c ON c.id = p.catalog_id
		WHERE p.store_id = $1 AND p.external_id = $2
	`
	var row models.CatalogMapping
	err = tx.QueryRow(ctx, query, storeID.String(), pixelID).Scan(
		&row.PixelExternalID,
		&row.CatalogID,
		&row.CatalogEnabled,
		&row.AccessToken,
		&row.StoreEnabled,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return toDomainCatalogMapping(&row), nil
}

func (r *CatalogMappingRepository) DispatchCredential(ctx context.Context, storeID uuid.UUID) (string, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return "", err
	}

	var token string
	query := `SELECT access_token FROM stores WHERE id = $1 AND enabled`
	if err := tx.QueryRow(ctx, query, storeID.String()).Scan(&token); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return token, nil
}
