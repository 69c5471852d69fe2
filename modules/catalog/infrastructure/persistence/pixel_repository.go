package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pixelport/pixelport/modules/catalog/domain/entities/pixel"
	"github.com/pixelport/pixelport/modules/catalog/infrastructure/persistence/models"
	"github.com/pixelport/pixelport/pkg/composables"
)

const pixelColumns = "id, store_id, external_id, catalog_id, created_at, updated_at"

type PixelRepository struct{}

func NewPixelRepository() pixel.Repository {
	return &PixelRepository{}
}

func scanPixel(row pgx.Row) (*pixel.Pixel, error) {
	var dbRow models.Pixel
	err := row.Scan(
		&dbRow.ID,
		&dbRow.StoreID,
		&dbRow.ExternalID,
		&dbRow.CatalogID,
		&dbRow.CreatedAt,
		&dbRow.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pixel.ErrNotFound
		}
		return nil, err
	}
	return toDomainPixel(&dbRow), nil
}

func (r *PixelRepository) GetByID(ctx context.Context, id uuid.UUID) (*pixel.Pixel, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + pixelColumns + ` FROM pixels WHERE id = $1`
	return scanPixel(tx.QueryRow(ctx, query, id.String()))
}

func (r *PixelRepository) GetByExternalID(ctx context.Context, storeID uuid.UUID, externalID string) (*pixel.Pixel, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + pixelColumns + ` FROM pixels WHERE store_id = $1 AND external_id = $2`
	return scanPixel(tx.QueryRow(ctx, query, storeID.String(), externalID))
}

func (r *PixelRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*pixel.Pixel, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + pixelColumns + ` FROM pixels WHERE store_id = $1 ORDER BY created_at DESC`
	rows, err := tx.Query(ctx, query, storeID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*pixel.Pixel
	for rows.Next() {
		var dbRow models.Pixel
		if err := rows.Scan(
			&dbRow.ID,
			&dbRow.StoreID,
			&dbRow.ExternalID,
			&dbRow.CatalogID,
			&dbRow.CreatedAt,
			&dbRow.UpdatedAt,
		); err != nil {
			return nil, err
		}
		results = append(results, toDomainPixel(&dbRow))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *PixelRepository) Create(ctx context.Context, p *pixel.Pixel) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	row := toDBPixel(p)
	query := `
		INSERT INTO pixels (id, store_id, external_id, catalog_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = tx.Exec(ctx, query,
		row.ID, row.StoreID, row.ExternalID, row.CatalogID, row.CreatedAt, row.UpdatedAt,
	)
	return err
}

func (r *PixelRepository) Update(ctx context.Context, p *pixel.Pixel) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	row := toDBPixel(p)
	query := `
		UPDATE pixels SET external_id = $2, catalog_id = $3, updated_at = $4
		WHERE id = $1
	`
	_, err = tx.Exec(ctx, query, row.ID, row.ExternalID, row.CatalogID, row.UpdatedAt)
	return err
}

func (r *PixelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `DELETE FROM pixels WHERE id = $1`, id.String())
	return err
}
