package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pixelport/pixelport/modules/catalog/domain/entities/catalog"
	"github.com/pixelport/pixelport/modules/catalog/infrastructure/persistence/models"
	"github.com/pixelport/pixelport/pkg/composables"
)

const catalogColumns = "id, store_id, external_id, name, enabled, created_at, updated_at"

type CatalogRepository struct{}

func NewCatalogRepository() catalog.Repository {
	return &CatalogRepository{}
}

func scanCatalog(row pgx.Row) (*catalog.Catalog, error) {
	var dbRow models.Catalog
	err := row.Scan(
		&dbRow.ID,
		&dbRow.StoreID,
		&dbRow.ExternalID,
		&dbRow.Name,
		&dbRow.Enabled,
		&dbRow.CreatedAt,
		&dbRow.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, err
	}
	return toDomainCatalog(&dbRow), nil
}

func (r *CatalogRepository) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Catalog, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + catalogColumns + ` FROM catalogs WHERE id = $1`
	return scanCatalog(tx.QueryRow(ctx, query, id.String()))
}

func (r *CatalogRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*catalog.Catalog, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + catalogColumns + ` FROM catalogs WHERE store_id = $1 ORDER BY created_at DESC`
	rows, err := tx.Query(ctx, query, storeID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*catalog.Catalog
	for rows.Next() {
		var dbRow models.Catalog
		if err := rows.Scan(
			&dbRow.ID,
			&dbRow.StoreID,
			&dbRow.ExternalID,
			&dbRow.Name,
			&dbRow.Enabled,
			&dbRow.CreatedAt,
			&dbRow.UpdatedAt,
		); err != nil {
			return nil, err
		}
		results = append(results, toDomainCatalog(&dbRow))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *CatalogRepository) Create(ctx context.Context, c *catalog.Catalog) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	row := toDBCatalog(c)
	query := `
		INSERT INTO catalogs (id, store_id, external_id, name, enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = tx.Exec(ctx, query,
		row.ID, row.StoreID, row.ExternalID, row.Name, row.Enabled, row.CreatedAt, row.UpdatedAt,
	)
	return err
}

func (r *CatalogRepository) Update(ctx context.Context, c *catalog.Catalog) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	row := toDBCatalog(c)
	query := `
		UPDATE catalogs SET external_id = $2, name = $3, enabled = $4, updated_at = $5
		WHERE id = $1
	`
	_, err = tx.Exec(ctx, query, row.ID, row.ExternalID, row.Name, row.Enabled, row.UpdatedAt)
	return err
}

func (r *CatalogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `DELETE FROM catalogs WHERE id = $1`, id.String())
	return err
}
