package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pixelport/pixelport/modules/catalog/domain/entities/store"
	"github.com/pixelport/pixelport/modules/catalog/infrastructure/persistence/models"
	"github.com/pixelport/pixelport/pkg/composables"
	"github.com/pixelport/pixelport/pkg/repo"
)

const storeColumns = "id, domain, access_token, enabled, created_at, updated_at"

type StoreRepository struct{}

func NewStoreRepository() store.Repository {
	return &StoreRepository{}
}

func scanStore(row pgx.Row) (*store.Store, error) {
	var dbRow models.Store
	err := row.Scan(
		&dbRow.ID,
		&dbRow.Domain,
		&dbRow.AccessToken,
		&dbRow.Enabled,
		&dbRow.CreatedAt,
		&dbRow.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return toDomainStore(&dbRow), nil
}

func (r *StoreRepository) GetByID(ctx context.Context, id uuid.UUID) (*store.Store, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + storeColumns + ` FROM stores WHERE id = $1`
	return scanStore(tx.QueryRow(ctx, query, id.String()))
}

func (r *StoreRepository) GetByDomain(ctx context.Context, domain string) (*store.Store, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + storeColumns + ` FROM stores WHERE domain = $1`
	return scanStore(tx.QueryRow(ctx, query, domain))
}

func (r *StoreRepository) List(ctx context.Context, limit, offset int) ([]*store.Store, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + storeColumns + ` FROM stores ORDER BY created_at DESC`
	query += " " + repo.FormatLimitOffset(limit, offset)
	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*store.Store
	for rows.Next() {
		var dbRow models.Store
		if err := rows.Scan(
			&dbRow.ID,
			&dbRow.Domain,
			&dbRow.AccessToken,
			&dbRow.Enabled,
			&dbRow.CreatedAt,
			&dbRow.UpdatedAt,
		); err != nil {
			return nil, err
		}
		results = append(results, toDomainStore(&dbRow))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *StoreRepository) Create(ctx context.Context, s *store.Store) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	row := toDBStore(s)
	query := `
		INSERT INTO stores (id, domain, access_token, enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = tx.Exec(ctx, query,
		row.ID, row.Domain, row.AccessToken, row.Enabled, row.CreatedAt, row.UpdatedAt,
	)
	return err
}

func (r *StoreRepository) Update(ctx context.Context, s *store.Store) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	row := toDBStore(s)
	query := `
		UPDATE stores SET domain = $2, access_token = $3, enabled = $4, updated_at = $5
		WHERE id = $1
	`
	_, err = tx.Exec(ctx, query, row.ID, row.Domain, row.AccessToken, row.Enabled, row.UpdatedAt)
	return err
}
