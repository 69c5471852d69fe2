package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/pixelport/pixelport/modules/tracking/domain/entities/auditlog"
	"github.com/pixelport/pixelport/modules/tracking/infrastructure/persistence/models"
	"github.com/pixelport/pixelport/pkg/composables"
	"github.com/pixelport/pixelport/pkg/repo"
)

type AuditLogRepository struct{}

func NewAuditLogRepository() auditlog.Repository {
	return &AuditLogRepository{}
}

func (r *AuditLogRepository) List(ctx context.Context, params *auditlog.FindParams) ([]*auditlog.AuditLog, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	where, args := buildAuditLogFilters(params)
	query := `
		SELECT id, store_id, event_id, event_name, is_catalog_event, outcome, response, error, created_at
		FROM audit_logs
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_at DESC
	`
	if params != nil {
		query += " " + repo.FormatLimitOffset(params.Limit, params.Offset)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*auditlog.AuditLog
	for rows.Next() {
		var row models.AuditLog
		if err := rows.Scan(
			&row.ID,
			&row.StoreID,
			&row.EventID,
			&row.EventName,
			&row.IsCatalogEvent,
			&row.Outcome,
			&row.Response,
			&row.Error,
			&row.CreatedAt,
		); err != nil {
			return nil, err
		}
		results = append(results, toDomainAuditLog(&row))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *AuditLogRepository) Count(ctx context.Context, params *auditlog.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	where, args := buildAuditLogFilters(params)
	query := `SELECT COUNT(*) FROM audit_logs WHERE ` + strings.Join(where, " AND ")

	var count int64
	if err := tx.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *AuditLogRepository) Create(ctx context.Context, log *auditlog.AuditLog) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	dbLog := toDBAuditLog(log)
	query := `
		INSERT INTO audit_logs (id, store_id, event_id, event_name, is_catalog_event, outcome, response, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = tx.Exec(ctx, query,
		dbLog.ID,
		dbLog.StoreID,
		dbLog.EventID,
		dbLog.EventName,
		dbLog.IsCatalogEvent,
		dbLog.Outcome,
		dbLog.Response,
		dbLog.Error,
		dbLog.CreatedAt,
	)
	return err
}

func buildAuditLogFilters(params *auditlog.FindParams) ([]string, []interface{}) {
	where := []string{"1 = 1"}
	args := []interface{}{}
	idx := 1
	if params == nil {
		return where, args
	}
	if params.StoreID != nil {
		where = append(where, fmt.Sprintf("store_id = $%d", idx))
		args = append(args, params.StoreID.String())
		idx++
	}
	if params.EventID != "" {
		where = append(where, fmt.Sprintf("event_id = $%d", idx))
		args = append(args, params.EventID)
		idx++
	}
	if params.EventName != "" {
		where = append(where, fmt.Sprintf("event_name = $%d", idx))
		args = append(args, params.EventName)
		idx++
	}
	if params.From != nil {
		where = append(where, fmt.Sprintf("created_at >= $%d", idx))
		args = append(args, *params.From)
		idx++
	}
	if params.To != nil {
		where = append(where, fmt.Sprintf("created_at <= $%d", idx))
		args = append(args, *params.To)
		idx++
	}
	return where, args
}
