package handlers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/pixelport/pixelport/modules/tracking/domain/entities/auditlog"
	"github.com/pixelport/pixelport/modules/tracking/services"
	"github.com/pixelport/pixelport/pkg/application"
	"github.com/pixelport/pixelport/pkg/composables"
)

// RegisterAuditHandler subscribes the append-only audit sink to pipeline
// events. Every processed event gets a row, whichever branch it took.
func RegisterAuditHandler(app application.Application, repo auditlog.Repository) {
	logger := app.Logger()
	pool := app.Pool()
	app.EventBus().Subscribe(func(e *services.ProcessedEvent) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		ctx = composables.WithPool(ctx, pool)

		entry := &auditlog.AuditLog{
			ID:             uuid.New(),
			StoreID:        e.StoreID,
			EventID:        e.EventID,
			EventName:      e.EventName,
			IsCatalogEvent: e.IsCatalogEvent,
			Outcome:        string(e.Outcome.Action),
			Response:       json.RawMessage(e.Response),
			Error:          auditError(e),
			CreatedAt:      e.OccurredAt,
		}
		if err := repo.Create(ctx, entry); err != nil {
			logger.WithError(err).WithField("event_id", e.EventID).Error("failed to persist audit entry")
		}
	})
}

func auditError(e *services.ProcessedEvent) string {
	if e.Error != "" {
		return e.Error
	}
	return e.Reason
}
