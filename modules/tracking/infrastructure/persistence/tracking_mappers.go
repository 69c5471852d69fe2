package persistence

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/pixelport/pixelport/modules/tracking/domain/entities/auditlog"
	"github.com/pixelport/pixelport/modules/tracking/domain/entities/catalogmapping"
	"github.com/pixelport/pixelport/modules/tracking/infrastructure/persistence/models"
)

func toDBAuditLog(log *auditlog.AuditLog) *models.AuditLog {
	return &models.AuditLog{
		ID:             log.ID.String(),
		StoreID:        log.StoreID.String(),
		EventID:        log.EventID,
		EventName:      log.EventName,
		IsCatalogEvent: log.IsCatalogEvent,
		Outcome:        log.Outcome,
		Response:       log.Response,
		Error:          log.Error,
		CreatedAt:      log.CreatedAt,
	}
}

func toDomainAuditLog(dbLog *models.AuditLog) *auditlog.AuditLog {
	id, err := uuid.Parse(dbLog.ID)
	if err != nil {
		id = uuid.Nil
	}
	storeID, err := uuid.Parse(dbLog.StoreID)
	if err != nil {
		storeID = uuid.Nil
	}
	return &auditlog.AuditLog{
		ID:             id,
		StoreID:        storeID,
		EventID:        dbLog.EventID,
		EventName:      dbLog.EventName,
		IsCatalogEvent: dbLog.IsCatalogEvent,
		Outcome:        dbLog.Outcome,
		Response:       json.RawMessage(dbLog.Response),
		Error:          dbLog.Error,
		CreatedAt:      dbLog.CreatedAt,
	}
}

// toDomainCatalogMapping applies the resolver contract: no mapping unless a
// catalog is bound, enabled, and the store is enabled with a credential.
func toDomainCatalogMapping(row *models.CatalogMapping) *catalogmapping.CatalogMapping {
	if row.CatalogID == nil || row.CatalogEnabled == nil || !*row.CatalogEnabled {
		return nil
	}
	if !row.StoreEnabled || row.AccessToken == "" {
		return nil
	}
	catalogID, err := uuid.Parse(*row.CatalogID)
	if err != nil {
		return nil
	}
	return &catalogmapping.CatalogMapping{
		PixelID:    row.PixelExternalID,
		CatalogID:  catalogID,
		Credential: row.AccessToken,
	}
}
