package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/pixelport/pixelport/modules/tracking/domain/entities/auditlog"
	"github.com/pixelport/pixelport/modules/tracking/services"
	"github.com/pixelport/pixelport/pkg/application"
)

type AuditLogsController struct {
	basePath     string
	auditService *services.AuditService
}

func NewAuditLogsController(app application.Application, basePath string) application.Controller {
	return &AuditLogsController{
		basePath:     basePath,
		auditService: app.Service(services.AuditService{}).(*services.AuditService),
	}
}

func (c *AuditLogsController) Key() string {
	return c.basePath
}

func (c *AuditLogsController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
}

type auditLogResponse struct {
	ID             string          `json:"id"`
	StoreID        string          `json:"store_id"`
	EventID        string          `json:"event_id"`
	EventName      string          `json:"event_name"`
	IsCatalogEvent bool            `json:"is_catalog_event"`
	Outcome        string          `json:"outcome"`
	Response       json.RawMessage `json:"response,omitempty"`
	Error          string          `json:"error,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

func (c *AuditLogsController) List(w http.ResponseWriter, r *http.Request) {
	params := &auditlog.FindParams{Limit: 50}
	q := r.URL.Query()
	if raw := q.Get("store_id"); raw != "" {
		storeID, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid store_id", http.StatusBadRequest)
			return
		}
		params.StoreID = &storeID
	}
	if raw := q.Get("event_id"); raw != "" {
		params.EventID = raw
	}
	if raw := q.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 && limit <= 500 {
			params.Limit = limit
		}
	}
	if raw := q.Get("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil && offset >= 0 {
			params.Offset = offset
		}
	}

	logs, total, err := c.auditService.List(r.Context(), params)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	items := make([]auditLogResponse, 0, len(logs))
	for _, log := range logs {
		items = append(items, auditLogResponse{
			ID:             log.ID.String(),
			StoreID:        log.StoreID.String(),
			EventID:        log.EventID,
			EventName:      log.EventName,
			IsCatalogEvent: log.IsCatalogEvent,
			Outcome:        log.Outcome,
			Response:       log.Response,
			Error:          log.Error,
			CreatedAt:      log.CreatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"items": items,
		"total": total,
	})
}
