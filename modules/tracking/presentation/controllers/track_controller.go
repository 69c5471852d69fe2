package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pixelport/pixelport/modules/tracking/presentation/controllers/dtos"
	"github.com/pixelport/pixelport/modules/tracking/services"
	"github.com/pixelport/pixelport/pkg/application"
	"github.com/pixelport/pixelport/pkg/composables"
)

const errMsgInvalidJSON = "invalid JSON"

type TrackController struct {
	basePath        string
	pipelineService *services.PipelineService
}

func NewTrackController(app application.Application, basePath string) application.Controller {
	return &TrackController{
		basePath:        basePath,
		pipelineService: app.Service(services.PipelineService{}).(*services.PipelineService),
	}
}

func (c *TrackController) Key() string {
	return c.basePath
}

func (c *TrackController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.Track).Methods(http.MethodPost)
}

type trackResponse struct {
	EventID        string                 `json:"event_id"`
	IsCatalogEvent bool                   `json:"is_catalog_event"`
	CatalogID      string                 `json:"catalog_id,omitempty"`
	CustomData     map[string]interface{} `json:"custom_data"`
}

func (c *TrackController) Track(w http.ResponseWriter, r *http.Request) {
	logger := composables.UseLogger(r.Context())

	dto := &dtos.TrackEventDTO{}
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		http.Error(w, errMsgInvalidJSON, http.StatusBadRequest)
		return
	}
	if validationErrors, ok := dto.Ok(); !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		fields := make(map[string]string, len(validationErrors))
		for field, err := range validationErrors {
			fields[field] = err.Message
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"errors": fields})
		return
	}

	event, err := dto.ToRawEvent()
	if err != nil {
		http.Error(w, "invalid store id", http.StatusBadRequest)
		return
	}

	result := c.pipelineService.ProcessEvent(r.Context(), event)

	resp := trackResponse{
		EventID:        result.EventID,
		IsCatalogEvent: result.IsCatalogEvent,
		CustomData:     result.CustomData,
	}
	if result.CatalogID != nil {
		resp.CatalogID = result.CatalogID.String()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.WithError(err).Error("failed to encode track response")
	}
}
