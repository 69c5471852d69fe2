package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/pixelport/pixelport/modules/catalog/domain/entities/catalog"
	"github.com/pixelport/pixelport/modules/catalog/domain/entities/pixel"
	"github.com/pixelport/pixelport/modules/catalog/presentation/controllers/dtos"
	"github.com/pixelport/pixelport/modules/catalog/services"
	"github.com/pixelport/pixelport/pkg/application"
)

type pixelResponse struct {
	ID         string    `json:"id"`
	StoreID    string    `json:"store_id"`
	ExternalID string    `json:"external_id"`
	CatalogID  string    `json:"catalog_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func toPixelResponse(p *pixel.Pixel) pixelResponse {
	resp := pixelResponse{
		ID:         p.ID.String(),
		StoreID:    p.StoreID.String(),
		ExternalID: p.ExternalID,
		CreatedAt:  p.CreatedAt,
	}
	if p.CatalogID != nil {
		resp.CatalogID = p.CatalogID.String()
	}
	return resp
}

type PixelsController struct {
	basePath     string
	pixelService *services.PixelService
}

func NewPixelsController(app application.Application, basePath string) application.Controller {
	return &PixelsController{
		basePath:     basePath,
		pixelService: app.Service(services.PixelService{}).(*services.PixelService),
	}
}

func (c *PixelsController) Key() string {
	return c.basePath
}

func (c *PixelsController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/{id}/catalog", c.BindCatalog).Methods(http.MethodPut)
	router.HandleFunc("/{id}/catalog", c.UnbindCatalog).Methods(http.MethodDelete)
	router.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
}

func (c *PixelsController) Create(w http.ResponseWriter, r *http.Request) {
	dto := &dtos.CreatePixelDTO{}
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		http.Error(w, errMsgInvalidJSON, http.StatusBadRequest)
		return
	}
	if validationErrors, ok := dto.Ok(); !ok {
		writeValidationErrors(w, validationErrors)
		return
	}
	storeID, _ := uuid.Parse(dto.StoreID)

	created, err := c.pixelService.Create(r.Context(), services.CreatePixelDTO{
		StoreID:    storeID,
		ExternalID: dto.ExternalID,
	})
	if err != nil {
		http.Error(w, errMsgInternalServerError, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, toPixelResponse(created))
}

func (c *PixelsController) List(w http.ResponseWriter, r *http.Request) {
	storeID, err := uuid.Parse(r.URL.Query().Get("store_id"))
	if err != nil {
		http.Error(w, "invalid store_id", http.StatusBadRequest)
		return
	}
	pixels, err := c.pixelService.ListByStore(r.Context(), storeID)
	if err != nil {
		http.Error(w, errMsgInternalServerError, http.StatusInternalServerError)
		return
	}
	items := make([]pixelResponse, 0, len(pixels))
	for _, item := range pixels {
		items = append(items, toPixelResponse(item))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (c *PixelsController) BindCatalog(w http.ResponseWriter, r *http.Request) {
	pixelID, ok := pathUUID(r, "id")
	if !ok {
		http.Error(w, "invalid pixel id", http.StatusBadRequest)
		return
	}
	dto := &dtos.BindCatalogDTO{}
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		http.Error(w, errMsgInvalidJSON, http.StatusBadRequest)
		return
	}
	if validationErrors, ok := dto.Ok(); !ok {
		writeValidationErrors(w, validationErrors)
		return
	}
	catalogID, _ := uuid.Parse(dto.CatalogID)

	updated, err := c.pixelService.BindCatalog(r.Context(), pixelID, catalogID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCatalogOwnership):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, pixel.ErrNotFound), errors.Is(err, catalog.ErrNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			http.Error(w, errMsgInternalServerError, http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, toPixelResponse(updated))
}

func (c *PixelsController) UnbindCatalog(w http.ResponseWriter, r *http.Request) {
	pixelID, ok := pathUUID(r, "id")
	if !ok {
		http.Error(w, "invalid pixel id", http.StatusBadRequest)
		return
	}
	updated, err := c.pixelService.UnbindCatalog(r.Context(), pixelID)
	if err != nil {
		if errors.Is(err, pixel.ErrNotFound) {
			http.Error(w, "pixel not found", http.StatusNotFound)
			return
		}
		http.Error(w, errMsgInternalServerError, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toPixelResponse(updated))
}

func (c *PixelsController) Delete(w http.ResponseWriter, r *http.Request) {
	pixelID, ok := pathUUID(r, "id")
	if !ok {
		http.Error(w, "invalid pixel id", http.StatusBadRequest)
		return
	}
	if err := c.pixelService.Delete(r.Context(), pixelID); err != nil {
		http.Error(w, errMsgInternalServerError, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
