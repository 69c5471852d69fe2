package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/pixelport/pixelport/modules/catalog/domain/entities/catalog"
	"github.com/pixelport/pixelport/modules/catalog/presentation/controllers/dtos"
	"github.com/pixelport/pixelport/modules/catalog/services"
	"github.com/pixelport/pixelport/pkg/application"
	"github.com/pixelport/pixelport/pkg/serrors"
)

const (
	errMsgInvalidJSON         = "invalid JSON"
	errMsgInternalServerError = "Internal Server Error"
)

type catalogResponse struct {
	ID         string    `json:"id"`
	StoreID    string    `json:"store_id"`
	ExternalID string    `json:"external_id"`
	Name       string    `json:"name"`
	Enabled    bool      `json:"enabled"`
	CreatedAt  time.Time `json:"created_at"`
}

func toCatalogResponse(c *catalog.Catalog) catalogResponse {
	return catalogResponse{
		ID:         c.ID.String(),
		StoreID:    c.StoreID.String(),
		ExternalID: c.ExternalID,
		Name:       c.Name,
		Enabled:    c.Enabled,
		CreatedAt:  c.CreatedAt,
	}
}

type CatalogsController struct {
	basePath       string
	catalogService *services.CatalogService
}

func NewCatalogsController(app application.Application, basePath string) application.Controller {
	return &CatalogsController{
		basePath:       basePath,
		catalogService: app.Service(services.CatalogService{}).(*services.CatalogService),
	}
}

func (c *CatalogsController) Key() string {
	return c.basePath
}

func (c *CatalogsController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/{id}/enabled", c.SetEnabled).Methods(http.MethodPut)
	router.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeValidationErrors(w http.ResponseWriter, validationErrors serrors.ValidationErrors) {
	fields := make(map[string]string, len(validationErrors))
	for field, err := range validationErrors {
		fields[field] = err.Message
	}
	writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"errors": fields})
}

func pathUUID(r *http.Request, name string) (uuid.UUID, bool) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (c *CatalogsController) Create(w http.ResponseWriter, r *http.Request) {
	dto := &dtos.CreateCatalogDTO{}
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		http.Error(w, errMsgInvalidJSON, http.StatusBadRequest)
		return
	}
	if validationErrors, ok := dto.Ok(); !ok {
		writeValidationErrors(w, validationErrors)
		return
	}
	storeID, _ := uuid.Parse(dto.StoreID)

	created, err := c.catalogService.Create(r.Context(), services.CreateCatalogDTO{
		StoreID:    storeID,
		ExternalID: dto.ExternalID,
		Name:       dto.Name,
	})
	if err != nil {
		http.Error(w, errMsgInternalServerError, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, toCatalogResponse(created))
}

func (c *CatalogsController) List(w http.ResponseWriter, r *http.Request) {
	storeID, err := uuid.Parse(r.URL.Query().Get("store_id"))
	if err != nil {
		http.Error(w, "invalid store_id", http.StatusBadRequest)
		return
	}
	catalogs, err := c.catalogService.ListByStore(r.Context(), storeID)
	if err != nil {
		http.Error(w, errMsgInternalServerError, http.StatusInternalServerError)
		return
	}
	items := make([]catalogResponse, 0, len(catalogs))
	for _, item := range catalogs {
		items = append(items, toCatalogResponse(item))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (c *CatalogsController) SetEnabled(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		http.Error(w, "invalid catalog id", http.StatusBadRequest)
		return
	}
	var body struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, errMsgInvalidJSON, http.StatusBadRequest)
		return
	}
	updated, err := c.catalogService.SetEnabled(r.Context(), id, body.Enabled)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			http.Error(w, "catalog not found", http.StatusNotFound)
			return
		}
		http.Error(w, errMsgInternalServerError, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toCatalogResponse(updated))
}

func (c *CatalogsController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		http.Error(w, "invalid catalog id", http.StatusBadRequest)
		return
	}
	if err := c.catalogService.Delete(r.Context(), id); err != nil {
		http.Error(w, errMsgInternalServerError, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
