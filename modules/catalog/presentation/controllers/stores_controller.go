package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/pixelport/pixelport/modules/catalog/domain/entities/store"
	"github.com/pixelport/pixelport/modules/catalog/presentation/controllers/dtos"
	"github.com/pixelport/pixelport/modules/catalog/services"
	"github.com/pixelport/pixelport/pkg/application"
)

// storeResponse never exposes the dispatch credential; HasCredential is all a
// dashboard needs to render connection status.
type storeResponse struct {
	ID            string    `json:"id"`
	Domain        string    `json:"domain"`
	Enabled       bool      `json:"enabled"`
	HasCredential bool      `json:"has_credential"`
	CreatedAt     time.Time `json:"created_at"`
}

func toStoreResponse(s *store.Store) storeResponse {
	return storeResponse{
		ID:            s.ID.String(),
		Domain:        s.Domain,
		Enabled:       s.Enabled,
		HasCredential: s.AccessToken != "",
		CreatedAt:     s.CreatedAt,
	}
}

type StoresController struct {
	basePath     string
	storeService *services.StoreService
}

func NewStoresController(app application.Application, basePath string) application.Controller {
	return &StoresController{
		basePath:     basePath,
		storeService: app.Service(services.StoreService{}).(*services.StoreService),
	}
}

func (c *StoresController) Key() string {
	return c.basePath
}

func (c *StoresController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.Connect).Methods(http.MethodPost)
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/{id}/credential", c.UpdateCredential).Methods(http.MethodPut)
	router.HandleFunc("/{id}/enabled", c.SetEnabled).Methods(http.MethodPut)
}

func (c *StoresController) Connect(w http.ResponseWriter, r *http.Request) {
	dto := &dtos.ConnectStoreDTO{}
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		http.Error(w, errMsgInvalidJSON, http.StatusBadRequest)
		return
	}
	if validationErrors, ok := dto.Ok(); !ok {
		writeValidationErrors(w, validationErrors)
		return
	}

	connected, err := c.storeService.Connect(r.Context(), services.ConnectStoreDTO{
		Domain:      dto.Domain,
		AccessToken: dto.AccessToken,
	})
	if err != nil {
		http.Error(w, errMsgInternalServerError, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, toStoreResponse(connected))
}

func (c *StoresController) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}

	stores, err := c.storeService.List(r.Context(), limit, offset)
	if err != nil {
		http.Error(w, errMsgInternalServerError, http.StatusInternalServerError)
		return
	}
	items := make([]storeResponse, 0, len(stores))
	for _, item := range stores {
		items = append(items, toStoreResponse(item))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (c *StoresController) UpdateCredential(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		http.Error(w, "invalid store id", http.StatusBadRequest)
		return
	}
	dto := &dtos.UpdateCredentialDTO{}
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		http.Error(w, errMsgInvalidJSON, http.StatusBadRequest)
		return
	}
	if validationErrors, ok := dto.Ok(); !ok {
		writeValidationErrors(w, validationErrors)
		return
	}

	updated, err := c.storeService.UpdateCredential(r.Context(), id, dto.AccessToken)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "store not found", http.StatusNotFound)
			return
		}
		http.Error(w, errMsgInternalServerError, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toStoreResponse(updated))
}

func (c *StoresController) SetEnabled(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		http.Error(w, "invalid store id", http.StatusBadRequest)
		return
	}
	var body struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, errMsgInvalidJSON, http.StatusBadRequest)
		return
	}

	updated, err := c.storeService.SetEnabled(r.Context(), id, body.Enabled)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "store not found", http.StatusNotFound)
			return
		}
		http.Error(w, errMsgInternalServerError, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toStoreResponse(updated))
}
