package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"bikeshop-backend/internal/domain"
	"bikeshop-backend/internal/repository"
	"bikeshop-backend/internal/service"
)

// BikeHandler serves the inventory endpoints
type BikeHandler struct {
	bikes service.BikeService
}

// NewBikeHandler creates a new bike handler
func NewBikeHandler(bikes service.BikeService) *BikeHandler {
	return &BikeHandler{bikes: bikes}
}

// List handles GET /api/v1/bikes
func (h *BikeHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repository.BikeFilter{
		Status: strings.ToUpper(r.URL.Query().Get("status")),
		Type:   r.URL.Query().Get("type"),
		Search: r.URL.Query().Get("search"),
		Skip:   queryInt32(r, "skip", 0),
		Limit:  queryInt32(r, "limit", 50),
	}

	bikes, total, err := h.bikes.ListBikes(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse{
		Items: bikes,
		Total: total,
		Skip:  filter.Skip,
		Limit: filter.Limit,
	})
}

// Get handles GET /api/v1/bikes/{id}
func (h *BikeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	bike, err := h.bikes.GetBike(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, bike)
}

// Create handles POST /api/v1/bikes
func (h *BikeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var bike domain.Bike
	if err := json.NewDecoder(r.Body).Decode(&bike); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", domain.ErrValidation))
		return
	}

	if err := h.bikes.AddBike(r.Context(), &bike); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, bike)
}

// Update handles PUT /api/v1/bikes/{id}
func (h *BikeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var upd service.BikeUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", domain.ErrValidation))
		return
	}

	bike, err := h.bikes.UpdateBike(r.Context(), id, upd)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, bike)
}

// SetStatus handles PATCH /api/v1/bikes/{id}/status
func (h *BikeHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var body struct {
		Status domain.BikeStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", domain.ErrValidation))
		return
	}

	bike, err := h.bikes.SetBikeStatus(r.Context(), id, body.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, bike)
}

// Delete handles DELETE /api/v1/bikes/{id}
func (h *BikeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.bikes.DeleteBike(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

// SyncStatuses handles POST /api/v1/bikes/sync-status
func (h *BikeHandler) SyncStatuses(w http.ResponseWriter, r *http.Request) {
	changed, err := h.bikes.SyncStatuses(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int32{"updated": changed})
}
