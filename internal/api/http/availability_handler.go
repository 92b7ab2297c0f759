package http

import (
	"net/http"

	"bikeshop-backend/internal/service"
)

// AvailabilityHandler serves the availability endpoints
type AvailabilityHandler struct {
	availability service.AvailabilityService
}

// NewAvailabilityHandler creates a new availability handler
func NewAvailabilityHandler(availability service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// Aggregate handles GET /api/v1/availability?from_date=...&to_date=...
func (h *AvailabilityHandler) Aggregate(w http.ResponseWriter, r *http.Request) {
	summary, err := h.availability.Aggregate(r.Context(),
		r.URL.Query().Get("from_date"),
		r.URL.Query().Get("to_date"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// ByType handles GET /api/v1/availability/by-type. The date range is
// optional; without one the whole fleet is reported with zero booked units.
func (h *AvailabilityHandler) ByType(w http.ResponseWriter, r *http.Request) {
	byType, err := h.availability.ByType(r.Context(),
		r.URL.Query().Get("from_date"),
		r.URL.Query().Get("to_date"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, byType)
}
