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

// BookingHandler serves the booking endpoints
type BookingHandler struct {
	bookings service.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookings service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// List handles GET /api/v1/bookings
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repository.BookingFilter{
		Status:     strings.ToUpper(r.URL.Query().Get("status")),
		CustomerID: queryInt32(r, "customer_id", 0),
		FromDate:   r.URL.Query().Get("from_date"),
		ToDate:     r.URL.Query().Get("to_date"),
		Skip:       queryInt32(r, "skip", 0),
		Limit:      queryInt32(r, "limit", 100),
	}

	bookings, total, err := h.bookings.ListBookings(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse{
		Items: bookings,
		Total: total,
		Skip:  filter.Skip,
		Limit: filter.Limit,
	})
}

// Get handles GET /api/v1/bookings/{id}
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	booking, err := h.bookings.GetBooking(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

// Create handles POST /api/v1/bookings
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", domain.ErrValidation))
		return
	}

	booking, err := h.bookings.CreateBooking(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, booking)
}

// Update handles PUT /api/v1/bookings/{id}
func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var upd service.BookingUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", domain.ErrValidation))
		return
	}

	booking, err := h.bookings.UpdateBooking(r.Context(), id, upd)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

// CheckIn handles POST /api/v1/bookings/{id}/checkin
func (h *BookingHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var body struct {
		ReturnDate  string `json:"return_date"`
		ConditionIn string `json:"condition_in"`
		DamageNotes string `json:"damage_notes"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, fmt.Errorf("%w: invalid request body", domain.ErrValidation))
			return
		}
	}

	booking, err := h.bookings.CheckIn(r.Context(), id, body.ReturnDate, body.ConditionIn, body.DamageNotes)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

// Cancel handles POST /api/v1/bookings/{id}/cancel
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	booking, err := h.bookings.CancelBooking(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

// Delete handles DELETE /api/v1/bookings/{id}
func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.bookings.DeleteBooking(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
