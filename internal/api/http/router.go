package http

import (
	"net/http"

	"bikeshop-backend/internal/service"

	"github.com/gorilla/mux"
)

// NewRouter wires all API routes
func NewRouter(bikes service.BikeService, bookings service.BookingService, availability service.AvailabilityService) *mux.Router {
	bikeHandler := NewBikeHandler(bikes)
	bookingHandler := NewBookingHandler(bookings)
	availabilityHandler := NewAvailabilityHandler(availability)

	r := mux.NewRouter()
	r.Use(RequestLogging)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Inventory
	api.HandleFunc("/bikes", bikeHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/bikes", bikeHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/bikes/sync-status", bikeHandler.SyncStatuses).Methods(http.MethodPost)
	api.HandleFunc("/bikes/{id:[0-9]+}", bikeHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/bikes/{id:[0-9]+}", bikeHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/bikes/{id:[0-9]+}", bikeHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/bikes/{id:[0-9]+}/status", bikeHandler.SetStatus).Methods(http.MethodPatch)

	// Bookings
	api.HandleFunc("/bookings", bookingHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/bookings", bookingHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id:[0-9]+}", bookingHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id:[0-9]+}", bookingHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/bookings/{id:[0-9]+}", bookingHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/bookings/{id:[0-9]+}/checkin", bookingHandler.CheckIn).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id:[0-9]+}/cancel", bookingHandler.Cancel).Methods(http.MethodPost)

	// Availability
	api.HandleFunc("/availability", availabilityHandler.Aggregate).Methods(http.MethodGet)
	api.HandleFunc("/availability/by-type", availabilityHandler.ByType).Methods(http.MethodGet)

	return r
}
