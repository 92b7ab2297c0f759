package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpapi "bikeshop-backend/internal/api/http"
	"bikeshop-backend/internal/domain"
	"bikeshop-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newRouter(bikes *MockBikeService, bookings *MockBookingService, availability *MockAvailabilityService) http.Handler {
	return httpapi.NewRouter(bikes, bookings, availability)
}

func TestGetBike(t *testing.T) {
	bikes := new(MockBikeService)
	router := newRouter(bikes, new(MockBookingService), new(MockAvailabilityService))

	t.Run("Found", func(t *testing.T) {
		bikes.On("GetBike", mock.Anything, int32(7)).
			Return(&domain.Bike{ID: 7, InventoryNo: "CB-007", Brand: "Cube"}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/bikes/7", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

		var bike domain.Bike
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bike))
		assert.Equal(t, "CB-007", bike.InventoryNo)
	})

	t.Run("Not found", func(t *testing.T) {
		bikes.On("GetBike", mock.Anything, int32(99)).
			Return(nil, domain.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/bikes/99", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCreateBike(t *testing.T) {
	bikes := new(MockBikeService)
	router := newRouter(bikes, new(MockBookingService), new(MockAvailabilityService))

	t.Run("Created", func(t *testing.T) {
		bikes.On("AddBike", mock.Anything, mock.MatchedBy(func(b *domain.Bike) bool {
			return b.InventoryNo == "CB-001" && b.Price1DayCents == 2000
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Bike).ID = 1
		}).Return(nil).Once()

		body := `{"inventory_no":"CB-001","brand":"Cube","price_1day_cents":2000}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bikes", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("Validation failure", func(t *testing.T) {
		bikes.On("AddBike", mock.Anything, mock.Anything).
			Return(domain.ErrValidation).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/bikes", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bikes", strings.NewReader(`{broken`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreateBooking(t *testing.T) {
	bookings := new(MockBookingService)
	router := newRouter(new(MockBikeService), bookings, new(MockAvailabilityService))

	t.Run("Pooled booking", func(t *testing.T) {
		bookings.On("CreateBooking", mock.Anything, mock.MatchedBy(func(req service.CreateBookingRequest) bool {
			return len(req.Positions) == 1 && req.Positions[0].Count == 2
		})).Return(&domain.Booking{ID: 50, Status: domain.BookingStatusReserved, UnitCount: 2}, nil).Once()

		body := `{"start_date":"2026-07-01","end_date":"2026-07-05","positions":[{"bike_type":"E-Bike","count":2}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("Double booking conflict", func(t *testing.T) {
		bookings.On("CreateBooking", mock.Anything, mock.Anything).
			Return(nil, domain.ErrConflict).Once()

		body := `{"bike_id":7,"start_date":"2026-06-01","end_date":"2026-06-03"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestCheckInBooking(t *testing.T) {
	bookings := new(MockBookingService)
	router := newRouter(new(MockBikeService), bookings, new(MockAvailabilityService))

	bookings.On("CheckIn", mock.Anything, int32(10), "2026-06-02", "good", "").
		Return(&domain.Booking{ID: 10, Status: domain.BookingStatusCompleted}, nil).Once()

	body := `{"return_date":"2026-06-02","condition_in":"good"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/10/checkin", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	bookings.AssertExpectations(t)
}

func TestAvailability(t *testing.T) {
	availability := new(MockAvailabilityService)
	router := newRouter(new(MockBikeService), new(MockBookingService), availability)

	t.Run("Aggregate", func(t *testing.T) {
		availability.On("Aggregate", mock.Anything, "2026-06-01", "2026-06-03").
			Return(&domain.AvailabilitySummary{Total: 3, Booked: 2, Available: 1, LowAvailability: true}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?from_date=2026-06-01&to_date=2026-06-03", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var sum domain.AvailabilitySummary
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sum))
		assert.Equal(t, int32(1), sum.Available)
		assert.True(t, sum.LowAvailability)
	})

	t.Run("Missing range", func(t *testing.T) {
		availability.On("Aggregate", mock.Anything, "", "").
			Return(nil, domain.ErrValidation).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/availability", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("By type", func(t *testing.T) {
		availability.On("ByType", mock.Anything, "", "").
			Return(map[string]domain.TypeAvailability{
				"E-Bike": {Total: 4, Available: 4, Rentable: true, Price1DayCents: 3000},
			}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/availability/by-type", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var byType map[string]domain.TypeAvailability
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &byType))
		assert.Equal(t, int32(4), byType["E-Bike"].Total)
	})
}

func TestDeleteBooking(t *testing.T) {
	bookings := new(MockBookingService)
	router := newRouter(new(MockBikeService), bookings, new(MockAvailabilityService))

	t.Run("Reserved booking deleted", func(t *testing.T) {
		bookings.On("DeleteBooking", mock.Anything, int32(10)).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/bookings/10", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("Active booking conflicts", func(t *testing.T) {
		bookings.On("DeleteBooking", mock.Anything, int32(11)).Return(domain.ErrConflict).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/bookings/11", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}
