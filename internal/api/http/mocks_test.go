package http_test

import (
	"context"

	"bikeshop-backend/internal/domain"
	"bikeshop-backend/internal/repository"
	"bikeshop-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockBikeService
type MockBikeService struct {
	mock.Mock
}

func (m *MockBikeService) AddBike(ctx context.Context, bike *domain.Bike) error {
	args := m.Called(ctx, bike)
	return args.Error(0)
}
func (m *MockBikeService) GetBike(ctx context.Context, id int32) (*domain.Bike, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bike), args.Error(1)
}
func (m *MockBikeService) UpdateBike(ctx context.Context, id int32, upd service.BikeUpdate) (*domain.Bike, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bike), args.Error(1)
}
func (m *MockBikeService) DeleteBike(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockBikeService) SetBikeStatus(ctx context.Context, id int32, status domain.BikeStatus) (*domain.Bike, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bike), args.Error(1)
}
func (m *MockBikeService) ListBikes(ctx context.Context, filter repository.BikeFilter) ([]domain.Bike, int32, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Bike), args.Get(1).(int32), args.Error(2)
}
func (m *MockBikeService) SyncStatuses(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}

// MockBookingService
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateBooking(ctx context.Context, req service.CreateBookingRequest) (*domain.Booking, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) GetBooking(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) UpdateBooking(ctx context.Context, id int32, upd service.BookingUpdate) (*domain.Booking, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) CheckIn(ctx context.Context, id int32, returnDate, conditionIn, damageNotes string) (*domain.Booking, error) {
	args := m.Called(ctx, id, returnDate, conditionIn, damageNotes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) CancelBooking(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) DeleteBooking(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockBookingService) ListBookings(ctx context.Context, filter repository.BookingFilter) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}

// MockAvailabilityService
type MockAvailabilityService struct {
	mock.Mock
}

func (m *MockAvailabilityService) Aggregate(ctx context.Context, fromDate, toDate string) (*domain.AvailabilitySummary, error) {
	args := m.Called(ctx, fromDate, toDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AvailabilitySummary), args.Error(1)
}
func (m *MockAvailabilityService) ByType(ctx context.Context, fromDate, toDate string) (map[string]domain.TypeAvailability, error) {
	args := m.Called(ctx, fromDate, toDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.TypeAvailability), args.Error(1)
}
