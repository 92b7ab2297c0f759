package service_test

import (
	"context"

	"bikeshop-backend/internal/domain"
	"bikeshop-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockBikeRepo struct {
	mock.Mock
}

func (m *MockBikeRepo) Create(ctx context.Context, bike *domain.Bike) error {
	args := m.Called(ctx, bike)
	return args.Error(0)
}

func (m *MockBikeRepo) GetByID(ctx context.Context, id int32) (*domain.Bike, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bike), args.Error(1)
}

func (m *MockBikeRepo) Update(ctx context.Context, bike *domain.Bike) error {
	args := m.Called(ctx, bike)
	return args.Error(0)
}

func (m *MockBikeRepo) UpdateStatus(ctx context.Context, id int32, status domain.BikeStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBikeRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBikeRepo) List(ctx context.Context, filter repository.BikeFilter) ([]domain.Bike, int32, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Bike), args.Get(1).(int32), args.Error(2)
}

func (m *MockBikeRepo) CountFleet(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}

func (m *MockBikeRepo) TypeSummaries(ctx context.Context) ([]repository.TypeSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.TypeSummary), args.Error(1)
}

func (m *MockBikeRepo) MinPricesForType(ctx context.Context, bikeType string) (*repository.TypeSummary, error) {
	args := m.Called(ctx, bikeType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.TypeSummary), args.Error(1)
}

func (m *MockBikeRepo) SyncStatuses(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}

type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) CreateClassic(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepo) CreatePooled(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) Update(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingRepo) List(ctx context.Context, filter repository.BookingFilter) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}

func (m *MockBookingRepo) ListOverlapping(ctx context.Context, fromDate, toDate string) ([]domain.Booking, error) {
	args := m.Called(ctx, fromDate, toDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) HasLiveForBike(ctx context.Context, bikeID int32) (bool, error) {
	args := m.Called(ctx, bikeID)
	return args.Bool(0), args.Error(1)
}

type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepo) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingConfirmation(ctx context.Context, email, name string, b *domain.Booking) error {
	args := m.Called(ctx, email, name, b)
	return args.Error(0)
}

func (m *MockEmailService) SendBookingCancellation(ctx context.Context, email, name string, b *domain.Booking) error {
	args := m.Called(ctx, email, name, b)
	return args.Error(0)
}

func (m *MockEmailService) SendReturnReminder(ctx context.Context, email, name string, b *domain.Booking) error {
	args := m.Called(ctx, email, name, b)
	return args.Error(0)
}
