package service_test

import (
	"context"
	"testing"

	"bikeshop-backend/internal/domain"
	"bikeshop-backend/internal/repository"
	"bikeshop-backend/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	ctx := context.Background()

	t.Run("Overlapping bookings consume capacity", func(t *testing.T) {
		bikeRepo := new(MockBikeRepo)
		bookingRepo := new(MockBookingRepo)
		svc := service.NewAvailabilityService(bikeRepo, bookingRepo, 5)

		bikeRepo.On("CountFleet", ctx).Return(int32(3), nil)
		bookingRepo.On("ListOverlapping", ctx, "2026-06-01", "2026-06-03").Return([]domain.Booking{
			{ID: 1, BikeID: int32Ptr(1), UnitCount: 1, StartDate: "2026-05-30", EndDate: "2026-06-02",
				Status:   domain.BookingStatusActive,
				Customer: &domain.Customer{ID: 1, FirstName: "Anna", LastName: "Schmidt"}},
			{ID: 2, BikeID: int32Ptr(2), UnitCount: 1, StartDate: "2026-06-02", EndDate: "2026-06-05",
				Status: domain.BookingStatusReserved},
		}, nil)

		sum, err := svc.Aggregate(ctx, "2026-06-01", "2026-06-03")
		assert.NoError(t, err)
		assert.Equal(t, int32(3), sum.Total)
		assert.Equal(t, int32(2), sum.Booked)
		assert.Equal(t, int32(1), sum.Available)
		assert.True(t, sum.LowAvailability)
		assert.Len(t, sum.Bookings, 2)
		assert.Equal(t, "Anna Schmidt", sum.Bookings[0].CustomerName)
	})

	t.Run("Pooled bookings count their position units", func(t *testing.T) {
		bikeRepo := new(MockBikeRepo)
		bookingRepo := new(MockBookingRepo)
		svc := service.NewAvailabilityService(bikeRepo, bookingRepo, 5)

		bikeRepo.On("CountFleet", ctx).Return(int32(20), nil)
		bookingRepo.On("ListOverlapping", ctx, "2026-07-01", "2026-07-05").Return([]domain.Booking{
			{ID: 3, UnitCount: 5, StartDate: "2026-07-01", EndDate: "2026-07-05",
				Status: domain.BookingStatusReserved,
				Positions: []domain.BookingPosition{
					{BikeType: "E-Bike", Count: 2},
					{BikeType: "Trekking", Count: 3},
				}},
		}, nil)

		sum, err := svc.Aggregate(ctx, "2026-07-01", "2026-07-05")
		assert.NoError(t, err)
		assert.Equal(t, int32(5), sum.Booked)
		assert.Equal(t, int32(15), sum.Available)
		assert.False(t, sum.LowAvailability)
	})

	t.Run("Available never goes negative", func(t *testing.T) {
		bikeRepo := new(MockBikeRepo)
		bookingRepo := new(MockBookingRepo)
		svc := service.NewAvailabilityService(bikeRepo, bookingRepo, 5)

		bikeRepo.On("CountFleet", ctx).Return(int32(1), nil)
		bookingRepo.On("ListOverlapping", ctx, "2026-06-01", "2026-06-03").Return([]domain.Booking{
			{ID: 1, UnitCount: 4, StartDate: "2026-06-01", EndDate: "2026-06-03", Status: domain.BookingStatusActive},
		}, nil)

		sum, err := svc.Aggregate(ctx, "2026-06-01", "2026-06-03")
		assert.NoError(t, err)
		assert.Equal(t, int32(0), sum.Available)
	})

	t.Run("Invalid range is rejected", func(t *testing.T) {
		svc := service.NewAvailabilityService(new(MockBikeRepo), new(MockBookingRepo), 5)
		_, err := svc.Aggregate(ctx, "2026-06-05", "2026-06-01")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestByType(t *testing.T) {
	ctx := context.Background()

	t.Run("Min prices and booked units per type", func(t *testing.T) {
		bikeRepo := new(MockBikeRepo)
		bookingRepo := new(MockBookingRepo)
		svc := service.NewAvailabilityService(bikeRepo, bookingRepo, 5)

		ebike := "E-Bike"
		bikeRepo.On("TypeSummaries", ctx).Return([]repository.TypeSummary{
			{Type: "E-Bike", Total: 4, MinPrice1Cents: int32Ptr(3000), MinPrice3Cents: int32Ptr(2700), MinPrice5Cents: int32Ptr(2500)},
			{Type: "Trekking", Total: 6, MinPrice1Cents: int32Ptr(2000)},
		}, nil)
		bookingRepo.On("ListOverlapping", ctx, "2026-07-01", "2026-07-05").Return([]domain.Booking{
			{ID: 1, UnitCount: 2, Status: domain.BookingStatusReserved,
				Positions: []domain.BookingPosition{{BikeType: "E-Bike", Count: 2}}},
			{ID: 2, BikeID: int32Ptr(9), UnitCount: 1, Status: domain.BookingStatusActive,
				Bike: &domain.Bike{ID: 9, Type: &ebike}},
		}, nil)

		byType, err := svc.ByType(ctx, "2026-07-01", "2026-07-05")
		assert.NoError(t, err)

		eb := byType["E-Bike"]
		assert.Equal(t, int32(4), eb.Total)
		assert.Equal(t, int32(3), eb.Booked) // 2 pooled + 1 classic
		assert.Equal(t, int32(1), eb.Available)
		assert.Equal(t, int32(2500), eb.Price5DayCents)
		assert.True(t, eb.Rentable)

		tr := byType["Trekking"]
		assert.Equal(t, int32(6), tr.Total)
		assert.Equal(t, int32(0), tr.Booked)
		assert.Equal(t, int32(2000), tr.Price1DayCents)
	})

	t.Run("Without a range the whole fleet is free", func(t *testing.T) {
		bikeRepo := new(MockBikeRepo)
		bookingRepo := new(MockBookingRepo)
		svc := service.NewAvailabilityService(bikeRepo, bookingRepo, 5)

		bikeRepo.On("TypeSummaries", ctx).Return([]repository.TypeSummary{
			{Type: "City", Total: 3, MinPrice1Cents: int32Ptr(1500)},
		}, nil)

		byType, err := svc.ByType(ctx, "", "")
		assert.NoError(t, err)
		assert.Equal(t, int32(3), byType["City"].Available)
		bookingRepo.AssertNotCalled(t, "ListOverlapping", ctx, "", "")
	})

	t.Run("Free fleet and defective types", func(t *testing.T) {
		bikeRepo := new(MockBikeRepo)
		bookingRepo := new(MockBookingRepo)
		svc := service.NewAvailabilityService(bikeRepo, bookingRepo, 5)

		bikeRepo.On("TypeSummaries", ctx).Return([]repository.TypeSummary{
			{Type: domain.BikeTypeCargo, Total: 1, MinPrice1Cents: int32Ptr(9900)},
			{Type: domain.BikeTypeWorkshop, Total: 2, MinPrice1Cents: int32Ptr(100)},
			{Type: "defekt", Total: 2, MinPrice1Cents: int32Ptr(1000)},
		}, nil)

		byType, err := svc.ByType(ctx, "", "")
		assert.NoError(t, err)

		cargo := byType[domain.BikeTypeCargo]
		assert.Equal(t, int32(0), cargo.Price1DayCents)
		assert.NotEmpty(t, cargo.Note)
		assert.True(t, cargo.Rentable)

		workshop := byType[domain.BikeTypeWorkshop]
		assert.Equal(t, int32(0), workshop.Price1DayCents)
		assert.True(t, workshop.Rentable)

		assert.False(t, byType["defekt"].Rentable)
	})
}
