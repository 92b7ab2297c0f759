package repository

import (
	"context"

	"bikeshop-backend/internal/domain"
)

// BikeFilter narrows bike listings.
type BikeFilter struct {
	Status string
	Type   string
	// Search matches inventory number, brand or model (substring).
	Search string
	Skip   int32
	Limit  int32
}

// BookingFilter narrows booking listings.
type BookingFilter struct {
	Status     string
	CustomerID int32
	FromDate   string
	ToDate     string
	Skip       int32
	Limit      int32
}

// TypeSummary is the per-type fleet aggregate: how many bikes carry the type
// and the cheapest advertised price tiers across them.
type TypeSummary struct {
	Type           string
	Total          int32
	MinPrice1Cents *int32
	MinPrice3Cents *int32
	MinPrice5Cents *int32
}

type BikeRepository interface {
	Create(ctx context.Context, bike *domain.Bike) error
	GetByID(ctx context.Context, id int32) (*domain.Bike, error)
	Update(ctx context.Context, bike *domain.Bike) error
	UpdateStatus(ctx context.Context, id int32, status domain.BikeStatus) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, filter BikeFilter) ([]domain.Bike, int32, error)

	// CountFleet counts every bike with a non-null type, regardless of status.
	CountFleet(ctx context.Context) (int32, error)

	// TypeSummaries groups the fleet by type with MIN price tiers.
	TypeSummaries(ctx context.Context) ([]TypeSummary, error)

	// MinPricesForType returns the cheapest price tiers across AVAILABLE
	// bikes of the given type, or ErrValidation when no priced bike exists.
	MinPricesForType(ctx context.Context, bikeType string) (*TypeSummary, error)

	// SyncStatuses recomputes RENTED/AVAILABLE for the whole fleet from
	// live booking state. Maintenance and defective bikes are untouched.
	// Returns the number of bikes whose status changed.
	SyncStatuses(ctx context.Context) (int32, error)
}

type BookingRepository interface {
	// CreateClassic inserts a single-bike booking inside one transaction:
	// it re-checks that no live booking overlaps the range on the same bike,
	// inserts the row, and flips the bike to RENTED when the booking is
	// created ACTIVE. Overlap maps to ErrConflict.
	CreateClassic(ctx context.Context, b *domain.Booking) error

	// CreatePooled inserts a type-based booking and its positions inside one
	// serializable transaction, re-validating per-type capacity against
	// overlapping live bookings. Insufficient capacity maps to ErrConflict.
	CreatePooled(ctx context.Context, b *domain.Booking) error

	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error

	// Delete physically removes a booking; positions cascade.
	Delete(ctx context.Context, id int32) error

	List(ctx context.Context, filter BookingFilter) ([]domain.Booking, int32, error)

	// ListOverlapping returns live bookings overlapping [fromDate, toDate]
	// with positions, bike type and customer name loaded.
	ListOverlapping(ctx context.Context, fromDate, toDate string) ([]domain.Booking, error)

	// HasLiveForBike reports whether any RESERVED/ACTIVE booking references
	// the bike.
	HasLiveForBike(ctx context.Context, bikeID int32) (bool, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id int32) (*domain.Customer, error)
}
