package service

import (
	"context"

	"bikeshop-backend/internal/domain"
	"bikeshop-backend/internal/repository"
)

// BikeUpdate carries a partial bike update; nil fields are left unchanged.
type BikeUpdate struct {
	InventoryNo    *string            `json:"inventory_no"`
	FrameNo        *string            `json:"frame_no"`
	Brand          *string            `json:"brand"`
	Model          *string            `json:"model"`
	Color          *string            `json:"color"`
	FrameSize      *string            `json:"frame_size"`
	Type           *string            `json:"type"`
	Price1DayCents *int32             `json:"price_1day_cents"`
	Price3DayCents *int32             `json:"price_3day_cents"`
	Price5DayCents *int32             `json:"price_5day_cents"`
	Status         *domain.BikeStatus `json:"status"`
	CheckStatus    *string            `json:"check_status"`
	Condition      *string            `json:"condition"`
	LastServiceOn  *string            `json:"last_service_on"`
	NextServiceOn  *string            `json:"next_service_on"`
	Notes          *string            `json:"notes"`
}

// PositionRequest is one (type, count) line of a pooled booking request.
type PositionRequest struct {
	BikeType string `json:"bike_type"`
	Count    int32  `json:"count"`
}

// CreateBookingRequest is the creation payload for both booking modes.
// BikeID selects classic mode; Positions selects pooled mode. Prices are
// always computed server-side.
type CreateBookingRequest struct {
	BikeID       *int32            `json:"bike_id"`
	CustomerID   *int32            `json:"customer_id"`
	StartDate    string            `json:"start_date"`
	EndDate      string            `json:"end_date"`
	StartTime    *string           `json:"start_time"`
	EndTime      *string           `json:"end_time"`
	Status       string            `json:"status"`
	UnitCount    int32             `json:"unit_count"`
	DepositCents int32             `json:"deposit_cents"`
	IDChecked    bool              `json:"id_checked"`
	ConditionOut string            `json:"condition_out"`
	Notes        string            `json:"notes"`
	Positions    []PositionRequest `json:"positions"`
}

// BookingUpdate carries a partial booking update; nil fields are unchanged.
type BookingUpdate struct {
	StartDate       *string               `json:"start_date"`
	EndDate         *string               `json:"end_date"`
	StartTime       *string               `json:"start_time"`
	EndTime         *string               `json:"end_time"`
	ReturnDate      *string               `json:"return_date"`
	Status          *domain.BookingStatus `json:"status"`
	DepositReturned *bool                 `json:"deposit_returned"`
	Paid            *bool                 `json:"paid"`
	IDChecked       *bool                 `json:"id_checked"`
	PickedUp        *bool                 `json:"picked_up"`
	ConditionOut    *string               `json:"condition_out"`
	ConditionIn     *string               `json:"condition_in"`
	DamageNotes     *string               `json:"damage_notes"`
	Notes           *string               `json:"notes"`
}

type BikeService interface {
	AddBike(ctx context.Context, bike *domain.Bike) error
	GetBike(ctx context.Context, id int32) (*domain.Bike, error)
	UpdateBike(ctx context.Context, id int32, upd BikeUpdate) (*domain.Bike, error)
	DeleteBike(ctx context.Context, id int32) error
	SetBikeStatus(ctx context.Context, id int32, status domain.BikeStatus) (*domain.Bike, error)
	ListBikes(ctx context.Context, filter repository.BikeFilter) ([]domain.Bike, int32, error)
	SyncStatuses(ctx context.Context) (int32, error)
}

type BookingService interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error)
	GetBooking(ctx context.Context, id int32) (*domain.Booking, error)
	UpdateBooking(ctx context.Context, id int32, upd BookingUpdate) (*domain.Booking, error)
	CheckIn(ctx context.Context, id int32, returnDate, conditionIn, damageNotes string) (*domain.Booking, error)
	CancelBooking(ctx context.Context, id int32) (*domain.Booking, error)
	DeleteBooking(ctx context.Context, id int32) error
	ListBookings(ctx context.Context, filter repository.BookingFilter) ([]domain.Booking, int32, error)
}

type AvailabilityService interface {
	Aggregate(ctx context.Context, fromDate, toDate string) (*domain.AvailabilitySummary, error)
	ByType(ctx context.Context, fromDate, toDate string) (map[string]domain.TypeAvailability, error)
}

type EmailService interface {
	SendBookingConfirmation(ctx context.Context, email, name string, b *domain.Booking) error
	SendBookingCancellation(ctx context.Context, email, name string, b *domain.Booking) error
	SendReturnReminder(ctx context.Context, email, name string, b *domain.Booking) error
}
