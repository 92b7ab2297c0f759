package service

import (
	"context"
	"fmt"
	"time"

	"bikeshop-backend/internal/domain"
	"bikeshop-backend/internal/logger"
	"bikeshop-backend/internal/repository"
	"bikeshop-backend/internal/utils"
)

type bookingService struct {
	bookingRepo  repository.BookingRepository
	bikeRepo     repository.BikeRepository
	customerRepo repository.CustomerRepository
	emailSvc     EmailService
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	bikeRepo repository.BikeRepository,
	customerRepo repository.CustomerRepository,
	emailSvc EmailService,
) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		bikeRepo:     bikeRepo,
		customerRepo: customerRepo,
		emailSvc:     emailSvc,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	dayCount, err := utils.DayCount(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	status := domain.BookingStatus(req.Status)
	if status == "" {
		status = domain.BookingStatusReserved
	}
	if status != domain.BookingStatusReserved && status != domain.BookingStatusActive {
		return nil, fmt.Errorf("%w: a booking starts out RESERVED or ACTIVE, not %q", domain.ErrValidation, req.Status)
	}

	if len(req.Positions) > 0 && req.BikeID != nil {
		return nil, fmt.Errorf("%w: supply either bike_id or positions, not both", domain.ErrValidation)
	}

	b := &domain.Booking{
		CustomerID:   req.CustomerID,
		Status:       status,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		DayCount:     dayCount,
		DepositCents: req.DepositCents,
		IDChecked:    req.IDChecked,
		ConditionOut: req.ConditionOut,
		Notes:        req.Notes,
	}

	if len(req.Positions) > 0 {
		if err := s.priceAndCreatePooled(ctx, b, req.Positions); err != nil {
			return nil, err
		}
	} else {
		if err := s.priceAndCreateClassic(ctx, b, req); err != nil {
			return nil, err
		}
	}

	logger.Info("Booking created", "booking_id", b.ID, "status", b.Status,
		"units", b.UnitCount, "from", b.StartDate, "to", b.EndDate, "pooled", b.Pooled())

	s.notify(ctx, b, s.emailSvc.SendBookingConfirmation)
	return s.GetBooking(ctx, b.ID)
}

// priceAndCreatePooled prices each (type, count) pair against the cheapest
// available bike of that type and persists booking plus positions. The
// repository re-validates type capacity in the same transaction.
func (s *bookingService) priceAndCreatePooled(ctx context.Context, b *domain.Booking, positions []PositionRequest) error {
	var totalUnits, totalPrice int32
	for _, pos := range positions {
		if pos.Count < 1 {
			return fmt.Errorf("%w: position count must be at least 1", domain.ErrValidation)
		}
		prices, err := s.bikeRepo.MinPricesForType(ctx, pos.BikeType)
		if err != nil {
			return err
		}
		tiers := utils.PriceTiers{Day1Cents: *prices.MinPrice1Cents}
		if prices.MinPrice3Cents != nil {
			tiers.Day3Cents = *prices.MinPrice3Cents
		}
		if prices.MinPrice5Cents != nil {
			tiers.Day5Cents = *prices.MinPrice5Cents
		}
		rate := utils.StagedDayRate(tiers, b.DayCount)

		b.Positions = append(b.Positions, domain.BookingPosition{
			BikeType:        pos.BikeType,
			Count:           pos.Count,
			DayPriceCents:   rate,
			DayCount:        b.DayCount,
			TotalPriceCents: utils.PositionTotal(pos.Count, rate, b.DayCount),
		})
		totalUnits += pos.Count
		totalPrice += b.Positions[len(b.Positions)-1].TotalPriceCents
	}

	b.UnitCount = totalUnits
	b.TotalPriceCents = totalPrice
	// Weighted average per unit and day, for display parity with
	// single-bike bookings. The positions stay the source of truth.
	b.DayPriceCents = totalPrice / (b.DayCount * totalUnits)

	return s.bookingRepo.CreatePooled(ctx, b)
}

// priceAndCreateClassic prices the booking against the bike's own tiers and
// persists it. The repository runs the overlap check in the same transaction
// and flips the bike to RENTED when the booking starts out ACTIVE.
func (s *bookingService) priceAndCreateClassic(ctx context.Context, b *domain.Booking, req CreateBookingRequest) error {
	if req.BikeID == nil {
		return fmt.Errorf("%w: either bike_id or positions is required", domain.ErrValidation)
	}
	bike, err := s.bikeRepo.GetByID(ctx, *req.BikeID)
	if err != nil {
		return err
	}
	if bike.Status != domain.BikeStatusAvailable {
		return fmt.Errorf("%w: bike %s is %s", domain.ErrConflict, bike.InventoryNo, bike.Status)
	}

	units := req.UnitCount
	if units < 1 {
		units = 1
	}

	day1, day3, day5 := bike.PriceTiers()
	rate := utils.StagedDayRate(utils.PriceTiers{Day1Cents: day1, Day3Cents: day3, Day5Cents: day5}, b.DayCount)

	b.BikeID = req.BikeID
	b.UnitCount = units
	b.DayPriceCents = rate
	b.TotalPriceCents = rate * b.DayCount * units

	return s.bookingRepo.CreateClassic(ctx, b)
}

func (s *bookingService) GetBooking(ctx context.Context, id int32) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.BikeID != nil {
		if bike, err := s.bikeRepo.GetByID(ctx, *b.BikeID); err == nil {
			b.Bike = bike
		}
	}
	if b.CustomerID != nil {
		// A missing customer on a legacy booking is acceptable.
		if c, err := s.customerRepo.GetByID(ctx, *b.CustomerID); err == nil {
			b.Customer = c
		}
	}
	return b, nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, id int32, upd BookingUpdate) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Status != nil && *upd.Status != b.Status {
		if !domain.ValidBookingStatus(*upd.Status) {
			return nil, fmt.Errorf("%w: unknown booking status %q", domain.ErrValidation, *upd.Status)
		}
		if !b.Status.Live() {
			return nil, fmt.Errorf("%w: booking %d is %s and cannot change status", domain.ErrConflict, id, b.Status)
		}
		switch *upd.Status {
		case domain.BookingStatusCompleted:
			return s.CheckIn(ctx, id, stringOr(upd.ReturnDate, today()),
				stringOr(upd.ConditionIn, b.ConditionIn), stringOr(upd.DamageNotes, b.DamageNotes))
		case domain.BookingStatusCancelled:
			return s.CancelBooking(ctx, id)
		case domain.BookingStatusActive:
			b.Status = domain.BookingStatusActive
		default:
			return nil, fmt.Errorf("%w: booking %d cannot go back to %s", domain.ErrConflict, id, *upd.Status)
		}
	}

	rePrice := false
	if upd.StartDate != nil {
		b.StartDate = *upd.StartDate
		rePrice = true
	}
	if upd.EndDate != nil {
		b.EndDate = *upd.EndDate
		rePrice = true
	}
	if rePrice {
		// Positions are immutable snapshots, so a pooled booking cannot be
		// re-dated without invalidating them. Cancel and rebook instead.
		if len(b.Positions) > 0 {
			return nil, fmt.Errorf("%w: booking %d is type-based and cannot be re-dated; cancel and rebook", domain.ErrConflict, id)
		}
		// Snapshot day rates are kept; only the duration-dependent fields move.
		dayCount, err := utils.DayCount(b.StartDate, b.EndDate)
		if err != nil {
			return nil, err
		}
		b.DayCount = dayCount
		b.TotalPriceCents = b.DayPriceCents * dayCount * b.BookedUnits()
	}
	if upd.StartTime != nil {
		b.StartTime = upd.StartTime
	}
	if upd.EndTime != nil {
		b.EndTime = upd.EndTime
	}
	if upd.ReturnDate != nil {
		b.ReturnDate = upd.ReturnDate
	}
	if upd.DepositReturned != nil {
		b.DepositReturned = *upd.DepositReturned
	}
	if upd.Paid != nil {
		b.Paid = *upd.Paid
		if *upd.Paid && b.PaidOn == nil {
			paidOn := today()
			b.PaidOn = &paidOn
		}
	}
	if upd.IDChecked != nil {
		b.IDChecked = *upd.IDChecked
	}
	if upd.PickedUp != nil && *upd.PickedUp && !b.PickedUp {
		b.PickedUp = true
		now := time.Now().Format(time.RFC3339)
		b.PickupTime = &now
		if b.Status == domain.BookingStatusReserved {
			b.Status = domain.BookingStatusActive
		}
	}
	if upd.ConditionOut != nil {
		b.ConditionOut = *upd.ConditionOut
	}
	if upd.ConditionIn != nil {
		b.ConditionIn = *upd.ConditionIn
	}
	if upd.DamageNotes != nil {
		b.DamageNotes = *upd.DamageNotes
	}
	if upd.Notes != nil {
		b.Notes = *upd.Notes
	}

	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	// Going ACTIVE marks the bound bike as out of the door.
	if b.Status == domain.BookingStatusActive && b.BikeID != nil {
		if err := s.bikeRepo.UpdateStatus(ctx, *b.BikeID, domain.BikeStatusRented); err != nil {
			logger.Error("Failed to mark bike rented", "bike_id", *b.BikeID, "error", err)
		}
	}

	return s.GetBooking(ctx, id)
}

func (s *bookingService) CheckIn(ctx context.Context, id int32, returnDate, conditionIn, damageNotes string) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.Status.Live() {
		return nil, fmt.Errorf("%w: booking %d is %s and cannot be checked in", domain.ErrConflict, id, b.Status)
	}

	if returnDate == "" {
		returnDate = today()
	}
	if _, err := utils.ParseDate(returnDate); err != nil {
		return nil, err
	}

	b.Status = domain.BookingStatusCompleted
	b.ReturnDate = &returnDate
	// Condition and damage recorded earlier survive a bare check-in.
	if conditionIn != "" {
		b.ConditionIn = conditionIn
	}
	if damageNotes != "" {
		b.DamageNotes = damageNotes
	}

	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	if b.BikeID != nil {
		// Damage reported at return routes the bike to the workshop
		// instead of back onto the floor.
		next := domain.BikeStatusAvailable
		if b.DamageNotes != "" {
			next = domain.BikeStatusMaintenance
		}
		if err := s.bikeRepo.UpdateStatus(ctx, *b.BikeID, next); err != nil {
			logger.Error("Failed to release bike on check-in", "bike_id", *b.BikeID, "error", err)
		}
	}

	logger.Info("Booking checked in", "booking_id", id, "return_date", returnDate, "damaged", b.DamageNotes != "")
	return s.GetBooking(ctx, id)
}

func (s *bookingService) CancelBooking(ctx context.Context, id int32) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.Status.Live() {
		return nil, fmt.Errorf("%w: booking %d is %s and cannot be cancelled", domain.ErrConflict, id, b.Status)
	}

	b.Status = domain.BookingStatusCancelled
	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	if b.BikeID != nil {
		bike, err := s.bikeRepo.GetByID(ctx, *b.BikeID)
		if err == nil && bike.Status == domain.BikeStatusRented {
			if err := s.bikeRepo.UpdateStatus(ctx, *b.BikeID, domain.BikeStatusAvailable); err != nil {
				logger.Error("Failed to release bike on cancel", "bike_id", *b.BikeID, "error", err)
			}
		}
	}

	logger.Info("Booking cancelled", "booking_id", id)
	s.notify(ctx, b, s.emailSvc.SendBookingCancellation)
	return s.GetBooking(ctx, id)
}

func (s *bookingService) DeleteBooking(ctx context.Context, id int32) error {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	// Physical deletion is reserved for bookings that never started;
	// anything else is cancelled so the history stays intact.
	if b.Status != domain.BookingStatusReserved {
		return fmt.Errorf("%w: booking %d is %s; only reserved bookings can be deleted, cancel it instead",
			domain.ErrConflict, id, b.Status)
	}
	return s.bookingRepo.Delete(ctx, id)
}

func (s *bookingService) ListBookings(ctx context.Context, filter repository.BookingFilter) ([]domain.Booking, int32, error) {
	return s.bookingRepo.List(ctx, filter)
}

// notify sends a booking email best-effort; failures are logged, never returned.
func (s *bookingService) notify(ctx context.Context, b *domain.Booking, send func(context.Context, string, string, *domain.Booking) error) {
	if b.CustomerID == nil {
		return
	}
	c, err := s.customerRepo.GetByID(ctx, *b.CustomerID)
	if err != nil || c.Email == "" {
		return
	}
	if err := send(ctx, c.Email, c.DisplayName(), b); err != nil {
		logger.Error("Failed to send booking email", "booking_id", b.ID, "error", err)
	}
}

func today() string {
	return time.Now().Format("2006-01-02")
}

func stringOr(p *string, fallback string) string {
	if p != nil {
		return *p
	}
	return fallback
}
