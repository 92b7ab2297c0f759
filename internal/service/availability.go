package service

import (
	"context"
	"strings"

	"bikeshop-backend/internal/domain"
	"bikeshop-backend/internal/repository"
	"bikeshop-backend/internal/utils"
)

type availabilityService struct {
	bikeRepo    repository.BikeRepository
	bookingRepo repository.BookingRepository

	// lowThreshold is the fleet-wide free-unit count below which the
	// aggregate query raises its warning flag.
	lowThreshold int32
}

func NewAvailabilityService(bikeRepo repository.BikeRepository, bookingRepo repository.BookingRepository, lowThreshold int32) AvailabilityService {
	return &availabilityService{bikeRepo: bikeRepo, bookingRepo: bookingRepo, lowThreshold: lowThreshold}
}

func (s *availabilityService) Aggregate(ctx context.Context, fromDate, toDate string) (*domain.AvailabilitySummary, error) {
	if _, err := utils.DayCount(fromDate, toDate); err != nil {
		return nil, err
	}

	// Total is the whole typed fleet. Maintenance and defective units still
	// count toward fleet size; only overlapping bookings consume capacity.
	total, err := s.bikeRepo.CountFleet(ctx)
	if err != nil {
		return nil, err
	}

	overlapping, err := s.bookingRepo.ListOverlapping(ctx, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	summary := &domain.AvailabilitySummary{
		Total:    total,
		FromDate: fromDate,
		ToDate:   toDate,
		Bookings: make([]domain.BookingSlot, 0, len(overlapping)),
	}
	for i := range overlapping {
		b := &overlapping[i]
		units := b.BookedUnits()
		summary.Booked += units

		slot := domain.BookingSlot{
			BookingID: b.ID,
			UnitCount: units,
			StartDate: b.StartDate,
			EndDate:   b.EndDate,
			Status:    b.Status,
		}
		if b.Customer != nil {
			slot.CustomerName = b.Customer.DisplayName()
		}
		summary.Bookings = append(summary.Bookings, slot)
	}

	summary.Available = total - summary.Booked
	if summary.Available < 0 {
		summary.Available = 0
	}
	summary.LowAvailability = summary.Available < s.lowThreshold
	return summary, nil
}

func (s *availabilityService) ByType(ctx context.Context, fromDate, toDate string) (map[string]domain.TypeAvailability, error) {
	withRange := fromDate != "" || toDate != ""
	if withRange {
		if _, err := utils.DayCount(fromDate, toDate); err != nil {
			return nil, err
		}
	}

	summaries, err := s.bikeRepo.TypeSummaries(ctx)
	if err != nil {
		return nil, err
	}

	var overlapping []domain.Booking
	if withRange {
		overlapping, err = s.bookingRepo.ListOverlapping(ctx, fromDate, toDate)
		if err != nil {
			return nil, err
		}
	}

	result := make(map[string]domain.TypeAvailability, len(summaries))
	for _, sum := range summaries {
		ta := domain.TypeAvailability{
			Total:    sum.Total,
			Booked:   bookedUnitsForType(overlapping, sum.Type),
			Rentable: rentableType(sum.Type),
		}
		ta.Available = ta.Total - ta.Booked
		if ta.Available < 0 {
			ta.Available = 0
		}

		if sum.MinPrice1Cents != nil {
			ta.Price1DayCents = *sum.MinPrice1Cents
		}
		if sum.MinPrice3Cents != nil {
			ta.Price3DayCents = *sum.MinPrice3Cents
		}
		if sum.MinPrice5Cents != nil {
			ta.Price5DayCents = *sum.MinPrice5Cents
		}

		// The cargo bike and the workshop pool go out free of charge.
		switch strings.ToLower(sum.Type) {
		case strings.ToLower(domain.BikeTypeCargo):
			ta.Price1DayCents, ta.Price3DayCents, ta.Price5DayCents = 0, 0, 0
			ta.Note = "cargo bike, free of charge"
		case strings.ToLower(domain.BikeTypeWorkshop):
			ta.Price1DayCents, ta.Price3DayCents, ta.Price5DayCents = 0, 0, 0
			ta.Note = "workshop pool, emergency bikes, free of charge"
		}

		result[sum.Type] = ta
	}
	return result, nil
}

// bookedUnitsForType counts the units of one type consumed by the given
// bookings: position counts of that type for pooled bookings, unit_count for
// classic bookings whose bound bike carries the type.
func bookedUnitsForType(bookings []domain.Booking, bikeType string) int32 {
	var booked int32
	for i := range bookings {
		b := &bookings[i]
		if len(b.Positions) > 0 {
			for _, p := range b.Positions {
				if p.BikeType == bikeType {
					booked += p.Count
				}
			}
			continue
		}
		if b.Bike != nil && b.Bike.Type != nil && *b.Bike.Type == bikeType {
			units := b.UnitCount
			if units < 1 {
				units = 1
			}
			booked += units
		}
	}
	return booked
}

// rentableType reports whether bikes of the type may be rented out.
// Only a type literally labelled defective is excluded; workshop and
// maintenance pools stay rentable as emergency bikes.
func rentableType(bikeType string) bool {
	switch strings.ToLower(bikeType) {
	case "defekt", "defective":
		return false
	}
	return true
}
