package utils

import (
	"fmt"
	"time"

	"bikeshop-backend/internal/domain"
)

const dateLayout = "2006-01-02"

// PriceTiers carries the three per-day rates of a bike or a bike type.
// Tiers of zero fall back to the 1-day rate.
type PriceTiers struct {
	Day1Cents int32
	Day3Cents int32
	Day5Cents int32
}

// ParseDate parses a yyyy-mm-dd date string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected yyyy-mm-dd", domain.ErrValidation, s)
	}
	return t, nil
}

// DayCount returns the number of billable days for an inclusive date range:
// (to - from) in days, plus one for the start day, never less than 1.
// Same-day rentals count as one day.
func DayCount(fromDate, toDate string) (int32, error) {
	from, err := ParseDate(fromDate)
	if err != nil {
		return 0, err
	}
	to, err := ParseDate(toDate)
	if err != nil {
		return 0, err
	}
	if to.Before(from) {
		return 0, fmt.Errorf("%w: end date %s before start date %s", domain.ErrValidation, toDate, fromDate)
	}
	days := int32(to.Sub(from).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days, nil
}

// StagedDayRate picks the per-day rate for a rental of dayCount days:
// the 5-day tier at >= 5 days, the 3-day tier at >= 3 days, the 1-day rate
// otherwise. A tier left at zero falls back to the 1-day rate.
func StagedDayRate(tiers PriceTiers, dayCount int32) int32 {
	switch {
	case dayCount >= 5 && tiers.Day5Cents > 0:
		return tiers.Day5Cents
	case dayCount >= 3 && tiers.Day3Cents > 0:
		return tiers.Day3Cents
	default:
		return tiers.Day1Cents
	}
}

// PositionTotal is the snapshot total of one pooled position:
// count units at dayRate per day for dayCount days.
func PositionTotal(count, dayRateCents, dayCount int32) int32 {
	return count * dayRateCents * dayCount
}
