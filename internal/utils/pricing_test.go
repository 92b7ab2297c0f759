package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDayCount(t *testing.T) {
	t.Run("Same day is one day", func(t *testing.T) {
		days, err := DayCount("2026-03-01", "2026-03-01")
		assert.NoError(t, err)
		assert.Equal(t, int32(1), days)
	})

	t.Run("Inclusive range", func(t *testing.T) {
		// Mar 1 to Mar 3 covers three rental days
		days, err := DayCount("2026-03-01", "2026-03-03")
		assert.NoError(t, err)
		assert.Equal(t, int32(3), days)
	})

	t.Run("Cross month boundary", func(t *testing.T) {
		days, err := DayCount("2026-01-30", "2026-02-02")
		assert.NoError(t, err)
		assert.Equal(t, int32(4), days)
	})

	t.Run("Leap year February", func(t *testing.T) {
		days, err := DayCount("2028-02-28", "2028-03-01")
		assert.NoError(t, err)
		assert.Equal(t, int32(3), days) // Feb 28, Feb 29, Mar 1
	})

	t.Run("End before start", func(t *testing.T) {
		_, err := DayCount("2026-03-03", "2026-03-01")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "before start date")
	})

	t.Run("Invalid format", func(t *testing.T) {
		_, err := DayCount("01.03.2026", "2026-03-03")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid date")
	})
}

func TestStagedDayRate(t *testing.T) {
	tiers := PriceTiers{Day1Cents: 3000, Day3Cents: 2700, Day5Cents: 2500}

	tests := []struct {
		name     string
		dayCount int32
		expected int32
	}{
		{"1 day", 1, 3000},
		{"2 days", 2, 3000},
		{"3 days reaches middle tier", 3, 2700},
		{"4 days", 4, 2700},
		{"5 days reaches top tier", 5, 2500},
		{"14 days", 14, 2500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StagedDayRate(tiers, tt.dayCount))
		})
	}

	t.Run("Missing tiers fall back to 1-day rate", func(t *testing.T) {
		flat := PriceTiers{Day1Cents: 3000}
		assert.Equal(t, int32(3000), StagedDayRate(flat, 1))
		assert.Equal(t, int32(3000), StagedDayRate(flat, 3))
		assert.Equal(t, int32(3000), StagedDayRate(flat, 7))
	})

	t.Run("Rate is non-increasing across thresholds", func(t *testing.T) {
		r1 := StagedDayRate(tiers, 1)
		r3 := StagedDayRate(tiers, 3)
		r5 := StagedDayRate(tiers, 5)
		assert.GreaterOrEqual(t, r1, r3)
		assert.GreaterOrEqual(t, r3, r5)
	})
}

func TestPositionTotal(t *testing.T) {
	// 2 e-bikes at the 5-day rate of 25.00 for 5 days = 250.00
	assert.Equal(t, int32(25000), PositionTotal(2, 2500, 5))
	assert.Equal(t, int32(3000), PositionTotal(1, 3000, 1))
}
