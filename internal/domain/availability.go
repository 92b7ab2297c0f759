package domain

// AvailabilitySummary is the fleet-wide availability for a date range.
// Total counts every bike with a type tag regardless of its current status;
// maintenance and defective units still belong to the fleet.
type AvailabilitySummary struct {
	Available int32  `json:"available"`
	Total     int32  `json:"total"`
	Booked    int32  `json:"booked"`
	FromDate  string `json:"from_date"`
	ToDate    string `json:"to_date"`

	// LowAvailability is set when Available drops below the configured
	// warning threshold.
	LowAvailability bool `json:"low_availability"`

	Bookings []BookingSlot `json:"bookings"`
}

// BookingSlot is the calendar view of one overlapping booking.
type BookingSlot struct {
	BookingID    int32         `json:"booking_id"`
	CustomerName string        `json:"customer_name,omitempty"`
	UnitCount    int32         `json:"unit_count"`
	StartDate    string        `json:"start_date"`
	EndDate      string        `json:"end_date"`
	Status       BookingStatus `json:"status"`
}

// TypeAvailability is the availability of one bike type for a date range.
type TypeAvailability struct {
	Available      int32  `json:"available"`
	Total          int32  `json:"total"`
	Booked         int32  `json:"booked"`
	Price1DayCents int32  `json:"price_1day_cents"`
	Price3DayCents int32  `json:"price_3day_cents"`
	Price5DayCents int32  `json:"price_5day_cents"`
	Rentable       bool   `json:"rentable"`
	Note           string `json:"note,omitempty"`
}
