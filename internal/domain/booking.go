package domain

// BookingStatus is the lifecycle state of a booking.
//
// RESERVED -> ACTIVE -> COMPLETED, with CANCELLED reachable from
// RESERVED and ACTIVE. COMPLETED and CANCELLED are terminal.
type BookingStatus string

const (
	BookingStatusReserved  BookingStatus = "RESERVED"
	BookingStatusActive    BookingStatus = "ACTIVE"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// ValidBookingStatus reports whether s is one of the known booking states.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusReserved, BookingStatusActive, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// Live reports whether s counts against fleet capacity.
func (s BookingStatus) Live() bool {
	return s == BookingStatusReserved || s == BookingStatusActive
}

// Booking is one reservation/rental over an inclusive date range.
//
// Exactly one of the two modes is active: classic mode binds the booking to a
// single bike (BikeID set, no positions); pooled mode books by type and count
// (BikeID nil, one or more positions). Price snapshot fields are captured at
// creation time and do not change when bike prices change later.
type Booking struct {
	ID         int32  `json:"id"`
	BikeID     *int32 `json:"bike_id,omitempty"`
	CustomerID *int32 `json:"customer_id,omitempty"`

	Status BookingStatus `json:"status"`

	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	StartTime  *string `json:"start_time,omitempty"`
	EndTime    *string `json:"end_time,omitempty"`
	ReturnDate *string `json:"return_date,omitempty"`

	// UnitCount is the total number of bikes covered by this booking.
	// With positions present it equals the sum of the position counts.
	UnitCount int32 `json:"unit_count"`

	DayPriceCents   int32 `json:"day_price_cents"`
	DayCount        int32 `json:"day_count"`
	TotalPriceCents int32 `json:"total_price_cents"`
	DepositCents    int32 `json:"deposit_cents"`

	DepositReturned bool    `json:"deposit_returned"`
	Paid            bool    `json:"paid"`
	PaidOn          *string `json:"paid_on,omitempty"`
	IDChecked       bool    `json:"id_checked"`
	PickedUp        bool    `json:"picked_up"`
	PickupTime      *string `json:"pickup_time,omitempty"`

	ConditionOut string `json:"condition_out,omitempty"`
	ConditionIn  string `json:"condition_in,omitempty"`
	DamageNotes  string `json:"damage_notes,omitempty"`
	Notes        string `json:"notes,omitempty"`

	CreatedOn string `json:"created_on,omitempty"`
	UpdatedOn string `json:"updated_on,omitempty"`

	Positions []BookingPosition `json:"positions,omitempty"`
	Bike      *Bike             `json:"bike,omitempty"`
	Customer  *Customer         `json:"customer,omitempty"`
}

// Pooled reports whether the booking is type-based rather than bound to one bike.
func (b *Booking) Pooled() bool {
	return b.BikeID == nil && len(b.Positions) > 0
}

// BookedUnits is the capacity this booking consumes: the sum of its position
// counts when positions exist, otherwise UnitCount (minimum 1).
func (b *Booking) BookedUnits() int32 {
	if len(b.Positions) > 0 {
		var n int32
		for _, p := range b.Positions {
			n += p.Count
		}
		return n
	}
	if b.UnitCount < 1 {
		return 1
	}
	return b.UnitCount
}

// BookingPosition is a (type, count) line item of a pooled booking.
// Prices are historical snapshots taken at booking time.
type BookingPosition struct {
	ID              int32  `json:"id"`
	BookingID       int32  `json:"booking_id"`
	BikeType        string `json:"bike_type"`
	Count           int32  `json:"count"`
	DayPriceCents   int32  `json:"day_price_cents"`
	DayCount        int32  `json:"day_count"`
	TotalPriceCents int32  `json:"total_price_cents"`
}
