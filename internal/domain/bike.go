package domain

// BikeStatus is the lifecycle state of a single rental bike.
type BikeStatus string

const (
	BikeStatusAvailable   BikeStatus = "AVAILABLE"
	BikeStatusRented      BikeStatus = "RENTED"
	BikeStatusMaintenance BikeStatus = "MAINTENANCE"
	BikeStatusDefective   BikeStatus = "DEFECTIVE"
)

// ValidBikeStatus reports whether s is one of the known bike states.
func ValidBikeStatus(s BikeStatus) bool {
	switch s {
	case BikeStatusAvailable, BikeStatusRented, BikeStatusMaintenance, BikeStatusDefective:
		return true
	}
	return false
}

// BikeCheckStatus tracks the periodic service check of a bike.
type BikeCheckStatus string

const (
	BikeCheckOK      BikeCheckStatus = "OK"
	BikeCheckDue     BikeCheckStatus = "DUE"
	BikeCheckOverdue BikeCheckStatus = "OVERDUE"
)

// Well-known type labels. Type is free text, but these two label the
// free-of-charge pools surfaced by the per-type availability query.
const (
	BikeTypeCargo    = "Lastenrad"
	BikeTypeWorkshop = "Werkstatt"
)

// Bike is one physical rentable unit with a three-tier daily price schedule.
// Price3DayCents and Price5DayCents are per-day rates effective at >= 3 and
// >= 5 rental days; nil tiers fall back to the 1-day rate.
type Bike struct {
	ID             int32           `json:"id"`
	InventoryNo    string          `json:"inventory_no"`
	FrameNo        string          `json:"frame_no,omitempty"`
	Brand          string          `json:"brand"`
	Model          string          `json:"model,omitempty"`
	Color          string          `json:"color,omitempty"`
	FrameSize      string          `json:"frame_size,omitempty"`
	Type           *string         `json:"type,omitempty"`
	Price1DayCents int32           `json:"price_1day_cents"`
	Price3DayCents *int32          `json:"price_3day_cents,omitempty"`
	Price5DayCents *int32          `json:"price_5day_cents,omitempty"`
	Status         BikeStatus      `json:"status"`
	CheckStatus    BikeCheckStatus `json:"check_status"`
	Condition      string          `json:"condition,omitempty"`
	AcquiredOn     *string         `json:"acquired_on,omitempty"`
	LastServiceOn  *string         `json:"last_service_on,omitempty"`
	NextServiceOn  *string         `json:"next_service_on,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	CreatedOn      string          `json:"created_on,omitempty"`
	UpdatedOn      string          `json:"updated_on,omitempty"`
}

// PriceTiers returns the effective per-day rates with missing tiers
// collapsed onto the 1-day rate.
func (b *Bike) PriceTiers() (day1, day3, day5 int32) {
	day1 = b.Price1DayCents
	day3, day5 = day1, day1
	if b.Price3DayCents != nil {
		day3 = *b.Price3DayCents
	}
	if b.Price5DayCents != nil {
		day5 = *b.Price5DayCents
	}
	return day1, day3, day5
}
