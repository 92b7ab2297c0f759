package domain

import "strings"

// Customer is the slice of the customer record bookings need: display name
// and contact details for notifications. Full customer management lives in
// its own subsystem.
type Customer struct {
	ID         int32  `json:"id"`
	CustomerNo string `json:"customer_no"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
}

// DisplayName returns "First Last" with missing parts dropped.
func (c *Customer) DisplayName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
