package domain

import "time"

// Hotel is the tenant every shift, entry and audit record belongs to.
// Hotels are managed outside this service and read-only here.
type Hotel struct {
	HotelID   string    `json:"hotelID"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	PIN       string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}
