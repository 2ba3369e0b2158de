package models

import "time"

// Hotel is the raw row of the hotels table.
type Hotel struct {
	HotelID   string     `db:"hotel_id"`
	Name      string     `db:"name"`
	Code      string     `db:"code"`
	PIN       string     `db:"pin"`
	CreatedAt *time.Time `db:"created_at"`
}
