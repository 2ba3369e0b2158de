package models

import "time"

// EditHistory is the raw row of the append-only edit_history table.
type EditHistory struct {
	AuditID       string    `db:"audit_id"`
	HotelID       string    `db:"hotel_id"`
	EntityType    string    `db:"entity_type"`
	EntityID      string    `db:"entity_id"`
	PreviousValue []byte    `db:"previous_value"`
	EditedAt      time.Time `db:"edited_at"`
	EditedBy      string    `db:"edited_by"`
}
