package domain

import (
	"encoding/json"
	"time"
)

// AuditEntityType is the kind of entity an audit record snapshots.
type AuditEntityType string

const (
	AuditEntry         AuditEntityType = "entry"
	AuditShiftCounters AuditEntityType = "shift_counters"
)

// AuditRecord holds the value an entity had right before a tracked edit.
// Records are append-only.
type AuditRecord struct {
	AuditID       string          `json:"auditID"`
	HotelID       string          `json:"hotelID"`
	EntityType    AuditEntityType `json:"entityType"`
	EntityID      string          `json:"entityID"`
	PreviousValue json.RawMessage `json:"previousValue"`
	EditedAt      time.Time       `json:"editedAt"`
	EditedBy      string          `json:"editedBy"`
}

// EntryTextSnapshot is the previous value stored for entry text edits.
type EntryTextSnapshot struct {
	Text string `json:"text"`
}
