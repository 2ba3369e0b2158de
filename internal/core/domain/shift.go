package domain

import "time"

// ShiftStatus is the lifecycle state of a shift.
type ShiftStatus string

const (
	ShiftActive    ShiftStatus = "active"
	ShiftCompleted ShiftStatus = "completed"
)

// Shift is one receptionist's work session at a hotel. A hotel has at most one
// active shift; a completed shift is never reopened.
type Shift struct {
	ShiftID       string           `json:"shiftID"`
	HotelID       string           `json:"hotelID"`
	Receptionist  string           `json:"receptionist"`
	StartTime     time.Time        `json:"startTime"`
	EndTime       *time.Time       `json:"endTime,omitempty"`
	Status        ShiftStatus      `json:"status"`
	StartCounters CounterSnapshot  `json:"startCounters"`
	EndCounters   *CounterSnapshot `json:"endCounters,omitempty"` // set once, at finish
	EditMetadata                   // last edit of the start counters
	Entries       []Entry          `json:"entries,omitempty"` // top-level entries with comments, when loaded
}

// IsActive reports whether the shift is still open.
func (s *Shift) IsActive() bool {
	return s.Status == ShiftActive
}

// EditMetadata records the last tracked edit of an entity.
type EditMetadata struct {
	LastEditedAt *time.Time `json:"lastEditedAt,omitempty"`
	EditedBy     string     `json:"editedBy,omitempty"`
}
