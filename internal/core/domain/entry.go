package domain

import "time"

// EntryStatus tracks whether an incident has been dealt with. Any transition is allowed.
type EntryStatus string

const (
	EntryOpen       EntryStatus = "open"
	EntryInProgress EntryStatus = "in_progress"
	EntryClosed     EntryStatus = "closed"
)

// Valid reports whether s is one of the three known statuses.
func (s EntryStatus) Valid() bool {
	switch s {
	case EntryOpen, EntryInProgress, EntryClosed:
		return true
	}
	return false
}

// Unresolved reports whether the entry must be carried into the next shift.
func (s EntryStatus) Unresolved() bool {
	return s == EntryOpen || s == EntryInProgress
}

// Entry is an incident recorded during a shift, or a comment on one when ReplyTo is set.
// ShiftID never changes after creation and entries are never deleted.
type Entry struct {
	EntryID   string      `json:"entryID"`
	ShiftID   string      `json:"shiftID"`
	HotelID   string      `json:"hotelID"`
	ReplyTo   *string     `json:"replyTo,omitempty"`
	Text      string      `json:"text"`
	Status    EntryStatus `json:"status,omitempty"` // empty for comments
	CreatedAt time.Time   `json:"createdAt"`
	CreatedBy string      `json:"createdBy"`
	EditMetadata
	Comments []Entry `json:"comments,omitempty"`
}

// IsComment reports whether the entry replies to another entry.
func (e *Entry) IsComment() bool {
	return e.ReplyTo != nil && *e.ReplyTo != ""
}

// AnnotatedEntry is a top-level entry as shown in the continuity view, tagged with the
// shift it came from.
type AnnotatedEntry struct {
	Entry
	FromPreviousShift bool      `json:"fromPreviousShift"`
	ShiftReceptionist string    `json:"shiftReceptionist"`
	ShiftStartTime    time.Time `json:"shiftStartTime"`
	CommentCount      int       `json:"commentCount"`
}

// EntryWithShift is a top-level entry joined with the shift that created it.
type EntryWithShift struct {
	Entry
	ShiftReceptionist string
	ShiftStartTime    time.Time
}
