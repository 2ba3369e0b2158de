package models

import "time"

// Entry is the raw row of the entries table. Status is NULL for comments.
type Entry struct {
	EntryID      string     `db:"entry_id"`
	ShiftID      string     `db:"shift_id"`
	HotelID      string     `db:"hotel_id"`
	ReplyTo      *string    `db:"reply_to"`
	Text         string     `db:"text"`
	Status       *string    `db:"status"`
	CreatedAt    time.Time  `db:"created_at"`
	CreatedBy    *string    `db:"created_by"`
	LastEditedAt *time.Time `db:"last_edited_at"`
	EditedBy     *string    `db:"edited_by"`
}

// EntryWithShift is an entry row joined with its shift's receptionist and start time.
type EntryWithShift struct {
	Entry
	ShiftReceptionist *string    `db:"shift_receptionist"`
	ShiftStartTime    *time.Time `db:"shift_start_time"`
}

// CommentCount is one row of a grouped comment count query.
type CommentCount struct {
	ParentID string `db:"parent_id"`
	Count    int    `db:"comment_count"`
}
