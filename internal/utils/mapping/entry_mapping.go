package mapping

import (
	"time"

	"github.com/SscSPs/front_desk_log/internal/core/domain"
	"github.com/SscSPs/front_desk_log/internal/models"
)

// ToModelEntry converts a domain Entry to a model Entry
func ToModelEntry(d domain.Entry) models.Entry {
	m := models.Entry{
		EntryID:      d.EntryID,
		ShiftID:      d.ShiftID,
		HotelID:      d.HotelID,
		ReplyTo:      d.ReplyTo,
		Text:         d.Text,
		CreatedAt:    d.CreatedAt,
		CreatedBy:    optionalString(d.CreatedBy),
		LastEditedAt: d.LastEditedAt,
		EditedBy:     optionalString(d.EditedBy),
	}
	if d.Status != "" {
		status := string(d.Status)
		m.Status = &status
	}
	return m
}

// ToDomainEntry converts a model Entry to a domain Entry
func ToDomainEntry(m models.Entry) domain.Entry {
	d := domain.Entry{
		EntryID:   m.EntryID,
		ShiftID:   m.ShiftID,
		HotelID:   m.HotelID,
		Text:      m.Text,
		Status:    domain.EntryStatus(stringOrEmpty(m.Status)),
		CreatedAt: m.CreatedAt,
		CreatedBy: stringOrEmpty(m.CreatedBy),
		EditMetadata: domain.EditMetadata{
			LastEditedAt: m.LastEditedAt,
			EditedBy:     stringOrEmpty(m.EditedBy),
		},
	}
	if m.ReplyTo != nil && *m.ReplyTo != "" {
		d.ReplyTo = m.ReplyTo
		d.Status = ""
	}
	return d
}

// ToDomainEntrySlice converts a slice of model Entries to a slice of domain Entries
func ToDomainEntrySlice(ms []models.Entry) []domain.Entry {
	ds := make([]domain.Entry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntry(m)
	}
	return ds
}

// ToDomainEntryWithShift converts a joined entry row, tolerating a missing shift.
func ToDomainEntryWithShift(m models.EntryWithShift) domain.EntryWithShift {
	var start time.Time
	if m.ShiftStartTime != nil {
		start = *m.ShiftStartTime
	}
	return domain.EntryWithShift{
		Entry:             ToDomainEntry(m.Entry),
		ShiftReceptionist: stringOrEmpty(m.ShiftReceptionist),
		ShiftStartTime:    start,
	}
}

// ToDomainEntryWithShiftSlice converts a slice of joined entry rows
func ToDomainEntryWithShiftSlice(ms []models.EntryWithShift) []domain.EntryWithShift {
	ds := make([]domain.EntryWithShift, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntryWithShift(m)
	}
	return ds
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
