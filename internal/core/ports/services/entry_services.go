package services

import (
	"context"

	"github.com/SscSPs/front_desk_log/internal/core/domain"
)

// NewEntry is the input of AddEntry. ReplyTo makes the entry a comment.
type NewEntry struct {
	Text    string
	Author  string
	ReplyTo *string
}

// EntryReaderSvc defines read operations for entries
type EntryReaderSvc interface {
	GetEntry(ctx context.Context, hotelID string, entryID string) (*domain.Entry, error)

	// ListComments returns the comments of a top-level entry, oldest first.
	ListComments(ctx context.Context, hotelID string, parentID string) ([]domain.Entry, error)
}

// EntryWriterSvc defines write operations for entries
type EntryWriterSvc interface {
	// AddEntry adds an entry, or a comment when ReplyTo is set, to an active shift.
	AddEntry(ctx context.Context, hotelID string, shiftID string, in NewEntry) (*domain.Entry, error)

	// AddComment replies to a top-level entry from the hotel's active shift.
	AddComment(ctx context.Context, hotelID string, parentID string, text string, author string) (*domain.Entry, error)

	// SetStatus moves a top-level entry to any status, whether or not its shift is active.
	SetStatus(ctx context.Context, hotelID string, entryID string, status domain.EntryStatus) (*domain.Entry, error)

	// EditText records the current text in the edit history, then replaces it.
	EditText(ctx context.Context, hotelID string, entryID string, text string, editor string) (*domain.Entry, error)
}

// EntrySvcFacade combines all entry-related service interfaces
type EntrySvcFacade interface {
	EntryReaderSvc
	EntryWriterSvc
}
