package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/front_desk_log/internal/core/domain"
)

// EntryReader defines read operations for entry data
type EntryReader interface {
	// FindEntryByID retrieves an entry or comment of the hotel, or apperrors.ErrNotFound.
	FindEntryByID(ctx context.Context, hotelID string, entryID string) (*domain.Entry, error)

	// ListTopLevelByShift returns every top-level entry of a shift, any status.
	ListTopLevelByShift(ctx context.Context, hotelID string, shiftID string) ([]domain.EntryWithShift, error)

	// ListUnresolvedByHotel returns top-level open and in_progress entries of every shift of the hotel.
	ListUnresolvedByHotel(ctx context.Context, hotelID string) ([]domain.EntryWithShift, error)

	// ListComments returns the comments of a parent entry, oldest first.
	ListComments(ctx context.Context, hotelID string, parentID string) ([]domain.Entry, error)

	// CountComments returns the number of comments per parent id. Parents without comments are omitted.
	CountComments(ctx context.Context, hotelID string, parentIDs []string) (map[string]int, error)
}

// EntryWriter defines write operations for entry data
type EntryWriter interface {
	// SaveEntry inserts a new entry or comment.
	SaveEntry(ctx context.Context, entry domain.Entry) error

	// UpdateStatus sets the status of a top-level entry.
	UpdateStatus(ctx context.Context, hotelID string, entryID string, status domain.EntryStatus) error

	// UpdateText overwrites the text and stamps edit metadata.
	UpdateText(ctx context.Context, hotelID string, entryID string, text string, editor string, editedAt time.Time) error
}

// EntryRepositoryFacade combines all entry-related repository interfaces
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}
