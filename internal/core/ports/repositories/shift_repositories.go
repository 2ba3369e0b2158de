package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/front_desk_log/internal/core/domain"
	"github.com/SscSPs/front_desk_log/internal/utils/pagination"
)

// ShiftReader defines read operations for shift data
type ShiftReader interface {
	// FindShiftByID retrieves a shift of the hotel, or apperrors.ErrNotFound.
	FindShiftByID(ctx context.Context, hotelID string, shiftID string) (*domain.Shift, error)

	// FindActiveShift returns the hotel's active shift, or nil when none is active.
	FindActiveShift(ctx context.Context, hotelID string) (*domain.Shift, error)

	// FindPreviousShift returns the most recently completed shift by end time, or nil.
	FindPreviousShift(ctx context.Context, hotelID string) (*domain.Shift, error)

	// ListShifts returns shifts of the hotel ordered by start time descending, after the cursor.
	ListShifts(ctx context.Context, hotelID string, limit int, after *pagination.Cursor) ([]domain.Shift, error)
}

// ShiftWriter defines write operations for shift data
type ShiftWriter interface {
	// SaveShift inserts a new active shift. A second active shift for the same hotel is
	// rejected by storage with *apperrors.ShiftAlreadyActiveError.
	SaveShift(ctx context.Context, shift domain.Shift) error

	// FinishShift completes an active shift. Returns *apperrors.ShiftNotActiveError when the
	// shift exists but is already completed.
	FinishShift(ctx context.Context, hotelID string, shiftID string, endCounters domain.CounterSnapshot, endTime time.Time) error

	// UpdateStartCounters overwrites the start counters and stamps edit metadata.
	UpdateStartCounters(ctx context.Context, hotelID string, shiftID string, counters domain.CounterSnapshot, editor string, editedAt time.Time) error
}

// ShiftRepositoryFacade combines all shift-related repository interfaces
type ShiftRepositoryFacade interface {
	ShiftReader
	ShiftWriter
}
