package services

import (
	"context"

	"github.com/SscSPs/front_desk_log/internal/core/domain"
	"github.com/SscSPs/front_desk_log/internal/utils/reconciliation"
)

// ShiftReaderSvc defines read operations for shifts
type ShiftReaderSvc interface {
	// GetShift returns a shift with its top-level entries and their comments.
	GetShift(ctx context.Context, hotelID string, shiftID string) (*domain.Shift, error)

	// GetActiveShift returns the hotel's active shift, or nil when none is active.
	GetActiveShift(ctx context.Context, hotelID string) (*domain.Shift, error)

	// GetPreviousShift returns the most recently completed shift, or nil.
	GetPreviousShift(ctx context.Context, hotelID string) (*domain.Shift, error)

	// ListShifts returns a page of shifts, newest first, and the token of the next page.
	ListShifts(ctx context.Context, hotelID string, limit int, nextToken string) ([]domain.Shift, string, error)
}

// ShiftLifecycleSvc defines the state transitions of a shift
type ShiftLifecycleSvc interface {
	// StartShift opens a new active shift. Fails with *apperrors.ShiftAlreadyActiveError
	// when another shift of the hotel is active.
	StartShift(ctx context.Context, hotelID string, receptionist string, startCounters domain.CounterSnapshot) (*domain.Shift, error)

	// FinishShift completes the shift. Without force it fails with
	// *apperrors.UnresolvedEntriesError while unresolved entries exist. Entries are never touched.
	FinishShift(ctx context.Context, hotelID string, shiftID string, endCounters domain.CounterSnapshot, force bool) (*domain.Shift, error)

	// EditCounters records the current start counters in the edit history, then replaces them.
	EditCounters(ctx context.Context, hotelID string, shiftID string, counters domain.CounterSnapshot, editor string) (*domain.Shift, error)
}

// ShiftReconcilerSvc defines counter comparison operations
type ShiftReconcilerSvc interface {
	// CopyForward returns the end counters of the previous completed shift.
	CopyForward(ctx context.Context, hotelID string) (domain.CounterSnapshot, error)

	// PreviewReconciliation compares the shift's start counters with a partially entered draft.
	PreviewReconciliation(ctx context.Context, hotelID string, shiftID string, draft domain.CounterDraft) (reconciliation.Report, error)
}

// ShiftSvcFacade combines all shift-related service interfaces
type ShiftSvcFacade interface {
	ShiftReaderSvc
	ShiftLifecycleSvc
	ShiftReconcilerSvc
}
