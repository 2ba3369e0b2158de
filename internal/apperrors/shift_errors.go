package apperrors

import (
	"fmt"
	"time"
)

// ShiftAlreadyActiveError is returned when a hotel already has an active shift.
// The active shift fields are filled in when the caller managed to re-read it.
type ShiftAlreadyActiveError struct {
	HotelID      string
	ShiftID      string
	Receptionist string
	StartedAt    time.Time
}

func (e *ShiftAlreadyActiveError) Error() string {
	if e.Receptionist != "" {
		return fmt.Sprintf("a shift is already active (started by %s), please finish it first", e.Receptionist)
	}
	return "a shift is already active, please finish it first"
}

func (e *ShiftAlreadyActiveError) Unwrap() error {
	return ErrConflict
}

// ShiftNotActiveError is returned when an operation needs the shift to still be active.
type ShiftNotActiveError struct {
	ShiftID string
}

func (e *ShiftNotActiveError) Error() string {
	return fmt.Sprintf("shift %s is not active", e.ShiftID)
}

func (e *ShiftNotActiveError) Unwrap() error {
	return ErrConflict
}

// UnresolvedEntriesError asks the operator to confirm finishing a shift while entries
// are still open or in progress. Nothing was changed when it is returned.
type UnresolvedEntriesError struct {
	ShiftID string
	Count   int
}

func (e *UnresolvedEntriesError) Error() string {
	return fmt.Sprintf("%d unresolved entries remain; confirm to finish shift %s anyway", e.Count, e.ShiftID)
}

func (e *UnresolvedEntriesError) Unwrap() error {
	return ErrConflict
}
