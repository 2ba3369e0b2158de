package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		code   int
	}{
		{name: "not found", err: NewNotFoundError("entry x"), target: ErrNotFound, code: 404},
		{name: "validation", err: NewValidationFailedError("text is required"), target: ErrValidation, code: 400},
		{name: "conflict", err: NewConflictError("dup"), target: ErrConflict, code: 409},
		{name: "connectivity", err: NewConnectivityError("query failed", errors.New("dial tcp")), target: ErrConnectivity, code: 503},
		{name: "5xx app error", err: NewAppError(500, "boom", errors.New("driver")), target: ErrConnectivity, code: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.target)
			var appErr *AppError
			assert.True(t, errors.As(tt.err, &appErr))
			assert.Equal(t, tt.code, appErr.Code)
		})
	}
}

func TestShiftErrorsAreConflicts(t *testing.T) {
	active := &ShiftAlreadyActiveError{ShiftID: "s1", Receptionist: "Alice"}
	wrapped := fmt.Errorf("start shift: %w", active)

	assert.ErrorIs(t, wrapped, ErrConflict)
	assert.Contains(t, active.Error(), "Alice")

	var target *ShiftAlreadyActiveError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "s1", target.ShiftID)

	assert.ErrorIs(t, &UnresolvedEntriesError{ShiftID: "s1", Count: 2}, ErrConflict)
	assert.ErrorIs(t, &ShiftNotActiveError{ShiftID: "s1"}, ErrConflict)
	assert.NotErrorIs(t, NewValidationFailedError("x"), ErrConflict)
}
