package services

import (
	"context"

	"github.com/SscSPs/front_desk_log/internal/core/domain"
)

// InitializerSvc loads everything the desk needs after selecting a hotel.
type InitializerSvc interface {
	// Initialize returns the current shift, the previous shift and the continuity view.
	// It performs no writes and may be called again after a failure.
	Initialize(ctx context.Context, hotelID string) (*domain.ShiftState, error)
}
