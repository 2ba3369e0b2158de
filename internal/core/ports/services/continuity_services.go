package services

import (
	"context"

	"github.com/SscSPs/front_desk_log/internal/core/domain"
)

// ContinuitySvc builds the read-only view of entries the desk must see.
type ContinuitySvc interface {
	// ListVisibleEntries merges the active shift's top-level entries with every unresolved
	// top-level entry of the hotel, newest first. activeShift may be nil.
	ListVisibleEntries(ctx context.Context, hotelID string, activeShift *domain.Shift) ([]domain.AnnotatedEntry, error)
}
