package services

import (
	"context"

	"github.com/SscSPs/front_desk_log/internal/core/domain"
)

// AuditSvc appends to and reads the edit history.
type AuditSvc interface {
	// Record stores previous as the pre-edit value of an entity.
	Record(ctx context.Context, hotelID string, entityType domain.AuditEntityType, entityID string, previous any, editor string) (*domain.AuditRecord, error)

	// ListHistory returns the records of one entity, newest first.
	ListHistory(ctx context.Context, hotelID string, entityType domain.AuditEntityType, entityID string) ([]domain.AuditRecord, error)
}
