package repositories

import (
	"context"

	"github.com/SscSPs/front_desk_log/internal/core/domain"
)

// AuditReader defines read operations for the edit history
type AuditReader interface {
	// ListAuditRecords returns the records of one entity, newest first.
	ListAuditRecords(ctx context.Context, hotelID string, entityType domain.AuditEntityType, entityID string) ([]domain.AuditRecord, error)
}

// AuditWriter defines the only write the edit history supports: append.
type AuditWriter interface {
	SaveAuditRecord(ctx context.Context, record domain.AuditRecord) error
}

// AuditRepositoryFacade combines all audit-related repository interfaces
type AuditRepositoryFacade interface {
	AuditReader
	AuditWriter
}
