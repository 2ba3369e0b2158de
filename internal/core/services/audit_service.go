package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/front_desk_log/internal/apperrors"
	"github.com/SscSPs/front_desk_log/internal/core/domain"
	portsrepo "github.com/SscSPs/front_desk_log/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/front_desk_log/internal/core/ports/services"
	"github.com/SscSPs/front_desk_log/internal/metrics"
	"github.com/google/uuid"
)

type auditService struct {
	BaseService
	auditRepo portsrepo.AuditRepositoryFacade
}

// NewAuditService creates the edit history service.
func NewAuditService(repo portsrepo.AuditRepositoryFacade, options ...ServiceOption) portssvc.AuditSvc {
	return &auditService{
		BaseService: newBaseService(options...),
		auditRepo:   repo,
	}
}

var _ portssvc.AuditSvc = (*auditService)(nil)

func (s *auditService) Record(ctx context.Context, hotelID string, entityType domain.AuditEntityType, entityID string, previous any, editor string) (*domain.AuditRecord, error) {
	editor = strings.TrimSpace(editor)
	if editor == "" {
		return nil, apperrors.NewValidationFailedError("editor name is required")
	}

	raw, err := json.Marshal(previous)
	if err != nil {
		s.LogError(ctx, err, "Failed to encode previous value",
			slog.String("entity_type", string(entityType)),
			slog.String("entity_id", entityID))
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to encode previous value", err)
	}

	record := domain.AuditRecord{
		AuditID:       uuid.NewString(),
		HotelID:       hotelID,
		EntityType:    entityType,
		EntityID:      entityID,
		PreviousValue: raw,
		EditedAt:      s.Now(),
		EditedBy:      editor,
	}
	if err := s.auditRepo.SaveAuditRecord(ctx, record); err != nil {
		s.LogError(ctx, err, "Failed to save audit record",
			slog.String("entity_type", string(entityType)),
			slog.String("entity_id", entityID))
		return nil, err
	}

	metrics.AuditRecords.WithLabelValues(string(entityType)).Inc()
	s.LogDebug(ctx, "Audit record saved",
		slog.String("audit_id", record.AuditID),
		slog.String("entity_type", string(entityType)),
		slog.String("entity_id", entityID))
	return &record, nil
}

func (s *auditService) ListHistory(ctx context.Context, hotelID string, entityType domain.AuditEntityType, entityID string) ([]domain.AuditRecord, error) {
	records, err := s.auditRepo.ListAuditRecords(ctx, hotelID, entityType, entityID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit records",
			slog.String("entity_type", string(entityType)),
			slog.String("entity_id", entityID))
		return nil, err
	}
	return records, nil
}
