package pgsql

import (
	"context"

	"github.com/SscSPs/front_desk_log/internal/apperrors"
	"github.com/SscSPs/front_desk_log/internal/core/domain"
	portsrepo "github.com/SscSPs/front_desk_log/internal/core/ports/repositories"
	"github.com/SscSPs/front_desk_log/internal/models"
	"github.com/SscSPs/front_desk_log/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(pool *pgxpool.Pool) *PgxAuditRepository {
	return &PgxAuditRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAuditRepository implements portsrepo.AuditRepositoryFacade
var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

func (r *PgxAuditRepository) SaveAuditRecord(ctx context.Context, record domain.AuditRecord) error {
	m := mapping.ToModelEditHistory(record)
	query := `
		INSERT INTO edit_history (
			audit_id, hotel_id, entity_type, entity_id, previous_value, edited_at, edited_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AuditID, m.HotelID, m.EntityType, m.EntityID, m.PreviousValue, m.EditedAt, m.EditedBy,
	)
	if err != nil {
		if pgErr, ok := pgError(err); ok && pgErr.Code == pgForeignKeyViolation {
			return apperrors.NewNotFoundError("hotel not found")
		}
		return apperrors.NewConnectivityError("failed to save audit record for "+record.EntityID, err)
	}
	return nil
}

func (r *PgxAuditRepository) ListAuditRecords(ctx context.Context, hotelID string, entityType domain.AuditEntityType, entityID string) ([]domain.AuditRecord, error) {
	rows, err := collect[models.EditHistory](ctx, &r.BaseRepository, "edit history", `
		SELECT audit_id, hotel_id, entity_type, entity_id, previous_value, edited_at, edited_by
		FROM edit_history
		WHERE hotel_id = $1 AND entity_type = $2 AND entity_id = $3
		ORDER BY edited_at DESC, audit_id DESC`, hotelID, string(entityType), entityID)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainAuditRecordSlice(rows), nil
}
