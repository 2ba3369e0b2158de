package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/front_desk_log/internal/apperrors"
	"github.com/SscSPs/front_desk_log/internal/core/domain"
	portsrepo "github.com/SscSPs/front_desk_log/internal/core/ports/repositories"
	"github.com/SscSPs/front_desk_log/internal/models"
	"github.com/SscSPs/front_desk_log/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxEntryRepository struct {
	BaseRepository
}

func newPgxEntryRepository(pool *pgxpool.Pool) *PgxEntryRepository {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxEntryRepository implements portsrepo.EntryRepositoryFacade
var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

const entryColumns = `
	e.entry_id, e.shift_id, e.hotel_id, e.reply_to, e.text, e.status,
	e.created_at, e.created_by, e.last_edited_at, e.edited_by`

var FULL_ENTRY_SELECT_QUERY = `SELECT` + entryColumns + `
FROM entries e
`

var ENTRY_WITH_SHIFT_SELECT_QUERY = `SELECT` + entryColumns + `,
	s.receptionist AS shift_receptionist, s.start_time AS shift_start_time
FROM entries e
LEFT JOIN shifts s ON s.shift_id = e.shift_id
`

func (r *PgxEntryRepository) getEntries(ctx context.Context, filterQuery string, args ...any) ([]domain.Entry, error) {
	rows, err := collect[models.Entry](ctx, &r.BaseRepository, "entries", FULL_ENTRY_SELECT_QUERY+filterQuery, args...)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainEntrySlice(rows), nil
}

func (r *PgxEntryRepository) getEntriesWithShift(ctx context.Context, filterQuery string, args ...any) ([]domain.EntryWithShift, error) {
	rows, err := collect[models.EntryWithShift](ctx, &r.BaseRepository, "entries", ENTRY_WITH_SHIFT_SELECT_QUERY+filterQuery, args...)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainEntryWithShiftSlice(rows), nil
}

func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.Entry) error {
	m := mapping.ToModelEntry(entry)
	query := `
		INSERT INTO entries (
			entry_id, shift_id, hotel_id, reply_to, text, status, created_at, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EntryID, m.ShiftID, m.HotelID, m.ReplyTo, m.Text, m.Status, m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		if pgErr, ok := pgError(err); ok {
			if pgErr.Code == pgUniqueViolation {
				return apperrors.NewConflictError("entry ID " + entry.EntryID + " already exists")
			}
			if pgErr.Code == pgForeignKeyViolation {
				return apperrors.NewNotFoundError("shift or parent entry not found")
			}
		}
		return apperrors.NewConnectivityError("failed to save entry "+entry.EntryID, err)
	}
	return nil
}

func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, hotelID string, entryID string) (*domain.Entry, error) {
	entries, err := r.getEntries(ctx, `WHERE e.hotel_id = $1 AND e.entry_id = $2`, hotelID, entryID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperrors.NewNotFoundError("entry not found")
	}
	return &entries[0], nil
}

func (r *PgxEntryRepository) ListTopLevelByShift(ctx context.Context, hotelID string, shiftID string) ([]domain.EntryWithShift, error) {
	return r.getEntriesWithShift(ctx, `
		WHERE e.hotel_id = $1 AND e.shift_id = $2 AND e.reply_to IS NULL
		ORDER BY e.created_at DESC, e.entry_id DESC`, hotelID, shiftID)
}

func (r *PgxEntryRepository) ListUnresolvedByHotel(ctx context.Context, hotelID string) ([]domain.EntryWithShift, error) {
	return r.getEntriesWithShift(ctx, `
		WHERE e.hotel_id = $1 AND e.reply_to IS NULL AND e.status IN ('open', 'in_progress')
		ORDER BY e.created_at DESC, e.entry_id DESC`, hotelID)
}

func (r *PgxEntryRepository) ListComments(ctx context.Context, hotelID string, parentID string) ([]domain.Entry, error) {
	return r.getEntries(ctx, `
		WHERE e.hotel_id = $1 AND e.reply_to = $2
		ORDER BY e.created_at ASC, e.entry_id ASC`, hotelID, parentID)
}

func (r *PgxEntryRepository) CountComments(ctx context.Context, hotelID string, parentIDs []string) (map[string]int, error) {
	counts := make(map[string]int)
	if len(parentIDs) == 0 {
		return counts, nil
	}
	rows, err := collect[models.CommentCount](ctx, &r.BaseRepository, "comment counts", `
		SELECT reply_to AS parent_id, COUNT(*)::int AS comment_count
		FROM entries
		WHERE hotel_id = $1 AND reply_to = ANY($2)
		GROUP BY reply_to`, hotelID, parentIDs)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ParentID] = row.Count
	}
	return counts, nil
}

func (r *PgxEntryRepository) UpdateStatus(ctx context.Context, hotelID string, entryID string, status domain.EntryStatus) error {
	return r.exec(ctx, "update status of entry "+entryID, apperrors.NewNotFoundError("entry not found"), `
		UPDATE entries SET status = $3
		WHERE hotel_id = $1 AND entry_id = $2 AND reply_to IS NULL;`,
		hotelID, entryID, string(status))
}

func (r *PgxEntryRepository) UpdateText(ctx context.Context, hotelID string, entryID string, text string, editor string, editedAt time.Time) error {
	return r.exec(ctx, "update text of entry "+entryID, apperrors.NewNotFoundError("entry not found"), `
		UPDATE entries SET text = $3, last_edited_at = $4, edited_by = $5
		WHERE hotel_id = $1 AND entry_id = $2;`,
		hotelID, entryID, text, editedAt, editor)
}
