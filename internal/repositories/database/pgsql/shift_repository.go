package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/front_desk_log/internal/apperrors"
	"github.com/SscSPs/front_desk_log/internal/core/domain"
	portsrepo "github.com/SscSPs/front_desk_log/internal/core/ports/repositories"
	"github.com/SscSPs/front_desk_log/internal/models"
	"github.com/SscSPs/front_desk_log/internal/utils/mapping"
	"github.com/SscSPs/front_desk_log/internal/utils/pagination"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxShiftRepository struct {
	BaseRepository
}

func newPgxShiftRepository(pool *pgxpool.Pool) *PgxShiftRepository {
	return &PgxShiftRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxShiftRepository implements portsrepo.ShiftRepositoryFacade
var _ portsrepo.ShiftRepositoryFacade = (*PgxShiftRepository)(nil)

var FULL_SHIFT_SELECT_QUERY = `
SELECT
	s.shift_id, s.hotel_id, s.receptionist, s.start_time, s.end_time, s.status,
	s.cash_brl_start, s.envelope_brl_start, s.cash_usd_start, s.pens_count_start,
	s.calculator_start, s.phone_start, s.car_key_start, s.adapter_start,
	s.umbrella_start, s.highlighter_start, s.cards_towels_start,
	s.cash_brl_end, s.envelope_brl_end, s.cash_usd_end, s.pens_count_end,
	s.calculator_end, s.phone_end, s.car_key_end, s.adapter_end,
	s.umbrella_end, s.highlighter_end, s.cards_towels_end,
	s.values_last_edited_at, s.values_edited_by
FROM shifts s
`

func (r *PgxShiftRepository) getShifts(ctx context.Context, filterQuery string, args ...any) ([]domain.Shift, error) {
	rows, err := collect[models.Shift](ctx, &r.BaseRepository, "shifts", FULL_SHIFT_SELECT_QUERY+filterQuery, args...)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainShiftSlice(rows), nil
}

func (r *PgxShiftRepository) getShift(ctx context.Context, filterQuery string, args ...any) (*domain.Shift, error) {
	shifts, err := r.getShifts(ctx, filterQuery, args...)
	if err != nil {
		return nil, err
	}
	if len(shifts) == 0 {
		return nil, nil
	}
	return &shifts[0], nil
}

func (r *PgxShiftRepository) SaveShift(ctx context.Context, shift domain.Shift) error {
	m := mapping.ToModelShift(shift)
	query := `
		INSERT INTO shifts (
			shift_id, hotel_id, receptionist, start_time, status,
			cash_brl_start, envelope_brl_start, cash_usd_start, pens_count_start,
			calculator_start, phone_start, car_key_start, adapter_start,
			umbrella_start, highlighter_start, cards_towels_start
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ShiftID, m.HotelID, m.Receptionist, m.StartTime, m.Status,
		m.CashBRLStart, m.EnvelopeBRLStart, m.CashUSDStart, m.PensCountStart,
		m.CalculatorStart, m.PhoneStart, m.CarKeyStart, m.AdapterStart,
		m.UmbrellaStart, m.HighlighterStart, m.CardsTowelsStart,
	)
	if err != nil {
		if pgErr, ok := pgError(err); ok {
			if pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == singleActiveShiftIndex {
				return &apperrors.ShiftAlreadyActiveError{HotelID: shift.HotelID}
			}
			if pgErr.Code == pgUniqueViolation {
				return apperrors.NewConflictError("shift ID " + shift.ShiftID + " already exists")
			}
			if pgErr.Code == pgForeignKeyViolation {
				return apperrors.NewNotFoundError("hotel not found")
			}
		}
		return apperrors.NewConnectivityError("failed to save shift "+shift.ShiftID, err)
	}
	return nil
}

func (r *PgxShiftRepository) FindShiftByID(ctx context.Context, hotelID string, shiftID string) (*domain.Shift, error) {
	shift, err := r.getShift(ctx, `WHERE s.hotel_id = $1 AND s.shift_id = $2`, hotelID, shiftID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, apperrors.NewNotFoundError("shift not found")
	}
	return shift, nil
}

func (r *PgxShiftRepository) FindActiveShift(ctx context.Context, hotelID string) (*domain.Shift, error) {
	return r.getShift(ctx, `WHERE s.hotel_id = $1 AND s.status = 'active' LIMIT 1`, hotelID)
}

func (r *PgxShiftRepository) FindPreviousShift(ctx context.Context, hotelID string) (*domain.Shift, error) {
	return r.getShift(ctx, `
		WHERE s.hotel_id = $1 AND s.status = 'completed' AND s.end_time IS NOT NULL
		ORDER BY s.end_time DESC
		LIMIT 1`, hotelID)
}

func (r *PgxShiftRepository) ListShifts(ctx context.Context, hotelID string, limit int, after *pagination.Cursor) ([]domain.Shift, error) {
	if after == nil {
		return r.getShifts(ctx, `
			WHERE s.hotel_id = $1
			ORDER BY s.start_time DESC, s.shift_id DESC
			LIMIT $2`, hotelID, limit)
	}
	return r.getShifts(ctx, `
		WHERE s.hotel_id = $1 AND (s.start_time, s.shift_id) < ($2, $3)
		ORDER BY s.start_time DESC, s.shift_id DESC
		LIMIT $4`, hotelID, after.At, after.ID, limit)
}

func (r *PgxShiftRepository) FinishShift(ctx context.Context, hotelID string, shiftID string, endCounters domain.CounterSnapshot, endTime time.Time) error {
	// The status guard makes finishing a compare-and-set: a shift completes once.
	query := `
		UPDATE shifts SET
			status = 'completed', end_time = $3,
			cash_brl_end = $4, envelope_brl_end = $5, cash_usd_end = $6, pens_count_end = $7,
			calculator_end = $8, phone_end = $9, car_key_end = $10, adapter_end = $11,
			umbrella_end = $12, highlighter_end = $13, cards_towels_end = $14
		WHERE hotel_id = $1 AND shift_id = $2 AND status = 'active';
	`
	m := mapping.ToModelShift(domain.Shift{EndCounters: &endCounters})
	tag, err := r.Pool.Exec(ctx, query, hotelID, shiftID, endTime,
		m.CashBRLEnd, m.EnvelopeBRLEnd, m.CashUSDEnd, m.PensCountEnd,
		m.CalculatorEnd, m.PhoneEnd, m.CarKeyEnd, m.AdapterEnd,
		m.UmbrellaEnd, m.HighlighterEnd, m.CardsTowelsEnd,
	)
	if err != nil {
		return apperrors.NewConnectivityError("failed to finish shift "+shiftID, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	if _, err := r.FindShiftByID(ctx, hotelID, shiftID); err != nil {
		return err
	}
	return &apperrors.ShiftNotActiveError{ShiftID: shiftID}
}

func (r *PgxShiftRepository) UpdateStartCounters(ctx context.Context, hotelID string, shiftID string, counters domain.CounterSnapshot, editor string, editedAt time.Time) error {
	query := `
		UPDATE shifts SET
			cash_brl_start = $3, envelope_brl_start = $4, cash_usd_start = $5, pens_count_start = $6,
			calculator_start = $7, phone_start = $8, car_key_start = $9, adapter_start = $10,
			umbrella_start = $11, highlighter_start = $12, cards_towels_start = $13,
			values_last_edited_at = $14, values_edited_by = $15
		WHERE hotel_id = $1 AND shift_id = $2;
	`
	m := mapping.ToModelShift(domain.Shift{StartCounters: counters})
	return r.exec(ctx, "update start counters of shift "+shiftID, apperrors.NewNotFoundError("shift not found"), query,
		hotelID, shiftID,
		m.CashBRLStart, m.EnvelopeBRLStart, m.CashUSDStart, m.PensCountStart,
		m.CalculatorStart, m.PhoneStart, m.CarKeyStart, m.AdapterStart,
		m.UmbrellaStart, m.HighlighterStart, m.CardsTowelsStart,
		editedAt, editor,
	)
}
