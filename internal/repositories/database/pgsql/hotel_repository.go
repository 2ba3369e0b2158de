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

type PgxHotelRepository struct {
	BaseRepository
}

func newPgxHotelRepository(pool *pgxpool.Pool) *PgxHotelRepository {
	return &PgxHotelRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.HotelReader = (*PgxHotelRepository)(nil)

func (r *PgxHotelRepository) FindHotelByID(ctx context.Context, hotelID string) (*domain.Hotel, error) {
	rows, err := collect[models.Hotel](ctx, &r.BaseRepository, "hotels", `
		SELECT hotel_id, name, code, pin, created_at
		FROM hotels
		WHERE hotel_id = $1`, hotelID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.NewNotFoundError("hotel not found")
	}
	hotel := mapping.ToDomainHotel(rows[0])
	return &hotel, nil
}
