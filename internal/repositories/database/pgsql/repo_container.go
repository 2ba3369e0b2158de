package pgsql

import (
	portsrepo "github.com/SscSPs/front_desk_log/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ShiftRepo: newPgxShiftRepository(dbPool),
		EntryRepo: newPgxEntryRepository(dbPool),
		AuditRepo: newPgxAuditRepository(dbPool),
		HotelRepo: newPgxHotelRepository(dbPool),
		Health:    &BaseRepository{Pool: dbPool},
	}
}
