// Package memory is a process-local storage adapter. It enforces the same constraints
// as the Postgres schema and returns the same errors, and backs tests and the
// memory storage driver.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/front_desk_log/internal/apperrors"
	"github.com/SscSPs/front_desk_log/internal/core/domain"
	portsrepo "github.com/SscSPs/front_desk_log/internal/core/ports/repositories"
	"github.com/SscSPs/front_desk_log/internal/utils/pagination"
)

// Store holds every table in memory.
type Store struct {
	mu      sync.RWMutex
	hotels  map[string]domain.Hotel
	shifts  map[string]domain.Shift
	entries map[string]domain.Entry
	audit   []domain.AuditRecord
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		hotels:  make(map[string]domain.Hotel),
		shifts:  make(map[string]domain.Shift),
		entries: make(map[string]domain.Entry),
	}
}

var (
	_ portsrepo.ShiftRepositoryFacade = (*Store)(nil)
	_ portsrepo.EntryRepositoryFacade = (*Store)(nil)
	_ portsrepo.AuditRepositoryFacade = (*Store)(nil)
	_ portsrepo.HotelReader           = (*Store)(nil)
	_ portsrepo.HealthChecker         = (*Store)(nil)
)

// Provider returns a RepositoryProvider backed by the store.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ShiftRepo: s,
		EntryRepo: s,
		AuditRepo: s,
		HotelRepo: s,
		Health:    s,
	}
}

// AddHotel registers a hotel. Hotels are provisioned outside the service.
func (s *Store) AddHotel(h domain.Hotel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hotels[h.HotelID] = h
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) FindHotelByID(ctx context.Context, hotelID string) (*domain.Hotel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.hotels[hotelID]
	if !ok {
		return nil, apperrors.NewNotFoundError("hotel not found")
	}
	return &h, nil
}

// --- shifts ---

func (s *Store) SaveShift(ctx context.Context, shift domain.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.hotels[shift.HotelID]; !ok {
		return apperrors.NewNotFoundError("hotel not found")
	}
	if _, exists := s.shifts[shift.ShiftID]; exists {
		return apperrors.NewConflictError("shift id already exists")
	}
	// Same rule as the idx_single_active_shift partial unique index.
	if shift.Status == domain.ShiftActive {
		for _, other := range s.shifts {
			if other.HotelID == shift.HotelID && other.Status == domain.ShiftActive {
				return &apperrors.ShiftAlreadyActiveError{HotelID: shift.HotelID}
			}
		}
	}
	shift.Entries = nil
	s.shifts[shift.ShiftID] = shift
	return nil
}

func (s *Store) FindShiftByID(ctx context.Context, hotelID string, shiftID string) (*domain.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	shift, ok := s.shifts[shiftID]
	if !ok || shift.HotelID != hotelID {
		return nil, apperrors.NewNotFoundError("shift not found")
	}
	return copyShift(shift), nil
}

func (s *Store) FindActiveShift(ctx context.Context, hotelID string) (*domain.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, shift := range s.shifts {
		if shift.HotelID == hotelID && shift.Status == domain.ShiftActive {
			return copyShift(shift), nil
		}
	}
	return nil, nil
}

func (s *Store) FindPreviousShift(ctx context.Context, hotelID string) (*domain.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *domain.Shift
	for _, shift := range s.shifts {
		if shift.HotelID != hotelID || shift.Status != domain.ShiftCompleted || shift.EndTime == nil {
			continue
		}
		if latest == nil || shift.EndTime.After(*latest.EndTime) {
			latest = copyShift(shift)
		}
	}
	return latest, nil
}

func (s *Store) ListShifts(ctx context.Context, hotelID string, limit int, after *pagination.Cursor) ([]domain.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	shifts := make([]domain.Shift, 0)
	for _, shift := range s.shifts {
		if shift.HotelID == hotelID && after.Before(shift.StartTime, shift.ShiftID) {
			shifts = append(shifts, *copyShift(shift))
		}
	}
	sort.Slice(shifts, func(i, j int) bool {
		if !shifts[i].StartTime.Equal(shifts[j].StartTime) {
			return shifts[i].StartTime.After(shifts[j].StartTime)
		}
		return shifts[i].ShiftID > shifts[j].ShiftID
	})
	if limit > 0 && len(shifts) > limit {
		shifts = shifts[:limit]
	}
	return shifts, nil
}

func (s *Store) FinishShift(ctx context.Context, hotelID string, shiftID string, endCounters domain.CounterSnapshot, endTime time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	shift, ok := s.shifts[shiftID]
	if !ok || shift.HotelID != hotelID {
		return apperrors.NewNotFoundError("shift not found")
	}
	if shift.Status != domain.ShiftActive {
		return &apperrors.ShiftNotActiveError{ShiftID: shiftID}
	}
	shift.Status = domain.ShiftCompleted
	shift.EndTime = &endTime
	shift.EndCounters = &endCounters
	s.shifts[shiftID] = shift
	return nil
}

func (s *Store) UpdateStartCounters(ctx context.Context, hotelID string, shiftID string, counters domain.CounterSnapshot, editor string, editedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	shift, ok := s.shifts[shiftID]
	if !ok || shift.HotelID != hotelID {
		return apperrors.NewNotFoundError("shift not found")
	}
	shift.StartCounters = counters
	shift.LastEditedAt = &editedAt
	shift.EditedBy = editor
	s.shifts[shiftID] = shift
	return nil
}

// --- entries ---

func (s *Store) SaveEntry(ctx context.Context, entry domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.hotels[entry.HotelID]; !ok {
		return apperrors.NewNotFoundError("hotel not found")
	}
	if _, exists := s.entries[entry.EntryID]; exists {
		return apperrors.NewConflictError("entry id already exists")
	}
	if shift, ok := s.shifts[entry.ShiftID]; !ok || shift.HotelID != entry.HotelID {
		return apperrors.NewNotFoundError("shift not found")
	}
	entry.Comments = nil
	s.entries[entry.EntryID] = entry
	return nil
}

func (s *Store) FindEntryByID(ctx context.Context, hotelID string, entryID string) (*domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[entryID]
	if !ok || entry.HotelID != hotelID {
		return nil, apperrors.NewNotFoundError("entry not found")
	}
	return &entry, nil
}

func (s *Store) ListTopLevelByShift(ctx context.Context, hotelID string, shiftID string) ([]domain.EntryWithShift, error) {
	return s.selectTopLevel(hotelID, func(e domain.Entry) bool {
		return e.ShiftID == shiftID
	}), nil
}

func (s *Store) ListUnresolvedByHotel(ctx context.Context, hotelID string) ([]domain.EntryWithShift, error) {
	return s.selectTopLevel(hotelID, func(e domain.Entry) bool {
		return e.Status.Unresolved()
	}), nil
}

func (s *Store) selectTopLevel(hotelID string, match func(domain.Entry) bool) []domain.EntryWithShift {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := make([]domain.EntryWithShift, 0)
	for _, entry := range s.entries {
		if entry.HotelID != hotelID || entry.IsComment() || !match(entry) {
			continue
		}
		row := domain.EntryWithShift{Entry: entry}
		if shift, ok := s.shifts[entry.ShiftID]; ok {
			row.ShiftReceptionist = shift.Receptionist
			row.ShiftStartTime = shift.StartTime
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].EntryID > rows[j].EntryID
	})
	return rows
}

func (s *Store) ListComments(ctx context.Context, hotelID string, parentID string) ([]domain.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	comments := make([]domain.Entry, 0)
	for _, entry := range s.entries {
		if entry.HotelID == hotelID && entry.ReplyTo != nil && *entry.ReplyTo == parentID {
			comments = append(comments, entry)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.Before(comments[j].CreatedAt)
		}
		return comments[i].EntryID < comments[j].EntryID
	})
	return comments, nil
}

func (s *Store) CountComments(ctx context.Context, hotelID string, parentIDs []string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wanted := make(map[string]struct{}, len(parentIDs))
	for _, id := range parentIDs {
		wanted[id] = struct{}{}
	}
	counts := make(map[string]int)
	for _, entry := range s.entries {
		if entry.HotelID != hotelID || entry.ReplyTo == nil {
			continue
		}
		if _, ok := wanted[*entry.ReplyTo]; ok {
			counts[*entry.ReplyTo]++
		}
	}
	return counts, nil
}

func (s *Store) UpdateStatus(ctx context.Context, hotelID string, entryID string, status domain.EntryStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[entryID]
	if !ok || entry.HotelID != hotelID || entry.IsComment() {
		return apperrors.NewNotFoundError("entry not found")
	}
	entry.Status = status
	s.entries[entryID] = entry
	return nil
}

func (s *Store) UpdateText(ctx context.Context, hotelID string, entryID string, text string, editor string, editedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[entryID]
	if !ok || entry.HotelID != hotelID {
		return apperrors.NewNotFoundError("entry not found")
	}
	entry.Text = text
	entry.LastEditedAt = &editedAt
	entry.EditedBy = editor
	s.entries[entryID] = entry
	return nil
}

// --- edit history ---

func (s *Store) SaveAuditRecord(ctx context.Context, record domain.AuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.hotels[record.HotelID]; !ok {
		return apperrors.NewNotFoundError("hotel not found")
	}
	record.PreviousValue = append([]byte(nil), record.PreviousValue...)
	s.audit = append(s.audit, record)
	return nil
}

func (s *Store) ListAuditRecords(ctx context.Context, hotelID string, entityType domain.AuditEntityType, entityID string) ([]domain.AuditRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]domain.AuditRecord, 0)
	// Appended in order, so walking backwards yields newest first.
	for i := len(s.audit) - 1; i >= 0; i-- {
		r := s.audit[i]
		if r.HotelID == hotelID && r.EntityType == entityType && r.EntityID == entityID {
			records = append(records, r)
		}
	}
	return records, nil
}

func copyShift(shift domain.Shift) *domain.Shift {
	if shift.EndCounters != nil {
		end := *shift.EndCounters
		shift.EndCounters = &end
	}
	return &shift
}
