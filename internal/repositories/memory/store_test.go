package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/front_desk_log/internal/apperrors"
	"github.com/SscSPs/front_desk_log/internal/core/domain"
	"github.com/SscSPs/front_desk_log/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeShift(id, hotel string, start time.Time) domain.Shift {
	return domain.Shift{ShiftID: id, HotelID: hotel, Receptionist: "r-" + id, StartTime: start, Status: domain.ShiftActive}
}

// newTestStore returns a store with hotels h1 and h2 provisioned.
func newTestStore() *Store {
	store := NewStore()
	store.AddHotel(domain.Hotel{HotelID: "h1", Name: "Pousada", Code: "PSD"})
	store.AddHotel(domain.Hotel{HotelID: "h2", Name: "Hostel", Code: "HST"})
	return store
}

func TestSaveShift_SingleActivePerHotel(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	now := time.Now()

	require.NoError(t, store.SaveShift(ctx, activeShift("s1", "h1", now)))

	err := store.SaveShift(ctx, activeShift("s2", "h1", now))
	var conflict *apperrors.ShiftAlreadyActiveError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "h1", conflict.HotelID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// Other hotels are independent.
	assert.NoError(t, store.SaveShift(ctx, activeShift("s3", "h2", now)))
}

func TestSaveShift_ConcurrentStartsHaveOneWinner(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	var wg sync.WaitGroup
	results := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results <- store.SaveShift(ctx, activeShift(fmt.Sprintf("s%d", i), "h1", time.Now()))
		}(i)
	}
	wg.Wait()
	close(results)

	wins := 0
	for err := range results {
		if err == nil {
			wins++
			continue
		}
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	}
	assert.Equal(t, 1, wins)
}

func TestFinishShift(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	require.NoError(t, store.SaveShift(ctx, activeShift("s1", "h1", time.Now())))

	end := domain.CounterSnapshot{Phone: 1}
	require.NoError(t, store.FinishShift(ctx, "h1", "s1", end, time.Now()))

	err := store.FinishShift(ctx, "h1", "s1", end, time.Now())
	var notActive *apperrors.ShiftNotActiveError
	assert.True(t, errors.As(err, &notActive))

	err = store.FinishShift(ctx, "h2", "s1", end, time.Now())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// The slot is free again.
	assert.NoError(t, store.SaveShift(ctx, activeShift("s2", "h1", time.Now())))
}

func TestFindPreviousShift_LatestByEndTime(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	none, err := store.FindPreviousShift(ctx, "h1")
	require.NoError(t, err)
	assert.Nil(t, none)

	require.NoError(t, store.SaveShift(ctx, activeShift("a", "h1", base)))
	require.NoError(t, store.FinishShift(ctx, "h1", "a", domain.CounterSnapshot{}, base.Add(8*time.Hour)))
	require.NoError(t, store.SaveShift(ctx, activeShift("b", "h1", base.Add(8*time.Hour))))
	require.NoError(t, store.FinishShift(ctx, "h1", "b", domain.CounterSnapshot{Phone: 2}, base.Add(16*time.Hour)))

	prev, err := store.FindPreviousShift(ctx, "h1")
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.Equal(t, "b", prev.ShiftID)
	assert.Equal(t, int64(2), prev.EndCounters.Phone)
}

func TestListShifts_Paginates(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("s%d", i)
		require.NoError(t, store.SaveShift(ctx, activeShift(id, "h1", base.Add(time.Duration(i)*time.Hour))))
		require.NoError(t, store.FinishShift(ctx, "h1", id, domain.CounterSnapshot{}, base.Add(time.Duration(i)*time.Hour+time.Minute)))
	}

	page, err := store.ListShifts(ctx, "h1", 2, nil)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "s2", page[0].ShiftID)
	assert.Equal(t, "s1", page[1].ShiftID)

	rest, err := store.ListShifts(ctx, "h1", 2, &pagination.Cursor{At: page[1].StartTime, ID: page[1].ShiftID})
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "s0", rest[0].ShiftID)
}

func TestEntries_TopLevelAndComments(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	now := time.Now()
	require.NoError(t, store.SaveShift(ctx, activeShift("s1", "h1", now)))

	parent := "e1"
	require.NoError(t, store.SaveEntry(ctx, domain.Entry{EntryID: "e1", ShiftID: "s1", HotelID: "h1", Text: "AC broken", Status: domain.EntryOpen, CreatedAt: now}))
	require.NoError(t, store.SaveEntry(ctx, domain.Entry{EntryID: "e2", ShiftID: "s1", HotelID: "h1", Text: "done", Status: domain.EntryClosed, CreatedAt: now.Add(time.Second)}))
	require.NoError(t, store.SaveEntry(ctx, domain.Entry{EntryID: "c1", ShiftID: "s1", HotelID: "h1", Text: "called tech", ReplyTo: &parent, CreatedAt: now.Add(2 * time.Second)}))

	top, err := store.ListTopLevelByShift(ctx, "h1", "s1")
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "e2", top[0].EntryID)
	assert.Equal(t, "r-s1", top[0].ShiftReceptionist)

	unresolved, err := store.ListUnresolvedByHotel(ctx, "h1")
	require.NoError(t, err)
	require.Len(t, unresolved, 1)
	assert.Equal(t, "e1", unresolved[0].EntryID)

	comments, err := store.ListComments(ctx, "h1", "e1")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "c1", comments[0].EntryID)

	counts, err := store.CountComments(ctx, "h1", []string{"e1", "e2"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"e1": 1}, counts)

	// Comments carry no status.
	err = store.UpdateStatus(ctx, "h1", "c1", domain.EntryClosed)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSaveEntry_UnknownShift(t *testing.T) {
	err := newTestStore().SaveEntry(context.Background(), domain.Entry{EntryID: "e1", ShiftID: "nope", HotelID: "h1"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAuditRecords_NewestFirst(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	for i, text := range []string{"A", "B"} {
		require.NoError(t, store.SaveAuditRecord(ctx, domain.AuditRecord{
			AuditID:       fmt.Sprintf("a%d", i),
			HotelID:       "h1",
			EntityType:    domain.AuditEntry,
			EntityID:      "e1",
			PreviousValue: []byte(`{"text":"` + text + `"}`),
		}))
	}
	require.NoError(t, store.SaveAuditRecord(ctx, domain.AuditRecord{AuditID: "other", HotelID: "h1", EntityType: domain.AuditShiftCounters, EntityID: "e1"}))

	records, err := store.ListAuditRecords(ctx, "h1", domain.AuditEntry, "e1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a1", records[0].AuditID)
	assert.JSONEq(t, `{"text":"A"}`, string(records[1].PreviousValue))
}

func TestFindHotelByID(t *testing.T) {
	store := NewStore()
	store.AddHotel(domain.Hotel{HotelID: "h1", Name: "Pousada", Code: "PSD"})

	h, err := store.FindHotelByID(context.Background(), "h1")
	require.NoError(t, err)
	assert.Equal(t, "PSD", h.Code)

	_, err = store.FindHotelByID(context.Background(), "h2")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSaves_UnknownHotel(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	require.NoError(t, store.SaveShift(ctx, activeShift("s1", "h1", time.Now())))

	err := store.SaveShift(ctx, activeShift("s2", "nohotel", time.Now()))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = store.SaveEntry(ctx, domain.Entry{EntryID: "e1", ShiftID: "s1", HotelID: "nohotel", Text: "x", Status: domain.EntryOpen})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = store.SaveAuditRecord(ctx, domain.AuditRecord{AuditID: "a1", HotelID: "nohotel", EntityType: domain.AuditEntry, EntityID: "e1"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	records, err := store.ListAuditRecords(ctx, "nohotel", domain.AuditEntry, "e1")
	require.NoError(t, err)
	assert.Empty(t, records)
}
