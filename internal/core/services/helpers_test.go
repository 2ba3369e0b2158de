package services_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/front_desk_log/internal/core/domain"
	portsrepo "github.com/SscSPs/front_desk_log/internal/core/ports/repositories"
	"github.com/SscSPs/front_desk_log/internal/repositories/memory"
	"github.com/SscSPs/front_desk_log/internal/utils/pagination"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newHotelStore returns a memory store with the test hotel provisioned.
func newHotelStore() *memory.Store {
	store := memory.NewStore()
	store.AddHotel(domain.Hotel{HotelID: hotelID, Name: "Pousada Azul", Code: "AZL"})
	return store
}

// stepClock advances one second per reading so every stamped time is distinct.
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func newStepClock() *stepClock {
	return &stepClock{t: time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

// --- Mock ShiftRepository ---
type MockShiftRepository struct {
	mock.Mock
}

var _ portsrepo.ShiftRepositoryFacade = (*MockShiftRepository)(nil)

func (m *MockShiftRepository) FindShiftByID(ctx context.Context, hotelID string, shiftID string) (*domain.Shift, error) {
	args := m.Called(ctx, hotelID, shiftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shift), args.Error(1)
}

func (m *MockShiftRepository) FindActiveShift(ctx context.Context, hotelID string) (*domain.Shift, error) {
	args := m.Called(ctx, hotelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shift), args.Error(1)
}

func (m *MockShiftRepository) FindPreviousShift(ctx context.Context, hotelID string) (*domain.Shift, error) {
	args := m.Called(ctx, hotelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shift), args.Error(1)
}

func (m *MockShiftRepository) ListShifts(ctx context.Context, hotelID string, limit int, after *pagination.Cursor) ([]domain.Shift, error) {
	args := m.Called(ctx, hotelID, limit, after)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Shift), args.Error(1)
}

func (m *MockShiftRepository) SaveShift(ctx context.Context, shift domain.Shift) error {
	args := m.Called(ctx, shift)
	return args.Error(0)
}

func (m *MockShiftRepository) FinishShift(ctx context.Context, hotelID string, shiftID string, endCounters domain.CounterSnapshot, endTime time.Time) error {
	args := m.Called(ctx, hotelID, shiftID, endCounters, endTime)
	return args.Error(0)
}

func (m *MockShiftRepository) UpdateStartCounters(ctx context.Context, hotelID string, shiftID string, counters domain.CounterSnapshot, editor string, editedAt time.Time) error {
	args := m.Called(ctx, hotelID, shiftID, counters, editor, editedAt)
	return args.Error(0)
}

// --- Mock AuditRepository ---
type MockAuditRepository struct {
	mock.Mock
}

var _ portsrepo.AuditRepositoryFacade = (*MockAuditRepository)(nil)

func (m *MockAuditRepository) SaveAuditRecord(ctx context.Context, record domain.AuditRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAuditRepository) ListAuditRecords(ctx context.Context, hotelID string, entityType domain.AuditEntityType, entityID string) ([]domain.AuditRecord, error) {
	args := m.Called(ctx, hotelID, entityType, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditRecord), args.Error(1)
}

// mustField extracts one field of a JSON object as raw JSON.
func mustField(t *testing.T, raw []byte, field string) string {
	t.Helper()
	var obj map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &obj))
	v, ok := obj[field]
	require.True(t, ok, "field %s missing", field)
	return string(v)
}
