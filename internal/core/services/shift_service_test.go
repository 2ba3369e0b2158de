package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/front_desk_log/internal/apperrors"
	"github.com/SscSPs/front_desk_log/internal/core/domain"
	portssvc "github.com/SscSPs/front_desk_log/internal/core/ports/services"
	"github.com/SscSPs/front_desk_log/internal/core/services"
	"github.com/SscSPs/front_desk_log/internal/repositories/memory"
	"github.com/SscSPs/front_desk_log/internal/utils/reconciliation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const hotelID = "hotel-1"

func cash(v int64) domain.CounterSnapshot {
	return domain.CounterSnapshot{CashBRL: decimal.NewFromInt(v)}
}

type ShiftServiceTestSuite struct {
	suite.Suite
	store *memory.Store
	svc   *portssvc.ServiceContainer
	ctx   context.Context
}

func (s *ShiftServiceTestSuite) SetupTest() {
	s.store = newHotelStore()
	s.svc = services.NewServiceContainer(s.store.Provider(), services.WithClock(newStepClock().Now))
	s.ctx = context.Background()
}

func TestShiftServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ShiftServiceTestSuite))
}

func (s *ShiftServiceTestSuite) TestStartShift_Success() {
	shift, err := s.svc.Shift.StartShift(s.ctx, hotelID, "  Alice ", cash(100))
	s.Require().NoError(err)
	s.Equal("Alice", shift.Receptionist)
	s.Equal(domain.ShiftActive, shift.Status)
	s.Nil(shift.EndTime)
	s.Nil(shift.EndCounters)
	s.True(shift.StartCounters.CashBRL.Equal(decimal.NewFromInt(100)))

	active, err := s.svc.Shift.GetActiveShift(s.ctx, hotelID)
	s.Require().NoError(err)
	s.Equal(shift.ShiftID, active.ShiftID)
}

func (s *ShiftServiceTestSuite) TestStartShift_Validation() {
	_, err := s.svc.Shift.StartShift(s.ctx, hotelID, "   ", cash(100))
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Shift.StartShift(s.ctx, hotelID, "Alice", cash(-1))
	s.ErrorIs(err, apperrors.ErrValidation)

	active, err := s.svc.Shift.GetActiveShift(s.ctx, hotelID)
	s.NoError(err)
	s.Nil(active)
}

func (s *ShiftServiceTestSuite) TestStartShift_ConflictNamesOwner() {
	alice, err := s.svc.Shift.StartShift(s.ctx, hotelID, "Alice", cash(100))
	s.Require().NoError(err)

	_, err = s.svc.Shift.StartShift(s.ctx, hotelID, "Bob", cash(50))
	var conflict *apperrors.ShiftAlreadyActiveError
	s.Require().True(errors.As(err, &conflict))
	s.ErrorIs(err, apperrors.ErrConflict)
	s.Equal(alice.ShiftID, conflict.ShiftID)
	s.Equal("Alice", conflict.Receptionist)
	s.Contains(conflict.Error(), "Alice")

	shifts, _, err := s.svc.Shift.ListShifts(s.ctx, hotelID, 10, "")
	s.Require().NoError(err)
	s.Len(shifts, 1, "no row is created by the rejected start")
}

func (s *ShiftServiceTestSuite) TestFinishShift_DoesNotTouchEntries() {
	shift, err := s.svc.Shift.StartShift(s.ctx, hotelID, "Alice", cash(100))
	s.Require().NoError(err)

	open, err := s.svc.Entry.AddEntry(s.ctx, hotelID, shift.ShiftID, portssvc.NewEntry{Text: "AC broken in 12"})
	s.Require().NoError(err)
	progress, err := s.svc.Entry.AddEntry(s.ctx, hotelID, shift.ShiftID, portssvc.NewEntry{Text: "Guest waiting for taxi"})
	s.Require().NoError(err)
	_, err = s.svc.Entry.SetStatus(s.ctx, hotelID, progress.EntryID, domain.EntryInProgress)
	s.Require().NoError(err)

	finished, err := s.svc.Shift.FinishShift(s.ctx, hotelID, shift.ShiftID, cash(100), true)
	s.Require().NoError(err)
	s.Equal(domain.ShiftCompleted, finished.Status)
	s.NotNil(finished.EndTime)
	s.Require().NotNil(finished.EndCounters)

	got, err := s.svc.Entry.GetEntry(s.ctx, hotelID, open.EntryID)
	s.Require().NoError(err)
	s.Equal(domain.EntryOpen, got.Status)
	got, err = s.svc.Entry.GetEntry(s.ctx, hotelID, progress.EntryID)
	s.Require().NoError(err)
	s.Equal(domain.EntryInProgress, got.Status)
}

func (s *ShiftServiceTestSuite) TestFinishShift_RequiresConfirmationWithUnresolvedEntries() {
	shift, err := s.svc.Shift.StartShift(s.ctx, hotelID, "Alice", cash(100))
	s.Require().NoError(err)
	_, err = s.svc.Entry.AddEntry(s.ctx, hotelID, shift.ShiftID, portssvc.NewEntry{Text: "Lost key"})
	s.Require().NoError(err)

	_, err = s.svc.Shift.FinishShift(s.ctx, hotelID, shift.ShiftID, cash(100), false)
	var unresolved *apperrors.UnresolvedEntriesError
	s.Require().True(errors.As(err, &unresolved))
	s.Equal(1, unresolved.Count)

	active, err := s.svc.Shift.GetActiveShift(s.ctx, hotelID)
	s.Require().NoError(err)
	s.Require().NotNil(active, "shift stays active until confirmed")

	_, err = s.svc.Shift.FinishShift(s.ctx, hotelID, shift.ShiftID, cash(100), true)
	s.NoError(err)
}

func (s *ShiftServiceTestSuite) TestFinishShift_OnlyOnce() {
	shift, err := s.svc.Shift.StartShift(s.ctx, hotelID, "Alice", cash(100))
	s.Require().NoError(err)
	_, err = s.svc.Shift.FinishShift(s.ctx, hotelID, shift.ShiftID, cash(90), false)
	s.Require().NoError(err)

	_, err = s.svc.Shift.FinishShift(s.ctx, hotelID, shift.ShiftID, cash(80), true)
	var notActive *apperrors.ShiftNotActiveError
	s.True(errors.As(err, &notActive))

	again, err := s.svc.Shift.GetShift(s.ctx, hotelID, shift.ShiftID)
	s.Require().NoError(err)
	s.True(again.EndCounters.CashBRL.Equal(decimal.NewFromInt(90)))
}

func (s *ShiftServiceTestSuite) TestStartShift_RejectsSubCentAmounts() {
	counters := domain.CounterSnapshot{CashBRL: decimal.RequireFromString("100.005")}
	_, err := s.svc.Shift.StartShift(s.ctx, hotelID, "Alice", counters)
	s.ErrorIs(err, apperrors.ErrValidation)

	shift, err := s.svc.Shift.StartShift(s.ctx, hotelID, "Alice", cash(100))
	s.Require().NoError(err)
	_, err = s.svc.Shift.FinishShift(s.ctx, hotelID, shift.ShiftID, counters, true)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ShiftServiceTestSuite) TestStartShift_UnknownHotel() {
	_, err := s.svc.Shift.StartShift(s.ctx, "nohotel", "Alice", cash(100))
	s.ErrorIs(err, apperrors.ErrNotFound)

	active, err := s.svc.Shift.GetActiveShift(s.ctx, "nohotel")
	s.NoError(err)
	s.Nil(active)
}

func (s *ShiftServiceTestSuite) TestFinishShift_NotFound() {
	_, err := s.svc.Shift.FinishShift(s.ctx, hotelID, "missing", cash(1), true)
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.svc.Shift.FinishShift(s.ctx, "other-hotel", "missing", cash(1), true)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *ShiftServiceTestSuite) TestEditCounters_AuditsPreviousStartCounters() {
	shift, err := s.svc.Shift.StartShift(s.ctx, hotelID, "Alice", cash(100))
	s.Require().NoError(err)

	edited, err := s.svc.Shift.EditCounters(s.ctx, hotelID, shift.ShiftID, cash(120), "Manager")
	s.Require().NoError(err)
	s.True(edited.StartCounters.CashBRL.Equal(decimal.NewFromInt(120)))
	s.Equal("Manager", edited.EditedBy)
	s.NotNil(edited.LastEditedAt)

	history, err := s.svc.Audit.ListHistory(s.ctx, hotelID, domain.AuditShiftCounters, shift.ShiftID)
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.Equal("Manager", history[0].EditedBy)
	s.JSONEq(`"100"`, mustField(s.T(), history[0].PreviousValue, "cash_brl"))

	stored, err := s.svc.Shift.GetShift(s.ctx, hotelID, shift.ShiftID)
	s.Require().NoError(err)
	s.True(stored.StartCounters.CashBRL.Equal(decimal.NewFromInt(120)))
}

func (s *ShiftServiceTestSuite) TestEditCounters_Validation() {
	shift, err := s.svc.Shift.StartShift(s.ctx, hotelID, "Alice", cash(100))
	s.Require().NoError(err)

	_, err = s.svc.Shift.EditCounters(s.ctx, hotelID, shift.ShiftID, cash(120), "")
	s.ErrorIs(err, apperrors.ErrValidation)

	history, err := s.svc.Audit.ListHistory(s.ctx, hotelID, domain.AuditShiftCounters, shift.ShiftID)
	s.Require().NoError(err)
	s.Empty(history)
}

func (s *ShiftServiceTestSuite) TestListShifts_Pagination() {
	for _, name := range []string{"Alice", "Bob", "Carla"} {
		shift, err := s.svc.Shift.StartShift(s.ctx, hotelID, name, cash(100))
		s.Require().NoError(err)
		_, err = s.svc.Shift.FinishShift(s.ctx, hotelID, shift.ShiftID, cash(100), false)
		s.Require().NoError(err)
	}

	page, next, err := s.svc.Shift.ListShifts(s.ctx, hotelID, 2, "")
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Equal("Carla", page[0].Receptionist)
	s.NotEmpty(next)

	rest, next, err := s.svc.Shift.ListShifts(s.ctx, hotelID, 2, next)
	s.Require().NoError(err)
	s.Require().Len(rest, 1)
	s.Equal("Alice", rest[0].Receptionist)
	s.Empty(next)

	_, _, err = s.svc.Shift.ListShifts(s.ctx, hotelID, 2, "%%%")
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ShiftServiceTestSuite) TestCopyForward() {
	_, err := s.svc.Shift.CopyForward(s.ctx, hotelID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	shift, err := s.svc.Shift.StartShift(s.ctx, hotelID, "Alice", cash(100))
	s.Require().NoError(err)
	end := domain.CounterSnapshot{CashBRL: decimal.RequireFromString("87.50"), Umbrella: 3}
	_, err = s.svc.Shift.FinishShift(s.ctx, hotelID, shift.ShiftID, end, false)
	s.Require().NoError(err)

	counters, err := s.svc.Shift.CopyForward(s.ctx, hotelID)
	s.Require().NoError(err)
	s.True(counters.CashBRL.Equal(end.CashBRL))
	s.Equal(int64(3), counters.Umbrella)

	// Copying is a read; it never opens a shift.
	active, err := s.svc.Shift.GetActiveShift(s.ctx, hotelID)
	s.Require().NoError(err)
	s.Nil(active)
}

func (s *ShiftServiceTestSuite) TestPreviewReconciliation() {
	shift, err := s.svc.Shift.StartShift(s.ctx, hotelID, "Alice", domain.CounterSnapshot{CashBRL: decimal.NewFromInt(100), Phone: 1})
	s.Require().NoError(err)

	report, err := s.svc.Shift.PreviewReconciliation(s.ctx, hotelID, shift.ShiftID, domain.CounterDraft{
		domain.FieldCashBRL: decimal.NewFromInt(90),
	})
	s.Require().NoError(err)
	s.Equal(reconciliation.Shortage, report[domain.FieldCashBRL].Sign)
	s.Equal(reconciliation.Pending, report[domain.FieldPhone].Sign)

	_, err = s.svc.Shift.PreviewReconciliation(s.ctx, hotelID, shift.ShiftID, domain.CounterDraft{
		domain.FieldPensCount: decimal.RequireFromString("1.5"),
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Shift.PreviewReconciliation(s.ctx, hotelID, shift.ShiftID, domain.CounterDraft{"bogus": decimal.Zero})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ShiftServiceTestSuite) TestScenario_AliceHandsOverToBob() {
	alice, err := s.svc.Shift.StartShift(s.ctx, hotelID, "Alice", cash(100))
	s.Require().NoError(err)

	_, err = s.svc.Shift.StartShift(s.ctx, hotelID, "Bob", cash(50))
	s.ErrorIs(err, apperrors.ErrConflict)
	active, err := s.svc.Shift.GetActiveShift(s.ctx, hotelID)
	s.Require().NoError(err)
	s.Equal("Alice", active.Receptionist)

	ac, err := s.svc.Entry.AddEntry(s.ctx, hotelID, alice.ShiftID, portssvc.NewEntry{Text: "AC broken"})
	s.Require().NoError(err)
	s.Equal(domain.EntryOpen, ac.Status)

	finished, err := s.svc.Shift.FinishShift(s.ctx, hotelID, alice.ShiftID, cash(100), true)
	s.Require().NoError(err)
	report := reconciliation.Diff(finished.StartCounters, *finished.EndCounters)
	s.True(report[domain.FieldCashBRL].Delta.IsZero())
	s.Equal(reconciliation.Unchanged, report[domain.FieldCashBRL].Sign)

	bob, err := s.svc.Shift.StartShift(s.ctx, hotelID, "Bob", cash(100))
	s.Require().NoError(err)

	visible, err := s.svc.Continuity.ListVisibleEntries(s.ctx, hotelID, bob)
	s.Require().NoError(err)
	s.Require().Len(visible, 1)
	s.Equal(ac.EntryID, visible[0].EntryID)
	s.True(visible[0].FromPreviousShift)
	s.Equal("Alice", visible[0].ShiftReceptionist)
	s.Equal(alice.StartTime, visible[0].ShiftStartTime)
}

// --- failure paths with mocks ---

func TestEditCounters_AuditFailureLeavesCountersUntouched(t *testing.T) {
	ctx := context.Background()
	shiftRepo := new(MockShiftRepository)
	auditRepo := new(MockAuditRepository)
	store := newHotelStore()

	shift := &domain.Shift{ShiftID: "s1", HotelID: hotelID, Receptionist: "Alice", Status: domain.ShiftActive, StartCounters: cash(100)}
	shiftRepo.On("FindShiftByID", mock.Anything, hotelID, "s1").Return(shift, nil)
	auditRepo.On("SaveAuditRecord", mock.Anything, mock.AnythingOfType("domain.AuditRecord")).
		Return(apperrors.NewConnectivityError("database unavailable", errors.New("dial tcp: refused")))

	audit := services.NewAuditService(auditRepo)
	svc := services.NewShiftService(shiftRepo, store, audit)

	_, err := svc.EditCounters(ctx, hotelID, "s1", cash(120), "Manager")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConnectivity)
	shiftRepo.AssertNotCalled(t, "UpdateStartCounters", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	auditRepo.AssertExpectations(t)
}

func TestEditCounters_UpdateFailureKeepsAuditRecord(t *testing.T) {
	ctx := context.Background()
	shiftRepo := new(MockShiftRepository)
	store := newHotelStore()

	shift := &domain.Shift{ShiftID: "s1", HotelID: hotelID, Receptionist: "Alice", Status: domain.ShiftActive, StartCounters: cash(100)}
	shiftRepo.On("FindShiftByID", mock.Anything, hotelID, "s1").Return(shift, nil)
	shiftRepo.On("UpdateStartCounters", mock.Anything, hotelID, "s1", cash(120), "Manager", mock.AnythingOfType("time.Time")).
		Return(apperrors.NewConnectivityError("database unavailable", errors.New("timeout")))

	audit := services.NewAuditService(store)
	svc := services.NewShiftService(shiftRepo, store, audit)

	_, err := svc.EditCounters(ctx, hotelID, "s1", cash(120), "Manager")
	assert.ErrorIs(t, err, apperrors.ErrConnectivity)

	history, err := audit.ListHistory(ctx, hotelID, domain.AuditShiftCounters, "s1")
	require.NoError(t, err)
	assert.Len(t, history, 1, "a stray audit record is the accepted outcome")
	shiftRepo.AssertExpectations(t)
}

func TestStartShift_ConnectivityErrorPropagates(t *testing.T) {
	ctx := context.Background()
	shiftRepo := new(MockShiftRepository)
	shiftRepo.On("SaveShift", mock.Anything, mock.AnythingOfType("domain.Shift")).
		Return(apperrors.NewConnectivityError("database unavailable", errors.New("reset")))

	svc := services.NewShiftService(shiftRepo, newHotelStore(), services.NewAuditService(newHotelStore()))

	_, err := svc.StartShift(ctx, hotelID, "Alice", cash(100))
	assert.ErrorIs(t, err, apperrors.ErrConnectivity)
	assert.NotErrorIs(t, err, apperrors.ErrConflict)
	shiftRepo.AssertNotCalled(t, "FindActiveShift", mock.Anything, mock.Anything)
}

func TestStartShift_ConflictStillReturnedWhenReReadFails(t *testing.T) {
	ctx := context.Background()
	shiftRepo := new(MockShiftRepository)
	shiftRepo.On("SaveShift", mock.Anything, mock.AnythingOfType("domain.Shift")).
		Return(&apperrors.ShiftAlreadyActiveError{HotelID: hotelID})
	shiftRepo.On("FindActiveShift", mock.Anything, hotelID).
		Return(nil, apperrors.NewConnectivityError("database unavailable", errors.New("reset")))

	svc := services.NewShiftService(shiftRepo, newHotelStore(), services.NewAuditService(newHotelStore()))

	_, err := svc.StartShift(ctx, hotelID, "Bob", cash(100))
	var conflict *apperrors.ShiftAlreadyActiveError
	require.True(t, errors.As(err, &conflict))
	assert.Empty(t, conflict.Receptionist)
	shiftRepo.AssertExpectations(t)
}
