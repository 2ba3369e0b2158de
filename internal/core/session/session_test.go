package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/front_desk_log/internal/apperrors"
	"github.com/SscSPs/front_desk_log/internal/core/domain"
	portssvc "github.com/SscSPs/front_desk_log/internal/core/ports/services"
	"github.com/SscSPs/front_desk_log/internal/core/services"
	"github.com/SscSPs/front_desk_log/internal/core/session"
	"github.com/SscSPs/front_desk_log/internal/repositories/memory"
	"github.com/SscSPs/front_desk_log/internal/utils/reconciliation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const hotelID = "hotel-azul"

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

// flakyInitializer fails a number of times before delegating.
type flakyInitializer struct {
	next     portssvc.InitializerSvc
	failures int
}

func (f *flakyInitializer) Initialize(ctx context.Context, hotelID string) (*domain.ShiftState, error) {
	if f.failures > 0 {
		f.failures--
		return nil, apperrors.NewConnectivityError("database unreachable", errors.New("dial tcp: timeout"))
	}
	return f.next.Initialize(ctx, hotelID)
}

type SessionTestSuite struct {
	suite.Suite
	store *memory.Store
	svc   *portssvc.ServiceContainer
	ctx   context.Context
}

func (s *SessionTestSuite) SetupTest() {
	s.store = memory.NewStore()
	s.store.AddHotel(domain.Hotel{HotelID: hotelID, Name: "Pousada Azul", Code: "AZL"})
	c := &clock{t: time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC)}
	s.svc = services.NewServiceContainer(s.store.Provider(), services.WithClock(c.Now))
	s.ctx = context.Background()
}

func TestSessionTestSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}

func (s *SessionTestSuite) open() *session.Session {
	sess := session.New(hotelID, s.svc)
	s.Require().NoError(sess.Initialize(s.ctx))
	return sess
}

func counters(cash int64) domain.CounterSnapshot {
	return domain.CounterSnapshot{CashBRL: decimal.NewFromInt(cash), PensCount: 4}
}

func (s *SessionTestSuite) TestOperationsRequireInitialization() {
	sess := session.New(hotelID, s.svc)
	_, err := sess.Start(s.ctx, "Alice", counters(100))
	s.ErrorIs(err, session.ErrNotInitialized)
	_, err = sess.CopyForward()
	s.ErrorIs(err, session.ErrNotInitialized)
}

func (s *SessionTestSuite) TestFailedInitializationAndRetry() {
	s.svc.Initializer = &flakyInitializer{next: s.svc.Initializer, failures: 1}
	sess := session.New(hotelID, s.svc)

	err := sess.Initialize(s.ctx)
	s.ErrorIs(err, apperrors.ErrConnectivity)
	failed, cause := sess.InitializationFailed()
	s.True(failed)
	s.ErrorIs(cause, apperrors.ErrConnectivity)
	_, err = sess.AddEntry(s.ctx, "Lost key", "")
	s.ErrorIs(err, session.ErrNotInitialized)

	s.Require().NoError(sess.Retry(s.ctx))
	failed, cause = sess.InitializationFailed()
	s.False(failed)
	s.NoError(cause)
	s.Nil(sess.State().CurrentShift)
}

func (s *SessionTestSuite) TestStartAddFinishHandover() {
	alice := s.open()
	shift, err := alice.Start(s.ctx, "Alice", counters(100))
	s.Require().NoError(err)
	s.Equal(shift.ShiftID, alice.State().CurrentShift.ShiftID)

	open, err := alice.AddEntry(s.ctx, "Guest in 204 asked for a late checkout", "")
	s.Require().NoError(err)
	s.Equal("Alice", open.CreatedBy)
	done, err := alice.AddEntry(s.ctx, "Taxi booked for 305", "")
	s.Require().NoError(err)
	_, err = alice.SetStatus(s.ctx, done.EntryID, domain.EntryClosed)
	s.Require().NoError(err)

	visible := alice.State().VisibleEntries
	s.Require().Len(visible, 2)
	s.Equal(done.EntryID, visible[0].EntryID)
	s.Equal(domain.EntryClosed, visible[0].Status)

	_, err = alice.Finish(s.ctx, counters(120), false)
	var unresolved *apperrors.UnresolvedEntriesError
	s.Require().ErrorAs(err, &unresolved)
	s.Equal(1, unresolved.Count)

	finished, err := alice.Finish(s.ctx, counters(120), true)
	s.Require().NoError(err)
	state := alice.State()
	s.Nil(state.CurrentShift)
	s.Equal(finished.ShiftID, state.PreviousShift.ShiftID)
	s.Require().Len(state.VisibleEntries, 1)
	s.Equal(open.EntryID, state.VisibleEntries[0].EntryID)
	s.True(state.VisibleEntries[0].FromPreviousShift)

	bob := s.open()
	forward, err := bob.CopyForward()
	s.Require().NoError(err)
	s.True(forward.CashBRL.Equal(decimal.NewFromInt(120)))
	s.Nil(bob.State().CurrentShift, "copy forward never starts a shift")

	_, err = bob.Start(s.ctx, "Bob", forward)
	s.Require().NoError(err)
	visible = bob.State().VisibleEntries
	s.Require().Len(visible, 1)
	s.Equal(open.EntryID, visible[0].EntryID)
	s.Equal("Alice", visible[0].ShiftReceptionist)

	_, err = bob.AddComment(s.ctx, open.EntryID, "Guest confirmed 14h", "")
	s.Require().NoError(err)
	s.Equal(1, bob.State().VisibleEntries[0].CommentCount)

	_, err = bob.SetStatus(s.ctx, open.EntryID, domain.EntryClosed)
	s.Require().NoError(err)
	s.Empty(bob.State().VisibleEntries)
}

func (s *SessionTestSuite) TestStartConflictReloadsState() {
	alice := s.open()
	bob := s.open()

	_, err := alice.Start(s.ctx, "Alice", counters(100))
	s.Require().NoError(err)

	_, err = bob.Start(s.ctx, "Bob", counters(100))
	var conflict *apperrors.ShiftAlreadyActiveError
	s.Require().ErrorAs(err, &conflict)
	s.Equal("Alice", conflict.Receptionist)
	s.Require().NotNil(bob.State().CurrentShift)
	s.Equal("Alice", bob.State().CurrentShift.Receptionist)
}

func (s *SessionTestSuite) TestEditsAndHistory() {
	sess := s.open()
	shift, err := sess.Start(s.ctx, "Alice", counters(100))
	s.Require().NoError(err)

	edited, err := sess.EditCounters(s.ctx, counters(110), "Alice")
	s.Require().NoError(err)
	s.True(edited.StartCounters.CashBRL.Equal(decimal.NewFromInt(110)))

	entry, err := sess.AddEntry(s.ctx, "Pool closes at 20h", "")
	s.Require().NoError(err)
	_, err = sess.EditText(s.ctx, entry.EntryID, "Pool closes at 21h", "Alice")
	s.Require().NoError(err)
	s.Equal("Pool closes at 21h", sess.State().VisibleEntries[0].Text)

	history, err := sess.History(s.ctx, domain.AuditEntry, entry.EntryID)
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.JSONEq(`{"text":"Pool closes at 20h"}`, string(history[0].PreviousValue))

	counterHistory, err := sess.History(s.ctx, domain.AuditShiftCounters, shift.ShiftID)
	s.Require().NoError(err)
	s.Len(counterHistory, 1)
}

func (s *SessionTestSuite) TestReconcileAgainstDraft() {
	sess := s.open()
	_, err := sess.Start(s.ctx, "Alice", counters(100))
	s.Require().NoError(err)

	report, err := sess.Reconcile(domain.CounterDraft{domain.FieldCashBRL: decimal.NewFromInt(90)})
	s.Require().NoError(err)
	s.Equal(reconciliation.Shortage, report[domain.FieldCashBRL].Sign)
	s.Equal(reconciliation.Pending, report[domain.FieldPensCount].Sign)

	_, err = sess.Reconcile(domain.CounterDraft{domain.FieldPensCount: decimal.RequireFromString("2.5")})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *SessionTestSuite) TestNoActiveShift() {
	sess := s.open()
	_, err := sess.AddEntry(s.ctx, "Noise complaint", "")
	s.ErrorIs(err, apperrors.ErrValidation)
	_, err = sess.Finish(s.ctx, counters(0), true)
	s.ErrorIs(err, apperrors.ErrValidation)
	_, err = sess.CopyForward()
	s.ErrorIs(err, apperrors.ErrNotFound)
}
