// Package session holds the desk's view of one hotel between requests: the current
// shift, the previous shift and the continuity view. Each terminal or CLI run owns its
// own Session, so several hotels can be served side by side.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/SscSPs/front_desk_log/internal/apperrors"
	"github.com/SscSPs/front_desk_log/internal/core/domain"
	portssvc "github.com/SscSPs/front_desk_log/internal/core/ports/services"
	"github.com/SscSPs/front_desk_log/internal/middleware"
	"github.com/SscSPs/front_desk_log/internal/utils/reconciliation"
)

// ErrNotInitialized is returned by every operation until Initialize succeeds.
var ErrNotInitialized = errors.New("session not initialized, retry initialization")

// Session is safe for concurrent use. Operations are serialized.
type Session struct {
	mu      sync.Mutex
	hotelID string
	svc     *portssvc.ServiceContainer

	state       domain.ShiftState
	initialized bool
	initFailed  bool
	lastErr     error
}

// New creates a session for one hotel. Call Initialize before anything else.
func New(hotelID string, svc *portssvc.ServiceContainer) *Session {
	return &Session{hotelID: hotelID, svc: svc}
}

// HotelID returns the hotel the session is scoped to.
func (s *Session) HotelID() string {
	return s.hotelID
}

// Initialize loads the current shift, the previous shift and the continuity view.
// It may be called any number of times. On failure the previous state is discarded.
func (s *Session) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialize(ctx)
}

// Retry is Initialize, offered after InitializationFailed reports true.
func (s *Session) Retry(ctx context.Context) error {
	return s.Initialize(ctx)
}

func (s *Session) initialize(ctx context.Context) error {
	state, err := s.svc.Initializer.Initialize(ctx, s.hotelID)
	if err != nil {
		s.state = domain.ShiftState{}
		s.initialized = false
		s.initFailed = true
		s.lastErr = err
		middleware.GetLoggerFromCtx(ctx).Warn("Session initialization failed",
			slog.String("hotel_id", s.hotelID),
			slog.String("error", err.Error()))
		return err
	}
	s.state = *state
	s.initialized = true
	s.initFailed = false
	s.lastErr = nil
	return nil
}

// InitializationFailed reports whether the last initialization failed, and why.
func (s *Session) InitializationFailed() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initFailed, s.lastErr
}

// State returns a copy of the current view.
func (s *Session) State() domain.ShiftState {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.state
	state.VisibleEntries = append([]domain.AnnotatedEntry(nil), s.state.VisibleEntries...)
	return state
}

func (s *Session) ready() error {
	if !s.initialized {
		return ErrNotInitialized
	}
	return nil
}

// observe marks the session failed when storage could not be reached.
func (s *Session) observe(err error) error {
	if err != nil && errors.Is(err, apperrors.ErrConnectivity) {
		s.initialized = false
		s.initFailed = true
		s.lastErr = err
	}
	return err
}

func (s *Session) currentShift() (*domain.Shift, error) {
	if s.state.CurrentShift == nil {
		return nil, apperrors.NewValidationFailedError("no active shift, start one first")
	}
	return s.state.CurrentShift, nil
}

// Start opens a shift. When another terminal won the race the session reloads and the
// conflict, naming the active shift's owner, is returned.
func (s *Session) Start(ctx context.Context, receptionist string, counters domain.CounterSnapshot) (*domain.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return nil, err
	}

	shift, err := s.svc.Shift.StartShift(ctx, s.hotelID, receptionist, counters)
	if err != nil {
		var conflict *apperrors.ShiftAlreadyActiveError
		if errors.As(err, &conflict) {
			_ = s.initialize(ctx)
			return nil, err
		}
		return nil, s.observe(err)
	}

	s.state.CurrentShift = shift
	visible, err := s.svc.Continuity.ListVisibleEntries(ctx, s.hotelID, shift)
	if err != nil {
		// The shift exists; only the view is stale.
		s.observe(err)
		return shift, nil
	}
	s.state.VisibleEntries = visible
	return shift, nil
}

// CopyForward returns the previous shift's end counters for the operator to confirm
// or edit. It never starts a shift.
func (s *Session) CopyForward() (domain.CounterSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return domain.CounterSnapshot{}, err
	}
	return reconciliation.CopyForward(s.state.PreviousShift)
}

// Reconcile compares the current shift's start counters with a partially typed draft.
func (s *Session) Reconcile(draft domain.CounterDraft) (reconciliation.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := draft.Validate(); err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}
	shift, err := s.currentShift()
	if err != nil {
		return nil, err
	}
	return reconciliation.DiffDraft(shift.StartCounters, draft), nil
}

// Finish completes the current shift. Unresolved entries stay visible, now as
// carried over from the previous shift.
func (s *Session) Finish(ctx context.Context, endCounters domain.CounterSnapshot, force bool) (*domain.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return nil, err
	}
	shift, err := s.currentShift()
	if err != nil {
		return nil, err
	}

	finished, err := s.svc.Shift.FinishShift(ctx, s.hotelID, shift.ShiftID, endCounters, force)
	if err != nil {
		var notActive *apperrors.ShiftNotActiveError
		if errors.As(err, &notActive) {
			_ = s.initialize(ctx)
			return nil, err
		}
		return nil, s.observe(err)
	}

	s.state.CurrentShift = nil
	s.state.PreviousShift = finished
	carried := s.state.VisibleEntries[:0]
	for _, e := range s.state.VisibleEntries {
		if e.Status.Unresolved() {
			e.FromPreviousShift = true
			carried = append(carried, e)
		}
	}
	s.state.VisibleEntries = carried
	return finished, nil
}

// EditCounters corrects the current shift's start counters.
func (s *Session) EditCounters(ctx context.Context, counters domain.CounterSnapshot, editor string) (*domain.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return nil, err
	}
	shift, err := s.currentShift()
	if err != nil {
		return nil, err
	}

	edited, err := s.svc.Shift.EditCounters(ctx, s.hotelID, shift.ShiftID, counters, editor)
	if err != nil {
		return nil, s.observe(err)
	}
	s.state.CurrentShift = edited
	return edited, nil
}

// AddEntry records an entry in the current shift and shows it at the top of the view
// without reloading.
func (s *Session) AddEntry(ctx context.Context, text string, author string) (*domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return nil, err
	}
	shift, err := s.currentShift()
	if err != nil {
		return nil, err
	}

	entry, err := s.svc.Entry.AddEntry(ctx, s.hotelID, shift.ShiftID, portssvc.NewEntry{Text: text, Author: author})
	if err != nil {
		return nil, s.observe(err)
	}
	annotated := domain.AnnotatedEntry{
		Entry:             *entry,
		ShiftReceptionist: shift.Receptionist,
		ShiftStartTime:    shift.StartTime,
	}
	s.state.VisibleEntries = append([]domain.AnnotatedEntry{annotated}, s.state.VisibleEntries...)
	return entry, nil
}

// AddComment replies to a visible entry.
func (s *Session) AddComment(ctx context.Context, parentID string, text string, author string) (*domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return nil, err
	}

	comment, err := s.svc.Entry.AddComment(ctx, s.hotelID, parentID, text, author)
	if err != nil {
		return nil, s.observe(err)
	}
	if i := s.indexOf(parentID); i >= 0 {
		s.state.VisibleEntries[i].CommentCount++
	}
	return comment, nil
}

// Comments fetches the comments of one entry.
func (s *Session) Comments(ctx context.Context, parentID string) ([]domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return nil, err
	}
	comments, err := s.svc.Entry.ListComments(ctx, s.hotelID, parentID)
	return comments, s.observe(err)
}

// SetStatus changes an entry's status. A carried-over entry that is closed leaves the view.
func (s *Session) SetStatus(ctx context.Context, entryID string, status domain.EntryStatus) (*domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return nil, err
	}

	entry, err := s.svc.Entry.SetStatus(ctx, s.hotelID, entryID, status)
	if err != nil {
		return nil, s.observe(err)
	}
	if i := s.indexOf(entryID); i >= 0 {
		if s.state.VisibleEntries[i].FromPreviousShift && !status.Unresolved() {
			s.state.VisibleEntries = append(s.state.VisibleEntries[:i], s.state.VisibleEntries[i+1:]...)
		} else {
			s.state.VisibleEntries[i].Status = status
		}
	}
	return entry, nil
}

// EditText changes an entry's or comment's text, keeping the old text in the edit history.
func (s *Session) EditText(ctx context.Context, entryID string, text string, editor string) (*domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return nil, err
	}

	entry, err := s.svc.Entry.EditText(ctx, s.hotelID, entryID, text, editor)
	if err != nil {
		return nil, s.observe(err)
	}
	if i := s.indexOf(entryID); i >= 0 {
		s.state.VisibleEntries[i].Text = entry.Text
		s.state.VisibleEntries[i].EditMetadata = entry.EditMetadata
	}
	return entry, nil
}

// History lists the edit history of an entry or of a shift's counters.
func (s *Session) History(ctx context.Context, entityType domain.AuditEntityType, entityID string) ([]domain.AuditRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return nil, err
	}
	records, err := s.svc.Audit.ListHistory(ctx, s.hotelID, entityType, entityID)
	return records, s.observe(err)
}

func (s *Session) indexOf(entryID string) int {
	for i := range s.state.VisibleEntries {
		if s.state.VisibleEntries[i].EntryID == entryID {
			return i
		}
	}
	return -1
}
