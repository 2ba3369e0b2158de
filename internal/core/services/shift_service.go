package services

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/SscSPs/front_desk_log/internal/apperrors"
	"github.com/SscSPs/front_desk_log/internal/core/domain"
	portsrepo "github.com/SscSPs/front_desk_log/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/front_desk_log/internal/core/ports/services"
	"github.com/SscSPs/front_desk_log/internal/metrics"
	"github.com/SscSPs/front_desk_log/internal/utils/pagination"
	"github.com/SscSPs/front_desk_log/internal/utils/reconciliation"
	"github.com/google/uuid"
)

const (
	defaultShiftPageSize = 20
	maxShiftPageSize     = 100
)

type shiftService struct {
	BaseService
	shiftRepo portsrepo.ShiftRepositoryFacade
	entryRepo portsrepo.EntryReader
	audit     portssvc.AuditSvc
}

// NewShiftService creates the shift lifecycle service.
func NewShiftService(shiftRepo portsrepo.ShiftRepositoryFacade, entryRepo portsrepo.EntryReader, audit portssvc.AuditSvc, options ...ServiceOption) portssvc.ShiftSvcFacade {
	return &shiftService{
		BaseService: newBaseService(options...),
		shiftRepo:   shiftRepo,
		entryRepo:   entryRepo,
		audit:       audit,
	}
}

var _ portssvc.ShiftSvcFacade = (*shiftService)(nil)

func (s *shiftService) StartShift(ctx context.Context, hotelID string, receptionist string, startCounters domain.CounterSnapshot) (*domain.Shift, error) {
	receptionist = strings.TrimSpace(receptionist)
	if receptionist == "" {
		return nil, apperrors.NewValidationFailedError("receptionist name is required")
	}
	if err := startCounters.Validate(); err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}

	shift := domain.Shift{
		ShiftID:       uuid.NewString(),
		HotelID:       hotelID,
		Receptionist:  receptionist,
		StartTime:     s.Now(),
		Status:        domain.ShiftActive,
		StartCounters: startCounters,
	}

	if err := s.shiftRepo.SaveShift(ctx, shift); err != nil {
		var conflict *apperrors.ShiftAlreadyActiveError
		if errors.As(err, &conflict) {
			metrics.ShiftStartConflicts.Inc()
			s.describeActiveShift(ctx, hotelID, conflict)
			s.LogInfo(ctx, "Shift start rejected, another shift is active",
				slog.String("receptionist", receptionist),
				slog.String("active_shift_id", conflict.ShiftID),
				slog.String("active_receptionist", conflict.Receptionist))
			return nil, conflict
		}
		s.LogError(ctx, err, "Failed to save shift", slog.String("receptionist", receptionist))
		return nil, err
	}

	metrics.ShiftsStarted.Inc()
	s.LogInfo(ctx, "Shift started",
		slog.String("shift_id", shift.ShiftID),
		slog.String("receptionist", receptionist))
	return &shift, nil
}

// describeActiveShift fills the conflict with the owner of the shift that won the race.
func (s *shiftService) describeActiveShift(ctx context.Context, hotelID string, conflict *apperrors.ShiftAlreadyActiveError) {
	conflict.HotelID = hotelID
	active, err := s.shiftRepo.FindActiveShift(ctx, hotelID)
	if err != nil {
		s.LogError(ctx, err, "Failed to re-read active shift after conflict")
		return
	}
	if active == nil {
		return
	}
	conflict.ShiftID = active.ShiftID
	conflict.Receptionist = active.Receptionist
	conflict.StartedAt = active.StartTime
}

func (s *shiftService) FinishShift(ctx context.Context, hotelID string, shiftID string, endCounters domain.CounterSnapshot, force bool) (*domain.Shift, error) {
	if err := endCounters.Validate(); err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}

	shift, err := s.findShift(ctx, hotelID, shiftID)
	if err != nil {
		return nil, err
	}
	if !shift.IsActive() {
		return nil, &apperrors.ShiftNotActiveError{ShiftID: shiftID}
	}

	unresolved, err := s.entryRepo.ListUnresolvedByHotel(ctx, hotelID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count unresolved entries", slog.String("shift_id", shiftID))
		return nil, err
	}
	if len(unresolved) > 0 && !force {
		return nil, &apperrors.UnresolvedEntriesError{ShiftID: shiftID, Count: len(unresolved)}
	}

	// Entries are handed over untouched, whatever their status.
	now := s.Now()
	if err := s.shiftRepo.FinishShift(ctx, hotelID, shiftID, endCounters, now); err != nil {
		var notActive *apperrors.ShiftNotActiveError
		if !errors.As(err, &notActive) {
			s.LogError(ctx, err, "Failed to finish shift", slog.String("shift_id", shiftID))
		}
		return nil, err
	}

	handover := metrics.HandoverClean
	if len(unresolved) > 0 {
		handover = metrics.HandoverUnresolved
	}
	metrics.ShiftsFinished.WithLabelValues(handover).Inc()
	s.LogInfo(ctx, "Shift finished",
		slog.String("shift_id", shiftID),
		slog.Int("unresolved_entries", len(unresolved)))

	shift.Status = domain.ShiftCompleted
	shift.EndTime = &now
	shift.EndCounters = &endCounters
	return shift, nil
}

func (s *shiftService) EditCounters(ctx context.Context, hotelID string, shiftID string, counters domain.CounterSnapshot, editor string) (*domain.Shift, error) {
	editor = strings.TrimSpace(editor)
	if editor == "" {
		return nil, apperrors.NewValidationFailedError("editor name is required")
	}
	if err := counters.Validate(); err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}

	shift, err := s.findShift(ctx, hotelID, shiftID)
	if err != nil {
		return nil, err
	}

	// The snapshot must be stored before the counters change.
	if _, err := s.audit.Record(ctx, hotelID, domain.AuditShiftCounters, shiftID, shift.StartCounters, editor); err != nil {
		return nil, err
	}

	now := s.Now()
	if err := s.shiftRepo.UpdateStartCounters(ctx, hotelID, shiftID, counters, editor, now); err != nil {
		s.LogError(ctx, err, "Failed to update start counters after audit", slog.String("shift_id", shiftID))
		return nil, err
	}

	s.LogInfo(ctx, "Start counters edited", slog.String("shift_id", shiftID), slog.String("editor", editor))
	shift.StartCounters = counters
	shift.LastEditedAt = &now
	shift.EditedBy = editor
	return shift, nil
}

func (s *shiftService) GetShift(ctx context.Context, hotelID string, shiftID string) (*domain.Shift, error) {
	shift, err := s.findShift(ctx, hotelID, shiftID)
	if err != nil {
		return nil, err
	}

	rows, err := s.entryRepo.ListTopLevelByShift(ctx, hotelID, shiftID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list shift entries", slog.String("shift_id", shiftID))
		return nil, err
	}
	entries := make([]domain.Entry, 0, len(rows))
	for _, row := range rows {
		entry := row.Entry
		comments, err := s.entryRepo.ListComments(ctx, hotelID, entry.EntryID)
		if err != nil {
			s.LogError(ctx, err, "Failed to list comments", slog.String("parent_id", entry.EntryID))
			return nil, err
		}
		entry.Comments = comments
		entries = append(entries, entry)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return newerFirst(entries[i], entries[j])
	})
	shift.Entries = entries
	return shift, nil
}

func (s *shiftService) GetActiveShift(ctx context.Context, hotelID string) (*domain.Shift, error) {
	shift, err := s.shiftRepo.FindActiveShift(ctx, hotelID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find active shift")
		return nil, err
	}
	return shift, nil
}

func (s *shiftService) GetPreviousShift(ctx context.Context, hotelID string) (*domain.Shift, error) {
	shift, err := s.shiftRepo.FindPreviousShift(ctx, hotelID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find previous shift")
		return nil, err
	}
	return shift, nil
}

func (s *shiftService) ListShifts(ctx context.Context, hotelID string, limit int, nextToken string) ([]domain.Shift, string, error) {
	cursor, err := pagination.DecodeToken(nextToken)
	if err != nil {
		return nil, "", apperrors.NewValidationFailedError(err.Error())
	}
	limit = pagination.NormalizeLimit(limit, defaultShiftPageSize, maxShiftPageSize)

	// One extra row tells whether another page exists.
	shifts, err := s.shiftRepo.ListShifts(ctx, hotelID, limit+1, cursor)
	if err != nil {
		s.LogError(ctx, err, "Failed to list shifts")
		return nil, "", err
	}
	next := ""
	if len(shifts) > limit {
		shifts = shifts[:limit]
		last := shifts[limit-1]
		next = pagination.EncodeToken(last.StartTime, last.ShiftID)
	}
	return shifts, next, nil
}

func (s *shiftService) CopyForward(ctx context.Context, hotelID string) (domain.CounterSnapshot, error) {
	previous, err := s.GetPreviousShift(ctx, hotelID)
	if err != nil {
		return domain.CounterSnapshot{}, err
	}
	return reconciliation.CopyForward(previous)
}

func (s *shiftService) PreviewReconciliation(ctx context.Context, hotelID string, shiftID string, draft domain.CounterDraft) (reconciliation.Report, error) {
	if err := draft.Validate(); err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}

	shift, err := s.findShift(ctx, hotelID, shiftID)
	if err != nil {
		return nil, err
	}
	return reconciliation.DiffDraft(shift.StartCounters, draft), nil
}

func (s *shiftService) findShift(ctx context.Context, hotelID string, shiftID string) (*domain.Shift, error) {
	shift, err := s.shiftRepo.FindShiftByID(ctx, hotelID, shiftID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find shift", slog.String("shift_id", shiftID))
		}
		return nil, err
	}
	return shift, nil
}
