package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/front_desk_log/internal/apperrors"
	"github.com/SscSPs/front_desk_log/internal/core/domain"
	portsrepo "github.com/SscSPs/front_desk_log/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/front_desk_log/internal/core/ports/services"
	"github.com/SscSPs/front_desk_log/internal/metrics"
	"github.com/google/uuid"
)

type entryService struct {
	BaseService
	entryRepo portsrepo.EntryRepositoryFacade
	shiftRepo portsrepo.ShiftReader
	audit     portssvc.AuditSvc
}

// NewEntryService creates the entry store service.
func NewEntryService(entryRepo portsrepo.EntryRepositoryFacade, shiftRepo portsrepo.ShiftReader, audit portssvc.AuditSvc, options ...ServiceOption) portssvc.EntrySvcFacade {
	return &entryService{
		BaseService: newBaseService(options...),
		entryRepo:   entryRepo,
		shiftRepo:   shiftRepo,
		audit:       audit,
	}
}

var _ portssvc.EntrySvcFacade = (*entryService)(nil)

func (s *entryService) AddEntry(ctx context.Context, hotelID string, shiftID string, in portssvc.NewEntry) (*domain.Entry, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, apperrors.NewValidationFailedError("entry text is required")
	}
	isComment := in.ReplyTo != nil && *in.ReplyTo != ""

	shift, err := s.shiftRepo.FindShiftByID(ctx, hotelID, shiftID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find shift for new entry", slog.String("shift_id", shiftID))
		}
		return nil, err
	}
	if !shift.IsActive() {
		return nil, &apperrors.ShiftNotActiveError{ShiftID: shiftID}
	}

	if isComment {
		parent, err := s.entryRepo.FindEntryByID(ctx, hotelID, *in.ReplyTo)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewNotFoundError("entry being replied to does not exist")
			}
			s.LogError(ctx, err, "Failed to find parent entry", slog.String("reply_to", *in.ReplyTo))
			return nil, err
		}
		if parent.IsComment() {
			return nil, apperrors.NewValidationFailedError("comments cannot be replied to")
		}
	}

	author := strings.TrimSpace(in.Author)
	if author == "" {
		author = shift.Receptionist
	}

	entry := domain.Entry{
		EntryID:   uuid.NewString(),
		ShiftID:   shift.ShiftID,
		HotelID:   hotelID,
		Text:      text,
		CreatedAt: s.Now(),
		CreatedBy: author,
	}
	kind := "entry"
	if isComment {
		replyTo := *in.ReplyTo
		entry.ReplyTo = &replyTo
		kind = "comment"
	} else {
		entry.Status = domain.EntryOpen
	}

	if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save entry", slog.String("shift_id", shiftID))
		return nil, err
	}

	metrics.EntriesCreated.WithLabelValues(kind).Inc()
	s.LogInfo(ctx, "Entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("shift_id", shiftID),
		slog.String("kind", kind))
	return &entry, nil
}

func (s *entryService) AddComment(ctx context.Context, hotelID string, parentID string, text string, author string) (*domain.Entry, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewValidationFailedError("comment text is required")
	}

	active, err := s.shiftRepo.FindActiveShift(ctx, hotelID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find active shift for comment")
		return nil, err
	}
	if active == nil {
		return nil, apperrors.NewValidationFailedError("start a shift before commenting")
	}

	return s.AddEntry(ctx, hotelID, active.ShiftID, portssvc.NewEntry{
		Text:    text,
		Author:  author,
		ReplyTo: &parentID,
	})
}

func (s *entryService) SetStatus(ctx context.Context, hotelID string, entryID string, status domain.EntryStatus) (*domain.Entry, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationFailedError("status must be one of open, in_progress, closed")
	}

	entry, err := s.entryRepo.FindEntryByID(ctx, hotelID, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	if entry.IsComment() {
		return nil, apperrors.NewValidationFailedError("comments have no status")
	}

	if err := s.entryRepo.UpdateStatus(ctx, hotelID, entryID, status); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update entry status", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Entry status changed",
		slog.String("entry_id", entryID),
		slog.String("from", string(entry.Status)),
		slog.String("to", string(status)))
	entry.Status = status
	return entry, nil
}

func (s *entryService) EditText(ctx context.Context, hotelID string, entryID string, text string, editor string) (*domain.Entry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationFailedError("entry text is required")
	}
	editor = strings.TrimSpace(editor)
	if editor == "" {
		return nil, apperrors.NewValidationFailedError("editor name is required")
	}

	entry, err := s.entryRepo.FindEntryByID(ctx, hotelID, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	// The snapshot must be stored before the text changes.
	if _, err := s.audit.Record(ctx, hotelID, domain.AuditEntry, entryID, domain.EntryTextSnapshot{Text: entry.Text}, editor); err != nil {
		return nil, err
	}

	now := s.Now()
	if err := s.entryRepo.UpdateText(ctx, hotelID, entryID, text, editor, now); err != nil {
		s.LogError(ctx, err, "Failed to update entry text after audit", slog.String("entry_id", entryID))
		return nil, err
	}

	entry.Text = text
	entry.LastEditedAt = &now
	entry.EditedBy = editor
	return entry, nil
}

func (s *entryService) GetEntry(ctx context.Context, hotelID string, entryID string) (*domain.Entry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, hotelID, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

func (s *entryService) ListComments(ctx context.Context, hotelID string, parentID string) ([]domain.Entry, error) {
	if _, err := s.GetEntry(ctx, hotelID, parentID); err != nil {
		return nil, err
	}
	comments, err := s.entryRepo.ListComments(ctx, hotelID, parentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list comments", slog.String("parent_id", parentID))
		return nil, err
	}
	return comments, nil
}
