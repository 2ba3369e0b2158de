package services

import (
	"context"
	"log/slog"
	"sort"

	"github.com/SscSPs/front_desk_log/internal/core/domain"
	portsrepo "github.com/SscSPs/front_desk_log/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/front_desk_log/internal/core/ports/services"
)

type continuityService struct {
	BaseService
	entryRepo portsrepo.EntryReader
}

// NewContinuityService creates the cross-shift continuity view.
func NewContinuityService(entryRepo portsrepo.EntryReader, options ...ServiceOption) portssvc.ContinuitySvc {
	return &continuityService{
		BaseService: newBaseService(options...),
		entryRepo:   entryRepo,
	}
}

var _ portssvc.ContinuitySvc = (*continuityService)(nil)

func (s *continuityService) ListVisibleEntries(ctx context.Context, hotelID string, activeShift *domain.Shift) ([]domain.AnnotatedEntry, error) {
	unresolved, err := s.entryRepo.ListUnresolvedByHotel(ctx, hotelID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list unresolved entries")
		return nil, err
	}

	var current []domain.EntryWithShift
	activeID := ""
	if activeShift != nil {
		activeID = activeShift.ShiftID
		current, err = s.entryRepo.ListTopLevelByShift(ctx, hotelID, activeID)
		if err != nil {
			s.LogError(ctx, err, "Failed to list active shift entries", slog.String("shift_id", activeID))
			return nil, err
		}
	}

	seen := make(map[string]struct{}, len(unresolved)+len(current))
	visible := make([]domain.AnnotatedEntry, 0, len(unresolved)+len(current))
	add := func(row domain.EntryWithShift) {
		if row.IsComment() {
			return
		}
		if _, dup := seen[row.EntryID]; dup {
			return
		}
		seen[row.EntryID] = struct{}{}
		visible = append(visible, domain.AnnotatedEntry{
			Entry:             row.Entry,
			FromPreviousShift: row.ShiftID != activeID,
			ShiftReceptionist: row.ShiftReceptionist,
			ShiftStartTime:    row.ShiftStartTime,
		})
	}
	for _, row := range current {
		add(row)
	}
	for _, row := range unresolved {
		add(row)
	}

	ids := make([]string, len(visible))
	for i := range visible {
		ids[i] = visible[i].EntryID
	}
	if len(ids) > 0 {
		counts, err := s.entryRepo.CountComments(ctx, hotelID, ids)
		if err != nil {
			s.LogError(ctx, err, "Failed to count comments")
			return nil, err
		}
		for i := range visible {
			visible[i].CommentCount = counts[visible[i].EntryID]
		}
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return newerFirst(visible[i].Entry, visible[j].Entry)
	})
	return visible, nil
}

// newerFirst orders entries by creation time descending, then by id for a stable order.
func newerFirst(a, b domain.Entry) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.EntryID > b.EntryID
}
