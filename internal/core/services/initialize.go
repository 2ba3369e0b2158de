package services

import (
	"context"
	"errors"

	"github.com/SscSPs/front_desk_log/internal/apperrors"
	"github.com/SscSPs/front_desk_log/internal/core/domain"
	portsrepo "github.com/SscSPs/front_desk_log/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/front_desk_log/internal/core/ports/services"
)

type initializer struct {
	BaseService
	hotels     portsrepo.HotelReader
	shifts     portssvc.ShiftReaderSvc
	continuity portssvc.ContinuitySvc
}

// NewInitializer creates the batch loader used when a hotel is selected. hotels may be
// nil, in which case the hotel is not checked.
func NewInitializer(hotels portsrepo.HotelReader, shifts portssvc.ShiftReaderSvc, continuity portssvc.ContinuitySvc, options ...ServiceOption) portssvc.InitializerSvc {
	return &initializer{
		BaseService: newBaseService(options...),
		hotels:      hotels,
		shifts:      shifts,
		continuity:  continuity,
	}
}

var _ portssvc.InitializerSvc = (*initializer)(nil)

func (s *initializer) Initialize(ctx context.Context, hotelID string) (*domain.ShiftState, error) {
	if hotelID == "" {
		return nil, apperrors.NewValidationFailedError("hotel is required")
	}
	if s.hotels != nil {
		if _, err := s.hotels.FindHotelByID(ctx, hotelID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewNotFoundError("hotel not found")
			}
			s.LogError(ctx, err, "Failed to find hotel")
			return nil, err
		}
	}

	current, err := s.shifts.GetActiveShift(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	previous, err := s.shifts.GetPreviousShift(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	visible, err := s.continuity.ListVisibleEntries(ctx, hotelID, current)
	if err != nil {
		return nil, err
	}

	return &domain.ShiftState{
		CurrentShift:   current,
		PreviousShift:  previous,
		VisibleEntries: visible,
	}, nil
}
