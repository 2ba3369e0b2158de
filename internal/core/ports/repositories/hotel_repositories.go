package repositories

import (
	"context"

	"github.com/SscSPs/front_desk_log/internal/core/domain"
)

// HotelReader defines read operations for hotels. Hotels are managed elsewhere.
type HotelReader interface {
	// FindHotelByID retrieves a hotel, or apperrors.ErrNotFound.
	FindHotelByID(ctx context.Context, hotelID string) (*domain.Hotel, error)
}
