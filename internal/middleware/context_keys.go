package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// hotelIDKey is the key used to store the authenticated hotel's ID.
const hotelIDKey = contextKey("hotelID")

// WithHotelID returns a copy of ctx scoped to one hotel.
func WithHotelID(ctx context.Context, hotelID string) context.Context {
	return context.WithValue(ctx, hotelIDKey, hotelID)
}

// GetHotelIDFromCtx retrieves the hotel ID from a standard context.
func GetHotelIDFromCtx(ctx context.Context) (string, bool) {
	hotelID, ok := ctx.Value(hotelIDKey).(string)
	return hotelID, ok && hotelID != ""
}

// GetHotelIDFromContext retrieves the authenticated hotel ID from the Gin context.
// It returns the hotel ID and a boolean indicating if it was found.
func GetHotelIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(hotelIDKey)); exists {
		if hotelID, ok := v.(string); ok && hotelID != "" {
			return hotelID, true
		}
	}
	return GetHotelIDFromCtx(c.Request.Context())
}
