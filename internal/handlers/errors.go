package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/front_desk_log/internal/apperrors"
	"github.com/SscSPs/front_desk_log/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Error codes clients switch on.
const (
	codeShiftAlreadyActive = "shift_already_active"
	codeUnresolvedEntries  = "unresolved_entries"
	codeShiftNotActive     = "shift_not_active"
	codeUnavailable        = "persistence_unavailable"
)

// respondError maps a service error onto an HTTP response. failure is the message
// used for unexpected errors.
func respondError(c *gin.Context, err error, failure string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var active *apperrors.ShiftAlreadyActiveError
	var unresolved *apperrors.UnresolvedEntriesError
	var notActive *apperrors.ShiftNotActiveError
	switch {
	case errors.As(err, &active):
		logger.Warn("Shift already active", slog.String("active_shift_id", active.ShiftID))
		body := gin.H{"error": active.Error(), "code": codeShiftAlreadyActive}
		if active.ShiftID != "" {
			body["activeShift"] = gin.H{
				"shiftID":      active.ShiftID,
				"receptionist": active.Receptionist,
				"startTime":    active.StartedAt,
			}
		}
		c.JSON(http.StatusConflict, body)
	case errors.As(err, &unresolved):
		logger.Info("Finish needs confirmation", slog.Int("unresolved", unresolved.Count))
		c.JSON(http.StatusConflict, gin.H{"error": unresolved.Error(), "code": codeUnresolvedEntries, "unresolvedCount": unresolved.Count})
	case errors.As(err, &notActive):
		logger.Warn("Shift not active", slog.String("shift_id", notActive.ShiftID))
		c.JSON(http.StatusConflict, gin.H{"error": notActive.Error(), "code": codeShiftNotActive})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": publicMessage(err)})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": publicMessage(err)})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": publicMessage(err)})
	case errors.Is(err, apperrors.ErrConnectivity):
		logger.Error("Persistence unavailable", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Storage is unavailable, please retry", "code": codeUnavailable})
	default:
		logger.Error(failure, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": failure})
	}
}

// publicMessage returns the caller-safe part of an AppError.
func publicMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}

// hotelFromContext returns the authenticated hotel, answering 401 when it is missing.
func hotelFromContext(c *gin.Context) (string, bool) {
	hotelID, ok := middleware.GetHotelIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Hotel ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return hotelID, true
}

// bindJSON answers 400 when the body does not bind.
func bindJSON(c *gin.Context, req any, op string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON for "+op, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return false
	}
	return true
}
