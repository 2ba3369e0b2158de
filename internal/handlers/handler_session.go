package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/front_desk_log/internal/core/ports/services"
	"github.com/SscSPs/front_desk_log/internal/dto"
	"github.com/gin-gonic/gin"
)

// RegisterSessionRoutes registers the initialization route.
func RegisterSessionRoutes(rg *gin.RouterGroup, initializer portssvc.InitializerSvc) {
	rg.GET("/session", getSession(initializer))
}

// getSession godoc
// @Summary Initialize the desk
// @Description Loads the current shift, the previous shift and the visible entries. Safe to retry.
// @Tags session
// @Produce  json
// @Success 200 {object} dto.SessionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Hotel not found"
// @Failure 503 {object} map[string]string "Storage unavailable, retry"
// @Security BearerAuth
// @Router /session [get]
func getSession(initializer portssvc.InitializerSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		hotelID, ok := hotelFromContext(c)
		if !ok {
			return
		}
		state, err := initializer.Initialize(c.Request.Context(), hotelID)
		if err != nil {
			respondError(c, err, "Failed to initialize")
			return
		}
		c.JSON(http.StatusOK, dto.ToSessionResponse(state))
	}
}
