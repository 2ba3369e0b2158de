package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/front_desk_log/internal/core/domain"
	portssvc "github.com/SscSPs/front_desk_log/internal/core/ports/services"
	"github.com/SscSPs/front_desk_log/internal/dto"
	"github.com/SscSPs/front_desk_log/internal/middleware"
	"github.com/gin-gonic/gin"
)

// shiftHandler handles HTTP requests related to shifts.
type shiftHandler struct {
	shiftService portssvc.ShiftSvcFacade
	entryService portssvc.EntrySvcFacade
	auditService portssvc.AuditSvc
}

func newShiftHandler(ss portssvc.ShiftSvcFacade, es portssvc.EntrySvcFacade, as portssvc.AuditSvc) *shiftHandler {
	return &shiftHandler{shiftService: ss, entryService: es, auditService: as}
}

// RegisterShiftRoutes registers the shift routes on an authenticated group.
func RegisterShiftRoutes(rg *gin.RouterGroup, ss portssvc.ShiftSvcFacade, es portssvc.EntrySvcFacade, as portssvc.AuditSvc) {
	h := newShiftHandler(ss, es, as)

	shifts := rg.Group("/shifts")
	{
		shifts.POST("", h.startShift)
		shifts.GET("", h.listShifts)
		shifts.GET("/current", h.getCurrentShift)
		shifts.GET("/previous", h.getPreviousShift)
		shifts.GET("/previous/end-counters", h.copyForward)
		shifts.GET("/:shift_id", h.getShift)
		shifts.POST("/:shift_id/finish", h.finishShift)
		shifts.PUT("/:shift_id/counters", h.editCounters)
		shifts.POST("/:shift_id/reconciliation", h.previewReconciliation)
		shifts.GET("/:shift_id/history", h.getCounterHistory)
		shifts.POST("/:shift_id/entries", h.createEntry)
	}
}

// startShift godoc
// @Summary Start a shift
// @Description Opens a new active shift for the hotel. Only one shift may be active at a time.
// @Tags shifts
// @Accept  json
// @Produce  json
// @Param   shift body dto.StartShiftRequest true "Receptionist and start counters"
// @Success 201 {object} dto.ShiftResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]interface{} "Another shift is active"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Security BearerAuth
// @Router /shifts [post]
func (h *shiftHandler) startShift(c *gin.Context) {
	hotelID, ok := hotelFromContext(c)
	if !ok {
		return
	}
	var req dto.StartShiftRequest
	if !bindJSON(c, &req, "StartShift") {
		return
	}

	shift, err := h.shiftService.StartShift(c.Request.Context(), hotelID, req.Receptionist, req.StartCounters.ToDomain())
	if err != nil {
		respondError(c, err, "Failed to start shift")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Shift started", slog.String("shift_id", shift.ShiftID))
	c.JSON(http.StatusCreated, dto.ToShiftResponse(shift))
}

// listShifts godoc
// @Summary List shifts
// @Description Lists the hotel's shifts, newest first, with token pagination.
// @Tags shifts
// @Produce  json
// @Param   limit query int false "Page size (1-100)" default(20)
// @Param   nextToken query string false "Token of the next page"
// @Success 200 {object} dto.ListShiftsResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /shifts [get]
func (h *shiftHandler) listShifts(c *gin.Context) {
	hotelID, ok := hotelFromContext(c)
	if !ok {
		return
	}
	var params dto.ListShiftsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind query for ListShifts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	shifts, next, err := h.shiftService.ListShifts(c.Request.Context(), hotelID, params.Limit, params.NextToken)
	if err != nil {
		respondError(c, err, "Failed to list shifts")
		return
	}
	c.JSON(http.StatusOK, dto.ListShiftsResponse{Shifts: dto.ToShiftResponses(shifts), NextToken: next})
}

// getCurrentShift godoc
// @Summary Get the active shift
// @Tags shifts
// @Produce  json
// @Success 200 {object} dto.ShiftResponse
// @Success 204 "No active shift"
// @Security BearerAuth
// @Router /shifts/current [get]
func (h *shiftHandler) getCurrentShift(c *gin.Context) {
	hotelID, ok := hotelFromContext(c)
	if !ok {
		return
	}
	shift, err := h.shiftService.GetActiveShift(c.Request.Context(), hotelID)
	if err != nil {
		respondError(c, err, "Failed to get current shift")
		return
	}
	if shift == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, dto.ToShiftResponse(shift))
}

// getPreviousShift godoc
// @Summary Get the previous shift
// @Description Returns the most recently completed shift, including its end counters.
// @Tags shifts
// @Produce  json
// @Success 200 {object} dto.ShiftResponse
// @Success 204 "No completed shift yet"
// @Security BearerAuth
// @Router /shifts/previous [get]
func (h *shiftHandler) getPreviousShift(c *gin.Context) {
	hotelID, ok := hotelFromContext(c)
	if !ok {
		return
	}
	shift, err := h.shiftService.GetPreviousShift(c.Request.Context(), hotelID)
	if err != nil {
		respondError(c, err, "Failed to get previous shift")
		return
	}
	if shift == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, dto.ToShiftResponse(shift))
}

// copyForward godoc
// @Summary Copy the previous end counters
// @Description Returns the previous shift's end counters to pre-fill the start form. Starts nothing.
// @Tags shifts
// @Produce  json
// @Success 200 {object} dto.Counters
// @Failure 404 {object} map[string]string "No previous shift"
// @Security BearerAuth
// @Router /shifts/previous/end-counters [get]
func (h *shiftHandler) copyForward(c *gin.Context) {
	hotelID, ok := hotelFromContext(c)
	if !ok {
		return
	}
	counters, err := h.shiftService.CopyForward(c.Request.Context(), hotelID)
	if err != nil {
		respondError(c, err, "Failed to copy counters forward")
		return
	}
	c.JSON(http.StatusOK, dto.ToCounters(counters))
}

// getShift godoc
// @Summary Get a shift
// @Description Returns a shift with its top-level entries and their comments.
// @Tags shifts
// @Produce  json
// @Param   shift_id path string true "Shift ID"
// @Success 200 {object} dto.ShiftResponse
// @Failure 404 {object} map[string]string "Shift not found"
// @Security BearerAuth
// @Router /shifts/{shift_id} [get]
func (h *shiftHandler) getShift(c *gin.Context) {
	hotelID, ok := hotelFromContext(c)
	if !ok {
		return
	}
	shift, err := h.shiftService.GetShift(c.Request.Context(), hotelID, c.Param("shift_id"))
	if err != nil {
		respondError(c, err, "Failed to get shift")
		return
	}
	c.JSON(http.StatusOK, dto.ToShiftResponse(shift))
}

// finishShift godoc
// @Summary Finish a shift
// @Description Completes the shift. With unresolved entries at the hotel the request must set force.
// @Tags shifts
// @Accept  json
// @Produce  json
// @Param   shift_id path string true "Shift ID"
// @Param   finish body dto.FinishShiftRequest true "End counters and confirmation"
// @Success 200 {object} dto.ShiftResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Shift not found"
// @Failure 409 {object} map[string]interface{} "Unresolved entries or shift not active"
// @Security BearerAuth
// @Router /shifts/{shift_id}/finish [post]
func (h *shiftHandler) finishShift(c *gin.Context) {
	hotelID, ok := hotelFromContext(c)
	if !ok {
		return
	}
	var req dto.FinishShiftRequest
	if !bindJSON(c, &req, "FinishShift") {
		return
	}

	shiftID := c.Param("shift_id")
	shift, err := h.shiftService.FinishShift(c.Request.Context(), hotelID, shiftID, req.EndCounters.ToDomain(), req.Force)
	if err != nil {
		respondError(c, err, "Failed to finish shift")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Shift finished", slog.String("shift_id", shiftID), slog.Bool("forced", req.Force))
	c.JSON(http.StatusOK, dto.ToShiftResponse(shift))
}

// editCounters godoc
// @Summary Edit start counters
// @Description Replaces the shift's start counters. The previous values go to the edit history.
// @Tags shifts
// @Accept  json
// @Produce  json
// @Param   shift_id path string true "Shift ID"
// @Param   counters body dto.EditCountersRequest true "New counters and editor"
// @Success 200 {object} dto.ShiftResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Shift not found"
// @Security BearerAuth
// @Router /shifts/{shift_id}/counters [put]
func (h *shiftHandler) editCounters(c *gin.Context) {
	hotelID, ok := hotelFromContext(c)
	if !ok {
		return
	}
	var req dto.EditCountersRequest
	if !bindJSON(c, &req, "EditCounters") {
		return
	}

	shift, err := h.shiftService.EditCounters(c.Request.Context(), hotelID, c.Param("shift_id"), req.StartCounters.ToDomain(), req.EditedBy)
	if err != nil {
		respondError(c, err, "Failed to edit counters")
		return
	}
	c.JSON(http.StatusOK, dto.ToShiftResponse(shift))
}

// previewReconciliation godoc
// @Summary Preview reconciliation
// @Description Compares the shift's start counters with the end counters typed so far. Missing fields are pending.
// @Tags shifts
// @Accept  json
// @Produce  json
// @Param   shift_id path string true "Shift ID"
// @Param   draft body dto.ReconciliationRequest true "End counters typed so far"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Shift not found"
// @Security BearerAuth
// @Router /shifts/{shift_id}/reconciliation [post]
func (h *shiftHandler) previewReconciliation(c *gin.Context) {
	hotelID, ok := hotelFromContext(c)
	if !ok {
		return
	}
	var req dto.ReconciliationRequest
	if !bindJSON(c, &req, "PreviewReconciliation") {
		return
	}
	draft, err := req.EndCounters.ToDomain()
	if err != nil {
		respondError(c, err, "Failed to preview reconciliation")
		return
	}

	report, err := h.shiftService.PreviewReconciliation(c.Request.Context(), hotelID, c.Param("shift_id"), draft)
	if err != nil {
		respondError(c, err, "Failed to preview reconciliation")
		return
	}
	c.JSON(http.StatusOK, dto.ToReconciliationResponse(report))
}

// getCounterHistory godoc
// @Summary Start counter edit history
// @Tags shifts
// @Produce  json
// @Param   shift_id path string true "Shift ID"
// @Success 200 {array} dto.AuditRecordResponse
// @Security BearerAuth
// @Router /shifts/{shift_id}/history [get]
func (h *shiftHandler) getCounterHistory(c *gin.Context) {
	hotelID, ok := hotelFromContext(c)
	if !ok {
		return
	}
	records, err := h.auditService.ListHistory(c.Request.Context(), hotelID, domain.AuditShiftCounters, c.Param("shift_id"))
	if err != nil {
		respondError(c, err, "Failed to list counter history")
		return
	}
	c.JSON(http.StatusOK, dto.ToAuditRecordResponses(records))
}

// createEntry godoc
// @Summary Add an entry
// @Description Records an entry in an active shift. Setting replyTo records a comment instead.
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   shift_id path string true "Shift ID"
// @Param   entry body dto.CreateEntryRequest true "Entry"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Shift or parent not found"
// @Failure 409 {object} map[string]string "Shift not active"
// @Security BearerAuth
// @Router /shifts/{shift_id}/entries [post]
func (h *shiftHandler) createEntry(c *gin.Context) {
	hotelID, ok := hotelFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateEntryRequest
	if !bindJSON(c, &req, "CreateEntry") {
		return
	}

	entry, err := h.entryService.AddEntry(c.Request.Context(), hotelID, c.Param("shift_id"), portssvc.NewEntry{
		Text:    req.Text,
		Author:  req.Author,
		ReplyTo: req.ReplyTo,
	})
	if err != nil {
		respondError(c, err, "Failed to add entry")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Entry added", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}
