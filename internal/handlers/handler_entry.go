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

// entryHandler handles HTTP requests related to entries and comments.
type entryHandler struct {
	entryService      portssvc.EntrySvcFacade
	shiftService      portssvc.ShiftReaderSvc
	continuityService portssvc.ContinuitySvc
	auditService      portssvc.AuditSvc
}

// RegisterEntryRoutes registers the entry routes on an authenticated group.
func RegisterEntryRoutes(rg *gin.RouterGroup, es portssvc.EntrySvcFacade, ss portssvc.ShiftReaderSvc, cs portssvc.ContinuitySvc, as portssvc.AuditSvc) {
	h := &entryHandler{entryService: es, shiftService: ss, continuityService: cs, auditService: as}

	entries := rg.Group("/entries")
	{
		entries.GET("", h.listVisibleEntries)
		entries.POST("/:entry_id/comments", h.addComment)
		entries.GET("/:entry_id/comments", h.listComments)
		entries.PATCH("/:entry_id/status", h.setStatus)
		entries.PUT("/:entry_id/text", h.editText)
		entries.GET("/:entry_id/history", h.getEntryHistory)
	}
}

// listVisibleEntries godoc
// @Summary List visible entries
// @Description The active shift's entries plus every unresolved entry of earlier shifts, newest first.
// @Tags entries
// @Produce  json
// @Success 200 {array} dto.VisibleEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Security BearerAuth
// @Router /entries [get]
func (h *entryHandler) listVisibleEntries(c *gin.Context) {
	hotelID, ok := hotelFromContext(c)
	if !ok {
		return
	}
	active, err := h.shiftService.GetActiveShift(c.Request.Context(), hotelID)
	if err != nil {
		respondError(c, err, "Failed to list entries")
		return
	}
	visible, err := h.continuityService.ListVisibleEntries(c.Request.Context(), hotelID, active)
	if err != nil {
		respondError(c, err, "Failed to list entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToVisibleEntryResponses(visible))
}

// addComment godoc
// @Summary Comment on an entry
// @Description Replies to a top-level entry. The comment belongs to the active shift.
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entry_id path string true "Parent entry ID"
// @Param   comment body dto.CreateCommentRequest true "Comment"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input or no active shift"
// @Failure 404 {object} map[string]string "Parent not found"
// @Security BearerAuth
// @Router /entries/{entry_id}/comments [post]
func (h *entryHandler) addComment(c *gin.Context) {
	hotelID, ok := hotelFromContext(c)
	if !ok {
		return
	}
	var req dto.CreateCommentRequest
	if !bindJSON(c, &req, "AddComment") {
		return
	}

	parentID := c.Param("entry_id")
	comment, err := h.entryService.AddComment(c.Request.Context(), hotelID, parentID, req.Text, req.Author)
	if err != nil {
		respondError(c, err, "Failed to add comment")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Comment added",
		slog.String("entry_id", comment.EntryID), slog.String("parent_id", parentID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(comment))
}

// listComments godoc
// @Summary List comments
// @Tags entries
// @Produce  json
// @Param   entry_id path string true "Parent entry ID"
// @Success 200 {array} dto.EntryResponse
// @Failure 404 {object} map[string]string "Parent not found"
// @Security BearerAuth
// @Router /entries/{entry_id}/comments [get]
func (h *entryHandler) listComments(c *gin.Context) {
	hotelID, ok := hotelFromContext(c)
	if !ok {
		return
	}
	comments, err := h.entryService.ListComments(c.Request.Context(), hotelID, c.Param("entry_id"))
	if err != nil {
		respondError(c, err, "Failed to list comments")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponses(comments))
}

// setStatus godoc
// @Summary Change an entry's status
// @Description Any transition is allowed, also on entries of completed shifts.
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entry_id path string true "Entry ID"
// @Param   status body dto.UpdateStatusRequest true "New status"
// @Success 200 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid status or entry is a comment"
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /entries/{entry_id}/status [patch]
func (h *entryHandler) setStatus(c *gin.Context) {
	hotelID, ok := hotelFromContext(c)
	if !ok {
		return
	}
	var req dto.UpdateStatusRequest
	if !bindJSON(c, &req, "SetStatus") {
		return
	}

	entry, err := h.entryService.SetStatus(c.Request.Context(), hotelID, c.Param("entry_id"), req.Status)
	if err != nil {
		respondError(c, err, "Failed to change status")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// editText godoc
// @Summary Edit an entry's text
// @Description Replaces the text of an entry or comment. The previous text goes to the edit history.
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entry_id path string true "Entry ID"
// @Param   edit body dto.EditTextRequest true "New text and editor"
// @Success 200 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /entries/{entry_id}/text [put]
func (h *entryHandler) editText(c *gin.Context) {
	hotelID, ok := hotelFromContext(c)
	if !ok {
		return
	}
	var req dto.EditTextRequest
	if !bindJSON(c, &req, "EditText") {
		return
	}

	entry, err := h.entryService.EditText(c.Request.Context(), hotelID, c.Param("entry_id"), req.Text, req.EditedBy)
	if err != nil {
		respondError(c, err, "Failed to edit entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// getEntryHistory godoc
// @Summary Entry edit history
// @Tags entries
// @Produce  json
// @Param   entry_id path string true "Entry ID"
// @Success 200 {array} dto.AuditRecordResponse
// @Security BearerAuth
// @Router /entries/{entry_id}/history [get]
func (h *entryHandler) getEntryHistory(c *gin.Context) {
	hotelID, ok := hotelFromContext(c)
	if !ok {
		return
	}
	records, err := h.auditService.ListHistory(c.Request.Context(), hotelID, domain.AuditEntry, c.Param("entry_id"))
	if err != nil {
		respondError(c, err, "Failed to list entry history")
		return
	}
	c.JSON(http.StatusOK, dto.ToAuditRecordResponses(records))
}
