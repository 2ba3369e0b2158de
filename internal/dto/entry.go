package dto

import (
	"encoding/json"
	"time"

	"github.com/SscSPs/front_desk_log/internal/core/domain"
)

// CreateEntryRequest defines the data needed to record an entry in a shift.
// Author defaults to the shift's receptionist. ReplyTo makes it a comment.
type CreateEntryRequest struct {
	Text    string  `json:"text" binding:"required,notblank,max=4000"`
	Author  string  `json:"author" binding:"omitempty,max=100"`
	ReplyTo *string `json:"replyTo" binding:"omitempty,notblank"`
}

// CreateCommentRequest defines a reply to a top-level entry.
type CreateCommentRequest struct {
	Text   string `json:"text" binding:"required,notblank,max=4000"`
	Author string `json:"author" binding:"omitempty,max=100"`
}

// UpdateStatusRequest moves an entry to any status.
type UpdateStatusRequest struct {
	Status domain.EntryStatus `json:"status" binding:"required,oneof=open in_progress closed"`
}

// EditTextRequest replaces an entry's text.
type EditTextRequest struct {
	Text     string `json:"text" binding:"required,notblank,max=4000"`
	EditedBy string `json:"editedBy" binding:"required,notblank,max=100"`
}

// EntryResponse defines the data returned for an entry or comment.
type EntryResponse struct {
	EntryID      string          `json:"entryID"`
	ShiftID      string          `json:"shiftID"`
	ReplyTo      *string         `json:"replyTo,omitempty"`
	Text         string          `json:"text"`
	Status       string          `json:"status,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	CreatedBy    string          `json:"createdBy"`
	LastEditedAt *time.Time      `json:"lastEditedAt,omitempty"`
	EditedBy     string          `json:"editedBy,omitempty"`
	Comments     []EntryResponse `json:"comments,omitempty"`
}

// VisibleEntryResponse is an entry of the continuity view.
type VisibleEntryResponse struct {
	EntryResponse
	FromPreviousShift bool      `json:"fromPreviousShift"`
	ShiftReceptionist string    `json:"shiftReceptionist"`
	ShiftStartTime    time.Time `json:"shiftStartTime"`
	CommentCount      int       `json:"commentCount"`
}

// AuditRecordResponse is one edit history record.
type AuditRecordResponse struct {
	AuditID       string          `json:"auditID"`
	EntityType    string          `json:"entityType"`
	EntityID      string          `json:"entityID"`
	PreviousValue json.RawMessage `json:"previousValue" swaggertype:"object"`
	EditedAt      time.Time       `json:"editedAt"`
	EditedBy      string          `json:"editedBy"`
}

// SessionResponse is the state the desk loads after selecting a hotel.
type SessionResponse struct {
	CurrentShift   *ShiftResponse         `json:"currentShift"`
	PreviousShift  *ShiftResponse         `json:"previousShift"`
	VisibleEntries []VisibleEntryResponse `json:"visibleEntries"`
}

// ToEntryResponse converts a domain.Entry to EntryResponse DTO.
func ToEntryResponse(e *domain.Entry) EntryResponse {
	resp := EntryResponse{
		EntryID:      e.EntryID,
		ShiftID:      e.ShiftID,
		ReplyTo:      e.ReplyTo,
		Text:         e.Text,
		Status:       string(e.Status),
		CreatedAt:    e.CreatedAt,
		CreatedBy:    e.CreatedBy,
		LastEditedAt: e.LastEditedAt,
		EditedBy:     e.EditedBy,
	}
	if len(e.Comments) > 0 {
		resp.Comments = ToEntryResponses(e.Comments)
	}
	return resp
}

// ToEntryResponses converts a slice of domain.Entry to []EntryResponse.
func ToEntryResponses(entries []domain.Entry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}

// ToVisibleEntryResponses converts the continuity view to its DTO.
func ToVisibleEntryResponses(entries []domain.AnnotatedEntry) []VisibleEntryResponse {
	responses := make([]VisibleEntryResponse, len(entries))
	for i := range entries {
		e := &entries[i]
		responses[i] = VisibleEntryResponse{
			EntryResponse:     ToEntryResponse(&e.Entry),
			FromPreviousShift: e.FromPreviousShift,
			ShiftReceptionist: e.ShiftReceptionist,
			ShiftStartTime:    e.ShiftStartTime,
			CommentCount:      e.CommentCount,
		}
	}
	return responses
}

// ToAuditRecordResponses converts edit history records to their DTOs.
func ToAuditRecordResponses(records []domain.AuditRecord) []AuditRecordResponse {
	responses := make([]AuditRecordResponse, len(records))
	for i, r := range records {
		responses[i] = AuditRecordResponse{
			AuditID:       r.AuditID,
			EntityType:    string(r.EntityType),
			EntityID:      r.EntityID,
			PreviousValue: r.PreviousValue,
			EditedAt:      r.EditedAt,
			EditedBy:      r.EditedBy,
		}
	}
	return responses
}

// ToSessionResponse converts a loaded state to its DTO.
func ToSessionResponse(state *domain.ShiftState) SessionResponse {
	resp := SessionResponse{VisibleEntries: ToVisibleEntryResponses(state.VisibleEntries)}
	if state.CurrentShift != nil {
		current := ToShiftResponse(state.CurrentShift)
		resp.CurrentShift = &current
	}
	if state.PreviousShift != nil {
		previous := ToShiftResponse(state.PreviousShift)
		resp.PreviousShift = &previous
	}
	return resp
}
