package dto

import (
	"time"

	"github.com/SscSPs/front_desk_log/internal/core/domain"
	"github.com/SscSPs/front_desk_log/internal/utils/reconciliation"
)

// StartShiftRequest defines the data needed to open a shift.
type StartShiftRequest struct {
	Receptionist  string   `json:"receptionist" binding:"required,notblank,max=100"`
	StartCounters Counters `json:"startCounters"`
}

// FinishShiftRequest closes a shift. Force confirms finishing with unresolved entries.
type FinishShiftRequest struct {
	EndCounters Counters `json:"endCounters"`
	Force       bool     `json:"force"`
}

// EditCountersRequest replaces a shift's start counters.
type EditCountersRequest struct {
	StartCounters Counters `json:"startCounters"`
	EditedBy      string   `json:"editedBy" binding:"required,notblank,max=100"`
}

// ReconciliationRequest carries the end counters typed so far.
type ReconciliationRequest struct {
	EndCounters CounterDraft `json:"endCounters"`
}

// ListShiftsParams defines query parameters for the shift history.
type ListShiftsParams struct {
	Limit     int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// ShiftResponse defines the data returned for a shift.
type ShiftResponse struct {
	ShiftID       string          `json:"shiftID"`
	HotelID       string          `json:"hotelID"`
	Receptionist  string          `json:"receptionist"`
	Status        string          `json:"status"`
	StartTime     time.Time       `json:"startTime"`
	EndTime       *time.Time      `json:"endTime,omitempty"`
	StartCounters Counters        `json:"startCounters"`
	EndCounters   *Counters       `json:"endCounters,omitempty"`
	LastEditedAt  *time.Time      `json:"lastEditedAt,omitempty"`
	EditedBy      string          `json:"editedBy,omitempty"`
	Entries       []EntryResponse `json:"entries,omitempty"`
}

// ListShiftsResponse is one page of the shift history.
type ListShiftsResponse struct {
	Shifts    []ShiftResponse `json:"shifts"`
	NextToken string          `json:"nextToken,omitempty"`
}

// ReconciliationResponse lists the per-field deltas in display order.
type ReconciliationResponse struct {
	Balanced bool                        `json:"balanced"`
	Fields   []reconciliation.FieldDelta `json:"fields"`
}

// ToShiftResponse converts a domain.Shift to ShiftResponse DTO.
func ToShiftResponse(s *domain.Shift) ShiftResponse {
	resp := ShiftResponse{
		ShiftID:       s.ShiftID,
		HotelID:       s.HotelID,
		Receptionist:  s.Receptionist,
		Status:        string(s.Status),
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		StartCounters: ToCounters(s.StartCounters),
		LastEditedAt:  s.LastEditedAt,
		EditedBy:      s.EditedBy,
	}
	if s.EndCounters != nil {
		end := ToCounters(*s.EndCounters)
		resp.EndCounters = &end
	}
	if len(s.Entries) > 0 {
		resp.Entries = ToEntryResponses(s.Entries)
	}
	return resp
}

// ToShiftResponses converts a slice of domain.Shift to []ShiftResponse.
func ToShiftResponses(shifts []domain.Shift) []ShiftResponse {
	responses := make([]ShiftResponse, len(shifts))
	for i := range shifts {
		responses[i] = ToShiftResponse(&shifts[i])
	}
	return responses
}

// ToReconciliationResponse converts a report to its DTO.
func ToReconciliationResponse(r reconciliation.Report) ReconciliationResponse {
	return ReconciliationResponse{Balanced: r.Balanced(), Fields: r.Ordered()}
}
