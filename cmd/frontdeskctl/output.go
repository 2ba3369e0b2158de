package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/SscSPs/front_desk_log/internal/core/domain"
	"github.com/SscSPs/front_desk_log/internal/dto"
	"github.com/SscSPs/front_desk_log/internal/utils"
	"github.com/SscSPs/front_desk_log/internal/utils/reconciliation"
)

const timeLayout = "2006-01-02 15:04"

// printer writes command results as text or as the JSON used by the HTTP API.
type printer struct {
	w    io.Writer
	json bool
}

func (p printer) encode(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p printer) state(state domain.ShiftState) error {
	if p.json {
		return p.encode(dto.ToSessionResponse(&state))
	}
	if state.CurrentShift != nil {
		fmt.Fprintf(p.w, "Current shift: %s (started %s)\n", state.CurrentShift.Receptionist, state.CurrentShift.StartTime.Local().Format(timeLayout))
	} else {
		fmt.Fprintln(p.w, "No active shift.")
	}
	if state.PreviousShift != nil {
		fmt.Fprintf(p.w, "Previous shift: %s (finished %s)\n", state.PreviousShift.Receptionist, formatTime(state.PreviousShift.EndTime))
	}
	fmt.Fprintln(p.w)
	return p.visible(state.VisibleEntries)
}

func (p printer) shift(s *domain.Shift) error {
	if p.json {
		return p.encode(dto.ToShiftResponse(s))
	}
	fmt.Fprintf(p.w, "Shift %s\n  receptionist: %s\n  status: %s\n  started: %s\n", s.ShiftID, s.Receptionist, s.Status, s.StartTime.Local().Format(timeLayout))
	if s.EndTime != nil {
		fmt.Fprintf(p.w, "  finished: %s\n", formatTime(s.EndTime))
	}
	fmt.Fprintln(p.w, "  start counters:")
	p.snapshot(s.StartCounters)
	if s.EndCounters != nil {
		fmt.Fprintln(p.w, "  end counters:")
		p.snapshot(*s.EndCounters)
	}
	return nil
}

func (p printer) counters(c domain.CounterSnapshot) error {
	if p.json {
		return p.encode(dto.ToCounters(c))
	}
	p.snapshot(c)
	return nil
}

func (p printer) snapshot(c domain.CounterSnapshot) {
	for _, f := range domain.CounterFields {
		fmt.Fprintf(p.w, "    %-13s %s\n", f, utils.FormatCounterValue(f, c.Get(f)))
	}
}

func (p printer) report(r reconciliation.Report) error {
	if p.json {
		return p.encode(dto.ToReconciliationResponse(r))
	}
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COUNTER\tSTART\tEND\tDELTA\tSIGN")
	for _, d := range r.Ordered() {
		end := "-"
		if d.End != nil {
			end = utils.FormatCounterValue(d.Field, *d.End)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", d.Field, utils.FormatCounterValue(d.Field, d.Start), end, utils.FormatCounterValue(d.Field, d.Delta), d.Sign)
	}
	return tw.Flush()
}

func (p printer) entry(e *domain.Entry) error {
	if p.json {
		return p.encode(dto.ToEntryResponse(e))
	}
	status := string(e.Status)
	if e.IsComment() {
		status = "comment"
	}
	fmt.Fprintf(p.w, "%s [%s] %s: %s\n", e.EntryID, status, e.CreatedBy, e.Text)
	return nil
}

func (p printer) entries(entries []domain.Entry) error {
	if p.json {
		return p.encode(dto.ToEntryResponses(entries))
	}
	for i := range entries {
		fmt.Fprintf(p.w, "%s  %s: %s\n", entries[i].CreatedAt.Local().Format(timeLayout), entries[i].CreatedBy, entries[i].Text)
	}
	return nil
}

func (p printer) visible(entries []domain.AnnotatedEntry) error {
	if p.json {
		return p.encode(dto.ToVisibleEntryResponses(entries))
	}
	if len(entries) == 0 {
		fmt.Fprintln(p.w, "Nothing pending.")
		return nil
	}
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tFROM\tCOMMENTS\tTEXT\t")
	for _, e := range entries {
		from := "this shift"
		if e.FromPreviousShift {
			from = fmt.Sprintf("%s %s", e.ShiftReceptionist, e.ShiftStartTime.Local().Format(timeLayout))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t\n", e.EntryID, e.Status, from, e.CommentCount, e.Text)
	}
	return tw.Flush()
}

func (p printer) history(records []domain.AuditRecord) error {
	if p.json {
		return p.encode(dto.ToAuditRecordResponses(records))
	}
	if len(records) == 0 {
		fmt.Fprintln(p.w, "No edits.")
		return nil
	}
	for _, r := range records {
		fmt.Fprintf(p.w, "%s  %s  before: %s\n", r.EditedAt.Local().Format(timeLayout), r.EditedBy, r.PreviousValue)
	}
	return nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format(timeLayout)
}
