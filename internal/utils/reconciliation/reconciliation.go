package reconciliation

import (
	"sort"

	"github.com/SscSPs/front_desk_log/internal/apperrors"
	"github.com/SscSPs/front_desk_log/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Sign classifies a counter delta.
type Sign string

const (
	Surplus   Sign = "surplus"
	Shortage  Sign = "shortage"
	Unchanged Sign = "unchanged"
	Pending   Sign = "pending" // end value not entered yet
)

// MonetaryEpsilon absorbs floating point noise in cash amounts typed into forms.
var MonetaryEpsilon = decimal.New(1, -3)

// FieldDelta is the comparison of one counter between two snapshots.
type FieldDelta struct {
	Field domain.CounterField `json:"field"`
	Kind  domain.CounterKind  `json:"kind"`
	Start decimal.Decimal     `json:"start"`
	End   *decimal.Decimal    `json:"end,omitempty"`
	Delta decimal.Decimal     `json:"delta"`
	Sign  Sign                `json:"sign"`
}

// Report maps each counter to its delta.
type Report map[domain.CounterField]FieldDelta

// Diff compares two complete snapshots field by field (delta = end - start).
func Diff(start, end domain.CounterSnapshot) Report {
	report := make(Report, len(domain.CounterFields))
	for _, f := range domain.CounterFields {
		endValue := end.Get(f)
		report[f] = compare(f, start.Get(f), &endValue)
	}
	return report
}

// DiffDraft compares a snapshot with a partially entered one. Fields missing from the
// draft are reported as Pending rather than as zero.
func DiffDraft(start domain.CounterSnapshot, end domain.CounterDraft) Report {
	report := make(Report, len(domain.CounterFields))
	for _, f := range domain.CounterFields {
		v, ok := end[f]
		if !ok {
			report[f] = compare(f, start.Get(f), nil)
			continue
		}
		report[f] = compare(f, start.Get(f), &v)
	}
	return report
}

func compare(f domain.CounterField, start decimal.Decimal, end *decimal.Decimal) FieldDelta {
	d := FieldDelta{Field: f, Kind: f.Kind(), Start: start, End: end}
	if end == nil {
		d.Sign = Pending
		return d
	}
	d.Delta = end.Sub(start)
	d.Sign = classify(f.Kind(), d.Delta)
	if d.Sign == Unchanged {
		d.Delta = decimal.Zero
	}
	return d
}

func classify(kind domain.CounterKind, delta decimal.Decimal) Sign {
	if kind == domain.Monetary && delta.Abs().LessThan(MonetaryEpsilon) {
		return Unchanged
	}
	switch delta.Sign() {
	case 1:
		return Surplus
	case -1:
		return Shortage
	default:
		return Unchanged
	}
}

// Balanced reports whether no field changed. Pending fields count as not balanced.
func (r Report) Balanced() bool {
	for _, d := range r {
		if d.Sign != Unchanged {
			return false
		}
	}
	return true
}

// Ordered returns the deltas in display order.
func (r Report) Ordered() []FieldDelta {
	out := make([]FieldDelta, 0, len(r))
	for _, d := range r {
		out = append(out, d)
	}
	position := make(map[domain.CounterField]int, len(domain.CounterFields))
	for i, f := range domain.CounterFields {
		position[f] = i
	}
	sort.Slice(out, func(i, j int) bool {
		return position[out[i].Field] < position[out[j].Field]
	})
	return out
}

// CopyForward returns the end counts of a completed shift so they can be offered as the
// opening counts of the next one. It never fills anything in by itself.
func CopyForward(previous *domain.Shift) (domain.CounterSnapshot, error) {
	if previous == nil {
		return domain.CounterSnapshot{}, apperrors.NewNotFoundError("no previous shift to copy counters from")
	}
	if previous.Status != domain.ShiftCompleted || previous.EndCounters == nil {
		return domain.CounterSnapshot{}, apperrors.NewValidationFailedError("previous shift " + previous.ShiftID + " has no final count yet")
	}
	return *previous.EndCounters, nil
}
