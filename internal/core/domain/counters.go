package domain

import (
	"github.com/shopspring/decimal"
)

// CounterKind separates cash drawers from physical items kept at the desk.
type CounterKind string

const (
	Monetary CounterKind = "MONETARY"
	Item     CounterKind = "ITEM"
)

// CounterField names one counter of a CounterSnapshot.
type CounterField string

const (
	FieldCashBRL     CounterField = "cash_brl"     // cash float
	FieldEnvelopeBRL CounterField = "envelope_brl" // day's takings envelope
	FieldCashUSD     CounterField = "cash_usd"
	FieldPensCount   CounterField = "pens_count"
	FieldCalculator  CounterField = "calculator"
	FieldPhone       CounterField = "phone"
	FieldCarKey      CounterField = "car_key"
	FieldAdapter     CounterField = "adapter"
	FieldUmbrella    CounterField = "umbrella"
	FieldHighlighter CounterField = "highlighter"
	FieldCardsTowels CounterField = "cards_towels"
)

// CounterFields lists every counter in display order.
var CounterFields = []CounterField{
	FieldCashBRL, FieldEnvelopeBRL, FieldCashUSD,
	FieldPensCount, FieldCalculator, FieldPhone, FieldCarKey,
	FieldAdapter, FieldUmbrella, FieldHighlighter, FieldCardsTowels,
}

// Kind reports whether the field holds money or an item count.
func (f CounterField) Kind() CounterKind {
	switch f {
	case FieldCashBRL, FieldEnvelopeBRL, FieldCashUSD:
		return Monetary
	default:
		return Item
	}
}

// Valid reports whether f is one of CounterFields.
func (f CounterField) Valid() bool {
	for _, known := range CounterFields {
		if known == f {
			return true
		}
	}
	return false
}

// CounterSnapshot is the full set of counts taken at shift start or end.
// Every field is always present; the zero value means zero of everything.
type CounterSnapshot struct {
	CashBRL     decimal.Decimal `json:"cash_brl"`
	EnvelopeBRL decimal.Decimal `json:"envelope_brl"`
	CashUSD     decimal.Decimal `json:"cash_usd"`
	PensCount   int64           `json:"pens_count"`
	Calculator  int64           `json:"calculator"`
	Phone       int64           `json:"phone"`
	CarKey      int64           `json:"car_key"`
	Adapter     int64           `json:"adapter"`
	Umbrella    int64           `json:"umbrella"`
	Highlighter int64           `json:"highlighter"`
	CardsTowels int64           `json:"cards_towels"`
}

// Get returns the value of a field as a decimal. Unknown fields read as zero.
func (s CounterSnapshot) Get(f CounterField) decimal.Decimal {
	switch f {
	case FieldCashBRL:
		return s.CashBRL
	case FieldEnvelopeBRL:
		return s.EnvelopeBRL
	case FieldCashUSD:
		return s.CashUSD
	case FieldPensCount:
		return decimal.NewFromInt(s.PensCount)
	case FieldCalculator:
		return decimal.NewFromInt(s.Calculator)
	case FieldPhone:
		return decimal.NewFromInt(s.Phone)
	case FieldCarKey:
		return decimal.NewFromInt(s.CarKey)
	case FieldAdapter:
		return decimal.NewFromInt(s.Adapter)
	case FieldUmbrella:
		return decimal.NewFromInt(s.Umbrella)
	case FieldHighlighter:
		return decimal.NewFromInt(s.Highlighter)
	case FieldCardsTowels:
		return decimal.NewFromInt(s.CardsTowels)
	}
	return decimal.Zero
}

// With returns a copy of s with field f set to v. Item counts are truncated to integers.
func (s CounterSnapshot) With(f CounterField, v decimal.Decimal) CounterSnapshot {
	switch f {
	case FieldCashBRL:
		s.CashBRL = v
	case FieldEnvelopeBRL:
		s.EnvelopeBRL = v
	case FieldCashUSD:
		s.CashUSD = v
	case FieldPensCount:
		s.PensCount = v.IntPart()
	case FieldCalculator:
		s.Calculator = v.IntPart()
	case FieldPhone:
		s.Phone = v.IntPart()
	case FieldCarKey:
		s.CarKey = v.IntPart()
	case FieldAdapter:
		s.Adapter = v.IntPart()
	case FieldUmbrella:
		s.Umbrella = v.IntPart()
	case FieldHighlighter:
		s.Highlighter = v.IntPart()
	case FieldCardsTowels:
		s.CardsTowels = v.IntPart()
	}
	return s
}

// MonetaryPlaces is the number of decimal places money is stored with.
const MonetaryPlaces = 2

// Validate rejects negative counts and amounts with more than MonetaryPlaces decimals.
func (s CounterSnapshot) Validate() error {
	for _, f := range CounterFields {
		v := s.Get(f)
		if v.IsNegative() {
			return &CounterError{Field: f, Reason: "must not be negative"}
		}
		if f.Kind() == Monetary && !v.Equal(v.Round(MonetaryPlaces)) {
			return &CounterError{Field: f, Reason: "must have at most 2 decimal places"}
		}
	}
	return nil
}

// CounterError describes an invalid counter value.
type CounterError struct {
	Field  CounterField
	Reason string
}

func (e *CounterError) Error() string {
	return string(e.Field) + " " + e.Reason
}

// CounterDraft is a partially entered snapshot, as typed into the finish form.
// A missing key means the value has not been entered yet.
type CounterDraft map[CounterField]decimal.Decimal

// Validate checks every entered value. Monetary amounts may carry extra precision.
func (d CounterDraft) Validate() error {
	for _, f := range CounterFields {
		v, ok := d[f]
		if !ok {
			continue
		}
		if v.IsNegative() {
			return &CounterError{Field: f, Reason: "must not be negative"}
		}
		if f.Kind() == Item && !v.IsInteger() {
			return &CounterError{Field: f, Reason: "must be a whole number"}
		}
	}
	for f := range d {
		if !f.Valid() {
			return &CounterError{Field: f, Reason: "is not a known counter"}
		}
	}
	return nil
}

// Finalize converts the draft into a full snapshot, treating missing values as zero.
func (d CounterDraft) Finalize() CounterSnapshot {
	var s CounterSnapshot
	for f, v := range d {
		s = s.With(f, v)
	}
	return s
}
