package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shift is the raw row of the shifts table. Counter columns are nullable because
// rows written by older clients may lack them, and end counters are NULL until finish.
type Shift struct {
	ShiftID      string     `db:"shift_id"`
	HotelID      string     `db:"hotel_id"`
	Receptionist string     `db:"receptionist"`
	StartTime    time.Time  `db:"start_time"`
	EndTime      *time.Time `db:"end_time"`
	Status       string     `db:"status"`

	CashBRLStart     decimal.NullDecimal `db:"cash_brl_start"`
	EnvelopeBRLStart decimal.NullDecimal `db:"envelope_brl_start"`
	CashUSDStart     decimal.NullDecimal `db:"cash_usd_start"`
	PensCountStart   *int64              `db:"pens_count_start"`
	CalculatorStart  *int64              `db:"calculator_start"`
	PhoneStart       *int64              `db:"phone_start"`
	CarKeyStart      *int64              `db:"car_key_start"`
	AdapterStart     *int64              `db:"adapter_start"`
	UmbrellaStart    *int64              `db:"umbrella_start"`
	HighlighterStart *int64              `db:"highlighter_start"`
	CardsTowelsStart *int64              `db:"cards_towels_start"`

	CashBRLEnd     decimal.NullDecimal `db:"cash_brl_end"`
	EnvelopeBRLEnd decimal.NullDecimal `db:"envelope_brl_end"`
	CashUSDEnd     decimal.NullDecimal `db:"cash_usd_end"`
	PensCountEnd   *int64              `db:"pens_count_end"`
	CalculatorEnd  *int64              `db:"calculator_end"`
	PhoneEnd       *int64              `db:"phone_end"`
	CarKeyEnd      *int64              `db:"car_key_end"`
	AdapterEnd     *int64              `db:"adapter_end"`
	UmbrellaEnd    *int64              `db:"umbrella_end"`
	HighlighterEnd *int64              `db:"highlighter_end"`
	CardsTowelsEnd *int64              `db:"cards_towels_end"`

	ValuesLastEditedAt *time.Time `db:"values_last_edited_at"`
	ValuesEditedBy     *string    `db:"values_edited_by"`
}
