package dto

import (
	"fmt"

	"github.com/SscSPs/front_desk_log/internal/apperrors"
	"github.com/SscSPs/front_desk_log/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Counters is a full counter snapshot as sent by the desk. Missing fields read as zero.
type Counters struct {
	CashBRL     decimal.Decimal `json:"cash_brl" swaggertype:"string" example:"150.00"`
	EnvelopeBRL decimal.Decimal `json:"envelope_brl" swaggertype:"string" example:"0"`
	CashUSD     decimal.Decimal `json:"cash_usd" swaggertype:"string" example:"20.00"`
	PensCount   int64           `json:"pens_count" binding:"gte=0"`
	Calculator  int64           `json:"calculator" binding:"gte=0"`
	Phone       int64           `json:"phone" binding:"gte=0"`
	CarKey      int64           `json:"car_key" binding:"gte=0"`
	Adapter     int64           `json:"adapter" binding:"gte=0"`
	Umbrella    int64           `json:"umbrella" binding:"gte=0"`
	Highlighter int64           `json:"highlighter" binding:"gte=0"`
	CardsTowels int64           `json:"cards_towels" binding:"gte=0"`
}

// ToDomain converts the DTO into a snapshot. Range checks on monetary values are left
// to domain.CounterSnapshot.Validate.
func (c Counters) ToDomain() domain.CounterSnapshot {
	return domain.CounterSnapshot{
		CashBRL:     c.CashBRL,
		EnvelopeBRL: c.EnvelopeBRL,
		CashUSD:     c.CashUSD,
		PensCount:   c.PensCount,
		Calculator:  c.Calculator,
		Phone:       c.Phone,
		CarKey:      c.CarKey,
		Adapter:     c.Adapter,
		Umbrella:    c.Umbrella,
		Highlighter: c.Highlighter,
		CardsTowels: c.CardsTowels,
	}
}

// ToCounters converts a snapshot into its DTO.
func ToCounters(s domain.CounterSnapshot) Counters {
	return Counters{
		CashBRL:     s.CashBRL,
		EnvelopeBRL: s.EnvelopeBRL,
		CashUSD:     s.CashUSD,
		PensCount:   s.PensCount,
		Calculator:  s.Calculator,
		Phone:       s.Phone,
		CarKey:      s.CarKey,
		Adapter:     s.Adapter,
		Umbrella:    s.Umbrella,
		Highlighter: s.Highlighter,
		CardsTowels: s.CardsTowels,
	}
}

// CounterDraft is a partially typed set of end counters. Unset fields stay pending.
type CounterDraft map[domain.CounterField]decimal.Decimal

// ToDomain rejects unknown field names.
func (d CounterDraft) ToDomain() (domain.CounterDraft, error) {
	out := make(domain.CounterDraft, len(d))
	for f, v := range d {
		if !f.Valid() {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown counter field %q", f))
		}
		out[f] = v
	}
	return out, nil
}
