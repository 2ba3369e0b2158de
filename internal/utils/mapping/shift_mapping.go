package mapping

import (
	"github.com/SscSPs/front_desk_log/internal/core/domain"
	"github.com/SscSPs/front_desk_log/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelShift converts a domain Shift to a model Shift
func ToModelShift(d domain.Shift) models.Shift {
	m := models.Shift{
		ShiftID:            d.ShiftID,
		HotelID:            d.HotelID,
		Receptionist:       d.Receptionist,
		StartTime:          d.StartTime,
		EndTime:            d.EndTime,
		Status:             string(d.Status),
		ValuesLastEditedAt: d.LastEditedAt,
		ValuesEditedBy:     optionalString(d.EditedBy),
	}
	s := d.StartCounters
	m.CashBRLStart = nullDecimal(s.CashBRL)
	m.EnvelopeBRLStart = nullDecimal(s.EnvelopeBRL)
	m.CashUSDStart = nullDecimal(s.CashUSD)
	m.PensCountStart = &s.PensCount
	m.CalculatorStart = &s.Calculator
	m.PhoneStart = &s.Phone
	m.CarKeyStart = &s.CarKey
	m.AdapterStart = &s.Adapter
	m.UmbrellaStart = &s.Umbrella
	m.HighlighterStart = &s.Highlighter
	m.CardsTowelsStart = &s.CardsTowels

	if d.EndCounters != nil {
		e := *d.EndCounters
		m.CashBRLEnd = nullDecimal(e.CashBRL)
		m.EnvelopeBRLEnd = nullDecimal(e.EnvelopeBRL)
		m.CashUSDEnd = nullDecimal(e.CashUSD)
		m.PensCountEnd = &e.PensCount
		m.CalculatorEnd = &e.Calculator
		m.PhoneEnd = &e.Phone
		m.CarKeyEnd = &e.CarKey
		m.AdapterEnd = &e.Adapter
		m.UmbrellaEnd = &e.Umbrella
		m.HighlighterEnd = &e.Highlighter
		m.CardsTowelsEnd = &e.CardsTowels
	}
	return m
}

// ToDomainShift converts a model Shift to a domain Shift. NULL counters read as zero;
// end counters stay nil while the shift is active and no end column is set.
func ToDomainShift(m models.Shift) domain.Shift {
	d := domain.Shift{
		ShiftID:      m.ShiftID,
		HotelID:      m.HotelID,
		Receptionist: m.Receptionist,
		StartTime:    m.StartTime,
		EndTime:      m.EndTime,
		Status:       domain.ShiftStatus(m.Status),
		StartCounters: domain.CounterSnapshot{
			CashBRL:     decimalOrZero(m.CashBRLStart),
			EnvelopeBRL: decimalOrZero(m.EnvelopeBRLStart),
			CashUSD:     decimalOrZero(m.CashUSDStart),
			PensCount:   intOrZero(m.PensCountStart),
			Calculator:  intOrZero(m.CalculatorStart),
			Phone:       intOrZero(m.PhoneStart),
			CarKey:      intOrZero(m.CarKeyStart),
			Adapter:     intOrZero(m.AdapterStart),
			Umbrella:    intOrZero(m.UmbrellaStart),
			Highlighter: intOrZero(m.HighlighterStart),
			CardsTowels: intOrZero(m.CardsTowelsStart),
		},
		EditMetadata: domain.EditMetadata{
			LastEditedAt: m.ValuesLastEditedAt,
			EditedBy:     stringOrEmpty(m.ValuesEditedBy),
		},
	}
	if d.Status == domain.ShiftCompleted || hasEndCounters(m) {
		d.EndCounters = &domain.CounterSnapshot{
			CashBRL:     decimalOrZero(m.CashBRLEnd),
			EnvelopeBRL: decimalOrZero(m.EnvelopeBRLEnd),
			CashUSD:     decimalOrZero(m.CashUSDEnd),
			PensCount:   intOrZero(m.PensCountEnd),
			Calculator:  intOrZero(m.CalculatorEnd),
			Phone:       intOrZero(m.PhoneEnd),
			CarKey:      intOrZero(m.CarKeyEnd),
			Adapter:     intOrZero(m.AdapterEnd),
			Umbrella:    intOrZero(m.UmbrellaEnd),
			Highlighter: intOrZero(m.HighlighterEnd),
			CardsTowels: intOrZero(m.CardsTowelsEnd),
		}
	}
	return d
}

// ToDomainShiftSlice converts a slice of model Shifts to a slice of domain Shifts
func ToDomainShiftSlice(ms []models.Shift) []domain.Shift {
	ds := make([]domain.Shift, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainShift(m)
	}
	return ds
}

func hasEndCounters(m models.Shift) bool {
	return m.CashBRLEnd.Valid || m.EnvelopeBRLEnd.Valid || m.CashUSDEnd.Valid ||
		m.PensCountEnd != nil || m.CalculatorEnd != nil || m.PhoneEnd != nil ||
		m.CarKeyEnd != nil || m.AdapterEnd != nil || m.UmbrellaEnd != nil ||
		m.HighlighterEnd != nil || m.CardsTowelsEnd != nil
}

func nullDecimal(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

func decimalOrZero(n decimal.NullDecimal) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	return n.Decimal
}

func intOrZero(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}
