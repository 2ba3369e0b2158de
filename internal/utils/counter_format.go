package utils

import (
	"github.com/SscSPs/front_desk_log/internal/core/domain"
	"github.com/shopspring/decimal"
)

// moneyPrecision is the number of decimals shown for cash amounts.
const moneyPrecision = 2

// FormatCounterValue formats a counter value for display.
// Example: cash_brl 12.345 returns "12.35", pens_count 3 returns "3".
func FormatCounterValue(field domain.CounterField, value decimal.Decimal) string {
	if field.Kind() == domain.Monetary {
		return value.StringFixed(moneyPrecision)
	}
	return value.Round(0).String()
}
