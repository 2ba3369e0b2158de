package reconciliation

import (
	"testing"

	"github.com/SscSPs/front_desk_log/internal/apperrors"
	"github.com/SscSPs/front_desk_log/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() domain.CounterSnapshot {
	return domain.CounterSnapshot{
		CashBRL:     decimal.RequireFromString("250.50"),
		EnvelopeBRL: decimal.RequireFromString("1200"),
		CashUSD:     decimal.RequireFromString("40"),
		PensCount:   12,
		Calculator:  1,
		Phone:       1,
		CarKey:      3,
		Adapter:     2,
		Umbrella:    5,
		Highlighter: 4,
		CardsTowels: 30,
	}
}

func TestDiff_SameSnapshotIsUnchanged(t *testing.T) {
	for _, s := range []domain.CounterSnapshot{{}, sampleSnapshot()} {
		report := Diff(s, s)
		require.Len(t, report, len(domain.CounterFields))
		for f, d := range report {
			assert.Equal(t, Unchanged, d.Sign, "field %s", f)
			assert.True(t, d.Delta.IsZero(), "field %s", f)
		}
		assert.True(t, report.Balanced())
	}
}

func TestDiff_Signs(t *testing.T) {
	start := sampleSnapshot()
	end := start
	end.CashBRL = decimal.RequireFromString("260.50")
	end.CashUSD = decimal.RequireFromString("35")
	end.Umbrella = 4

	report := Diff(start, end)

	assert.Equal(t, Surplus, report[domain.FieldCashBRL].Sign)
	assert.True(t, decimal.NewFromInt(10).Equal(report[domain.FieldCashBRL].Delta))
	assert.Equal(t, Shortage, report[domain.FieldCashUSD].Sign)
	assert.True(t, decimal.NewFromInt(-5).Equal(report[domain.FieldCashUSD].Delta))
	assert.Equal(t, Shortage, report[domain.FieldUmbrella].Sign)
	assert.Equal(t, Unchanged, report[domain.FieldPhone].Sign)
	assert.False(t, report.Balanced())
}

func TestDiff_MonetaryEpsilon(t *testing.T) {
	start := domain.CounterSnapshot{CashBRL: decimal.NewFromFloat(0.1).Add(decimal.NewFromFloat(0.2))}
	end := domain.CounterSnapshot{CashBRL: decimal.RequireFromString("0.3004")}

	d := Diff(start, end)[domain.FieldCashBRL]
	assert.Equal(t, Unchanged, d.Sign)
	assert.True(t, d.Delta.IsZero())

	end.CashBRL = decimal.RequireFromString("0.302")
	assert.Equal(t, Surplus, Diff(start, end)[domain.FieldCashBRL].Sign)
}

func TestDiffDraft_MissingFieldsArePending(t *testing.T) {
	start := sampleSnapshot()
	draft := domain.CounterDraft{
		domain.FieldCashBRL: decimal.RequireFromString("250.50"),
		domain.FieldPhone:   decimal.Zero,
	}

	report := DiffDraft(start, draft)

	assert.Equal(t, Unchanged, report[domain.FieldCashBRL].Sign)
	assert.Equal(t, Shortage, report[domain.FieldPhone].Sign)
	assert.Equal(t, Pending, report[domain.FieldUmbrella].Sign)
	assert.Nil(t, report[domain.FieldUmbrella].End)
	assert.False(t, report.Balanced())

	// once confirmed, missing values count as zero
	final := Diff(start, draft.Finalize())
	assert.Equal(t, Shortage, final[domain.FieldUmbrella].Sign)
	assert.True(t, decimal.NewFromInt(-5).Equal(final[domain.FieldUmbrella].Delta))
}

func TestReport_Ordered(t *testing.T) {
	ordered := Diff(sampleSnapshot(), sampleSnapshot()).Ordered()
	require.Len(t, ordered, len(domain.CounterFields))
	for i, f := range domain.CounterFields {
		assert.Equal(t, f, ordered[i].Field)
	}
}

func TestCopyForward(t *testing.T) {
	end := sampleSnapshot()
	completed := &domain.Shift{ShiftID: "s1", Status: domain.ShiftCompleted, EndCounters: &end}

	got, err := CopyForward(completed)
	require.NoError(t, err)
	assert.Equal(t, end, got)

	_, err = CopyForward(nil)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = CopyForward(&domain.Shift{ShiftID: "s2", Status: domain.ShiftActive})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
