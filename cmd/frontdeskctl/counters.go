package main

import (
	"fmt"
	"sort"

	"github.com/SscSPs/front_desk_log/internal/core/domain"
	"github.com/shopspring/decimal"
)

// parseCounters converts --counter field=value pairs into a draft.
func parseCounters(raw map[string]string) (domain.CounterDraft, error) {
	draft := make(domain.CounterDraft, len(raw))
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		field := domain.CounterField(k)
		if !field.Valid() {
			return nil, fmt.Errorf("unknown counter %q", k)
		}
		v, err := decimal.NewFromString(raw[k])
		if err != nil {
			return nil, fmt.Errorf("counter %s: %w", k, err)
		}
		draft[field] = v
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	return draft, nil
}

// overlay applies the typed fields of draft on top of base.
func overlay(base domain.CounterSnapshot, draft domain.CounterDraft) domain.CounterSnapshot {
	for f, v := range draft {
		base = base.With(f, v)
	}
	return base
}
