// Package store provides in-memory store implementations for tests and dev.
package store

import (
	"context"
	"sync"

	"github.com/hauswerk/cost-engine/engine"
)

// =============================================================================
// MEMORY PERIOD STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	periods map[engine.ApartmentID][]engine.PrepaymentPeriod
}

func NewMemory() *Memory {
	return &Memory{
		periods: make(map[engine.ApartmentID][]engine.PrepaymentPeriod),
	}
}

// PeriodsForApartmentAndYear returns all stored periods overlapping the year.
func (m *Memory) PeriodsForApartmentAndYear(_ context.Context, apartmentID engine.ApartmentID, year int) ([]engine.PrepaymentPeriod, []engine.Warning, error) {
	if !engine.ValidYear(year) {
		return nil, []engine.Warning{{
			Code:        engine.WarnYearOutOfRange,
			ApartmentID: apartmentID,
			Detail:      "unusual year, returning no periods",
		}}, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []engine.PrepaymentPeriod
	for _, p := range m.periods[apartmentID] {
		if p.Span().OverlapsYear(year) {
			out = append(out, p)
		}
	}
	return out, nil, nil
}

// ReplaceForApartmentAndYear swaps the year's periods under one lock so
// readers never observe a half-replaced state.
func (m *Memory) ReplaceForApartmentAndYear(_ context.Context, apartmentID engine.ApartmentID, year int, newPeriods []engine.PrepaymentPeriod) ([]engine.Warning, error) {
	if !engine.ValidYear(year) {
		return []engine.Warning{{
			Code:        engine.WarnYearOutOfRange,
			ApartmentID: apartmentID,
			Detail:      "unusual year, no changes persisted",
		}}, nil
	}

	valid, warnings := engine.ValidatePeriodsForReplace(apartmentID, newPeriods)

	m.mu.Lock()
	defer m.mu.Unlock()

	var kept []engine.PrepaymentPeriod
	for _, p := range m.periods[apartmentID] {
		if !p.Span().OverlapsYear(year) {
			kept = append(kept, p)
		}
	}
	m.periods[apartmentID] = append(kept, valid...)

	return warnings, nil
}
