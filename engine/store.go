/*
store.go - Persistence interfaces consumed by the engine's callers

PURPOSE:
  Defines the boundary between the pure computation core and whatever
  persists the data. The engine itself stores nothing; repositories are
  injected as explicit collaborators so everything stays testable.

KEY INTERFACES:
  ReferenceStore: read-only snapshots of apartments, tenants, cost types
  PeriodStore:    prepayment periods, mutated ONLY via atomic replacement
  ResultStore:    computed statement lines, replaced per year

ATOMIC REPLACEMENT CONTRACT:
  ReplaceForApartmentAndYear deletes every stored period overlapping the
  year, then inserts the valid subset of the new list, as ONE atomic unit.
  A concurrent reader must never observe the old periods deleted but the
  new ones not yet inserted. Concurrent replaces for the same
  (apartment, year) pair must be serialized; last writer wins.

ERROR CHANNEL:
  Store methods return infrastructural errors (database unreachable, I/O
  failure) through their error result. Data-quality conditions come back
  as []Warning and are never errors.

IMPLEMENTATIONS:
  - store/sqlite: production SQLite store
  - engine/store: in-memory PeriodStore for tests and dev
*/
package engine

import (
	"context"
	"errors"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

var (
	// ErrApartmentNotFound is returned when a referenced apartment doesn't exist.
	ErrApartmentNotFound = errors.New("apartment not found")

	// ErrTenantNotFound is returned when a referenced tenant doesn't exist.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrCostTypeNotFound is returned when a referenced cost type doesn't exist.
	ErrCostTypeNotFound = errors.New("cost type not found")

	// ErrOwnerNotFound is returned when a referenced owner doesn't exist.
	ErrOwnerNotFound = errors.New("owner not found")
)

// IsNotFound reports whether the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrApartmentNotFound) ||
		errors.Is(err, ErrTenantNotFound) ||
		errors.Is(err, ErrCostTypeNotFound) ||
		errors.Is(err, ErrOwnerNotFound)
}

// =============================================================================
// REFERENCE STORE - Read-only snapshots for one computation
// =============================================================================

// ReferenceStore supplies the static reference data a statement run reads.
type ReferenceStore interface {
	ListApartments(ctx context.Context) ([]Apartment, error)
	ListTenants(ctx context.Context) ([]Tenant, error)
	ListCostTypes(ctx context.Context) ([]CostType, error)
}

// =============================================================================
// PERIOD STORE - The only shared mutable resource
// =============================================================================

// PeriodStore persists prepayment periods. Periods have no independent
// create/update/delete; the whole year for one apartment is replaced at once.
type PeriodStore interface {
	// PeriodsForApartmentAndYear returns all periods overlapping the year
	// (start <= Dec 31 AND end >= Jan 1). Out-of-range years yield an empty
	// list plus a warning, not an error.
	PeriodsForApartmentAndYear(ctx context.Context, apartmentID ApartmentID, year int) ([]PrepaymentPeriod, []Warning, error)

	// ReplaceForApartmentAndYear atomically deletes every period overlapping
	// the year and inserts the valid subset of newPeriods. An empty list is
	// a valid reset. Out-of-range years abort with a warning and no change.
	ReplaceForApartmentAndYear(ctx context.Context, apartmentID ApartmentID, year int, newPeriods []PrepaymentPeriod) ([]Warning, error)
}

// =============================================================================
// RESULT STORE - Persisted statement lines
// =============================================================================

// ResultStore archives computed statement lines for later retrieval/export.
type ResultStore interface {
	// SaveResultsForYear replaces the stored results for the year.
	SaveResultsForYear(ctx context.Context, year int, results []AllocationResult) error

	// ResultsForYear returns the stored results for the year.
	ResultsForYear(ctx context.Context, year int) ([]AllocationResult, error)
}
