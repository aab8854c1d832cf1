/*
Package engine computes annual operating-cost statements for rental
properties.

PURPOSE:
  This package contains the core allocation and reconciliation logic:
  converting raw apartment/tenant/cost data into a per-apartment share of
  shared costs, and reconciling advance-payment schedules against a
  calendar year to produce a balance (credit or amount due).

KEY CONCEPTS IN THIS FILE (types.go):
  - Apartment, Tenant, CostType: read-only reference data for one run
  - PrepaymentPeriod: a contiguous month span with a fixed monthly advance
  - AllocationResult: one statement line per apartment
  - Warning: a structured data-quality note (never fatal)

DESIGN PRINCIPLES:
  1. Purity: the calculator has no side effects and no hidden state
  2. Precision: decimal.Decimal everywhere, floats never touch money
  3. Resilience: malformed input degrades to warnings, not failures
  4. Determinism: identical input produces identical output, always

USAGE:
  out := engine.ComputeAllocation(engine.AllocationInput{
      Apartments: apartments,
      Tenants:    tenants,
      CostTypes:  costTypes,
      Year:       2025,
  })
  for _, w := range out.Warnings {
      log.Println(w)
  }

SEE ALSO:
  - allocate.go: The top-level allocation calculator
  - prepayment.go: Per-apartment prepayment reconciliation
  - interval.go: Month-granularity interval algebra
  - rounding.go: Sign-preserving currency rounding
*/
package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type ApartmentID string
type TenantID string
type CostTypeID string
type OwnerID string

// =============================================================================
// REFERENCE DATA - Immutable snapshots for one computation
// =============================================================================

// Apartment is a rental unit. LivingAreaSqm is the allocation weight base;
// AnnualPrepayment is the flat yearly advance used when no periods exist.
type Apartment struct {
	ID               ApartmentID
	Address          string
	LivingAreaSqm    int
	AnnualPrepayment *decimal.Decimal
	CurrentTenantID  *TenantID
}

type Tenant struct {
	ID    TenantID
	Name  string
	Email string
	Phone string
}

// CostType is one shared cost position (heating, water, insurance, ...).
// Amount is the yearly total to be allocated across all apartments.
type CostType struct {
	ID          CostTypeID
	Label       string
	Description string
	Amount      decimal.Decimal
}

// Owner is the property owner printed on statement headers.
type Owner struct {
	ID              OwnerID
	Property        string
	Name            string
	StatementPeriod string
}

// =============================================================================
// PREPAYMENT PERIOD - The one entity with a persistent lifecycle
// =============================================================================

// PrepaymentPeriod is a contiguous span during which a fixed monthly advance
// applies. Start and End are inclusive and carry month granularity: the
// day-of-month only matters for the end-before-start check.
type PrepaymentPeriod struct {
	ID            string
	ApartmentID   ApartmentID
	TenantID      *TenantID
	MonthlyAmount decimal.Decimal
	Start         time.Time
	End           time.Time
}

// Span returns the period's date span.
func (p PrepaymentPeriod) Span() Span {
	return Span{Start: p.Start, End: p.End}
}

// =============================================================================
// ALLOCATION RESULT - One statement line per apartment
// =============================================================================

// VacantLabel is the tenant display name used when an apartment has no
// assigned tenant.
const VacantLabel = "Leerstand"

// AllocationResult is the computed statement line for one apartment.
// Balance is positive for a credit owed to the tenant, negative for an
// amount due from the tenant.
type AllocationResult struct {
	ApartmentID     ApartmentID
	TenantID        *TenantID
	TenantName      string
	LivingAreaSqm   int
	OccupancyMonths int
	Units           int
	AllocatedCost   decimal.Decimal
	PrepaymentTotal decimal.Decimal
	Balance         decimal.Decimal
}

// =============================================================================
// WARNINGS - Expected data-quality conditions, never fatal
// =============================================================================

type WarningCode string

const (
	WarnNoApartments       WarningCode = "no_apartments"
	WarnNoCostTypes        WarningCode = "no_cost_types"
	WarnYearOutOfRange     WarningCode = "year_out_of_range"
	WarnNoUnits            WarningCode = "no_units"
	WarnNegativeArea       WarningCode = "negative_area"
	WarnPeriodMonthCount   WarningCode = "period_month_count"
	WarnPeriodNegativeRate WarningCode = "period_negative_rate"
	WarnPeriodInverted     WarningCode = "period_inverted"
	WarnPeriodWrongUnit    WarningCode = "period_wrong_apartment"
)

// Warning describes a data-quality condition the engine compensated for.
// Callers may surface or log warnings but must not treat them as fatal.
type Warning struct {
	Code        WarningCode
	ApartmentID ApartmentID
	Detail      string
}

func (w Warning) String() string {
	if w.ApartmentID != "" {
		return fmt.Sprintf("%s [apartment %s]: %s", w.Code, w.ApartmentID, w.Detail)
	}
	return fmt.Sprintf("%s: %s", w.Code, w.Detail)
}

func warnf(code WarningCode, apartmentID ApartmentID, format string, args ...any) Warning {
	return Warning{Code: code, ApartmentID: apartmentID, Detail: fmt.Sprintf(format, args...)}
}

// MustDecimal parses a decimal literal, falling back to zero. Intended for
// constants and tests, not for user input.
func MustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
