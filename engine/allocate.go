/*
allocate.go - The top-level allocation calculator

PURPOSE:
  Converts reference data (apartments, tenants, cost types) plus year-scoped
  overrides (occupancy months, prepayment periods) into one statement line
  per apartment:

    units         = livingArea * occupancyMonths   (months clamped to [0,12])
    costPerUnit   = totalCost / totalUnits         (6dp, half-up)
    allocatedCost = round(costPerUnit * units)     (whole currency units)
    balance       = round(prepayment - allocatedCost)

RESILIENCE:
  Obviously inconsistent input (no apartments, no cost types, implausible
  year, zero total units) yields an empty result plus a warning rather than
  a crash or a misleading zero-filled statement. Negative areas are treated
  as zero with a warning.

DETERMINISM:
  The computation is a pure transform: no side effects, stable output
  ordering (input apartment order), identical input -> identical output.

KNOWN NON-EXACTNESS:
  Allocated cost is rounded to whole currency units BEFORE the balance is
  computed, so displayed shares need not sum exactly to the total cost.
  This keeps the balance consistent with the displayed figures and is
  intentional, long-standing statement behavior.

SEE ALSO:
  - prepayment.go: Per-apartment prepayment reconciliation
  - rounding.go: The shared currency rounding rule
*/
package engine

import "github.com/shopspring/decimal"

// FullOccupancyMonths is assumed for apartments without an explicit
// occupancy entry.
const FullOccupancyMonths = 12

// AllocationInput is the full input snapshot for one statement run.
type AllocationInput struct {
	Apartments []Apartment
	Tenants    []Tenant
	CostTypes  []CostType

	// OccupancyMonths overrides occupancy per apartment; missing entries
	// default to FullOccupancyMonths. Values are clamped to [0, 12].
	OccupancyMonths map[ApartmentID]int

	// Periods holds the active prepayment periods for ALL apartments; the
	// calculator groups them by apartment itself.
	Periods []PrepaymentPeriod

	Year int
}

// AllocationOutput carries the computed statement lines plus every
// data-quality warning emitted along the way.
type AllocationOutput struct {
	Results  []AllocationResult
	Warnings []Warning
}

// ComputeAllocation produces one AllocationResult per apartment, in input
// order. It never fails: inputs it cannot allocate over yield an empty
// result list with an explanatory warning.
func ComputeAllocation(in AllocationInput) AllocationOutput {
	var out AllocationOutput

	if len(in.Apartments) == 0 {
		out.Warnings = append(out.Warnings, warnf(WarnNoApartments, "",
			"no apartments supplied, statement left empty"))
		return out
	}

	if len(in.CostTypes) == 0 {
		out.Warnings = append(out.Warnings, warnf(WarnNoCostTypes, "",
			"no cost types supplied, statement left empty"))
		return out
	}

	if !ValidYear(in.Year) {
		out.Warnings = append(out.Warnings, warnf(WarnYearOutOfRange, "",
			"unusual year %d, statement left empty", in.Year))
		return out
	}

	// Total shared cost, exact decimal sum.
	totalCost := decimal.Zero
	for _, ct := range in.CostTypes {
		totalCost = totalCost.Add(ct.Amount)
	}

	// Allocation weight per apartment: area * occupancy months.
	units := make(map[ApartmentID]int, len(in.Apartments))
	totalUnits := 0
	for _, a := range in.Apartments {
		area := a.LivingAreaSqm
		if area < 0 {
			out.Warnings = append(out.Warnings, warnf(WarnNegativeArea, a.ID,
				"negative living area %d treated as 0", area))
			area = 0
		}

		u := area * clampMonths(in.OccupancyMonths, a.ID)
		units[a.ID] = u
		totalUnits += u
	}

	if totalUnits <= 0 {
		out.Warnings = append(out.Warnings, warnf(WarnNoUnits, "",
			"total units == %d, months or areas are probably wrong, statement left empty", totalUnits))
		return out
	}

	costPerUnit := totalCost.DivRound(decimal.New(int64(totalUnits), 0), 6)

	periodsByApartment := make(map[ApartmentID][]PrepaymentPeriod)
	for _, p := range in.Periods {
		periodsByApartment[p.ApartmentID] = append(periodsByApartment[p.ApartmentID], p)
	}

	tenantsByID := make(map[TenantID]Tenant, len(in.Tenants))
	for _, t := range in.Tenants {
		tenantsByID[t.ID] = t
	}

	out.Results = make([]AllocationResult, 0, len(in.Apartments))
	for _, a := range in.Apartments {
		months := clampMonths(in.OccupancyMonths, a.ID)
		u := units[a.ID]

		rawShare := costPerUnit.Mul(decimal.New(int64(u), 0))
		allocatedCost := RoundToWholeCurrency(rawShare)

		prepayment, warns := ReconcilePrepayments(
			periodsByApartment[a.ID], in.Year, a.AnnualPrepayment, months)
		out.Warnings = append(out.Warnings, warns...)

		balance := RoundToWholeCurrency(prepayment.Sub(allocatedCost))

		out.Results = append(out.Results, AllocationResult{
			ApartmentID:     a.ID,
			TenantID:        a.CurrentTenantID,
			TenantName:      resolveTenantName(tenantsByID, a.CurrentTenantID),
			LivingAreaSqm:   a.LivingAreaSqm,
			OccupancyMonths: months,
			Units:           u,
			AllocatedCost:   allocatedCost,
			PrepaymentTotal: prepayment,
			Balance:         balance,
		})
	}

	return out
}

func clampMonths(byApartment map[ApartmentID]int, id ApartmentID) int {
	months, ok := byApartment[id]
	if !ok {
		return FullOccupancyMonths
	}
	if months < 0 {
		return 0
	}
	if months > FullOccupancyMonths {
		return FullOccupancyMonths
	}
	return months
}

func resolveTenantName(byID map[TenantID]Tenant, id *TenantID) string {
	if id == nil {
		return VacantLabel
	}
	t, ok := byID[*id]
	if !ok {
		return VacantLabel
	}
	return t.Name
}
