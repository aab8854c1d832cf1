/*
prepayment.go - Prepayment reconciliation for one apartment and one year

PURPOSE:
  Computes the effective advance-payment total for a single apartment and
  calendar year, from either a flat annual fallback amount or a list of
  time-sliced monthly schedules.

TWO MODES:
  Fallback mode (no periods):
    The apartment's stored amount is treated as an ANNUAL figure and
    prorated by actual occupancy: annual * months / 12, 2dp half-up.

  Period mode (periods present):
    Each period is clipped to the target year; periods outside the year
    are silently skipped (expected for multi-year data sets). Surviving
    periods contribute monthlyAmount * inclusiveMonthCount. Month counts
    outside (0, 240] and negative monthly amounts are filtered with a
    warning, a defensive bound against data-entry errors.

ORDER INDEPENDENCE:
  Periods may arrive in any order; the sum is commutative. Overlapping
  periods are summed without deduplication: resolving overlaps is the
  replacer's job on write, not the reconciler's job on read.

SEE ALSO:
  - allocate.go: Invokes the reconciler once per apartment
  - replace.go: Validates periods before they are persisted
*/
package engine

import "github.com/shopspring/decimal"

// MaxPeriodMonths caps the inclusive month count of a single period.
// 240 months = 20 years; anything longer is a typo (e.g. year 2100).
const MaxPeriodMonths = 240

var monthsPerYear = decimal.New(12, 0)

// ReconcilePrepayments returns the prepayment total for one apartment and
// one calendar year, plus warnings for any filtered periods.
//
// fallbackAnnual may be nil (treated as zero). occupancyMonths is the
// apartment's effective occupancy, already clamped to [0, 12] by the caller.
func ReconcilePrepayments(periods []PrepaymentPeriod, year int, fallbackAnnual *decimal.Decimal, occupancyMonths int) (decimal.Decimal, []Warning) {
	if !ValidYear(year) {
		return decimal.Zero, []Warning{
			warnf(WarnYearOutOfRange, "", "unusual year %d, prepayment treated as 0", year),
		}
	}

	if len(periods) == 0 {
		return fallbackPrepayment(fallbackAnnual, occupancyMonths), nil
	}

	var warnings []Warning
	total := decimal.Zero

	for _, p := range periods {
		clipped, ok := p.Span().ClipToYear(year)
		if !ok {
			// Entirely outside the year. Expected, no warning.
			continue
		}

		months := clipped.Months()
		if months <= 0 || months > MaxPeriodMonths {
			warnings = append(warnings, warnf(WarnPeriodMonthCount, p.ApartmentID,
				"ignored period %s with %d months", p.Span(), months))
			continue
		}

		if p.MonthlyAmount.IsNegative() {
			warnings = append(warnings, warnf(WarnPeriodNegativeRate, p.ApartmentID,
				"negative monthly amount %s, period ignored", p.MonthlyAmount))
			continue
		}

		total = total.Add(p.MonthlyAmount.Mul(decimal.New(int64(months), 0)))
	}

	return total, warnings
}

// fallbackPrepayment prorates the flat annual amount by occupancy months.
func fallbackPrepayment(annual *decimal.Decimal, occupancyMonths int) decimal.Decimal {
	if occupancyMonths <= 0 {
		return decimal.Zero
	}

	amount := decimal.Zero
	if annual != nil {
		amount = *annual
	}

	return amount.
		Mul(decimal.New(int64(occupancyMonths), 0)).
		DivRound(monthsPerYear, 2)
}
