package engine

// =============================================================================
// PERIOD VALIDATION - Shared by every PeriodStore implementation
// =============================================================================
// The replace operation is always "delete everything overlapping the year,
// insert whatever survives validation". The validation rule lives here, once,
// so SQLite and in-memory stores cannot drift apart.

// ValidatePeriodsForReplace filters newPeriods down to the entries that may
// be persisted for (apartmentID, year). Invalid entries are skipped with a
// warning; they never abort the batch.
//
// An entry survives when:
//  1. it references apartmentID,
//  2. its end does not precede its start,
//  3. its inclusive month count is in (0, MaxPeriodMonths],
//  4. its monthly amount is non-negative.
func ValidatePeriodsForReplace(apartmentID ApartmentID, newPeriods []PrepaymentPeriod) ([]PrepaymentPeriod, []Warning) {
	var (
		valid    []PrepaymentPeriod
		warnings []Warning
	)

	for _, p := range newPeriods {
		if p.ApartmentID != apartmentID {
			warnings = append(warnings, warnf(WarnPeriodWrongUnit, apartmentID,
				"period references apartment %s, entry skipped", p.ApartmentID))
			continue
		}

		if p.Span().Inverted() {
			warnings = append(warnings, warnf(WarnPeriodInverted, apartmentID,
				"period %s has end before start, entry skipped", p.Span()))
			continue
		}

		months := p.Span().Months()
		if months <= 0 || months > MaxPeriodMonths {
			warnings = append(warnings, warnf(WarnPeriodMonthCount, apartmentID,
				"period %s spans %d months, entry skipped", p.Span(), months))
			continue
		}

		if p.MonthlyAmount.IsNegative() {
			warnings = append(warnings, warnf(WarnPeriodNegativeRate, apartmentID,
				"negative monthly amount %s, entry skipped", p.MonthlyAmount))
			continue
		}

		valid = append(valid, p)
	}

	return valid, warnings
}
