package engine

import "time"

// =============================================================================
// SPAN - Inclusive date span with month-granularity arithmetic
// =============================================================================

// Span is an inclusive [Start, End] date range. Prepayment periods carry
// month granularity: month counting truncates both ends to the first of
// their month, so Jan 15 .. Jan 20 counts as one month.
type Span struct {
	Start time.Time
	End   time.Time
}

// Inverted reports whether End precedes Start.
func (s Span) Inverted() bool {
	return s.End.Before(s.Start)
}

// Months returns the inclusive month count of the span. The same calendar
// month counts as 1. Spans whose end precedes their start yield 0.
func (s Span) Months() int {
	if s.Inverted() {
		return 0
	}
	start := firstOfMonth(s.Start)
	end := firstOfMonth(s.End)
	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month()) + 1
}

// ClipToYear intersects the span with calendar year `year`. The second
// return value is false when the clipped span is empty, either because the
// span lies outside the year or because it was inverted to begin with.
func (s Span) ClipToYear(year int) (Span, bool) {
	start, end := YearBounds(year)
	clipped := Span{Start: maxDate(s.Start, start), End: minDate(s.End, end)}
	if clipped.Inverted() {
		return Span{}, false
	}
	return clipped, true
}

// OverlapsYear reports whether the span intersects calendar year `year`:
// Start <= Dec 31 AND End >= Jan 1.
func (s Span) OverlapsYear(year int) bool {
	start, end := YearBounds(year)
	return !s.Start.After(end) && !s.End.Before(start)
}

func (s Span) String() string {
	return "[" + s.Start.Format("2006-01-02") + ", " + s.End.Format("2006-01-02") + "]"
}

// =============================================================================
// YEAR HELPERS
// =============================================================================

// Years outside this window are treated as data-entry typos and rejected
// defensively everywhere a year is accepted.
const (
	MinYear = 1900
	MaxYear = 2100
)

// ValidYear reports whether the year falls inside [MinYear, MaxYear].
func ValidYear(year int) bool {
	return year >= MinYear && year <= MaxYear
}

// YearBounds returns Jan 1 and Dec 31 of the year, at UTC midnight.
func YearBounds(year int) (time.Time, time.Time) {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}

// Date is a shorthand constructor for UTC midnight dates.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
