package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hauswerk/cost-engine/engine"
	"github.com/hauswerk/cost-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func dec(s string) decimal.Decimal {
	return engine.MustDecimal(s)
}

func newPeriod(apartmentID, monthly string, start, end time.Time) engine.PrepaymentPeriod {
	return engine.PrepaymentPeriod{
		ApartmentID:   engine.ApartmentID(apartmentID),
		MonthlyAmount: dec(monthly),
		Start:         start,
		End:           end,
	}
}

// =============================================================================
// REFERENCE DATA
// =============================================================================

func TestTenantCRUD(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Create, ID generated
	saved, err := store.SaveTenant(ctx, engine.Tenant{Name: "Erika Mustermann", Email: "erika@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	// Update in place
	saved.Phone = "0171 5550100"
	_, err = store.SaveTenant(ctx, saved)
	require.NoError(t, err)

	tenants, err := store.ListTenants(ctx)
	require.NoError(t, err)
	require.Len(t, tenants, 1)
	assert.Equal(t, "Erika Mustermann", tenants[0].Name)
	assert.Equal(t, "0171 5550100", tenants[0].Phone)

	// Delete
	require.NoError(t, store.DeleteTenant(ctx, saved.ID))
	err = store.DeleteTenant(ctx, saved.ID)
	assert.ErrorIs(t, err, engine.ErrTenantNotFound)
}

func TestApartmentCRUD(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tenant, err := store.SaveTenant(ctx, engine.Tenant{Name: "Max Mustermann"})
	require.NoError(t, err)

	prepayment := dec("1440")
	saved, err := store.SaveApartment(ctx, engine.Apartment{
		Address:          "Musterstr. 1, EG links",
		LivingAreaSqm:    64,
		AnnualPrepayment: &prepayment,
		CurrentTenantID:  &tenant.ID,
	})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	got, err := store.GetApartment(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 64, got.LivingAreaSqm)
	require.NotNil(t, got.AnnualPrepayment)
	assert.True(t, got.AnnualPrepayment.Equal(dec("1440")))
	require.NotNil(t, got.CurrentTenantID)
	assert.Equal(t, tenant.ID, *got.CurrentTenantID)

	// Vacate: clear tenant and prepayment
	saved.CurrentTenantID = nil
	saved.AnnualPrepayment = nil
	_, err = store.SaveApartment(ctx, saved)
	require.NoError(t, err)

	got, err = store.GetApartment(ctx, saved.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CurrentTenantID)
	assert.Nil(t, got.AnnualPrepayment)

	require.NoError(t, store.DeleteApartment(ctx, saved.ID))
	assert.ErrorIs(t, store.DeleteApartment(ctx, saved.ID), engine.ErrApartmentNotFound)
}

func TestGetApartment_AbsentReturnsNil(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetApartment(context.Background(), "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCostTypeCRUD(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saved, err := store.SaveCostType(ctx, engine.CostType{
		Label:       "Wasser",
		Description: "Kalt- und Abwasser",
		Amount:      dec("842.73"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	saved.Amount = dec("900.00")
	_, err = store.SaveCostType(ctx, saved)
	require.NoError(t, err)

	costTypes, err := store.ListCostTypes(ctx)
	require.NoError(t, err)
	require.Len(t, costTypes, 1)
	assert.True(t, costTypes[0].Amount.Equal(dec("900.00")))

	require.NoError(t, store.DeleteCostType(ctx, saved.ID))
	assert.ErrorIs(t, store.DeleteCostType(ctx, saved.ID), engine.ErrCostTypeNotFound)
}

func TestOwnerCRUD(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saved, err := store.SaveOwner(ctx, engine.Owner{
		Property:        "Musterstr. 1",
		Name:            "Hausverwaltung Schmidt",
		StatementPeriod: "01.01.2025 - 31.12.2025",
	})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	owners, err := store.ListOwners(ctx)
	require.NoError(t, err)
	require.Len(t, owners, 1)
	assert.Equal(t, "Hausverwaltung Schmidt", owners[0].Name)

	require.NoError(t, store.DeleteOwner(ctx, saved.ID))
	assert.ErrorIs(t, store.DeleteOwner(ctx, saved.ID), engine.ErrOwnerNotFound)
}

// =============================================================================
// PREPAYMENT PERIODS
// =============================================================================

func TestReplacePeriods_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	warnings, err := store.ReplaceForApartmentAndYear(ctx, "apt-1", 2025, []engine.PrepaymentPeriod{
		newPeriod("apt-1", "60", engine.Date(2025, time.July, 1), engine.Date(2025, time.December, 31)),
		newPeriod("apt-1", "50", engine.Date(2025, time.January, 1), engine.Date(2025, time.June, 30)),
	})
	require.NoError(t, err)
	assert.Empty(t, warnings)

	got, warnings, err := store.PeriodsForApartmentAndYear(ctx, "apt-1", 2025)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, got, 2)

	// Ordered by start date regardless of insertion order
	assert.True(t, got[0].MonthlyAmount.Equal(dec("50")))
	assert.Equal(t, engine.Date(2025, time.January, 1), got[0].Start)
	assert.Equal(t, engine.Date(2025, time.June, 30), got[0].End)
	assert.True(t, got[1].MonthlyAmount.Equal(dec("60")))
	assert.NotEmpty(t, got[0].ID)
}

func TestReplacePeriods_PersistsValidSubsetWithWarnings(t *testing.T) {
	// GIVEN: A batch with one valid and two invalid entries
	// WHEN: Replacing
	// THEN: The valid entry is persisted, both invalid ones are reported

	store := newTestStore(t)
	ctx := context.Background()

	warnings, err := store.ReplaceForApartmentAndYear(ctx, "apt-1", 2025, []engine.PrepaymentPeriod{
		newPeriod("apt-1", "50", engine.Date(2025, time.January, 1), engine.Date(2025, time.June, 30)),
		newPeriod("apt-1", "-10", engine.Date(2025, time.July, 1), engine.Date(2025, time.December, 31)),
		newPeriod("apt-1", "40", engine.Date(2025, time.October, 1), engine.Date(2025, time.March, 31)),
	})
	require.NoError(t, err)
	require.Len(t, warnings, 2)
	assert.Equal(t, engine.WarnPeriodNegativeRate, warnings[0].Code)
	assert.Equal(t, engine.WarnPeriodInverted, warnings[1].Code)

	got, _, err := store.PeriodsForApartmentAndYear(ctx, "apt-1", 2025)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].MonthlyAmount.Equal(dec("50")))
}

func TestReplacePeriods_DeletesOverlapAcrossYears(t *testing.T) {
	// GIVEN: A period spanning Nov 2024 - Feb 2025
	// WHEN: Replacing year 2025
	// THEN: The spanning period is gone from 2024's view as well; the
	//       replace contract removes EVERYTHING overlapping the target year.

	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.ReplaceForApartmentAndYear(ctx, "apt-1", 2024, []engine.PrepaymentPeriod{
		newPeriod("apt-1", "70", engine.Date(2024, time.November, 1), engine.Date(2025, time.February, 28)),
	})
	require.NoError(t, err)

	_, err = store.ReplaceForApartmentAndYear(ctx, "apt-1", 2025, []engine.PrepaymentPeriod{
		newPeriod("apt-1", "80", engine.Date(2025, time.January, 1), engine.Date(2025, time.December, 31)),
	})
	require.NoError(t, err)

	got2024, _, err := store.PeriodsForApartmentAndYear(ctx, "apt-1", 2024)
	require.NoError(t, err)
	assert.Empty(t, got2024)

	got2025, _, err := store.PeriodsForApartmentAndYear(ctx, "apt-1", 2025)
	require.NoError(t, err)
	require.Len(t, got2025, 1)
	assert.True(t, got2025[0].MonthlyAmount.Equal(dec("80")))
}

func TestReplacePeriods_OtherApartmentsUntouched(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.ReplaceForApartmentAndYear(ctx, "apt-1", 2025, []engine.PrepaymentPeriod{
		newPeriod("apt-1", "50", engine.Date(2025, time.January, 1), engine.Date(2025, time.December, 31)),
	})
	require.NoError(t, err)

	_, err = store.ReplaceForApartmentAndYear(ctx, "apt-2", 2025, nil)
	require.NoError(t, err)

	got, _, err := store.PeriodsForApartmentAndYear(ctx, "apt-1", 2025)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestReplacePeriods_ImplausibleYearPersistsNothing(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	warnings, err := store.ReplaceForApartmentAndYear(ctx, "apt-1", 21000, []engine.PrepaymentPeriod{
		newPeriod("apt-1", "50", engine.Date(2025, time.January, 1), engine.Date(2025, time.December, 31)),
	})
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, engine.WarnYearOutOfRange, warnings[0].Code)

	got, _, err := store.PeriodsForApartmentAndYear(ctx, "apt-1", 2025)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPeriods_TenantAttributionSurvivesRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tid := engine.TenantID("t-1")
	p := newPeriod("apt-1", "55.50", engine.Date(2025, time.March, 1), engine.Date(2025, time.August, 31))
	p.TenantID = &tid

	_, err := store.ReplaceForApartmentAndYear(ctx, "apt-1", 2025, []engine.PrepaymentPeriod{p})
	require.NoError(t, err)

	got, _, err := store.PeriodsForApartmentAndYear(ctx, "apt-1", 2025)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].TenantID)
	assert.Equal(t, tid, *got[0].TenantID)
	assert.True(t, got[0].MonthlyAmount.Equal(dec("55.50")))
}

// =============================================================================
// STATEMENT RESULTS
// =============================================================================

func TestResults_SaveAndReadBackInOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tid := engine.TenantID("t-1")
	results := []engine.AllocationResult{
		{
			ApartmentID: "apt-b", TenantID: &tid, TenantName: "Erika Mustermann",
			LivingAreaSqm: 64, OccupancyMonths: 12, Units: 768,
			AllocatedCost: dec("1200"), PrepaymentTotal: dec("1440"), Balance: dec("240"),
		},
		{
			ApartmentID: "apt-a", TenantName: engine.VacantLabel,
			LivingAreaSqm: 48, OccupancyMonths: 0, Units: 0,
			AllocatedCost: dec("0"), PrepaymentTotal: dec("0"), Balance: dec("0"),
		},
	}

	require.NoError(t, store.SaveResultsForYear(ctx, 2025, results))

	got, err := store.ResultsForYear(ctx, 2025)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Computation order is preserved, not re-sorted
	assert.Equal(t, engine.ApartmentID("apt-b"), got[0].ApartmentID)
	assert.Equal(t, engine.ApartmentID("apt-a"), got[1].ApartmentID)
	require.NotNil(t, got[0].TenantID)
	assert.Equal(t, tid, *got[0].TenantID)
	assert.True(t, got[0].Balance.Equal(dec("240")))
	assert.Nil(t, got[1].TenantID)
	assert.Equal(t, engine.VacantLabel, got[1].TenantName)
}

func TestResults_SaveReplacesPreviousRun(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := []engine.AllocationResult{{
		ApartmentID: "apt-1", TenantName: engine.VacantLabel,
		AllocatedCost: dec("100"), PrepaymentTotal: dec("0"), Balance: dec("-100"),
	}}
	second := []engine.AllocationResult{{
		ApartmentID: "apt-1", TenantName: engine.VacantLabel,
		AllocatedCost: dec("150"), PrepaymentTotal: dec("0"), Balance: dec("-150"),
	}}

	require.NoError(t, store.SaveResultsForYear(ctx, 2025, first))
	require.NoError(t, store.SaveResultsForYear(ctx, 2025, second))

	got, err := store.ResultsForYear(ctx, 2025)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].AllocatedCost.Equal(dec("150")))
}

func TestResults_YearsAreIsolated(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveResultsForYear(ctx, 2024, []engine.AllocationResult{{
		ApartmentID: "apt-1", TenantName: engine.VacantLabel,
		AllocatedCost: dec("100"), PrepaymentTotal: dec("0"), Balance: dec("-100"),
	}}))

	got, err := store.ResultsForYear(ctx, 2025)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReset_ClearsEverything(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.SaveTenant(ctx, engine.Tenant{Name: "Max"})
	require.NoError(t, err)
	_, err = store.ReplaceForApartmentAndYear(ctx, "apt-1", 2025, []engine.PrepaymentPeriod{
		newPeriod("apt-1", "50", engine.Date(2025, time.January, 1), engine.Date(2025, time.December, 31)),
	})
	require.NoError(t, err)

	require.NoError(t, store.Reset(ctx))

	tenants, err := store.ListTenants(ctx)
	require.NoError(t, err)
	assert.Empty(t, tenants)

	periods, _, err := store.PeriodsForApartmentAndYear(ctx, "apt-1", 2025)
	require.NoError(t, err)
	assert.Empty(t, periods)
}
