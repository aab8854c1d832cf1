package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hauswerk/cost-engine/api"
	"github.com/hauswerk/cost-engine/store/sqlite"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return api.NewRouter(api.NewHandler(store))
}

func doRequest(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

// =============================================================================
// REFERENCE DATA ENDPOINTS
// =============================================================================

func TestTenantEndpoints(t *testing.T) {
	router := newTestServer(t)

	// Create
	rec := doRequest(t, router, http.MethodPost, "/api/tenants", api.SaveTenantRequest{
		Name: "Erika Mustermann", Email: "erika@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[api.TenantDTO](t, rec)
	require.NotEmpty(t, created.ID)

	// Update
	rec = doRequest(t, router, http.MethodPut, "/api/tenants/"+created.ID, api.SaveTenantRequest{
		Name: "Erika Mustermann", Phone: "0171 5550100",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// List
	rec = doRequest(t, router, http.MethodGet, "/api/tenants", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tenants := decodeBody[[]api.TenantDTO](t, rec)
	require.Len(t, tenants, 1)
	assert.Equal(t, "0171 5550100", tenants[0].Phone)

	// Delete, then delete again
	rec = doRequest(t, router, http.MethodDelete, "/api/tenants/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = doRequest(t, router, http.MethodDelete, "/api/tenants/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateTenant_NameRequired(t *testing.T) {
	router := newTestServer(t)

	rec := doRequest(t, router, http.MethodPost, "/api/tenants", api.SaveTenantRequest{Email: "x@example.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateApartment_ValidatesInput(t *testing.T) {
	router := newTestServer(t)

	rec := doRequest(t, router, http.MethodPost, "/api/apartments", api.SaveApartmentRequest{
		LivingAreaSqm: 50,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "address is required")

	bad := "not-a-number"
	rec = doRequest(t, router, http.MethodPost, "/api/apartments", api.SaveApartmentRequest{
		Address:          "Musterstr. 1",
		LivingAreaSqm:    50,
		AnnualPrepayment: &bad,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "prepayment must be a decimal string")
}

func TestCreateCostType_AmountMustBeDecimal(t *testing.T) {
	router := newTestServer(t)

	rec := doRequest(t, router, http.MethodPost, "/api/cost-types", api.SaveCostTypeRequest{
		Label: "Wasser", Amount: "abc",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// =============================================================================
// PERIOD ENDPOINTS
// =============================================================================

func TestPeriodEndpoints_ReplaceAndRead(t *testing.T) {
	router := newTestServer(t)

	rec := doRequest(t, router, http.MethodPost, "/api/apartments", api.SaveApartmentRequest{
		Address: "Musterstr. 1, EG links", LivingAreaSqm: 64,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	apartment := decodeBody[api.ApartmentDTO](t, rec)

	// Replace with one valid and one invalid entry
	rec = doRequest(t, router, http.MethodPut,
		"/api/apartments/"+apartment.ID+"/periods/2025",
		api.ReplacePeriodsRequest{Periods: []api.PeriodDTO{
			{ApartmentID: apartment.ID, MonthlyAmount: "100", Start: "2025-01-01", End: "2025-12-31"},
			{ApartmentID: apartment.ID, MonthlyAmount: "-5", Start: "2025-01-01", End: "2025-06-30"},
		}},
	)
	require.Equal(t, http.StatusOK, rec.Code)
	replaced := decodeBody[api.ReplacePeriodsResponse](t, rec)
	require.Len(t, replaced.Warnings, 1)

	// Read back: only the valid entry survived
	rec = doRequest(t, router, http.MethodGet,
		"/api/apartments/"+apartment.ID+"/periods/2025", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Periods  []api.PeriodDTO  `json:"periods"`
		Warnings []api.WarningDTO `json:"warnings"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got.Periods, 1)
	assert.Equal(t, "100", got.Periods[0].MonthlyAmount)
	assert.Equal(t, "2025-01-01", got.Periods[0].Start)
	assert.Empty(t, got.Warnings)
}

func TestPeriodEndpoints_MalformedDateRejected(t *testing.T) {
	router := newTestServer(t)

	rec := doRequest(t, router, http.MethodPut, "/api/apartments/apt-1/periods/2025",
		api.ReplacePeriodsRequest{Periods: []api.PeriodDTO{
			{ApartmentID: "apt-1", MonthlyAmount: "100", Start: "01.01.2025", End: "2025-12-31"},
		}},
	)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPeriodEndpoints_YearMustBeNumeric(t *testing.T) {
	router := newTestServer(t)

	rec := doRequest(t, router, http.MethodGet, "/api/apartments/apt-1/periods/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// =============================================================================
// STATEMENT ENDPOINTS
// =============================================================================

func TestStatementEndpoints_ComputePersistRead(t *testing.T) {
	// Full flow: reference data in, periods in, statement out.
	router := newTestServer(t)

	rec := doRequest(t, router, http.MethodPost, "/api/tenants", api.SaveTenantRequest{Name: "Erika Mustermann"})
	require.Equal(t, http.StatusCreated, rec.Code)
	tenant := decodeBody[api.TenantDTO](t, rec)

	rec = doRequest(t, router, http.MethodPost, "/api/apartments", api.SaveApartmentRequest{
		Address: "Musterstr. 1, EG links", LivingAreaSqm: 64, CurrentTenantID: &tenant.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	aptA := decodeBody[api.ApartmentDTO](t, rec)

	prepayment := "600"
	rec = doRequest(t, router, http.MethodPost, "/api/apartments", api.SaveApartmentRequest{
		Address: "Musterstr. 1, OG rechts", LivingAreaSqm: 36, AnnualPrepayment: &prepayment,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	aptB := decodeBody[api.ApartmentDTO](t, rec)

	rec = doRequest(t, router, http.MethodPost, "/api/cost-types", api.SaveCostTypeRequest{
		Label: "Wasser", Amount: "1000",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, router, http.MethodPut,
		"/api/apartments/"+aptA.ID+"/periods/2025",
		api.ReplacePeriodsRequest{Periods: []api.PeriodDTO{
			{ApartmentID: aptA.ID, MonthlyAmount: "100", Start: "2025-01-01", End: "2025-12-31"},
		}},
	)
	require.Equal(t, http.StatusOK, rec.Code)

	// Compute without persisting. Apartment B was occupied 6 months.
	// Units: A = 64*12 = 768, B = 36*6 = 216, total 984.
	// Cost/unit = 1000/984 = 1.016260; A pays 780, B pays 219.
	rec = doRequest(t, router, http.MethodPost, "/api/statements/2025/compute",
		api.ComputeStatementRequest{OccupancyMonths: map[string]int{aptB.ID: 6}})
	require.Equal(t, http.StatusOK, rec.Code)

	statement := decodeBody[api.StatementDTO](t, rec)
	assert.Equal(t, 2025, statement.Year)
	assert.Empty(t, statement.Warnings)
	require.Len(t, statement.Results, 2)

	lineA := statement.Results[0]
	assert.Equal(t, aptA.ID, lineA.ApartmentID)
	assert.Equal(t, "Erika Mustermann", lineA.TenantName)
	assert.Equal(t, 768, lineA.Units)
	assert.Equal(t, "780.00", lineA.AllocatedCost)
	assert.Equal(t, "1200.00", lineA.PrepaymentTotal)
	assert.Equal(t, "420.00", lineA.Balance)

	lineB := statement.Results[1]
	assert.Equal(t, aptB.ID, lineB.ApartmentID)
	assert.Equal(t, "Leerstand", lineB.TenantName)
	assert.Equal(t, 216, lineB.Units)
	assert.Equal(t, "219.00", lineB.AllocatedCost)
	assert.Equal(t, "300.00", lineB.PrepaymentTotal)
	assert.Equal(t, "81.00", lineB.Balance)

	// Nothing stored yet
	rec = doRequest(t, router, http.MethodGet, "/api/statements/2025", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stored := decodeBody[api.StatementDTO](t, rec)
	assert.Empty(t, stored.Results)

	// Persist and read back
	rec = doRequest(t, router, http.MethodPost, "/api/statements/2025",
		api.ComputeStatementRequest{OccupancyMonths: map[string]int{aptB.ID: 6}})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/statements/2025", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stored = decodeBody[api.StatementDTO](t, rec)
	require.Len(t, stored.Results, 2)
	assert.Equal(t, statement.Results, stored.Results)
}

func TestStatementEndpoints_EmptyHouseYieldsWarnings(t *testing.T) {
	// Data-quality problems are warnings in a 200 response, never errors.
	router := newTestServer(t)

	rec := doRequest(t, router, http.MethodPost, "/api/statements/2025/compute", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	statement := decodeBody[api.StatementDTO](t, rec)
	assert.Empty(t, statement.Results)
	require.Len(t, statement.Warnings, 1)
	assert.Equal(t, "no_apartments", statement.Warnings[0].Code)
}

func TestStatementEndpoints_YearMustBeNumeric(t *testing.T) {
	router := newTestServer(t)

	rec := doRequest(t, router, http.MethodGet, "/api/statements/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
