/*
handlers.go - HTTP API handlers for the operating-cost statement engine

PURPOSE:
  Exposes the statement engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to the engine and
  the store.

ENDPOINTS:
  Reference data:
    GET    /api/apartments                     List apartments
    POST   /api/apartments                     Create apartment
    PUT    /api/apartments/{id}                Update apartment
    DELETE /api/apartments/{id}                Delete apartment
    (tenants, cost-types and owners follow the same shape)

  Prepayment periods:
    GET    /api/apartments/{id}/periods/{year} Periods overlapping a year
    PUT    /api/apartments/{id}/periods/{year} Atomic whole-year replace

  Statements:
    POST   /api/statements/{year}/compute      Compute, do not persist
    POST   /api/statements/{year}              Compute and persist
    GET    /api/statements/{year}              Stored statement lines

ERROR HANDLING:
  Data-quality conditions never produce error statuses: the engine's
  warnings ride along in the response body and the request succeeds.
  HTTP errors are reserved for malformed requests (400), missing records
  (404) and infrastructural failures (500).

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/hauswerk/cost-engine/engine"
	"github.com/hauswerk/cost-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store *sqlite.Store
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{Store: store}
}

// =============================================================================
// TENANT HANDLERS
// =============================================================================

// ListTenants returns all tenants.
func (h *Handler) ListTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.Store.ListTenants(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list tenants", err)
		return
	}

	dtos := make([]TenantDTO, len(tenants))
	for i, t := range tenants {
		dtos[i] = toTenantDTO(t)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateTenant creates a tenant.
func (h *Handler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	h.saveTenant(w, r, "")
}

// UpdateTenant updates an existing tenant.
func (h *Handler) UpdateTenant(w http.ResponseWriter, r *http.Request) {
	h.saveTenant(w, r, engine.TenantID(chi.URLParam(r, "id")))
}

func (h *Handler) saveTenant(w http.ResponseWriter, r *http.Request, id engine.TenantID) {
	var req SaveTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required", nil)
		return
	}

	saved, err := h.Store.SaveTenant(r.Context(), engine.Tenant{
		ID: id, Name: req.Name, Email: req.Email, Phone: req.Phone,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save tenant", err)
		return
	}

	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	writeJSON(w, status, toTenantDTO(saved))
}

// DeleteTenant removes a tenant.
func (h *Handler) DeleteTenant(w http.ResponseWriter, r *http.Request) {
	err := h.Store.DeleteTenant(r.Context(), engine.TenantID(chi.URLParam(r, "id")))
	if engine.IsNotFound(err) {
		writeError(w, http.StatusNotFound, "Tenant not found", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete tenant", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// APARTMENT HANDLERS
// =============================================================================

// ListApartments returns all apartments.
func (h *Handler) ListApartments(w http.ResponseWriter, r *http.Request) {
	apartments, err := h.Store.ListApartments(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list apartments", err)
		return
	}

	dtos := make([]ApartmentDTO, len(apartments))
	for i, a := range apartments {
		dtos[i] = toApartmentDTO(a)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateApartment creates an apartment.
func (h *Handler) CreateApartment(w http.ResponseWriter, r *http.Request) {
	h.saveApartment(w, r, "")
}

// UpdateApartment updates an existing apartment.
func (h *Handler) UpdateApartment(w http.ResponseWriter, r *http.Request) {
	h.saveApartment(w, r, engine.ApartmentID(chi.URLParam(r, "id")))
}

func (h *Handler) saveApartment(w http.ResponseWriter, r *http.Request, id engine.ApartmentID) {
	var req SaveApartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Address == "" {
		writeError(w, http.StatusBadRequest, "Address is required", nil)
		return
	}

	apartment := engine.Apartment{
		ID:            id,
		Address:       req.Address,
		LivingAreaSqm: req.LivingAreaSqm,
	}
	if req.AnnualPrepayment != nil {
		d, err := decimal.NewFromString(*req.AnnualPrepayment)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid annual_prepayment", err)
			return
		}
		apartment.AnnualPrepayment = &d
	}
	if req.CurrentTenantID != nil {
		tid := engine.TenantID(*req.CurrentTenantID)
		apartment.CurrentTenantID = &tid
	}

	saved, err := h.Store.SaveApartment(r.Context(), apartment)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save apartment", err)
		return
	}

	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	writeJSON(w, status, toApartmentDTO(saved))
}

// DeleteApartment removes an apartment.
func (h *Handler) DeleteApartment(w http.ResponseWriter, r *http.Request) {
	err := h.Store.DeleteApartment(r.Context(), engine.ApartmentID(chi.URLParam(r, "id")))
	if engine.IsNotFound(err) {
		writeError(w, http.StatusNotFound, "Apartment not found", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete apartment", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// COST TYPE HANDLERS
// =============================================================================

// ListCostTypes returns all cost types.
func (h *Handler) ListCostTypes(w http.ResponseWriter, r *http.Request) {
	costTypes, err := h.Store.ListCostTypes(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list cost types", err)
		return
	}

	dtos := make([]CostTypeDTO, len(costTypes))
	for i, ct := range costTypes {
		dtos[i] = toCostTypeDTO(ct)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateCostType creates a cost type.
func (h *Handler) CreateCostType(w http.ResponseWriter, r *http.Request) {
	h.saveCostType(w, r, "")
}

// UpdateCostType updates an existing cost type.
func (h *Handler) UpdateCostType(w http.ResponseWriter, r *http.Request) {
	h.saveCostType(w, r, engine.CostTypeID(chi.URLParam(r, "id")))
}

func (h *Handler) saveCostType(w http.ResponseWriter, r *http.Request, id engine.CostTypeID) {
	var req SaveCostTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Label == "" {
		writeError(w, http.StatusBadRequest, "Label is required", nil)
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid amount", err)
		return
	}

	saved, err := h.Store.SaveCostType(r.Context(), engine.CostType{
		ID: id, Label: req.Label, Description: req.Description, Amount: amount,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save cost type", err)
		return
	}

	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	writeJSON(w, status, toCostTypeDTO(saved))
}

// DeleteCostType removes a cost type.
func (h *Handler) DeleteCostType(w http.ResponseWriter, r *http.Request) {
	err := h.Store.DeleteCostType(r.Context(), engine.CostTypeID(chi.URLParam(r, "id")))
	if engine.IsNotFound(err) {
		writeError(w, http.StatusNotFound, "Cost type not found", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete cost type", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// OWNER HANDLERS
// =============================================================================

// ListOwners returns all owners.
func (h *Handler) ListOwners(w http.ResponseWriter, r *http.Request) {
	owners, err := h.Store.ListOwners(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list owners", err)
		return
	}

	dtos := make([]OwnerDTO, len(owners))
	for i, o := range owners {
		dtos[i] = toOwnerDTO(o)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateOwner creates an owner.
func (h *Handler) CreateOwner(w http.ResponseWriter, r *http.Request) {
	h.saveOwner(w, r, "")
}

// UpdateOwner updates an existing owner.
func (h *Handler) UpdateOwner(w http.ResponseWriter, r *http.Request) {
	h.saveOwner(w, r, engine.OwnerID(chi.URLParam(r, "id")))
}

func (h *Handler) saveOwner(w http.ResponseWriter, r *http.Request, id engine.OwnerID) {
	var req SaveOwnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required", nil)
		return
	}

	saved, err := h.Store.SaveOwner(r.Context(), engine.Owner{
		ID: id, Property: req.Property, Name: req.Name, StatementPeriod: req.StatementPeriod,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save owner", err)
		return
	}

	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	writeJSON(w, status, toOwnerDTO(saved))
}

// DeleteOwner removes an owner.
func (h *Handler) DeleteOwner(w http.ResponseWriter, r *http.Request) {
	err := h.Store.DeleteOwner(r.Context(), engine.OwnerID(chi.URLParam(r, "id")))
	if engine.IsNotFound(err) {
		writeError(w, http.StatusNotFound, "Owner not found", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete owner", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// PERIOD HANDLERS
// =============================================================================

// GetPeriods returns all periods overlapping the year for one apartment.
// GET /api/apartments/{id}/periods/{year}
func (h *Handler) GetPeriods(w http.ResponseWriter, r *http.Request) {
	apartmentID := engine.ApartmentID(chi.URLParam(r, "id"))
	year, ok := parseYear(w, r)
	if !ok {
		return
	}

	periods, warnings, err := h.Store.PeriodsForApartmentAndYear(r.Context(), apartmentID, year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load periods", err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Periods  []PeriodDTO  `json:"periods"`
		Warnings []WarningDTO `json:"warnings"`
	}{
		Periods:  toPeriodDTOs(periods),
		Warnings: toWarningDTOs(warnings),
	})
}

// ReplacePeriods atomically replaces the year's periods for one apartment.
// An empty period list is a valid reset.
// PUT /api/apartments/{id}/periods/{year}
func (h *Handler) ReplacePeriods(w http.ResponseWriter, r *http.Request) {
	apartmentID := engine.ApartmentID(chi.URLParam(r, "id"))
	year, ok := parseYear(w, r)
	if !ok {
		return
	}

	var req ReplacePeriodsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	periods := make([]engine.PrepaymentPeriod, 0, len(req.Periods))
	for _, dto := range req.Periods {
		p, err := parsePeriodDTO(dto)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid period", err)
			return
		}
		periods = append(periods, p)
	}

	warnings, err := h.Store.ReplaceForApartmentAndYear(r.Context(), apartmentID, year, periods)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to replace periods", err)
		return
	}

	writeJSON(w, http.StatusOK, ReplacePeriodsResponse{Warnings: toWarningDTOs(warnings)})
}

// =============================================================================
// STATEMENT HANDLERS
// =============================================================================

// ComputeStatement computes the statement for a year without persisting.
// POST /api/statements/{year}/compute
func (h *Handler) ComputeStatement(w http.ResponseWriter, r *http.Request) {
	h.computeStatement(w, r, false)
}

// SaveStatement computes the statement for a year and persists the lines.
// POST /api/statements/{year}
func (h *Handler) SaveStatement(w http.ResponseWriter, r *http.Request) {
	h.computeStatement(w, r, true)
}

func (h *Handler) computeStatement(w http.ResponseWriter, r *http.Request, persist bool) {
	ctx := r.Context()
	year, ok := parseYear(w, r)
	if !ok {
		return
	}

	var req ComputeStatementRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
	}

	apartments, err := h.Store.ListApartments(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list apartments", err)
		return
	}
	tenants, err := h.Store.ListTenants(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list tenants", err)
		return
	}
	costTypes, err := h.Store.ListCostTypes(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list cost types", err)
		return
	}

	var (
		periods  []engine.PrepaymentPeriod
		warnings []engine.Warning
	)
	for _, a := range apartments {
		ps, warns, err := h.Store.PeriodsForApartmentAndYear(ctx, a.ID, year)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load periods", err)
			return
		}
		periods = append(periods, ps...)
		warnings = append(warnings, warns...)
	}

	occupancy := make(map[engine.ApartmentID]int, len(req.OccupancyMonths))
	for id, months := range req.OccupancyMonths {
		occupancy[engine.ApartmentID(id)] = months
	}

	out := engine.ComputeAllocation(engine.AllocationInput{
		Apartments:      apartments,
		Tenants:         tenants,
		CostTypes:       costTypes,
		OccupancyMonths: occupancy,
		Periods:         periods,
		Year:            year,
	})
	warnings = append(warnings, out.Warnings...)

	if persist {
		if err := h.Store.SaveResultsForYear(ctx, year, out.Results); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save statement", err)
			return
		}
	}

	writeJSON(w, http.StatusOK, StatementDTO{
		Year:     year,
		Results:  toResultDTOs(out.Results),
		Warnings: toWarningDTOs(warnings),
	})
}

// GetStatement returns the stored statement lines for a year.
// GET /api/statements/{year}
func (h *Handler) GetStatement(w http.ResponseWriter, r *http.Request) {
	year, ok := parseYear(w, r)
	if !ok {
		return
	}

	results, err := h.Store.ResultsForYear(r.Context(), year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load statement", err)
		return
	}

	writeJSON(w, http.StatusOK, StatementDTO{
		Year:     year,
		Results:  toResultDTOs(results),
		Warnings: []WarningDTO{},
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func parseYear(w http.ResponseWriter, r *http.Request) (int, bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return 0, false
	}
	return year, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
