/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract. Monetary
  values travel as decimal strings ("123.45"), never as JSON numbers, so
  no float conversion ever touches money. Dates travel as "YYYY-MM-DD".

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

SEE ALSO:
  - handlers.go: Uses these types
  - engine/types.go: The domain model behind them
*/
package api

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hauswerk/cost-engine/engine"
)

const dateLayout = "2006-01-02"

// =============================================================================
// REFERENCE DATA
// =============================================================================

// TenantDTO represents a tenant in API responses.
type TenantDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// SaveTenantRequest creates or updates a tenant.
type SaveTenantRequest struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// ApartmentDTO represents an apartment in API responses.
type ApartmentDTO struct {
	ID               string  `json:"id"`
	Address          string  `json:"address"`
	LivingAreaSqm    int     `json:"living_area_sqm"`
	AnnualPrepayment *string `json:"annual_prepayment,omitempty"`
	CurrentTenantID  *string `json:"current_tenant_id,omitempty"`
}

// SaveApartmentRequest creates or updates an apartment.
type SaveApartmentRequest struct {
	Address          string  `json:"address"`
	LivingAreaSqm    int     `json:"living_area_sqm"`
	AnnualPrepayment *string `json:"annual_prepayment,omitempty"`
	CurrentTenantID  *string `json:"current_tenant_id,omitempty"`
}

// CostTypeDTO represents a shared cost position.
type CostTypeDTO struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Amount      string `json:"amount"`
}

// SaveCostTypeRequest creates or updates a cost type.
type SaveCostTypeRequest struct {
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Amount      string `json:"amount"`
}

// OwnerDTO represents a property owner.
type OwnerDTO struct {
	ID              string `json:"id"`
	Property        string `json:"property,omitempty"`
	Name            string `json:"name"`
	StatementPeriod string `json:"statement_period"`
}

// SaveOwnerRequest creates or updates an owner.
type SaveOwnerRequest struct {
	Property        string `json:"property,omitempty"`
	Name            string `json:"name"`
	StatementPeriod string `json:"statement_period"`
}

// =============================================================================
// PREPAYMENT PERIODS
// =============================================================================

// PeriodDTO represents one prepayment period.
type PeriodDTO struct {
	ID            string  `json:"id,omitempty"`
	ApartmentID   string  `json:"apartment_id"`
	TenantID      *string `json:"tenant_id,omitempty"`
	MonthlyAmount string  `json:"monthly_amount"`
	Start         string  `json:"start"`
	End           string  `json:"end"`
}

// ReplacePeriodsRequest replaces a year's periods for one apartment.
type ReplacePeriodsRequest struct {
	Periods []PeriodDTO `json:"periods"`
}

// ReplacePeriodsResponse reports the outcome of a replace.
type ReplacePeriodsResponse struct {
	Warnings []WarningDTO `json:"warnings"`
}

// =============================================================================
// STATEMENTS
// =============================================================================

// ComputeStatementRequest triggers a statement computation for one year.
// OccupancyMonths overrides occupancy per apartment ID; missing apartments
// default to 12 months.
type ComputeStatementRequest struct {
	OccupancyMonths map[string]int `json:"occupancy_months,omitempty"`
}

// AllocationResultDTO is one statement line.
type AllocationResultDTO struct {
	ApartmentID     string  `json:"apartment_id"`
	TenantID        *string `json:"tenant_id,omitempty"`
	TenantName      string  `json:"tenant_name"`
	LivingAreaSqm   int     `json:"living_area_sqm"`
	OccupancyMonths int     `json:"occupancy_months"`
	Units           int     `json:"units"`
	AllocatedCost   string  `json:"allocated_cost"`
	PrepaymentTotal string  `json:"prepayment_total"`
	Balance         string  `json:"balance"`
}

// StatementDTO is a computed (or stored) statement for one year.
type StatementDTO struct {
	Year     int                   `json:"year"`
	Results  []AllocationResultDTO `json:"results"`
	Warnings []WarningDTO          `json:"warnings"`
}

// WarningDTO is a structured data-quality warning.
type WarningDTO struct {
	Code        string `json:"code"`
	ApartmentID string `json:"apartment_id,omitempty"`
	Detail      string `json:"detail"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toTenantDTO(t engine.Tenant) TenantDTO {
	return TenantDTO{ID: string(t.ID), Name: t.Name, Email: t.Email, Phone: t.Phone}
}

func toApartmentDTO(a engine.Apartment) ApartmentDTO {
	dto := ApartmentDTO{
		ID:            string(a.ID),
		Address:       a.Address,
		LivingAreaSqm: a.LivingAreaSqm,
	}
	if a.AnnualPrepayment != nil {
		s := a.AnnualPrepayment.String()
		dto.AnnualPrepayment = &s
	}
	if a.CurrentTenantID != nil {
		s := string(*a.CurrentTenantID)
		dto.CurrentTenantID = &s
	}
	return dto
}

func toCostTypeDTO(ct engine.CostType) CostTypeDTO {
	return CostTypeDTO{
		ID:          string(ct.ID),
		Label:       ct.Label,
		Description: ct.Description,
		Amount:      ct.Amount.String(),
	}
}

func toOwnerDTO(o engine.Owner) OwnerDTO {
	return OwnerDTO{
		ID:              string(o.ID),
		Property:        o.Property,
		Name:            o.Name,
		StatementPeriod: o.StatementPeriod,
	}
}

func toPeriodDTO(p engine.PrepaymentPeriod) PeriodDTO {
	dto := PeriodDTO{
		ID:            p.ID,
		ApartmentID:   string(p.ApartmentID),
		MonthlyAmount: p.MonthlyAmount.String(),
		Start:         p.Start.Format(dateLayout),
		End:           p.End.Format(dateLayout),
	}
	if p.TenantID != nil {
		s := string(*p.TenantID)
		dto.TenantID = &s
	}
	return dto
}

func toPeriodDTOs(periods []engine.PrepaymentPeriod) []PeriodDTO {
	dtos := make([]PeriodDTO, len(periods))
	for i, p := range periods {
		dtos[i] = toPeriodDTO(p)
	}
	return dtos
}

func toResultDTO(r engine.AllocationResult) AllocationResultDTO {
	dto := AllocationResultDTO{
		ApartmentID:     string(r.ApartmentID),
		TenantName:      r.TenantName,
		LivingAreaSqm:   r.LivingAreaSqm,
		OccupancyMonths: r.OccupancyMonths,
		Units:           r.Units,
		AllocatedCost:   r.AllocatedCost.StringFixed(2),
		PrepaymentTotal: r.PrepaymentTotal.StringFixed(2),
		Balance:         r.Balance.StringFixed(2),
	}
	if r.TenantID != nil {
		s := string(*r.TenantID)
		dto.TenantID = &s
	}
	return dto
}

func toResultDTOs(results []engine.AllocationResult) []AllocationResultDTO {
	dtos := make([]AllocationResultDTO, len(results))
	for i, r := range results {
		dtos[i] = toResultDTO(r)
	}
	return dtos
}

func toWarningDTOs(warnings []engine.Warning) []WarningDTO {
	dtos := make([]WarningDTO, len(warnings))
	for i, w := range warnings {
		dtos[i] = WarningDTO{
			Code:        string(w.Code),
			ApartmentID: string(w.ApartmentID),
			Detail:      w.Detail,
		}
	}
	return dtos
}

func parsePeriodDTO(dto PeriodDTO) (engine.PrepaymentPeriod, error) {
	amount, err := decimal.NewFromString(dto.MonthlyAmount)
	if err != nil {
		return engine.PrepaymentPeriod{}, fmt.Errorf("invalid monthly_amount %q: %w", dto.MonthlyAmount, err)
	}
	start, err := time.ParseInLocation(dateLayout, dto.Start, time.UTC)
	if err != nil {
		return engine.PrepaymentPeriod{}, fmt.Errorf("invalid start %q: %w", dto.Start, err)
	}
	end, err := time.ParseInLocation(dateLayout, dto.End, time.UTC)
	if err != nil {
		return engine.PrepaymentPeriod{}, fmt.Errorf("invalid end %q: %w", dto.End, err)
	}

	p := engine.PrepaymentPeriod{
		ID:            dto.ID,
		ApartmentID:   engine.ApartmentID(dto.ApartmentID),
		MonthlyAmount: amount,
		Start:         start,
		End:           end,
	}
	if dto.TenantID != nil {
		tid := engine.TenantID(*dto.TenantID)
		p.TenantID = &tid
	}
	return p, nil
}
