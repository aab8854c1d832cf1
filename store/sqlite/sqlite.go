/*
Package sqlite provides a SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Implements every persistence interface the engine consumes
  (engine.ReferenceStore, engine.PeriodStore, engine.ResultStore) plus the
  reference-data editing a statement application needs. The same patterns
  apply to MySQL/PostgreSQL - only minor SQL dialect differences.

ATOMIC REPLACEMENT:
  Prepayment periods are mutated exclusively through
  ReplaceForApartmentAndYear: one sql.Tx deletes every period overlapping
  the year and inserts the validated replacements. A reader never observes
  the delete without the insert. Statement results follow the same
  delete-then-insert pattern per year.

KEY TABLES:
  apartments, tenants, cost_types, owners:  reference data
  prepayment_periods:                       time-sliced advance schedules
  statement_results:                        archived statement lines

MONEY AND DATES:
  Decimal values are stored as TEXT and parsed with shopspring/decimal;
  REAL columns would reintroduce the float errors the engine avoids.
  Period dates are stored as ISO dates (YYYY-MM-DD) so the year-overlap
  test works with plain string comparison.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of WAL mode. Replaces for the
  same apartment and year serialize on the write lock; last writer wins.

USAGE:
  store, err := sqlite.New("./data/hauswerk.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - engine/store.go: Interface definitions and contracts
  - engine/store/memory.go: In-memory PeriodStore for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/hauswerk/cost-engine/engine"
)

const dateLayout = "2006-01-02"

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Tenants
	CREATE TABLE IF NOT EXISTS tenants (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		phone TEXT,
		created_at TEXT NOT NULL
	);

	-- Apartments
	CREATE TABLE IF NOT EXISTS apartments (
		id TEXT PRIMARY KEY,
		address TEXT NOT NULL,
		living_area_sqm INTEGER NOT NULL,
		annual_prepayment TEXT,
		current_tenant_id TEXT,
		created_at TEXT NOT NULL
	);

	-- Shared cost positions
	CREATE TABLE IF NOT EXISTS cost_types (
		id TEXT PRIMARY KEY,
		label TEXT NOT NULL,
		description TEXT,
		amount TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Property owners (statement headers)
	CREATE TABLE IF NOT EXISTS owners (
		id TEXT PRIMARY KEY,
		property TEXT,
		name TEXT NOT NULL,
		statement_period TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Time-sliced prepayment schedules. Mutated only via whole-year replace.
	CREATE TABLE IF NOT EXISTS prepayment_periods (
		id TEXT PRIMARY KEY,
		apartment_id TEXT NOT NULL,
		tenant_id TEXT,
		monthly_amount TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Year-overlap lookup (hot path for both read and replace)
	CREATE INDEX IF NOT EXISTS idx_periods_apartment_span
		ON prepayment_periods(apartment_id, start_date, end_date);

	-- Archived statement lines, replaced per year
	CREATE TABLE IF NOT EXISTS statement_results (
		id TEXT PRIMARY KEY,
		year INTEGER NOT NULL,
		apartment_id TEXT NOT NULL,
		tenant_id TEXT,
		tenant_name TEXT NOT NULL,
		living_area_sqm INTEGER NOT NULL,
		occupancy_months INTEGER NOT NULL,
		units INTEGER NOT NULL,
		allocated_cost TEXT NOT NULL,
		prepayment_total TEXT NOT NULL,
		balance TEXT NOT NULL,
		position INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		UNIQUE(year, apartment_id)
	);

	CREATE INDEX IF NOT EXISTS idx_statement_results_year
		ON statement_results(year);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// TENANT STORE
// =============================================================================

// SaveTenant inserts or updates a tenant. A missing ID is generated.
func (s *Store) SaveTenant(ctx context.Context, t engine.Tenant) (engine.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == "" {
		t.ID = engine.TenantID(uuid.NewString())
	}

	query := `
		INSERT INTO tenants (id, name, email, phone, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			phone = excluded.phone
	`

	_, err := s.db.ExecContext(ctx, query,
		t.ID, t.Name, nullString(t.Email), nullString(t.Phone),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return engine.Tenant{}, fmt.Errorf("failed to save tenant: %w", err)
	}
	return t, nil
}

// ListTenants returns all tenants.
func (s *Store) ListTenants(ctx context.Context) ([]engine.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, email, phone FROM tenants ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []engine.Tenant
	for rows.Next() {
		var (
			t            engine.Tenant
			email, phone sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.Name, &email, &phone); err != nil {
			return nil, err
		}
		t.Email = email.String
		t.Phone = phone.String
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

// DeleteTenant removes a tenant.
func (s *Store) DeleteTenant(ctx context.Context, id engine.TenantID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM tenants WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return engine.ErrTenantNotFound
	}
	return nil
}

// =============================================================================
// APARTMENT STORE
// =============================================================================

// SaveApartment inserts or updates an apartment. A missing ID is generated.
func (s *Store) SaveApartment(ctx context.Context, a engine.Apartment) (engine.Apartment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID == "" {
		a.ID = engine.ApartmentID(uuid.NewString())
	}

	query := `
		INSERT INTO apartments (id, address, living_area_sqm, annual_prepayment, current_tenant_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			address = excluded.address,
			living_area_sqm = excluded.living_area_sqm,
			annual_prepayment = excluded.annual_prepayment,
			current_tenant_id = excluded.current_tenant_id
	`

	_, err := s.db.ExecContext(ctx, query,
		a.ID, a.Address, a.LivingAreaSqm,
		nullDecimal(a.AnnualPrepayment),
		nullTenantID(a.CurrentTenantID),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return engine.Apartment{}, fmt.Errorf("failed to save apartment: %w", err)
	}
	return a, nil
}

// ListApartments returns all apartments.
func (s *Store) ListApartments(ctx context.Context) ([]engine.Apartment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, address, living_area_sqm, annual_prepayment, current_tenant_id FROM apartments ORDER BY address",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list apartments: %w", err)
	}
	defer rows.Close()

	var apartments []engine.Apartment
	for rows.Next() {
		a, err := scanApartment(rows)
		if err != nil {
			return nil, err
		}
		apartments = append(apartments, a)
	}
	return apartments, rows.Err()
}

// GetApartment retrieves an apartment by ID. Returns nil when absent.
func (s *Store) GetApartment(ctx context.Context, id engine.ApartmentID) (*engine.Apartment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, address, living_area_sqm, annual_prepayment, current_tenant_id FROM apartments WHERE id = ?",
		id,
	)

	a, err := scanApartment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// DeleteApartment removes an apartment.
func (s *Store) DeleteApartment(ctx context.Context, id engine.ApartmentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM apartments WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return engine.ErrApartmentNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApartment(row rowScanner) (engine.Apartment, error) {
	var (
		a          engine.Apartment
		prepayment sql.NullString
		tenantID   sql.NullString
	)
	if err := row.Scan(&a.ID, &a.Address, &a.LivingAreaSqm, &prepayment, &tenantID); err != nil {
		return a, err
	}
	if prepayment.Valid {
		d, err := decimal.NewFromString(prepayment.String)
		if err != nil {
			return a, fmt.Errorf("corrupt annual_prepayment for apartment %s: %w", a.ID, err)
		}
		a.AnnualPrepayment = &d
	}
	if tenantID.Valid {
		tid := engine.TenantID(tenantID.String)
		a.CurrentTenantID = &tid
	}
	return a, nil
}

// =============================================================================
// COST TYPE STORE
// =============================================================================

// SaveCostType inserts or updates a cost type. A missing ID is generated.
func (s *Store) SaveCostType(ctx context.Context, ct engine.CostType) (engine.CostType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ct.ID == "" {
		ct.ID = engine.CostTypeID(uuid.NewString())
	}

	query := `
		INSERT INTO cost_types (id, label, description, amount, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			label = excluded.label,
			description = excluded.description,
			amount = excluded.amount
	`

	_, err := s.db.ExecContext(ctx, query,
		ct.ID, ct.Label, nullString(ct.Description), ct.Amount.String(),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return engine.CostType{}, fmt.Errorf("failed to save cost type: %w", err)
	}
	return ct, nil
}

// ListCostTypes returns all cost types.
func (s *Store) ListCostTypes(ctx context.Context) ([]engine.CostType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, label, description, amount FROM cost_types ORDER BY label",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list cost types: %w", err)
	}
	defer rows.Close()

	var costTypes []engine.CostType
	for rows.Next() {
		var (
			ct          engine.CostType
			description sql.NullString
			amount      string
		)
		if err := rows.Scan(&ct.ID, &ct.Label, &description, &amount); err != nil {
			return nil, err
		}
		ct.Description = description.String
		var err error
		ct.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("corrupt amount for cost type %s: %w", ct.ID, err)
		}
		costTypes = append(costTypes, ct)
	}
	return costTypes, rows.Err()
}

// DeleteCostType removes a cost type.
func (s *Store) DeleteCostType(ctx context.Context, id engine.CostTypeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM cost_types WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return engine.ErrCostTypeNotFound
	}
	return nil
}

// =============================================================================
// OWNER STORE
// =============================================================================

// SaveOwner inserts or updates an owner. A missing ID is generated.
func (s *Store) SaveOwner(ctx context.Context, o engine.Owner) (engine.Owner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o.ID == "" {
		o.ID = engine.OwnerID(uuid.NewString())
	}

	query := `
		INSERT INTO owners (id, property, name, statement_period, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			property = excluded.property,
			name = excluded.name,
			statement_period = excluded.statement_period
	`

	_, err := s.db.ExecContext(ctx, query,
		o.ID, nullString(o.Property), o.Name, o.StatementPeriod,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return engine.Owner{}, fmt.Errorf("failed to save owner: %w", err)
	}
	return o, nil
}

// ListOwners returns all owners.
func (s *Store) ListOwners(ctx context.Context) ([]engine.Owner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, property, name, statement_period FROM owners ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list owners: %w", err)
	}
	defer rows.Close()

	var owners []engine.Owner
	for rows.Next() {
		var (
			o        engine.Owner
			property sql.NullString
		)
		if err := rows.Scan(&o.ID, &property, &o.Name, &o.StatementPeriod); err != nil {
			return nil, err
		}
		o.Property = property.String
		owners = append(owners, o)
	}
	return owners, rows.Err()
}

// DeleteOwner removes an owner.
func (s *Store) DeleteOwner(ctx context.Context, id engine.OwnerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM owners WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return engine.ErrOwnerNotFound
	}
	return nil
}

// =============================================================================
// PERIOD STORE (engine.PeriodStore interface)
// =============================================================================

// PeriodsForApartmentAndYear returns all periods overlapping the year:
// start_date <= Dec 31 AND end_date >= Jan 1.
func (s *Store) PeriodsForApartmentAndYear(ctx context.Context, apartmentID engine.ApartmentID, year int) ([]engine.PrepaymentPeriod, []engine.Warning, error) {
	if !engine.ValidYear(year) {
		return nil, []engine.Warning{{
			Code:        engine.WarnYearOutOfRange,
			ApartmentID: apartmentID,
			Detail:      fmt.Sprintf("unusual year %d, returning no periods", year),
		}}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	yearStart, yearEnd := engine.YearBounds(year)

	query := `
		SELECT id, apartment_id, tenant_id, monthly_amount, start_date, end_date
		FROM prepayment_periods
		WHERE apartment_id = ? AND start_date <= ? AND end_date >= ?
		ORDER BY start_date ASC
	`

	rows, err := s.db.QueryContext(ctx, query,
		apartmentID, yearEnd.Format(dateLayout), yearStart.Format(dateLayout))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query periods: %w", err)
	}
	defer rows.Close()

	var periods []engine.PrepaymentPeriod
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, nil, err
		}
		periods = append(periods, p)
	}
	return periods, nil, rows.Err()
}

// ReplaceForApartmentAndYear atomically deletes every period overlapping
// the year and inserts the valid subset of newPeriods. The delete and the
// batch insert run in one sql.Tx.
func (s *Store) ReplaceForApartmentAndYear(ctx context.Context, apartmentID engine.ApartmentID, year int, newPeriods []engine.PrepaymentPeriod) ([]engine.Warning, error) {
	if !engine.ValidYear(year) {
		return []engine.Warning{{
			Code:        engine.WarnYearOutOfRange,
			ApartmentID: apartmentID,
			Detail:      fmt.Sprintf("unusual year %d, no changes persisted", year),
		}}, nil
	}

	valid, warnings := engine.ValidatePeriodsForReplace(apartmentID, newPeriods)

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return warnings, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	yearStart, yearEnd := engine.YearBounds(year)
	_, err = tx.ExecContext(ctx,
		"DELETE FROM prepayment_periods WHERE apartment_id = ? AND start_date <= ? AND end_date >= ?",
		apartmentID, yearEnd.Format(dateLayout), yearStart.Format(dateLayout),
	)
	if err != nil {
		return warnings, fmt.Errorf("failed to delete periods: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, p := range valid {
		id := p.ID
		if id == "" {
			id = uuid.NewString()
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO prepayment_periods
				(id, apartment_id, tenant_id, monthly_amount, start_date, end_date, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, p.ApartmentID, nullTenantID(p.TenantID),
			p.MonthlyAmount.String(),
			p.Start.Format(dateLayout), p.End.Format(dateLayout),
			now,
		)
		if err != nil {
			return warnings, fmt.Errorf("failed to insert period: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return warnings, fmt.Errorf("failed to commit replace: %w", err)
	}
	return warnings, nil
}

func scanPeriod(rows *sql.Rows) (engine.PrepaymentPeriod, error) {
	var (
		p         engine.PrepaymentPeriod
		tenantID  sql.NullString
		amount    string
		startDate string
		endDate   string
	)

	if err := rows.Scan(&p.ID, &p.ApartmentID, &tenantID, &amount, &startDate, &endDate); err != nil {
		return p, fmt.Errorf("failed to scan period: %w", err)
	}

	if tenantID.Valid {
		tid := engine.TenantID(tenantID.String)
		p.TenantID = &tid
	}

	var err error
	p.MonthlyAmount, err = decimal.NewFromString(amount)
	if err != nil {
		return p, fmt.Errorf("corrupt monthly_amount for period %s: %w", p.ID, err)
	}
	p.Start, err = time.ParseInLocation(dateLayout, startDate, time.UTC)
	if err != nil {
		return p, fmt.Errorf("corrupt start_date for period %s: %w", p.ID, err)
	}
	p.End, err = time.ParseInLocation(dateLayout, endDate, time.UTC)
	if err != nil {
		return p, fmt.Errorf("corrupt end_date for period %s: %w", p.ID, err)
	}
	return p, nil
}

// =============================================================================
// RESULT STORE (engine.ResultStore interface)
// =============================================================================

// SaveResultsForYear replaces the stored statement lines for the year.
func (s *Store) SaveResultsForYear(ctx context.Context, year int, results []engine.AllocationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM statement_results WHERE year = ?", year); err != nil {
		return fmt.Errorf("failed to delete results: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for i, r := range results {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO statement_results
				(id, year, apartment_id, tenant_id, tenant_name, living_area_sqm,
				 occupancy_months, units, allocated_cost, prepayment_total, balance,
				 position, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), year, r.ApartmentID, nullTenantID(r.TenantID),
			r.TenantName, r.LivingAreaSqm, r.OccupancyMonths, r.Units,
			r.AllocatedCost.String(), r.PrepaymentTotal.String(), r.Balance.String(),
			i, now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert result: %w", err)
		}
	}

	return tx.Commit()
}

// ResultsForYear returns the stored statement lines for the year, in the
// order they were computed.
func (s *Store) ResultsForYear(ctx context.Context, year int) ([]engine.AllocationResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT apartment_id, tenant_id, tenant_name, living_area_sqm,
		       occupancy_months, units, allocated_cost, prepayment_total, balance
		FROM statement_results
		WHERE year = ?
		ORDER BY position ASC
	`

	rows, err := s.db.QueryContext(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []engine.AllocationResult
	for rows.Next() {
		var (
			r          engine.AllocationResult
			tenantID   sql.NullString
			allocated  string
			prepayment string
			balance    string
		)
		err := rows.Scan(&r.ApartmentID, &tenantID, &r.TenantName, &r.LivingAreaSqm,
			&r.OccupancyMonths, &r.Units, &allocated, &prepayment, &balance)
		if err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}

		if tenantID.Valid {
			tid := engine.TenantID(tenantID.String)
			r.TenantID = &tid
		}
		if r.AllocatedCost, err = decimal.NewFromString(allocated); err != nil {
			return nil, fmt.Errorf("corrupt allocated_cost: %w", err)
		}
		if r.PrepaymentTotal, err = decimal.NewFromString(prepayment); err != nil {
			return nil, fmt.Errorf("corrupt prepayment_total: %w", err)
		}
		if r.Balance, err = decimal.NewFromString(balance); err != nil {
			return nil, fmt.Errorf("corrupt balance: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Reset clears all tables. Dev/test helper.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{
		"statement_results", "prepayment_periods", "cost_types",
		"apartments", "tenants", "owners",
	}
	for _, t := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+t); err != nil {
			return fmt.Errorf("failed to reset %s: %w", t, err)
		}
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTenantID(id *engine.TenantID) sql.NullString {
	if id == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*id), Valid: true}
}

func nullDecimal(d *decimal.Decimal) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}
