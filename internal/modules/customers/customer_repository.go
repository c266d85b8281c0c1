package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"field-sales/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines methods for interacting with customer storage.
type RepositoryInterface interface {
	Create(ctx context.Context, c *models.Customer) (*models.Customer, error)
	BulkCreate(ctx context.Context, customers []models.Customer) (int, error)
	FindByID(ctx context.Context, customerID string) (*models.Customer, error)
	List(ctx context.Context, filter models.CustomerFilter, page, limit int) ([]models.Customer, int, error)
	ListAll(ctx context.Context, filter models.CustomerFilter) ([]models.Customer, error)
	Update(ctx context.Context, customerID string, data models.UpdateCustomerRequest) (*models.Customer, error)
	Delete(ctx context.Context, customerID string) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const customerColumns = `id, name, address, district, phone, tax_office, tax_number, cycle, status, created_at, updated_at`

func scanCustomer(row pgx.Row) (*models.Customer, error) {
	c := &models.Customer{}
	err := row.Scan(
		&c.ID, &c.Name, &c.Address, &c.District, &c.Phone,
		&c.TaxOffice, &c.TaxNumber, &c.Cycle, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan customer: %w", err)
	}
	return c, nil
}

func (r *Repository) Create(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	query := `
		INSERT INTO customers (name, address, district, phone, tax_office, tax_number, cycle, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'active')
		RETURNING ` + customerColumns
	row := r.db.QueryRow(ctx, query, c.Name, c.Address, c.District, c.Phone, c.TaxOffice, c.TaxNumber, c.Cycle)
	created, err := scanCustomer(row)
	if err != nil {
		return nil, fmt.Errorf("repository.CreateCustomer: %w", err)
	}
	return created, nil
}

// BulkCreate inserts all customers in a single transaction and returns how
// many rows were written. Used by the Excel import path.
func (r *Repository) BulkCreate(ctx context.Context, customers []models.Customer) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("repository.BulkCreate: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO customers (name, address, district, phone, tax_office, tax_number, cycle, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'active')`
	for _, c := range customers {
		if _, err := tx.Exec(ctx, query,
			c.Name, c.Address, c.District, c.Phone, c.TaxOffice, c.TaxNumber, c.Cycle,
		); err != nil {
			return 0, fmt.Errorf("repository.BulkCreate: insert %q: %w", c.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("repository.BulkCreate: commit: %w", err)
	}
	return len(customers), nil
}

func (r *Repository) FindByID(ctx context.Context, customerID string) (*models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return scanCustomer(r.db.QueryRow(ctx, query, customerID))
}

func (r *Repository) List(ctx context.Context, filter models.CustomerFilter, page, limit int) ([]models.Customer, int, error) {
	where, args := buildCustomerFilter(filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM customers` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repository.ListCustomers: count: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM customers%s ORDER BY name LIMIT $%d OFFSET $%d`,
		customerColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("repository.ListCustomers: %w", err)
	}
	defer rows.Close()

	customers, err := collectCustomers(rows)
	if err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

// ListAll returns every customer matching the filter without pagination.
// Used by the Excel export.
func (r *Repository) ListAll(ctx context.Context, filter models.CustomerFilter) ([]models.Customer, error) {
	where, args := buildCustomerFilter(filter)
	query := `SELECT ` + customerColumns + ` FROM customers` + where + ` ORDER BY name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("repository.ListAllCustomers: %w", err)
	}
	defer rows.Close()

	return collectCustomers(rows)
}

func buildCustomerFilter(filter models.CustomerFilter) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		clauses = append(clauses, fmt.Sprintf("(name ILIKE $%d OR district ILIKE $%d)", len(args), len(args)))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func collectCustomers(rows pgx.Rows) ([]models.Customer, error) {
	var customers []models.Customer
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Address, &c.District, &c.Phone,
			&c.TaxOffice, &c.TaxNumber, &c.Cycle, &c.Status, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *Repository) Update(ctx context.Context, customerID string, data models.UpdateCustomerRequest) (*models.Customer, error) {
	var setClauses []string
	var args []interface{}
	argIdx := 1

	addClause := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if data.Name != nil {
		addClause("name", *data.Name)
	}
	if data.Address != nil {
		addClause("address", *data.Address)
	}
	if data.District != nil {
		addClause("district", *data.District)
	}
	if data.Phone != nil {
		addClause("phone", *data.Phone)
	}
	if data.TaxOffice != nil {
		addClause("tax_office", *data.TaxOffice)
	}
	if data.TaxNumber != nil {
		addClause("tax_number", *data.TaxNumber)
	}
	if data.Cycle != nil {
		addClause("cycle", *data.Cycle)
	}
	if data.Status != nil {
		addClause("status", *data.Status)
	}

	if len(setClauses) == 0 {
		return r.FindByID(ctx, customerID)
	}

	addClause("updated_at", time.Now())
	args = append(args, customerID)

	query := fmt.Sprintf(`UPDATE customers SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "), argIdx, customerColumns)

	updated, err := scanCustomer(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.UpdateCustomer: %w", err)
	}
	return updated, nil
}

func (r *Repository) Delete(ctx context.Context, customerID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, customerID)
	if err != nil {
		return fmt.Errorf("repository.DeleteCustomer: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
