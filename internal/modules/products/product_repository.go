package products

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

type RepositoryInterface interface {
	Create(ctx context.Context, p *models.Product) (*models.Product, error)
	FindByID(ctx context.Context, productID string) (*models.Product, error)
	List(ctx context.Context, activeOnly bool, page, limit int) ([]models.Product, int, error)
	ListAll(ctx context.Context, activeOnly bool) ([]models.Product, error)
	Update(ctx context.Context, productID string, data models.UpdateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, productID string) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const productColumns = `id, code, name, unit, unit_price, vat_rate, is_active, created_at, updated_at`

func scanProduct(row pgx.Row) (*models.Product, error) {
	p := &models.Product{}
	err := row.Scan(&p.ID, &p.Code, &p.Name, &p.Unit, &p.UnitPrice, &p.VATRate, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}
	return p, nil
}

func (r *Repository) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	query := `
		INSERT INTO products (code, name, unit, unit_price, vat_rate, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING ` + productColumns
	created, err := scanProduct(r.db.QueryRow(ctx, query, p.Code, p.Name, p.Unit, p.UnitPrice, p.VATRate))
	if err != nil {
		return nil, fmt.Errorf("repository.CreateProduct: %w", err)
	}
	return created, nil
}

func (r *Repository) FindByID(ctx context.Context, productID string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return scanProduct(r.db.QueryRow(ctx, query, productID))
}

func (r *Repository) List(ctx context.Context, activeOnly bool, page, limit int) ([]models.Product, int, error) {
	where := ""
	if activeOnly {
		where = " WHERE is_active"
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repository.ListProducts: count: %w", err)
	}

	query := `SELECT ` + productColumns + ` FROM products` + where + ` ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("repository.ListProducts: %w", err)
	}
	defer rows.Close()

	var out []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Unit, &p.UnitPrice, &p.VATRate, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("repository.ListProducts: %w", err)
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

// ListAll returns the unpaginated catalog, used by the Excel export.
func (r *Repository) ListAll(ctx context.Context, activeOnly bool) ([]models.Product, error) {
	where := ""
	if activeOnly {
		where = " WHERE is_active"
	}

	query := `SELECT ` + productColumns + ` FROM products` + where + ` ORDER BY code`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository.ListAllProducts: %w", err)
	}
	defer rows.Close()

	var out []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Unit, &p.UnitPrice, &p.VATRate, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("repository.ListAllProducts: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repository) Update(ctx context.Context, productID string, data models.UpdateProductRequest) (*models.Product, error) {
	var setClauses []string
	var args []interface{}

	addClause := func(column string, value interface{}) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if data.Code != nil {
		addClause("code", *data.Code)
	}
	if data.Name != nil {
		addClause("name", *data.Name)
	}
	if data.Unit != nil {
		addClause("unit", *data.Unit)
	}
	if data.UnitPrice != nil {
		addClause("unit_price", *data.UnitPrice)
	}
	if data.VATRate != nil {
		addClause("vat_rate", *data.VATRate)
	}
	if data.IsActive != nil {
		addClause("is_active", *data.IsActive)
	}

	if len(setClauses) == 0 {
		return r.FindByID(ctx, productID)
	}

	addClause("updated_at", time.Now())
	args = append(args, productID)

	query := fmt.Sprintf(`UPDATE products SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "), len(args), productColumns)
	updated, err := scanProduct(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.UpdateProduct: %w", err)
	}
	return updated, nil
}

func (r *Repository) Delete(ctx context.Context, productID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, productID)
	if err != nil {
		return fmt.Errorf("repository.DeleteProduct: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
