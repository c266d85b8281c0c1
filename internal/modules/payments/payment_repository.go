package payments

import (
	"context"
	"fmt"

	"field-sales/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type RepositoryInterface interface {
	Create(ctx context.Context, p *models.Payment) (*models.Payment, error)
	ListByCustomer(ctx context.Context, customerID string, page, limit int) ([]models.Payment, int, error)
	CustomerBalance(ctx context.Context, customerID string) (*models.CustomerBalance, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, p *models.Payment) (*models.Payment, error) {
	query := `
		INSERT INTO payments (customer_id, order_id, collected_by, amount, method, note, collected_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query,
		p.CustomerID, p.OrderID, p.CollectedBy, p.Amount, p.Method, p.Note, p.CollectedAt,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("repository.CreatePayment: %w", err)
	}
	return p, nil
}

func (r *Repository) ListByCustomer(ctx context.Context, customerID string, page, limit int) ([]models.Payment, int, error) {
	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM payments WHERE customer_id = $1`, customerID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repository.ListPayments: count: %w", err)
	}

	query := `
		SELECT id, customer_id, order_id, collected_by, amount, method, note, collected_at, created_at
		FROM payments
		WHERE customer_id = $1
		ORDER BY collected_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, customerID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("repository.ListPayments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(
			&p.ID, &p.CustomerID, &p.OrderID, &p.CollectedBy,
			&p.Amount, &p.Method, &p.Note, &p.CollectedAt, &p.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("repository.ListPayments: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, total, rows.Err()
}

// CustomerBalance sums non-cancelled order totals against collected payments.
func (r *Repository) CustomerBalance(ctx context.Context, customerID string) (*models.CustomerBalance, error) {
	balance := &models.CustomerBalance{CustomerID: customerID}
	query := `
		SELECT
			COALESCE((SELECT SUM(total) FROM orders WHERE customer_id = $1 AND status <> 'cancelled'), 0),
			COALESCE((SELECT SUM(amount) FROM payments WHERE customer_id = $1), 0)`
	if err := r.db.QueryRow(ctx, query, customerID).Scan(&balance.Ordered, &balance.Collected); err != nil {
		return nil, fmt.Errorf("repository.CustomerBalance: %w", err)
	}
	balance.Open = balance.Ordered - balance.Collected
	return balance, nil
}
