package orders

import (
	"context"
	"errors"
	"fmt"

	"field-sales/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for the order repository.
type RepositoryInterface interface {
	Create(ctx context.Context, customerID, salespersonID string, items []models.OrderItemRequest) (*models.Order, error)
	FindByID(ctx context.Context, orderID string) (*models.Order, error)
	ListBySalesperson(ctx context.Context, salespersonID string, page, limit int) ([]*models.Order, int, error)
	ListByCustomer(ctx context.Context, customerID string, page, limit int) ([]*models.Order, int, error)
	ListAll(ctx context.Context, page, limit int) ([]*models.Order, int, error)
	UpdateStatus(ctx context.Context, orderID, status string) (*models.Order, error)
}

// Repository implements the RepositoryInterface.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new order repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

// Create inserts the order and its items in one transaction. Unit prices are
// snapshotted from the catalog inside the same transaction, so a concurrent
// price change cannot split an order across two price lists.
func (r *Repository) Create(ctx context.Context, customerID, salespersonID string, items []models.OrderItemRequest) (*models.Order, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository.CreateOrder: %w", err)
	}
	defer tx.Rollback(ctx)

	order := &models.Order{
		CustomerID:    customerID,
		SalespersonID: salespersonID,
		Status:        models.OrderDraft,
	}
	if err := tx.QueryRow(ctx, `
		INSERT INTO orders (customer_id, salesperson_id, status, total)
		VALUES ($1, $2, 'draft', 0)
		RETURNING id, created_at, updated_at`,
		customerID, salespersonID,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return nil, fmt.Errorf("repository.CreateOrder: insert order: %w", err)
	}

	var total float64
	for _, item := range items {
		var name string
		var unitPrice float64
		err := tx.QueryRow(ctx,
			`SELECT name, unit_price FROM products WHERE id = $1 AND is_active`,
			item.ProductID,
		).Scan(&name, &unitPrice)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, models.ErrNotFound
			}
			return nil, fmt.Errorf("repository.CreateOrder: load product: %w", err)
		}

		line := models.OrderItem{
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Name:      name,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
		}
		if err := tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			order.ID, item.ProductID, item.Quantity, unitPrice,
		).Scan(&line.ID); err != nil {
			return nil, fmt.Errorf("repository.CreateOrder: insert item: %w", err)
		}

		order.Items = append(order.Items, line)
		total += unitPrice * float64(item.Quantity)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE orders SET total = $1 WHERE id = $2`, total, order.ID,
	); err != nil {
		return nil, fmt.Errorf("repository.CreateOrder: set total: %w", err)
	}
	order.Total = total

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repository.CreateOrder: commit: %w", err)
	}
	return order, nil
}

const orderColumns = `o.id, o.customer_id, c.name, o.salesperson_id, o.status, o.total, o.created_at, o.updated_at`

func scanOrder(row pgx.Row) (*models.Order, error) {
	var order models.Order
	err := row.Scan(
		&order.ID, &order.CustomerID, &order.CustomerName, &order.SalespersonID,
		&order.Status, &order.Total, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}
	return &order, nil
}

func (r *Repository) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders o JOIN customers c ON c.id = o.customer_id
		WHERE o.id = $1`
	order, err := scanOrder(r.db.QueryRow(ctx, query, orderID))
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT i.id, i.order_id, i.product_id, p.name, i.quantity, i.unit_price
		FROM order_items i JOIN products p ON p.id = i.product_id
		WHERE i.order_id = $1
		ORDER BY p.name`, orderID)
	if err != nil {
		return nil, fmt.Errorf("repository.FindOrderByID: items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("repository.FindOrderByID: items: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	return order, rows.Err()
}

func (r *Repository) ListBySalesperson(ctx context.Context, salespersonID string, page, limit int) ([]*models.Order, int, error) {
	return r.listWhere(ctx, "o.salesperson_id = $1", salespersonID, page, limit)
}

func (r *Repository) ListByCustomer(ctx context.Context, customerID string, page, limit int) ([]*models.Order, int, error) {
	return r.listWhere(ctx, "o.customer_id = $1", customerID, page, limit)
}

func (r *Repository) listWhere(ctx context.Context, clause, arg string, page, limit int) ([]*models.Order, int, error) {
	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders o WHERE `+clause, arg,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repository.ListOrders: count: %w", err)
	}

	query := `
		SELECT ` + orderColumns + `
		FROM orders o JOIN customers c ON c.id = o.customer_id
		WHERE ` + clause + `
		ORDER BY o.created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, arg, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("repository.ListOrders: %w", err)
	}
	defer rows.Close()

	orders, err := collectOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *Repository) ListAll(ctx context.Context, page, limit int) ([]*models.Order, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repository.ListAllOrders: count: %w", err)
	}

	query := `
		SELECT ` + orderColumns + `
		FROM orders o JOIN customers c ON c.id = o.customer_id
		ORDER BY o.created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("repository.ListAllOrders: %w", err)
	}
	defer rows.Close()

	orders, err := collectOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func collectOrders(rows pgx.Rows) ([]*models.Order, error) {
	var orders []*models.Order
	for rows.Next() {
		var order models.Order
		if err := rows.Scan(
			&order.ID, &order.CustomerID, &order.CustomerName, &order.SalespersonID,
			&order.Status, &order.Total, &order.CreatedAt, &order.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, &order)
	}
	return orders, rows.Err()
}

func (r *Repository) UpdateStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	query := `
		UPDATE orders o SET status = $1, updated_at = NOW()
		FROM customers c
		WHERE o.id = $2 AND c.id = o.customer_id
		RETURNING ` + orderColumns
	order, err := scanOrder(r.db.QueryRow(ctx, query, status, orderID))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.UpdateOrderStatus: %w", err)
	}
	return order, nil
}
