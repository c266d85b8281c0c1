package routes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"field-sales/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the storage operations the route scheduler and
// its handlers need.
type RepositoryInterface interface {
	ListActiveCustomers(ctx context.Context) ([]models.Customer, error)

	FindRouteForWeek(ctx context.Context, salespersonID string, weekStart time.Time) (*models.WeeklyRoute, error)
	CreateRouteWithStops(ctx context.Context, route *models.WeeklyRoute, stops []models.RouteStop) (*models.WeeklyRoute, error)
	FindRouteByID(ctx context.Context, routeID string) (*models.WeeklyRoute, error)
	ListBySalesperson(ctx context.Context, salespersonID string, page, limit int) ([]*models.WeeklyRoute, int, error)
	DeleteRoute(ctx context.Context, routeID string) error

	FindStopByID(ctx context.Context, stopID string) (*models.RouteStop, error)
	FinalizeStop(ctx context.Context, stopID, status string, visitDate time.Time, visitTime, notes string) (*models.RouteStop, error)
	UpdateStopCheckIn(ctx context.Context, stopID string, visited, barcodeScanned *bool) (*models.RouteStop, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

// ListActiveCustomers returns every active customer; cycle filtering happens
// in the service, not in SQL.
func (r *Repository) ListActiveCustomers(ctx context.Context) ([]models.Customer, error) {
	query := `
		SELECT id, name, address, district, phone, tax_office, tax_number, cycle, status, created_at, updated_at
		FROM customers
		WHERE status = 'active'
		ORDER BY name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository.ListActiveCustomers: %w", err)
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Address, &c.District, &c.Phone,
			&c.TaxOffice, &c.TaxNumber, &c.Cycle, &c.Status, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("repository.ListActiveCustomers: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *Repository) FindRouteForWeek(ctx context.Context, salespersonID string, weekStart time.Time) (*models.WeeklyRoute, error) {
	route := &models.WeeklyRoute{}
	query := `SELECT id, salesperson_id, date, created_at FROM weekly_routes WHERE salesperson_id = $1 AND date = $2`
	err := r.db.QueryRow(ctx, query, salespersonID, weekStart).Scan(
		&route.ID, &route.SalespersonID, &route.Date, &route.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindRouteForWeek: %w", err)
	}
	return route, nil
}

// CreateRouteWithStops inserts the route and all of its stops in one
// transaction. Either everything lands or nothing does, so a failed stop
// insert can never leave an orphan route behind.
func (r *Repository) CreateRouteWithStops(ctx context.Context, route *models.WeeklyRoute, stops []models.RouteStop) (*models.WeeklyRoute, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository.CreateRouteWithStops: %w", err)
	}
	defer tx.Rollback(ctx)

	routeQuery := `
		INSERT INTO weekly_routes (salesperson_id, date)
		VALUES ($1, $2)
		RETURNING id, created_at`
	if err := tx.QueryRow(ctx, routeQuery, route.SalespersonID, route.Date).
		Scan(&route.ID, &route.CreatedAt); err != nil {
		return nil, fmt.Errorf("repository.CreateRouteWithStops: insert route: %w", err)
	}

	stopQuery := `
		INSERT INTO route_stops (route_id, customer_id, status, visit_date, visit_time, notes)
		VALUES ($1, $2, $3, NULL, NULL, $4)
		RETURNING id, created_at, updated_at`
	for i := range stops {
		stops[i].RouteID = route.ID
		if err := tx.QueryRow(ctx, stopQuery,
			route.ID, stops[i].CustomerID, stops[i].Status, stops[i].Notes,
		).Scan(&stops[i].ID, &stops[i].CreatedAt, &stops[i].UpdatedAt); err != nil {
			return nil, fmt.Errorf("repository.CreateRouteWithStops: insert stop: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repository.CreateRouteWithStops: commit: %w", err)
	}

	route.Stops = stops
	return route, nil
}

func (r *Repository) FindRouteByID(ctx context.Context, routeID string) (*models.WeeklyRoute, error) {
	route := &models.WeeklyRoute{}
	query := `SELECT id, salesperson_id, date, created_at FROM weekly_routes WHERE id = $1`
	err := r.db.QueryRow(ctx, query, routeID).Scan(
		&route.ID, &route.SalespersonID, &route.Date, &route.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindRouteByID: %w", err)
	}

	stops, err := r.listStops(ctx, routeID)
	if err != nil {
		return nil, err
	}
	route.Stops = stops
	return route, nil
}

func (r *Repository) listStops(ctx context.Context, routeID string) ([]models.RouteStop, error) {
	query := `
		SELECT s.id, s.route_id, s.customer_id, c.name, s.status,
		       s.visit_date, s.visit_time, s.visited, s.barcode_scanned, s.notes,
		       s.created_at, s.updated_at
		FROM route_stops s
		JOIN customers c ON c.id = s.customer_id
		WHERE s.route_id = $1
		ORDER BY c.name`
	rows, err := r.db.Query(ctx, query, routeID)
	if err != nil {
		return nil, fmt.Errorf("repository.listStops: %w", err)
	}
	defer rows.Close()

	var stops []models.RouteStop
	for rows.Next() {
		var s models.RouteStop
		if err := rows.Scan(
			&s.ID, &s.RouteID, &s.CustomerID, &s.CustomerName, &s.Status,
			&s.VisitDate, &s.VisitTime, &s.Visited, &s.BarcodeScanned, &s.Notes,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("repository.listStops: %w", err)
		}
		stops = append(stops, s)
	}
	return stops, rows.Err()
}

func (r *Repository) ListBySalesperson(ctx context.Context, salespersonID string, page, limit int) ([]*models.WeeklyRoute, int, error) {
	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM weekly_routes WHERE salesperson_id = $1`, salespersonID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repository.ListBySalesperson: count: %w", err)
	}

	query := `
		SELECT id, salesperson_id, date, created_at
		FROM weekly_routes
		WHERE salesperson_id = $1
		ORDER BY date DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, salespersonID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("repository.ListBySalesperson: %w", err)
	}
	defer rows.Close()

	var routesOut []*models.WeeklyRoute
	for rows.Next() {
		route := &models.WeeklyRoute{}
		if err := rows.Scan(&route.ID, &route.SalespersonID, &route.Date, &route.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("repository.ListBySalesperson: %w", err)
		}
		routesOut = append(routesOut, route)
	}
	return routesOut, total, rows.Err()
}

func (r *Repository) DeleteRoute(ctx context.Context, routeID string) error {
	// route_stops has ON DELETE CASCADE on route_id
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM weekly_routes WHERE id = $1`, routeID)
	if err != nil {
		return fmt.Errorf("repository.DeleteRoute: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *Repository) FindStopByID(ctx context.Context, stopID string) (*models.RouteStop, error) {
	s := &models.RouteStop{}
	query := `
		SELECT s.id, s.route_id, s.customer_id, c.name, s.status,
		       s.visit_date, s.visit_time, s.visited, s.barcode_scanned, s.notes,
		       s.created_at, s.updated_at
		FROM route_stops s
		JOIN customers c ON c.id = s.customer_id
		WHERE s.id = $1`
	err := r.db.QueryRow(ctx, query, stopID).Scan(
		&s.ID, &s.RouteID, &s.CustomerID, &s.CustomerName, &s.Status,
		&s.VisitDate, &s.VisitTime, &s.Visited, &s.BarcodeScanned, &s.Notes,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindStopByID: %w", err)
	}
	return s, nil
}

// FinalizeStop moves a pending stop to completed or skipped and records the
// visit timestamp. The WHERE clause rejects stops already in a terminal state.
func (r *Repository) FinalizeStop(ctx context.Context, stopID, status string, visitDate time.Time, visitTime, notes string) (*models.RouteStop, error) {
	s := &models.RouteStop{}
	query := `
		UPDATE route_stops
		SET status = $1, visit_date = $2, visit_time = $3,
		    notes = CASE WHEN $4 <> '' THEN $4 ELSE notes END,
		    updated_at = NOW()
		WHERE id = $5 AND status = 'pending'
		RETURNING id, route_id, customer_id, status, visit_date, visit_time, visited, barcode_scanned, notes, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, status, visitDate, visitTime, notes, stopID).Scan(
		&s.ID, &s.RouteID, &s.CustomerID, &s.Status,
		&s.VisitDate, &s.VisitTime, &s.Visited, &s.BarcodeScanned, &s.Notes,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either the stop does not exist or it is already finalized;
			// the service distinguishes the two with FindStopByID.
			return nil, models.ErrStopFinalized
		}
		return nil, fmt.Errorf("repository.FinalizeStop: %w", err)
	}
	return s, nil
}

func (r *Repository) UpdateStopCheckIn(ctx context.Context, stopID string, visited, barcodeScanned *bool) (*models.RouteStop, error) {
	s := &models.RouteStop{}
	query := `
		UPDATE route_stops
		SET visited = COALESCE($1, visited),
		    barcode_scanned = COALESCE($2, barcode_scanned),
		    updated_at = NOW()
		WHERE id = $3
		RETURNING id, route_id, customer_id, status, visit_date, visit_time, visited, barcode_scanned, notes, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, visited, barcodeScanned, stopID).Scan(
		&s.ID, &s.RouteID, &s.CustomerID, &s.Status,
		&s.VisitDate, &s.VisitTime, &s.Visited, &s.BarcodeScanned, &s.Notes,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.UpdateStopCheckIn: %w", err)
	}
	return s, nil
}
