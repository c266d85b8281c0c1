package routes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"field-sales/internal/models"
)

// ServiceInterface defines the business logic around weekly route planning.
type ServiceInterface interface {
	GenerateWeeklyRoute(ctx context.Context, salespersonID string, targetDate time.Time) (*models.WeeklyRoute, error)
	GetRoute(ctx context.Context, routeID, requesterID, role string) (*models.WeeklyRoute, error)
	ListMyRoutes(ctx context.Context, salespersonID string, page, limit int) ([]*models.WeeklyRoute, int, error)
	DeleteRoute(ctx context.Context, routeID, requesterID, role string) error

	FinalizeStop(ctx context.Context, routeID, stopID, requesterID, role string, req models.UpdateStopStatusRequest) (*models.RouteStop, error)
	CheckInStop(ctx context.Context, routeID, stopID, requesterID, role string, req models.CheckInStopRequest) (*models.RouteStop, error)
}

type Service struct {
	repo RepositoryInterface
	now  func() time.Time
}

func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo, now: time.Now}
}

// GenerateWeeklyRoute builds the automated route for the week containing
// targetDate: every active customer whose cycle matches the week of month
// gets one pending stop. The route and its stops are written atomically, and
// a second generation for the same salesperson and week is rejected instead
// of duplicated.
func (s *Service) GenerateWeeklyRoute(ctx context.Context, salespersonID string, targetDate time.Time) (*models.WeeklyRoute, error) {
	weekStart := WeekStart(targetDate)

	_, err := s.repo.FindRouteForWeek(ctx, salespersonID, weekStart)
	if err == nil {
		return nil, models.ErrRouteExists
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("service.GenerateWeeklyRoute: %w", err)
	}

	pool, err := s.repo.ListActiveCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.GenerateWeeklyRoute: %w", err)
	}

	eligible := EligibleCustomers(pool, targetDate)
	if len(eligible) == 0 {
		return nil, models.ErrNoEligibleCustomers
	}

	stops := make([]models.RouteStop, len(eligible))
	for i, c := range eligible {
		stops[i] = models.RouteStop{
			CustomerID:   c.ID,
			CustomerName: c.Name,
			Status:       models.StopPending,
			Notes:        fmt.Sprintf("Scheduled for weekly visit (%s cycle)", c.Cycle),
		}
	}

	route := &models.WeeklyRoute{
		SalespersonID: salespersonID,
		Date:          weekStart,
	}
	created, err := s.repo.CreateRouteWithStops(ctx, route, stops)
	if err != nil {
		return nil, fmt.Errorf("service.GenerateWeeklyRoute: %w", err)
	}
	return created, nil
}

func (s *Service) GetRoute(ctx context.Context, routeID, requesterID, role string) (*models.WeeklyRoute, error) {
	route, err := s.repo.FindRouteByID(ctx, routeID)
	if err != nil {
		return nil, err
	}
	if route.SalespersonID != requesterID && role != models.RoleAdmin {
		return nil, models.ErrForbidden
	}
	return route, nil
}

func (s *Service) ListMyRoutes(ctx context.Context, salespersonID string, page, limit int) ([]*models.WeeklyRoute, int, error) {
	routesOut, total, err := s.repo.ListBySalesperson(ctx, salespersonID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ListMyRoutes: %w", err)
	}
	if routesOut == nil {
		routesOut = []*models.WeeklyRoute{}
	}
	return routesOut, total, nil
}

func (s *Service) DeleteRoute(ctx context.Context, routeID, requesterID, role string) error {
	route, err := s.repo.FindRouteByID(ctx, routeID)
	if err != nil {
		return err
	}
	if route.SalespersonID != requesterID && role != models.RoleAdmin {
		return models.ErrForbidden
	}
	return s.repo.DeleteRoute(ctx, routeID)
}

// FinalizeStop moves a pending stop to completed or skipped. The visit date
// and time default to "now" when the request leaves them out; once finalized
// a stop never changes status again.
func (s *Service) FinalizeStop(ctx context.Context, routeID, stopID, requesterID, role string, req models.UpdateStopStatusRequest) (*models.RouteStop, error) {
	stop, err := s.authorizedStop(ctx, routeID, stopID, requesterID, role)
	if err != nil {
		return nil, err
	}
	if stop.Status != models.StopPending {
		return nil, models.ErrStopFinalized
	}

	now := s.now()
	visitDate := now
	if req.VisitDate != "" {
		visitDate, err = time.Parse("2006-01-02", req.VisitDate)
		if err != nil {
			return nil, fmt.Errorf("service.FinalizeStop: parse visit_date: %w", err)
		}
	}
	visitTime := req.VisitTime
	if visitTime == "" {
		visitTime = now.Format("15:04")
	}

	return s.repo.FinalizeStop(ctx, stopID, req.Status, visitDate, visitTime, req.Notes)
}

// CheckInStop flips the physical check-in flags without touching the
// scheduling status; status stays authoritative for planning.
func (s *Service) CheckInStop(ctx context.Context, routeID, stopID, requesterID, role string, req models.CheckInStopRequest) (*models.RouteStop, error) {
	if _, err := s.authorizedStop(ctx, routeID, stopID, requesterID, role); err != nil {
		return nil, err
	}
	return s.repo.UpdateStopCheckIn(ctx, stopID, req.Visited, req.BarcodeScanned)
}

func (s *Service) authorizedStop(ctx context.Context, routeID, stopID, requesterID, role string) (*models.RouteStop, error) {
	stop, err := s.repo.FindStopByID(ctx, stopID)
	if err != nil {
		return nil, err
	}
	// A stop is only addressable under the route it belongs to.
	if stop.RouteID != routeID {
		return nil, models.ErrNotFound
	}
	route, err := s.repo.FindRouteByID(ctx, stop.RouteID)
	if err != nil {
		return nil, err
	}
	if route.SalespersonID != requesterID && role != models.RoleAdmin {
		return nil, models.ErrForbidden
	}
	return stop, nil
}
