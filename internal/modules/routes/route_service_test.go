package routes_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"field-sales/internal/models"
	"field-sales/internal/modules/routes"
)

// mockRepo is a hand-written test double for routes.RepositoryInterface.
// Each method is a function field; tests set only the ones they need.
type mockRepo struct {
	listActiveCustomers  func(ctx context.Context) ([]models.Customer, error)
	findRouteForWeek     func(ctx context.Context, salespersonID string, weekStart time.Time) (*models.WeeklyRoute, error)
	createRouteWithStops func(ctx context.Context, route *models.WeeklyRoute, stops []models.RouteStop) (*models.WeeklyRoute, error)
	findRouteByID        func(ctx context.Context, routeID string) (*models.WeeklyRoute, error)
	listBySalesperson    func(ctx context.Context, salespersonID string, page, limit int) ([]*models.WeeklyRoute, int, error)
	deleteRoute          func(ctx context.Context, routeID string) error
	findStopByID         func(ctx context.Context, stopID string) (*models.RouteStop, error)
	finalizeStop         func(ctx context.Context, stopID, status string, visitDate time.Time, visitTime, notes string) (*models.RouteStop, error)
	updateStopCheckIn    func(ctx context.Context, stopID string, visited, barcodeScanned *bool) (*models.RouteStop, error)
}

func (m *mockRepo) ListActiveCustomers(ctx context.Context) ([]models.Customer, error) {
	return m.listActiveCustomers(ctx)
}
func (m *mockRepo) FindRouteForWeek(ctx context.Context, salespersonID string, weekStart time.Time) (*models.WeeklyRoute, error) {
	return m.findRouteForWeek(ctx, salespersonID, weekStart)
}
func (m *mockRepo) CreateRouteWithStops(ctx context.Context, route *models.WeeklyRoute, stops []models.RouteStop) (*models.WeeklyRoute, error) {
	return m.createRouteWithStops(ctx, route, stops)
}
func (m *mockRepo) FindRouteByID(ctx context.Context, routeID string) (*models.WeeklyRoute, error) {
	return m.findRouteByID(ctx, routeID)
}
func (m *mockRepo) ListBySalesperson(ctx context.Context, salespersonID string, page, limit int) ([]*models.WeeklyRoute, int, error) {
	return m.listBySalesperson(ctx, salespersonID, page, limit)
}
func (m *mockRepo) DeleteRoute(ctx context.Context, routeID string) error {
	return m.deleteRoute(ctx, routeID)
}
func (m *mockRepo) FindStopByID(ctx context.Context, stopID string) (*models.RouteStop, error) {
	return m.findStopByID(ctx, stopID)
}
func (m *mockRepo) FinalizeStop(ctx context.Context, stopID, status string, visitDate time.Time, visitTime, notes string) (*models.RouteStop, error) {
	return m.finalizeStop(ctx, stopID, status, visitDate, visitTime, notes)
}
func (m *mockRepo) UpdateStopCheckIn(ctx context.Context, stopID string, visited, barcodeScanned *bool) (*models.RouteStop, error) {
	return m.updateStopCheckIn(ctx, stopID, visited, barcodeScanned)
}

var _ routes.RepositoryInterface = (*mockRepo)(nil)

// ---- helpers ---------------------------------------------------------------

const salesperson = "sp-1"

// mixedPool matches the reference scenario: three active customers covering
// all cycles plus one inactive weekly customer.
func mixedPool() []models.Customer {
	return []models.Customer{
		{ID: "a", Name: "Alpha Grocers", Status: models.CustomerActive, Cycle: models.CycleEveryWeek},
		{ID: "b", Name: "Bakery Central", Status: models.CustomerActive, Cycle: models.CycleOddWeeks},
		{ID: "c", Name: "Corner Market", Status: models.CustomerActive, Cycle: models.CycleEvenWeeks},
		{ID: "d", Name: "Dockside Kiosk", Status: models.CustomerInactive, Cycle: models.CycleEveryWeek},
	}
}

// generationRepo returns a repo primed for a clean generation: no existing
// route, the mixed pool, and a create that echoes its input back.
func generationRepo(pool []models.Customer) *mockRepo {
	return &mockRepo{
		findRouteForWeek: func(_ context.Context, _ string, _ time.Time) (*models.WeeklyRoute, error) {
			return nil, models.ErrNotFound
		},
		listActiveCustomers: func(_ context.Context) ([]models.Customer, error) {
			return pool, nil
		},
		createRouteWithStops: func(_ context.Context, route *models.WeeklyRoute, stops []models.RouteStop) (*models.WeeklyRoute, error) {
			route.ID = "route-1"
			route.Stops = stops
			return route, nil
		},
	}
}

// ---- GenerateWeeklyRoute ---------------------------------------------------

func TestGenerateWeeklyRoute_WeekThreeScenario(t *testing.T) {
	svc := routes.NewService(generationRepo(mixedPool()))

	// Wednesday in week 3 of September 2025.
	target := time.Date(2025, time.September, 17, 0, 0, 0, 0, time.UTC)
	route, err := svc.GenerateWeeklyRoute(context.Background(), salesperson, target)

	require.NoError(t, err)
	// Route date is normalized to that week's Monday.
	assert.Equal(t, time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC), route.Date)
	assert.Equal(t, salesperson, route.SalespersonID)

	// Week 3: weekly and odd-week customers are due; even-week and inactive are not.
	require.Len(t, route.Stops, 2)
	assert.Equal(t, "a", route.Stops[0].CustomerID)
	assert.Equal(t, "b", route.Stops[1].CustomerID)
	for _, stop := range route.Stops {
		assert.Equal(t, models.StopPending, stop.Status)
		assert.Nil(t, stop.VisitDate)
		assert.Nil(t, stop.VisitTime)
	}
	assert.Contains(t, route.Stops[0].Notes, "YYYY cycle")
	assert.Contains(t, route.Stops[1].Notes, "YTYT cycle")
}

func TestGenerateWeeklyRoute_OneStopPerEligibleCustomer(t *testing.T) {
	pool := mixedPool()
	svc := routes.NewService(generationRepo(pool))

	// Week 2: weekly + even-week are due.
	target := time.Date(2025, time.September, 10, 0, 0, 0, 0, time.UTC)
	route, err := svc.GenerateWeeklyRoute(context.Background(), salesperson, target)

	require.NoError(t, err)
	require.Len(t, route.Stops, 2)

	seen := map[string]bool{}
	for _, stop := range route.Stops {
		assert.False(t, seen[stop.CustomerID], "duplicate stop for customer %s", stop.CustomerID)
		seen[stop.CustomerID] = true
	}
	assert.True(t, seen["a"])
	assert.True(t, seen["c"])
}

func TestGenerateWeeklyRoute_RejectsDuplicateWeek(t *testing.T) {
	r := generationRepo(mixedPool())
	r.findRouteForWeek = func(_ context.Context, _ string, _ time.Time) (*models.WeeklyRoute, error) {
		return &models.WeeklyRoute{ID: "existing"}, nil
	}
	svc := routes.NewService(r)

	_, err := svc.GenerateWeeklyRoute(context.Background(), salesperson, time.Now())

	assert.ErrorIs(t, err, models.ErrRouteExists)
}

func TestGenerateWeeklyRoute_NoEligibleCustomers(t *testing.T) {
	r := generationRepo(nil)
	createCalled := false
	r.createRouteWithStops = func(_ context.Context, route *models.WeeklyRoute, stops []models.RouteStop) (*models.WeeklyRoute, error) {
		createCalled = true
		return route, nil
	}
	svc := routes.NewService(r)

	_, err := svc.GenerateWeeklyRoute(context.Background(), salesperson, time.Now())

	assert.ErrorIs(t, err, models.ErrNoEligibleCustomers)
	assert.False(t, createCalled, "no route should be created for an empty eligible set")
}

func TestGenerateWeeklyRoute_CreateFailurePropagates(t *testing.T) {
	dbErr := errors.New("insert failed")
	r := generationRepo(mixedPool())
	r.createRouteWithStops = func(_ context.Context, _ *models.WeeklyRoute, _ []models.RouteStop) (*models.WeeklyRoute, error) {
		return nil, dbErr
	}
	svc := routes.NewService(r)

	_, err := svc.GenerateWeeklyRoute(context.Background(),
		salesperson, time.Date(2025, time.September, 17, 0, 0, 0, 0, time.UTC))

	assert.ErrorIs(t, err, dbErr)
}

func TestGenerateWeeklyRoute_UniquenessCheckFailurePropagates(t *testing.T) {
	dbErr := errors.New("db down")
	r := generationRepo(mixedPool())
	listCalled := false
	r.findRouteForWeek = func(_ context.Context, _ string, _ time.Time) (*models.WeeklyRoute, error) {
		return nil, dbErr
	}
	r.listActiveCustomers = func(_ context.Context) ([]models.Customer, error) {
		listCalled = true
		return nil, nil
	}
	svc := routes.NewService(r)

	_, err := svc.GenerateWeeklyRoute(context.Background(), salesperson, time.Now())

	assert.ErrorIs(t, err, dbErr)
	assert.False(t, listCalled)
}

// ---- GetRoute / DeleteRoute ------------------------------------------------

func TestGetRoute_ForbiddenForOtherSalesperson(t *testing.T) {
	r := &mockRepo{
		findRouteByID: func(_ context.Context, _ string) (*models.WeeklyRoute, error) {
			return &models.WeeklyRoute{ID: "route-1", SalespersonID: "someone-else"}, nil
		},
	}
	svc := routes.NewService(r)

	_, err := svc.GetRoute(context.Background(), "route-1", salesperson, models.RoleSalesperson)
	assert.ErrorIs(t, err, models.ErrForbidden)

	// Admins can read any route.
	route, err := svc.GetRoute(context.Background(), "route-1", salesperson, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "route-1", route.ID)
}

func TestDeleteRoute_OwnerOnly(t *testing.T) {
	deleted := false
	r := &mockRepo{
		findRouteByID: func(_ context.Context, _ string) (*models.WeeklyRoute, error) {
			return &models.WeeklyRoute{ID: "route-1", SalespersonID: salesperson}, nil
		},
		deleteRoute: func(_ context.Context, _ string) error {
			deleted = true
			return nil
		},
	}
	svc := routes.NewService(r)

	err := svc.DeleteRoute(context.Background(), "route-1", salesperson, models.RoleSalesperson)

	require.NoError(t, err)
	assert.True(t, deleted)
}

// ---- FinalizeStop ----------------------------------------------------------

func stopRepo(status string) *mockRepo {
	return &mockRepo{
		findStopByID: func(_ context.Context, stopID string) (*models.RouteStop, error) {
			return &models.RouteStop{ID: stopID, RouteID: "route-1", Status: status}, nil
		},
		findRouteByID: func(_ context.Context, routeID string) (*models.WeeklyRoute, error) {
			return &models.WeeklyRoute{ID: routeID, SalespersonID: salesperson}, nil
		},
	}
}

func TestFinalizeStop_Completed(t *testing.T) {
	r := stopRepo(models.StopPending)
	r.finalizeStop = func(_ context.Context, stopID, status string, visitDate time.Time, visitTime, notes string) (*models.RouteStop, error) {
		vt := visitTime
		return &models.RouteStop{ID: stopID, Status: status, VisitDate: &visitDate, VisitTime: &vt}, nil
	}
	svc := routes.NewService(r)

	stop, err := svc.FinalizeStop(context.Background(), "route-1", "stop-1", salesperson, models.RoleSalesperson,
		models.UpdateStopStatusRequest{Status: models.StopCompleted, VisitDate: "2025-09-17", VisitTime: "14:30"})

	require.NoError(t, err)
	assert.Equal(t, models.StopCompleted, stop.Status)
	require.NotNil(t, stop.VisitDate)
	assert.Equal(t, time.Date(2025, time.September, 17, 0, 0, 0, 0, time.UTC), *stop.VisitDate)
	require.NotNil(t, stop.VisitTime)
	assert.Equal(t, "14:30", *stop.VisitTime)
}

func TestFinalizeStop_DefaultsVisitTimestampToNow(t *testing.T) {
	var gotDate time.Time
	var gotTime string
	r := stopRepo(models.StopPending)
	r.finalizeStop = func(_ context.Context, stopID, status string, visitDate time.Time, visitTime, notes string) (*models.RouteStop, error) {
		gotDate, gotTime = visitDate, visitTime
		return &models.RouteStop{ID: stopID, Status: status}, nil
	}
	svc := routes.NewService(r)

	before := time.Now()
	_, err := svc.FinalizeStop(context.Background(), "route-1", "stop-1", salesperson, models.RoleSalesperson,
		models.UpdateStopStatusRequest{Status: models.StopSkipped})

	require.NoError(t, err)
	assert.False(t, gotDate.Before(before.Truncate(time.Minute)))
	assert.NotEmpty(t, gotTime)
}

func TestFinalizeStop_TerminalStatesAreFinal(t *testing.T) {
	for _, status := range []string{models.StopCompleted, models.StopSkipped} {
		svc := routes.NewService(stopRepo(status))

		_, err := svc.FinalizeStop(context.Background(), "route-1", "stop-1", salesperson, models.RoleSalesperson,
			models.UpdateStopStatusRequest{Status: models.StopCompleted})

		assert.ErrorIs(t, err, models.ErrStopFinalized, "status %s", status)
	}
}

func TestFinalizeStop_WrongRouteIsNotFound(t *testing.T) {
	finalized := false
	r := stopRepo(models.StopPending)
	r.finalizeStop = func(_ context.Context, stopID, status string, visitDate time.Time, visitTime, notes string) (*models.RouteStop, error) {
		finalized = true
		return &models.RouteStop{ID: stopID, Status: status}, nil
	}
	svc := routes.NewService(r)

	// The stop belongs to route-1; addressing it under another route must fail.
	_, err := svc.FinalizeStop(context.Background(), "route-2", "stop-1", salesperson, models.RoleSalesperson,
		models.UpdateStopStatusRequest{Status: models.StopCompleted})

	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.False(t, finalized)
}

func TestCheckInStop_WrongRouteIsNotFound(t *testing.T) {
	visited := true
	svc := routes.NewService(stopRepo(models.StopPending))

	_, err := svc.CheckInStop(context.Background(), "route-2", "stop-1", salesperson, models.RoleSalesperson,
		models.CheckInStopRequest{Visited: &visited})

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestFinalizeStop_ForbiddenForOtherSalesperson(t *testing.T) {
	r := stopRepo(models.StopPending)
	r.findRouteByID = func(_ context.Context, routeID string) (*models.WeeklyRoute, error) {
		return &models.WeeklyRoute{ID: routeID, SalespersonID: "someone-else"}, nil
	}
	svc := routes.NewService(r)

	_, err := svc.FinalizeStop(context.Background(), "route-1", "stop-1", salesperson, models.RoleSalesperson,
		models.UpdateStopStatusRequest{Status: models.StopCompleted})

	assert.ErrorIs(t, err, models.ErrForbidden)
}

// ---- CheckInStop -----------------------------------------------------------

func TestCheckInStop_SetsFlagsWithoutTouchingStatus(t *testing.T) {
	r := stopRepo(models.StopPending)
	r.updateStopCheckIn = func(_ context.Context, stopID string, visited, barcodeScanned *bool) (*models.RouteStop, error) {
		s := &models.RouteStop{ID: stopID, Status: models.StopPending}
		if visited != nil {
			s.Visited = *visited
		}
		if barcodeScanned != nil {
			s.BarcodeScanned = *barcodeScanned
		}
		return s, nil
	}
	svc := routes.NewService(r)

	visited := true
	stop, err := svc.CheckInStop(context.Background(), "route-1", "stop-1", salesperson, models.RoleSalesperson,
		models.CheckInStopRequest{Visited: &visited})

	require.NoError(t, err)
	assert.True(t, stop.Visited)
	assert.False(t, stop.BarcodeScanned)
	// Check-in is a side-flag only; the scheduling status stays pending.
	assert.Equal(t, models.StopPending, stop.Status)
}
