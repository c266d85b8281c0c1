package orders_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"field-sales/internal/models"
	"field-sales/internal/modules/orders"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	createOrderFn func(ctx context.Context, salespersonID string, req models.CreateOrderRequest) (*models.Order, error)
}

var _ orders.ServiceInterface = (*mockService)(nil)

func (m *mockService) CreateOrder(ctx context.Context, salespersonID string, req models.CreateOrderRequest) (*models.Order, error) {
	return m.createOrderFn(ctx, salespersonID, req)
}
func (m *mockService) GetOrder(ctx context.Context, orderID, requesterID, role string) (*models.Order, error) {
	panic("not used")
}
func (m *mockService) ListMyOrders(ctx context.Context, salespersonID string, page, limit int) ([]*models.Order, int, error) {
	panic("not used")
}
func (m *mockService) ListCustomerOrders(ctx context.Context, customerID string, page, limit int) ([]*models.Order, int, error) {
	panic("not used")
}
func (m *mockService) ListAllOrders(ctx context.Context, page, limit int) ([]*models.Order, int, error) {
	panic("not used")
}
func (m *mockService) UpdateStatus(ctx context.Context, orderID, requesterID, role string, req models.UpdateOrderStatusRequest) (*models.Order, error) {
	panic("not used")
}
func (m *mockService) CancelOrder(ctx context.Context, orderID, requesterID, role string) (*models.Order, error) {
	panic("not used")
}

func createOrderContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("userID", "sp-1")
	c.Set("userRole", models.RoleSalesperson)
	return c, rec
}

func TestCreateOrder_WholeQuantityAccepted(t *testing.T) {
	var got models.CreateOrderRequest
	h := orders.NewHandler(&mockService{
		createOrderFn: func(ctx context.Context, salespersonID string, req models.CreateOrderRequest) (*models.Order, error) {
			got = req
			return &models.Order{ID: "ord-1", CustomerID: req.CustomerID, SalespersonID: salespersonID}, nil
		},
	})

	c, rec := createOrderContext(`{"customer_id":"cust-1","items":[{"product_id":"prod-1","quantity":3}]}`)
	require.NoError(t, h.CreateOrder(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 3, got.Items[0].Quantity)
}

func TestCreateOrder_FractionalQuantityRejected(t *testing.T) {
	called := false
	h := orders.NewHandler(&mockService{
		createOrderFn: func(ctx context.Context, salespersonID string, req models.CreateOrderRequest) (*models.Order, error) {
			called = true
			return nil, nil
		},
	})

	// Quantities are whole units; 1.5 must fail binding, not round silently.
	c, rec := createOrderContext(`{"customer_id":"cust-1","items":[{"product_id":"prod-1","quantity":1.5}]}`)
	require.NoError(t, h.CreateOrder(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called)
}

func TestCreateOrder_ZeroQuantityRejected(t *testing.T) {
	called := false
	h := orders.NewHandler(&mockService{
		createOrderFn: func(ctx context.Context, salespersonID string, req models.CreateOrderRequest) (*models.Order, error) {
			called = true
			return nil, nil
		},
	})

	c, rec := createOrderContext(`{"customer_id":"cust-1","items":[{"product_id":"prod-1","quantity":0}]}`)
	require.NoError(t, h.CreateOrder(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called)
}
