package products_test

import (
	"bytes"
	"context"
	"testing"

	"field-sales/internal/models"
	"field-sales/internal/modules/products"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type mockRepo struct {
	createFn   func(ctx context.Context, p *models.Product) (*models.Product, error)
	findByIDFn func(ctx context.Context, productID string) (*models.Product, error)
	listFn     func(ctx context.Context, activeOnly bool, page, limit int) ([]models.Product, int, error)
	listAllFn  func(ctx context.Context, activeOnly bool) ([]models.Product, error)
	updateFn   func(ctx context.Context, productID string, data models.UpdateProductRequest) (*models.Product, error)
	deleteFn   func(ctx context.Context, productID string) error
}

var _ products.RepositoryInterface = (*mockRepo)(nil)

func (m *mockRepo) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	return m.createFn(ctx, p)
}
func (m *mockRepo) FindByID(ctx context.Context, productID string) (*models.Product, error) {
	return m.findByIDFn(ctx, productID)
}
func (m *mockRepo) List(ctx context.Context, activeOnly bool, page, limit int) ([]models.Product, int, error) {
	return m.listFn(ctx, activeOnly, page, limit)
}
func (m *mockRepo) ListAll(ctx context.Context, activeOnly bool) ([]models.Product, error) {
	return m.listAllFn(ctx, activeOnly)
}
func (m *mockRepo) Update(ctx context.Context, productID string, data models.UpdateProductRequest) (*models.Product, error) {
	return m.updateFn(ctx, productID, data)
}
func (m *mockRepo) Delete(ctx context.Context, productID string) error {
	return m.deleteFn(ctx, productID)
}

func TestCreateProduct(t *testing.T) {
	repo := &mockRepo{
		createFn: func(ctx context.Context, p *models.Product) (*models.Product, error) {
			p.ID = "prod-1"
			p.IsActive = true
			return p, nil
		},
	}
	svc := products.NewService(repo)

	created, err := svc.Create(context.Background(), models.CreateProductRequest{
		Code:      "TK-100",
		Name:      "Sesame Crackers 200g",
		Unit:      "box",
		UnitPrice: 38.50,
		VATRate:   10,
	})
	require.NoError(t, err)

	assert.Equal(t, "prod-1", created.ID)
	assert.Equal(t, "TK-100", created.Code)
	assert.True(t, created.IsActive)
}

func TestUpdateProduct_PartialFields(t *testing.T) {
	var gotData models.UpdateProductRequest
	repo := &mockRepo{
		updateFn: func(ctx context.Context, productID string, data models.UpdateProductRequest) (*models.Product, error) {
			gotData = data
			return &models.Product{ID: productID, UnitPrice: *data.UnitPrice}, nil
		},
	}
	svc := products.NewService(repo)

	price := 42.00
	updated, err := svc.Update(context.Background(), "prod-1", models.UpdateProductRequest{UnitPrice: &price})
	require.NoError(t, err)

	assert.InDelta(t, 42.00, updated.UnitPrice, 0.001)
	require.NotNil(t, gotData.UnitPrice)
	assert.Nil(t, gotData.Name)
}

func TestListProducts_EmptyIsNotNil(t *testing.T) {
	repo := &mockRepo{
		listFn: func(ctx context.Context, activeOnly bool, page, limit int) ([]models.Product, int, error) {
			return nil, 0, nil
		},
	}
	svc := products.NewService(repo)

	list, total, err := svc.List(context.Background(), true, 1, 20)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Zero(t, total)
}

func TestExportToExcel_RoundTrip(t *testing.T) {
	repo := &mockRepo{
		listAllFn: func(ctx context.Context, activeOnly bool) ([]models.Product, error) {
			return []models.Product{
				{Code: "TK-100", Name: "Sesame Crackers 200g", Unit: "box", UnitPrice: 38.50, VATRate: 10, IsActive: true},
				{Code: "TK-205", Name: "Grissini 125g", Unit: "box", UnitPrice: 21.00, VATRate: 10, IsActive: false},
			}, nil
		},
	}
	svc := products.NewService(repo)

	data, err := svc.ExportToExcel(context.Background(), false)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Products")
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + 2 products

	assert.Equal(t, "Code", rows[0][0])
	assert.Equal(t, "TK-100", rows[1][0])
	assert.Equal(t, "Grissini 125g", rows[2][1])
}
