package customers_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"field-sales/internal/models"
	"field-sales/internal/modules/customers"
)

type mockRepo struct {
	create     func(ctx context.Context, c *models.Customer) (*models.Customer, error)
	bulkCreate func(ctx context.Context, cs []models.Customer) (int, error)
	findByID   func(ctx context.Context, id string) (*models.Customer, error)
	list       func(ctx context.Context, f models.CustomerFilter, page, limit int) ([]models.Customer, int, error)
	listAll    func(ctx context.Context, f models.CustomerFilter) ([]models.Customer, error)
	update     func(ctx context.Context, id string, data models.UpdateCustomerRequest) (*models.Customer, error)
	remove     func(ctx context.Context, id string) error
}

func (m *mockRepo) Create(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	return m.create(ctx, c)
}
func (m *mockRepo) BulkCreate(ctx context.Context, cs []models.Customer) (int, error) {
	return m.bulkCreate(ctx, cs)
}
func (m *mockRepo) FindByID(ctx context.Context, id string) (*models.Customer, error) {
	return m.findByID(ctx, id)
}
func (m *mockRepo) List(ctx context.Context, f models.CustomerFilter, page, limit int) ([]models.Customer, int, error) {
	return m.list(ctx, f, page, limit)
}
func (m *mockRepo) ListAll(ctx context.Context, f models.CustomerFilter) ([]models.Customer, error) {
	return m.listAll(ctx, f)
}
func (m *mockRepo) Update(ctx context.Context, id string, data models.UpdateCustomerRequest) (*models.Customer, error) {
	return m.update(ctx, id, data)
}
func (m *mockRepo) Delete(ctx context.Context, id string) error {
	return m.remove(ctx, id)
}

var _ customers.RepositoryInterface = (*mockRepo)(nil)

// ---- Create ----------------------------------------------------------------

func TestCreate_RejectsUnknownCycle(t *testing.T) {
	svc := customers.NewService(&mockRepo{})

	_, err := svc.Create(context.Background(), models.CreateCustomerRequest{
		Name:  "Alpha Grocers",
		Cycle: "WXYZ",
	})

	assert.ErrorIs(t, err, models.ErrInvalidCycle)
}

func TestCreate_Valid(t *testing.T) {
	r := &mockRepo{
		create: func(_ context.Context, c *models.Customer) (*models.Customer, error) {
			c.ID = "cust-1"
			c.Status = models.CustomerActive
			return c, nil
		},
	}
	svc := customers.NewService(r)

	got, err := svc.Create(context.Background(), models.CreateCustomerRequest{
		Name:  "Alpha Grocers",
		Cycle: models.CycleOddWeeks,
	})

	require.NoError(t, err)
	assert.Equal(t, "cust-1", got.ID)
	assert.Equal(t, models.CustomerActive, got.Status)
}

// ---- Update / Deactivate ---------------------------------------------------

func TestUpdate_RejectsUnknownCycle(t *testing.T) {
	svc := customers.NewService(&mockRepo{})

	bad := "NOPE"
	_, err := svc.Update(context.Background(), "cust-1", models.UpdateCustomerRequest{Cycle: &bad})

	assert.ErrorIs(t, err, models.ErrInvalidCycle)
}

func TestDeactivate_SetsStatusInactive(t *testing.T) {
	var gotStatus *string
	r := &mockRepo{
		update: func(_ context.Context, id string, data models.UpdateCustomerRequest) (*models.Customer, error) {
			gotStatus = data.Status
			return &models.Customer{ID: id, Status: *data.Status}, nil
		},
	}
	svc := customers.NewService(r)

	got, err := svc.Deactivate(context.Background(), "cust-1")

	require.NoError(t, err)
	require.NotNil(t, gotStatus)
	assert.Equal(t, models.CustomerInactive, *gotStatus)
	assert.Equal(t, models.CustomerInactive, got.Status)
}

// ---- Excel import/export ---------------------------------------------------

// importSheet builds an in-memory .xlsx with the given rows under the
// standard header.
func importSheet(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Customers"
	_, err := f.NewSheet(sheet)
	require.NoError(t, err)
	f.DeleteSheet("Sheet1")

	header := []interface{}{"Name", "Address", "District", "Phone", "Tax Office", "Tax Number", "Cycle", "Status"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	_, err = f.WriteTo(&buf)
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestImportFromExcel_SkipsBadRowsAndImportsRest(t *testing.T) {
	var inserted []models.Customer
	r := &mockRepo{
		bulkCreate: func(_ context.Context, cs []models.Customer) (int, error) {
			inserted = cs
			return len(cs), nil
		},
	}
	svc := customers.NewService(r)

	upload := importSheet(t, [][]interface{}{
		{"Alpha Grocers", "1 Main St", "Centre", "555-0100", "", "", "YYYY"},
		{"", "no name here", "", "", "", "", "YYYY"},     // missing name
		{"Bad Cycle Shop", "", "", "", "", "", "ZZZZ"},   // unknown cycle
		{"Bakery Central", "", "", "", "", "", "ytyt"},   // lowercase is normalized
		{"Default Cycle Co", "", "", "", "", "", ""},     // empty cycle defaults to weekly
	})

	result, err := svc.ImportFromExcel(context.Background(), upload)

	require.NoError(t, err)
	assert.Equal(t, 3, result.Imported)
	assert.Equal(t, 2, result.Skipped)
	assert.Len(t, result.Errors, 2)

	require.Len(t, inserted, 3)
	assert.Equal(t, models.CycleOddWeeks, inserted[1].Cycle)
	assert.Equal(t, models.CycleEveryWeek, inserted[2].Cycle)
}

func TestImportFromExcel_EmptySheet(t *testing.T) {
	bulkCalled := false
	r := &mockRepo{
		bulkCreate: func(_ context.Context, cs []models.Customer) (int, error) {
			bulkCalled = true
			return 0, nil
		},
	}
	svc := customers.NewService(r)

	result, err := svc.ImportFromExcel(context.Background(), importSheet(t, nil))

	require.NoError(t, err)
	assert.Zero(t, result.Imported)
	assert.False(t, bulkCalled)
}

func TestExportToExcel_RoundTripsThroughImportParser(t *testing.T) {
	r := &mockRepo{
		listAll: func(_ context.Context, _ models.CustomerFilter) ([]models.Customer, error) {
			return []models.Customer{
				{Name: "Alpha Grocers", District: "Centre", Cycle: models.CycleEveryWeek, Status: models.CustomerActive},
				{Name: "Bakery Central", Cycle: models.CycleOddWeeks, Status: models.CustomerInactive},
			}, nil
		},
	}
	svc := customers.NewService(r)

	data, err := svc.ExportToExcel(context.Background(), models.CustomerFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, data)

	parsed, rowErrors, err := customers.ParseCustomerImport(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Empty(t, rowErrors)
	require.Len(t, parsed, 2)
	assert.Equal(t, "Alpha Grocers", parsed[0].Name)
	assert.Equal(t, models.CycleOddWeeks, parsed[1].Cycle)
}
