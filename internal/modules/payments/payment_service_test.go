package payments_test

import (
	"context"
	"testing"
	"time"

	"field-sales/internal/models"
	"field-sales/internal/modules/payments"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	createFn          func(ctx context.Context, p *models.Payment) (*models.Payment, error)
	listByCustomerFn  func(ctx context.Context, customerID string, page, limit int) ([]models.Payment, int, error)
	customerBalanceFn func(ctx context.Context, customerID string) (*models.CustomerBalance, error)
}

var _ payments.RepositoryInterface = (*mockRepo)(nil)

func (m *mockRepo) Create(ctx context.Context, p *models.Payment) (*models.Payment, error) {
	return m.createFn(ctx, p)
}
func (m *mockRepo) ListByCustomer(ctx context.Context, customerID string, page, limit int) ([]models.Payment, int, error) {
	return m.listByCustomerFn(ctx, customerID, page, limit)
}
func (m *mockRepo) CustomerBalance(ctx context.Context, customerID string) (*models.CustomerBalance, error) {
	return m.customerBalanceFn(ctx, customerID)
}

func TestRecordPayment_DefaultsCollectedAt(t *testing.T) {
	var got *models.Payment
	repo := &mockRepo{
		createFn: func(ctx context.Context, p *models.Payment) (*models.Payment, error) {
			got = p
			p.ID = "pay-1"
			return p, nil
		},
	}
	svc := payments.NewService(repo)

	before := time.Now()
	created, err := svc.RecordPayment(context.Background(), "sp-1", models.CreatePaymentRequest{
		CustomerID: "cust-1",
		Amount:     450.00,
		Method:     models.PaymentCash,
	})
	require.NoError(t, err)

	assert.Equal(t, "pay-1", created.ID)
	assert.Equal(t, "sp-1", got.CollectedBy)
	assert.False(t, got.CollectedAt.Before(before))
	assert.False(t, got.CollectedAt.After(time.Now()))
}

func TestRecordPayment_HonorsExplicitCollectedAt(t *testing.T) {
	repo := &mockRepo{
		createFn: func(ctx context.Context, p *models.Payment) (*models.Payment, error) {
			return p, nil
		},
	}
	svc := payments.NewService(repo)

	collectedAt := time.Date(2025, time.September, 15, 14, 30, 0, 0, time.UTC)
	created, err := svc.RecordPayment(context.Background(), "sp-1", models.CreatePaymentRequest{
		CustomerID:  "cust-1",
		Amount:      120.50,
		Method:      models.PaymentTransfer,
		CollectedAt: &collectedAt,
	})
	require.NoError(t, err)
	assert.True(t, created.CollectedAt.Equal(collectedAt))
}

func TestListCustomerPayments_EmptyIsNotNil(t *testing.T) {
	repo := &mockRepo{
		listByCustomerFn: func(ctx context.Context, customerID string, page, limit int) ([]models.Payment, int, error) {
			return nil, 0, nil
		},
	}
	svc := payments.NewService(repo)

	list, total, err := svc.ListCustomerPayments(context.Background(), "cust-1", 1, 20)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Zero(t, total)
}

func TestCustomerBalance(t *testing.T) {
	repo := &mockRepo{
		customerBalanceFn: func(ctx context.Context, customerID string) (*models.CustomerBalance, error) {
			return &models.CustomerBalance{Ordered: 1000, Collected: 400, Open: 600}, nil
		},
	}
	svc := payments.NewService(repo)

	balance, err := svc.CustomerBalance(context.Background(), "cust-1")
	require.NoError(t, err)
	assert.InDelta(t, 600.0, balance.Open, 0.001)
}
