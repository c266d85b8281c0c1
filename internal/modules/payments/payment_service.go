package payments

import (
	"context"
	"fmt"
	"time"

	"field-sales/internal/models"
)

type ServiceInterface interface {
	RecordPayment(ctx context.Context, collectorID string, req models.CreatePaymentRequest) (*models.Payment, error)
	ListCustomerPayments(ctx context.Context, customerID string, page, limit int) ([]models.Payment, int, error)
	CustomerBalance(ctx context.Context, customerID string) (*models.CustomerBalance, error)
}

type Service struct {
	repo RepositoryInterface
	now  func() time.Time
}

func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo, now: time.Now}
}

// RecordPayment books a collection against a customer. The collection time
// defaults to now when the request leaves it out.
func (s *Service) RecordPayment(ctx context.Context, collectorID string, req models.CreatePaymentRequest) (*models.Payment, error) {
	collectedAt := s.now()
	if req.CollectedAt != nil {
		collectedAt = *req.CollectedAt
	}

	payment := &models.Payment{
		CustomerID:  req.CustomerID,
		OrderID:     req.OrderID,
		CollectedBy: collectorID,
		Amount:      req.Amount,
		Method:      req.Method,
		Note:        req.Note,
		CollectedAt: collectedAt,
	}
	created, err := s.repo.Create(ctx, payment)
	if err != nil {
		return nil, fmt.Errorf("service.RecordPayment: %w", err)
	}
	return created, nil
}

func (s *Service) ListCustomerPayments(ctx context.Context, customerID string, page, limit int) ([]models.Payment, int, error) {
	payments, total, err := s.repo.ListByCustomer(ctx, customerID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ListCustomerPayments: %w", err)
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	return payments, total, nil
}

func (s *Service) CustomerBalance(ctx context.Context, customerID string) (*models.CustomerBalance, error) {
	return s.repo.CustomerBalance(ctx, customerID)
}
