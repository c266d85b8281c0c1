package orders

import (
	"context"
	"fmt"

	"field-sales/internal/models"
)

// ServiceInterface defines business logic for order management.
type ServiceInterface interface {
	CreateOrder(ctx context.Context, salespersonID string, req models.CreateOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, orderID, requesterID, role string) (*models.Order, error)
	ListMyOrders(ctx context.Context, salespersonID string, page, limit int) ([]*models.Order, int, error)
	ListCustomerOrders(ctx context.Context, customerID string, page, limit int) ([]*models.Order, int, error)
	ListAllOrders(ctx context.Context, page, limit int) ([]*models.Order, int, error)
	UpdateStatus(ctx context.Context, orderID, requesterID, role string, req models.UpdateOrderStatusRequest) (*models.Order, error)
	CancelOrder(ctx context.Context, orderID, requesterID, role string) (*models.Order, error)
}

type Service struct {
	repo RepositoryInterface
}

func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateOrder(ctx context.Context, salespersonID string, req models.CreateOrderRequest) (*models.Order, error) {
	order, err := s.repo.Create(ctx, req.CustomerID, salespersonID, req.Items)
	if err != nil {
		return nil, fmt.Errorf("service.CreateOrder: %w", err)
	}
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, orderID, requesterID, role string) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.SalespersonID != requesterID && role != models.RoleAdmin {
		return nil, models.ErrForbidden
	}
	return order, nil
}

func (s *Service) ListMyOrders(ctx context.Context, salespersonID string, page, limit int) ([]*models.Order, int, error) {
	orders, total, err := s.repo.ListBySalesperson(ctx, salespersonID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ListMyOrders: %w", err)
	}
	if orders == nil {
		orders = []*models.Order{}
	}
	return orders, total, nil
}

func (s *Service) ListCustomerOrders(ctx context.Context, customerID string, page, limit int) ([]*models.Order, int, error) {
	orders, total, err := s.repo.ListByCustomer(ctx, customerID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ListCustomerOrders: %w", err)
	}
	if orders == nil {
		orders = []*models.Order{}
	}
	return orders, total, nil
}

func (s *Service) ListAllOrders(ctx context.Context, page, limit int) ([]*models.Order, int, error) {
	orders, total, err := s.repo.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ListAllOrders: %w", err)
	}
	if orders == nil {
		orders = []*models.Order{}
	}
	return orders, total, nil
}

func (s *Service) UpdateStatus(ctx context.Context, orderID, requesterID, role string, req models.UpdateOrderStatusRequest) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.SalespersonID != requesterID && role != models.RoleAdmin {
		return nil, models.ErrForbidden
	}
	return s.repo.UpdateStatus(ctx, orderID, req.Status)
}

// CancelOrder moves an order to cancelled. Delivered orders are final and
// cancelled ones stay cancelled.
func (s *Service) CancelOrder(ctx context.Context, orderID, requesterID, role string) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.SalespersonID != requesterID && role != models.RoleAdmin {
		return nil, models.ErrForbidden
	}
	if order.Status != models.OrderDraft && order.Status != models.OrderConfirmed {
		return nil, models.ErrOrderCannotBeCancelled
	}
	return s.repo.UpdateStatus(ctx, orderID, models.OrderCancelled)
}
