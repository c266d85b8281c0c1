package products

import (
	"context"
	"fmt"

	"field-sales/internal/models"
)

type ServiceInterface interface {
	Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error)
	Get(ctx context.Context, productID string) (*models.Product, error)
	List(ctx context.Context, activeOnly bool, page, limit int) ([]models.Product, int, error)
	Update(ctx context.Context, productID string, req models.UpdateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, productID string) error

	ExportToExcel(ctx context.Context, activeOnly bool) ([]byte, error)
}

type Service struct {
	repo RepositoryInterface
}

func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	product := &models.Product{
		Code:      req.Code,
		Name:      req.Name,
		Unit:      req.Unit,
		UnitPrice: req.UnitPrice,
		VATRate:   req.VATRate,
	}
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("service.CreateProduct: %w", err)
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, productID string) (*models.Product, error) {
	return s.repo.FindByID(ctx, productID)
}

func (s *Service) List(ctx context.Context, activeOnly bool, page, limit int) ([]models.Product, int, error) {
	list, total, err := s.repo.List(ctx, activeOnly, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ListProducts: %w", err)
	}
	if list == nil {
		list = []models.Product{}
	}
	return list, total, nil
}

func (s *Service) Update(ctx context.Context, productID string, req models.UpdateProductRequest) (*models.Product, error) {
	return s.repo.Update(ctx, productID, req)
}

func (s *Service) Delete(ctx context.Context, productID string) error {
	return s.repo.Delete(ctx, productID)
}

func (s *Service) ExportToExcel(ctx context.Context, activeOnly bool) ([]byte, error) {
	list, err := s.repo.ListAll(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("service.ExportProducts: %w", err)
	}
	return BuildProductExport(list)
}
