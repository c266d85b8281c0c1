package customers

import (
	"context"
	"fmt"
	"io"

	"field-sales/internal/models"
)

// ServiceInterface defines business logic for customer management.
type ServiceInterface interface {
	Create(ctx context.Context, req models.CreateCustomerRequest) (*models.Customer, error)
	Get(ctx context.Context, customerID string) (*models.Customer, error)
	List(ctx context.Context, filter models.CustomerFilter, page, limit int) ([]models.Customer, int, error)
	Update(ctx context.Context, customerID string, req models.UpdateCustomerRequest) (*models.Customer, error)
	Deactivate(ctx context.Context, customerID string) (*models.Customer, error)
	Delete(ctx context.Context, customerID string) error

	ImportFromExcel(ctx context.Context, r io.Reader) (*models.CustomerImportResult, error)
	ExportToExcel(ctx context.Context, filter models.CustomerFilter) ([]byte, error)
}

type Service struct {
	repo RepositoryInterface
}

func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req models.CreateCustomerRequest) (*models.Customer, error) {
	// The scheduler tolerates unknown cycles, but new records keep the set closed.
	if !models.KnownCycle(req.Cycle) {
		return nil, models.ErrInvalidCycle
	}

	customer := &models.Customer{
		Name:      req.Name,
		Address:   req.Address,
		District:  req.District,
		Phone:     req.Phone,
		TaxOffice: req.TaxOffice,
		TaxNumber: req.TaxNumber,
		Cycle:     req.Cycle,
	}
	created, err := s.repo.Create(ctx, customer)
	if err != nil {
		return nil, fmt.Errorf("service.CreateCustomer: %w", err)
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, customerID string) (*models.Customer, error) {
	return s.repo.FindByID(ctx, customerID)
}

func (s *Service) List(ctx context.Context, filter models.CustomerFilter, page, limit int) ([]models.Customer, int, error) {
	customers, total, err := s.repo.List(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ListCustomers: %w", err)
	}
	if customers == nil {
		customers = []models.Customer{}
	}
	return customers, total, nil
}

func (s *Service) Update(ctx context.Context, customerID string, req models.UpdateCustomerRequest) (*models.Customer, error) {
	if req.Cycle != nil && !models.KnownCycle(*req.Cycle) {
		return nil, models.ErrInvalidCycle
	}
	return s.repo.Update(ctx, customerID, req)
}

// Deactivate is the soft delete: the customer drops out of route generation
// but keeps its history.
func (s *Service) Deactivate(ctx context.Context, customerID string) (*models.Customer, error) {
	inactive := models.CustomerInactive
	return s.repo.Update(ctx, customerID, models.UpdateCustomerRequest{Status: &inactive})
}

func (s *Service) Delete(ctx context.Context, customerID string) error {
	return s.repo.Delete(ctx, customerID)
}

// ImportFromExcel parses the upload and inserts all valid rows in one batch.
// Row-level problems are reported back, not fatal.
func (s *Service) ImportFromExcel(ctx context.Context, r io.Reader) (*models.CustomerImportResult, error) {
	customers, rowErrors, err := ParseCustomerImport(r)
	if err != nil {
		return nil, fmt.Errorf("service.ImportCustomers: %w", err)
	}

	result := &models.CustomerImportResult{
		Skipped: len(rowErrors),
		Errors:  rowErrors,
	}
	if len(customers) == 0 {
		return result, nil
	}

	imported, err := s.repo.BulkCreate(ctx, customers)
	if err != nil {
		return nil, fmt.Errorf("service.ImportCustomers: %w", err)
	}
	result.Imported = imported
	return result, nil
}

func (s *Service) ExportToExcel(ctx context.Context, filter models.CustomerFilter) ([]byte, error) {
	customers, err := s.repo.ListAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("service.ExportCustomers: %w", err)
	}
	return BuildCustomerExport(customers)
}
