package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/primeorcamentos/backoffice-api/internal/domain"
	"github.com/primeorcamentos/backoffice-api/internal/lookup"
	"github.com/primeorcamentos/backoffice-api/internal/mapper"
	"github.com/primeorcamentos/backoffice-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CustomerService struct {
	customerRepo *repository.CustomerRepository
	lookupClient *lookup.Client
	logger       *zap.Logger
}

func NewCustomerService(
	customerRepo *repository.CustomerRepository,
	logger *zap.Logger,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// SetLookupClient wires the optional registry lookup client. A nil client
// leaves enrichment disabled.
func (s *CustomerService) SetLookupClient(client *lookup.Client) {
	s.lookupClient = client
}

func (s *CustomerService) Create(ctx context.Context, req *domain.CreateCustomerRequest) (*domain.CustomerDTO, error) {
	if req.TaxID != "" {
		existing, err := s.customerRepo.GetByTaxID(ctx, req.TaxID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check tax id: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: tax id %s already registered", ErrConflict, req.TaxID)
		}
	}

	customer := &domain.Customer{
		Name:          req.Name,
		TaxID:         req.TaxID,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		PostalCode:    req.PostalCode,
		ContactPerson: req.ContactPerson,
		Notes:         req.Notes,
		IsActive:      true,
	}

	s.enrichFromRegistry(ctx, customer)

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	dto := mapper.ToCustomerDTO(customer, 0)
	return &dto, nil
}

func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.CustomerDTO, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	openOrders, err := s.customerRepo.CountOpenOrders(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count open orders: %w", err)
	}

	dto := mapper.ToCustomerDTO(customer, openOrders)
	return &dto, nil
}

func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateCustomerRequest) (*domain.CustomerDTO, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	if req.TaxID != "" && req.TaxID != customer.TaxID {
		existing, err := s.customerRepo.GetByTaxID(ctx, req.TaxID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check tax id: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: tax id %s already registered", ErrConflict, req.TaxID)
		}
	}

	customer.Name = req.Name
	customer.TaxID = req.TaxID
	customer.Email = req.Email
	customer.Phone = req.Phone
	customer.Address = req.Address
	customer.City = req.City
	customer.State = req.State
	customer.PostalCode = req.PostalCode
	customer.ContactPerson = req.ContactPerson
	customer.Notes = req.Notes
	if req.IsActive != nil {
		customer.IsActive = *req.IsActive
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	openOrders, err := s.customerRepo.CountOpenOrders(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count open orders: %w", err)
	}

	dto := mapper.ToCustomerDTO(customer, openOrders)
	return &dto, nil
}

// Delete removes a customer. Customers with any orders cannot be deleted;
// deactivating them is the supported path.
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get customer: %w", err)
	}

	openOrders, err := s.customerRepo.CountOpenOrders(ctx, customer.ID)
	if err != nil {
		return fmt.Errorf("failed to count open orders: %w", err)
	}
	if openOrders > 0 {
		return ErrCustomerHasOrders
	}

	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

func (s *CustomerService) List(ctx context.Context, search string, activeOnly bool, limit, offset int) ([]domain.CustomerDTO, error) {
	if limit < 1 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	customers, err := s.customerRepo.List(ctx, search, activeOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	dtos := make([]domain.CustomerDTO, len(customers))
	for i, customer := range customers {
		dtos[i] = mapper.ToCustomerDTO(&customer, 0)
	}
	return dtos, nil
}

// LookupTaxID queries the public company registry directly, for pre-filling
// the customer form client-side.
func (s *CustomerService) LookupTaxID(ctx context.Context, taxID string) (*lookup.Company, error) {
	if s.lookupClient == nil {
		return nil, fmt.Errorf("%w: registry lookups are disabled", ErrInvalidInput)
	}
	return s.lookupClient.TaxID(ctx, taxID)
}

// LookupPostalCode queries the postal registry directly.
func (s *CustomerService) LookupPostalCode(ctx context.Context, code string) (*lookup.Address, error) {
	if s.lookupClient == nil {
		return nil, fmt.Errorf("%w: registry lookups are disabled", ErrInvalidInput)
	}
	return s.lookupClient.PostalCode(ctx, code)
}

// enrichFromRegistry fills blank address fields from the public registries.
// Lookup failures are logged and ignored; enrichment never blocks a save.
func (s *CustomerService) enrichFromRegistry(ctx context.Context, customer *domain.Customer) {
	if s.lookupClient == nil {
		return
	}

	if customer.PostalCode != "" && (customer.City == "" || customer.State == "") {
		addr, err := s.lookupClient.PostalCode(ctx, customer.PostalCode)
		if err != nil {
			s.logger.Warn("Postal code lookup failed",
				zap.String("postal_code", customer.PostalCode),
				zap.Error(err))
		} else {
			if customer.Address == "" {
				customer.Address = addr.Street
			}
			if customer.City == "" {
				customer.City = addr.City
			}
			if customer.State == "" {
				customer.State = addr.State
			}
		}
	}
}
