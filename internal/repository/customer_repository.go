package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/primeorcamentos/backoffice-api/internal/domain"
	"gorm.io/gorm"
)

// CustomerRepository handles database operations for customers
type CustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new CustomerRepository instance
func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Create inserts a new customer into the database
func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

// GetByID retrieves a customer by its ID
func (r *CustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	var customer domain.Customer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetByTaxID retrieves a customer by its tax identifier
func (r *CustomerRepository) GetByTaxID(ctx context.Context, taxID string) (*domain.Customer, error) {
	var customer domain.Customer
	err := r.db.WithContext(ctx).Where("tax_id = ?", taxID).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// Update saves changes to an existing customer
func (r *CustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

// Delete removes a customer from the database
func (r *CustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Customer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns customers, optionally filtered by a case-insensitive
// name/tax-id search term and active flag
func (r *CustomerRepository) List(ctx context.Context, search string, activeOnly bool, limit, offset int) ([]domain.Customer, error) {
	query := r.db.WithContext(ctx).Model(&domain.Customer{})

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR tax_id ILIKE ?", pattern, pattern)
	}
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var customers []domain.Customer
	err := query.Order("name ASC").Find(&customers).Error
	return customers, err
}

// CountOpenOrders returns the number of non-terminal orders for a customer
func (r *CustomerRepository) CountOpenOrders(ctx context.Context, customerID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("customer_id = ? AND status NOT IN ?", customerID,
			[]domain.OrderStatus{domain.OrderStatusCancelled, domain.OrderStatusPaid}).
		Count(&count).Error
	return int(count), err
}
