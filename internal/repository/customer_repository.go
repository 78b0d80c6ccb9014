package repository

import (
	"context"

	"gorm.io/gorm"

	"cardvault/internal/model"
)

// CustomerRepository defines customer persistence operations.
type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) error
	FindByID(ctx context.Context, id uint) (*model.Customer, error)
	FindByUserID(ctx context.Context, userID uint) (*model.Customer, error)
	ListActive(ctx context.Context) ([]model.Customer, error)
	ListActiveByMerchant(ctx context.Context, merchantID uint) ([]model.Customer, error)
}

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository.
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// Create creates a new customer.
func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

// FindByID finds a customer by ID.
func (r *customerRepository) FindByID(ctx context.Context, id uint) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.WithContext(ctx).Where("customer_id = ?", id).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindByUserID finds the customer record linked to a customer-role user.
func (r *customerRepository) FindByUserID(ctx context.Context, userID uint) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// ListActive lists all active customers.
func (r *customerRepository) ListActive(ctx context.Context) ([]model.Customer, error) {
	var customers []model.Customer
	if err := r.db.WithContext(ctx).Where("status = ?", model.StatusActive).Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// ListActiveByMerchant lists a merchant's active customers with their cards
// preloaded.
func (r *customerRepository) ListActiveByMerchant(ctx context.Context, merchantID uint) ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.WithContext(ctx).
		Preload("Cards", "status = ?", model.StatusActive).
		Where("merchant_id = ? AND status = ?", merchantID, model.StatusActive).
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}
