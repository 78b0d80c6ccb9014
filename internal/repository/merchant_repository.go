package repository

import (
	"context"

	"gorm.io/gorm"

	"cardvault/internal/model"
)

// MerchantRepository defines merchant persistence operations.
type MerchantRepository interface {
	Create(ctx context.Context, merchant *model.Merchant) error
	FindByID(ctx context.Context, id uint) (*model.Merchant, error)
	ListActive(ctx context.Context) ([]model.Merchant, error)
}

type merchantRepository struct {
	db *gorm.DB
}

// NewMerchantRepository creates a new merchant repository.
func NewMerchantRepository(db *gorm.DB) MerchantRepository {
	return &merchantRepository{db: db}
}

// Create creates a new merchant.
func (r *merchantRepository) Create(ctx context.Context, merchant *model.Merchant) error {
	return r.db.WithContext(ctx).Create(merchant).Error
}

// FindByID finds a merchant by ID.
func (r *merchantRepository) FindByID(ctx context.Context, id uint) (*model.Merchant, error) {
	var merchant model.Merchant
	if err := r.db.WithContext(ctx).Where("merchant_id = ?", id).First(&merchant).Error; err != nil {
		return nil, err
	}
	return &merchant, nil
}

// ListActive lists all active merchants.
func (r *merchantRepository) ListActive(ctx context.Context) ([]model.Merchant, error) {
	var merchants []model.Merchant
	if err := r.db.WithContext(ctx).Where("status = ?", model.StatusActive).Find(&merchants).Error; err != nil {
		return nil, err
	}
	return merchants, nil
}
