package repository

import (
	"context"

	"gorm.io/gorm"

	"cardvault/internal/model"
)

// CardRepository defines card vault persistence operations.
type CardRepository interface {
	Create(ctx context.Context, card *model.Card) error
	FindByID(ctx context.Context, id uint) (*model.Card, error)
	ListActive(ctx context.Context) ([]model.Card, error)
	ListActiveByCustomer(ctx context.Context, customerID uint) ([]model.Card, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

type cardRepository struct {
	db *gorm.DB
}

// NewCardRepository creates a new card repository.
func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepository{db: db}
}

// Create creates a new vaulted card.
func (r *cardRepository) Create(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Create(card).Error
}

// FindByID finds a card by ID.
func (r *cardRepository) FindByID(ctx context.Context, id uint) (*model.Card, error) {
	var card model.Card
	if err := r.db.WithContext(ctx).Where("card_id = ?", id).First(&card).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// ListActive lists all active cards.
func (r *cardRepository) ListActive(ctx context.Context) ([]model.Card, error) {
	var cards []model.Card
	if err := r.db.WithContext(ctx).Where("status = ?", model.StatusActive).Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// ListActiveByCustomer lists a customer's active cards.
func (r *cardRepository) ListActiveByCustomer(ctx context.Context, customerID uint) ([]model.Card, error) {
	var cards []model.Card
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND status = ?", customerID, model.StatusActive).
		Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}

// UpdateStatus changes a card's status. Cards are never hard-deleted.
func (r *cardRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).Model(&model.Card{}).
		Where("card_id = ?", id).
		Update("status", status).Error
}
