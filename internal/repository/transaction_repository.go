package repository

import (
	"context"

	"gorm.io/gorm"

	"cardvault/internal/model"
)

// TransactionRepository defines transaction persistence operations. The
// table is append-only; there is no update path.
type TransactionRepository interface {
	Create(ctx context.Context, tx *model.Transaction) error
}

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository.
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// Create appends a new transaction record.
func (r *transactionRepository) Create(ctx context.Context, tx *model.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}
