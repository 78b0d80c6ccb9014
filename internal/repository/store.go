package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store bundles the repositories over one database handle. A Store built by
// TxManager.WithTx is scoped to a single transaction, so a business write
// and its audit entry commit or roll back together.
type Store struct {
	Users        UserRepository
	Merchants    MerchantRepository
	Customers    CustomerRepository
	Cards        CardRepository
	Transactions TransactionRepository
	AuditLogs    AuditLogRepository
}

// NewStore creates a repository set over the given handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{
		Users:        NewUserRepository(db),
		Merchants:    NewMerchantRepository(db),
		Customers:    NewCustomerRepository(db),
		Cards:        NewCardRepository(db),
		Transactions: NewTransactionRepository(db),
		AuditLogs:    NewAuditLogRepository(db),
	}
}

// TxManager executes a function within a database transaction. Returning an
// error from the function rolls back every write made through the scoped
// Store, the audit entry included.
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, s *Store) error) error
}

type gormTxManager struct {
	db *gorm.DB
}

// NewTxManager creates a transaction manager over a gorm handle.
func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

// WithTx runs fn against a transaction-scoped Store.
func (m *gormTxManager) WithTx(ctx context.Context, fn func(ctx context.Context, s *Store) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewStore(tx))
	})
}
