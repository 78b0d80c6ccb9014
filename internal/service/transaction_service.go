package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"cardvault/internal/audit"
	"cardvault/internal/auth"
	"cardvault/internal/errors"
	"cardvault/internal/model"
	"cardvault/internal/repository"
)

// TransactionService handles charges against vaulted cards. Amount and
// currency are not sensitive, so no encryption happens here; the audit
// entry still rides the same transaction.
type TransactionService interface {
	Charge(ctx context.Context, actor *auth.Principal, ip string, cardID uint, amount decimal.Decimal, currency string) (*model.Transaction, error)
}

type transactionService struct {
	store *repository.Store
	tx    repository.TxManager
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(store *repository.Store, tx repository.TxManager) TransactionService {
	return &transactionService{store: store, tx: tx}
}

// Charge appends a success transaction against an existing active card.
func (s *transactionService) Charge(ctx context.Context, actor *auth.Principal, ip string, cardID uint, amount decimal.Decimal, currency string) (*model.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, errors.ErrInvalidAmount
	}
	if currency == "" {
		currency = "USD"
	}

	card, err := s.store.Cards.FindByID(ctx, cardID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCardNotFound
		}
		return nil, fmt.Errorf("find card: %w", err)
	}
	if card.Status != model.StatusActive {
		return nil, errors.ErrCardNotFound
	}

	charge := &model.Transaction{
		CardID:   card.ID,
		Amount:   amount,
		Currency: currency,
		Status:   model.TransactionStatusSuccess,
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context, st *repository.Store) error {
		if err := st.Transactions.Create(ctx, charge); err != nil {
			return fmt.Errorf("create transaction: %w", err)
		}
		return audit.NewRecorder(st.AuditLogs).Record(ctx, audit.Entry{
			ActorID:  actor.UserID,
			Action:   audit.ActionCharge,
			Table:    "transactions",
			RecordID: charge.ID,
			NewValue: fmt.Sprintf("%s %s", amount.StringFixed(2), currency),
			IP:       ip,
		})
	})
	if err != nil {
		return nil, err
	}
	return charge, nil
}
