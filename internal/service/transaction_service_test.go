package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"cardvault/internal/errors"
	"cardvault/internal/model"
)

func TestTransactionService_Charge(t *testing.T) {
	t.Run("records a charge and audits it", func(t *testing.T) {
		ms := newMockStore()
		svc := NewTransactionService(ms.store, &fakeTxManager{store: ms.store})

		ms.cards.On("FindByID", mock.Anything, uint(7)).Return(&model.Card{ID: 7, Status: model.StatusActive}, nil)
		ms.transactions.On("Create", mock.Anything, mock.AnythingOfType("*model.Transaction")).Run(func(args mock.Arguments) {
			args.Get(1).(*model.Transaction).ID = 500
		}).Return(nil)
		ms.auditLogs.On("Append", mock.Anything, mock.MatchedBy(func(e *model.AuditLog) bool {
			return e.ActionType == "CHARGE" &&
				e.TableName == "transactions" &&
				e.RecordID == 500 &&
				e.NewValue == "49.99 USD"
		})).Return(nil)

		charge, err := svc.Charge(context.Background(), adminPrincipal(), "10.0.0.1", 7, decimal.RequireFromString("49.99"), "")

		assert.NoError(t, err)
		assert.Equal(t, uint(500), charge.ID)
		assert.Equal(t, "USD", charge.Currency)
		assert.Equal(t, model.TransactionStatusSuccess, charge.Status)
		assert.True(t, charge.Amount.Equal(decimal.RequireFromString("49.99")))
		ms.assertExpectations(t)
	})

	t.Run("zero and negative amounts are rejected", func(t *testing.T) {
		ms := newMockStore()
		svc := NewTransactionService(ms.store, &fakeTxManager{store: ms.store})

		_, err := svc.Charge(context.Background(), adminPrincipal(), "10.0.0.1", 7, decimal.Zero, "USD")
		assert.ErrorIs(t, err, errors.ErrInvalidAmount)

		_, err = svc.Charge(context.Background(), adminPrincipal(), "10.0.0.1", 7, decimal.RequireFromString("-1"), "USD")
		assert.ErrorIs(t, err, errors.ErrInvalidAmount)
		ms.assertExpectations(t)
	})

	t.Run("unknown card", func(t *testing.T) {
		ms := newMockStore()
		svc := NewTransactionService(ms.store, &fakeTxManager{store: ms.store})

		ms.cards.On("FindByID", mock.Anything, uint(7)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Charge(context.Background(), adminPrincipal(), "10.0.0.1", 7, decimal.RequireFromString("10"), "USD")
		assert.ErrorIs(t, err, errors.ErrCardNotFound)
		ms.assertExpectations(t)
	})

	t.Run("deactivated card cannot be charged", func(t *testing.T) {
		ms := newMockStore()
		svc := NewTransactionService(ms.store, &fakeTxManager{store: ms.store})

		ms.cards.On("FindByID", mock.Anything, uint(7)).Return(&model.Card{ID: 7, Status: model.StatusInactive}, nil)

		_, err := svc.Charge(context.Background(), adminPrincipal(), "10.0.0.1", 7, decimal.RequireFromString("10"), "USD")
		assert.ErrorIs(t, err, errors.ErrCardNotFound)
		ms.assertExpectations(t)
	})

	t.Run("audit failure fails the charge", func(t *testing.T) {
		ms := newMockStore()
		svc := NewTransactionService(ms.store, &fakeTxManager{store: ms.store})

		ms.cards.On("FindByID", mock.Anything, uint(7)).Return(&model.Card{ID: 7, Status: model.StatusActive}, nil)
		ms.transactions.On("Create", mock.Anything, mock.AnythingOfType("*model.Transaction")).Return(nil)
		ms.auditLogs.On("Append", mock.Anything, mock.AnythingOfType("*model.AuditLog")).Return(gorm.ErrInvalidTransaction)

		_, err := svc.Charge(context.Background(), adminPrincipal(), "10.0.0.1", 7, decimal.RequireFromString("10"), "USD")
		assert.ErrorIs(t, err, gorm.ErrInvalidTransaction)
		ms.assertExpectations(t)
	})
}
