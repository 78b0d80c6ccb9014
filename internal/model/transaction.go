package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatusSuccess is the status recorded for accepted charges.
const TransactionStatusSuccess = "success"

// Transaction is an append-only charge against a vaulted card. Amount and
// currency are not sensitive and are stored in the clear.
type Transaction struct {
	ID        uint            `json:"transaction_id" gorm:"column:transaction_id;primaryKey"`
	CardID    uint            `json:"card_id" gorm:"not null;index"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	Currency  string          `json:"currency" gorm:"size:3;not null;default:'USD'"`
	Status    string          `json:"status" gorm:"size:20;not null"`
	CreatedAt time.Time       `json:"created_at"`

	// Relations
	Card Card `json:"-" gorm:"foreignKey:CardID"`
}
