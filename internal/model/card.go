package model

import "time"

// Card is a vaulted payment card. Number, holder name, expiry and CVV are
// each encrypted independently so a reader can be granted some fields
// without decrypting the rest. LastFourDigits is the only plaintext
// remnant of the PAN and exists for display.
type Card struct {
	ID             uint      `json:"card_id" gorm:"column:card_id;primaryKey"`
	CustomerID     uint      `json:"customer_id" gorm:"not null;index"`
	CardNumberEnc  []byte    `json:"-" gorm:"type:varbinary(512);not null"`
	CardHolderEnc  []byte    `json:"-" gorm:"type:varbinary(512);not null"`
	ExpiryDateEnc  []byte    `json:"-" gorm:"type:varbinary(512);not null"`
	CVVEnc         []byte    `json:"-" gorm:"column:cvv_enc;type:varbinary(512);not null"`
	LastFourDigits string    `json:"last_four_digits" gorm:"size:4;not null"`
	IsDefault      bool      `json:"is_default" gorm:"default:false"`
	Status         string    `json:"status" gorm:"size:20;not null;default:'Active';index"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	Customer Customer `json:"-" gorm:"foreignKey:CustomerID"`
}

// TableName keeps the vault's historical table name.
func (Card) TableName() string { return "card_vault" }
