package model

import "time"

// Customer belongs to exactly one merchant. Email and phone are stored
// encrypted; only the cipher in the service layer can read them back.
// UserID links a customer-role user 1:1 to its customer record for
// self-service access; it is nil for customers managed purely by a merchant.
type Customer struct {
	ID         uint      `json:"customer_id" gorm:"column:customer_id;primaryKey"`
	MerchantID uint      `json:"merchant_id" gorm:"not null;index"`
	UserID     *uint     `json:"user_id,omitempty" gorm:"uniqueIndex"`
	FirstName  string    `json:"firstname" gorm:"size:100;not null"`
	LastName   string    `json:"lastname" gorm:"size:100;not null"`
	EmailEnc   []byte    `json:"-" gorm:"type:varbinary(512);not null"`
	PhoneEnc   []byte    `json:"-" gorm:"type:varbinary(512);not null"`
	Status     string    `json:"status" gorm:"size:20;not null;default:'Active';index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Merchant Merchant `json:"-" gorm:"foreignKey:MerchantID"`
	Cards    []Card   `json:"-" gorm:"foreignKey:CustomerID"`
}
