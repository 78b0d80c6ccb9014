package model

import "time"

// Merchant owns zero or more customers.
type Merchant struct {
	ID           uint      `json:"merchant_id" gorm:"column:merchant_id;primaryKey"`
	MerchantName string    `json:"business_name" gorm:"size:255;not null"`
	ContactEmail string    `json:"contact_email" gorm:"size:255;not null"`
	Status       string    `json:"status" gorm:"size:20;not null;default:'Active';index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Customers []Customer `json:"-" gorm:"foreignKey:MerchantID"`
}
