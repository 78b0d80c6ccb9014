package model

import (
	"strings"
	"time"
)

// Role is the access level assigned to a user at registration.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleMerchant Role = "merchant"
	RoleAdmin    Role = "admin"
)

// ParseRole normalizes a role string. Roles are compared case-insensitively.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleCustomer:
		return RoleCustomer, true
	case RoleMerchant:
		return RoleMerchant, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// Equal reports whether two roles match, ignoring case.
func (r Role) Equal(other Role) bool {
	return strings.EqualFold(string(r), string(other))
}

// Account status values. Users are never hard-deleted; status is the only
// lifecycle control.
const (
	StatusActive    = "Active"
	StatusInactive  = "Inactive"
	StatusSuspended = "Suspended"
)

// User is an authenticated identity. PasswordHash is a bcrypt digest and is
// never serialized.
type User struct {
	ID           uint       `json:"user_id" gorm:"column:user_id;primaryKey"`
	Username     string     `json:"username" gorm:"uniqueIndex;size:100;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"`
	Role         Role       `json:"role" gorm:"column:user_role;size:20;not null;index"`
	Status       string     `json:"status" gorm:"size:20;not null;default:'Active'"`
	MerchantID   *uint      `json:"merchant_id,omitempty" gorm:"index"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
