package model

import "time"

// AuditLog records one actor performing one action on one row. Rows are
// append-only: the application never updates or deletes them, and every
// entry is written in the same transaction as the mutation it documents.
type AuditLog struct {
	ID         uint      `json:"log_id" gorm:"column:log_id;primaryKey"`
	UserID     uint      `json:"user_id" gorm:"not null;index"`
	TableName  string    `json:"table_name" gorm:"size:64;not null"`
	ActionType string    `json:"action_type" gorm:"size:64;not null;index"`
	RecordID   uint      `json:"record_id"`
	OldValue   string    `json:"old_value" gorm:"type:text"`
	NewValue   string    `json:"new_value" gorm:"type:text"`
	IPAddress  string    `json:"ip_address" gorm:"size:45"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}
