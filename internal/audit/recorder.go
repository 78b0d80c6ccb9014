// Package audit appends immutable who-did-what-to-which-row records. A
// recorder always runs inside the same transaction as the mutation it
// documents: if the mutation rolls back the entry vanishes with it, and if
// the entry cannot be written the mutation must not commit.
package audit

import (
	"context"

	"cardvault/internal/model"
	"cardvault/internal/repository"
)

// Action types recorded in the audit trail.
const (
	ActionStoreCard      = "STORE_CARD"
	ActionDeleteCard     = "DELETE_CARD"
	ActionAddCustomer    = "ADD_CUSTOMER"
	ActionCreateMerchant = "CREATE_MERCHANT"
	ActionCharge         = "CHARGE"
)

// Entry describes one audited action.
type Entry struct {
	ActorID  uint
	Action   string
	Table    string
	RecordID uint
	OldValue string
	NewValue string
	IP       string
}

// Recorder appends audit entries through a repository, normally one scoped
// to the surrounding transaction.
type Recorder struct {
	logs repository.AuditLogRepository
}

// NewRecorder creates a recorder over an audit log repository.
func NewRecorder(logs repository.AuditLogRepository) *Recorder {
	return &Recorder{logs: logs}
}

// Record appends one entry. Callers must treat a returned error as fatal to
// the whole operation.
func (r *Recorder) Record(ctx context.Context, e Entry) error {
	return r.logs.Append(ctx, &model.AuditLog{
		UserID:     e.ActorID,
		TableName:  e.Table,
		ActionType: e.Action,
		RecordID:   e.RecordID,
		OldValue:   e.OldValue,
		NewValue:   e.NewValue,
		IPAddress:  e.IP,
	})
}
