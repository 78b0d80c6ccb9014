package auth

import "cardvault/internal/model"

// DenyReason explains a negative authorization decision.
type DenyReason string

const (
	// DenyLoginRequired means no principal was presented.
	DenyLoginRequired DenyReason = "login_required"
	// DenyForbidden means the principal's role or ownership does not allow the operation.
	DenyForbidden DenyReason = "forbidden"
)

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

// Authorize decides whether a principal may perform an operation restricted
// to the given roles. ownerUserID, when non-nil, is the user id owning the
// target resource: customer-role principals must match it, while the other
// allowed roles bypass the ownership rule. The function is pure; callers
// translate the decision into errors or responses.
func Authorize(p *Principal, allowed []model.Role, ownerUserID *uint) Decision {
	if p == nil {
		return Decision{Reason: DenyLoginRequired}
	}
	permitted := false
	for _, r := range allowed {
		if p.Role.Equal(r) {
			permitted = true
			break
		}
	}
	if !permitted {
		return Decision{Reason: DenyForbidden}
	}
	if ownerUserID != nil && p.Role.Equal(model.RoleCustomer) && p.UserID != *ownerUserID {
		return Decision{Reason: DenyForbidden}
	}
	return Decision{Allowed: true}
}
