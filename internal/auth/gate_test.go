package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cardvault/internal/model"
)

func uintPtr(v uint) *uint { return &v }

func TestAuthorize(t *testing.T) {
	customer := &Principal{UserID: 7, Username: "alice", Role: model.RoleCustomer}
	merchant := &Principal{UserID: 3, Username: "acme", Role: model.RoleMerchant}
	admin := &Principal{UserID: 1, Username: "root", Role: model.RoleAdmin}

	tests := []struct {
		name    string
		p       *Principal
		allowed []model.Role
		owner   *uint
		want    Decision
	}{
		{
			name:    "nil principal denied with login required",
			p:       nil,
			allowed: []model.Role{model.RoleAdmin},
			want:    Decision{Reason: DenyLoginRequired},
		},
		{
			name:    "nil principal with ownership still login required",
			p:       nil,
			allowed: []model.Role{model.RoleCustomer},
			owner:   uintPtr(7),
			want:    Decision{Reason: DenyLoginRequired},
		},
		{
			name:    "role outside allowed set denied",
			p:       customer,
			allowed: []model.Role{model.RoleAdmin, model.RoleMerchant},
			want:    Decision{Reason: DenyForbidden},
		},
		{
			name:    "role in allowed set allowed",
			p:       merchant,
			allowed: []model.Role{model.RoleAdmin, model.RoleMerchant},
			want:    Decision{Allowed: true},
		},
		{
			name:    "role comparison is case-insensitive",
			p:       &Principal{UserID: 9, Role: model.Role("Admin")},
			allowed: []model.Role{model.RoleAdmin},
			want:    Decision{Allowed: true},
		},
		{
			name:    "customer matching owner allowed",
			p:       customer,
			allowed: []model.Role{model.RoleCustomer},
			owner:   uintPtr(7),
			want:    Decision{Allowed: true},
		},
		{
			name:    "customer not matching owner denied",
			p:       customer,
			allowed: []model.Role{model.RoleCustomer},
			owner:   uintPtr(8),
			want:    Decision{Reason: DenyForbidden},
		},
		{
			name:    "admin bypasses ownership",
			p:       admin,
			allowed: []model.Role{model.RoleAdmin, model.RoleCustomer},
			owner:   uintPtr(8),
			want:    Decision{Allowed: true},
		},
		{
			name:    "merchant bypasses ownership",
			p:       merchant,
			allowed: []model.Role{model.RoleMerchant, model.RoleCustomer},
			owner:   uintPtr(8),
			want:    Decision{Allowed: true},
		},
		{
			name:    "no ownership constraint for customer",
			p:       customer,
			allowed: []model.Role{model.RoleCustomer},
			want:    Decision{Allowed: true},
		},
		{
			name:    "empty allowed set denies everyone",
			p:       admin,
			allowed: nil,
			want:    Decision{Reason: DenyForbidden},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Authorize(tt.p, tt.allowed, tt.owner)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAuthorizeHasNoSideEffects(t *testing.T) {
	p := &Principal{UserID: 7, Username: "alice", Role: model.RoleCustomer}
	before := *p
	_ = Authorize(p, []model.Role{model.RoleAdmin}, uintPtr(2))
	assert.Equal(t, before, *p)
}
