// Package account defines the membership account entity, its verification
// lifecycle and the role/permission rules enforced by the authorization gate.
package account

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangamhq/sangam/pkg/domain/common"
)

// Role classifies an account.
type Role string

const (
	RoleMember     Role = "MEMBER"
	RoleManager    Role = "MANAGER"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleManager, RoleSuperAdmin:
		return true
	}
	return false
}

// Permission is a named capability granted to MANAGER accounts.
// SUPER_ADMIN implicitly holds every permission.
type Permission string

const (
	PermVerifyUsers    Permission = "verify_users"
	PermViewFunds      Permission = "view_funds"
	PermUploadExpenses Permission = "upload_expenses"
)

// Valid reports whether p is one of the defined capabilities.
func (p Permission) Valid() bool {
	switch p {
	case PermVerifyUsers, PermViewFunds, PermUploadExpenses:
		return true
	}
	return false
}

// Status is an account's position in the verification lifecycle.
type Status string

const (
	StatusNew                 Status = "NEW"
	StatusPendingVerification Status = "PENDING_VERIFICATION"
	StatusApproved            Status = "APPROVED"
	StatusRejected            Status = "REJECTED"

	// StatusFormSubmitted is part of the stored enum but no operation
	// produces it. Kept so rows carrying the value remain readable.
	StatusFormSubmitted Status = "FORM_SUBMITTED"
)

// Account is a registered identity with credentials, a role, an optional
// permission set and a lifecycle status. MemberID is assigned exactly once
// at creation and never reused, even after deletion.
type Account struct {
	ID          uuid.UUID    `json:"id"`
	MemberID    string       `json:"memberId"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	Password    string       `json:"-"`
	Role        Role         `json:"role"`
	Permissions []Permission `json:"permissions"`
	Status      Status       `json:"status"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// CanSubmitRegistration reports whether an account in the given status may
// submit its registration form. hasProfile tells whether a profile row
// already exists for the account: resubmission is only legal after a
// rejection.
func CanSubmitRegistration(status Status, hasProfile bool) error {
	if hasProfile && status != StatusRejected {
		return fmt.Errorf("%w: registration already submitted", common.ErrConflict)
	}
	return nil
}

// CanApprove reports whether an account in the given status may be
// approved. Approval is only legal from PENDING_VERIFICATION; rejection is
// deliberately not gated and may happen from any status.
func CanApprove(status Status) error {
	if status != StatusPendingVerification {
		return fmt.Errorf(
			"%w: account is not pending verification (status %s)",
			common.ErrPreconditionFailed, status,
		)
	}
	return nil
}

// HasPermission implements the capability check of the authorization gate:
// SUPER_ADMIN holds every capability, a MANAGER holds exactly the
// capabilities in its permission set, everyone else holds none.
func HasPermission(role Role, perms []Permission, p Permission) bool {
	switch role {
	case RoleSuperAdmin:
		return true
	case RoleManager:
		for _, have := range perms {
			if have == p {
				return true
			}
		}
	}
	return false
}

// HasPermission reports whether the account holds the capability.
func (a *Account) HasPermission(p Permission) bool {
	return HasPermission(a.Role, a.Permissions, p)
}

// HasRole reports whether the account's role is one of the given roles.
func (a *Account) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}
