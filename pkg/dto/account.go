package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangamhq/sangam/pkg/domain/account"
)

// AccountCreate represents the data needed to create a new account.
type AccountCreate struct {
	ID          uuid.UUID
	MemberID    string
	Email       string
	Phone       string
	Password    string
	Role        account.Role
	Permissions []account.Permission
	Status      account.Status
}

// AccountUpdate represents the fields an administrator may change on an
// account. Nil fields are left untouched.
type AccountUpdate struct {
	Email       *string
	Phone       *string
	Role        *account.Role
	Permissions *[]account.Permission
	Status      *account.Status
}

// AccountRead is the read-optimized view of an account. The password hash
// is never serialized.
type AccountRead struct {
	ID          uuid.UUID            `json:"id"`
	MemberID    string               `json:"memberId"`
	Email       string               `json:"email"`
	Phone       string               `json:"phone"`
	Role        account.Role         `json:"role"`
	Permissions []account.Permission `json:"permissions"`
	Status      account.Status       `json:"status"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// AccountSummary is the compact creator/owner view joined into other
// resources.
type AccountSummary struct {
	ID       uuid.UUID `json:"id"`
	MemberID string    `json:"memberId"`
	Email    string    `json:"email"`
}

// Analytics holds the admin dashboard counts by status and role.
type Analytics struct {
	TotalMembers    int64 `json:"totalMembers"`
	PendingMembers  int64 `json:"pendingMembers"`
	ApprovedMembers int64 `json:"approvedMembers"`
	RejectedMembers int64 `json:"rejectedMembers"`
	TotalManagers   int64 `json:"totalManagers"`
}
