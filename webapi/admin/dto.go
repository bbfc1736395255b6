package admin

// RejectInput carries the optional rejection reason.
type RejectInput struct {
	Reason string `json:"reason"`
}

// CreateManagerInput represents the request body for manager creation.
type CreateManagerInput struct {
	Email       string   `json:"email" validate:"required,email"`
	Phone       string   `json:"phone" validate:"required,min=10,max=15"`
	Password    string   `json:"password" validate:"required,min=6,max=72"`
	Permissions []string `json:"permissions"`
}

// PermissionsInput replaces a manager's permission set.
type PermissionsInput struct {
	Permissions []string `json:"permissions" validate:"required"`
}

// UpdateUserInput represents the combined account and profile edit.
// Unset fields are left untouched.
type UpdateUserInput struct {
	Email       *string `json:"email" form:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone" form:"phone" validate:"omitempty,min=10,max=15"`
	FullName    *string `json:"fullName" form:"fullName"`
	FatherName  *string `json:"fatherName" form:"fatherName"`
	DateOfBirth *string `json:"dateOfBirth" form:"dateOfBirth"`
	Age         *int    `json:"age" form:"age" validate:"omitempty,gt=0,lt=150"`
	Gender      *string `json:"gender" form:"gender" validate:"omitempty,oneof=Male Female Other"`
	Address     *string `json:"address" form:"address"`
}

// BroadcastInput represents a community-wide notice.
type BroadcastInput struct {
	Title   string `json:"title" validate:"required"`
	Message string `json:"message" validate:"required"`
}
