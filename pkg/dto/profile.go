package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangamhq/sangam/pkg/domain/profile"
)

// ProfileUpsert carries the registration form fields for a submission or
// resubmission. File references are resolved by the lifecycle controller
// before the upsert reaches the repository.
type ProfileUpsert struct {
	AccountID       uuid.UUID
	FullName        string
	FatherName      string
	DateOfBirth     time.Time
	Age             int
	Gender          profile.Gender
	Address         string
	Phone           string
	IdentityFileURL string
	PhotoURL        string
}

// ProfileUpdate carries the partial profile edit an administrator may
// apply alongside an account edit. Nil fields are left untouched.
type ProfileUpdate struct {
	FullName        *string
	FatherName      *string
	DateOfBirth     *time.Time
	Age             *int
	Gender          *profile.Gender
	Address         *string
	Phone           *string
	IdentityFileURL *string
	PhotoURL        *string
}

// ProfileRead is the read-optimized view of a profile.
type ProfileRead struct {
	ID              uuid.UUID      `json:"id"`
	AccountID       uuid.UUID      `json:"accountId"`
	FullName        string         `json:"fullName"`
	FatherName      string         `json:"fatherName"`
	DateOfBirth     time.Time      `json:"dateOfBirth"`
	Age             int            `json:"age"`
	Gender          profile.Gender `json:"gender"`
	Address         string         `json:"address"`
	Phone           string         `json:"phone"`
	IdentityFileURL string         `json:"identityFileUrl"`
	PhotoURL        string         `json:"photoUrl"`
	SubmittedAt     time.Time      `json:"submittedAt"`
	RejectionReason string         `json:"rejectionReason,omitempty"`
}

// PendingAccount joins an account awaiting verification with its submitted
// profile for the review queue.
type PendingAccount struct {
	Account AccountRead  `json:"account"`
	Profile *ProfileRead `json:"profile"`
}
