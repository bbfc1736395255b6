// Package profile defines the one-to-one registration details attached to
// an account.
package profile

import (
	"time"

	"github.com/google/uuid"
)

// Gender is constrained to the values the registration form offers.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Valid reports whether g is one of the defined genders.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Profile holds the registration details a member submits for verification.
// Exactly one profile exists per account; the lifecycle submission
// operation is the only writer.
type Profile struct {
	ID              uuid.UUID `json:"id"`
	AccountID       uuid.UUID `json:"accountId"`
	FullName        string    `json:"fullName"`
	FatherName      string    `json:"fatherName"`
	DateOfBirth     time.Time `json:"dateOfBirth"`
	Age             int       `json:"age"`
	Gender          Gender    `json:"gender"`
	Address         string    `json:"address"`
	Phone           string    `json:"phone"`
	IdentityFileURL string    `json:"identityFileUrl"`
	PhotoURL        string    `json:"photoUrl"`
	SubmittedAt     time.Time `json:"submittedAt"`
	RejectionReason string    `json:"rejectionReason,omitempty"`
}
