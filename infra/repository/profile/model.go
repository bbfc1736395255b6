package profile

import (
	"time"

	"github.com/google/uuid"
)

// Profile represents a registration profile record in the database.
// account_id is unique: exactly one profile per account.
type Profile struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountID       uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	FullName        string    `gorm:"not null;size:255"`
	FatherName      string    `gorm:"not null;size:255"`
	DateOfBirth     time.Time `gorm:"not null"`
	Age             int       `gorm:"not null"`
	Gender          string    `gorm:"not null;size:16"`
	Address         string    `gorm:"not null;size:512"`
	Phone           string    `gorm:"not null;size:20"`
	IdentityFileURL string    `gorm:"not null;size:512"`
	PhotoURL        string    `gorm:"not null;size:512"`
	SubmittedAt     time.Time
	RejectionReason string `gorm:"size:512"`
}

// TableName specifies the table name for the Profile model.
func (Profile) TableName() string {
	return "profiles"
}
