package account

import (
	"strings"
	"time"

	"github.com/google/uuid"
	domainaccount "github.com/sangamhq/sangam/pkg/domain/account"
)

// Account represents an account record in the database. Permissions are
// stored as a comma-joined list so the same schema works on Postgres and
// the sqlite test databases.
type Account struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	MemberID    string    `gorm:"uniqueIndex;not null;size:32"`
	Email       string    `gorm:"uniqueIndex;not null;size:255"`
	Phone       string    `gorm:"not null;size:20"`
	Password    string    `gorm:"not null"`
	Role        string    `gorm:"not null;size:16;default:MEMBER"`
	Permissions string    `gorm:"size:255"`
	Status      string    `gorm:"not null;size:32;default:NEW"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}

// Sequence backs the member-ID counter. Rows are updated under a lock and
// the counter never decreases, so identifiers are never reused.
type Sequence struct {
	Name  string `gorm:"primaryKey;size:32"`
	Value int64  `gorm:"not null;default:0"`
}

// TableName specifies the table name for the Sequence model.
func (Sequence) TableName() string {
	return "sequences"
}

func joinPermissions(perms []domainaccount.Permission) string {
	if len(perms) == 0 {
		return ""
	}
	parts := make([]string, 0, len(perms))
	for _, p := range perms {
		parts = append(parts, string(p))
	}
	return strings.Join(parts, ",")
}

func splitPermissions(s string) []domainaccount.Permission {
	if s == "" {
		return []domainaccount.Permission{}
	}
	parts := strings.Split(s, ",")
	perms := make([]domainaccount.Permission, 0, len(parts))
	for _, p := range parts {
		perms = append(perms, domainaccount.Permission(p))
	}
	return perms
}
