package document

import (
	"time"

	"github.com/google/uuid"
)

// Bundle represents a credential bundle record in the database. One per
// account, replaced wholesale on each approval.
type Bundle struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountID      uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	ApprovalURL    string    `gorm:"not null;size:512"`
	IDCardURL      string    `gorm:"not null;size:512"`
	CertificateURL string    `gorm:"not null;size:512"`
	GeneratedAt    time.Time
}

// TableName specifies the table name for the Bundle model.
func (Bundle) TableName() string {
	return "document_bundles"
}
