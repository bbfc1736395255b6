package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entry represents a ledger entry record in the database. Rows are
// append-only: there is no update path. created_by intentionally carries
// no foreign-key constraint so entries survive the deletion of their
// creator.
type Entry struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Type         string          `gorm:"not null;size:16;index"`
	Amount       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Description  string          `gorm:"not null;size:512"`
	Date         time.Time       `gorm:"not null;index"`
	BalanceAfter decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	ProofURL     string          `gorm:"not null;size:512"`
	CreatedBy    uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt    time.Time
}

// TableName specifies the table name for the Entry model.
func (Entry) TableName() string {
	return "ledger_entries"
}
