package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification represents a notification record in the database. A null
// account_id marks a broadcast visible to every account.
type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AccountID *uuid.UUID `gorm:"type:uuid;index"`
	Title     string     `gorm:"not null;size:255"`
	Message   string     `gorm:"not null;size:1024"`
	Category  string     `gorm:"not null;size:16;default:INFO"`
	Read      bool       `gorm:"not null;default:false"`
	CreatedAt time.Time
}

// TableName specifies the table name for the Notification model.
func (Notification) TableName() string {
	return "notifications"
}
