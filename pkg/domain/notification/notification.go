// Package notification defines targeted and broadcast messages delivered
// to accounts.
package notification

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies a notification.
type Category string

const (
	CategoryApproval  Category = "APPROVAL"
	CategoryRejection Category = "REJECTION"
	CategoryBroadcast Category = "BROADCAST"
	CategoryInfo      Category = "INFO"
)

// Notification is a message for one account, or for everyone when
// AccountID is nil (a broadcast).
type Notification struct {
	ID        uuid.UUID  `json:"id"`
	AccountID *uuid.UUID `json:"accountId,omitempty"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Category  Category   `json:"category"`
	Read      bool       `json:"isRead"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Broadcast reports whether the notification has no specific owner.
func (n *Notification) Broadcast() bool {
	return n.AccountID == nil
}
