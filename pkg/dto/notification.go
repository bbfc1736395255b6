package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangamhq/sangam/pkg/domain/notification"
)

// NotificationCreate carries a new targeted or broadcast message.
// AccountID nil means broadcast.
type NotificationCreate struct {
	AccountID *uuid.UUID
	Title     string
	Message   string
	Category  notification.Category
}

// NotificationRead is the read-optimized view of a notification.
type NotificationRead struct {
	ID        uuid.UUID             `json:"id"`
	AccountID *uuid.UUID            `json:"accountId,omitempty"`
	Title     string                `json:"title"`
	Message   string                `json:"message"`
	Category  notification.Category `json:"category"`
	Read      bool                  `json:"isRead"`
	CreatedAt time.Time             `json:"createdAt"`
}

// DocumentRead is the read-optimized view of an account's credential
// bundle.
type DocumentRead struct {
	ID             uuid.UUID `json:"id"`
	AccountID      uuid.UUID `json:"accountId"`
	ApprovalURL    string    `json:"membershipApprovalUrl"`
	IDCardURL      string    `json:"idCardUrl"`
	CertificateURL string    `json:"casteCertificateUrl"`
	GeneratedAt    time.Time `json:"generatedAt"`
}
