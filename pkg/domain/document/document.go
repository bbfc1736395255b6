// Package document defines the placeholder credential bundle generated
// when a registration is approved.
package document

import (
	"time"

	"github.com/google/uuid"
)

// Placeholder file references served for every approved member until real
// document generation exists.
const (
	ApprovalTemplateURL    = "/uploads/documents/membership_template.pdf"
	IDCardTemplateURL      = "/uploads/documents/id_card_template.pdf"
	CertificateTemplateURL = "/uploads/documents/caste_certificate_template.pdf"
)

// Bundle holds the three credential file references for one account.
// It is created or fully replaced as a side effect of approval, never
// partially updated.
type Bundle struct {
	ID             uuid.UUID `json:"id"`
	AccountID      uuid.UUID `json:"accountId"`
	ApprovalURL    string    `json:"membershipApprovalUrl"`
	IDCardURL      string    `json:"idCardUrl"`
	CertificateURL string    `json:"casteCertificateUrl"`
	GeneratedAt    time.Time `json:"generatedAt"`
}

// NewBundle assembles a fresh placeholder bundle for the account.
func NewBundle(accountID uuid.UUID) *Bundle {
	return &Bundle{
		ID:             uuid.New(),
		AccountID:      accountID,
		ApprovalURL:    ApprovalTemplateURL,
		IDCardURL:      IDCardTemplateURL,
		CertificateURL: CertificateTemplateURL,
		GeneratedAt:    time.Now().UTC(),
	}
}
