package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangamhq/sangam/pkg/domain/ledger"
	"github.com/shopspring/decimal"
)

// LedgerEntryRead is the read-optimized view of one ledger entry with the
// creator summary joined in. Creator is nil when the creating account has
// since been deleted; the entry itself is preserved.
type LedgerEntryRead struct {
	ID           uuid.UUID        `json:"id"`
	Type         ledger.EntryType `json:"type"`
	Amount       decimal.Decimal  `json:"amount"`
	Description  string           `json:"description"`
	Date         time.Time        `json:"date"`
	BalanceAfter decimal.Decimal  `json:"balanceAfterTransaction"`
	ProofURL     string           `json:"proofUrl"`
	Creator      *AccountSummary  `json:"createdBy,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// FundDashboard aggregates the current month's totals, the latest declared
// balance and the most recent entries.
type FundDashboard struct {
	Received decimal.Decimal   `json:"monthlyFundsReceived"`
	Expense  decimal.Decimal   `json:"monthlyExpenses"`
	Balance  decimal.Decimal   `json:"latestBalance"`
	Recent   []LedgerEntryRead `json:"recentTransactions"`
}
