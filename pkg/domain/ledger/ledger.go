// Package ledger defines the append-only financial transaction record and
// the aggregate shapes derived from it.
package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangamhq/sangam/pkg/domain/common"
	"github.com/shopspring/decimal"
)

// EntryType distinguishes money coming in from money going out.
type EntryType string

const (
	EntryReceived EntryType = "RECEIVED"
	EntryExpense  EntryType = "EXPENSE"
)

// Valid reports whether t is one of the defined entry types.
func (t EntryType) Valid() bool {
	return t == EntryReceived || t == EntryExpense
}

// Entry is one financial transaction. Entries are immutable once created.
// BalanceAfter is the balance the creator declared after recording the
// transaction; it is stored as given, never recomputed.
type Entry struct {
	ID           uuid.UUID       `json:"id"`
	Type         EntryType       `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	Date         time.Time       `json:"date"`
	BalanceAfter decimal.Decimal `json:"balanceAfterTransaction"`
	ProofURL     string          `json:"proofUrl"`
	CreatedBy    uuid.UUID       `json:"createdBy"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// NewEntry validates and assembles an entry. The declared post-transaction
// balance is accepted as-is.
func NewEntry(
	entryType EntryType,
	amount decimal.Decimal,
	description string,
	date time.Time,
	balanceAfter decimal.Decimal,
	proofURL string,
	createdBy uuid.UUID,
) (*Entry, error) {
	if !entryType.Valid() {
		return nil, fmt.Errorf("%w: unknown entry type %q", common.ErrValidation, entryType)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", common.ErrValidation)
	}
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", common.ErrValidation)
	}
	if proofURL == "" {
		return nil, fmt.Errorf("%w: proof image is required", common.ErrValidation)
	}
	if date.IsZero() {
		date = time.Now().UTC()
	}
	return &Entry{
		ID:           uuid.New(),
		Type:         entryType,
		Amount:       amount,
		Description:  description,
		Date:         date,
		BalanceAfter: balanceAfter,
		ProofURL:     proofURL,
		CreatedBy:    createdBy,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// MonthRange is the inclusive bounds of one calendar month in UTC.
type MonthRange struct {
	Start time.Time
	End   time.Time
}

// NewMonthRange computes the first and last instant of the given calendar
// month. Month is 1-based.
func NewMonthRange(year int, month time.Month) MonthRange {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return MonthRange{
		Start: start,
		End:   start.AddDate(0, 1, 0).Add(-time.Nanosecond),
	}
}

// Contains reports whether t falls inside the range.
func (r MonthRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Summary holds one month's independently computed totals plus the latest
// self-declared balance.
type Summary struct {
	Received decimal.Decimal `json:"monthlyFundsReceived"`
	Expense  decimal.Decimal `json:"monthlyExpenses"`
	Balance  decimal.Decimal `json:"latestBalance"`
}
