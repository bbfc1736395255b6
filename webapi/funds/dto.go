package funds

// EntryInput represents the multipart form fields of a ledger entry.
// The proofScreenshot part is read separately.
type EntryInput struct {
	Amount       string `form:"amount" validate:"required"`
	Description  string `form:"description" validate:"required"`
	Date         string `form:"date"`
	BalanceAfter string `form:"balanceAfterTransaction" validate:"required"`
}
