// Package funds implements the ledger use cases: recording entries,
// filtered listings, monthly aggregation and the fund dashboard.
package funds

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sangamhq/sangam/pkg/domain/ledger"
	"github.com/sangamhq/sangam/pkg/dto"
	"github.com/sangamhq/sangam/pkg/repository"
	"github.com/shopspring/decimal"
)

// Service provides the ledger operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
	// now is injectable so dashboard tests can pin the current month.
	now func() time.Time
}

// New creates a funds service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger, now: time.Now}
}

// NewWithClock creates a funds service with a fixed clock for tests.
func NewWithClock(
	uow repository.UnitOfWork,
	logger *slog.Logger,
	now func() time.Time,
) *Service {
	return &Service{uow: uow, logger: logger, now: now}
}

// CreateEntry appends one immutable ledger entry. The declared
// post-transaction balance is stored as given; nothing recomputes or
// verifies it against the existing entries.
func (s *Service) CreateEntry(
	ctx context.Context,
	entryType ledger.EntryType,
	amount decimal.Decimal,
	description string,
	date time.Time,
	balanceAfter decimal.Decimal,
	proofURL string,
	createdBy uuid.UUID,
) (created *dto.LedgerEntryRead, err error) {
	log := s.logger.With("context", "CreateEntry", "type", entryType)

	entry, err := ledger.NewEntry(
		entryType, amount, description, date, balanceAfter, proofURL, createdBy,
	)
	if err != nil {
		log.Warn("CreateEntry rejected", "error", err)
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if err := uow.Ledger().Create(ctx, entry); err != nil {
			return err
		}
		reads, err := uow.Ledger().Recent(ctx, 1)
		if err != nil {
			return err
		}
		if len(reads) > 0 && reads[0].ID == entry.ID {
			created = reads[0]
		}
		return nil
	})
	if err != nil {
		log.Error("CreateEntry failed", "error", err)
		return nil, err
	}
	if created == nil {
		// A concurrent entry postdated ours; return the stored shape
		// without the creator join.
		created = &dto.LedgerEntryRead{
			ID:           entry.ID,
			Type:         entry.Type,
			Amount:       entry.Amount,
			Description:  entry.Description,
			Date:         entry.Date,
			BalanceAfter: entry.BalanceAfter,
			ProofURL:     entry.ProofURL,
			CreatedAt:    entry.CreatedAt,
		}
	}
	log.Info("CreateEntry successful", "entryID", entry.ID)
	return created, nil
}

// List returns entries matching the filter, newest effective date first.
func (s *Service) List(
	ctx context.Context,
	filter dto.LedgerFilter,
	page dto.Page,
) (result dto.Paginated[*dto.LedgerEntryRead], err error) {
	page = page.Normalize()
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		entries, total, err := uow.Ledger().List(ctx, filter, page)
		if err != nil {
			return err
		}
		result = dto.NewPaginated(entries, total, page)
		return nil
	})
	return result, err
}

// MonthlySummary computes one calendar month's received and expense
// totals as two independent sums, plus the latest declared balance.
func (s *Service) MonthlySummary(
	ctx context.Context,
	year int,
	month time.Month,
) (summary ledger.Summary, err error) {
	monthRange := ledger.NewMonthRange(year, month)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		received, err := uow.Ledger().SumByTypeInRange(ctx, ledger.EntryReceived, monthRange)
		if err != nil {
			return err
		}
		expense, err := uow.Ledger().SumByTypeInRange(ctx, ledger.EntryExpense, monthRange)
		if err != nil {
			return err
		}
		balance, err := s.currentBalance(ctx, uow)
		if err != nil {
			return err
		}
		summary = ledger.Summary{
			Received: received,
			Expense:  expense,
			Balance:  balance,
		}
		return nil
	})
	return summary, err
}

// Dashboard aggregates the current month's totals, the latest declared
// balance and the ten most recent entries.
func (s *Service) Dashboard(
	ctx context.Context,
) (dashboard *dto.FundDashboard, err error) {
	now := s.now().UTC()
	summary, err := s.MonthlySummary(ctx, now.Year(), now.Month())
	if err != nil {
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		recent, err := uow.Ledger().Recent(ctx, 10)
		if err != nil {
			return err
		}
		entries := make([]dto.LedgerEntryRead, 0, len(recent))
		for _, e := range recent {
			entries = append(entries, *e)
		}
		dashboard = &dto.FundDashboard{
			Received: summary.Received,
			Expense:  summary.Expense,
			Balance:  summary.Balance,
			Recent:   entries,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dashboard, nil
}

// currentBalance is the declared post-transaction balance of the latest
// entry, zero for an empty ledger. Deliberately trusts the user-declared
// value rather than summing the ledger.
func (s *Service) currentBalance(
	ctx context.Context,
	uow repository.UnitOfWork,
) (decimal.Decimal, error) {
	latest, err := uow.Ledger().Latest(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if latest == nil {
		return decimal.Zero, nil
	}
	return latest.BalanceAfter, nil
}
