package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	accountmodel "github.com/sangamhq/sangam/infra/repository/account"
	domainledger "github.com/sangamhq/sangam/pkg/domain/ledger"
	"github.com/sangamhq/sangam/pkg/dto"
	"github.com/sangamhq/sangam/pkg/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ledgerRepository struct {
	db *gorm.DB
}

// New creates a ledger repository bound to the given session.
func New(db *gorm.DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Create(
	ctx context.Context,
	entry *domainledger.Entry,
) error {
	model := &Entry{
		ID:           entry.ID,
		Type:         string(entry.Type),
		Amount:       entry.Amount,
		Description:  entry.Description,
		Date:         entry.Date,
		BalanceAfter: entry.BalanceAfter,
		ProofURL:     entry.ProofURL,
		CreatedBy:    entry.CreatedBy,
		CreatedAt:    entry.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(model).Error
}

func applyFilter(db *gorm.DB, filter dto.LedgerFilter) *gorm.DB {
	if filter.Type != "" {
		db = db.Where("type = ?", string(filter.Type))
	}
	if filter.Year != 0 && filter.Month != 0 {
		r := domainledger.NewMonthRange(filter.Year, time.Month(filter.Month))
		db = db.Where("date >= ? AND date <= ?", r.Start, r.End)
	}
	return db
}

func (r *ledgerRepository) List(
	ctx context.Context,
	filter dto.LedgerFilter,
	page dto.Page,
) ([]*dto.LedgerEntryRead, int64, error) {
	var total int64
	query := applyFilter(r.db.WithContext(ctx).Model(&Entry{}), filter)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []Entry
	err := query.
		Order("date DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	reads, err := r.joinCreators(ctx, models)
	if err != nil {
		return nil, 0, err
	}
	return reads, total, nil
}

func (r *ledgerRepository) Recent(
	ctx context.Context,
	limit int,
) ([]*dto.LedgerEntryRead, error) {
	var models []Entry
	err := r.db.WithContext(ctx).
		Order("date DESC, created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.joinCreators(ctx, models)
}

func (r *ledgerRepository) Latest(
	ctx context.Context,
) (*dto.LedgerEntryRead, error) {
	var model Entry
	err := r.db.WithContext(ctx).
		Order("date DESC, created_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	reads, err := r.joinCreators(ctx, []Entry{model})
	if err != nil {
		return nil, err
	}
	return reads[0], nil
}

// SumByTypeInRange computes one month's total for a single entry type.
// The two monthly totals are independent sums, never a running balance.
func (r *ledgerRepository) SumByTypeInRange(
	ctx context.Context,
	entryType domainledger.EntryType,
	monthRange domainledger.MonthRange,
) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&Entry{}).
		Select("SUM(amount)").
		Where("type = ? AND date >= ? AND date <= ?",
			string(entryType), monthRange.Start, monthRange.End).
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

// joinCreators resolves creator summaries in one batched query. Entries
// whose creator was deleted keep a nil creator; the financial record
// itself is preserved.
func (r *ledgerRepository) joinCreators(
	ctx context.Context,
	models []Entry,
) ([]*dto.LedgerEntryRead, error) {
	ids := make([]uuid.UUID, 0, len(models))
	seen := make(map[uuid.UUID]struct{}, len(models))
	for i := range models {
		if _, ok := seen[models[i].CreatedBy]; !ok {
			seen[models[i].CreatedBy] = struct{}{}
			ids = append(ids, models[i].CreatedBy)
		}
	}

	creators := make(map[uuid.UUID]*dto.AccountSummary, len(ids))
	if len(ids) > 0 {
		var accounts []accountmodel.Account
		err := r.db.WithContext(ctx).
			Where("id IN ?", ids).
			Find(&accounts).Error
		if err != nil {
			return nil, err
		}
		for i := range accounts {
			creators[accounts[i].ID] = &dto.AccountSummary{
				ID:       accounts[i].ID,
				MemberID: accounts[i].MemberID,
				Email:    accounts[i].Email,
			}
		}
	}

	reads := make([]*dto.LedgerEntryRead, 0, len(models))
	for i := range models {
		reads = append(reads, &dto.LedgerEntryRead{
			ID:           models[i].ID,
			Type:         domainledger.EntryType(models[i].Type),
			Amount:       models[i].Amount,
			Description:  models[i].Description,
			Date:         models[i].Date,
			BalanceAfter: models[i].BalanceAfter,
			ProofURL:     models[i].ProofURL,
			Creator:      creators[models[i].CreatedBy],
			CreatedAt:    models[i].CreatedAt,
		})
	}
	return reads, nil
}
