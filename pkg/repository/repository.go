// Package repository declares the persistence interfaces the services
// depend on. Implementations live in infra/repository; tests run the
// same implementations against the sqlite driver.
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangamhq/sangam/pkg/domain/account"
	"github.com/sangamhq/sangam/pkg/domain/ledger"
	"github.com/sangamhq/sangam/pkg/dto"
	"github.com/shopspring/decimal"
)

// AccountRepository persists accounts and the member-ID sequence.
type AccountRepository interface {
	Create(ctx context.Context, create *dto.AccountCreate) error
	Get(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error)
	// GetForUpdate reads the account under a row lock so lifecycle
	// transitions on the same account serialize.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error)
	GetByEmail(ctx context.Context, email string) (*dto.AccountRead, error)
	// GetCredentials returns the stored password hash alongside the
	// account view; Get never exposes it.
	GetCredentials(ctx context.Context, email string) (*dto.AccountRead, string, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filter dto.AccountFilter, page dto.Page) ([]*dto.AccountRead, int64, error)
	ListByStatus(ctx context.Context, status account.Status) ([]*dto.AccountRead, error)
	ListByRole(ctx context.Context, role account.Role) ([]*dto.AccountRead, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status account.Status) error
	UpdatePermissions(ctx context.Context, id uuid.UUID, perms []account.Permission) error
	Update(ctx context.Context, id uuid.UUID, update *dto.AccountUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context, status account.Status) (int64, error)
	CountByRole(ctx context.Context, role account.Role) (int64, error)
	// NextMemberID atomically advances the member sequence and returns
	// the next human-readable identifier. Issued values are never
	// reused.
	NextMemberID(ctx context.Context) (string, error)
}

// ProfileRepository persists registration profiles keyed by account.
type ProfileRepository interface {
	Upsert(ctx context.Context, upsert *dto.ProfileUpsert) (*dto.ProfileRead, error)
	// Update applies a partial administrative edit to an existing
	// profile.
	Update(ctx context.Context, accountID uuid.UUID, update *dto.ProfileUpdate) error
	GetByAccount(ctx context.Context, accountID uuid.UUID) (*dto.ProfileRead, error)
	SetRejectionReason(ctx context.Context, accountID uuid.UUID, reason string) error
	DeleteByAccount(ctx context.Context, accountID uuid.UUID) error
}

// LedgerRepository persists the append-only transaction log.
type LedgerRepository interface {
	Create(ctx context.Context, entry *ledger.Entry) error
	List(ctx context.Context, filter dto.LedgerFilter, page dto.Page) ([]*dto.LedgerEntryRead, int64, error)
	Recent(ctx context.Context, limit int) ([]*dto.LedgerEntryRead, error)
	// Latest returns the entry with the most recent effective date,
	// creation time breaking ties, or nil when the ledger is empty.
	Latest(ctx context.Context) (*dto.LedgerEntryRead, error)
	SumByTypeInRange(ctx context.Context, entryType ledger.EntryType, r ledger.MonthRange) (decimal.Decimal, error)
}

// NotificationRepository persists targeted and broadcast messages.
type NotificationRepository interface {
	Create(ctx context.Context, create *dto.NotificationCreate) (*dto.NotificationRead, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.NotificationRead, error)
	ListForAccount(ctx context.Context, accountID uuid.UUID) ([]*dto.NotificationRead, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	DeleteByAccount(ctx context.Context, accountID uuid.UUID) error
}

// DocumentRepository persists the one-per-account credential bundles.
type DocumentRepository interface {
	// Replace creates the bundle or fully overwrites an existing one.
	Replace(ctx context.Context, accountID uuid.UUID, bundle *dto.DocumentRead) error
	GetByAccount(ctx context.Context, accountID uuid.UUID) (*dto.DocumentRead, error)
	DeleteByAccount(ctx context.Context, accountID uuid.UUID) error
}

// UnitOfWork provides a transaction boundary with typed repository access.
// All repositories obtained inside Do share one database transaction.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error
	Accounts() AccountRepository
	Profiles() ProfileRepository
	Ledger() LedgerRepository
	Notifications() NotificationRepository
	Documents() DocumentRepository
}
