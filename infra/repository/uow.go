// Package repository implements the persistence interfaces on GORM.
package repository

import (
	"context"

	accountrepo "github.com/sangamhq/sangam/infra/repository/account"
	documentrepo "github.com/sangamhq/sangam/infra/repository/document"
	ledgerrepo "github.com/sangamhq/sangam/infra/repository/ledger"
	notificationrepo "github.com/sangamhq/sangam/infra/repository/notification"
	profilerepo "github.com/sangamhq/sangam/infra/repository/profile"
	"github.com/sangamhq/sangam/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides a transaction boundary with typed repository access.
// Every repository obtained from the UoW passed to Do shares the same
// database transaction, so a lifecycle transition and its precondition
// check cannot interleave with a concurrent transition on the same row.
type UoW struct {
	db *gorm.DB
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn inside a database transaction, handing it a UoW bound to the
// transaction session.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: tx})
	})
}

// Accounts returns the account repository bound to the current session.
func (u *UoW) Accounts() repository.AccountRepository {
	return accountrepo.New(u.db)
}

// Profiles returns the profile repository bound to the current session.
func (u *UoW) Profiles() repository.ProfileRepository {
	return profilerepo.New(u.db)
}

// Ledger returns the ledger repository bound to the current session.
func (u *UoW) Ledger() repository.LedgerRepository {
	return ledgerrepo.New(u.db)
}

// Notifications returns the notification repository bound to the current
// session.
func (u *UoW) Notifications() repository.NotificationRepository {
	return notificationrepo.New(u.db)
}

// Documents returns the document repository bound to the current session.
func (u *UoW) Documents() repository.DocumentRepository {
	return documentrepo.New(u.db)
}
