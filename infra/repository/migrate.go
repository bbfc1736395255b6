package repository

import (
	accountrepo "github.com/sangamhq/sangam/infra/repository/account"
	documentrepo "github.com/sangamhq/sangam/infra/repository/document"
	ledgerrepo "github.com/sangamhq/sangam/infra/repository/ledger"
	notificationrepo "github.com/sangamhq/sangam/infra/repository/notification"
	profilerepo "github.com/sangamhq/sangam/infra/repository/profile"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for every model. Called once at
// startup and by tests against their in-memory databases.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&accountrepo.Account{},
		&accountrepo.Sequence{},
		&profilerepo.Profile{},
		&ledgerrepo.Entry{},
		&notificationrepo.Notification{},
		&documentrepo.Bundle{},
	)
}
