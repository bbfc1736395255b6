// Package fixtures provides shared test setup: in-memory databases and
// seeded accounts.
package fixtures

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	infrarepository "github.com/sangamhq/sangam/infra/repository"
	"github.com/sangamhq/sangam/pkg/domain/account"
	"github.com/sangamhq/sangam/pkg/dto"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a fresh in-memory database with the schema migrated.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, infrarepository.Migrate(db))
	return db
}

// NewTestUoW opens a fresh in-memory database and wraps it in a UoW.
func NewTestUoW(t *testing.T) *infrarepository.UoW {
	t.Helper()
	return infrarepository.NewUoW(NewTestDB(t))
}

// QuietLogger returns a logger that discards everything.
func QuietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// CreateAccount inserts an account with a fresh member ID and returns it.
func CreateAccount(
	t *testing.T,
	uow *infrarepository.UoW,
	email string,
	role account.Role,
	status account.Status,
	perms ...account.Permission,
) *dto.AccountRead {
	t.Helper()
	ctx := context.Background()
	accounts := uow.Accounts()
	memberID, err := accounts.NextMemberID(ctx)
	require.NoError(t, err)
	if perms == nil {
		perms = []account.Permission{}
	}
	id := uuid.New()
	require.NoError(t, accounts.Create(ctx, &dto.AccountCreate{
		ID:          id,
		MemberID:    memberID,
		Email:       email,
		Phone:       "9876543210",
		Password:    "hash",
		Role:        role,
		Permissions: perms,
		Status:      status,
	}))
	acct, err := accounts.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, acct)
	return acct
}
