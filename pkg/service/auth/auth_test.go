package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sangamhq/sangam/internal/fixtures"
	"github.com/sangamhq/sangam/pkg/config"
	"github.com/sangamhq/sangam/pkg/domain/account"
	"github.com/sangamhq/sangam/pkg/domain/common"
	"github.com/sangamhq/sangam/pkg/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJwt = &config.Jwt{Secret: "test-secret", Expiry: time.Hour}

func newService(t *testing.T) *auth.Service {
	t.Helper()
	return auth.New(fixtures.NewTestUoW(t), testJwt, fixtures.QuietLogger())
}

func TestRegister(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, "asha@example.com", "9876543210", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "member_1", created.MemberID)
	assert.Equal(t, account.RoleMember, created.Role)
	assert.Equal(t, account.StatusNew, created.Status)

	_, err = svc.Register(ctx, "asha@example.com", "9876543210", "secret123")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestLogin(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, "asha@example.com", "9876543210", "secret123")
	require.NoError(t, err)

	acct, err := svc.Login(ctx, "asha@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, acct.ID)
}

func TestLogin_WrongCredentialsIndistinguishable(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "asha@example.com", "9876543210", "secret123")
	require.NoError(t, err)

	_, badPassword := svc.Login(ctx, "asha@example.com", "wrong")
	_, unknownEmail := svc.Login(ctx, "nobody@example.com", "secret123")

	require.Error(t, badPassword)
	require.Error(t, unknownEmail)
	assert.ErrorIs(t, badPassword, common.ErrUnauthenticated)
	// The same error for both; callers cannot probe registered emails.
	assert.Equal(t, badPassword.Error(), unknownEmail.Error())
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, "asha@example.com", "9876543210", "secret123")
	require.NoError(t, err)

	signed, err := svc.GenerateToken(created)
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(t *jwt.Token) (any, error) {
		return []byte(testJwt.Secret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	id, err := svc.CurrentAccountID(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, id)

	acct, err := svc.CurrentAccount(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, created.Email, acct.Email)
}

func TestCurrentAccount_DeletedAccount(t *testing.T) {
	uow := fixtures.NewTestUoW(t)
	svc := auth.New(uow, testJwt, fixtures.QuietLogger())
	ctx := context.Background()

	created, err := svc.Register(ctx, "asha@example.com", "9876543210", "secret123")
	require.NoError(t, err)
	signed, err := svc.GenerateToken(created)
	require.NoError(t, err)
	token, err := jwt.Parse(signed, func(t *jwt.Token) (any, error) {
		return []byte(testJwt.Secret), nil
	})
	require.NoError(t, err)

	require.NoError(t, uow.Accounts().Delete(ctx, created.ID))

	_, err = svc.CurrentAccount(ctx, token)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestHashPassword(t *testing.T) {
	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)
	assert.True(t, auth.CheckPasswordHash("secret123", hash))
	assert.False(t, auth.CheckPasswordHash("other", hash))
}
