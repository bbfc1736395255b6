package account_test

import (
	"testing"

	"github.com/sangamhq/sangam/pkg/domain/account"
	"github.com/sangamhq/sangam/pkg/domain/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanSubmitRegistration(t *testing.T) {
	t.Parallel()

	assert.NoError(t, account.CanSubmitRegistration(account.StatusNew, false))
	assert.NoError(t, account.CanSubmitRegistration(account.StatusRejected, true))

	err := account.CanSubmitRegistration(account.StatusPendingVerification, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrConflict)

	err = account.CanSubmitRegistration(account.StatusApproved, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestCanApprove(t *testing.T) {
	t.Parallel()

	assert.NoError(t, account.CanApprove(account.StatusPendingVerification))

	for _, status := range []account.Status{
		account.StatusNew,
		account.StatusApproved,
		account.StatusRejected,
	} {
		err := account.CanApprove(status)
		require.Error(t, err, "status %s", status)
		assert.ErrorIs(t, err, common.ErrPreconditionFailed)
	}
}

func TestHasPermission(t *testing.T) {
	t.Parallel()

	superAdmin := &account.Account{Role: account.RoleSuperAdmin}
	assert.True(t, superAdmin.HasPermission(account.PermVerifyUsers))
	assert.True(t, superAdmin.HasPermission(account.PermUploadExpenses))

	manager := &account.Account{
		Role:        account.RoleManager,
		Permissions: []account.Permission{account.PermViewFunds},
	}
	assert.True(t, manager.HasPermission(account.PermViewFunds))
	assert.False(t, manager.HasPermission(account.PermVerifyUsers))

	member := &account.Account{
		Role:        account.RoleMember,
		Permissions: []account.Permission{account.PermViewFunds},
	}
	// Permissions on a plain member grant nothing.
	assert.False(t, member.HasPermission(account.PermViewFunds))
}

func TestHasRole(t *testing.T) {
	t.Parallel()

	manager := &account.Account{Role: account.RoleManager}
	assert.True(t, manager.HasRole(account.RoleManager, account.RoleSuperAdmin))
	assert.False(t, manager.HasRole(account.RoleSuperAdmin))
}

func TestPermissionValid(t *testing.T) {
	t.Parallel()

	assert.True(t, account.PermVerifyUsers.Valid())
	assert.False(t, account.Permission("delete_everything").Valid())
}
