package registration_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	infraeventbus "github.com/sangamhq/sangam/infra/eventbus"
	infrarepository "github.com/sangamhq/sangam/infra/repository"
	"github.com/sangamhq/sangam/internal/fixtures"
	"github.com/sangamhq/sangam/pkg/domain/account"
	"github.com/sangamhq/sangam/pkg/domain/common"
	domainledger "github.com/sangamhq/sangam/pkg/domain/ledger"
	"github.com/sangamhq/sangam/pkg/domain/notification"
	"github.com/sangamhq/sangam/pkg/dto"
	"github.com/sangamhq/sangam/pkg/service/registration"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*registration.Service, *infrarepository.UoW) {
	t.Helper()
	uow := fixtures.NewTestUoW(t)
	logger := fixtures.QuietLogger()
	bus := infraeventbus.NewWithMemory(logger)
	registration.RegisterSideEffects(bus, uow, logger)
	return registration.New(uow, bus, logger), uow
}

func validForm() *dto.ProfileUpsert {
	return &dto.ProfileUpsert{
		FullName:        "Asha Kumar",
		FatherName:      "Ravi Kumar",
		DateOfBirth:     time.Date(1992, 4, 12, 0, 0, 0, 0, time.UTC),
		Age:             34,
		Gender:          "Female",
		Address:         "12 Temple Road",
		Phone:           "9876543210",
		IdentityFileURL: "/uploads/aadhaar/a.pdf",
		PhotoURL:        "/uploads/photos/a.jpg",
	}
}

func TestSubmitRegistration_MovesToPending(t *testing.T) {
	svc, uow := newService(t)
	ctx := context.Background()

	acct := fixtures.CreateAccount(t, uow, "asha@example.com",
		account.RoleMember, account.StatusNew)

	prof, err := svc.SubmitRegistration(ctx, acct.ID, validForm())
	require.NoError(t, err)
	assert.Equal(t, "Asha Kumar", prof.FullName)

	updated, err := uow.Accounts().Get(ctx, acct.ID)
	require.NoError(t, err)
	assert.Equal(t, account.StatusPendingVerification, updated.Status)
}

func TestSubmitRegistration_ConflictWhilePending(t *testing.T) {
	svc, uow := newService(t)
	ctx := context.Background()

	acct := fixtures.CreateAccount(t, uow, "asha@example.com",
		account.RoleMember, account.StatusNew)
	_, err := svc.SubmitRegistration(ctx, acct.ID, validForm())
	require.NoError(t, err)

	_, err = svc.SubmitRegistration(ctx, acct.ID, validForm())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestSubmitRegistration_RequiresBothFiles(t *testing.T) {
	svc, uow := newService(t)
	ctx := context.Background()

	acct := fixtures.CreateAccount(t, uow, "asha@example.com",
		account.RoleMember, account.StatusNew)

	form := validForm()
	form.PhotoURL = ""
	_, err := svc.SubmitRegistration(ctx, acct.ID, form)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestSubmitRegistration_ResubmitKeepsOldFiles(t *testing.T) {
	svc, uow := newService(t)
	ctx := context.Background()

	acct := fixtures.CreateAccount(t, uow, "asha@example.com",
		account.RoleMember, account.StatusNew)
	_, err := svc.SubmitRegistration(ctx, acct.ID, validForm())
	require.NoError(t, err)
	_, err = svc.Reject(ctx, acct.ID, "photo unclear")
	require.NoError(t, err)

	resubmission := validForm()
	resubmission.IdentityFileURL = ""
	resubmission.PhotoURL = ""
	prof, err := svc.SubmitRegistration(ctx, acct.ID, resubmission)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/aadhaar/a.pdf", prof.IdentityFileURL)
	assert.Equal(t, "/uploads/photos/a.jpg", prof.PhotoURL)
	assert.Empty(t, prof.RejectionReason)

	updated, err := uow.Accounts().Get(ctx, acct.ID)
	require.NoError(t, err)
	assert.Equal(t, account.StatusPendingVerification, updated.Status)
}

func TestApprove_CreatesNotificationAndDocuments(t *testing.T) {
	svc, uow := newService(t)
	ctx := context.Background()

	acct := fixtures.CreateAccount(t, uow, "asha@example.com",
		account.RoleMember, account.StatusNew)
	_, err := svc.SubmitRegistration(ctx, acct.ID, validForm())
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, acct.ID)
	require.NoError(t, err)
	assert.Equal(t, account.StatusApproved, approved.Status)

	notifs, err := uow.Notifications().ListForAccount(ctx, acct.ID)
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.Equal(t, "Registration Approved", notifs[0].Title)
	assert.Equal(t, notification.CategoryApproval, notifs[0].Category)

	docs, err := uow.Documents().GetByAccount(ctx, acct.ID)
	require.NoError(t, err)
	require.NotNil(t, docs)
	assert.Equal(t, "/uploads/documents/membership_template.pdf", docs.ApprovalURL)
}

func TestApprove_OnlyFromPending(t *testing.T) {
	svc, uow := newService(t)
	ctx := context.Background()

	acct := fixtures.CreateAccount(t, uow, "asha@example.com",
		account.RoleMember, account.StatusNew)

	_, err := svc.Approve(ctx, acct.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrPreconditionFailed)
}

func TestApprove_SecondCallFailsPrecondition(t *testing.T) {
	svc, uow := newService(t)
	ctx := context.Background()

	acct := fixtures.CreateAccount(t, uow, "asha@example.com",
		account.RoleMember, account.StatusNew)
	_, err := svc.SubmitRegistration(ctx, acct.ID, validForm())
	require.NoError(t, err)
	_, err = svc.Approve(ctx, acct.ID)
	require.NoError(t, err)

	_, err = svc.Approve(ctx, acct.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrPreconditionFailed)

	// The first approval's side effects stand untouched.
	notifs, err := uow.Notifications().ListForAccount(ctx, acct.ID)
	require.NoError(t, err)
	assert.Len(t, notifs, 1)
}

func TestReject_FromAnyStatusWithReason(t *testing.T) {
	svc, uow := newService(t)
	ctx := context.Background()

	acct := fixtures.CreateAccount(t, uow, "asha@example.com",
		account.RoleMember, account.StatusNew)
	_, err := svc.SubmitRegistration(ctx, acct.ID, validForm())
	require.NoError(t, err)
	_, err = svc.Approve(ctx, acct.ID)
	require.NoError(t, err)

	// Rejection is legal even after approval.
	rejected, err := svc.Reject(ctx, acct.ID, "membership revoked")
	require.NoError(t, err)
	assert.Equal(t, account.StatusRejected, rejected.Status)

	prof, err := uow.Profiles().GetByAccount(ctx, acct.ID)
	require.NoError(t, err)
	assert.Equal(t, "membership revoked", prof.RejectionReason)

	notifs, err := uow.Notifications().ListForAccount(ctx, acct.ID)
	require.NoError(t, err)
	require.Len(t, notifs, 2)
	var rejection *dto.NotificationRead
	for _, n := range notifs {
		if n.Category == notification.CategoryRejection {
			rejection = n
		}
	}
	require.NotNil(t, rejection)
	assert.Equal(t, "Registration Rejected", rejection.Title)
	assert.Equal(t, "membership revoked", rejection.Message)
}

func TestReject_DefaultReasonAndMessage(t *testing.T) {
	svc, uow := newService(t)
	ctx := context.Background()

	acct := fixtures.CreateAccount(t, uow, "asha@example.com",
		account.RoleMember, account.StatusNew)
	_, err := svc.SubmitRegistration(ctx, acct.ID, validForm())
	require.NoError(t, err)

	_, err = svc.Reject(ctx, acct.ID, "")
	require.NoError(t, err)

	prof, err := uow.Profiles().GetByAccount(ctx, acct.ID)
	require.NoError(t, err)
	assert.Equal(t, registration.DefaultRejectionReason, prof.RejectionReason)

	notifs, err := uow.Notifications().ListForAccount(ctx, acct.ID)
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.Equal(t,
		"Your community registration has been rejected. Please update your details and resubmit.",
		notifs[0].Message)
}

func TestReject_BeforeAnySubmission(t *testing.T) {
	svc, uow := newService(t)
	ctx := context.Background()

	acct := fixtures.CreateAccount(t, uow, "asha@example.com",
		account.RoleMember, account.StatusNew)

	rejected, err := svc.Reject(ctx, acct.ID, "spam account")
	require.NoError(t, err)
	assert.Equal(t, account.StatusRejected, rejected.Status)

	prof, err := uow.Profiles().GetByAccount(ctx, acct.ID)
	require.NoError(t, err)
	assert.Nil(t, prof)
}

func TestCreateManager(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.CreateManager(ctx, "mgr@example.com", "9876500000", "secret123",
		[]account.Permission{account.PermVerifyUsers})
	require.NoError(t, err)
	assert.Equal(t, account.RoleManager, created.Role)
	assert.Equal(t, account.StatusApproved, created.Status)
	assert.Equal(t, []account.Permission{account.PermVerifyUsers}, created.Permissions)

	_, err = svc.CreateManager(ctx, "mgr@example.com", "9876500000", "secret123", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestCreateManager_InvalidPermission(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.CreateManager(context.Background(),
		"mgr@example.com", "9876500000", "secret123",
		[]account.Permission{"rule_the_world"})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestUpdateManagerPermissions(t *testing.T) {
	svc, uow := newService(t)
	ctx := context.Background()

	mgr, err := svc.CreateManager(ctx, "mgr@example.com", "9876500000", "secret123",
		[]account.Permission{account.PermVerifyUsers})
	require.NoError(t, err)

	updated, err := svc.UpdateManagerPermissions(ctx, mgr.ID,
		[]account.Permission{account.PermViewFunds, account.PermUploadExpenses})
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]account.Permission{account.PermViewFunds, account.PermUploadExpenses},
		updated.Permissions)

	member := fixtures.CreateAccount(t, uow, "m@example.com",
		account.RoleMember, account.StatusApproved)
	_, err = svc.UpdateManagerPermissions(ctx, member.ID, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdateAccount_EmailConflict(t *testing.T) {
	svc, uow := newService(t)
	ctx := context.Background()

	fixtures.CreateAccount(t, uow, "taken@example.com",
		account.RoleMember, account.StatusApproved)
	acct := fixtures.CreateAccount(t, uow, "asha@example.com",
		account.RoleMember, account.StatusApproved)

	taken := "taken@example.com"
	_, err := svc.UpdateAccount(ctx, acct.ID, &dto.AccountUpdate{Email: &taken}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestUpdateAccount_ProfileEditOnlyWhenSubmitted(t *testing.T) {
	svc, uow := newService(t)
	ctx := context.Background()

	acct := fixtures.CreateAccount(t, uow, "asha@example.com",
		account.RoleMember, account.StatusNew)

	name := "New Name"
	// No profile yet: the profile part is silently skipped.
	_, err := svc.UpdateAccount(ctx, acct.ID, nil, &dto.ProfileUpdate{FullName: &name})
	require.NoError(t, err)

	_, err = svc.SubmitRegistration(ctx, acct.ID, validForm())
	require.NoError(t, err)

	_, err = svc.UpdateAccount(ctx, acct.ID, nil, &dto.ProfileUpdate{FullName: &name})
	require.NoError(t, err)
	prof, err := uow.Profiles().GetByAccount(ctx, acct.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", prof.FullName)
}

func TestDeleteAccount_CascadePreservesLedger(t *testing.T) {
	svc, uow := newService(t)
	ctx := context.Background()

	acct := fixtures.CreateAccount(t, uow, "asha@example.com",
		account.RoleMember, account.StatusNew)
	_, err := svc.SubmitRegistration(ctx, acct.ID, validForm())
	require.NoError(t, err)
	_, err = svc.Approve(ctx, acct.ID)
	require.NoError(t, err)

	entry, err := domainledger.NewEntry(domainledger.EntryReceived,
		decimal.NewFromInt(100), "donation", time.Now().UTC(),
		decimal.NewFromInt(100), "/p.jpg", acct.ID)
	require.NoError(t, err)
	require.NoError(t, uow.Ledger().Create(ctx, entry))

	require.NoError(t, svc.DeleteAccount(ctx, acct.ID))

	gone, err := uow.Accounts().Get(ctx, acct.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
	prof, err := uow.Profiles().GetByAccount(ctx, acct.ID)
	require.NoError(t, err)
	assert.Nil(t, prof)
	docs, err := uow.Documents().GetByAccount(ctx, acct.ID)
	require.NoError(t, err)
	assert.Nil(t, docs)
	notifs, err := uow.Notifications().ListForAccount(ctx, acct.ID)
	require.NoError(t, err)
	assert.Empty(t, notifs)

	reads, total, err := uow.Ledger().List(ctx, dto.LedgerFilter{}, dto.Page{Number: 1, Size: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, reads, 1)
	assert.Nil(t, reads[0].Creator)
}

func TestDeleteAccount_NotFound(t *testing.T) {
	svc, _ := newService(t)
	err := svc.DeleteAccount(context.Background(), uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetProfile_NotSubmitted(t *testing.T) {
	svc, uow := newService(t)
	ctx := context.Background()

	acct := fixtures.CreateAccount(t, uow, "asha@example.com",
		account.RoleMember, account.StatusNew)

	_, err := svc.GetProfile(ctx, acct.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Contains(t, err.Error(), "complete community registration first")
}

func TestListPending_JoinsProfiles(t *testing.T) {
	svc, uow := newService(t)
	ctx := context.Background()

	acct := fixtures.CreateAccount(t, uow, "asha@example.com",
		account.RoleMember, account.StatusNew)
	_, err := svc.SubmitRegistration(ctx, acct.ID, validForm())
	require.NoError(t, err)
	fixtures.CreateAccount(t, uow, "new@example.com",
		account.RoleMember, account.StatusNew)

	pending, err := svc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, acct.ID, pending[0].Account.ID)
	require.NotNil(t, pending[0].Profile)
	assert.Equal(t, "Asha Kumar", pending[0].Profile.FullName)
}
