package admin_test

import (
	"net/http"
	"testing"

	"github.com/sangamhq/sangam/pkg/domain/account"
	"github.com/sangamhq/sangam/webapi/common"
	"github.com/sangamhq/sangam/webapi/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func superToken(t *testing.T, env *testutils.Env) string {
	t.Helper()
	_, token := env.CreateAccount(t, "admin@example.com",
		account.RoleSuperAdmin, account.StatusApproved)
	return token
}

func submitRegistration(t *testing.T, env *testutils.Env, token string) {
	t.Helper()
	resp := env.DoForm(t, http.MethodPost, "/profile", token,
		map[string]string{
			"fullName":    "Asha Kumari",
			"fatherName":  "Ram Kumar",
			"dateOfBirth": "1995-04-12",
			"age":         "31",
			"gender":      "Female",
			"address":     "12 Temple Street",
			"phone":       "9876543210",
		},
		map[string][]byte{
			"aadhaarFile":  []byte("identity-scan"),
			"profilePhoto": []byte("photo-bytes"),
		})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestApproveFlow(t *testing.T) {
	env := testutils.NewEnv(t)
	admin := superToken(t, env)
	member, memberToken := env.Register(t, "asha@example.com", "secret123")
	submitRegistration(t, env, memberToken)

	resp := env.DoJSON(t, http.MethodGet, "/admin/pending", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var pending common.Response
	testutils.Decode(t, resp, &pending)
	require.Len(t, pending.Data.([]any), 1)

	resp = env.DoJSON(t, http.MethodPut, "/admin/approve/"+member.ID.String(), admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body common.Response
	testutils.Decode(t, resp, &body)
	assert.Equal(t, "APPROVED", body.Data.(map[string]any)["status"])

	// Approving again fails the precondition; the queue is empty.
	resp = env.DoJSON(t, http.MethodPut, "/admin/approve/"+member.ID.String(), admin, nil)
	assert.Equal(t, http.StatusPreconditionFailed, resp.StatusCode)

	resp = env.DoJSON(t, http.MethodGet, "/admin/pending", admin, nil)
	testutils.Decode(t, resp, &pending)
	assert.Empty(t, pending.Data)
}

func TestApprove_NotSubmitted(t *testing.T) {
	env := testutils.NewEnv(t)
	admin := superToken(t, env)
	member, _ := env.Register(t, "asha@example.com", "secret123")

	resp := env.DoJSON(t, http.MethodPut, "/admin/approve/"+member.ID.String(), admin, nil)
	assert.Equal(t, http.StatusPreconditionFailed, resp.StatusCode)
}

func TestApprove_BadID(t *testing.T) {
	env := testutils.NewEnv(t)
	admin := superToken(t, env)

	resp := env.DoJSON(t, http.MethodPut, "/admin/approve/not-a-uuid", admin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRejectFlow(t *testing.T) {
	env := testutils.NewEnv(t)
	admin := superToken(t, env)
	member, memberToken := env.Register(t, "asha@example.com", "secret123")
	submitRegistration(t, env, memberToken)

	resp := env.DoJSON(t, http.MethodPut, "/admin/reject/"+member.ID.String(), admin,
		map[string]string{"reason": "Document unreadable"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body common.Response
	testutils.Decode(t, resp, &body)
	assert.Equal(t, "REJECTED", body.Data.(map[string]any)["status"])

	resp = env.DoJSON(t, http.MethodGet, "/profile", memberToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	testutils.Decode(t, resp, &body)
	assert.Equal(t, "Document unreadable", body.Data.(map[string]any)["rejectionReason"])
}

func TestReject_NoBody(t *testing.T) {
	env := testutils.NewEnv(t)
	admin := superToken(t, env)
	member, memberToken := env.Register(t, "asha@example.com", "secret123")
	submitRegistration(t, env, memberToken)

	resp := env.DoJSON(t, http.MethodPut, "/admin/reject/"+member.ID.String(), admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestManagerAdministration(t *testing.T) {
	env := testutils.NewEnv(t)
	admin := superToken(t, env)

	resp := env.DoJSON(t, http.MethodPost, "/admin/managers", admin, map[string]any{
		"email":       "manager@example.com",
		"phone":       "9876500000",
		"password":    "secret123",
		"permissions": []string{"verify_users"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var body common.Response
	testutils.Decode(t, resp, &body)
	created := body.Data.(map[string]any)
	assert.Equal(t, "MANAGER", created["role"])
	assert.Equal(t, "APPROVED", created["status"])
	id := created["id"].(string)

	resp = env.DoJSON(t, http.MethodPut, "/admin/managers/"+id+"/permissions", admin,
		map[string]any{"permissions": []string{"view_funds", "upload_expenses"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	testutils.Decode(t, resp, &body)
	assert.ElementsMatch(t, []any{"view_funds", "upload_expenses"},
		body.Data.(map[string]any)["permissions"])

	resp = env.DoJSON(t, http.MethodGet, "/admin/managers", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	testutils.Decode(t, resp, &body)
	assert.Len(t, body.Data.([]any), 1)
}

func TestCreateManager_InvalidPermission(t *testing.T) {
	env := testutils.NewEnv(t)
	admin := superToken(t, env)

	resp := env.DoJSON(t, http.MethodPost, "/admin/managers", admin, map[string]any{
		"email":       "manager@example.com",
		"phone":       "9876500000",
		"password":    "secret123",
		"permissions": []string{"rule_the_world"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListUsers_Pagination(t *testing.T) {
	env := testutils.NewEnv(t)
	admin := superToken(t, env)
	env.Register(t, "asha@example.com", "secret123")
	env.Register(t, "binod@example.com", "secret123")

	resp := env.DoJSON(t, http.MethodGet, "/admin/users?role=MEMBER&limit=1&page=2", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body common.Response
	testutils.Decode(t, resp, &body)
	data := body.Data.(map[string]any)
	assert.EqualValues(t, 1, data["count"])
	assert.EqualValues(t, 2, data["total"])
	assert.EqualValues(t, 2, data["pages"])
}

func TestListUsers_Search(t *testing.T) {
	env := testutils.NewEnv(t)
	admin := superToken(t, env)
	env.Register(t, "asha@example.com", "secret123")
	env.Register(t, "binod@example.com", "secret123")

	resp := env.DoJSON(t, http.MethodGet, "/admin/users?search=ASHA", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body common.Response
	testutils.Decode(t, resp, &body)
	assert.EqualValues(t, 1, body.Data.(map[string]any)["count"])
}

func TestUpdateUser(t *testing.T) {
	env := testutils.NewEnv(t)
	admin := superToken(t, env)
	member, memberToken := env.Register(t, "asha@example.com", "secret123")
	submitRegistration(t, env, memberToken)

	resp := env.DoForm(t, http.MethodPut, "/admin/users/"+member.ID.String(), admin,
		map[string]string{"fullName": "Asha Devi", "phone": "9111111111"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body common.Response
	testutils.Decode(t, resp, &body)
	assert.Equal(t, "9111111111", body.Data.(map[string]any)["phone"])

	resp = env.DoJSON(t, http.MethodGet, "/profile", memberToken, nil)
	testutils.Decode(t, resp, &body)
	assert.Equal(t, "Asha Devi", body.Data.(map[string]any)["fullName"])
}

func TestDeleteUser(t *testing.T) {
	env := testutils.NewEnv(t)
	admin := superToken(t, env)
	member, memberToken := env.Register(t, "asha@example.com", "secret123")

	resp := env.DoJSON(t, http.MethodDelete, "/admin/users/"+member.ID.String(), admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The deleted account's token no longer authenticates.
	resp = env.DoJSON(t, http.MethodGet, "/auth/me", memberToken, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.DoJSON(t, http.MethodDelete, "/admin/users/"+member.ID.String(), admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAnalytics(t *testing.T) {
	env := testutils.NewEnv(t)
	admin := superToken(t, env)
	env.Register(t, "asha@example.com", "secret123")

	resp := env.DoJSON(t, http.MethodGet, "/admin/analytics", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body common.Response
	testutils.Decode(t, resp, &body)
	data := body.Data.(map[string]any)
	assert.EqualValues(t, 1, data["totalMembers"])
	assert.EqualValues(t, 0, data["totalManagers"])
}

func TestBroadcast(t *testing.T) {
	env := testutils.NewEnv(t)
	admin := superToken(t, env)
	_, memberToken := env.Register(t, "asha@example.com", "secret123")

	resp := env.DoJSON(t, http.MethodPost, "/admin/broadcast", admin,
		map[string]string{"title": "Annual Meet", "message": "Sunday at the hall"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.DoJSON(t, http.MethodGet, "/users/notifications", memberToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body common.Response
	testutils.Decode(t, resp, &body)
	notifs := body.Data.([]any)
	require.Len(t, notifs, 1)
	assert.Equal(t, "Annual Meet", notifs[0].(map[string]any)["title"])
}

func TestAdminRoutes_RequireSuperAdmin(t *testing.T) {
	env := testutils.NewEnv(t)
	_, memberToken := env.Register(t, "asha@example.com", "secret123")

	for _, target := range []string{"/admin/users", "/admin/managers", "/admin/analytics"} {
		resp := env.DoJSON(t, http.MethodGet, target, memberToken, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, target)
	}
}

func TestVerificationRoutes_AllowManagerWithPermission(t *testing.T) {
	env := testutils.NewEnv(t)
	_, verifier := env.CreateAccount(t, "manager@example.com",
		account.RoleManager, account.StatusApproved, account.PermVerifyUsers)
	_, plain := env.CreateAccount(t, "other@example.com",
		account.RoleManager, account.StatusApproved, account.PermViewFunds)

	resp := env.DoJSON(t, http.MethodGet, "/admin/pending", verifier, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.DoJSON(t, http.MethodGet, "/admin/pending", plain, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
