package profile_test

import (
	"net/http"
	"testing"

	"github.com/sangamhq/sangam/pkg/domain/account"
	"github.com/sangamhq/sangam/webapi/common"
	"github.com/sangamhq/sangam/webapi/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() map[string]string {
	return map[string]string{
		"fullName":    "Asha Kumari",
		"fatherName":  "Ram Kumar",
		"dateOfBirth": "1995-04-12",
		"age":         "31",
		"gender":      "Female",
		"address":     "12 Temple Street",
		"phone":       "9876543210",
	}
}

func uploads() map[string][]byte {
	return map[string][]byte{
		"aadhaarFile":  []byte("identity-scan"),
		"profilePhoto": []byte("photo-bytes"),
	}
}

func TestSubmitProfile(t *testing.T) {
	env := testutils.NewEnv(t)
	_, token := env.Register(t, "asha@example.com", "secret123")

	resp := env.DoForm(t, http.MethodPost, "/profile", token, validForm(), uploads())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body common.Response
	testutils.Decode(t, resp, &body)
	assert.Equal(t, "Registration submitted for verification", body.Message)
	data := body.Data.(map[string]any)
	assert.Equal(t, "Asha Kumari", data["fullName"])
	assert.NotEmpty(t, data["identityFileUrl"])

	resp = env.DoJSON(t, http.MethodGet, "/auth/me", token, nil)
	var me common.Response
	testutils.Decode(t, resp, &me)
	assert.Equal(t, "PENDING_VERIFICATION", me.Data.(map[string]any)["status"])
}

func TestSubmitProfile_MissingFiles(t *testing.T) {
	env := testutils.NewEnv(t)
	_, token := env.Register(t, "asha@example.com", "secret123")

	resp := env.DoForm(t, http.MethodPost, "/profile", token, validForm(), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSubmitProfile_BadDate(t *testing.T) {
	env := testutils.NewEnv(t)
	_, token := env.Register(t, "asha@example.com", "secret123")

	form := validForm()
	form["dateOfBirth"] = "12-04-1995"
	resp := env.DoForm(t, http.MethodPost, "/profile", token, form, uploads())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSubmitProfile_WhilePending(t *testing.T) {
	env := testutils.NewEnv(t)
	_, token := env.Register(t, "asha@example.com", "secret123")

	resp := env.DoForm(t, http.MethodPost, "/profile", token, validForm(), uploads())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.DoForm(t, http.MethodPost, "/profile", token, validForm(), uploads())
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSubmitProfile_NonMemberForbidden(t *testing.T) {
	env := testutils.NewEnv(t)
	_, token := env.CreateAccount(t, "admin@example.com",
		account.RoleSuperAdmin, account.StatusApproved)

	resp := env.DoForm(t, http.MethodPost, "/profile", token, validForm(), uploads())
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGetOwnProfile_BeforeSubmission(t *testing.T) {
	env := testutils.NewEnv(t)
	_, token := env.Register(t, "asha@example.com", "secret123")

	resp := env.DoJSON(t, http.MethodGet, "/profile", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetProfileByAccount_Permissions(t *testing.T) {
	env := testutils.NewEnv(t)
	member, memberToken := env.Register(t, "asha@example.com", "secret123")
	resp := env.DoForm(t, http.MethodPost, "/profile", memberToken, validForm(), uploads())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	_, verifier := env.CreateAccount(t, "manager@example.com",
		account.RoleManager, account.StatusApproved, account.PermVerifyUsers)
	resp = env.DoJSON(t, http.MethodGet, "/profile/"+member.ID.String(), verifier, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, other := env.Register(t, "other@example.com", "secret123")
	resp = env.DoJSON(t, http.MethodGet, "/profile/"+member.ID.String(), other, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
