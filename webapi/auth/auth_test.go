package auth_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/sangamhq/sangam/webapi/common"
	"github.com/sangamhq/sangam/webapi/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterEndpoint(t *testing.T) {
	env := testutils.NewEnv(t)

	resp := env.DoJSON(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    "asha@example.com",
		"phone":    "9876543210",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body common.Response
	testutils.Decode(t, resp, &body)
	assert.Equal(t, "Registered successfully", body.Message)
	data := body.Data.(map[string]any)
	assert.NotEmpty(t, data["token"])
	acct := data["account"].(map[string]any)
	assert.Equal(t, "member_1", acct["memberId"])
	assert.Equal(t, "NEW", acct["status"])
}

func TestRegisterEndpoint_Validation(t *testing.T) {
	env := testutils.NewEnv(t)

	cases := []struct {
		name string
		body map[string]string
	}{
		{"bad email", map[string]string{"email": "nope", "phone": "9876543210", "password": "secret123"}},
		{"short phone", map[string]string{"email": "a@b.com", "phone": "123", "password": "secret123"}},
		{"short password", map[string]string{"email": "a@b.com", "phone": "9876543210", "password": "abc"}},
		{"password beyond bcrypt limit", map[string]string{
			"email":    "a@b.com",
			"phone":    "9876543210",
			"password": strings.Repeat("x", 73),
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := env.DoJSON(t, http.MethodPost, "/auth/register", "", tc.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestRegisterEndpoint_DuplicateEmail(t *testing.T) {
	env := testutils.NewEnv(t)
	env.Register(t, "asha@example.com", "secret123")

	resp := env.DoJSON(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    "asha@example.com",
		"phone":    "9876543210",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var pd common.ProblemDetails
	testutils.Decode(t, resp, &pd)
	assert.Equal(t, "Couldn't register", pd.Title)
	assert.Equal(t, http.StatusConflict, pd.Status)
}

func TestLoginEndpoint(t *testing.T) {
	env := testutils.NewEnv(t)

	resp := env.DoJSON(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    "asha@example.com",
		"phone":    "9876543210",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.DoJSON(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "asha@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body common.Response
	testutils.Decode(t, resp, &body)
	assert.Equal(t, "Success login", body.Message)
	assert.NotEmpty(t, body.Data.(map[string]any)["token"])
}

func TestLoginEndpoint_WrongPassword(t *testing.T) {
	env := testutils.NewEnv(t)
	env.Register(t, "asha@example.com", "secret123")

	resp := env.DoJSON(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "asha@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMeEndpoint(t *testing.T) {
	env := testutils.NewEnv(t)
	acct, token := env.Register(t, "asha@example.com", "secret123")

	resp := env.DoJSON(t, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body common.Response
	testutils.Decode(t, resp, &body)
	data := body.Data.(map[string]any)
	assert.Equal(t, acct.Email, data["email"])
}

func TestMeEndpoint_NoToken(t *testing.T) {
	env := testutils.NewEnv(t)

	resp := env.DoJSON(t, http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
