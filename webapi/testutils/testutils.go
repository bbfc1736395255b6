// Package testutils wires a full application over an in-memory
// database for handler tests.
package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	infraeventbus "github.com/sangamhq/sangam/infra/eventbus"
	infrarepository "github.com/sangamhq/sangam/infra/repository"
	infrastorage "github.com/sangamhq/sangam/infra/storage"
	"github.com/sangamhq/sangam/internal/fixtures"
	"github.com/sangamhq/sangam/pkg/config"
	"github.com/sangamhq/sangam/pkg/domain/account"
	"github.com/sangamhq/sangam/pkg/dto"
	adminsvc "github.com/sangamhq/sangam/pkg/service/admin"
	authsvc "github.com/sangamhq/sangam/pkg/service/auth"
	fundssvc "github.com/sangamhq/sangam/pkg/service/funds"
	membersvc "github.com/sangamhq/sangam/pkg/service/member"
	"github.com/sangamhq/sangam/pkg/service/registration"
	"github.com/sangamhq/sangam/webapi"
	"github.com/stretchr/testify/require"
)

// Env is a fully wired application backed by an in-memory database and
// temp-dir file storage.
type Env struct {
	App  *fiber.App
	UoW  *infrarepository.UoW
	Auth *authsvc.Service
	Cfg  *config.App
}

// NewEnv assembles the application the way the initializer does, minus
// the real database and disk locations.
func NewEnv(t *testing.T) *Env {
	t.Helper()

	cfg := &config.App{
		Env:    "test",
		Server: &config.Server{},
		Log:    &config.Log{},
		DB:     &config.DB{},
		Jwt:    &config.Jwt{Secret: "test-secret", Expiry: time.Hour},
		RateLimit: &config.RateLimit{
			MaxRequests: 10_000,
			Window:      time.Minute,
		},
		Uploads: &config.Uploads{
			Backend: "local",
			Dir:     t.TempDir(),
			BaseURL: "/uploads",
			MaxSize: 10 << 20,
		},
		Seed: &config.Seed{},
	}

	logger := fixtures.QuietLogger()
	uow := fixtures.NewTestUoW(t)

	bus := infraeventbus.NewWithMemory(logger)
	registration.RegisterSideEffects(bus, uow, logger)

	store, err := infrastorage.NewLocal(cfg.Uploads)
	require.NoError(t, err)

	authSvc := authsvc.New(uow, cfg.Jwt, logger)
	app := webapi.NewApp(webapi.Deps{
		Cfg:          cfg,
		Auth:         authSvc,
		Registration: registration.New(uow, bus, logger),
		Funds:        fundssvc.New(uow, logger),
		Member:       membersvc.New(uow, logger),
		Admin:        adminsvc.New(uow, logger),
		Storage:      store,
	})

	return &Env{App: app, UoW: uow, Auth: authSvc, Cfg: cfg}
}

// CreateAccount inserts an account directly and returns it with a
// signed token.
func (e *Env) CreateAccount(
	t *testing.T,
	email string,
	role account.Role,
	status account.Status,
	perms ...account.Permission,
) (*dto.AccountRead, string) {
	t.Helper()
	acct := fixtures.CreateAccount(t, e.UoW, email, role, status, perms...)
	token, err := e.Auth.GenerateToken(acct)
	require.NoError(t, err)
	return acct, token
}

// Register goes through the real registration endpoint path and
// returns the created account with its token.
func (e *Env) Register(t *testing.T, email, password string) (*dto.AccountRead, string) {
	t.Helper()
	acct, err := e.Auth.Register(context.Background(), email, "9876543210", password)
	require.NoError(t, err)
	token, err := e.Auth.GenerateToken(acct)
	require.NoError(t, err)
	return acct, token
}

// DoJSON performs a JSON request against the app, with an optional
// bearer token.
func (e *Env) DoJSON(
	t *testing.T,
	method, target, token string,
	body any,
) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.App.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

// DoForm performs a multipart form request. Files maps field names to
// file contents, uploaded under "<field>.bin".
func (e *Env) DoForm(
	t *testing.T,
	method, target, token string,
	fields map[string]string,
	files map[string][]byte,
) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for k, v := range files {
		fw, err := w.CreateFormFile(k, k+".bin")
		require.NoError(t, err)
		_, err = fw.Write(v)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.App.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

// Decode reads a JSON response body into out.
func Decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
