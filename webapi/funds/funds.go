// Package funds exposes the ledger endpoints: recording received funds
// and expenses, the filtered listing and the dashboard.
package funds

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sangamhq/sangam/pkg/config"
	"github.com/sangamhq/sangam/pkg/domain/account"
	"github.com/sangamhq/sangam/pkg/domain/ledger"
	"github.com/sangamhq/sangam/pkg/dto"
	"github.com/sangamhq/sangam/pkg/middleware"
	"github.com/sangamhq/sangam/pkg/service/auth"
	fundssvc "github.com/sangamhq/sangam/pkg/service/funds"
	"github.com/sangamhq/sangam/pkg/storage"
	"github.com/sangamhq/sangam/webapi/common"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

func Routes(
	app *fiber.App,
	fundsSvc *fundssvc.Service,
	authSvc *auth.Service,
	store storage.Storage,
	cfg *config.App,
) {
	jwt := middleware.JwtProtected(cfg.Jwt)
	load := middleware.LoadAccount(authSvc)

	grp := app.Group("/funds", jwt, load)
	grp.Get("/",
		middleware.RequirePermission(account.PermViewFunds),
		List(fundsSvc),
	)
	grp.Post("/receive",
		middleware.RequirePermission(account.PermViewFunds),
		CreateEntry(fundsSvc, store, cfg.Uploads, ledger.EntryReceived),
	)
	grp.Post("/expense",
		middleware.RequirePermission(account.PermUploadExpenses),
		CreateEntry(fundsSvc, store, cfg.Uploads, ledger.EntryExpense),
	)
	grp.Get("/dashboard",
		middleware.RequireRole(account.RoleSuperAdmin),
		Dashboard(fundsSvc),
	)
}

// List returns ledger entries filtered by type and calendar month.
// @Summary List ledger entries
// @Tags funds
// @Produce json
// @Param type query string false "RECEIVED or EXPENSE"
// @Param year query int false "Calendar year"
// @Param month query int false "Calendar month (1-12)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Router /funds [get]
// @Security Bearer
func List(fundsSvc *fundssvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := dto.LedgerFilter{
			Type:  ledger.EntryType(c.Query("type")),
			Year:  c.QueryInt("year"),
			Month: c.QueryInt("month"),
		}
		page := dto.Page{
			Number: c.QueryInt("page", 1),
			Size:   c.QueryInt("limit", 20),
		}
		result, err := fundsSvc.List(c.Context(), filter, page)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list entries", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Entries found", result)
	}
}

// CreateEntry records one ledger entry of the fixed type with a proof
// screenshot.
// @Summary Record a ledger entry
// @Tags funds
// @Accept mpfd
// @Produce json
// @Param amount formData string true "Amount"
// @Param description formData string true "Description"
// @Param date formData string false "Effective date (YYYY-MM-DD)"
// @Param balanceAfterTransaction formData string true "Declared balance after"
// @Param proofScreenshot formData file true "Proof image"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /funds/receive [post]
// @Security Bearer
func CreateEntry(
	fundsSvc *fundssvc.Service,
	store storage.Storage,
	uploads *config.Uploads,
	entryType ledger.EntryType,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[EntryInput](c)
		if input == nil {
			return err
		}
		amount, err := decimal.NewFromString(input.Amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Validation failed", nil,
				"amount must be a decimal number", fiber.StatusBadRequest)
		}
		balance, err := decimal.NewFromString(input.BalanceAfter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Validation failed", nil,
				"balanceAfterTransaction must be a decimal number", fiber.StatusBadRequest)
		}
		var date time.Time
		if input.Date != "" {
			date, err = time.Parse(dateLayout, input.Date)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Validation failed", nil,
					"date must be YYYY-MM-DD", fiber.StatusBadRequest)
			}
		}

		proofURL, err := common.SaveUpload(c, store, uploads, "proofScreenshot", storage.CategoryProof)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Upload failed", err)
		}

		acct := middleware.CurrentAccount(c)
		created, err := fundsSvc.CreateEntry(
			c.Context(), entryType,
			amount, input.Description, date, balance, proofURL, acct.ID,
		)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't record entry", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Entry recorded", created)
	}
}

// Dashboard returns the current month's totals, the latest declared
// balance and the most recent entries.
// @Summary Fund dashboard
// @Tags funds
// @Produce json
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Router /funds/dashboard [get]
// @Security Bearer
func Dashboard(fundsSvc *fundssvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dashboard, err := fundsSvc.Dashboard(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't build dashboard", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Dashboard built", dashboard)
	}
}
