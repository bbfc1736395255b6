// Package admin exposes the administrative endpoints: the verification
// queue, account listings, manager administration, analytics and
// broadcasts.
package admin

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sangamhq/sangam/pkg/config"
	"github.com/sangamhq/sangam/pkg/domain/account"
	domainprofile "github.com/sangamhq/sangam/pkg/domain/profile"
	"github.com/sangamhq/sangam/pkg/dto"
	"github.com/sangamhq/sangam/pkg/middleware"
	adminsvc "github.com/sangamhq/sangam/pkg/service/admin"
	"github.com/sangamhq/sangam/pkg/service/auth"
	"github.com/sangamhq/sangam/pkg/service/registration"
	"github.com/sangamhq/sangam/pkg/storage"
	"github.com/sangamhq/sangam/webapi/common"
)

const dateLayout = "2006-01-02"

func Routes(
	app *fiber.App,
	regSvc *registration.Service,
	adminSvc *adminsvc.Service,
	authSvc *auth.Service,
	store storage.Storage,
	cfg *config.App,
) {
	jwt := middleware.JwtProtected(cfg.Jwt)
	load := middleware.LoadAccount(authSvc)
	verify := middleware.RequirePermission(account.PermVerifyUsers)
	super := middleware.RequireRole(account.RoleSuperAdmin)

	grp := app.Group("/admin", jwt, load)
	grp.Get("/users", super, ListUsers(adminSvc))
	grp.Get("/pending", verify, ListPending(regSvc))
	grp.Put("/approve/:accountId", verify, Approve(regSvc))
	grp.Put("/reject/:accountId", verify, Reject(regSvc))
	grp.Post("/managers", super, CreateManager(regSvc))
	grp.Get("/managers", super, ListManagers(regSvc))
	grp.Put("/managers/:id/permissions", super, UpdatePermissions(regSvc))
	grp.Put("/users/:accountId", super, UpdateUser(regSvc, store, cfg.Uploads))
	grp.Delete("/users/:accountId", super, DeleteUser(regSvc))
	grp.Get("/analytics", super, Analytics(adminSvc))
	grp.Post("/broadcast", super, Broadcast(adminSvc))
}

// ListUsers returns accounts filtered by status, role and search text.
// @Summary List accounts
// @Description List accounts with status, role and search filters
// @Tags admin
// @Produce json
// @Param status query string false "Status filter"
// @Param role query string false "Role filter"
// @Param search query string false "Matches email, phone or member ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 403 {object} common.ProblemDetails
// @Router /admin/users [get]
// @Security Bearer
func ListUsers(adminSvc *adminsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := dto.AccountFilter{
			Status: account.Status(c.Query("status")),
			Role:   account.Role(c.Query("role")),
			Search: c.Query("search"),
		}
		page := dto.Page{
			Number: c.QueryInt("page", 1),
			Size:   c.QueryInt("limit", 20),
		}
		result, err := adminSvc.ListAccounts(c.Context(), filter, page)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list accounts", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts found", result)
	}
}

// ListPending returns accounts awaiting verification with their profiles.
// @Summary List pending verifications
// @Tags admin
// @Produce json
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Router /admin/pending [get]
// @Security Bearer
func ListPending(regSvc *registration.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pending, err := regSvc.ListPending(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list pending accounts", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Pending accounts found", pending)
	}
}

// Approve moves a pending account to APPROVED.
// @Summary Approve a registration
// @Tags admin
// @Produce json
// @Param accountId path string true "Account ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Failure 412 {object} common.ProblemDetails
// @Router /admin/approve/{accountId} [put]
// @Security Bearer
func Approve(regSvc *registration.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("accountId"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", nil,
				"Account ID must be a valid UUID", fiber.StatusBadRequest)
		}
		approved, err := regSvc.Approve(c.Context(), id)
		if err != nil {
			// The status change stands even when the follow-up
			// notification or documents failed.
			if errors.Is(err, registration.ErrSideEffects) {
				return common.SuccessResponseJSON(c, fiber.StatusOK,
					"Account approved, some notifications may be delayed", approved)
			}
			return common.ProblemDetailsJSON(c, "Couldn't approve account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account approved", approved)
	}
}

// Reject moves an account to REJECTED with an optional reason.
// @Summary Reject a registration
// @Tags admin
// @Accept json
// @Produce json
// @Param accountId path string true "Account ID"
// @Param request body RejectInput false "Rejection reason"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /admin/reject/{accountId} [put]
// @Security Bearer
func Reject(regSvc *registration.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("accountId"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", nil,
				"Account ID must be a valid UUID", fiber.StatusBadRequest)
		}
		var input RejectInput
		// The body is optional; an unparsable one just means no reason.
		_ = c.BodyParser(&input)
		rejected, err := regSvc.Reject(c.Context(), id, input.Reason)
		if err != nil {
			if errors.Is(err, registration.ErrSideEffects) {
				return common.SuccessResponseJSON(c, fiber.StatusOK,
					"Account rejected, some notifications may be delayed", rejected)
			}
			return common.ProblemDetailsJSON(c, "Couldn't reject account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account rejected", rejected)
	}
}

// CreateManager creates a manager account with the given permissions.
// @Summary Create a manager
// @Tags admin
// @Accept json
// @Produce json
// @Param request body CreateManagerInput true "Manager data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /admin/managers [post]
// @Security Bearer
func CreateManager(regSvc *registration.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateManagerInput](c)
		if input == nil {
			return err
		}
		created, err := regSvc.CreateManager(
			c.Context(),
			input.Email, input.Phone, input.Password,
			toPermissions(input.Permissions),
		)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create manager", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Manager created", created)
	}
}

// ListManagers returns every manager account.
// @Summary List managers
// @Tags admin
// @Produce json
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Router /admin/managers [get]
// @Security Bearer
func ListManagers(regSvc *registration.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		managers, err := regSvc.ListManagers(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list managers", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Managers found", managers)
	}
}

// UpdatePermissions replaces a manager's permission set.
// @Summary Update manager permissions
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Manager account ID"
// @Param request body PermissionsInput true "Permission set"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /admin/managers/{id}/permissions [put]
// @Security Bearer
func UpdatePermissions(regSvc *registration.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid manager ID", nil,
				"Manager ID must be a valid UUID", fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[PermissionsInput](c)
		if input == nil {
			return err
		}
		updated, err := regSvc.UpdateManagerPermissions(
			c.Context(), id, toPermissions(input.Permissions),
		)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update permissions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Permissions updated", updated)
	}
}

// UpdateUser applies a combined account and profile edit, optionally
// replacing the uploaded files.
// @Summary Update an account
// @Tags admin
// @Accept mpfd
// @Produce json
// @Param accountId path string true "Account ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /admin/users/{accountId} [put]
// @Security Bearer
func UpdateUser(
	regSvc *registration.Service,
	store storage.Storage,
	uploads *config.Uploads,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("accountId"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", nil,
				"Account ID must be a valid UUID", fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[UpdateUserInput](c)
		if input == nil {
			return err
		}

		acctUpdate := &dto.AccountUpdate{Email: input.Email, Phone: input.Phone}
		profUpdate := &dto.ProfileUpdate{
			FullName:   input.FullName,
			FatherName: input.FatherName,
			Age:        input.Age,
			Address:    input.Address,
		}
		if input.DateOfBirth != nil {
			dob, err := time.Parse(dateLayout, *input.DateOfBirth)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Validation failed", nil,
					"dateOfBirth must be YYYY-MM-DD", fiber.StatusBadRequest)
			}
			profUpdate.DateOfBirth = &dob
		}
		if input.Gender != nil {
			g := domainprofile.Gender(*input.Gender)
			profUpdate.Gender = &g
		}
		if input.Phone != nil {
			profUpdate.Phone = input.Phone
		}

		identityURL, err := common.SaveUpload(c, store, uploads, "aadhaarFile", storage.CategoryIdentity)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Upload failed", err)
		}
		if identityURL != "" {
			profUpdate.IdentityFileURL = &identityURL
		}
		photoURL, err := common.SaveUpload(c, store, uploads, "profilePhoto", storage.CategoryPhoto)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Upload failed", err)
		}
		if photoURL != "" {
			profUpdate.PhotoURL = &photoURL
		}

		updated, err := regSvc.UpdateAccount(c.Context(), id, acctUpdate, profUpdate)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account updated", updated)
	}
}

// DeleteUser removes an account and its dependent records. Ledger
// entries the account created are preserved.
// @Summary Delete an account
// @Tags admin
// @Produce json
// @Param accountId path string true "Account ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /admin/users/{accountId} [delete]
// @Security Bearer
func DeleteUser(regSvc *registration.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("accountId"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", nil,
				"Account ID must be a valid UUID", fiber.StatusBadRequest)
		}
		if err := regSvc.DeleteAccount(c.Context(), id); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account deleted", nil)
	}
}

// Analytics returns the registration counters.
// @Summary Registration analytics
// @Tags admin
// @Produce json
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Router /admin/analytics [get]
// @Security Bearer
func Analytics(adminSvc *adminsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := adminSvc.Analytics(c.Context())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't compute analytics", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Analytics computed", stats)
	}
}

// Broadcast sends a community-wide notification.
// @Summary Broadcast a notice
// @Tags admin
// @Accept json
// @Produce json
// @Param request body BroadcastInput true "Notice"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /admin/broadcast [post]
// @Security Bearer
func Broadcast(adminSvc *adminsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[BroadcastInput](c)
		if input == nil {
			return err
		}
		created, err := adminSvc.Broadcast(c.Context(), input.Title, input.Message)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't send broadcast", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Broadcast sent", created)
	}
}

func toPermissions(raw []string) []account.Permission {
	perms := make([]account.Permission, 0, len(raw))
	for _, p := range raw {
		perms = append(perms, account.Permission(p))
	}
	return perms
}
