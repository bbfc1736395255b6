// Package profile exposes the registration form endpoints: submission
// with file uploads and profile reads for the owner and reviewers.
package profile

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sangamhq/sangam/pkg/config"
	"github.com/sangamhq/sangam/pkg/domain/account"
	domainprofile "github.com/sangamhq/sangam/pkg/domain/profile"
	"github.com/sangamhq/sangam/pkg/dto"
	"github.com/sangamhq/sangam/pkg/middleware"
	"github.com/sangamhq/sangam/pkg/service/auth"
	"github.com/sangamhq/sangam/pkg/service/registration"
	"github.com/sangamhq/sangam/pkg/storage"
	"github.com/sangamhq/sangam/webapi/common"
)

const dateLayout = "2006-01-02"

func Routes(
	app *fiber.App,
	regSvc *registration.Service,
	authSvc *auth.Service,
	store storage.Storage,
	cfg *config.App,
) {
	jwt := middleware.JwtProtected(cfg.Jwt)
	load := middleware.LoadAccount(authSvc)

	app.Post("/profile",
		jwt, load,
		middleware.RequireRole(account.RoleMember),
		Submit(regSvc, store, cfg.Uploads),
	)
	app.Get("/profile", jwt, load, GetOwn(regSvc))
	app.Get("/profile/:accountId",
		jwt, load,
		middleware.RequirePermission(account.PermVerifyUsers),
		GetByAccount(regSvc),
	)
}

// Submit accepts the registration form with the identity document and
// photo uploads and moves the account to pending verification.
// @Summary Submit registration form
// @Description Submit or resubmit the community registration form
// @Tags profile
// @Accept mpfd
// @Produce json
// @Param fullName formData string true "Full name"
// @Param aadhaarFile formData file false "Identity document"
// @Param profilePhoto formData file false "Profile photo"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /profile [post]
// @Security Bearer
func Submit(
	regSvc *registration.Service,
	store storage.Storage,
	uploads *config.Uploads,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[SubmitInput](c)
		if input == nil {
			return err
		}
		dob, err := time.Parse(dateLayout, input.DateOfBirth)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Validation failed", nil,
				"dateOfBirth must be YYYY-MM-DD", fiber.StatusBadRequest)
		}

		acct := middleware.CurrentAccount(c)
		identityURL, err := common.SaveUpload(c, store, uploads, "aadhaarFile", storage.CategoryIdentity)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Upload failed", err)
		}
		photoURL, err := common.SaveUpload(c, store, uploads, "profilePhoto", storage.CategoryPhoto)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Upload failed", err)
		}

		prof, err := regSvc.SubmitRegistration(c.Context(), acct.ID, &dto.ProfileUpsert{
			FullName:        input.FullName,
			FatherName:      input.FatherName,
			DateOfBirth:     dob,
			Age:             input.Age,
			Gender:          domainprofile.Gender(input.Gender),
			Address:         input.Address,
			Phone:           input.Phone,
			IdentityFileURL: identityURL,
			PhotoURL:        photoURL,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't submit registration", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated,
			"Registration submitted for verification", prof)
	}
}

// GetOwn returns the caller's profile.
// @Summary Get own profile
// @Tags profile
// @Produce json
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /profile [get]
// @Security Bearer
func GetOwn(regSvc *registration.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		acct := middleware.CurrentAccount(c)
		prof, err := regSvc.GetProfile(c.Context(), acct.ID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Profile not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Profile found", prof)
	}
}

// GetByAccount returns another account's profile for review.
// @Summary Get a profile by account ID
// @Tags profile
// @Produce json
// @Param accountId path string true "Account ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /profile/{accountId} [get]
// @Security Bearer
func GetByAccount(regSvc *registration.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("accountId"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", nil,
				"Account ID must be a valid UUID", fiber.StatusBadRequest)
		}
		prof, err := regSvc.GetProfile(c.Context(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Profile not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Profile found", prof)
	}
}
