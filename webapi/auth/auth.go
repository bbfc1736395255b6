package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sangamhq/sangam/pkg/config"
	"github.com/sangamhq/sangam/pkg/middleware"
	authsvc "github.com/sangamhq/sangam/pkg/service/auth"
	"github.com/sangamhq/sangam/webapi/common"
)

func Routes(app *fiber.App, authSvc *authsvc.Service, cfg *config.App) {
	app.Post("/auth/register", Register(authSvc))
	app.Post("/auth/login", Login(authSvc))
	app.Get("/auth/me",
		middleware.JwtProtected(cfg.Jwt),
		middleware.LoadAccount(authSvc),
		Me(),
	)
}

// Register creates a member account and signs it in.
// @Summary Register a new member
// @Description Create a member account with email, phone and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterInput true "Registration data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /auth/register [post]
func Register(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterInput](c)
		if input == nil {
			return err
		}
		acct, err := authSvc.Register(c.Context(), input.Email, input.Phone, input.Password)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't register", err)
		}
		token, err := authSvc.GenerateToken(acct)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Registered successfully", fiber.Map{
			"token":   token,
			"account": acct,
		})
	}
}

// Login authenticates an account and returns a JWT token.
// @Summary Login
// @Description Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginInput true "Login credentials"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Router /auth/login [post]
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err
		}
		acct, err := authSvc.Login(c.Context(), input.Email, input.Password)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid email or password", err)
		}
		token, err := authSvc.GenerateToken(acct)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Success login", fiber.Map{
			"token":   token,
			"account": acct,
		})
	}
}

// Me returns the caller's own account.
// @Summary Current account
// @Tags auth
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /auth/me [get]
// @Security Bearer
func Me() fiber.Handler {
	return func(c *fiber.Ctx) error {
		acct := middleware.CurrentAccount(c)
		if acct == nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, fiber.StatusUnauthorized)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account found", acct)
	}
}
