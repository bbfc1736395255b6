// Package middleware provides the JWT guard and the role and permission
// checks applied to protected routes.
package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/sangamhq/sangam/pkg/config"
	"github.com/sangamhq/sangam/pkg/domain/account"
	"github.com/sangamhq/sangam/pkg/dto"
	authsvc "github.com/sangamhq/sangam/pkg/service/auth"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// accountKey is the Locals key the account loader stores the resolved
// account under.
const accountKey = "current_account"

// JwtProtected verifies the bearer token and stores it in Locals("user").
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.Secret)},
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"status": "error", "message": "Missing or malformed JWT"})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT"})
}

// LoadAccount resolves the token's account and stores it in Locals.
// Tokens for accounts that no longer exist are rejected here.
func LoadAccount(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwtv5.Token)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"status": "error", "message": "missing token context"})
		}
		acct, err := authSvc.CurrentAccount(c.Context(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"status": "error", "message": "account not found"})
		}
		c.Locals(accountKey, acct)
		return c.Next()
	}
}

// CurrentAccount returns the account stored by LoadAccount, or nil when
// the loader did not run on this route.
func CurrentAccount(c *fiber.Ctx) *dto.AccountRead {
	acct, _ := c.Locals(accountKey).(*dto.AccountRead)
	return acct
}

// RequireRole passes only callers holding one of the given roles.
func RequireRole(roles ...account.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		acct := CurrentAccount(c)
		if acct == nil {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"status": "error", "message": "authentication required"})
		}
		for _, role := range roles {
			if acct.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).
			JSON(fiber.Map{"status": "error", "message": "insufficient role"})
	}
}

// RequirePermission passes super admins unconditionally and managers
// holding the named permission.
func RequirePermission(perm account.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		acct := CurrentAccount(c)
		if acct == nil {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"status": "error", "message": "authentication required"})
		}
		if !account.HasPermission(acct.Role, acct.Permissions, perm) {
			return c.Status(fiber.StatusForbidden).
				JSON(fiber.Map{"status": "error", "message": "permission denied"})
		}
		return c.Next()
	}
}
