// Package member exposes the self-service endpoints: the document
// bundle and the notification feed.
package member

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sangamhq/sangam/pkg/config"
	"github.com/sangamhq/sangam/pkg/middleware"
	"github.com/sangamhq/sangam/pkg/service/auth"
	membersvc "github.com/sangamhq/sangam/pkg/service/member"
	"github.com/sangamhq/sangam/webapi/common"
)

func Routes(
	app *fiber.App,
	memberSvc *membersvc.Service,
	authSvc *auth.Service,
	cfg *config.App,
) {
	jwt := middleware.JwtProtected(cfg.Jwt)
	load := middleware.LoadAccount(authSvc)

	grp := app.Group("/users", jwt, load)
	grp.Get("/documents", Documents(memberSvc))
	grp.Get("/notifications", Notifications(memberSvc))
	grp.Put("/notifications/:id/read", MarkRead(memberSvc))
}

// Documents returns the caller's document bundle. Only approved members
// may see documents.
// @Summary Get own documents
// @Tags member
// @Produce json
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /users/documents [get]
// @Security Bearer
func Documents(memberSvc *membersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		acct := middleware.CurrentAccount(c)
		docs, err := memberSvc.Documents(c.Context(), acct.ID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't get documents", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Documents found", docs)
	}
}

// Notifications lists the caller's notifications plus broadcasts.
// @Summary List own notifications
// @Tags member
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /users/notifications [get]
// @Security Bearer
func Notifications(memberSvc *membersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		acct := middleware.CurrentAccount(c)
		list, err := memberSvc.Notifications(c.Context(), acct.ID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list notifications", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Notifications found", list)
	}
}

// MarkRead marks one of the caller's notifications as read.
// @Summary Mark a notification read
// @Tags member
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /users/notifications/{id}/read [put]
// @Security Bearer
func MarkRead(memberSvc *membersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid notification ID", nil,
				"Notification ID must be a valid UUID", fiber.StatusBadRequest)
		}
		acct := middleware.CurrentAccount(c)
		if err := memberSvc.MarkNotificationRead(c.Context(), acct.ID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't mark notification", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Notification marked read", nil)
	}
}
