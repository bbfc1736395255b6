// Package seed bootstraps the initial super admin account.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sangamhq/sangam/pkg/config"
	"github.com/sangamhq/sangam/pkg/domain/account"
	"github.com/sangamhq/sangam/pkg/dto"
	"github.com/sangamhq/sangam/pkg/repository"
	"github.com/sangamhq/sangam/pkg/service/auth"
)

// adminMemberID is fixed; the member sequence starts after it and only
// issues member_<n> identifiers.
const adminMemberID = "admin_1"

// SuperAdmin creates the configured super admin account when no
// SUPER_ADMIN exists yet. Idempotent across restarts.
func SuperAdmin(
	ctx context.Context,
	uow repository.UnitOfWork,
	cfg *config.Seed,
	logger *slog.Logger,
) error {
	return uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts := uow.Accounts()

		count, err := accounts.CountByRole(ctx, account.RoleSuperAdmin)
		if err != nil {
			return err
		}
		if count > 0 {
			logger.Debug("super admin already present, skipping seed")
			return nil
		}

		hash, err := auth.HashPassword(cfg.AdminPassword)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		if err := accounts.Create(ctx, &dto.AccountCreate{
			ID:          uuid.New(),
			MemberID:    adminMemberID,
			Email:       cfg.AdminEmail,
			Phone:       cfg.AdminPhone,
			Password:    hash,
			Role:        account.RoleSuperAdmin,
			Permissions: []account.Permission{},
			Status:      account.StatusApproved,
		}); err != nil {
			return err
		}
		logger.Info("seeded super admin", "email", cfg.AdminEmail, "memberID", adminMemberID)
		return nil
	})
}
