// Package admin implements administrative reads and broadcasts:
// account listings, the analytics counters and community-wide notices.
package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sangamhq/sangam/pkg/domain/account"
	"github.com/sangamhq/sangam/pkg/domain/common"
	"github.com/sangamhq/sangam/pkg/domain/notification"
	"github.com/sangamhq/sangam/pkg/dto"
	"github.com/sangamhq/sangam/pkg/repository"
)

// Service provides administrative operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates an admin service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// ListAccounts returns accounts matching the filter, paginated.
// Search matches email, phone or member ID case-insensitively.
func (s *Service) ListAccounts(
	ctx context.Context,
	filter dto.AccountFilter,
	page dto.Page,
) (result dto.Paginated[*dto.AccountRead], err error) {
	page = page.Normalize()
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, total, err := uow.Accounts().List(ctx, filter, page)
		if err != nil {
			return err
		}
		result = dto.NewPaginated(accounts, total, page)
		return nil
	})
	return result, err
}

// Analytics returns the registration counters for the admin dashboard.
func (s *Service) Analytics(ctx context.Context) (stats *dto.Analytics, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts := uow.Accounts()
		total, err := accounts.CountByRole(ctx, account.RoleMember)
		if err != nil {
			return err
		}
		pending, err := accounts.CountByStatus(ctx, account.StatusPendingVerification)
		if err != nil {
			return err
		}
		approved, err := accounts.CountByStatus(ctx, account.StatusApproved)
		if err != nil {
			return err
		}
		rejected, err := accounts.CountByStatus(ctx, account.StatusRejected)
		if err != nil {
			return err
		}
		managers, err := accounts.CountByRole(ctx, account.RoleManager)
		if err != nil {
			return err
		}
		stats = &dto.Analytics{
			TotalMembers:    total,
			PendingMembers:  pending,
			ApprovedMembers: approved,
			RejectedMembers: rejected,
			TotalManagers:   managers,
		}
		return nil
	})
	return stats, err
}

// Broadcast creates one ownerless notification visible to every account.
func (s *Service) Broadcast(
	ctx context.Context,
	title, message string,
) (created *dto.NotificationRead, err error) {
	log := s.logger.With("context", "Broadcast")
	if title == "" || message == "" {
		return nil, fmt.Errorf(
			"%w: title and message are required", common.ErrValidation,
		)
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		created, err = uow.Notifications().Create(ctx, &dto.NotificationCreate{
			Title:    title,
			Message:  message,
			Category: notification.CategoryBroadcast,
		})
		return err
	})
	if err != nil {
		log.Error("Broadcast failed", "error", err)
		return nil, err
	}
	log.Info("Broadcast sent", "title", title)
	return created, nil
}
