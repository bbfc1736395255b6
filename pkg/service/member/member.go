// Package member implements the self-service operations of a signed-in
// account: its document bundle and its notification feed.
package member

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sangamhq/sangam/pkg/domain/account"
	"github.com/sangamhq/sangam/pkg/domain/common"
	"github.com/sangamhq/sangam/pkg/dto"
	"github.com/sangamhq/sangam/pkg/repository"
)

// Service provides member self-service operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a member service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Documents returns the account's document bundle. Only approved
// accounts may see documents; everyone else gets a forbidden error
// regardless of whether a bundle exists.
func (s *Service) Documents(
	ctx context.Context,
	accountID uuid.UUID,
) (docs *dto.DocumentRead, err error) {
	log := s.logger.With("context", "Documents", "accountID", accountID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		acct, err := uow.Accounts().Get(ctx, accountID)
		if err != nil {
			return err
		}
		if acct == nil {
			return fmt.Errorf("%w: account not found", common.ErrNotFound)
		}
		if acct.Status != account.StatusApproved {
			return fmt.Errorf(
				"%w: documents are only available for approved members",
				common.ErrForbidden,
			)
		}
		docs, err = uow.Documents().GetByAccount(ctx, accountID)
		if err != nil {
			return err
		}
		if docs == nil {
			return fmt.Errorf("%w: documents not found", common.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		log.Warn("Documents denied", "error", err)
		return nil, err
	}
	return docs, nil
}

// Notifications lists the account's notifications, newest first.
// Broadcasts are included alongside targeted notifications.
func (s *Service) Notifications(
	ctx context.Context,
	accountID uuid.UUID,
) (list []*dto.NotificationRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		list, err = uow.Notifications().ListForAccount(ctx, accountID)
		return err
	})
	return list, err
}

// MarkNotificationRead marks one targeted notification as read. The
// notification must exist and belong to the account; broadcasts carry
// no per-account read state and cannot be marked.
func (s *Service) MarkNotificationRead(
	ctx context.Context,
	accountID, notificationID uuid.UUID,
) error {
	log := s.logger.With(
		"context", "MarkNotificationRead",
		"accountID", accountID,
		"notificationID", notificationID,
	)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		notif, err := uow.Notifications().Get(ctx, notificationID)
		if err != nil {
			return err
		}
		if notif == nil || notif.AccountID == nil || *notif.AccountID != accountID {
			return fmt.Errorf("%w: notification not found", common.ErrNotFound)
		}
		return uow.Notifications().MarkRead(ctx, notificationID)
	})
	if err != nil {
		log.Warn("MarkNotificationRead failed", "error", err)
		return err
	}
	log.Info("notification marked read")
	return nil
}
