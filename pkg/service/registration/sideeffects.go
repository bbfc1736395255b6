package registration

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sangamhq/sangam/pkg/domain/document"
	"github.com/sangamhq/sangam/pkg/domain/notification"
	"github.com/sangamhq/sangam/pkg/dto"
	"github.com/sangamhq/sangam/pkg/eventbus"
	"github.com/sangamhq/sangam/pkg/repository"
)

// Messages attached to lifecycle notifications.
const (
	approvalTitle   = "Registration Approved"
	approvalMessage = "Your community registration has been approved. " +
		"You can now access all member features."
	rejectionTitle          = "Registration Rejected"
	defaultRejectionMessage = "Your community registration has been rejected. " +
		"Please update your details and resubmit."
)

// RegisterSideEffects subscribes the lifecycle side-effect handlers:
// approval creates the APPROVAL notification and replaces the document
// bundle, rejection creates the REJECTION notification. Handler errors
// propagate to the publisher for logging; they never undo the committed
// status change.
func RegisterSideEffects(
	bus eventbus.EventBus,
	uow repository.UnitOfWork,
	logger *slog.Logger,
) {
	bus.Register(eventbus.AccountApproved{}.Type(), onApproved(uow, logger))
	bus.Register(eventbus.AccountRejected{}.Type(), onRejected(uow, logger))
}

func onApproved(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) eventbus.HandlerFunc {
	return func(ctx context.Context, event eventbus.Event) error {
		approved, ok := event.(eventbus.AccountApproved)
		if !ok {
			return fmt.Errorf("unexpected event %T", event)
		}
		return uow.Do(ctx, func(uow repository.UnitOfWork) error {
			accountID := approved.AccountID
			_, err := uow.Notifications().Create(ctx, &dto.NotificationCreate{
				AccountID: &accountID,
				Title:     approvalTitle,
				Message:   approvalMessage,
				Category:  notification.CategoryApproval,
			})
			if err != nil {
				return fmt.Errorf("creating approval notification: %w", err)
			}

			bundle := document.NewBundle(accountID)
			err = uow.Documents().Replace(ctx, accountID, &dto.DocumentRead{
				ID:             bundle.ID,
				AccountID:      bundle.AccountID,
				ApprovalURL:    bundle.ApprovalURL,
				IDCardURL:      bundle.IDCardURL,
				CertificateURL: bundle.CertificateURL,
				GeneratedAt:    bundle.GeneratedAt,
			})
			if err != nil {
				return fmt.Errorf("replacing document bundle: %w", err)
			}
			logger.Info("approval side effects applied", "accountID", accountID)
			return nil
		})
	}
}

func onRejected(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) eventbus.HandlerFunc {
	return func(ctx context.Context, event eventbus.Event) error {
		rejected, ok := event.(eventbus.AccountRejected)
		if !ok {
			return fmt.Errorf("unexpected event %T", event)
		}
		message := rejected.Reason
		if message == "" || message == DefaultRejectionReason {
			message = defaultRejectionMessage
		}
		return uow.Do(ctx, func(uow repository.UnitOfWork) error {
			accountID := rejected.AccountID
			_, err := uow.Notifications().Create(ctx, &dto.NotificationCreate{
				AccountID: &accountID,
				Title:     rejectionTitle,
				Message:   message,
				Category:  notification.CategoryRejection,
			})
			if err != nil {
				return fmt.Errorf("creating rejection notification: %w", err)
			}
			logger.Info("rejection side effects applied", "accountID", accountID)
			return nil
		})
	}
}
