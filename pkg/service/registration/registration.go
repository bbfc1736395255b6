// Package registration implements the account lifecycle controller: form
// submission, approval, rejection, manager administration and cascading
// deletion. Status transitions happen under a per-account row lock so two
// concurrent verifications of the same account cannot both pass the
// precondition check.
package registration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sangamhq/sangam/pkg/domain/account"
	"github.com/sangamhq/sangam/pkg/domain/common"
	"github.com/sangamhq/sangam/pkg/dto"
	"github.com/sangamhq/sangam/pkg/eventbus"
	"github.com/sangamhq/sangam/pkg/repository"
	"github.com/sangamhq/sangam/pkg/service/auth"
)

// ErrSideEffects marks an approval or rejection whose status change
// committed but whose follow-up writes (notification, document bundle)
// failed. The transition is never rolled back for these.
var ErrSideEffects = errors.New("lifecycle side effects failed")

// DefaultRejectionReason is stored and messaged when the reviewer gives
// none.
const DefaultRejectionReason = "Application rejected by admin"

// Service is the lifecycle controller.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.EventBus
	logger *slog.Logger
}

// New creates a lifecycle controller publishing side effects on bus.
func New(
	uow repository.UnitOfWork,
	bus eventbus.EventBus,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, bus: bus, logger: logger}
}

// SubmitRegistration creates or replaces the caller's profile and moves
// the account to PENDING_VERIFICATION. Allowed only when no profile
// exists yet or the account was rejected; any other existing profile is a
// conflict. On resubmission, missing uploads fall back to the previously
// stored files; a submission without both files is invalid.
func (s *Service) SubmitRegistration(
	ctx context.Context,
	accountID uuid.UUID,
	form *dto.ProfileUpsert,
) (submitted *dto.ProfileRead, err error) {
	log := s.logger.With("context", "SubmitRegistration", "accountID", accountID)

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		acct, err := uow.Accounts().GetForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		if acct == nil {
			return fmt.Errorf("%w: account", common.ErrNotFound)
		}

		existing, err := uow.Profiles().GetByAccount(ctx, accountID)
		if err != nil {
			return err
		}
		if err := account.CanSubmitRegistration(acct.Status, existing != nil); err != nil {
			return err
		}

		if form.IdentityFileURL == "" && existing != nil {
			form.IdentityFileURL = existing.IdentityFileURL
		}
		if form.PhotoURL == "" && existing != nil {
			form.PhotoURL = existing.PhotoURL
		}
		if form.IdentityFileURL == "" || form.PhotoURL == "" {
			return fmt.Errorf(
				"%w: both identity document and photo are required",
				common.ErrValidation,
			)
		}

		form.AccountID = accountID
		submitted, err = uow.Profiles().Upsert(ctx, form)
		if err != nil {
			return err
		}
		return uow.Accounts().UpdateStatus(ctx, accountID, account.StatusPendingVerification)
	})
	if err != nil {
		log.Warn("SubmitRegistration failed", "error", err)
		return nil, err
	}
	log.Info("SubmitRegistration successful")
	return submitted, nil
}

// Approve moves a PENDING_VERIFICATION account to APPROVED, then fans out
// the approval notification and document bundle. A side-effect failure is
// logged and surfaced as ErrSideEffects alongside the approved account;
// the committed status change stands.
func (s *Service) Approve(
	ctx context.Context,
	accountID uuid.UUID,
) (approved *dto.AccountRead, err error) {
	log := s.logger.With("context", "Approve", "accountID", accountID)

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		acct, err := uow.Accounts().GetForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		if acct == nil {
			return fmt.Errorf("%w: account", common.ErrNotFound)
		}
		if err := account.CanApprove(acct.Status); err != nil {
			return err
		}
		if err := uow.Accounts().UpdateStatus(ctx, accountID, account.StatusApproved); err != nil {
			return err
		}
		approved, err = uow.Accounts().Get(ctx, accountID)
		return err
	})
	if err != nil {
		log.Warn("Approve failed", "error", err)
		return nil, err
	}

	if err := s.bus.Emit(ctx, eventbus.AccountApproved{AccountID: accountID}); err != nil {
		log.Error("Approve side effects failed", "error", err)
		return approved, fmt.Errorf("%w: %w", ErrSideEffects, err)
	}
	log.Info("Approve successful")
	return approved, nil
}

// Reject moves an account to REJECTED from any status, stores the reason
// on the profile when one exists, and fans out the rejection
// notification. An empty reason falls back to the default message.
func (s *Service) Reject(
	ctx context.Context,
	accountID uuid.UUID,
	reason string,
) (rejected *dto.AccountRead, err error) {
	log := s.logger.With("context", "Reject", "accountID", accountID)

	if reason == "" {
		reason = DefaultRejectionReason
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		acct, err := uow.Accounts().GetForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		if acct == nil {
			return fmt.Errorf("%w: account", common.ErrNotFound)
		}
		if err := uow.Accounts().UpdateStatus(ctx, accountID, account.StatusRejected); err != nil {
			return err
		}
		// No-op when no profile was ever submitted.
		if err := uow.Profiles().SetRejectionReason(ctx, accountID, reason); err != nil {
			return err
		}
		rejected, err = uow.Accounts().Get(ctx, accountID)
		return err
	})
	if err != nil {
		log.Warn("Reject failed", "error", err)
		return nil, err
	}

	if err := s.bus.Emit(ctx, eventbus.AccountRejected{AccountID: accountID, Reason: reason}); err != nil {
		log.Error("Reject side effects failed", "error", err)
		return rejected, fmt.Errorf("%w: %w", ErrSideEffects, err)
	}
	log.Info("Reject successful")
	return rejected, nil
}

// CreateManager creates a MANAGER account that bypasses the verification
// pipeline entirely: it is born APPROVED.
func (s *Service) CreateManager(
	ctx context.Context,
	email, phone, password string,
	permissions []account.Permission,
) (created *dto.AccountRead, err error) {
	log := s.logger.With("context", "CreateManager", "email", email)

	for _, p := range permissions {
		if !p.Valid() {
			return nil, fmt.Errorf("%w: unknown permission %q", common.ErrValidation, p)
		}
	}
	if permissions == nil {
		permissions = []account.Permission{}
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts := uow.Accounts()

		exists, err := accounts.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: email already registered", common.ErrConflict)
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}
		memberID, err := accounts.NextMemberID(ctx)
		if err != nil {
			return err
		}

		id := uuid.New()
		if err := accounts.Create(ctx, &dto.AccountCreate{
			ID:          id,
			MemberID:    memberID,
			Email:       email,
			Phone:       phone,
			Password:    hash,
			Role:        account.RoleManager,
			Permissions: permissions,
			Status:      account.StatusApproved,
		}); err != nil {
			return err
		}
		created, err = accounts.Get(ctx, id)
		return err
	})
	if err != nil {
		log.Warn("CreateManager failed", "error", err)
		return nil, err
	}
	log.Info("CreateManager successful", "accountID", created.ID)
	return created, nil
}

// UpdateManagerPermissions replaces a manager's permission set.
func (s *Service) UpdateManagerPermissions(
	ctx context.Context,
	managerID uuid.UUID,
	permissions []account.Permission,
) (updated *dto.AccountRead, err error) {
	for _, p := range permissions {
		if !p.Valid() {
			return nil, fmt.Errorf("%w: unknown permission %q", common.ErrValidation, p)
		}
	}
	if permissions == nil {
		permissions = []account.Permission{}
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		acct, err := uow.Accounts().Get(ctx, managerID)
		if err != nil {
			return err
		}
		if acct == nil || acct.Role != account.RoleManager {
			return fmt.Errorf("%w: manager", common.ErrNotFound)
		}
		if err := uow.Accounts().UpdatePermissions(ctx, managerID, permissions); err != nil {
			return err
		}
		updated, err = uow.Accounts().Get(ctx, managerID)
		return err
	})
	if err != nil {
		s.logger.Warn("UpdateManagerPermissions failed",
			"managerID", managerID, "error", err)
		return nil, err
	}
	return updated, nil
}

// ListManagers returns every MANAGER account.
func (s *Service) ListManagers(
	ctx context.Context,
) (managers []*dto.AccountRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		managers, err = uow.Accounts().ListByRole(ctx, account.RoleManager)
		return err
	})
	return managers, err
}

// UpdateAccount applies a combined administrative edit: account fields
// always, profile fields only when the account has a submitted profile.
func (s *Service) UpdateAccount(
	ctx context.Context,
	accountID uuid.UUID,
	acctUpdate *dto.AccountUpdate,
	profUpdate *dto.ProfileUpdate,
) (updated *dto.AccountRead, err error) {
	log := s.logger.With("context", "UpdateAccount", "accountID", accountID)

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		acct, err := uow.Accounts().GetForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		if acct == nil {
			return fmt.Errorf("%w: account", common.ErrNotFound)
		}

		if acctUpdate != nil {
			if acctUpdate.Email != nil && *acctUpdate.Email != acct.Email {
				taken, err := uow.Accounts().ExistsByEmail(ctx, *acctUpdate.Email)
				if err != nil {
					return err
				}
				if taken {
					return fmt.Errorf("%w: email already registered", common.ErrConflict)
				}
			}
			if err := uow.Accounts().Update(ctx, accountID, acctUpdate); err != nil {
				return err
			}
		}

		if profUpdate != nil {
			existing, err := uow.Profiles().GetByAccount(ctx, accountID)
			if err != nil {
				return err
			}
			if existing != nil {
				if err := uow.Profiles().Update(ctx, accountID, profUpdate); err != nil {
					return err
				}
			}
		}

		updated, err = uow.Accounts().Get(ctx, accountID)
		return err
	})
	if err != nil {
		log.Warn("UpdateAccount failed", "error", err)
		return nil, err
	}
	log.Info("UpdateAccount successful")
	return updated, nil
}

// DeleteAccount removes the account together with its profile, document
// bundle and targeted notifications. Ledger entries the account created
// are left untouched to preserve the financial record.
func (s *Service) DeleteAccount(
	ctx context.Context,
	accountID uuid.UUID,
) error {
	log := s.logger.With("context", "DeleteAccount", "accountID", accountID)

	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		acct, err := uow.Accounts().Get(ctx, accountID)
		if err != nil {
			return err
		}
		if acct == nil {
			return fmt.Errorf("%w: account", common.ErrNotFound)
		}
		if err := uow.Profiles().DeleteByAccount(ctx, accountID); err != nil {
			return err
		}
		if err := uow.Documents().DeleteByAccount(ctx, accountID); err != nil {
			return err
		}
		if err := uow.Notifications().DeleteByAccount(ctx, accountID); err != nil {
			return err
		}
		return uow.Accounts().Delete(ctx, accountID)
	})
	if err != nil {
		log.Warn("DeleteAccount failed", "error", err)
		return err
	}
	log.Info("DeleteAccount successful")
	return nil
}

// GetProfile returns the profile for an account, or NotFound when the
// registration form was never submitted.
func (s *Service) GetProfile(
	ctx context.Context,
	accountID uuid.UUID,
) (prof *dto.ProfileRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		prof, err = uow.Profiles().GetByAccount(ctx, accountID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if prof == nil {
		return nil, fmt.Errorf(
			"%w: profile not found, complete community registration first",
			common.ErrNotFound,
		)
	}
	return prof, nil
}

// ListPending returns every PENDING_VERIFICATION account joined with its
// submitted profile for the review queue.
func (s *Service) ListPending(
	ctx context.Context,
) (pending []*dto.PendingAccount, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accts, err := uow.Accounts().ListByStatus(ctx, account.StatusPendingVerification)
		if err != nil {
			return err
		}
		pending = make([]*dto.PendingAccount, 0, len(accts))
		for _, acct := range accts {
			prof, err := uow.Profiles().GetByAccount(ctx, acct.ID)
			if err != nil {
				return err
			}
			pending = append(pending, &dto.PendingAccount{
				Account: *acct,
				Profile: prof,
			})
		}
		return nil
	})
	return pending, err
}
