// Package auth provides account registration, credential exchange and
// token handling.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sangamhq/sangam/pkg/config"
	"github.com/sangamhq/sangam/pkg/domain/account"
	"github.com/sangamhq/sangam/pkg/domain/common"
	"github.com/sangamhq/sangam/pkg/dto"
	"github.com/sangamhq/sangam/pkg/repository"
)

// Service implements registration, login and JWT issuance.
type Service struct {
	uow    repository.UnitOfWork
	cfg    *config.Jwt
	logger *slog.Logger
}

// New creates an auth service.
func New(
	uow repository.UnitOfWork,
	cfg *config.Jwt,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger}
}

// Register creates a MEMBER account in status NEW. The member identifier
// is issued inside the same transaction as the insert, so concurrent
// registrations cannot share one.
func (s *Service) Register(
	ctx context.Context,
	email, phone, password string,
) (created *dto.AccountRead, err error) {
	log := s.logger.With("context", "Register", "email", email)

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts := uow.Accounts()

		exists, err := accounts.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: email already registered", common.ErrConflict)
		}

		hash, err := HashPassword(password)
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
			Role:        account.RoleMember,
			Permissions: []account.Permission{},
			Status:      account.StatusNew,
		}); err != nil {
			return err
		}

		created, err = accounts.Get(ctx, id)
		return err
	})
	if err != nil {
		log.Error("Register failed", "error", err)
		return nil, err
	}
	log.Info("Register successful", "memberID", created.MemberID)
	return created, nil
}

// Login verifies the credentials and returns the account. A missing
// account and a wrong password both map to the same unauthenticated
// error; callers cannot probe which emails exist.
func (s *Service) Login(
	ctx context.Context,
	email, password string,
) (read *dto.AccountRead, err error) {
	log := s.logger.With("context", "Login")

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		acct, hash, err := uow.Accounts().GetCredentials(ctx, email)
		if err != nil {
			return err
		}
		if acct == nil || !CheckPasswordHash(password, hash) {
			return fmt.Errorf("%w: invalid credentials", common.ErrUnauthenticated)
		}
		read = acct
		return nil
	})
	if err != nil {
		log.Warn("Login failed", "error", err)
		return nil, err
	}
	log.Info("Login successful", "accountID", read.ID)
	return read, nil
}

// GenerateToken signs an HS256 token carrying the account ID.
func (s *Service) GenerateToken(acct *dto.AccountRead) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["account_id"] = acct.ID.String()
	claims["exp"] = time.Now().Add(s.cfg.Expiry).Unix()

	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		s.logger.Error("GenerateToken failed", "accountID", acct.ID, "error", err)
		return "", err
	}
	return signed, nil
}

// CurrentAccountID extracts the account ID claim from a verified token.
func (s *Service) CurrentAccountID(token *jwt.Token) (uuid.UUID, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: malformed claims", common.ErrUnauthenticated)
	}
	raw, ok := claims["account_id"].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: missing account claim", common.ErrUnauthenticated)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid account claim", common.ErrUnauthenticated)
	}
	return id, nil
}

// CurrentAccount resolves the caller's account from a verified token.
// Deleted accounts with live tokens are unauthenticated, not forbidden.
func (s *Service) CurrentAccount(
	ctx context.Context,
	token *jwt.Token,
) (*dto.AccountRead, error) {
	id, err := s.CurrentAccountID(token)
	if err != nil {
		return nil, err
	}
	var acct *dto.AccountRead
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		acct, err = uow.Accounts().Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, fmt.Errorf("%w: account no longer exists", common.ErrUnauthenticated)
	}
	return acct, nil
}
