package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/upb/forum-api/internal/auth"
	"github.com/upb/forum-api/models"
	"github.com/upb/forum-api/repositories"
	"github.com/upb/forum-api/utils"
	"go.uber.org/zap"
)

// decoyPassword is hashed once and compared against when an email is unknown,
// so failed logins cost one bcrypt comparison whether or not the account exists.
const decoyPassword = "forum-api-decoy-password"

// PasswordHasher derives and checks password digests
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Matches(plaintext, digest string) bool
}

// TokenIssuer signs access tokens for an account id
type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, error)
}

// RegisterAccountInput carries the fields of a new account
type RegisterAccountInput struct {
	Name     string
	Email    string
	Password string
}

// AccountService registers accounts and exchanges credentials for tokens
type AccountService struct {
	accounts repositories.AccountRepository
	tx       repositories.TransactionManager
	hasher   PasswordHasher
	tokens   TokenIssuer
	logger   *zap.Logger

	decoyOnce   sync.Once
	decoyDigest string
}

// NewAccountService creates a new AccountService
func NewAccountService(
	accounts repositories.AccountRepository,
	tx repositories.TransactionManager,
	hasher PasswordHasher,
	tokens TokenIssuer,
	logger *zap.Logger,
) *AccountService {
	return &AccountService{
		accounts: accounts,
		tx:       tx,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register creates an account unless the email is already taken.
// A taken email yields ErrAccountExists and leaves the store unchanged.
func (s *AccountService) Register(ctx context.Context, in RegisterAccountInput) (*models.Account, error) {
	created, err := WithTransactionResult(ctx, s.tx, func(ctx context.Context) (*models.Account, error) {
		_, err := s.accounts.GetByEmail(ctx, in.Email)
		switch {
		case err == nil:
			return nil, ErrAccountExists
		case !errors.Is(err, repositories.ErrNotFound):
			return nil, WrapInternal("failed to look up account", err)
		}

		digest, err := s.hasher.Hash(in.Password)
		if err != nil {
			if errors.Is(err, auth.ErrPasswordTooLong) {
				return nil, NewDomainError(ErrorTypeValidation, "Validation failed",
					utils.NewFieldError("password", fmt.Sprintf("password must be at most %d bytes", auth.MaxPasswordBytes)))
			}
			return nil, WrapInternal("failed to hash password", err)
		}

		account := models.NewAccount(in.Name, in.Email, digest)
		if err := s.accounts.Create(ctx, account); err != nil {
			// Lost a race with a concurrent registration
			if errors.Is(err, repositories.ErrDuplicate) {
				return nil, ErrAccountExists
			}
			return nil, WrapInternal("failed to create account", err)
		}

		return account, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("account registered", zap.String("account_id", created.ID.String()))
	return created, nil
}

// Authenticate verifies email/password and returns a signed access token.
// Unknown email and wrong password both yield ErrInvalidCredentials.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (string, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.hasher.Matches(password, s.decoy())
			return "", ErrInvalidCredentials
		}
		return "", WrapInternal("failed to look up account", err)
	}

	if !s.hasher.Matches(password, account.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return "", WrapInternal("failed to issue access token", err)
	}

	s.logger.Debug("session created", zap.String("account_id", account.ID.String()))
	return token, nil
}

// decoy returns a digest at the configured cost for unknown-email comparisons
func (s *AccountService) decoy() string {
	s.decoyOnce.Do(func() {
		digest, err := s.hasher.Hash(decoyPassword)
		if err != nil {
			s.logger.Warn("failed to prepare decoy digest", zap.Error(err))
			return
		}
		s.decoyDigest = digest
	})
	return s.decoyDigest
}
