package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/upb/forum-api/models"
	"github.com/upb/forum-api/repositories"
	"go.uber.org/zap"
)

// AccountRepository implements the repositories.AccountRepository interface
type AccountRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *DB, logger *zap.Logger) repositories.AccountRepository {
	return &AccountRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new account
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (id, name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		account.ID,
		account.Name,
		account.Email,
		account.PasswordHash,
		account.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("account %s: %w", account.Email, repositories.ErrDuplicate)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	r.logger.Debug("account created", zap.String("id", account.ID.String()))
	return nil
}

// GetByEmail retrieves an account by email
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `
		SELECT id, name, email, password_hash, created_at
		FROM accounts
		WHERE email = $1
	`

	executor := GetExecutor(ctx, r.db)
	account := &models.Account{}

	err := executor.QueryRowContext(ctx, query, email).Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.PasswordHash,
		&account.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return account, nil
}
