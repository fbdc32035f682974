package repositories

import (
	"context"
	"errors"

	"github.com/upb/forum-api/models"
)

var (
	// ErrNotFound is returned when a lookup matches no row
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a write violates a uniqueness constraint
	ErrDuplicate = errors.New("record already exists")
)

// TransactionManager manages database transactions
type TransactionManager interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) (Transaction, error)

	// InTransaction executes a function within a transaction.
	// Repositories called with the ctx passed to fn take part in the transaction.
	// Commits if fn succeeds, rolls back on error.
	InTransaction(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error
}

// Transaction represents a database transaction
type Transaction interface {
	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Context returns the transaction context
	Context() context.Context
}

// AccountRepository handles account data operations
type AccountRepository interface {
	// Create stores a new account. Returns ErrDuplicate when the email is taken.
	Create(ctx context.Context, account *models.Account) error

	// GetByEmail retrieves an account by exact email. Returns ErrNotFound when absent.
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
}

// QuestionRepository handles question data operations
type QuestionRepository interface {
	// Create stores a new question
	Create(ctx context.Context, question *models.Question) error

	// ListRecent retrieves questions ordered by creation time, newest first
	ListRecent(ctx context.Context, limit, offset int) ([]*models.Question, error)
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	Accounts     AccountRepository
	Questions    QuestionRepository
	Transactions TransactionManager
}
