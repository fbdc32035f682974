// Package memory provides in-process implementations of the repository
// interfaces. They back STORAGE_DRIVER=memory and the router tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/upb/forum-api/models"
	"github.com/upb/forum-api/repositories"
)

// NewRepositories returns repositories sharing one in-memory store.
// It is safe for concurrent use.
func NewRepositories() *repositories.Repositories {
	return &repositories.Repositories{
		Accounts:     NewAccountRepository(),
		Questions:    NewQuestionRepository(),
		Transactions: TransactionManager{},
	}
}

// AccountRepository is an in-memory repositories.AccountRepository
type AccountRepository struct {
	mu      sync.RWMutex
	byEmail map[string]models.Account
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{byEmail: make(map[string]models.Account)}
}

func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[account.Email]; ok {
		return fmt.Errorf("account %s: %w", account.Email, repositories.ErrDuplicate)
	}
	r.byEmail[account.Email] = *account
	return nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.byEmail[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &account, nil
}

// QuestionRepository is an in-memory repositories.QuestionRepository
type QuestionRepository struct {
	mu        sync.RWMutex
	questions []models.Question // insertion order
}

func NewQuestionRepository() *QuestionRepository {
	return &QuestionRepository{}
}

func (r *QuestionRepository) Create(ctx context.Context, question *models.Question) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	r.questions = append(r.questions, cloneQuestion(*question))
	return nil
}

// ListRecent orders by CreatedAt descending; equal timestamps keep the
// most recently inserted first.
func (r *QuestionRepository) ListRecent(ctx context.Context, limit, offset int) ([]*models.Question, error) {
	_ = ctx
	r.mu.RLock()
	ordered := make([]models.Question, 0, len(r.questions))
	for i := len(r.questions) - 1; i >= 0; i-- {
		ordered = append(ordered, r.questions[i])
	}
	r.mu.RUnlock()

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	out := make([]*models.Question, 0, limit)
	if offset < 0 || offset >= len(ordered) || limit <= 0 {
		return out, nil
	}
	end := offset + limit
	if end > len(ordered) {
		end = len(ordered)
	}
	for i := offset; i < end; i++ {
		q := cloneQuestion(ordered[i])
		out = append(out, &q)
	}
	return out, nil
}

func cloneQuestion(q models.Question) models.Question {
	if q.UpdatedAt != nil {
		t := *q.UpdatedAt
		q.UpdatedAt = &t
	}
	return q
}

// TransactionManager runs fn directly; each repository call is atomic on its own
type TransactionManager struct{}

func (TransactionManager) Begin(ctx context.Context) (repositories.Transaction, error) {
	return transaction{ctx: ctx}, nil
}

func (tm TransactionManager) InTransaction(ctx context.Context, fn func(ctx context.Context, tx repositories.Transaction) error) error {
	tx, _ := tm.Begin(ctx)
	return fn(ctx, tx)
}

type transaction struct {
	ctx context.Context
}

func (transaction) Commit() error              { return nil }
func (transaction) Rollback() error            { return nil }
func (t transaction) Context() context.Context { return t.ctx }
