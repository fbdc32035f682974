package services

import (
	"context"

	"github.com/upb/forum-api/repositories"
)

// WithTransactionResult runs fn inside a transaction and returns its result.
// The context passed to fn carries the transaction; on error the zero value is returned.
func WithTransactionResult[T any](ctx context.Context, txMgr repositories.TransactionManager, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T

	err := txMgr.InTransaction(ctx, func(ctx context.Context, _ repositories.Transaction) error {
		r, err := fn(ctx)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return result, nil
}
