package repository

import (
	"context"
	"errors"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"gorm.io/gorm"
)

func readBackoff() backoff.BackOff {
	boff := backoff.NewExponentialBackOff()
	boff.InitialInterval = 50 * time.Millisecond
	boff.MaxElapsedTime = 2 * time.Second

	return boff
}

// retryRead reexecuta leituras idempotentes que falharam por erro
// transitório do gateway. Não encontrar o registro não é transitório.
func retryRead(ctx context.Context, fn func() error) error {
	return backoff.Retry(func() error {
		err := fn()
		if err == nil {
			return nil
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(readBackoff(), ctx))
}
