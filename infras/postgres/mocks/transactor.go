package mocks

import (
	"context"
	"sync"

	"dipsport/infras/postgres"

	"github.com/jmoiron/sqlx"
)

type transactorImpl struct {
	mu *sync.Mutex
}

// WithTransaction implements postgres.Transactor. fn receives a nil tx, so repositories
// used inside it must be mocks or fakes. Calls are serialized to mimic row locking.
func (t *transactorImpl) WithTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return fn(nil)
}

func NewTransactor() postgres.Transactor {
	return &transactorImpl{mu: &sync.Mutex{}}
}
