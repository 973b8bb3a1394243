package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

type txCtxKey struct{}

// journal holds the value each key had before the transaction first wrote it.
type journal struct {
	prior map[string]priorValue
}

type priorValue struct {
	raw json.RawMessage
	had bool
}

// record keeps only the first prior value of key. Callers hold Store.mu.
func (j *journal) record(key string, raw json.RawMessage, had bool) {
	if _, seen := j.prior[key]; seen {
		return
	}
	j.prior[key] = priorValue{raw: raw, had: had}
}

func journalFromCtx(ctx context.Context) *journal {
	j, _ := ctx.Value(txCtxKey{}).(*journal)
	return j
}

// TxManager serializes transactions against a Store. A failed transaction
// puts back the keys it wrote; writes made outside it are kept.
// Nested RunInTx calls join the outer transaction.
type TxManager struct {
	store *Store
	mu    sync.Mutex
}

// NewTxManager creates a TxManager for store.
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

// RunInTx runs fn and rolls the store back if fn fails or panics.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if journalFromCtx(ctx) != nil {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	j := &journal{prior: make(map[string]priorValue)}

	defer func() {
		if r := recover(); r != nil {
			_ = m.store.rollback(j)
			panic(r)
		}
	}()

	if err := fn(context.WithValue(ctx, txCtxKey{}, j)); err != nil {
		if rbErr := m.store.rollback(j); rbErr != nil {
			return fmt.Errorf("rollback failed: %w (original error: %w)", rbErr, err)
		}
		return err
	}
	return nil
}
