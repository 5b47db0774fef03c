// Package queue implements the durable FIFO log of mutations that could not
// reach the remote store. Operations are persisted after every enqueue and
// after every drain pass, so they survive process restarts; an operation is
// removed only once its replay succeeded or it exhausted its attempts.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/cardvault/internal/logging"
	"github.com/dmitrijs2005/cardvault/internal/wallet/localstore"
	"github.com/dmitrijs2005/cardvault/internal/wallet/models"
)

const (
	// DefaultMaxAttempts is how many failed replays an operation survives
	// before it is evicted instead of blocking the queue forever.
	DefaultMaxAttempts = 5

	// DefaultBackoff is the fixed delay inserted after a failed replay
	// before the failure surfaces to the caller.
	DefaultBackoff = time.Second
)

// ApplyFunc replays one queued operation against the remote store.
type ApplyFunc func(ctx context.Context, op models.QueuedOperation) error

// Queue is a durable FIFO persisted under the queued_operations key of the
// local store.
type Queue struct {
	store localstore.Store
	log   logging.Logger

	mu          sync.Mutex
	maxAttempts int
	backoff     time.Duration
}

// Option adjusts queue policy.
type Option func(*Queue)

// WithMaxAttempts overrides the eviction threshold.
func WithMaxAttempts(n int) Option {
	return func(q *Queue) { q.maxAttempts = n }
}

// WithBackoff overrides the fixed post-failure delay.
func WithBackoff(d time.Duration) Option {
	return func(q *Queue) { q.backoff = d }
}

func New(store localstore.Store, log logging.Logger, opts ...Option) *Queue {
	q := &Queue{
		store:       store,
		log:         log,
		maxAttempts: DefaultMaxAttempts,
		backoff:     DefaultBackoff,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Enqueue appends op and persists the queue.
func (q *Queue) Enqueue(ctx context.Context, op models.QueuedOperation) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	ops, err := q.load(ctx)
	if err != nil {
		return err
	}
	return q.persist(ctx, append(ops, op))
}

// Count returns the number of pending operations.
func (q *Queue) Count(ctx context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	ops, err := q.load(ctx)
	if err != nil {
		return 0, err
	}
	return len(ops), nil
}

// Clear drops all pending operations.
func (q *Queue) Clear(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.store.Delete(ctx, localstore.KeyQueuedOperations)
}

// Drain replays pending operations in insertion order. Successes are
// removed. The first failure stops the pass so nothing is reordered or
// skipped past it: the failed operation keeps its place (with an incremented
// attempt count), a fixed backoff delay runs, and the failure is returned.
// An operation that has exhausted its attempts is evicted with a warning.
func (q *Queue) Drain(ctx context.Context, apply ApplyFunc) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	ops, err := q.load(ctx)
	if err != nil {
		return err
	}
	if len(ops) == 0 {
		return nil
	}

	remaining := make([]models.QueuedOperation, 0, len(ops))
	var failure error

	for i := 0; i < len(ops); i++ {
		op := ops[i]

		if err := apply(ctx, op); err != nil {
			op.Attempts++
			if op.Attempts >= q.maxAttempts {
				q.log.Warn(ctx, "evicting queued operation after repeated failures",
					"op_id", op.Id, "type", op.Type, "attempts", op.Attempts, "error", err)
			} else {
				remaining = append(remaining, op)
			}
			// Keep the rest of the pass untouched behind the failed one.
			remaining = append(remaining, ops[i+1:]...)
			failure = fmt.Errorf("failed to replay operation %s (%s): %w", op.Id, op.Type, err)
			break
		}

		q.log.Debug(ctx, "replayed queued operation", "op_id", op.Id, "type", op.Type)
	}

	if err := q.persist(ctx, remaining); err != nil {
		return err
	}

	if failure != nil {
		select {
		case <-time.After(q.backoff):
		case <-ctx.Done():
		}
		return failure
	}
	return nil
}

func (q *Queue) load(ctx context.Context) ([]models.QueuedOperation, error) {
	value, err := q.store.Get(ctx, localstore.KeyQueuedOperations)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return []models.QueuedOperation{}, nil
	}

	var ops []models.QueuedOperation
	if err := json.Unmarshal(value, &ops); err != nil {
		q.log.Warn(ctx, "queued operations are corrupt, dropping", "error", err)
		return []models.QueuedOperation{}, nil
	}
	return ops, nil
}

func (q *Queue) persist(ctx context.Context, ops []models.QueuedOperation) error {
	if len(ops) == 0 {
		return q.store.Delete(ctx, localstore.KeyQueuedOperations)
	}
	value, err := json.Marshal(ops)
	if err != nil {
		return fmt.Errorf("failed to marshal queued operations: %w", err)
	}
	return q.store.Set(ctx, localstore.KeyQueuedOperations, value)
}
