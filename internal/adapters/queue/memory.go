package queue

import (
	"context"
	"sync"

	"prodroster/internal/domain"
)

// ErrClosed is returned after Close.
var ErrClosed = domain.ErrQueueClosed

type memoryQueue struct {
	items     chan string
	done      chan struct{}
	closeOnce sync.Once
}

// NewMemoryQueue returns an in-process RepairQueue holding up to size pending ids.
// Enqueue blocks while the buffer is full.
func NewMemoryQueue(size int) domain.RepairQueue {
	if size <= 0 {
		size = 1
	}
	return &memoryQueue{
		items: make(chan string, size),
		done:  make(chan struct{}),
	}
}

func (q *memoryQueue) Enqueue(ctx context.Context, accountID string) error {
	select {
	case <-q.done:
		return ErrClosed
	default:
	}
	select {
	case q.items <- accountID:
		return nil
	case <-q.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *memoryQueue) Dequeue(ctx context.Context) (string, error) {
	select {
	case id := <-q.items:
		return id, nil
	case <-q.done:
		return "", ErrClosed
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (q *memoryQueue) Close() error {
	q.closeOnce.Do(func() { close(q.done) })
	return nil
}
