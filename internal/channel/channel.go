// Package channel carries values between a producer goroutine and the
// interactive event loop.
package channel

import (
	"context"
	"sync"
)

// Receiver provides read access to a channel.
type Receiver[T any] interface {
	Receive() <-chan T
	Len() int
}

// Sender provides write access to a channel. Send reports false when ctx
// ends before the value is accepted.
type Sender[T any] interface {
	Send(ctx context.Context, v T) bool
}

// Channel combines read and write access.
type Channel[T any] interface {
	Receiver[T]
	Sender[T]
	Close()
}

type queue[T any] struct {
	ch   chan T
	once sync.Once
}

func newQueue[T any](size int) *queue[T] {
	if size < 0 {
		size = 0
	}
	return &queue[T]{ch: make(chan T, size)}
}

func (q *queue[T]) Send(ctx context.Context, v T) bool {
	select {
	case q.ch <- v:
		return true
	case <-ctx.Done():
		return false
	}
}

func (q *queue[T]) Receive() <-chan T { return q.ch }
func (q *queue[T]) Len() int          { return len(q.ch) }

// Close closes the channel. Later calls are no-ops.
func (q *queue[T]) Close() {
	q.once.Do(func() { close(q.ch) })
}
