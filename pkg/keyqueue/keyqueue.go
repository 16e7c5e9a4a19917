// Package keyqueue runs jobs in FIFO order per key while different keys run
// concurrently. A key's worker goroutine exits as soon as its queue drains.
package keyqueue

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"

	"chat-relay/pkg/log"
)

var (
	ErrClosed    = errors.New("keyqueue: closed")
	ErrQueueFull = errors.New("keyqueue: queue full")
)

// DefaultMaxPending bounds the jobs waiting behind a running one for a key.
const DefaultMaxPending = 64

// Job is one unit of work. It must not block forever.
type Job func()

type Queue struct {
	l          log.Logger
	maxPending int

	mu      sync.Mutex
	pending map[string][]Job // present while the key's worker is alive
	closed  bool
	wg      sync.WaitGroup
}

// New creates a Queue. maxPending <= 0 selects DefaultMaxPending.
func New(l log.Logger, maxPending int) *Queue {
	if maxPending <= 0 {
		maxPending = DefaultMaxPending
	}
	return &Queue{
		l:          l,
		maxPending: maxPending,
		pending:    make(map[string][]Job),
	}
}

// Submit enqueues job behind every job previously submitted for key.
func (q *Queue) Submit(key string, job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrClosed
	}

	jobs, running := q.pending[key]
	if len(jobs) >= q.maxPending {
		return ErrQueueFull
	}
	q.pending[key] = append(jobs, job)

	if !running {
		q.wg.Add(1)
		go q.run(key)
	}
	return nil
}

// ActiveKeys returns the number of keys with a live worker.
func (q *Queue) ActiveKeys() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Close stops accepting jobs and waits for queued jobs to finish or ctx to end.
func (q *Queue) Close(ctx context.Context) error {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Queue) run(key string) {
	defer q.wg.Done()

	for {
		q.mu.Lock()
		jobs := q.pending[key]
		if len(jobs) == 0 {
			delete(q.pending, key)
			q.mu.Unlock()
			return
		}
		job := jobs[0]
		jobs[0] = nil
		q.pending[key] = jobs[1:]
		q.mu.Unlock()

		q.exec(key, job)
	}
}

func (q *Queue) exec(key string, job Job) {
	defer func() {
		if r := recover(); r != nil {
			q.l.Errorf(context.Background(), "pkg.keyqueue.exec: job for key=%s panicked: %v\n%s", key, r, debug.Stack())
		}
	}()
	job()
}
