// Package memory is a process-local visitor store used when no database is
// configured.
package memory

import (
	"context"
	"sync"

	"chat-relay/internal/visitor/repository"
)

type implRepository struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// New creates an in-memory visitor Repository.
func New() repository.Repository {
	return &implRepository{seen: make(map[string]struct{})}
}

func (r *implRepository) EnsureSchema(ctx context.Context) error {
	return nil
}

func (r *implRepository) InsertIfAbsent(ctx context.Context, userKey string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.seen[userKey]; ok {
		return false, nil
	}
	r.seen[userKey] = struct{}{}
	return true, nil
}
