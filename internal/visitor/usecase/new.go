package usecase

import (
	"chat-relay/internal/visitor"
	"chat-relay/internal/visitor/repository"
	"chat-relay/pkg/log"
)

type implUseCase struct {
	repo repository.Repository
	l    log.Logger
}

// New creates the visitor log.
func New(repo repository.Repository, l log.Logger) visitor.UseCase {
	return &implUseCase{
		repo: repo,
		l:    l,
	}
}
