package usecase

import (
	"context"

	"chat-relay/internal/visitor"
)

func (uc *implUseCase) RecordIfAbsent(ctx context.Context, userKey string) error {
	if userKey == "" {
		return &visitor.PersistenceError{UserKey: userKey, Err: visitor.ErrEmptyUserKey}
	}

	inserted, err := uc.repo.InsertIfAbsent(ctx, userKey)
	if err != nil {
		return &visitor.PersistenceError{UserKey: userKey, Err: err}
	}
	if inserted {
		uc.l.Infof(ctx, "internal.visitor.usecase.RecordIfAbsent: new visitor %s", userKey)
	}
	return nil
}
