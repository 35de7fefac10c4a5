package repository

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/storage"
)

// Sessions keeps each login under "session:<token>"
type Sessions struct{ store *Store }

func NewSessions(store *Store) *Sessions { return &Sessions{store: store} }

var _ SessionRepository = (*Sessions)(nil)

func (r *Sessions) Create(ctx context.Context, s *domain.Session) error {
	return storage.SetJSON(ctx, r.store.kv, prefixSess+s.Token, s)
}

func (r *Sessions) Get(ctx context.Context, token string) (*domain.Session, error) {
	var s domain.Session
	ok, err := storage.GetJSON(ctx, r.store.kv, prefixSess+token, &s)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (r *Sessions) Delete(ctx context.Context, token string) error {
	return r.store.kv.Delete(ctx, prefixSess+token)
}
