package repository

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/storage"
)

// Carts keeps each cart snapshot under "cart:<id>"
type Carts struct{ store *Store }

func NewCarts(store *Store) *Carts { return &Carts{store: store} }

var _ CartRepository = (*Carts)(nil)

func (r *Carts) Get(ctx context.Context, id string) (*domain.Cart, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	var c domain.Cart
	ok, err := storage.GetJSON(ctx, r.store.kv, prefixCart+id, &c)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	if c.Items == nil {
		c.Items = []domain.CartItem{}
	}
	return &c, nil
}

func (r *Carts) Save(ctx context.Context, c *domain.Cart) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	c.UpdatedAt = r.store.Now()
	return storage.SetJSON(ctx, r.store.kv, prefixCart+c.ID, c)
}
