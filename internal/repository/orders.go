package repository

import (
	"context"

	"storefront/internal/domain"
)

// Orders is the order list persisted under the "orders" key
type Orders struct{ store *Store }

func NewOrders(store *Store) *Orders { return &Orders{store: store} }

var _ OrderRepository = (*Orders)(nil)

// Create assigns a timestamp-derived id and appends o.
func (r *Orders) Create(ctx context.Context, o *domain.Order) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	list, err := loadList[domain.Order](ctx, r.store, keyOrders)
	if err != nil {
		return err
	}
	o.ID = r.store.nextOrderID()
	o.CreatedAt = r.store.Now()
	o.UpdatedAt = o.CreatedAt
	list = append(list, *o)
	return saveList(ctx, r.store, keyOrders, list)
}

func (r *Orders) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	list, err := loadList[domain.Order](ctx, r.store, keyOrders)
	if err != nil {
		return nil, err
	}
	for _, o := range list {
		if o.ID == id {
			cp := o
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *Orders) Update(ctx context.Context, o *domain.Order) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	list, err := loadList[domain.Order](ctx, r.store, keyOrders)
	if err != nil {
		return err
	}
	for i := range list {
		if list[i].ID == o.ID {
			o.UpdatedAt = r.store.Now()
			list[i] = *o
			return saveList(ctx, r.store, keyOrders, list)
		}
	}
	return ErrNotFound
}

func (r *Orders) Delete(ctx context.Context, id string) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	list, err := loadList[domain.Order](ctx, r.store, keyOrders)
	if err != nil {
		return err
	}
	out := make([]domain.Order, 0, len(list))
	for _, o := range list {
		if o.ID != id {
			out = append(out, o)
		}
	}
	if len(out) == len(list) {
		return ErrNotFound
	}
	return saveList(ctx, r.store, keyOrders, out)
}

// List returns matching orders, newest first.
func (r *Orders) List(ctx context.Context, f OrderFilter) ([]domain.Order, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	list, err := loadList[domain.Order](ctx, r.store, keyOrders)
	if err != nil {
		return nil, err
	}
	email := domain.NormalizeEmail(f.Email)
	out := make([]domain.Order, 0)
	// appended in creation order; walk backwards for newest first
	for i := len(list) - 1; i >= 0; i-- {
		o := list[i]
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if email != "" && domain.NormalizeEmail(o.Customer.Email) != email {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}
