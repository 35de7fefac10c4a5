package repository

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"storefront/internal/domain"
)

// Customers is the customer ledger persisted under the "customers" key
type Customers struct{ store *Store }

func NewCustomers(store *Store) *Customers { return &Customers{store: store} }

var _ CustomerRepository = (*Customers)(nil)

func (r *Customers) Create(ctx context.Context, c *domain.Customer) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	list, err := loadList[domain.Customer](ctx, r.store, keyCustomers)
	if err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.JoinedAt.IsZero() {
		c.JoinedAt = r.store.Now()
	}
	c.Email = domain.NormalizeEmail(c.Email)
	list = append(list, *c)
	return saveList(ctx, r.store, keyCustomers, list)
}

func (r *Customers) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	list, err := loadList[domain.Customer](ctx, r.store, keyCustomers)
	if err != nil {
		return nil, err
	}
	email = domain.NormalizeEmail(email)
	for _, c := range list {
		if c.Email == email {
			cp := c
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *Customers) Update(ctx context.Context, c *domain.Customer) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	list, err := loadList[domain.Customer](ctx, r.store, keyCustomers)
	if err != nil {
		return err
	}
	for i := range list {
		if list[i].ID == c.ID {
			list[i] = *c
			return saveList(ctx, r.store, keyCustomers, list)
		}
	}
	return ErrNotFound
}

// List orders the ledger by lifetime spend, highest first.
func (r *Customers) List(ctx context.Context) ([]domain.Customer, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	list, err := loadList[domain.Customer](ctx, r.store, keyCustomers)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.Customer{}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].TotalSpent > list[j].TotalSpent
	})
	return list, nil
}
