package repository

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/domain"
)

// Products is the product list persisted under the "products" key
type Products struct{ store *Store }

func NewProducts(store *Store) *Products { return &Products{store: store} }

var _ ProductRepository = (*Products)(nil)

// Create appends p; a missing id or variant id is generated.
func (r *Products) Create(ctx context.Context, p *domain.Product) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	list, err := loadList[domain.Product](ctx, r.store, keyProducts)
	if err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	assignVariantIDs(p)
	list = append(list, p.Clone())
	return saveList(ctx, r.store, keyProducts, list)
}

func (r *Products) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	list, err := loadList[domain.Product](ctx, r.store, keyProducts)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		if p.ID == id {
			cp := p.Clone()
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// Update replaces the whole record with matching id.
func (r *Products) Update(ctx context.Context, p *domain.Product) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	list, err := loadList[domain.Product](ctx, r.store, keyProducts)
	if err != nil {
		return err
	}
	for i := range list {
		if list[i].ID == p.ID {
			assignVariantIDs(p)
			list[i] = p.Clone()
			return saveList(ctx, r.store, keyProducts, list)
		}
	}
	return ErrNotFound
}

func (r *Products) Delete(ctx context.Context, id string) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	list, err := loadList[domain.Product](ctx, r.store, keyProducts)
	if err != nil {
		return err
	}
	out := make([]domain.Product, 0, len(list))
	for _, p := range list {
		if p.ID != id {
			out = append(out, p)
		}
	}
	if len(out) == len(list) {
		return ErrNotFound
	}
	return saveList(ctx, r.store, keyProducts, out)
}

func (r *Products) List(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	list, err := loadList[domain.Product](ctx, r.store, keyProducts)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0)
	for _, p := range list {
		if f.match(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *Products) Count(ctx context.Context) (int, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	list, err := loadList[domain.Product](ctx, r.store, keyProducts)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

func assignVariantIDs(p *domain.Product) {
	for i := range p.Variants {
		if p.Variants[i].ID == "" {
			p.Variants[i].ID = uuid.NewString()
		}
	}
}
