package repository

import (
	"context"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/storage"
)

// Addresses is the saved-address book persisted under the "addresses" key
type Addresses struct{ store *Store }

func NewAddresses(store *Store) *Addresses { return &Addresses{store: store} }

var _ AddressRepository = (*Addresses)(nil)

func (r *Addresses) load(ctx context.Context) (map[string][]domain.Address, error) {
	book := make(map[string][]domain.Address)
	if _, err := storage.GetJSON(ctx, r.store.kv, keyAddresses, &book); err != nil {
		return nil, fmt.Errorf("load %s: %w", keyAddresses, err)
	}
	return book, nil
}

// Add stores a unless the same address is already saved for email.
func (r *Addresses) Add(ctx context.Context, email string, a domain.Address) (bool, error) {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	book, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	email = domain.NormalizeEmail(email)
	for _, have := range book[email] {
		if have == a {
			return false, nil
		}
	}
	book[email] = append(book[email], a)
	if err := storage.SetJSON(ctx, r.store.kv, keyAddresses, book); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Addresses) List(ctx context.Context, email string) ([]domain.Address, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	book, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	out := book[domain.NormalizeEmail(email)]
	if out == nil {
		out = []domain.Address{}
	}
	return out, nil
}
