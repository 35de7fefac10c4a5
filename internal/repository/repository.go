package repository

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain"
)

// ErrNotFound is returned when an entity does not exist
var ErrNotFound = errors.New("not found")

// ProductFilter narrows a catalog listing
type ProductFilter struct {
	NameSubstring string
	Category      string
	Featured      *bool
	InStock       *bool
	MinPrice      *domain.Money
	MaxPrice      *domain.Money
}

func (f ProductFilter) match(p domain.Product) bool {
	if !containsIgnoreCase(p.Name, f.NameSubstring) {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Featured != nil && p.Featured != *f.Featured {
		return false
	}
	if f.InStock != nil && p.InStock != *f.InStock {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	return true
}

// OrderFilter narrows an order listing
type OrderFilter struct {
	Status domain.OrderStatus
	Email  string
}

// ProductRepository is the persisted product list
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ProductFilter) ([]domain.Product, error)
	Count(ctx context.Context) (int, error)
}

// OrderRepository is the persisted order list
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	Update(ctx context.Context, o *domain.Order) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f OrderFilter) ([]domain.Order, error)
}

// CustomerRepository is the customer ledger
type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	List(ctx context.Context) ([]domain.Customer, error)
}

// CartRepository stores one snapshot per cart id
type CartRepository interface {
	Get(ctx context.Context, id string) (*domain.Cart, error)
	Save(ctx context.Context, c *domain.Cart) error
}

// AddressRepository is the saved-address list, keyed by email
type AddressRepository interface {
	Add(ctx context.Context, email string, a domain.Address) (bool, error)
	List(ctx context.Context, email string) ([]domain.Address, error)
}

// SessionRepository stores login sessions by token
type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
}

// TxManager groups repository calls under the store's write lock.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// helper: case-insensitive contains
func containsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
