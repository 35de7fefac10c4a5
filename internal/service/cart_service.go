package service

import (
	"context"
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/internal/cart"
	"storefront/internal/domain"
	"storefront/internal/repository"
)

// CartService loads a cart snapshot, runs the reducer and persists the result
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	tx       repository.TxManager
	log      *zap.Logger
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository, tx repository.TxManager, log *zap.Logger) *CartService {
	return &CartService{carts: carts, products: products, tx: tx, log: log}
}

// Create persists an empty cart with a fresh id.
func (s *CartService) Create(ctx context.Context) (*domain.Cart, error) {
	c := domain.Cart{ID: uuid.NewString(), Items: []domain.CartItem{}}
	if err := s.carts.Save(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CartService) Get(ctx context.Context, id string) (*domain.Cart, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.carts.Get(ctx, id)
}

// Dispatch applies a to the stored cart and saves the new state. A rejected
// action leaves the stored cart untouched and returns the reducer error.
func (s *CartService) Dispatch(ctx context.Context, id string, a cart.Action) (*domain.Cart, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	var out *domain.Cart
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		current, err := s.carts.Get(ctx, id)
		if err != nil {
			return err
		}
		next, err := cart.Reduce(*current, a)
		if err != nil {
			s.log.Debug("Cart action rejected",
				zap.String("cart_id", id),
				zap.String("action", actionName(a)),
				zap.Error(err))
			return err
		}
		if err := s.carts.Save(ctx, &next); err != nil {
			return err
		}
		out = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug("Cart updated",
		zap.String("cart_id", id),
		zap.String("action", actionName(a)),
		zap.Int("items", len(out.Items)),
		zap.String("total", out.Total.String()))
	return out, nil
}

// AddItem resolves the product and variant from the live catalog and adds
// a snapshot of them to the cart.
func (s *CartService) AddItem(ctx context.Context, id, productID, variantID string, qty int) (*domain.Cart, error) {
	p, v, err := s.liveVariant(ctx, productID, variantID)
	if err != nil {
		return nil, err
	}
	return s.Dispatch(ctx, id, cart.AddItem{Product: *p, Variant: v, Quantity: qty})
}

// UpdateQuantity sets a line's quantity, bounded by the variant's current
// catalog stock.
func (s *CartService) UpdateQuantity(ctx context.Context, id, productID, variantID string, qty int) (*domain.Cart, error) {
	_, v, err := s.liveVariant(ctx, productID, variantID)
	if err != nil {
		return nil, err
	}
	return s.Dispatch(ctx, id, cart.UpdateQuantity{ProductID: productID, VariantID: variantID, Quantity: qty, Variant: v})
}

func (s *CartService) liveVariant(ctx context.Context, productID, variantID string) (*domain.Product, domain.ProductVariant, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, domain.ProductVariant{}, fmt.Errorf("product %s: %w", productID, err)
	}
	v, ok := p.Variant(variantID)
	if !ok {
		return nil, domain.ProductVariant{}, fmt.Errorf("variant %s: %w", variantID, repository.ErrNotFound)
	}
	return p, v, nil
}

func (s *CartService) SetShippingAddress(ctx context.Context, id string, a domain.Address) (*domain.Cart, error) {
	if err := validateStruct(a); err != nil {
		return nil, err
	}
	return s.Dispatch(ctx, id, cart.SetShippingAddress{Address: a})
}

func (s *CartService) SetBillingAddress(ctx context.Context, id string, a domain.Address) (*domain.Cart, error) {
	if err := validateStruct(a); err != nil {
		return nil, err
	}
	return s.Dispatch(ctx, id, cart.SetBillingAddress{Address: a})
}

func actionName(a cart.Action) string {
	return reflect.TypeOf(a).Name()
}
