// Package cart holds the pure cart state transitions. Reduce never mutates
// the state it is given; persistence is the caller's concern.
package cart

import (
	"errors"

	"storefront/internal/domain"
)

var (
	ErrMaxStockReached = errors.New("maximum stock reached")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrItemNotFound    = errors.New("item not in cart")
)

// Action is one cart transition.
type Action interface {
	apply(c domain.Cart) (domain.Cart, error)
}

type AddItem struct {
	Product  domain.Product
	Variant  domain.ProductVariant
	Quantity int
}

type RemoveItem struct {
	ProductID string
	VariantID string
}

// UpdateQuantity sets the quantity of a line. Variant is the current catalog
// variant; its stock bounds the quantity and replaces the line's snapshot.
type UpdateQuantity struct {
	ProductID string
	VariantID string
	Quantity  int
	Variant   domain.ProductVariant
}

type SetShippingAddress struct{ Address domain.Address }

type SetBillingAddress struct{ Address domain.Address }

type ClearCart struct{}

// Reduce applies a to state. On error the returned cart is state itself.
func Reduce(state domain.Cart, a Action) (domain.Cart, error) {
	next, err := a.apply(clone(state))
	if err != nil {
		return state, err
	}
	next.Total = next.ComputeTotal()
	next.ItemCount = next.Units()
	return next, nil
}

func (a AddItem) apply(c domain.Cart) (domain.Cart, error) {
	if a.Quantity < 1 {
		return c, ErrInvalidQuantity
	}
	if !a.Product.InStock {
		return c, ErrMaxStockReached
	}
	if i := indexOf(c, a.Product.ID, a.Variant.ID); i >= 0 {
		// compare against the remaining room so the sum cannot overflow
		if a.Quantity > a.Variant.Stock-c.Items[i].Quantity {
			return c, ErrMaxStockReached
		}
		c.Items[i].Quantity += a.Quantity
		return c, nil
	}
	if a.Quantity > a.Variant.Stock {
		return c, ErrMaxStockReached
	}
	c.Items = append(c.Items, domain.CartItem{
		ProductID: a.Product.ID,
		VariantID: a.Variant.ID,
		Product:   a.Product.Clone(),
		Variant:   a.Variant,
		Quantity:  a.Quantity,
	})
	return c, nil
}

func (a RemoveItem) apply(c domain.Cart) (domain.Cart, error) {
	out := c.Items[:0]
	for _, it := range c.Items {
		if it.ProductID == a.ProductID && it.VariantID == a.VariantID {
			continue
		}
		out = append(out, it)
	}
	c.Items = out
	return c, nil
}

func (a UpdateQuantity) apply(c domain.Cart) (domain.Cart, error) {
	if a.Quantity < 1 {
		return c, ErrInvalidQuantity
	}
	i := indexOf(c, a.ProductID, a.VariantID)
	if i < 0 {
		return c, ErrItemNotFound
	}
	if a.Quantity > a.Variant.Stock {
		return c, ErrMaxStockReached
	}
	c.Items[i].Variant = a.Variant
	c.Items[i].Quantity = a.Quantity
	return c, nil
}

func (a SetShippingAddress) apply(c domain.Cart) (domain.Cart, error) {
	addr := a.Address
	c.ShippingAddress = &addr
	return c, nil
}

func (a SetBillingAddress) apply(c domain.Cart) (domain.Cart, error) {
	addr := a.Address
	c.BillingAddress = &addr
	return c, nil
}

func (ClearCart) apply(c domain.Cart) (domain.Cart, error) {
	return domain.Cart{ID: c.ID, Items: []domain.CartItem{}}, nil
}

func indexOf(c domain.Cart, productID, variantID string) int {
	for i, it := range c.Items {
		if it.ProductID == productID && it.VariantID == variantID {
			return i
		}
	}
	return -1
}

func clone(c domain.Cart) domain.Cart {
	cp := c
	cp.Items = make([]domain.CartItem, len(c.Items))
	for i, it := range c.Items {
		it.Product = it.Product.Clone()
		cp.Items[i] = it
	}
	if c.ShippingAddress != nil {
		a := *c.ShippingAddress
		cp.ShippingAddress = &a
	}
	if c.BillingAddress != nil {
		a := *c.BillingAddress
		cp.BillingAddress = &a
	}
	return cp
}
