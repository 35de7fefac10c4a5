package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"storefront/internal/cart"
	"storefront/internal/domain"
	"storefront/internal/repository"
)

var (
	ErrNotEnoughStock = errors.New("not enough stock")
	ErrInvalidState   = errors.New("invalid state")
	ErrEmptyCart      = errors.New("cart is empty")
)

// Pricing holds the shipping rule applied at checkout
type Pricing struct {
	FreeShippingThreshold domain.Money
	FlatShippingFee       domain.Money
}

// Shipping returns the shipping cost for a subtotal.
func (p Pricing) Shipping(subtotal domain.Money) domain.Money {
	return domain.ShippingFor(subtotal, p.FreeShippingThreshold, p.FlatShippingFee)
}

// OrderDeps wires OrderService
type OrderDeps struct {
	Products  repository.ProductRepository
	Orders    repository.OrderRepository
	Carts     repository.CartRepository
	Addresses repository.AddressRepository
	Customers *CustomerService
	Tx        repository.TxManager
	Payments  PaymentGateway
	Pricing   Pricing
	Log       *zap.Logger
}

// OrderService places orders from carts and serves the admin order surface
type OrderService struct {
	products  repository.ProductRepository
	orders    repository.OrderRepository
	carts     repository.CartRepository
	addresses repository.AddressRepository
	customers *CustomerService
	tx        repository.TxManager
	payments  PaymentGateway
	pricing   Pricing
	log       *zap.Logger
}

func NewOrderService(d OrderDeps) *OrderService {
	return &OrderService{
		products:  d.Products,
		orders:    d.Orders,
		carts:     d.Carts,
		addresses: d.Addresses,
		customers: d.Customers,
		tx:        d.Tx,
		payments:  d.Payments,
		pricing:   d.Pricing,
		log:       d.Log,
	}
}

// CheckoutRequest is the checkout form
type CheckoutRequest struct {
	Customer      domain.CustomerInfo  `json:"customer"`
	PaymentMethod domain.PaymentMethod `json:"payment_method" validate:"required"`
	Notes         string               `json:"notes"`
	SaveAddress   bool                 `json:"save_address"`
}

// PlaceOrder turns the cart into an order, records the purchase in the
// customer ledger and clears the cart. Writes are not rolled back if a later
// step fails.
func (s *OrderService) PlaceOrder(ctx context.Context, cartID string, req CheckoutRequest) (string, error) {
	if cartID == "" {
		return "", ErrInvalidInput
	}
	if err := validateStruct(req); err != nil {
		return "", err
	}
	if !req.PaymentMethod.Valid() {
		return "", fmt.Errorf("%w: payment_method is invalid", ErrInvalidInput)
	}

	var orderID string
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		c, err := s.carts.Get(ctx, cartID)
		if err != nil {
			return err
		}
		if len(c.Items) == 0 {
			return ErrEmptyCart
		}
		if c.ShippingAddress == nil {
			return fmt.Errorf("%w: shipping_address is required", ErrInvalidInput)
		}
		if err := s.checkStock(ctx, c.Items); err != nil {
			return err
		}

		subtotal := c.ComputeTotal()
		shipping := s.pricing.Shipping(subtotal)
		total := subtotal + shipping

		if err := s.payments.Charge(ctx, cartID, total, req.PaymentMethod); err != nil {
			return fmt.Errorf("payment: %w", err)
		}

		billing := *c.ShippingAddress
		if c.BillingAddress != nil {
			billing = *c.BillingAddress
		}
		o := domain.Order{
			Customer:        req.Customer,
			Items:           snapshotLines(c.Items),
			ShippingAddress: *c.ShippingAddress,
			BillingAddress:  billing,
			Subtotal:        subtotal,
			Shipping:        shipping,
			Total:           total,
			Status:          domain.OrderStatusProcessing,
			PaymentMethod:   req.PaymentMethod,
			Notes:           req.Notes,
		}
		if err := s.orders.Create(ctx, &o); err != nil {
			return err
		}
		if _, err := s.customers.RecordPurchase(ctx, req.Customer, total); err != nil {
			return err
		}
		if req.SaveAddress {
			if _, err := s.addresses.Add(ctx, req.Customer.Email, *c.ShippingAddress); err != nil {
				return err
			}
		}
		cleared, _ := cart.Reduce(*c, cart.ClearCart{})
		if err := s.carts.Save(ctx, &cleared); err != nil {
			return err
		}
		orderID = o.ID
		return nil
	})
	if err != nil {
		return "", err
	}
	s.log.Info("Order placed", zap.String("order_id", orderID), zap.String("cart_id", cartID))
	return orderID, nil
}

// checkStock compares each line with the live catalog.
func (s *OrderService) checkStock(ctx context.Context, items []domain.CartItem) error {
	for _, it := range items {
		p, err := s.products.GetByID(ctx, it.ProductID)
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %s is no longer available", ErrNotEnoughStock, it.Product.Name)
		}
		if err != nil {
			return err
		}
		v, ok := p.Variant(it.VariantID)
		if !ok || !p.InStock || it.Quantity < 1 || v.Stock < it.Quantity {
			return fmt.Errorf("%w: %s (%s %s)", ErrNotEnoughStock, p.Name, it.Variant.Size, it.Variant.Color)
		}
	}
	return nil
}

// snapshotLines deep-copies cart lines so the order keeps purchase-time data.
func snapshotLines(items []domain.CartItem) []domain.LineItem {
	out := make([]domain.LineItem, 0, len(items))
	for _, it := range items {
		out = append(out, domain.LineItem{
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Product:   it.Product.Clone(),
			Variant:   it.Variant,
			Quantity:  it.Quantity,
			Price:     it.LineTotal(),
		})
	}
	return out
}

// GetOrder returns an order by id
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.orders.GetByID(ctx, id)
}

// GetOrderFor returns an order only to its customer or to a session that
// manages orders. Anyone else gets ErrNotFound.
func (s *OrderService) GetOrderFor(ctx context.Context, id string, sess domain.Session) (*domain.Order, error) {
	o, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sess.Can(domain.CapManageOrders) && domain.NormalizeEmail(o.Customer.Email) != domain.NormalizeEmail(sess.Email) {
		return nil, repository.ErrNotFound
	}
	return o, nil
}

func (s *OrderService) ListOrders(ctx context.Context, f repository.OrderFilter) ([]domain.Order, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, ErrInvalidInput
	}
	return s.orders.List(ctx, f)
}

// UpdateStatus moves an order to status. Delivered and Cancelled orders are
// final.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if id == "" || !status.Valid() {
		return nil, ErrInvalidInput
	}
	var updated *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		o, err := s.orders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if o.Status == status {
			updated = o
			return nil
		}
		if o.Status.Terminal() {
			return ErrInvalidState
		}
		from := o.Status
		o.Status = status
		if err := s.orders.Update(ctx, o); err != nil {
			return err
		}
		s.log.Info("Order status changed",
			zap.String("order_id", id),
			zap.String("from", string(from)),
			zap.String("to", string(status)))
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("Order deleted", zap.String("order_id", id))
	return nil
}
