package domain

import (
	"strings"
	"time"
)

// Category groups products in the catalog
type Category struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// ProductVariant is a purchasable size/color combination with its own stock
type ProductVariant struct {
	ID       string `json:"id"`
	Size     string `json:"size"`
	Color    string `json:"color"`
	ColorHex string `json:"color_hex"`
	Stock    int    `json:"stock" validate:"gte=0"`
}

// Product represents a catalog item
type Product struct {
	ID            string           `json:"id"`
	Name          string           `json:"name" validate:"required"`
	Description   string           `json:"description"`
	Price         Money            `json:"price" validate:"required,gt=0"`
	OriginalPrice *Money           `json:"original_price,omitempty"`
	Category      string           `json:"category" validate:"required"`
	Images        []string         `json:"images"`
	Variants      []ProductVariant `json:"variants" validate:"dive"`
	Featured      bool             `json:"featured"`
	Rating        float64          `json:"rating"`
	ReviewCount   int              `json:"review_count"`
	InStock       bool             `json:"in_stock"`
}

// Clone returns a deep copy so snapshots never share slices with the catalog.
func (p Product) Clone() Product {
	cp := p
	if p.OriginalPrice != nil {
		v := *p.OriginalPrice
		cp.OriginalPrice = &v
	}
	if p.Images != nil {
		cp.Images = append([]string(nil), p.Images...)
	}
	if p.Variants != nil {
		cp.Variants = append([]ProductVariant(nil), p.Variants...)
	}
	return cp
}

// Variant looks up a variant by id.
func (p Product) Variant(id string) (ProductVariant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return ProductVariant{}, false
}

// Address is a plain shipping or billing address
type Address struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	ZipCode string `json:"zip_code" validate:"required"`
	Country string `json:"country" validate:"required"`
}

// CartItem is one (product, variant) line in a cart
type CartItem struct {
	ProductID string         `json:"product_id"`
	VariantID string         `json:"variant_id"`
	Product   Product        `json:"product"`
	Variant   ProductVariant `json:"variant"`
	Quantity  int            `json:"quantity"`
}

// LineTotal is unit price times quantity.
func (it CartItem) LineTotal() Money {
	return it.Product.Price.Times(it.Quantity)
}

// Cart is the in-progress selection of a shopper
type Cart struct {
	ID              string     `json:"id"`
	Items           []CartItem `json:"items"`
	Total           Money      `json:"total"`
	ItemCount       int        `json:"item_count"`
	ShippingAddress *Address   `json:"shipping_address,omitempty"`
	BillingAddress  *Address   `json:"billing_address,omitempty"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ComputeTotal sums price times quantity over all items.
func (c Cart) ComputeTotal() Money {
	var total Money
	for _, it := range c.Items {
		total += it.LineTotal()
	}
	return total
}

// Units is the number of units in the cart.
func (c Cart) Units() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// OrderStatus is the order lifecycle state
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal statuses accept no further transitions.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// PaymentMethod chosen at checkout
type PaymentMethod string

const (
	PaymentCard       PaymentMethod = "card"
	PaymentUPI        PaymentMethod = "upi"
	PaymentNetBanking PaymentMethod = "netbanking"
	PaymentCOD        PaymentMethod = "cod"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCard, PaymentUPI, PaymentNetBanking, PaymentCOD:
		return true
	}
	return false
}

// CustomerInfo is the contact snapshot taken at checkout
type CustomerInfo struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,phone"`
}

// LineItem is a purchased line; Price is the line total at purchase time
type LineItem struct {
	ProductID string         `json:"product_id"`
	VariantID string         `json:"variant_id"`
	Product   Product        `json:"product"`
	Variant   ProductVariant `json:"variant"`
	Quantity  int            `json:"quantity"`
	Price     Money          `json:"price"`
}

// Order is an immutable checkout record; only Status changes afterwards
type Order struct {
	ID              string        `json:"id"`
	Customer        CustomerInfo  `json:"customer"`
	Items           []LineItem    `json:"items"`
	ShippingAddress Address       `json:"shipping_address"`
	BillingAddress  Address       `json:"billing_address"`
	Subtotal        Money         `json:"subtotal"`
	Shipping        Money         `json:"shipping"`
	Total           Money         `json:"total"`
	Status          OrderStatus   `json:"status"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	Notes           string        `json:"notes,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// Customer is a ledger row keyed by email
type Customer struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	OrderCount int       `json:"order_count"`
	TotalSpent Money     `json:"total_spent"`
	JoinedAt   time.Time `json:"joined_at"`
}

// NormalizeEmail is the identity used for customer and address lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
