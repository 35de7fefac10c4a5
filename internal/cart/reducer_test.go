package cart

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

func tee() (domain.Product, domain.ProductVariant, domain.ProductVariant) {
	m := domain.ProductVariant{ID: "m", Size: "M", Color: "Black", Stock: 5}
	l := domain.ProductVariant{ID: "l", Size: "L", Color: "Black", Stock: 2}
	p := domain.Product{ID: "tee", Name: "Tee", Price: 59900, Category: "tshirts", InStock: true, Variants: []domain.ProductVariant{m, l}}
	return p, m, l
}

func mustReduce(t *testing.T, c domain.Cart, a Action) domain.Cart {
	t.Helper()
	next, err := Reduce(c, a)
	require.NoError(t, err)
	return next
}

func TestAddItem_TotalTracksItems(t *testing.T) {
	p, m, l := tee()
	jacket := domain.Product{ID: "jacket", Price: 499900, InStock: true}
	jv := domain.ProductVariant{ID: "j", Stock: 3}

	c := domain.Cart{ID: "c"}
	for _, a := range []Action{
		AddItem{Product: p, Variant: m, Quantity: 1},
		AddItem{Product: jacket, Variant: jv, Quantity: 2},
		AddItem{Product: p, Variant: l, Quantity: 2},
		AddItem{Product: p, Variant: m, Quantity: 3},
	} {
		c = mustReduce(t, c, a)
		var want domain.Money
		for _, it := range c.Items {
			want += it.Product.Price * domain.Money(it.Quantity)
		}
		assert.Equal(t, want, c.Total)
	}
	assert.Len(t, c.Items, 3)
	assert.Equal(t, domain.Money(59900*6+499900*2), c.Total)
	assert.Equal(t, 8, c.ItemCount)
}

func TestAddItem_SamePairMerges(t *testing.T) {
	p, m, _ := tee()
	c := mustReduce(t, domain.Cart{}, AddItem{Product: p, Variant: m, Quantity: 2})
	c = mustReduce(t, c, AddItem{Product: p, Variant: m, Quantity: 3})

	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
}

func TestAddItem_Rejections(t *testing.T) {
	p, m, l := tee()
	start := mustReduce(t, domain.Cart{ID: "c"}, AddItem{Product: p, Variant: l, Quantity: 2})

	tests := []struct {
		name string
		a    Action
		want error
	}{
		{"zero quantity", AddItem{Product: p, Variant: m, Quantity: 0}, ErrInvalidQuantity},
		{"over stock new line", AddItem{Product: p, Variant: m, Quantity: 6}, ErrMaxStockReached},
		{"over stock merged", AddItem{Product: p, Variant: l, Quantity: 1}, ErrMaxStockReached},
		{"not in stock", AddItem{Product: domain.Product{ID: "x", Price: 1}, Variant: domain.ProductVariant{ID: "v", Stock: 9}, Quantity: 1}, ErrMaxStockReached},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Reduce(start, tt.a)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, cmp.Diff(start, got))
		})
	}
}

func TestAddItem_MergeCannotOverflow(t *testing.T) {
	p, m, _ := tee()
	start := mustReduce(t, domain.Cart{ID: "c"}, AddItem{Product: p, Variant: m, Quantity: 1})

	got, err := Reduce(start, AddItem{Product: p, Variant: m, Quantity: math.MaxInt})
	assert.ErrorIs(t, err, ErrMaxStockReached)
	assert.Empty(t, cmp.Diff(start, got))
	assert.Equal(t, 1, got.Items[0].Quantity)
	assert.Equal(t, domain.Money(59900), got.Total)

	// exactly filling the remaining stock is allowed
	full := mustReduce(t, start, AddItem{Product: p, Variant: m, Quantity: m.Stock - 1})
	assert.Equal(t, m.Stock, full.Items[0].Quantity)
}

func TestUpdateQuantity_UsesCurrentStock(t *testing.T) {
	p, m, _ := tee()
	c := mustReduce(t, domain.Cart{ID: "c"}, AddItem{Product: p, Variant: m, Quantity: 1})

	restocked := m
	restocked.Stock = 20
	c = mustReduce(t, c, UpdateQuantity{ProductID: "tee", VariantID: "m", Quantity: 15, Variant: restocked})
	assert.Equal(t, 15, c.Items[0].Quantity)
	assert.Equal(t, 20, c.Items[0].Variant.Stock)

	low := m
	low.Stock = 3
	_, err := Reduce(c, UpdateQuantity{ProductID: "tee", VariantID: "m", Quantity: 4, Variant: low})
	assert.ErrorIs(t, err, ErrMaxStockReached)
}

func TestAddItem_SnapshotIsIndependent(t *testing.T) {
	p, m, _ := tee()
	p.Images = []string{"a.jpg"}
	c := mustReduce(t, domain.Cart{}, AddItem{Product: p, Variant: m, Quantity: 1})

	p.Images[0] = "b.jpg"
	p.Price = 1
	assert.Equal(t, "a.jpg", c.Items[0].Product.Images[0])
	assert.Equal(t, domain.Money(59900), c.Items[0].Product.Price)
}

func TestRemoveItem(t *testing.T) {
	p, m, l := tee()
	c := mustReduce(t, domain.Cart{}, AddItem{Product: p, Variant: m, Quantity: 1})
	c = mustReduce(t, c, AddItem{Product: p, Variant: l, Quantity: 1})

	c = mustReduce(t, c, RemoveItem{ProductID: "tee", VariantID: "m"})
	require.Len(t, c.Items, 1)
	assert.Equal(t, "l", c.Items[0].VariantID)
	assert.Equal(t, domain.Money(59900), c.Total)

	// absent pair is a no-op
	again := mustReduce(t, c, RemoveItem{ProductID: "tee", VariantID: "m"})
	assert.Empty(t, cmp.Diff(c, again))
}

func TestRemoveItem_DoesNotMutateInput(t *testing.T) {
	p, m, l := tee()
	c := mustReduce(t, domain.Cart{}, AddItem{Product: p, Variant: m, Quantity: 1})
	c = mustReduce(t, c, AddItem{Product: p, Variant: l, Quantity: 1})
	before := clone(c)

	_ = mustReduce(t, c, RemoveItem{ProductID: "tee", VariantID: "m"})
	assert.Len(t, c.Items, 2)
	assert.Equal(t, "m", c.Items[0].VariantID)
	assert.Empty(t, cmp.Diff(before, c))
}

func TestUpdateQuantity(t *testing.T) {
	p, m, _ := tee()
	c := mustReduce(t, domain.Cart{ID: "c"}, AddItem{Product: p, Variant: m, Quantity: 1})

	c = mustReduce(t, c, UpdateQuantity{ProductID: "tee", VariantID: "m", Quantity: 4, Variant: m})
	assert.Equal(t, 4, c.Items[0].Quantity)
	assert.Equal(t, domain.Money(59900*4), c.Total)

	for _, tt := range []struct {
		name string
		a    UpdateQuantity
		want error
	}{
		{"above stock", UpdateQuantity{ProductID: "tee", VariantID: "m", Quantity: 6, Variant: m}, ErrMaxStockReached},
		{"below one", UpdateQuantity{ProductID: "tee", VariantID: "m", Quantity: 0, Variant: m}, ErrInvalidQuantity},
		{"unknown item", UpdateQuantity{ProductID: "tee", VariantID: "xl", Quantity: 1, Variant: m}, ErrItemNotFound},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Reduce(c, tt.a)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, cmp.Diff(c, got), "rejected update must leave the cart unchanged")
		})
	}
}

func TestAddresses(t *testing.T) {
	ship := domain.Address{Street: "1 MG Road", City: "Pune", State: "MH", ZipCode: "411001", Country: "IN"}
	bill := domain.Address{Street: "2 FC Road", City: "Pune", State: "MH", ZipCode: "411004", Country: "IN"}

	c := mustReduce(t, domain.Cart{}, SetShippingAddress{Address: ship})
	c = mustReduce(t, c, SetBillingAddress{Address: bill})
	require.NotNil(t, c.ShippingAddress)
	require.NotNil(t, c.BillingAddress)
	assert.Equal(t, ship, *c.ShippingAddress)
	assert.Equal(t, bill, *c.BillingAddress)

	c = mustReduce(t, c, SetShippingAddress{Address: bill})
	assert.Equal(t, bill, *c.ShippingAddress)
}

func TestClearCart(t *testing.T) {
	p, m, _ := tee()
	c := mustReduce(t, domain.Cart{ID: "c"}, AddItem{Product: p, Variant: m, Quantity: 2})
	c = mustReduce(t, c, SetShippingAddress{Address: domain.Address{Street: "x"}})

	c = mustReduce(t, c, ClearCart{})
	assert.Equal(t, "c", c.ID)
	assert.Empty(t, c.Items)
	assert.Zero(t, c.Total)
	assert.Zero(t, c.ItemCount)
	assert.Nil(t, c.ShippingAddress)
}
