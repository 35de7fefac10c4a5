package domain

import "github.com/shopspring/decimal"

// Money is an amount in minor currency units (paise).
type Money int64

// Times multiplies a unit price by a quantity.
func (m Money) Times(qty int) Money {
	return m * Money(qty)
}

// Decimal converts to major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// ShippingFor applies the free-shipping rule to a subtotal.
func ShippingFor(subtotal, freeThreshold, flatFee Money) Money {
	if subtotal >= freeThreshold {
		return 0
	}
	return flatFee
}
