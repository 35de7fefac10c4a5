// Package catalog holds the demo categories and the seed product list.
package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

var categories = []domain.Category{
	{Slug: "shirts", Name: "Shirts", Description: "Casual and formal shirts", Image: "/images/categories/shirts.jpg"},
	{Slug: "tshirts", Name: "T-Shirts", Description: "Everyday cotton tees", Image: "/images/categories/tshirts.jpg"},
	{Slug: "jackets", Name: "Jackets", Description: "Outerwear for every season", Image: "/images/categories/jackets.jpg"},
	{Slug: "footwear", Name: "Footwear", Description: "Sneakers, loafers and boots", Image: "/images/categories/footwear.jpg"},
	{Slug: "accessories", Name: "Accessories", Description: "Caps, belts and bags", Image: "/images/categories/accessories.jpg"},
}

// Categories returns a copy of the category list.
func Categories() []domain.Category {
	return append([]domain.Category(nil), categories...)
}

// CategoryExists reports whether slug names a known category.
func CategoryExists(slug string) bool {
	for _, c := range categories {
		if c.Slug == slug {
			return true
		}
	}
	return false
}

func money(v domain.Money) *domain.Money { return &v }

// Products returns fresh copies of the seed products. Prices are paise.
func Products() []domain.Product {
	return []domain.Product{
		{
			ID:            "linen-shirt",
			Name:          "Linen Shirt",
			Description:   "Breathable pure linen shirt with a relaxed fit.",
			Price:         249900,
			OriginalPrice: money(299900),
			Category:      "shirts",
			Images:        []string{"/images/products/linen-shirt-1.jpg", "/images/products/linen-shirt-2.jpg"},
			Variants: []domain.ProductVariant{
				{ID: "linen-shirt-m-white", Size: "M", Color: "White", ColorHex: "#FFFFFF", Stock: 12},
				{ID: "linen-shirt-l-white", Size: "L", Color: "White", ColorHex: "#FFFFFF", Stock: 8},
				{ID: "linen-shirt-m-sage", Size: "M", Color: "Sage", ColorHex: "#9CAF88", Stock: 5},
			},
			Featured:    true,
			Rating:      4.6,
			ReviewCount: 128,
			InStock:     true,
		},
		{
			ID:          "oxford-shirt",
			Name:        "Oxford Shirt",
			Description: "Button-down oxford in brushed cotton.",
			Price:       199900,
			Category:    "shirts",
			Images:      []string{"/images/products/oxford-shirt-1.jpg"},
			Variants: []domain.ProductVariant{
				{ID: "oxford-shirt-s-blue", Size: "S", Color: "Blue", ColorHex: "#6F8FAF", Stock: 10},
				{ID: "oxford-shirt-m-blue", Size: "M", Color: "Blue", ColorHex: "#6F8FAF", Stock: 0},
			},
			Rating:      4.3,
			ReviewCount: 64,
			InStock:     true,
		},
		{
			ID:          "crew-tee",
			Name:        "Crew Neck Tee",
			Description: "Heavyweight 220 GSM cotton tee.",
			Price:       59900,
			Category:    "tshirts",
			Images:      []string{"/images/products/crew-tee-1.jpg"},
			Variants: []domain.ProductVariant{
				{ID: "crew-tee-m-black", Size: "M", Color: "Black", ColorHex: "#000000", Stock: 40},
				{ID: "crew-tee-l-black", Size: "L", Color: "Black", ColorHex: "#000000", Stock: 35},
				{ID: "crew-tee-m-grey", Size: "M", Color: "Grey", ColorHex: "#808080", Stock: 20},
			},
			Featured:    true,
			Rating:      4.8,
			ReviewCount: 342,
			InStock:     true,
		},
		{
			ID:            "denim-jacket",
			Name:          "Denim Jacket",
			Description:   "Classic trucker jacket in rigid denim.",
			Price:         499900,
			OriginalPrice: money(549900),
			Category:      "jackets",
			Images:        []string{"/images/products/denim-jacket-1.jpg"},
			Variants: []domain.ProductVariant{
				{ID: "denim-jacket-m-indigo", Size: "M", Color: "Indigo", ColorHex: "#3F5277", Stock: 6},
				{ID: "denim-jacket-l-indigo", Size: "L", Color: "Indigo", ColorHex: "#3F5277", Stock: 4},
			},
			Featured:    true,
			Rating:      4.5,
			ReviewCount: 51,
			InStock:     true,
		},
		{
			ID:          "canvas-sneaker",
			Name:        "Canvas Sneaker",
			Description: "Low-top vulcanised canvas sneaker.",
			Price:       299900,
			Category:    "footwear",
			Images:      []string{"/images/products/canvas-sneaker-1.jpg"},
			Variants: []domain.ProductVariant{
				{ID: "canvas-sneaker-8-white", Size: "UK 8", Color: "White", ColorHex: "#FFFFFF", Stock: 9},
				{ID: "canvas-sneaker-9-white", Size: "UK 9", Color: "White", ColorHex: "#FFFFFF", Stock: 7},
			},
			Rating:      4.1,
			ReviewCount: 89,
			InStock:     true,
		},
		{
			ID:          "wool-cap",
			Name:        "Wool Cap",
			Description: "Ribbed merino beanie.",
			Price:       79900,
			Category:    "accessories",
			Images:      []string{"/images/products/wool-cap-1.jpg"},
			Variants: []domain.ProductVariant{
				{ID: "wool-cap-os-charcoal", Size: "One Size", Color: "Charcoal", ColorHex: "#36454F", Stock: 0},
			},
			Rating:      4.0,
			ReviewCount: 17,
			InStock:     false,
		},
	}
}

// Seed writes the seed products when the product list is empty and reports
// how many were written.
func Seed(ctx context.Context, products repository.ProductRepository, log *zap.Logger) (int, error) {
	n, err := products.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	if n > 0 {
		log.Debug("Catalog already populated", zap.Int("products", n))
		return 0, nil
	}
	seed := Products()
	for i := range seed {
		if err := products.Create(ctx, &seed[i]); err != nil {
			return i, fmt.Errorf("seed %s: %w", seed[i].ID, err)
		}
	}
	log.Info("Seeded catalog", zap.Int("products", len(seed)))
	return len(seed), nil
}
