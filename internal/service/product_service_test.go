package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/repository"
	"storefront/internal/storage"
)

func setupPS(t *testing.T) *ProductService {
	t.Helper()
	store := repository.NewStore(storage.NewMemory())
	return NewProductService(repository.NewProducts(store), zap.NewNop())
}

func TestProduct_Create_Valid(t *testing.T) {
	ctx := context.Background()
	ps := setupPS(t)
	p, err := ps.Create(ctx, domain.Product{
		Name: "Linen Shirt", Category: "shirts", Price: 249900,
		Variants: []domain.ProductVariant{{Size: "M", Stock: 3}},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.ID == "" {
		t.Fatalf("expected id assigned")
	}
	if p.Variants[0].ID == "" {
		t.Fatalf("expected variant id assigned")
	}
}

func TestProduct_Create_Invalid(t *testing.T) {
	ctx := context.Background()
	ps := setupPS(t)
	cases := []domain.Product{
		{Name: "", Category: "shirts", Price: 1},
		{Name: "N", Category: "", Price: 1},
		{Name: "N", Category: "shirts", Price: 0},
		{Name: "N", Category: "shirts", Price: -1},
		{Name: "N", Category: "shirts", Price: 1, Variants: []domain.ProductVariant{{Stock: -1}}},
		{Name: "N", Category: "gadgets", Price: 1},
	}
	for i, p := range cases {
		if _, err := ps.Create(ctx, p); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestProduct_Update_Get_Delete(t *testing.T) {
	ctx := context.Background()
	ps := setupPS(t)
	p, _ := ps.Create(ctx, domain.Product{Name: "A", Category: "shirts", Price: 1000})

	// get
	got, err := ps.GetByID(ctx, p.ID)
	if err != nil || got.ID != p.ID {
		t.Fatalf("get failed: %v", err)
	}

	// update replaces the whole record
	up, err := ps.Update(ctx, domain.Product{ID: p.ID, Name: "A+", Category: "tshirts", Price: 1200})
	if err != nil {
		t.Fatalf("update err: %v", err)
	}
	if up.Name != "A+" || up.Price != 1200 || up.Category != "tshirts" {
		t.Fatalf("not updated")
	}

	// update of unknown id
	if _, err := ps.Update(ctx, domain.Product{ID: "nope", Name: "X", Category: "shirts", Price: 1}); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	// update cannot move a product into an unlisted category
	if _, err := ps.Update(ctx, domain.Product{ID: p.ID, Name: "A+", Category: "gadgets", Price: 1200}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid category, got %v", err)
	}
	if got, _ := ps.GetByID(ctx, p.ID); got.Category != "tshirts" {
		t.Fatalf("rejected update changed category to %q", got.Category)
	}

	// delete
	if err := ps.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete err: %v", err)
	}
	if _, err := ps.GetByID(ctx, p.ID); err == nil {
		t.Fatalf("expected not found after delete")
	}
}

func TestProduct_List_Filtering(t *testing.T) {
	ctx := context.Background()
	ps := setupPS(t)
	must := func(p *domain.Product, err error) *domain.Product {
		if err != nil {
			t.Fatal(err)
		}
		return p
	}
	_ = must(ps.Create(ctx, domain.Product{Name: "Linen Shirt", Category: "shirts", Price: 249900, InStock: true}))
	_ = must(ps.Create(ctx, domain.Product{Name: "Crew Tee", Category: "tshirts", Price: 59900, InStock: true}))
	_ = must(ps.Create(ctx, domain.Product{Name: "Wool Cap", Category: "accessories", Price: 79900, InStock: false}))

	list, err := ps.List(ctx, repository.ProductFilter{NameSubstring: "shirt"})
	if err != nil {
		t.Fatalf("list err: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 item, got %d", len(list))
	}

	in := true
	list, _ = ps.List(ctx, repository.ProductFilter{InStock: &in})
	for _, p := range list {
		if !p.InStock {
			t.Fatalf("in-stock filter failed")
		}
	}
	if len(ps.Categories()) == 0 {
		t.Fatalf("expected categories")
	}
}
