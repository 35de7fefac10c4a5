package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/repository"
)

// ProductService covers catalog browsing and the admin product CRUD
type ProductService struct {
	repo repository.ProductRepository
	log  *zap.Logger
}

func NewProductService(repo repository.ProductRepository, log *zap.Logger) *ProductService {
	return &ProductService{repo: repo, log: log}
}

var ErrInvalidInput = errors.New("invalid input")

// Create validates name, price and a listed category, then appends with a new id.
func (s *ProductService) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	cp := p.Clone()
	cp.ID = ""
	if err := s.repo.Create(ctx, &cp); err != nil {
		return nil, err
	}
	s.log.Info("Product created", zap.String("product_id", cp.ID), zap.String("name", cp.Name))
	return &cp, nil
}

func validateProduct(p domain.Product) error {
	if err := validateStruct(p); err != nil {
		return err
	}
	if !catalog.CategoryExists(p.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, p.Category)
	}
	return nil
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// Update replaces the whole record; last writer wins.
func (s *ProductService) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if p.ID == "" {
		return nil, ErrInvalidInput
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	cp := p.Clone()
	if err := s.repo.Update(ctx, &cp); err != nil {
		return nil, err
	}
	s.log.Info("Product updated", zap.String("product_id", cp.ID))
	return &cp, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("Product deleted", zap.String("product_id", id))
	return nil
}

func (s *ProductService) List(ctx context.Context, f repository.ProductFilter) ([]domain.Product, error) {
	return s.repo.List(ctx, f)
}

func (s *ProductService) Categories() []domain.Category {
	return catalog.Categories()
}
