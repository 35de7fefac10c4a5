package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// CustomerService maintains the per-email order count and lifetime spend
type CustomerService struct {
	repo repository.CustomerRepository
	log  *zap.Logger
}

func NewCustomerService(repo repository.CustomerRepository, log *zap.Logger) *CustomerService {
	return &CustomerService{repo: repo, log: log}
}

// RecordPurchase upserts the ledger row for info.Email: an existing row gets
// one more order and amount added to its spend, a new row starts at one.
// Contact details are refreshed from the latest order.
func (s *CustomerService) RecordPurchase(ctx context.Context, info domain.CustomerInfo, amount domain.Money) (*domain.Customer, error) {
	c, err := s.repo.GetByEmail(ctx, info.Email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c = &domain.Customer{
			Name:       info.Name,
			Email:      info.Email,
			Phone:      info.Phone,
			OrderCount: 1,
			TotalSpent: amount,
		}
		if err := s.repo.Create(ctx, c); err != nil {
			return nil, err
		}
		s.log.Info("Customer added to ledger", zap.String("customer_id", c.ID))
		return c, nil
	case err != nil:
		return nil, err
	}

	c.OrderCount++
	c.TotalSpent += amount
	c.Name = info.Name
	c.Phone = info.Phone
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CustomerService) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	if email == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByEmail(ctx, email)
}

func (s *CustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.List(ctx)
}
