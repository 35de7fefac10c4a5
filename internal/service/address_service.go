package service

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// AddressService is the saved-address book shown at checkout
type AddressService struct {
	repo repository.AddressRepository
}

func NewAddressService(repo repository.AddressRepository) *AddressService {
	return &AddressService{repo: repo}
}

type addressOwner struct {
	Email string `json:"email" validate:"required,email"`
}

// Save stores a for email; false means the address was already saved.
func (s *AddressService) Save(ctx context.Context, email string, a domain.Address) (bool, error) {
	if err := validateStruct(addressOwner{Email: email}); err != nil {
		return false, err
	}
	if err := validateStruct(a); err != nil {
		return false, err
	}
	return s.repo.Add(ctx, email, a)
}

func (s *AddressService) List(ctx context.Context, email string) ([]domain.Address, error) {
	if err := validateStruct(addressOwner{Email: email}); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, email)
}
