package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/domain"
	httpapi "storefront/internal/http"
	"storefront/internal/repository"
	"storefront/internal/service"
	"storefront/internal/storage"
)

type app struct {
	products *repository.Products
	services httpapi.Services
}

// buildApp wires repositories and services over one storage backend.
func buildApp(ctx context.Context, cfg *config.Config, kv storage.Storage, log *zap.Logger) (*app, error) {
	ttl, err := cfg.SessionTTL()
	if err != nil {
		return nil, err
	}
	delay, err := cfg.PaymentDelay()
	if err != nil {
		return nil, err
	}

	store, err := repository.OpenStore(ctx, kv)
	if err != nil {
		return nil, err
	}
	products := repository.NewProducts(store)
	carts := repository.NewCarts(store)
	addresses := repository.NewAddresses(store)
	tx := repository.NewTx(store)

	accounts := make([]service.Account, 0, len(cfg.Auth.Accounts))
	for _, a := range cfg.Auth.Accounts {
		accounts = append(accounts, service.Account{
			Email:        a.Email,
			PasswordHash: a.PasswordHash,
			Role:         domain.Role(a.Role),
		})
	}
	if len(accounts) == 0 {
		log.Warn("No accounts configured; admin routes are unreachable")
	}

	customers := service.NewCustomerService(repository.NewCustomers(store), log)
	return &app{
		products: products,
		services: httpapi.Services{
			Products:  service.NewProductService(products, log),
			Carts:     service.NewCartService(carts, products, tx, log),
			Customers: customers,
			Addresses: service.NewAddressService(addresses),
			Auth:      service.NewAuthService(accounts, repository.NewSessions(store), ttl, log),
			Orders: service.NewOrderService(service.OrderDeps{
				Products:  products,
				Orders:    repository.NewOrders(store),
				Carts:     carts,
				Addresses: addresses,
				Customers: customers,
				Tx:        tx,
				Payments:  service.NewStubGateway(log, delay),
				Pricing: service.Pricing{
					FreeShippingThreshold: domain.Money(cfg.Shop.FreeShippingThreshold),
					FlatShippingFee:       domain.Money(cfg.Shop.FlatShippingFee),
				},
				Log: log,
			}),
		},
	}, nil
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo catalog into an empty store",
	RunE: func(cmd *cobra.Command, args []string) error {
		kv, err := storage.Open(cfg.Storage.Driver, cfg.Storage.Path)
		if err != nil {
			return err
		}
		defer kv.Close()

		n, err := catalog.Seed(cmd.Context(), repository.NewProducts(repository.NewStore(kv)), logger)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d products\n", n)
		return nil
	},
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Print a bcrypt hash for an auth.accounts entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := service.HashPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), h)
		return nil
	},
}
