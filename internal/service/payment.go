package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"storefront/internal/domain"
)

// PaymentGateway charges a customer for a checkout.
type PaymentGateway interface {
	Charge(ctx context.Context, reference string, amount domain.Money, method domain.PaymentMethod) error
}

// StubGateway accepts every charge after an optional cosmetic delay.
type StubGateway struct {
	log   *zap.Logger
	delay time.Duration
}

func NewStubGateway(log *zap.Logger, delay time.Duration) *StubGateway {
	return &StubGateway{log: log, delay: delay}
}

func (g *StubGateway) Charge(ctx context.Context, reference string, amount domain.Money, method domain.PaymentMethod) error {
	if g.delay > 0 {
		timer := time.NewTimer(g.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	g.log.Info("Payment accepted",
		zap.String("reference", reference),
		zap.String("amount", amount.String()),
		zap.String("method", string(method)))
	return nil
}
