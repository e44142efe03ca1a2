package checkout

import (
	"context"
	"fmt"

	"github.com/medimarket/storefront-backend/internal/basket"
	"github.com/medimarket/storefront-backend/pkg/auth"
	"github.com/medimarket/storefront-backend/pkg/logger"
	"github.com/medimarket/storefront-backend/pkg/types"
)

type basketSource interface {
	BuildCheckoutPayload(ctx context.Context, session auth.Session, deliveryAddress, estimatedDelivery string) (types.CheckoutPayload, error)
	Clear(ctx context.Context, session auth.Session) error
}

type orderPlacer interface {
	CreateOrder(ctx context.Context, session auth.Session, payload types.CheckoutPayload) (*types.Order, error)
}

// Input captures the buyer-provided checkout fields.
type Input struct {
	DeliveryAddress   string `json:"delivery_address" validate:"required"`
	EstimatedDelivery string `json:"estimated_delivery,omitempty"`
}

// Service turns the current basket into a placed order.
type Service interface {
	Execute(ctx context.Context, session auth.Session, input Input) (*types.Order, error)
}

type service struct {
	basket basketSource
	placer orderPlacer
	logg   *logger.Logger
}

// NewService builds the checkout orchestrator.
func NewService(basketSvc basketSource, placer orderPlacer, logg *logger.Logger) (Service, error) {
	if basketSvc == nil {
		return nil, fmt.Errorf("basket service required")
	}
	if placer == nil {
		return nil, fmt.Errorf("order placer required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{basket: basketSvc, placer: placer, logg: logg}, nil
}

// Execute builds the payload from the live basket, places the order, and
// clears the basket only after the backend accepts. A placement failure
// leaves the basket intact so the buyer can retry deliberately.
func (s *service) Execute(ctx context.Context, session auth.Session, input Input) (*types.Order, error) {
	payload, err := s.basket.BuildCheckoutPayload(ctx, session, input.DeliveryAddress, input.EstimatedDelivery)
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithFields(ctx, map[string]any{
		"buyer_id":   session.UserID.String(),
		"item_count": len(payload.Items),
	})

	order, err := s.placer.CreateOrder(ctx, session, payload)
	if err != nil {
		s.logg.Error(ctx, "checkout.place.failed", err)
		return nil, err
	}

	if err := s.basket.Clear(ctx, session); err != nil {
		// The order exists either way; a stale basket is recoverable, a
		// failed checkout response is not.
		s.logg.Warn(s.logg.WithField(ctx, "order_id", order.ID.String()), "checkout.basket_clear.failed")
	}

	s.logg.Info(s.logg.WithField(ctx, "order_id", order.ID.String()), "checkout.placed")
	return order, nil
}

var _ basketSource = (basket.Service)(nil)
