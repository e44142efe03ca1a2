package backend

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/medimarket/storefront-backend/pkg/auth"
	"github.com/medimarket/storefront-backend/pkg/enums"
	"github.com/medimarket/storefront-backend/pkg/types"
)

// ListBuyerOrders returns the orders placed by the session user.
func (c *Client) ListBuyerOrders(ctx context.Context, session auth.Session) ([]types.Order, error) {
	var envelope struct {
		Data []types.Order `json:"data"`
	}
	if err := c.get(ctx, session, "/api/product-orders", &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// ListSellerOrders returns the orders containing lines sold by sellerID.
func (c *Client) ListSellerOrders(ctx context.Context, session auth.Session, sellerID uuid.UUID) ([]types.Order, error) {
	var envelope struct {
		Data []types.Order `json:"data"`
	}
	path := fmt.Sprintf("/api/product-orders/seller/%s", sellerID)
	if err := c.get(ctx, session, path, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// GetOrder fetches a single order with items and buyer eager-loaded.
func (c *Client) GetOrder(ctx context.Context, session auth.Session, orderID uuid.UUID) (*types.Order, error) {
	var envelope struct {
		Data types.Order `json:"data"`
	}
	path := fmt.Sprintf("/api/product-orders/%s", orderID)
	if err := c.get(ctx, session, path, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// CreateOrder submits the checkout payload; the backend creates the order in
// pending status.
func (c *Client) CreateOrder(ctx context.Context, session auth.Session, payload types.CheckoutPayload) (*types.Order, error) {
	var envelope struct {
		Data types.Order `json:"data"`
	}
	if err := c.post(ctx, session, "/api/product-orders", payload, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// TransitionOrder performs a single body-less PUT for the given action and
// returns the server-assigned status string with its casing intact. The call
// is never retried: the backend does not guarantee idempotency for it.
func (c *Client) TransitionOrder(ctx context.Context, session auth.Session, orderID uuid.UUID, action enums.TransitionAction) (string, error) {
	var envelope struct {
		Data struct {
			OrderStatus string `json:"order_status"`
		} `json:"data"`
	}
	path := fmt.Sprintf("/api/product-orders/%s/%s", orderID, action)
	if err := c.put(ctx, session, path, &envelope); err != nil {
		return "", err
	}
	return envelope.Data.OrderStatus, nil
}

// DeleteOrder removes the record outright. Destructive and never retried.
func (c *Client) DeleteOrder(ctx context.Context, session auth.Session, orderID uuid.UUID) error {
	return c.delete(ctx, session, fmt.Sprintf("/api/product-orders/%s", orderID))
}
