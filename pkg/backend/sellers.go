package backend

import (
	"context"
	"fmt"

	"github.com/medimarket/storefront-backend/pkg/auth"
	"github.com/medimarket/storefront-backend/pkg/types"
)

// GetSeller resolves a seller directory entry (name/email) by id.
func (c *Client) GetSeller(ctx context.Context, session auth.Session, sellerID string) (types.Seller, error) {
	var envelope struct {
		Data types.Seller `json:"data"`
	}
	path := fmt.Sprintf("/api/sellers/%s", sellerID)
	if err := c.get(ctx, session, path, &envelope); err != nil {
		return types.Seller{}, err
	}
	return envelope.Data, nil
}
