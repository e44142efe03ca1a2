package backend

import (
	"context"

	"github.com/medimarket/storefront-backend/pkg/auth"
	"github.com/medimarket/storefront-backend/pkg/types"
)

// SubmitRating posts one per-product rating record.
func (c *Client) SubmitRating(ctx context.Context, session auth.Session, record types.RatingRecord) error {
	return c.post(ctx, session, "/api/ratings", record, nil)
}
