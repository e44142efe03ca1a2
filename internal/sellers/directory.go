package sellers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medimarket/storefront-backend/pkg/auth"
	"github.com/medimarket/storefront-backend/pkg/cache"
	"github.com/medimarket/storefront-backend/pkg/logger"
	"github.com/medimarket/storefront-backend/pkg/types"
)

const entryTTL = 15 * time.Minute

type sellerFetcher interface {
	GetSeller(ctx context.Context, session auth.Session, sellerID string) (types.Seller, error)
}

// Directory resolves seller names and emails with a read-through cache, so
// order search does not refetch the same seller per order.
type Directory struct {
	cache *cache.ReadThrough[types.Seller]
	logg  *logger.Logger
}

// NewDirectory builds the seller directory. keyFn namespaces the cache keys,
// typically redis.Client.SellerKey.
func NewDirectory(fetcher sellerFetcher, store cache.Store, keyFn func(string) string, logg *logger.Logger) (*Directory, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("seller fetcher required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}

	fetch := func(ctx context.Context, id string) (types.Seller, error) {
		session, ok := sessionFromContext(ctx)
		if !ok {
			return types.Seller{}, fmt.Errorf("no session for seller lookup")
		}
		return fetcher.GetSeller(ctx, session, id)
	}
	readThrough, err := cache.NewReadThrough[types.Seller](store, keyFn, entryTTL, fetch)
	if err != nil {
		return nil, err
	}
	return &Directory{cache: readThrough, logg: logg}, nil
}

type sessionCtxKey struct{}

func sessionFromContext(ctx context.Context) (auth.Session, bool) {
	session, ok := ctx.Value(sessionCtxKey{}).(auth.Session)
	return session, ok
}

// Lookup resolves one seller, hitting the backend only on a cache miss.
func (d *Directory) Lookup(ctx context.Context, session auth.Session, sellerID uuid.UUID) (types.Seller, error) {
	ctx = context.WithValue(ctx, sessionCtxKey{}, session)
	return d.cache.Get(ctx, sellerID.String())
}

// Resolver adapts the directory into the best-effort form order search
// expects: lookup failures just withhold the seller fields from matching.
func (d *Directory) Resolver(ctx context.Context, session auth.Session) func(uuid.UUID) (types.Seller, bool) {
	return func(sellerID uuid.UUID) (types.Seller, bool) {
		seller, err := d.Lookup(ctx, session, sellerID)
		if err != nil {
			d.logg.Warn(d.logg.WithField(ctx, "seller_id", sellerID.String()), "sellers.lookup.failed")
			return types.Seller{}, false
		}
		return seller, true
	}
}
