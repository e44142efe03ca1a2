package sellers

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medimarket/storefront-backend/pkg/auth"
	"github.com/medimarket/storefront-backend/pkg/cache"
	"github.com/medimarket/storefront-backend/pkg/enums"
	pkgerrors "github.com/medimarket/storefront-backend/pkg/errors"
	"github.com/medimarket/storefront-backend/pkg/logger"
	"github.com/medimarket/storefront-backend/pkg/types"
)

type fakeFetcher struct {
	calls   int
	sellers map[string]types.Seller
	err     error
}

func (f *fakeFetcher) GetSeller(_ context.Context, _ auth.Session, sellerID string) (types.Seller, error) {
	f.calls++
	if f.err != nil {
		return types.Seller{}, f.err
	}
	seller, ok := f.sellers[sellerID]
	if !ok {
		return types.Seller{}, pkgerrors.New(pkgerrors.CodeNotFound, "unknown seller")
	}
	return seller, nil
}

func newDirectoryFixture(t *testing.T, fetcher *fakeFetcher) *Directory {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
	dir, err := NewDirectory(fetcher, cache.NewMemoryStore(), func(id string) string { return "test:seller:" + id }, logg)
	if err != nil {
		t.Fatalf("NewDirectory: %v", err)
	}
	return dir
}

func TestLookupFetchesOnce(t *testing.T) {
	sellerID := uuid.New()
	fetcher := &fakeFetcher{sellers: map[string]types.Seller{
		sellerID.String(): {ID: sellerID, Name: "MedSource Ltd", Email: "sales@medsource.example"},
	}}
	dir := newDirectoryFixture(t, fetcher)
	session := auth.Session{UserID: uuid.New(), Role: enums.ActorRoleBuyer}

	for i := 0; i < 3; i++ {
		seller, err := dir.Lookup(context.Background(), session, sellerID)
		if err != nil {
			t.Fatalf("Lookup %d: %v", i, err)
		}
		if seller.Name != "MedSource Ltd" {
			t.Fatalf("unexpected seller: %+v", seller)
		}
	}
	if fetcher.calls != 1 {
		t.Fatalf("expected one backend fetch, got %d", fetcher.calls)
	}
}

func TestResolverSwallowsLookupFailures(t *testing.T) {
	fetcher := &fakeFetcher{err: pkgerrors.New(pkgerrors.CodeDependency, "backend down")}
	dir := newDirectoryFixture(t, fetcher)
	session := auth.Session{UserID: uuid.New(), Role: enums.ActorRoleBuyer}

	resolve := dir.Resolver(context.Background(), session)
	if _, ok := resolve(uuid.New()); ok {
		t.Fatal("failed lookup must report a miss, not an entry")
	}
}

func TestResolverResolves(t *testing.T) {
	sellerID := uuid.New()
	fetcher := &fakeFetcher{sellers: map[string]types.Seller{
		sellerID.String(): {ID: sellerID, Name: "MedSource Ltd"},
	}}
	dir := newDirectoryFixture(t, fetcher)
	session := auth.Session{UserID: uuid.New(), Role: enums.ActorRoleBuyer}

	resolve := dir.Resolver(context.Background(), session)
	seller, ok := resolve(sellerID)
	if !ok || seller.Name != "MedSource Ltd" {
		t.Fatalf("resolver miss: ok=%v seller=%+v", ok, seller)
	}
}
