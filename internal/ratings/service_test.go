package ratings

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.uber.org/multierr"

	"github.com/medimarket/storefront-backend/pkg/auth"
	"github.com/medimarket/storefront-backend/pkg/enums"
	pkgerrors "github.com/medimarket/storefront-backend/pkg/errors"
	"github.com/medimarket/storefront-backend/pkg/logger"
	"github.com/medimarket/storefront-backend/pkg/types"
)

type fakeSubmitter struct {
	mu      sync.Mutex
	records []types.RatingRecord
	failFor map[uuid.UUID]error
}

func (f *fakeSubmitter) SubmitRating(_ context.Context, _ auth.Session, record types.RatingRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, record)
	if err, ok := f.failFor[record.ProductID]; ok {
		return err
	}
	return nil
}

func newRatingFixture(t *testing.T, submitter *fakeSubmitter) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
	svc, err := NewService(submitter, logg)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func deliveredOrder(buyerID uuid.UUID, productIDs ...*uuid.UUID) types.Order {
	items := make([]types.OrderItem, 0, len(productIDs))
	for _, id := range productIDs {
		items = append(items, types.OrderItem{ProductID: id, SellerID: uuid.New(), Quantity: 1})
	}
	return types.Order{ID: uuid.New(), BuyerID: buyerID, Status: "Delivered", Items: items}
}

func TestRateSubmitsOneRecordPerProduct(t *testing.T) {
	buyerID := uuid.New()
	first := uuid.New()
	second := uuid.New()
	order := deliveredOrder(buyerID, &first, &second)

	submitter := &fakeSubmitter{}
	svc := newRatingFixture(t, submitter)
	session := auth.Session{UserID: buyerID, Role: enums.ActorRoleBuyer}

	if err := svc.Rate(context.Background(), session, order, Input{Score: 4, Review: "arrived intact"}); err != nil {
		t.Fatalf("Rate: %v", err)
	}
	if len(submitter.records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(submitter.records))
	}
	seen := map[uuid.UUID]bool{}
	for _, record := range submitter.records {
		seen[record.ProductID] = true
		if record.Rating != 4 || record.Review != "arrived intact" {
			t.Fatalf("record contents: %+v", record)
		}
	}
	if !seen[first] || !seen[second] {
		t.Fatalf("missing product records: %+v", submitter.records)
	}
}

func TestRateOmittedScoreDefaultsToMax(t *testing.T) {
	buyerID := uuid.New()
	productID := uuid.New()
	order := deliveredOrder(buyerID, &productID)

	submitter := &fakeSubmitter{}
	svc := newRatingFixture(t, submitter)
	session := auth.Session{UserID: buyerID, Role: enums.ActorRoleBuyer}

	if err := svc.Rate(context.Background(), session, order, Input{Review: "fine"}); err != nil {
		t.Fatalf("Rate: %v", err)
	}
	if len(submitter.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(submitter.records))
	}
	if submitter.records[0].Rating != types.RatingDefault || submitter.records[0].Review != "fine" {
		t.Fatalf("record contents: %+v", submitter.records[0])
	}
}

func TestRateSkipsItemsWithoutProduct(t *testing.T) {
	buyerID := uuid.New()
	productID := uuid.New()
	order := deliveredOrder(buyerID, nil, &productID)

	submitter := &fakeSubmitter{}
	svc := newRatingFixture(t, submitter)
	session := auth.Session{UserID: buyerID, Role: enums.ActorRoleBuyer}

	if err := svc.Rate(context.Background(), session, order, Input{Score: 5}); err != nil {
		t.Fatalf("Rate: %v", err)
	}
	if len(submitter.records) != 1 || submitter.records[0].ProductID != productID {
		t.Fatalf("expected only the identified product, got %+v", submitter.records)
	}
}

func TestRateNoRateableItemsIsNoop(t *testing.T) {
	buyerID := uuid.New()
	order := deliveredOrder(buyerID, nil, nil)

	submitter := &fakeSubmitter{}
	svc := newRatingFixture(t, submitter)
	session := auth.Session{UserID: buyerID, Role: enums.ActorRoleBuyer}

	if err := svc.Rate(context.Background(), session, order, Input{Score: 5}); err != nil {
		t.Fatalf("Rate: %v", err)
	}
	if len(submitter.records) != 0 {
		t.Fatalf("expected no submissions, got %d", len(submitter.records))
	}
}

func TestRateCombinesFailuresWithoutRollback(t *testing.T) {
	buyerID := uuid.New()
	good := uuid.New()
	bad := uuid.New()
	order := deliveredOrder(buyerID, &good, &bad)

	submitter := &fakeSubmitter{
		failFor: map[uuid.UUID]error{
			bad: pkgerrors.New(pkgerrors.CodeDependency, "ratings endpoint down"),
		},
	}
	svc := newRatingFixture(t, submitter)
	session := auth.Session{UserID: buyerID, Role: enums.ActorRoleBuyer}

	err := svc.Rate(context.Background(), session, order, Input{Score: 3})
	if err == nil {
		t.Fatal("expected combined failure")
	}
	if got := multierr.Errors(err); len(got) != 1 {
		t.Fatalf("expected 1 underlying failure, got %d: %v", len(got), err)
	}
	if len(submitter.records) != 2 {
		t.Fatalf("both submissions must be attempted, got %d", len(submitter.records))
	}
}

func TestRateGates(t *testing.T) {
	buyerID := uuid.New()
	productID := uuid.New()
	submitter := &fakeSubmitter{}
	svc := newRatingFixture(t, submitter)

	shipped := deliveredOrder(buyerID, &productID)
	shipped.Status = "shipped"
	session := auth.Session{UserID: buyerID, Role: enums.ActorRoleBuyer}
	if err := svc.Rate(context.Background(), session, shipped, Input{Score: 5}); !pkgerrors.HasCode(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("undelivered order: expected conflict, got %v", err)
	}

	delivered := deliveredOrder(buyerID, &productID)
	stranger := auth.Session{UserID: uuid.New(), Role: enums.ActorRoleBuyer}
	if err := svc.Rate(context.Background(), stranger, delivered, Input{Score: 5}); !pkgerrors.HasCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("foreign buyer: expected forbidden, got %v", err)
	}

	if err := svc.Rate(context.Background(), session, delivered, Input{Score: 9}); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("out-of-band score: expected validation, got %v", err)
	}
	if len(submitter.records) != 0 {
		t.Fatalf("gated calls must not submit, got %d", len(submitter.records))
	}
}
