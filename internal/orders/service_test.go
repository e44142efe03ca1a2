package orders

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medimarket/storefront-backend/pkg/auth"
	"github.com/medimarket/storefront-backend/pkg/enums"
	pkgerrors "github.com/medimarket/storefront-backend/pkg/errors"
	"github.com/medimarket/storefront-backend/pkg/logger"
	"github.com/medimarket/storefront-backend/pkg/types"
)

type fakeBackend struct {
	transitionCalls int
	deleteCalls     int

	transitionStatus string
	transitionErr    error
	deleteErr        error

	buyerOrders  []types.Order
	sellerOrders []types.Order
	getOrder     *types.Order
}

func (f *fakeBackend) ListBuyerOrders(_ context.Context, _ auth.Session) ([]types.Order, error) {
	return f.buyerOrders, nil
}

func (f *fakeBackend) ListSellerOrders(_ context.Context, _ auth.Session, _ uuid.UUID) ([]types.Order, error) {
	return f.sellerOrders, nil
}

func (f *fakeBackend) GetOrder(_ context.Context, _ auth.Session, _ uuid.UUID) (*types.Order, error) {
	return f.getOrder, nil
}

func (f *fakeBackend) TransitionOrder(_ context.Context, _ auth.Session, _ uuid.UUID, _ enums.TransitionAction) (string, error) {
	f.transitionCalls++
	return f.transitionStatus, f.transitionErr
}

func (f *fakeBackend) DeleteOrder(_ context.Context, _ auth.Session, _ uuid.UUID) error {
	f.deleteCalls++
	return f.deleteErr
}

func newTestService(t *testing.T, backend *fakeBackend) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
	svc, err := NewService(backend, logg, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestTransitionGateRejectionSkipsNetwork(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(t, backend)

	sellerID := uuid.New()
	order := orderFor(uuid.New(), sellerID, "shipped")
	session := auth.Session{UserID: sellerID, Role: enums.ActorRoleSeller}

	err := svc.Transition(context.Background(), session, &order, enums.TransitionActionApprove)
	if !pkgerrors.HasCode(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if backend.transitionCalls != 0 {
		t.Fatalf("gate rejection must not reach the backend, got %d calls", backend.transitionCalls)
	}
	if enums.NormalizeStatus(order.Status) != enums.OrderStatusShipped {
		t.Fatalf("local status changed on rejection: %s", order.Status)
	}
}

func TestTransitionAppliesServerStatus(t *testing.T) {
	backend := &fakeBackend{transitionStatus: "Processing"}
	svc := newTestService(t, backend)

	sellerID := uuid.New()
	order := orderFor(uuid.New(), sellerID, "pending")
	session := auth.Session{UserID: sellerID, Role: enums.ActorRoleSeller}

	if err := svc.Transition(context.Background(), session, &order, enums.TransitionActionApprove); err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if backend.transitionCalls != 1 {
		t.Fatalf("expected exactly one backend call, got %d", backend.transitionCalls)
	}
	if order.Status != "Processing" {
		t.Fatalf("expected server casing preserved, got %q", order.Status)
	}
}

func TestTransitionFallsBackToTableTarget(t *testing.T) {
	backend := &fakeBackend{transitionStatus: ""}
	svc := newTestService(t, backend)

	buyerID := uuid.New()
	order := orderFor(buyerID, uuid.New(), "shipped")
	session := auth.Session{UserID: buyerID, Role: enums.ActorRoleBuyer}

	if err := svc.Transition(context.Background(), session, &order, enums.TransitionActionDeliver); err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if order.Status != string(enums.OrderStatusDelivered) {
		t.Fatalf("expected table target on empty server status, got %q", order.Status)
	}
}

func TestTransitionBackendFailureLeavesStatusAndNeverRetries(t *testing.T) {
	backend := &fakeBackend{
		transitionErr: pkgerrors.New(pkgerrors.CodeConflict, "stale order"),
	}
	svc := newTestService(t, backend)

	sellerID := uuid.New()
	order := orderFor(uuid.New(), sellerID, "pending")
	session := auth.Session{UserID: sellerID, Role: enums.ActorRoleSeller}

	err := svc.Transition(context.Background(), session, &order, enums.TransitionActionApprove)
	if !pkgerrors.HasCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict surfaced, got %v", err)
	}
	if backend.transitionCalls != 1 {
		t.Fatalf("mutating call must run exactly once, got %d", backend.transitionCalls)
	}
	if enums.NormalizeStatus(order.Status) != enums.OrderStatusPending {
		t.Fatalf("local status must survive backend failure, got %q", order.Status)
	}
}

func TestTransitionNilOrder(t *testing.T) {
	svc := newTestService(t, &fakeBackend{})
	session := auth.Session{UserID: uuid.New(), Role: enums.ActorRoleSeller}
	err := svc.Transition(context.Background(), session, nil, enums.TransitionActionApprove)
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteGateRejectionSkipsNetwork(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(t, backend)

	sellerID := uuid.New()
	order := orderFor(uuid.New(), sellerID, "processing")
	session := auth.Session{UserID: sellerID, Role: enums.ActorRoleSeller}

	err := svc.Delete(context.Background(), session, order)
	if !pkgerrors.HasCode(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if backend.deleteCalls != 0 {
		t.Fatalf("gate rejection must not reach the backend, got %d calls", backend.deleteCalls)
	}
}

func TestDeleteRunsOnce(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(t, backend)

	sellerID := uuid.New()
	order := orderFor(uuid.New(), sellerID, "canceled")
	session := auth.Session{UserID: sellerID, Role: enums.ActorRoleSeller}

	if err := svc.Delete(context.Background(), session, order); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if backend.deleteCalls != 1 {
		t.Fatalf("expected one delete call, got %d", backend.deleteCalls)
	}
}

func TestListSelectsViewByRole(t *testing.T) {
	buyerOrder := orderFor(uuid.New(), uuid.New(), "pending")
	sellerOrder := orderFor(uuid.New(), uuid.New(), "shipped")
	backend := &fakeBackend{
		buyerOrders:  []types.Order{buyerOrder},
		sellerOrders: []types.Order{sellerOrder},
	}
	svc := newTestService(t, backend)

	got, err := svc.List(context.Background(), auth.Session{UserID: uuid.New(), Role: enums.ActorRoleBuyer})
	if err != nil {
		t.Fatalf("List buyer: %v", err)
	}
	if len(got) != 1 || got[0].ID != buyerOrder.ID {
		t.Fatalf("buyer list mismatch: %+v", got)
	}

	got, err = svc.List(context.Background(), auth.Session{UserID: uuid.New(), Role: enums.ActorRoleSeller})
	if err != nil {
		t.Fatalf("List seller: %v", err)
	}
	if len(got) != 1 || got[0].ID != sellerOrder.ID {
		t.Fatalf("seller list mismatch: %+v", got)
	}
}
