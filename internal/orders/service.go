package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medimarket/storefront-backend/pkg/auth"
	"github.com/medimarket/storefront-backend/pkg/enums"
	pkgerrors "github.com/medimarket/storefront-backend/pkg/errors"
	"github.com/medimarket/storefront-backend/pkg/logger"
	"github.com/medimarket/storefront-backend/pkg/metrics"
	"github.com/medimarket/storefront-backend/pkg/types"
)

// backendClient is the slice of the marketplace backend the authority needs.
type backendClient interface {
	ListBuyerOrders(ctx context.Context, session auth.Session) ([]types.Order, error)
	ListSellerOrders(ctx context.Context, session auth.Session, sellerID uuid.UUID) ([]types.Order, error)
	GetOrder(ctx context.Context, session auth.Session, orderID uuid.UUID) (*types.Order, error)
	TransitionOrder(ctx context.Context, session auth.Session, orderID uuid.UUID, action enums.TransitionAction) (string, error)
	DeleteOrder(ctx context.Context, session auth.Session, orderID uuid.UUID) error
}

// Service is the order lifecycle authority: it decides which transitions are
// legal for an actor and performs each one as a single backend call with an
// optimistic local patch on success.
type Service interface {
	List(ctx context.Context, session auth.Session) ([]types.Order, error)
	Get(ctx context.Context, session auth.Session, orderID uuid.UUID) (*types.Order, error)
	Transition(ctx context.Context, session auth.Session, order *types.Order, action enums.TransitionAction) error
	Delete(ctx context.Context, session auth.Session, order types.Order) error
}

type service struct {
	client  backendClient
	logg    *logger.Logger
	metrics *metrics.TransitionMetrics
}

// NewService builds the lifecycle authority.
func NewService(client backendClient, logg *logger.Logger, m *metrics.TransitionMetrics) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("backend client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{client: client, logg: logg, metrics: m}, nil
}

// List fetches the actor's order view: placed orders for buyers, received
// orders for sellers and admins.
func (s *service) List(ctx context.Context, session auth.Session) ([]types.Order, error) {
	switch session.Role {
	case enums.ActorRoleBuyer:
		return s.client.ListBuyerOrders(ctx, session)
	case enums.ActorRoleSeller, enums.ActorRoleAdmin:
		return s.client.ListSellerOrders(ctx, session, session.UserID)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "unsupported actor role")
	}
}

func (s *service) Get(ctx context.Context, session auth.Session, orderID uuid.UUID) (*types.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	return s.client.GetOrder(ctx, session, orderID)
}

// transitionCommand bundles the three phases of one lifecycle change so each
// can be exercised independently: the pure gate, the single network call,
// and the apply-on-success local patch.
type transitionCommand struct {
	gate  func() (*transitionRule, error)
	call  func(ctx context.Context) (string, error)
	patch func(serverStatus string)
}

func (s *service) newTransitionCommand(session auth.Session, order *types.Order, action enums.TransitionAction) transitionCommand {
	return transitionCommand{
		gate: func() (*transitionRule, error) {
			return gateTransition(session, *order, action)
		},
		call: func(ctx context.Context) (string, error) {
			return s.client.TransitionOrder(ctx, session, order.ID, action)
		},
		patch: func(serverStatus string) {
			// Keep the server's casing; fall back to the table's target when
			// the backend answers with an empty body.
			if serverStatus == "" {
				rule := ruleFor(session.Role, action)
				serverStatus = string(rule.to)
			}
			order.Status = serverStatus
		},
	}
}

// Transition performs one role-gated status change. A gate rejection never
// reaches the network; a backend rejection leaves the local order untouched
// and is surfaced without retry, since the PUT is not idempotent.
func (s *service) Transition(ctx context.Context, session auth.Session, order *types.Order, action enums.TransitionAction) error {
	if order == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order required")
	}

	cmd := s.newTransitionCommand(session, order, action)

	rule, err := cmd.gate()
	if err != nil {
		s.metrics.IncRejected(string(action))
		return err
	}

	ctx = s.logg.WithFields(ctx, map[string]any{
		"order_id":   order.ID.String(),
		"action":     string(action),
		"actor_role": string(session.Role),
	})

	start := time.Now()
	serverStatus, err := cmd.call(ctx)
	s.metrics.ObserveDuration(string(action), time.Since(start))
	if err != nil {
		s.metrics.IncFailed(string(action))
		s.logg.Error(ctx, "order.transition.failed", err)
		return err
	}

	cmd.patch(serverStatus)
	s.metrics.IncApplied(string(action))
	s.logg.Info(s.logg.WithField(ctx, "new_status", string(rule.to)), "order.transition.applied")
	return nil
}

// Delete removes the record outright. Destructive, role-gated, never retried.
func (s *service) Delete(ctx context.Context, session auth.Session, order types.Order) error {
	if err := gateDelete(session, order); err != nil {
		s.metrics.IncRejected("delete")
		return err
	}

	ctx = s.logg.WithFields(ctx, map[string]any{
		"order_id":   order.ID.String(),
		"actor_role": string(session.Role),
	})

	if err := s.client.DeleteOrder(ctx, session, order.ID); err != nil {
		s.metrics.IncFailed("delete")
		s.logg.Error(ctx, "order.delete.failed", err)
		return err
	}
	s.metrics.IncApplied("delete")
	s.logg.Info(ctx, "order.deleted")
	return nil
}
