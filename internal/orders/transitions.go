package orders

import (
	"github.com/medimarket/storefront-backend/pkg/auth"
	"github.com/medimarket/storefront-backend/pkg/enums"
	pkgerrors "github.com/medimarket/storefront-backend/pkg/errors"
	"github.com/medimarket/storefront-backend/pkg/types"
)

// transitionRule is one row of the role × status authorization table. Every
// status-changing operation is gated here before any network call; the
// backend enforces the same table independently, so a stale client can never
// push an order somewhere illegal.
type transitionRule struct {
	action enums.TransitionAction
	role   enums.ActorRole
	from   []enums.OrderStatus
	to     enums.OrderStatus
}

var transitionTable = []transitionRule{
	{enums.TransitionActionApprove, enums.ActorRoleSeller, []enums.OrderStatus{enums.OrderStatusPending}, enums.OrderStatusProcessing},
	{enums.TransitionActionShip, enums.ActorRoleSeller, []enums.OrderStatus{enums.OrderStatusProcessing}, enums.OrderStatusShipped},
	{enums.TransitionActionDeliver, enums.ActorRoleBuyer, []enums.OrderStatus{enums.OrderStatusShipped}, enums.OrderStatusDelivered},
	{enums.TransitionActionCancel, enums.ActorRoleSeller, []enums.OrderStatus{enums.OrderStatusPending, enums.OrderStatusProcessing, enums.OrderStatusShipped}, enums.OrderStatusCanceled},
	{enums.TransitionActionCancel, enums.ActorRoleBuyer, []enums.OrderStatus{enums.OrderStatusPending}, enums.OrderStatusCanceled},
	{enums.TransitionActionCancel, enums.ActorRoleAdmin, []enums.OrderStatus{enums.OrderStatusPending, enums.OrderStatusProcessing, enums.OrderStatusShipped}, enums.OrderStatusCanceled},
}

// deletableStatuses gate the destructive record removal, which lives outside
// the status graph.
var deletableStatuses = []enums.OrderStatus{
	enums.OrderStatusPending,
	enums.OrderStatusDelivered,
	enums.OrderStatusCanceled,
}

func statusAllowed(status enums.OrderStatus, allowed []enums.OrderStatus) bool {
	for _, candidate := range allowed {
		if candidate == status {
			return true
		}
	}
	return false
}

// ownsOrder checks the actor's relationship to the order: buyers must have
// placed it, sellers must be seller-of-record on at least one line, admins
// act on any order.
func ownsOrder(session auth.Session, order types.Order) bool {
	switch session.Role {
	case enums.ActorRoleBuyer:
		return order.BuyerID == session.UserID
	case enums.ActorRoleSeller:
		return order.SoldBy(session.UserID)
	case enums.ActorRoleAdmin:
		return true
	default:
		return false
	}
}

func ruleFor(role enums.ActorRole, action enums.TransitionAction) *transitionRule {
	for i := range transitionTable {
		if transitionTable[i].role == role && transitionTable[i].action == action {
			return &transitionTable[i]
		}
	}
	return nil
}

// gateTransition verifies role, ownership, and current status for the
// requested action. It is pure: a rejection here means no request was made.
func gateTransition(session auth.Session, order types.Order, action enums.TransitionAction) (*transitionRule, error) {
	if !action.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown transition action")
	}

	rule := ruleFor(session.Role, action)
	if rule == nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, string(session.Role)+" cannot "+string(action)+" orders")
	}
	if !ownsOrder(session, order) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to actor")
	}

	current := enums.NormalizeStatus(order.Status)
	if !statusAllowed(current, rule.from) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, string(action)+" is not allowed from status "+string(current))
	}
	return rule, nil
}

// gateDelete verifies the destructive removal: sellers of record and admins,
// from pending, delivered, or canceled only.
func gateDelete(session auth.Session, order types.Order) error {
	if session.Role != enums.ActorRoleSeller && session.Role != enums.ActorRoleAdmin {
		return pkgerrors.New(pkgerrors.CodeForbidden, string(session.Role)+" cannot delete orders")
	}
	if !ownsOrder(session, order) {
		return pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to actor")
	}
	if current := enums.NormalizeStatus(order.Status); !statusAllowed(current, deletableStatuses) {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "delete is not allowed from status "+string(current))
	}
	return nil
}

// GateRate verifies the rating side-effect: the buyer of a delivered order.
// Rating never changes the order status.
func GateRate(session auth.Session, order types.Order) error {
	if session.Role != enums.ActorRoleBuyer || order.BuyerID != session.UserID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only the buyer can rate this order")
	}
	if enums.NormalizeStatus(order.Status) != enums.OrderStatusDelivered {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "rating requires a delivered order")
	}
	return nil
}

// Actions enumerates what the actor may do right now; the UI renders only
// these, the gates above re-check on invocation.
type Actions struct {
	Transitions []enums.TransitionAction `json:"transitions"`
	CanDelete   bool                     `json:"can_delete"`
	CanRate     bool                     `json:"can_rate"`
}

// AllowedActions derives the action set from the same gates that guard the
// operations, so the two can never disagree.
func AllowedActions(session auth.Session, order types.Order) Actions {
	actions := Actions{Transitions: []enums.TransitionAction{}}
	for _, action := range []enums.TransitionAction{
		enums.TransitionActionApprove,
		enums.TransitionActionShip,
		enums.TransitionActionDeliver,
		enums.TransitionActionCancel,
	} {
		if _, err := gateTransition(session, order, action); err == nil {
			actions.Transitions = append(actions.Transitions, action)
		}
	}
	actions.CanDelete = gateDelete(session, order) == nil
	actions.CanRate = GateRate(session, order) == nil
	return actions
}
