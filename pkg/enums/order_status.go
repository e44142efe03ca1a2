package enums

import (
	"fmt"
	"strings"
)

// OrderStatus tracks the lifecycle of a product order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCanceled   OrderStatus = "canceled"
	OrderStatusCompleted  OrderStatus = "completed"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCanceled,
	OrderStatusCompleted,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition leaves this status.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusCanceled, OrderStatusDelivered, OrderStatusCompleted:
		return true
	default:
		return false
	}
}

// NormalizeStatus is the single place status strings are case-folded.
// The backend stores statuses with inconsistent casing, so every
// comparison in the codebase must go through here.
func NormalizeStatus(value string) OrderStatus {
	return OrderStatus(strings.ToLower(strings.TrimSpace(value)))
}

// ParseOrderStatus converts raw input into an OrderStatus, case-insensitively.
func ParseOrderStatus(value string) (OrderStatus, error) {
	normalized := NormalizeStatus(value)
	for _, candidate := range validOrderStatuses {
		if candidate == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
