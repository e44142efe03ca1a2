package orders

import (
	"strings"

	"github.com/google/uuid"

	"github.com/medimarket/storefront-backend/pkg/types"
)

// SellerResolver looks up seller directory entries for search over
// seller names and emails. Lookups are best effort: a miss just means
// the seller fields do not participate in the match.
type SellerResolver func(sellerID uuid.UUID) (types.Seller, bool)

const orderDateLayout = "Jan 2, 2006"

// searchHaystack flattens the searchable fields of an order into lowercase
// strings. Seller fields are resolved per distinct seller-of-record.
func searchHaystack(order types.Order, resolve SellerResolver) []string {
	fields := []string{
		order.ID.String(),
		order.Status,
		order.OrderDate.Format(orderDateLayout),
		order.BuyerName,
		order.BuyerEmail,
	}

	seen := map[uuid.UUID]bool{}
	for _, item := range order.Items {
		fields = append(fields, item.ProductName)
		if resolve == nil || seen[item.SellerID] {
			continue
		}
		seen[item.SellerID] = true
		if seller, ok := resolve(item.SellerID); ok {
			fields = append(fields, seller.Name, seller.Email)
		}
	}

	for i, field := range fields {
		fields[i] = strings.ToLower(field)
	}
	return fields
}

// MatchOrder reports whether the order matches the free-text query:
// case-insensitive substring over id, status, formatted order date, buyer
// name and email, resolved seller names and emails, and item product names.
// An empty query matches everything.
func MatchOrder(order types.Order, resolve SellerResolver, query string) bool {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return true
	}
	for _, field := range searchHaystack(order, resolve) {
		if strings.Contains(field, needle) {
			return true
		}
	}
	return false
}

// Filter returns the orders matching the query, preserving input order.
func Filter(orders []types.Order, resolve SellerResolver, query string) []types.Order {
	if strings.TrimSpace(query) == "" {
		return orders
	}
	matched := make([]types.Order, 0, len(orders))
	for _, order := range orders {
		if MatchOrder(order, resolve, query) {
			matched = append(matched, order)
		}
	}
	return matched
}
