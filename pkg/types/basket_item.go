package types

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/medimarket/storefront-backend/pkg/enums"
)

// BasketItem is one line of the buyer's in-progress selection. Price is the
// catalog list price; InventoryPrice, when present, is the negotiated or
// clearance price for inventory/used listings.
type BasketItem struct {
	ProductID      uuid.UUID              `json:"product_id"`
	ProductName    string                 `json:"product_name"`
	Price          decimal.Decimal        `json:"price"`
	InventoryPrice *decimal.Decimal       `json:"inventory_price,omitempty"`
	Quantity       int                    `json:"quantity"`
	Condition      enums.ProductCondition `json:"type"`
}

// EffectivePrice resolves the unit price actually charged: the inventory
// price when present and positive, the list price otherwise. Resolution is
// deliberately independent of the discount indicator: an inventory price at
// or above list still wins here, it just isn't advertised as savings.
func EffectivePrice(item BasketItem) decimal.Decimal {
	if item.InventoryPrice != nil && item.InventoryPrice.IsPositive() {
		return *item.InventoryPrice
	}
	return item.Price
}

// IsSpecial reports whether the item qualifies for the discount badge:
// a valid inventory price strictly below list.
func IsSpecial(item BasketItem) bool {
	return item.InventoryPrice != nil &&
		item.InventoryPrice.IsPositive() &&
		item.InventoryPrice.LessThan(item.Price)
}

// LineTotal is the effective unit price times the quantity.
func (b BasketItem) LineTotal() decimal.Decimal {
	return EffectivePrice(b).Mul(decimal.NewFromInt(int64(b.Quantity)))
}
