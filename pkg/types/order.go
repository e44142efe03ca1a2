package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order mirrors the backend's product-order resource. Status keeps the
// server-assigned casing verbatim; comparisons go through
// enums.NormalizeStatus.
type Order struct {
	ID                uuid.UUID       `json:"product_order_id"`
	BuyerID           uuid.UUID       `json:"buyer_id"`
	BuyerName         string          `json:"buyer_name,omitempty"`
	BuyerEmail        string          `json:"buyer_email,omitempty"`
	Items             []OrderItem     `json:"items"`
	Status            string          `json:"order_status"`
	DeliveryAddress   string          `json:"delivery_address"`
	EstimatedDelivery string          `json:"estimated_delivery,omitempty"`
	OrderDate         time.Time       `json:"order_date"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
}

// OrderItem carries its own seller-of-record; orders can span sellers.
// UnitPrice is the snapshot captured at placement and is never re-derived
// from the catalog.
type OrderItem struct {
	ProductID   *uuid.UUID      `json:"product_id,omitempty"`
	ProductName string          `json:"product_name,omitempty"`
	SellerID    uuid.UUID       `json:"seller_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"price"`
}

// SoldBy reports whether any line of the order belongs to the given seller.
func (o Order) SoldBy(sellerID uuid.UUID) bool {
	for _, item := range o.Items {
		if item.SellerID == sellerID {
			return true
		}
	}
	return false
}

// CheckoutPayload is the body of POST /api/product-orders.
type CheckoutPayload struct {
	BuyerID           uuid.UUID      `json:"buyer_id"`
	DeliveryAddress   string         `json:"delivery_address"`
	EstimatedDelivery string         `json:"estimated_delivery,omitempty"`
	Items             []CheckoutItem `json:"items"`
}

// CheckoutItem prices each line at the resolved effective price.
type CheckoutItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Seller is the directory entry resolved for seller-of-record lookups.
type Seller struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}
