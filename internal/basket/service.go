package basket

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/medimarket/storefront-backend/pkg/auth"
	pkgerrors "github.com/medimarket/storefront-backend/pkg/errors"
	"github.com/medimarket/storefront-backend/pkg/types"
)

// SnapshotStore persists the session-owned basket between requests. The
// basket belongs to exactly one browsing session; there are no concurrent
// writers by contract.
type SnapshotStore interface {
	Load(ctx context.Context, userID uuid.UUID) ([]types.BasketItem, error)
	Save(ctx context.Context, userID uuid.UUID, items []types.BasketItem) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

// Service exposes the basket and pricing operations.
type Service interface {
	Get(ctx context.Context, session auth.Session) (*Summary, error)
	AddItem(ctx context.Context, session auth.Session, product types.BasketItem) (*Summary, error)
	RemoveItem(ctx context.Context, session auth.Session, productID uuid.UUID) (*Summary, error)
	UpdateQuantity(ctx context.Context, session auth.Session, productID uuid.UUID, quantity int) (*Summary, error)
	Clear(ctx context.Context, session auth.Session) error
	BuildCheckoutPayload(ctx context.Context, session auth.Session, deliveryAddress, estimatedDelivery string) (types.CheckoutPayload, error)
}

type service struct {
	store SnapshotStore
}

// NewService builds a basket service over the given snapshot store.
func NewService(store SnapshotStore) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("basket snapshot store required")
	}
	return &service{store: store}, nil
}

// Line is a basket item with its resolved pricing.
type Line struct {
	types.BasketItem
	EffectivePrice decimal.Decimal `json:"effective_price"`
	LineTotal      decimal.Decimal `json:"line_total"`
	Special        bool            `json:"special"`
}

// Summary is the checkout-ready view of the basket.
type Summary struct {
	Lines      []Line          `json:"lines"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	TotalItems int             `json:"total_items"`
}

// Subtotal sums effective price times quantity over all items. List price is
// display-only and never enters the math.
func Subtotal(items []types.BasketItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// TotalItems sums quantities, not distinct lines; it feeds the basket badge.
func TotalItems(items []types.BasketItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

func summarize(items []types.BasketItem) *Summary {
	lines := make([]Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, Line{
			BasketItem:     item,
			EffectivePrice: types.EffectivePrice(item),
			LineTotal:      item.LineTotal(),
			Special:        types.IsSpecial(item),
		})
	}
	return &Summary{
		Lines:      lines,
		Subtotal:   Subtotal(items),
		TotalItems: TotalItems(items),
	}
}

func (s *service) Get(ctx context.Context, session auth.Session) (*Summary, error) {
	items, err := s.load(ctx, session)
	if err != nil {
		return nil, err
	}
	return summarize(items), nil
}

// AddItem increments the quantity when the product is already present and
// inserts a fresh single-quantity line otherwise. Stock ceilings are the
// product page's concern, enforced before this call.
func (s *service) AddItem(ctx context.Context, session auth.Session, product types.BasketItem) (*Summary, error) {
	if product.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if !product.Price.IsPositive() && (product.InventoryPrice == nil || !product.InventoryPrice.IsPositive()) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product has no chargeable price")
	}

	items, err := s.load(ctx, session)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range items {
		if items[i].ProductID == product.ProductID {
			items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		product.Quantity = 1
		items = append(items, product)
	}

	if err := s.save(ctx, session, items); err != nil {
		return nil, err
	}
	return summarize(items), nil
}

// RemoveItem drops the line entirely; quantities are never persisted at zero.
func (s *service) RemoveItem(ctx context.Context, session auth.Session, productID uuid.UUID) (*Summary, error) {
	items, err := s.load(ctx, session)
	if err != nil {
		return nil, err
	}

	kept := items[:0]
	for _, item := range items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}

	if err := s.save(ctx, session, kept); err != nil {
		return nil, err
	}
	return summarize(kept), nil
}

// UpdateQuantity replaces the line's quantity. Quantities below one are
// rejected as no-ops; removal is an explicit separate operation.
func (s *service) UpdateQuantity(ctx context.Context, session auth.Session, productID uuid.UUID, quantity int) (*Summary, error) {
	items, err := s.load(ctx, session)
	if err != nil {
		return nil, err
	}

	if quantity < 1 {
		return summarize(items), nil
	}

	changed := false
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
			changed = true
			break
		}
	}
	if changed {
		if err := s.save(ctx, session, items); err != nil {
			return nil, err
		}
	}
	return summarize(items), nil
}

func (s *service) Clear(ctx context.Context, session auth.Session) error {
	if err := s.store.Clear(ctx, session.UserID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear basket")
	}
	return nil
}

// BuildCheckoutPayload maps every line to its effective unit price. An empty
// basket or a blank delivery address fails locally, before any network call.
func (s *service) BuildCheckoutPayload(ctx context.Context, session auth.Session, deliveryAddress, estimatedDelivery string) (types.CheckoutPayload, error) {
	items, err := s.load(ctx, session)
	if err != nil {
		return types.CheckoutPayload{}, err
	}

	if len(items) == 0 {
		return types.CheckoutPayload{}, pkgerrors.New(pkgerrors.CodeValidation, "basket is empty")
	}
	if strings.TrimSpace(deliveryAddress) == "" {
		return types.CheckoutPayload{}, pkgerrors.New(pkgerrors.CodeValidation, "delivery address is required")
	}

	payload := types.CheckoutPayload{
		BuyerID:           session.UserID,
		DeliveryAddress:   deliveryAddress,
		EstimatedDelivery: estimatedDelivery,
		Items:             make([]types.CheckoutItem, 0, len(items)),
	}
	for _, item := range items {
		payload.Items = append(payload.Items, types.CheckoutItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: types.EffectivePrice(item),
		})
	}
	return payload, nil
}

func (s *service) load(ctx context.Context, session auth.Session) ([]types.BasketItem, error) {
	if session.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	items, err := s.store.Load(ctx, session.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load basket")
	}
	return items, nil
}

func (s *service) save(ctx context.Context, session auth.Session, items []types.BasketItem) error {
	if err := s.store.Save(ctx, session.UserID, items); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save basket")
	}
	return nil
}
