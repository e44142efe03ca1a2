package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/medimarket/storefront-backend/api/middleware"
	"github.com/medimarket/storefront-backend/api/responses"
	"github.com/medimarket/storefront-backend/api/validators"
	basketsvc "github.com/medimarket/storefront-backend/internal/basket"
	"github.com/medimarket/storefront-backend/pkg/auth"
	"github.com/medimarket/storefront-backend/pkg/enums"
	pkgerrors "github.com/medimarket/storefront-backend/pkg/errors"
	"github.com/medimarket/storefront-backend/pkg/logger"
	"github.com/medimarket/storefront-backend/pkg/types"
)

// BasketGet returns the priced basket summary.
func BasketGet(svc basketsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionOrError(w, r, logg)
		if !ok {
			return
		}
		summary, err := svc.Get(r.Context(), session)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

type addItemRequest struct {
	ProductID      uuid.UUID        `json:"product_id" validate:"required"`
	ProductName    string           `json:"product_name" validate:"required"`
	Price          decimal.Decimal  `json:"price" validate:"required"`
	InventoryPrice *decimal.Decimal `json:"inventory_price,omitempty"`
	Condition      string           `json:"type,omitempty"`
}

func (p addItemRequest) toItem() (types.BasketItem, error) {
	item := types.BasketItem{
		ProductID:      p.ProductID,
		ProductName:    p.ProductName,
		Price:          p.Price,
		InventoryPrice: p.InventoryPrice,
	}
	if p.Condition != "" {
		condition, err := enums.ParseProductCondition(p.Condition)
		if err != nil {
			return types.BasketItem{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product type")
		}
		item.Condition = condition
	}
	return item, nil
}

// BasketAddItem adds one unit of a catalog product, or bumps the quantity if
// the product is already in the basket.
func BasketAddItem(svc basketsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionOrError(w, r, logg)
		if !ok {
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := payload.toItem()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.AddItem(r.Context(), session, item)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, summary)
	}
}

type updateQuantityRequest struct {
	// Values below one are passed through; the basket keeps the line as-is.
	Quantity int `json:"quantity"`
}

// BasketUpdateQuantity replaces the quantity of one line. Values below one
// leave the line untouched.
func BasketUpdateQuantity(svc basketsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionOrError(w, r, logg)
		if !ok {
			return
		}
		productID, err := pathUUID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.UpdateQuantity(r.Context(), session, productID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// BasketRemoveItem drops one line regardless of quantity.
func BasketRemoveItem(svc basketsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionOrError(w, r, logg)
		if !ok {
			return
		}
		productID, err := pathUUID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.RemoveItem(r.Context(), session, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// BasketClear empties the basket.
func BasketClear(svc basketsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionOrError(w, r, logg)
		if !ok {
			return
		}
		if err := svc.Clear(r.Context(), session); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}

func sessionOrError(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (auth.Session, bool) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session"))
		return auth.Session{}, false
	}
	return session, true
}

func pathUUID(r *http.Request, param string) (uuid.UUID, error) {
	raw := chi.URLParam(r, param)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+param)
	}
	return id, nil
}
