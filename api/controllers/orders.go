package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/medimarket/storefront-backend/api/responses"
	"github.com/medimarket/storefront-backend/api/validators"
	orderssvc "github.com/medimarket/storefront-backend/internal/orders"
	ratingssvc "github.com/medimarket/storefront-backend/internal/ratings"
	"github.com/medimarket/storefront-backend/internal/sellers"
	"github.com/medimarket/storefront-backend/pkg/enums"
	pkgerrors "github.com/medimarket/storefront-backend/pkg/errors"
	"github.com/medimarket/storefront-backend/pkg/logger"
	"github.com/medimarket/storefront-backend/pkg/types"
)

// orderView pairs an order with the actions the current actor may take on
// it, so clients render buttons straight from the server's own gates.
type orderView struct {
	types.Order
	Actions orderssvc.Actions `json:"actions"`
}

// OrdersList returns the actor's orders, optionally narrowed by the
// free-text q parameter.
func OrdersList(svc orderssvc.Service, directory *sellers.Directory, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionOrError(w, r, logg)
		if !ok {
			return
		}

		list, err := svc.List(r.Context(), session)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if query := validators.SearchQuery(r, "q"); query != "" {
			var resolve orderssvc.SellerResolver
			if directory != nil {
				resolve = directory.Resolver(r.Context(), session)
			}
			list = orderssvc.Filter(list, resolve, query)
		}

		views := make([]orderView, 0, len(list))
		for _, order := range list {
			views = append(views, orderView{Order: order, Actions: orderssvc.AllowedActions(session, order)})
		}
		responses.WriteSuccess(w, views)
	}
}

// OrderGet returns one order with the actor's allowed actions.
func OrderGet(svc orderssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionOrError(w, r, logg)
		if !ok {
			return
		}
		orderID, err := pathUUID(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), session, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orderView{Order: *order, Actions: orderssvc.AllowedActions(session, *order)})
	}
}

// OrderTransition applies one lifecycle action. The current order is fetched
// fresh so the gate runs against the backend's view, then the transition is
// attempted exactly once.
func OrderTransition(svc orderssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionOrError(w, r, logg)
		if !ok {
			return
		}
		orderID, err := pathUUID(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		action, err := enums.ParseTransitionAction(chi.URLParam(r, "action"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown action"))
			return
		}

		order, err := svc.Get(r.Context(), session, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Transition(r.Context(), session, order, action); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orderView{Order: *order, Actions: orderssvc.AllowedActions(session, *order)})
	}
}

// OrderDelete removes the order record.
func OrderDelete(svc orderssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionOrError(w, r, logg)
		if !ok {
			return
		}
		orderID, err := pathUUID(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), session, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), session, *order); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// OrderRate submits per-product ratings for a delivered order.
func OrderRate(ordersSvc orderssvc.Service, ratingsSvc ratingssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionOrError(w, r, logg)
		if !ok {
			return
		}
		orderID, err := pathUUID(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload ratingssvc.Input
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := ordersSvc.Get(r.Context(), session, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := ratingsSvc.Rate(r.Context(), session, *order, payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"status": "rated"})
	}
}
