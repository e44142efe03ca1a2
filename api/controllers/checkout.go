package controllers

import (
	"net/http"

	"github.com/medimarket/storefront-backend/api/responses"
	"github.com/medimarket/storefront-backend/api/validators"
	checkoutsvc "github.com/medimarket/storefront-backend/internal/checkout"
	"github.com/medimarket/storefront-backend/pkg/logger"
)

// Checkout places the current basket as an order.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionOrError(w, r, logg)
		if !ok {
			return
		}

		var payload checkoutsvc.Input
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Execute(r.Context(), session, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
