package cart

import (
	"net/http"

	"github.com/angelmondragon/cartoptions-backend/api/middleware"
	"github.com/angelmondragon/cartoptions-backend/api/responses"
	"github.com/angelmondragon/cartoptions-backend/api/validators"
	cartsvc "github.com/angelmondragon/cartoptions-backend/internal/cart"
	pkgerrors "github.com/angelmondragon/cartoptions-backend/pkg/errors"
	"github.com/angelmondragon/cartoptions-backend/pkg/logger"
)

// CartCreate opens a new empty cart.
func CartCreate(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		record, err := svc.CreateCart(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newCart(record))
	}
}

// CartFetch exposes the cart addressed by the {token} URL parameter.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		token, err := cartTokenFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.GetCart(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCart(record))
	}
}

// CartAddItem adds a variant, with optional customer options, to the cart.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		token, err := cartTokenFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload, err := validators.DecodeAddItemRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.AddItem(r.Context(), toAddItemCommand(token, payload))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCart(record))
	}
}

func cartTokenFromContext(r *http.Request) (string, error) {
	if r == nil {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "request missing")
	}
	token := middleware.CartTokenFromContext(r.Context())
	if token == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}
	return token, nil
}
