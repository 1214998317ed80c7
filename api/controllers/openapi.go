package controllers

import (
	"net/http"

	"github.com/angelmondragon/cartoptions-backend/api/docs"
	"github.com/angelmondragon/cartoptions-backend/api/responses"
	pkgerrors "github.com/angelmondragon/cartoptions-backend/pkg/errors"
	"github.com/angelmondragon/cartoptions-backend/pkg/logger"
)

// OpenAPIDocument serves the patched OpenAPI document. It is rendered once.
func OpenAPIDocument(logg *logger.Logger) http.HandlerFunc {
	payload, renderErr := docs.JSON()
	return func(w http.ResponseWriter, r *http.Request) {
		if renderErr != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, renderErr, "render openapi document"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(payload)
	}
}
