// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Investment-Admin-Console/internal/api/response"
	"github.com/ndewijer/Investment-Admin-Console/internal/validation"
)

// ValidateRecordIDMiddleware validates that the id URL parameter is present and
// can be used as a store key suffix.
// Returns 400 Bad Request if the id is missing or invalid.
//
// Example usage in router:
//
//	r.Route("/{id}", func(r chi.Router) {
//	    r.Use(middleware.ValidateRecordIDMiddleware)
//	    r.Get("/", handler.GetInvestment)
//	    r.Delete("/", handler.DeleteInvestment)
//	})
func ValidateRecordIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if id == "" {
			response.RespondError(w, http.StatusBadRequest, "record id is required", "")
			return
		}

		if err := validation.ValidateRecordID(id); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid record id", err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}
