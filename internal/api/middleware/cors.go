package middleware

import (
	"github.com/go-chi/cors"
)

// NewCORS creates the CORS middleware for the console UI. The admin session
// is held by the server, so requests carry no credentials and only JSON
// bodies need to be allowed.
func NewCORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	})
}
