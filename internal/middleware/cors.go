package middleware

import (
	"net/http"
	"slices"

	"github.com/rs/cors"
)

// Cors allows the given origins, or every origin when none are given.
func Cors(allowedOrigins []string) Middleware {
	options := cors.Options{
		AllowOriginFunc: func(origin string) bool {
			return len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, origin)
		},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
	return cors.New(options).Handler
}
