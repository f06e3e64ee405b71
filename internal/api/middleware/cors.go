package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// CORS allows browser clients from any origin to call the API, including
// preflight requests for the User header.
func CORS() func(http.Handler) http.Handler {
	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", UserHeader}),
	)
}
