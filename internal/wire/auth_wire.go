package wire

import (
	"media-reviews/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireAuth configures the public signup and token routes
func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	// POST /api/v1/auth/signup - Register or re-request a confirmation code
	r.Post("/api/v1/auth/signup", authHandler.Signup)

	// POST /api/v1/auth/token - Exchange username + code for an access token
	r.Post("/api/v1/auth/token", authHandler.Token)
}
