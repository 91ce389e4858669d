package wire

import (
	"media-reviews/internal/adaptor"
	"media-reviews/pkg/middleware"
	"media-reviews/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser configures user management routes with role-based access control
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== SELF-SERVICE ROUTES ====================
	// Own profile - requires authentication only. The static "me" segment
	// takes routing precedence over the {username} parameter.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		r.Get("/api/v1/users/me", userHandler.Me)          // GET /api/v1/users/me
		r.Patch("/api/v1/users/me", userHandler.UpdateMe)  // PATCH /api/v1/users/me
		r.Delete("/api/v1/users/me", userHandler.DeleteMe) // DELETE /api/v1/users/me -> 405
	})

	// ==================== ADMIN ROUTES ====================
	// User administration - requires both authentication AND admin role
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log)) // Check valid token
		r.Use(middleware.Admin(log))            // Check admin role

		r.Get("/api/v1/users", userHandler.List)                // GET /api/v1/users?search=&page=1&per_page=10
		r.Post("/api/v1/users", userHandler.Create)             // POST /api/v1/users
		r.Get("/api/v1/users/{username}", userHandler.Get)      // GET /api/v1/users/{username}
		r.Patch("/api/v1/users/{username}", userHandler.Update) // PATCH /api/v1/users/{username}
		r.Delete("/api/v1/users/{username}", userHandler.Delete) // DELETE /api/v1/users/{username}
	})
}
