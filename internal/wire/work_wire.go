package wire

import (
	"media-reviews/internal/adaptor"
	"media-reviews/pkg/middleware"
	"media-reviews/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireWork configures work routes. Browsing is public, mutation is admin only.
func wireWork(
	r chi.Router,
	workHandler *adaptor.WorkHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/v1/works - List works (filterable by category, genre, name, year)
	r.Get("/api/v1/works", workHandler.List)

	// GET /api/v1/works/{work-id} - Work details with derived rating
	r.Get("/api/v1/works/{workID}", workHandler.Get)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.Admin(log))

		r.Post("/api/v1/works", workHandler.Create)            // POST /api/v1/works
		r.Patch("/api/v1/works/{workID}", workHandler.Update)  // PATCH /api/v1/works/{work-id}
		r.Delete("/api/v1/works/{workID}", workHandler.Delete) // DELETE /api/v1/works/{work-id}
	})
}
