package wire

import (
	"media-reviews/internal/adaptor"
	"media-reviews/pkg/middleware"
	"media-reviews/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireCatalog configures category and genre routes. Listing is public,
// mutation is admin only.
func wireCatalog(
	r chi.Router,
	categoryHandler *adaptor.CategoryHandler,
	genreHandler *adaptor.GenreHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/v1/categories", categoryHandler.List) // GET /api/v1/categories?search=
	r.Get("/api/v1/genres", genreHandler.List)        // GET /api/v1/genres?search=

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.Admin(log))

		r.Post("/api/v1/categories", categoryHandler.Create)          // POST /api/v1/categories
		r.Delete("/api/v1/categories/{slug}", categoryHandler.Delete) // DELETE /api/v1/categories/{slug}

		r.Post("/api/v1/genres", genreHandler.Create)          // POST /api/v1/genres
		r.Delete("/api/v1/genres/{slug}", genreHandler.Delete) // DELETE /api/v1/genres/{slug}
	})
}
