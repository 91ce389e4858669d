package wire

import (
	"media-reviews/internal/adaptor"
	"media-reviews/pkg/middleware"
	"media-reviews/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireReview configures review routes nested under works. Reading is
// public; writing needs authentication, with author/moderator checks
// enforced in the service layer.
func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/v1/works/{workID}/reviews", reviewHandler.List)
	r.Get("/api/v1/works/{workID}/reviews/{reviewID}", reviewHandler.Get)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		r.Post("/api/v1/works/{workID}/reviews", reviewHandler.Create)
		r.Patch("/api/v1/works/{workID}/reviews/{reviewID}", reviewHandler.Update)
		r.Delete("/api/v1/works/{workID}/reviews/{reviewID}", reviewHandler.Delete)
	})
}
