package wire

import (
	"media-reviews/internal/adaptor"
	"media-reviews/pkg/middleware"
	"media-reviews/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireComment configures comment routes nested under reviews
func wireComment(
	r chi.Router,
	commentHandler *adaptor.CommentHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/v1/works/{workID}/reviews/{reviewID}/comments", commentHandler.List)
	r.Get("/api/v1/works/{workID}/reviews/{reviewID}/comments/{commentID}", commentHandler.Get)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		r.Post("/api/v1/works/{workID}/reviews/{reviewID}/comments", commentHandler.Create)
		r.Patch("/api/v1/works/{workID}/reviews/{reviewID}/comments/{commentID}", commentHandler.Update)
		r.Delete("/api/v1/works/{workID}/reviews/{reviewID}/comments/{commentID}", commentHandler.Delete)
	})
}
