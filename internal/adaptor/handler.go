package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"media-reviews/internal/data/entity"
	"media-reviews/internal/dto/request"
	"media-reviews/internal/usecase"
	"media-reviews/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Category *CategoryHandler
	Genre    *GenreHandler
	Work     *WorkHandler
	Review   *ReviewHandler
	Comment  *CommentHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		User:     NewUserHandler(service.User, log),
		Category: NewCategoryHandler(service.Category, log),
		Genre:    NewGenreHandler(service.Genre, log),
		Work:     NewWorkHandler(service.Work, log),
		Review:   NewReviewHandler(service.Review, log),
		Comment:  NewCommentHandler(service.Comment, log),
	}
}

// handleServiceError maps service errors onto HTTP responses. Validation
// errors are matched first because repository messages such as
// "not found or already deleted" would otherwise hit the wrong branch.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	msg := err.Error()

	switch {
	case strings.Contains(msg, "validation failed"):
		utils.ResponseBadRequest(w, msg, nil)
	case strings.Contains(msg, "forbidden"):
		utils.ResponseForbidden(w, msg)
	case strings.Contains(msg, "not found"):
		utils.ResponseNotFound(w, msg)
	case strings.Contains(msg, "invalid"), strings.Contains(msg, "already"):
		utils.ResponseBadRequest(w, msg, nil)
	default:
		log.Error("Unhandled service error",
			zap.Error(err),
			zap.String("operation", operation),
		)
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// decodeBody parses the JSON request body into dst, writing a 400 on failure
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// parsePagination reads page/per_page query params with sane defaults
func parsePagination(r *http.Request) *request.PaginatedRequest {
	return &request.PaginatedRequest{
		Page:    utils.ParseInt(r.URL.Query().Get("page"), 1),
		PerPage: utils.ParseInt(r.URL.Query().Get("per_page"), 10),
	}
}

// actorFromContext builds the caller identity set by the auth middleware
func actorFromContext(w http.ResponseWriter, r *http.Request) (usecase.Actor, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return usecase.Actor{}, false
	}

	role, ok := utils.GetRoleFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return usecase.Actor{}, false
	}

	return usecase.Actor{ID: userID, Role: entity.UserRole(role)}, true
}
