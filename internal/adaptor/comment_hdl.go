package adaptor

import (
	"net/http"

	"media-reviews/internal/dto/request"
	"media-reviews/internal/usecase"
	"media-reviews/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CommentHandler struct {
	service usecase.CommentService
	log     *zap.Logger
}

func NewCommentHandler(service usecase.CommentService, log *zap.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		log:     log.With(zap.String("handler", "comment")),
	}
}

func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	workID := chi.URLParam(r, "workID")
	reviewID := chi.URLParam(r, "reviewID")
	page := parsePagination(r)

	resp, err := h.service.ListByReview(r.Context(), workID, reviewID, page)
	if err != nil {
		handleServiceError(h.log, w, err, "list comments")
		return
	}

	utils.ResponseSuccess(w, "Comments retrieved successfully", resp)
}

func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	workID := chi.URLParam(r, "workID")
	reviewID := chi.URLParam(r, "reviewID")
	commentID := chi.URLParam(r, "commentID")

	resp, err := h.service.Get(r.Context(), workID, reviewID, commentID)
	if err != nil {
		handleServiceError(h.log, w, err, "get comment")
		return
	}

	utils.ResponseSuccess(w, "Comment retrieved successfully", resp)
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(w, r)
	if !ok {
		return
	}
	workID := chi.URLParam(r, "workID")
	reviewID := chi.URLParam(r, "reviewID")

	var req request.CreateCommentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	resp, err := h.service.Create(r.Context(), actor, workID, reviewID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create comment")
		return
	}

	utils.ResponseCreated(w, "Comment created successfully", resp)
}

func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(w, r)
	if !ok {
		return
	}
	workID := chi.URLParam(r, "workID")
	reviewID := chi.URLParam(r, "reviewID")
	commentID := chi.URLParam(r, "commentID")

	var req request.UpdateCommentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Update(r.Context(), actor, workID, reviewID, commentID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update comment")
		return
	}

	utils.ResponseSuccess(w, "Comment updated successfully", resp)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(w, r)
	if !ok {
		return
	}
	workID := chi.URLParam(r, "workID")
	reviewID := chi.URLParam(r, "reviewID")
	commentID := chi.URLParam(r, "commentID")

	if err := h.service.Delete(r.Context(), actor, workID, reviewID, commentID); err != nil {
		handleServiceError(h.log, w, err, "delete comment")
		return
	}

	utils.ResponseNoContent(w)
}
