package adaptor

import (
	"net/http"

	"media-reviews/internal/dto/request"
	"media-reviews/internal/usecase"
	"media-reviews/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	workID := chi.URLParam(r, "workID")
	page := parsePagination(r)

	resp, err := h.service.ListByWork(r.Context(), workID, page)
	if err != nil {
		handleServiceError(h.log, w, err, "list reviews")
		return
	}

	utils.ResponseSuccess(w, "Reviews retrieved successfully", resp)
}

func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	workID := chi.URLParam(r, "workID")
	reviewID := chi.URLParam(r, "reviewID")

	resp, err := h.service.Get(r.Context(), workID, reviewID)
	if err != nil {
		handleServiceError(h.log, w, err, "get review")
		return
	}

	utils.ResponseSuccess(w, "Review retrieved successfully", resp)
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(w, r)
	if !ok {
		return
	}
	workID := chi.URLParam(r, "workID")

	var req request.CreateReviewRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	resp, err := h.service.Create(r.Context(), actor, workID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create review")
		return
	}

	utils.ResponseCreated(w, "Review created successfully", resp)
}

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(w, r)
	if !ok {
		return
	}
	workID := chi.URLParam(r, "workID")
	reviewID := chi.URLParam(r, "reviewID")

	var req request.UpdateReviewRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Update(r.Context(), actor, workID, reviewID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update review")
		return
	}

	utils.ResponseSuccess(w, "Review updated successfully", resp)
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(w, r)
	if !ok {
		return
	}
	workID := chi.URLParam(r, "workID")
	reviewID := chi.URLParam(r, "reviewID")

	if err := h.service.Delete(r.Context(), actor, workID, reviewID); err != nil {
		handleServiceError(h.log, w, err, "delete review")
		return
	}

	utils.ResponseNoContent(w)
}
