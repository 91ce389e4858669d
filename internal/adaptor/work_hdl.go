package adaptor

import (
	"net/http"
	"strconv"

	"media-reviews/internal/dto/request"
	"media-reviews/internal/usecase"
	"media-reviews/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type WorkHandler struct {
	service usecase.WorkService
	log     *zap.Logger
}

func NewWorkHandler(service usecase.WorkService, log *zap.Logger) *WorkHandler {
	return &WorkHandler{
		service: service,
		log:     log.With(zap.String("handler", "work")),
	}
}

func (h *WorkHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := request.WorkListFilter{
		Category: query.Get("category"),
		Genre:    query.Get("genre"),
		Name:     query.Get("name"),
	}
	if yearStr := query.Get("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid year filter", nil)
			return
		}
		filter.Year = &year
	}

	page := parsePagination(r)

	resp, err := h.service.List(r.Context(), filter, page)
	if err != nil {
		handleServiceError(h.log, w, err, "list works")
		return
	}

	utils.ResponseSuccess(w, "Works retrieved successfully", resp)
}

func (h *WorkHandler) Get(w http.ResponseWriter, r *http.Request) {
	workID := chi.URLParam(r, "workID")

	resp, err := h.service.Get(r.Context(), workID)
	if err != nil {
		handleServiceError(h.log, w, err, "get work")
		return
	}

	utils.ResponseSuccess(w, "Work retrieved successfully", resp)
}

func (h *WorkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateWorkRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	resp, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create work")
		return
	}

	utils.ResponseCreated(w, "Work created successfully", resp)
}

func (h *WorkHandler) Update(w http.ResponseWriter, r *http.Request) {
	workID := chi.URLParam(r, "workID")

	var req request.UpdateWorkRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Update(r.Context(), workID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update work")
		return
	}

	utils.ResponseSuccess(w, "Work updated successfully", resp)
}

func (h *WorkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	workID := chi.URLParam(r, "workID")

	if err := h.service.Delete(r.Context(), workID); err != nil {
		handleServiceError(h.log, w, err, "delete work")
		return
	}

	utils.ResponseNoContent(w)
}
