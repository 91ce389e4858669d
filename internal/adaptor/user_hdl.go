package adaptor

import (
	"net/http"

	"media-reviews/internal/dto/request"
	"media-reviews/internal/usecase"
	"media-reviews/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	page := parsePagination(r)

	resp, err := h.service.List(r.Context(), search, page)
	if err != nil {
		handleServiceError(h.log, w, err, "list users")
		return
	}

	utils.ResponseSuccess(w, "Users retrieved successfully", resp)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	resp, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create user")
		return
	}

	utils.ResponseCreated(w, "User created successfully", resp)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	resp, err := h.service.GetByUsername(r.Context(), username)
	if err != nil {
		handleServiceError(h.log, w, err, "get user")
		return
	}

	utils.ResponseSuccess(w, "User retrieved successfully", resp)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	var req request.UpdateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.UpdateByUsername(r.Context(), username, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update user")
		return
	}

	utils.ResponseSuccess(w, "User updated successfully", resp)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	if err := h.service.DeleteByUsername(r.Context(), username); err != nil {
		handleServiceError(h.log, w, err, "delete user")
		return
	}

	utils.ResponseNoContent(w)
}

// Me returns the caller's own profile
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Me(r.Context(), actor.ID)
	if err != nil {
		handleServiceError(h.log, w, err, "get own profile")
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved successfully", resp)
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(w, r)
	if !ok {
		return
	}

	var req request.UpdateMeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.UpdateMe(r.Context(), actor.ID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update own profile")
		return
	}

	utils.ResponseSuccess(w, "Profile updated successfully", resp)
}

// DeleteMe always refuses; accounts cannot delete themselves
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	utils.ResponseMethodNotAllowed(w, "Deleting your own account is not allowed")
}
