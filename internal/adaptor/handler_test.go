package adaptor

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", errors.New("validation failed: score out of range"), http.StatusBadRequest},
		{"forbidden", errors.New("forbidden: only the author or a moderator may modify a review"), http.StatusForbidden},
		{"not found", errors.New("work abc not found"), http.StatusNotFound},
		{"invalid id", errors.New("invalid work ID format abc"), http.StatusBadRequest},
		{"duplicate", errors.New("validation failed: you have already reviewed this work"), http.StatusBadRequest},
		// contains both "not found" and "already"; not-found must win
		{"soft deleted", errors.New("user alice not found or already deleted"), http.StatusNotFound},
		{"internal", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handleServiceError(zap.NewNop(), w, tt.err, "test")
			if w.Code != tt.want {
				t.Errorf("code = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestParsePagination(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?page=3&per_page=25", nil)
	page := parsePagination(req)
	if page.Page != 3 || page.PerPage != 25 {
		t.Errorf("page = %+v", page)
	}

	req = httptest.NewRequest(http.MethodGet, "/?page=abc", nil)
	page = parsePagination(req)
	if page.Page != 1 || page.PerPage != 10 {
		t.Errorf("defaults = %+v", page)
	}
}
