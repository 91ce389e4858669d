package response

import (
	"time"

	"media-reviews/internal/data/entity"
)

type WorkResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Rating      *int              `json:"rating"` // null until the first review
	Description string            `json:"description"`
	Genre       []GenreResponse   `json:"genre"`
	Category    *CategoryResponse `json:"category"`
	CreatedAt   time.Time         `json:"created_at"`
}

// Helper converter
func WorkToResponse(work *entity.Work, category *entity.Category, genres []*entity.Genre) WorkResponse {
	resp := WorkResponse{
		ID:          work.ID.String(),
		Name:        work.Name,
		Year:        work.Year,
		Rating:      work.Rating,
		Description: work.Description,
		Genre:       make([]GenreResponse, 0, len(genres)),
		CreatedAt:   work.CreatedAt,
	}

	if category != nil {
		c := CategoryToResponse(category)
		resp.Category = &c
	}

	for _, genre := range genres {
		resp.Genre = append(resp.Genre, GenreToResponse(genre))
	}

	return resp
}
