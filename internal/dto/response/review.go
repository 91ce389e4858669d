package response

import (
	"time"

	"media-reviews/internal/data/entity"
)

type ReviewResponse struct {
	ID        string    `json:"id"`
	WorkID    string    `json:"work_id"`
	Author    string    `json:"author,omitempty"`
	Text      string    `json:"text"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// Helper converter
func ReviewToResponse(review *entity.Review, author string) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID.String(),
		WorkID:    review.WorkID.String(),
		Author:    author,
		Text:      review.Text,
		Score:     review.Score,
		CreatedAt: review.CreatedAt,
	}
}
