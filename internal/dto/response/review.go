package response

import (
	"encoding/json"
	"time"

	"movie-review-api/internal/data/entity"
)

type ReviewResponse struct {
	ID           string    `json:"id"`
	Author       string    `json:"author"`
	MovieApiID   string    `json:"movieApiId"`
	Content      string    `json:"content"`
	Rate         float64   `json:"rate"`
	LikesCounter int64     `json:"likesCounter"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FullReviewResponse joins a review with the author payload from the Users
// service and the movie payload from the metadata API.
type FullReviewResponse struct {
	ID           string          `json:"id"`
	Content      string          `json:"content"`
	Rate         float64         `json:"rate"`
	LikesCounter int64           `json:"likesCounter"`
	CreatedAt    time.Time       `json:"createdAt"`
	Author       json.RawMessage `json:"author"`
	MovieApiID   json.RawMessage `json:"movieApiId"`
}

// Helper converter
func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:           review.ID.Hex(),
		Author:       review.Author.Hex(),
		MovieApiID:   review.MovieApiID,
		Content:      review.Content,
		Rate:         review.Rate,
		LikesCounter: review.LikesCounter,
		CreatedAt:    review.CreatedAt,
	}
}

func ReviewsToResponse(reviews []*entity.Review) []ReviewResponse {
	responses := make([]ReviewResponse, len(reviews))
	for i, review := range reviews {
		responses[i] = ReviewToResponse(review)
	}
	return responses
}
