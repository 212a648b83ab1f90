package request

type CreateReviewRequest struct {
	MovieApiID string  `json:"movieApiId" validate:"required"`
	Content    string  `json:"content" validate:"required,max=2000"`
	Rate       float64 `json:"rate" validate:"gte=0,lte=10"`
}

// EditReviewRequest overwrites every mutable field of a review
type EditReviewRequest struct {
	MovieApiID   string  `json:"movieApiId" validate:"required"`
	Content      string  `json:"content" validate:"required,max=2000"`
	Rate         float64 `json:"rate" validate:"gte=0,lte=10"`
	LikesCounter int64   `json:"likesCounter" validate:"gte=0"`
}
