package wire

import (
	"movie-review-api/internal/adaptor"
	"movie-review-api/pkg/middleware"
	"movie-review-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/reviews/search", reviewHandler.SearchReviews)
	r.Get("/api/reviews/movies/{movieId}", reviewHandler.GetReviewsFromMovie)
	r.Get("/api/reviews/users/{authorId}", reviewHandler.GetReviewsFromAuthor)
	r.Get("/api/reviews/top", reviewHandler.GetTopLikedReviews)
	r.Get("/api/reviews", reviewHandler.GetReviews)
	r.Get("/api/reviews/{id}", reviewHandler.GetOneReview)
	r.Get("/api/reviews/{id}/full", reviewHandler.GetReviewFullData)

	// ==================== PROTECTED ROUTES (require auth) ====================
	// Every mutating operation sits behind the token gate, delete included
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthToken(config.JWT.Secret, log))

		r.Post("/api/reviews", reviewHandler.CreateReview)
		r.Put("/api/reviews/{id}", reviewHandler.EditReview)
		r.Put("/api/reviews/{id}/like", reviewHandler.LikeReview)
		r.Delete("/api/reviews/{id}", reviewHandler.DeleteReview)
	})
}
