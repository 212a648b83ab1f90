package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"movie-review-api/internal/dto/request"
	"movie-review-api/internal/usecase"
	"movie-review-api/pkg/utils"

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

// GetReviews handles GET /api/reviews (public)
func (h *ReviewHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.ListReviews(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "list reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// GetTopLikedReviews handles GET /api/reviews/top (public)
func (h *ReviewHandler) GetTopLikedReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.ListTopLiked(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "list top liked reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// GetReviewsFromMovie handles GET /api/reviews/movies/{movieId} (public)
func (h *ReviewHandler) GetReviewsFromMovie(w http.ResponseWriter, r *http.Request) {
	movieApiID := chi.URLParam(r, "movieId")
	if movieApiID == "" {
		utils.ResponseBadRequest(w, "Movie ID is required", nil)
		return
	}

	reviews, err := h.service.ListByMovie(r.Context(), movieApiID)
	if err != nil {
		h.handleServiceError(w, err, "list reviews by movie")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// GetReviewsFromAuthor handles GET /api/reviews/users/{authorId} (public)
func (h *ReviewHandler) GetReviewsFromAuthor(w http.ResponseWriter, r *http.Request) {
	authorID := chi.URLParam(r, "authorId")

	reviews, err := h.service.ListByAuthor(r.Context(), authorID)
	if err != nil {
		h.handleServiceError(w, err, "list reviews by author")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// GetOneReview handles GET /api/reviews/{id} (public).
// A well-formed id with no matching review responds 200 with null data.
func (h *ReviewHandler) GetOneReview(w http.ResponseWriter, r *http.Request) {
	reviewID := chi.URLParam(r, "id")

	review, err := h.service.GetReview(r.Context(), reviewID)
	if err != nil {
		h.handleServiceError(w, err, "get review")
		return
	}

	utils.ResponseSuccess(w, "success", review)
}

// SearchReviews handles GET /api/reviews/search?query= (public)
func (h *ReviewHandler) SearchReviews(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	reviews, err := h.service.SearchReviews(r.Context(), query)
	if err != nil {
		h.handleServiceError(w, err, "search reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// CreateReview handles POST /api/reviews (protected)
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	review, err := h.service.CreateReview(r.Context(), userID.Hex(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create review")
		return
	}

	utils.ResponseCreated(w, "success", review)
}

// EditReview handles PUT /api/reviews/{id} (protected)
func (h *ReviewHandler) EditReview(w http.ResponseWriter, r *http.Request) {
	reviewID := chi.URLParam(r, "id")

	var req request.EditReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	review, err := h.service.EditReview(r.Context(), reviewID, &req)
	if err != nil {
		h.handleServiceError(w, err, "edit review")
		return
	}

	utils.ResponseSuccess(w, "success", review)
}

// DeleteReview handles DELETE /api/reviews/{id} (protected).
// Deleting an id that does not exist still responds 200.
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	reviewID := chi.URLParam(r, "id")

	if err := h.service.DeleteReview(r.Context(), reviewID); err != nil {
		h.handleServiceError(w, err, "delete review")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// LikeReview handles PUT /api/reviews/{id}/like (protected)
func (h *ReviewHandler) LikeReview(w http.ResponseWriter, r *http.Request) {
	reviewID := chi.URLParam(r, "id")

	review, err := h.service.LikeReview(r.Context(), reviewID)
	if err != nil {
		h.handleServiceError(w, err, "like review")
		return
	}

	utils.ResponseSuccess(w, "success", review)
}

// GetReviewFullData handles GET /api/reviews/{id}/full (public)
func (h *ReviewHandler) GetReviewFullData(w http.ResponseWriter, r *http.Request) {
	reviewID := chi.URLParam(r, "id")

	review, err := h.service.GetReviewFullData(r.Context(), reviewID)
	if err != nil {
		h.handleServiceError(w, err, "get review full data")
		return
	}

	utils.ResponseSuccess(w, "success", review)
}

// handleServiceError maps service errors to HTTP responses
func (h *ReviewHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, utils.ErrInvalidID):
		h.log.Warn(operation+" failed - invalid id", zap.Error(err))
		utils.ResponseNotFound(w, "Id format not valid")

	case errors.Is(err, utils.ErrNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, "Review not found")

	case errors.Is(err, utils.ErrMissingParameter):
		h.log.Warn(operation+" failed - missing parameter", zap.Error(err))
		utils.ResponseBadRequest(w, "Search query is required", nil)

	case errors.Is(err, utils.ErrValidation):
		h.log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
