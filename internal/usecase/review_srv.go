package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"movie-review-api/internal/data/entity"
	"movie-review-api/internal/data/repository"
	"movie-review-api/internal/dto/request"
	"movie-review-api/internal/dto/response"
	"movie-review-api/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// listLimit caps the top-liked, by-movie and by-author listings
const listLimit = 10

type ReviewService interface {
	ListReviews(ctx context.Context) ([]response.ReviewResponse, error)
	ListTopLiked(ctx context.Context) ([]response.ReviewResponse, error)
	ListByMovie(ctx context.Context, movieApiID string) ([]response.ReviewResponse, error)
	ListByAuthor(ctx context.Context, authorID string) ([]response.ReviewResponse, error)
	GetReview(ctx context.Context, id string) (*response.ReviewResponse, error)
	CreateReview(ctx context.Context, authorID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	EditReview(ctx context.Context, id string, req *request.EditReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, id string) error
	SearchReviews(ctx context.Context, query string) ([]response.ReviewResponse, error)
	LikeReview(ctx context.Context, id string) (*response.ReviewResponse, error)
	GetReviewFullData(ctx context.Context, id string) (*response.FullReviewResponse, error)
}

// MovieDetailsFetcher is the slice of the metadata client the review
// service needs for the full-data aggregation.
type MovieDetailsFetcher interface {
	FetchMovieDetails(ctx context.Context, id string) (json.RawMessage, error)
}

// UserDetailsFetcher looks up author profiles on the peer Users service.
type UserDetailsFetcher interface {
	FetchUserDetails(ctx context.Context, id string) (json.RawMessage, error)
}

type reviewService struct {
	repo   *repository.Repository
	movies MovieDetailsFetcher
	users  UserDetailsFetcher
	log    *zap.Logger
}

func NewReviewService(repo *repository.Repository, movies MovieDetailsFetcher, users UserDetailsFetcher, log *zap.Logger) ReviewService {
	return &reviewService{
		repo:   repo,
		movies: movies,
		users:  users,
		log:    log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) ListReviews(ctx context.Context) ([]response.ReviewResponse, error) {
	reviews, err := s.repo.Review.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list reviews", zap.Error(err))
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	return response.ReviewsToResponse(reviews), nil
}

func (s *reviewService) ListTopLiked(ctx context.Context) ([]response.ReviewResponse, error) {
	reviews, err := s.repo.Review.FindTopLiked(ctx, listLimit)
	if err != nil {
		s.log.Error("Failed to list top liked reviews", zap.Error(err))
		return nil, fmt.Errorf("list top liked reviews: %w", err)
	}

	return response.ReviewsToResponse(reviews), nil
}

func (s *reviewService) ListByMovie(ctx context.Context, movieApiID string) ([]response.ReviewResponse, error) {
	reviews, err := s.repo.Review.FindByMovie(ctx, movieApiID, listLimit)
	if err != nil {
		s.log.Error("Failed to list reviews by movie",
			zap.Error(err),
			zap.String("movie_api_id", movieApiID),
		)
		return nil, fmt.Errorf("list reviews by movie %s: %w", movieApiID, err)
	}

	return response.ReviewsToResponse(reviews), nil
}

func (s *reviewService) ListByAuthor(ctx context.Context, authorID string) ([]response.ReviewResponse, error) {
	author, err := parseObjectID(authorID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindByAuthor(ctx, author, listLimit)
	if err != nil {
		s.log.Error("Failed to list reviews by author",
			zap.Error(err),
			zap.String("author", authorID),
		)
		return nil, fmt.Errorf("list reviews by author %s: %w", authorID, err)
	}

	return response.ReviewsToResponse(reviews), nil
}

// GetReview returns (nil, nil) when no review has the given id
func (s *reviewService) GetReview(ctx context.Context, id string) (*response.ReviewResponse, error) {
	reviewID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	review, err := s.repo.Review.FindByID(ctx, reviewID)
	if err != nil {
		s.log.Error("Failed to get review",
			zap.Error(err),
			zap.String("review_id", id),
		)
		return nil, fmt.Errorf("get review %s: %w", id, err)
	}

	if review == nil {
		return nil, nil
	}

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

// CreateReview inserts the review, then appends its id to the author's
// reviews list. The two writes are not transactional: a failed append leaves
// the review in place and surfaces the error.
func (s *reviewService) CreateReview(ctx context.Context, authorID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", utils.ErrValidation, utils.FormatValidationErrors(errs))
	}

	author, err := parseObjectID(authorID)
	if err != nil {
		return nil, err
	}

	// The author must exist before the review is written
	user, err := s.repo.User.FindByID(ctx, author)
	if err != nil {
		return nil, fmt.Errorf("check author %s: %w", authorID, err)
	}
	if user == nil {
		return nil, fmt.Errorf("author %s: %w", authorID, utils.ErrNotFound)
	}

	review := &entity.Review{
		Author:       author,
		MovieApiID:   req.MovieApiID,
		Content:      strings.TrimSpace(req.Content),
		Rate:         req.Rate,
		LikesCounter: 0,
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("author", authorID),
			zap.String("movie_api_id", req.MovieApiID),
		)
		return nil, fmt.Errorf("create review: %w", err)
	}

	if err := s.repo.User.AppendReview(ctx, author, review.ID); err != nil {
		// The review already exists at this point; there is no rollback
		s.log.Error("Failed to append review to author, review kept",
			zap.Error(err),
			zap.String("review_id", review.ID.Hex()),
			zap.String("author", authorID),
		)
		return nil, fmt.Errorf("append review to author %s: %w", authorID, err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.Hex()),
		zap.String("author", authorID),
		zap.String("movie_api_id", req.MovieApiID),
		zap.Float64("rate", req.Rate),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) EditReview(ctx context.Context, id string, req *request.EditReviewRequest) (*response.ReviewResponse, error) {
	reviewID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Edit review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", utils.ErrValidation, utils.FormatValidationErrors(errs))
	}

	updated, err := s.repo.Review.Replace(ctx, reviewID, &entity.Review{
		MovieApiID:   req.MovieApiID,
		Content:      strings.TrimSpace(req.Content),
		Rate:         req.Rate,
		LikesCounter: req.LikesCounter,
	})
	if err != nil {
		s.log.Error("Failed to edit review",
			zap.Error(err),
			zap.String("review_id", id),
		)
		return nil, fmt.Errorf("edit review %s: %w", id, err)
	}

	if updated == nil {
		return nil, fmt.Errorf("review %s: %w", id, utils.ErrNotFound)
	}

	s.log.Info("Review updated", zap.String("review_id", id))

	resp := response.ReviewToResponse(updated)
	return &resp, nil
}

// DeleteReview succeeds even when the review does not exist
func (s *reviewService) DeleteReview(ctx context.Context, id string) error {
	reviewID, err := parseObjectID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Review.Delete(ctx, reviewID); err != nil {
		s.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", id),
		)
		return fmt.Errorf("delete review %s: %w", id, err)
	}

	s.log.Info("Review deleted", zap.String("review_id", id))
	return nil
}

func (s *reviewService) SearchReviews(ctx context.Context, query string) ([]response.ReviewResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query", utils.ErrMissingParameter)
	}

	reviews, err := s.repo.Review.Search(ctx, query)
	if err != nil {
		s.log.Error("Failed to search reviews",
			zap.Error(err),
			zap.String("query", query),
		)
		return nil, fmt.Errorf("search reviews for %q: %w", query, err)
	}

	return response.ReviewsToResponse(reviews), nil
}

func (s *reviewService) LikeReview(ctx context.Context, id string) (*response.ReviewResponse, error) {
	reviewID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Review.IncrementLikes(ctx, reviewID)
	if err != nil {
		s.log.Error("Failed to like review",
			zap.Error(err),
			zap.String("review_id", id),
		)
		return nil, fmt.Errorf("like review %s: %w", id, err)
	}

	if updated == nil {
		return nil, fmt.Errorf("review %s: %w", id, utils.ErrNotFound)
	}

	resp := response.ReviewToResponse(updated)
	return &resp, nil
}

// GetReviewFullData joins a review with author data from the Users service
// and movie data from the metadata API. Both lookups run concurrently; any
// failure fails the whole call, no partial result is returned.
func (s *reviewService) GetReviewFullData(ctx context.Context, id string) (*response.FullReviewResponse, error) {
	reviewID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	review, err := s.repo.Review.FindByID(ctx, reviewID)
	if err != nil {
		s.log.Error("Failed to get review for full data",
			zap.Error(err),
			zap.String("review_id", id),
		)
		return nil, fmt.Errorf("get review %s: %w", id, err)
	}

	if review == nil {
		return nil, fmt.Errorf("review %s: %w", id, utils.ErrNotFound)
	}

	var (
		movieData  json.RawMessage
		authorData json.RawMessage
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		movieData, err = s.movies.FetchMovieDetails(gctx, review.MovieApiID)
		return err
	})

	g.Go(func() error {
		var err error
		authorData, err = s.users.FetchUserDetails(gctx, review.Author.Hex())
		return err
	})

	if err := g.Wait(); err != nil {
		s.log.Error("Failed to fetch review full data",
			zap.Error(err),
			zap.String("review_id", id),
		)
		return nil, fmt.Errorf("fetch full data for review %s: %w", id, err)
	}

	return &response.FullReviewResponse{
		ID:           review.ID.Hex(),
		Content:      review.Content,
		Rate:         review.Rate,
		LikesCounter: review.LikesCounter,
		CreatedAt:    review.CreatedAt,
		Author:       authorData,
		MovieApiID:   movieData,
	}, nil
}

// parseObjectID validates a document identifier before any store access
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %s", utils.ErrInvalidID, id)
	}
	return oid, nil
}
