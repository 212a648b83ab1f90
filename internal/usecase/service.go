package usecase

import (
	"movie-review-api/internal/data/repository"

	"go.uber.org/zap"
)

type Service struct {
	Review ReviewService
	Movie  MovieService
}

func NewService(repo *repository.Repository, metadata MetadataClient, users UserDetailsFetcher, log *zap.Logger) *Service {
	return &Service{
		Review: NewReviewService(repo, metadata, users, log),
		Movie:  NewMovieService(metadata, log),
	}
}
