package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"movie-review-api/pkg/utils"

	"go.uber.org/zap"
)

// MetadataClient is the full contract of the external movie-metadata API
type MetadataClient interface {
	FetchPersonDetails(ctx context.Context, id string) (json.RawMessage, error)
	FetchMovieDetails(ctx context.Context, id string) (json.RawMessage, error)
	FetchPopularMovies(ctx context.Context, page int, language, region string) (json.RawMessage, error)
	FetchNowPlayingMovies(ctx context.Context, page int, language, region string) (json.RawMessage, error)
	FetchTopRatedMovies(ctx context.Context, page int, language, region string) (json.RawMessage, error)
	FetchUpcomingMovies(ctx context.Context, page int, language, region string) (json.RawMessage, error)
	SearchMovies(ctx context.Context, query string) (json.RawMessage, error)
	SearchPeople(ctx context.Context, query string) (json.RawMessage, error)
}

// ListMoviesParams carries the canonical paging parameters of the metadata API
type ListMoviesParams struct {
	Page     int
	Language string
	Region   string
}

type MovieService interface {
	GetPopularMovies(ctx context.Context, params ListMoviesParams) (json.RawMessage, error)
	GetNowPlayingMovies(ctx context.Context, params ListMoviesParams) (json.RawMessage, error)
	GetTopRatedMovies(ctx context.Context, params ListMoviesParams) (json.RawMessage, error)
	GetUpcomingMovies(ctx context.Context, params ListMoviesParams) (json.RawMessage, error)
	GetMovieDetails(ctx context.Context, id string) (json.RawMessage, error)
	GetPersonDetails(ctx context.Context, id string) (json.RawMessage, error)
	SearchMovies(ctx context.Context, query string) (json.RawMessage, error)
	SearchPeople(ctx context.Context, query string) (json.RawMessage, error)
}

type movieService struct {
	metadata MetadataClient
	log      *zap.Logger
}

func NewMovieService(metadata MetadataClient, log *zap.Logger) MovieService {
	return &movieService{
		metadata: metadata,
		log:      log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetPopularMovies(ctx context.Context, params ListMoviesParams) (json.RawMessage, error) {
	data, err := s.metadata.FetchPopularMovies(ctx, params.Page, params.Language, params.Region)
	if err != nil {
		s.log.Error("Failed to fetch popular movies", zap.Error(err), zap.Int("page", params.Page))
		return nil, fmt.Errorf("fetch popular movies: %w", err)
	}
	return data, nil
}

func (s *movieService) GetNowPlayingMovies(ctx context.Context, params ListMoviesParams) (json.RawMessage, error) {
	data, err := s.metadata.FetchNowPlayingMovies(ctx, params.Page, params.Language, params.Region)
	if err != nil {
		s.log.Error("Failed to fetch now playing movies", zap.Error(err), zap.Int("page", params.Page))
		return nil, fmt.Errorf("fetch now playing movies: %w", err)
	}
	return data, nil
}

func (s *movieService) GetTopRatedMovies(ctx context.Context, params ListMoviesParams) (json.RawMessage, error) {
	data, err := s.metadata.FetchTopRatedMovies(ctx, params.Page, params.Language, params.Region)
	if err != nil {
		s.log.Error("Failed to fetch top rated movies", zap.Error(err), zap.Int("page", params.Page))
		return nil, fmt.Errorf("fetch top rated movies: %w", err)
	}
	return data, nil
}

func (s *movieService) GetUpcomingMovies(ctx context.Context, params ListMoviesParams) (json.RawMessage, error) {
	data, err := s.metadata.FetchUpcomingMovies(ctx, params.Page, params.Language, params.Region)
	if err != nil {
		s.log.Error("Failed to fetch upcoming movies", zap.Error(err), zap.Int("page", params.Page))
		return nil, fmt.Errorf("fetch upcoming movies: %w", err)
	}
	return data, nil
}

func (s *movieService) GetMovieDetails(ctx context.Context, id string) (json.RawMessage, error) {
	data, err := s.metadata.FetchMovieDetails(ctx, id)
	if err != nil {
		s.log.Error("Failed to fetch movie details", zap.Error(err), zap.String("movie_api_id", id))
		return nil, fmt.Errorf("fetch movie details %s: %w", id, err)
	}
	return data, nil
}

func (s *movieService) GetPersonDetails(ctx context.Context, id string) (json.RawMessage, error) {
	data, err := s.metadata.FetchPersonDetails(ctx, id)
	if err != nil {
		s.log.Error("Failed to fetch person details", zap.Error(err), zap.String("person_id", id))
		return nil, fmt.Errorf("fetch person details %s: %w", id, err)
	}
	return data, nil
}

func (s *movieService) SearchMovies(ctx context.Context, query string) (json.RawMessage, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query", utils.ErrMissingParameter)
	}

	data, err := s.metadata.SearchMovies(ctx, query)
	if err != nil {
		s.log.Error("Failed to search movies", zap.Error(err), zap.String("query", query))
		return nil, fmt.Errorf("search movies for %q: %w", query, err)
	}
	return data, nil
}

func (s *movieService) SearchPeople(ctx context.Context, query string) (json.RawMessage, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query", utils.ErrMissingParameter)
	}

	data, err := s.metadata.SearchPeople(ctx, query)
	if err != nil {
		s.log.Error("Failed to search people", zap.Error(err), zap.String("query", query))
		return nil, fmt.Errorf("search people for %q: %w", query, err)
	}
	return data, nil
}
