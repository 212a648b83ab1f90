package adaptor

import (
	"errors"
	"net/http"

	"movie-review-api/internal/usecase"
	"movie-review-api/pkg/tmdb"
	"movie-review-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// listParams parses the shared page/language/region query parameters
func (h *MovieHandler) listParams(r *http.Request) usecase.ListMoviesParams {
	query := r.URL.Query()
	return usecase.ListMoviesParams{
		Page:     utils.ParseInt(query.Get("page"), tmdb.DefaultPage),
		Language: utils.StringOrDefault(query.Get("language"), tmdb.DefaultLanguage),
		Region:   utils.StringOrDefault(query.Get("region"), tmdb.DefaultRegion),
	}
}

// GetPopularMovies handles GET /api/movies/popular (public)
func (h *MovieHandler) GetPopularMovies(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.GetPopularMovies(r.Context(), h.listParams(r))
	if err != nil {
		h.handleServiceError(w, err, "get popular movies")
		return
	}

	utils.ResponseSuccess(w, "success", data)
}

// GetNowPlayingMovies handles GET /api/movies/now-playing (public)
func (h *MovieHandler) GetNowPlayingMovies(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.GetNowPlayingMovies(r.Context(), h.listParams(r))
	if err != nil {
		h.handleServiceError(w, err, "get now playing movies")
		return
	}

	utils.ResponseSuccess(w, "success", data)
}

// GetTopRatedMovies handles GET /api/movies/top-rated (public)
func (h *MovieHandler) GetTopRatedMovies(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.GetTopRatedMovies(r.Context(), h.listParams(r))
	if err != nil {
		h.handleServiceError(w, err, "get top rated movies")
		return
	}

	utils.ResponseSuccess(w, "success", data)
}

// GetUpcomingMovies handles GET /api/movies/upcoming (public)
func (h *MovieHandler) GetUpcomingMovies(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.GetUpcomingMovies(r.Context(), h.listParams(r))
	if err != nil {
		h.handleServiceError(w, err, "get upcoming movies")
		return
	}

	utils.ResponseSuccess(w, "success", data)
}

// SearchMovies handles GET /api/movies/search?query= (public).
// The request context carries cancellation through to the metadata API call.
func (h *MovieHandler) SearchMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	data, err := h.service.SearchMovies(r.Context(), query)
	if err != nil {
		h.handleServiceError(w, err, "search movies")
		return
	}

	utils.ResponseSuccess(w, "success", data)
}

// GetMovieByID handles GET /api/movies/{id} (public)
func (h *MovieHandler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")
	if movieID == "" {
		utils.ResponseBadRequest(w, "Movie ID is required", nil)
		return
	}

	data, err := h.service.GetMovieDetails(r.Context(), movieID)
	if err != nil {
		h.handleServiceError(w, err, "get movie details")
		return
	}

	utils.ResponseSuccess(w, "success", data)
}

// SearchPeople handles GET /api/persons/search?query= (public)
func (h *MovieHandler) SearchPeople(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	data, err := h.service.SearchPeople(r.Context(), query)
	if err != nil {
		h.handleServiceError(w, err, "search people")
		return
	}

	utils.ResponseSuccess(w, "success", data)
}

// GetPersonByID handles GET /api/persons/{id} (public)
func (h *MovieHandler) GetPersonByID(w http.ResponseWriter, r *http.Request) {
	personID := chi.URLParam(r, "id")
	if personID == "" {
		utils.ResponseBadRequest(w, "Person ID is required", nil)
		return
	}

	data, err := h.service.GetPersonDetails(r.Context(), personID)
	if err != nil {
		h.handleServiceError(w, err, "get person details")
		return
	}

	utils.ResponseSuccess(w, "success", data)
}

// handleServiceError maps service errors to HTTP responses
func (h *MovieHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, utils.ErrMissingParameter):
		h.log.Warn(operation+" failed - missing parameter", zap.Error(err))
		utils.ResponseBadRequest(w, "Search query is required", nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
