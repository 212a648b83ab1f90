package wire

import (
	"movie-review-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler) {
	// All metadata endpoints are public pass-throughs
	r.Get("/api/movies/popular", movieHandler.GetPopularMovies)
	r.Get("/api/movies/now-playing", movieHandler.GetNowPlayingMovies)
	r.Get("/api/movies/top-rated", movieHandler.GetTopRatedMovies)
	r.Get("/api/movies/upcoming", movieHandler.GetUpcomingMovies)
	r.Get("/api/movies/search", movieHandler.SearchMovies)
	r.Get("/api/movies/{id}", movieHandler.GetMovieByID)
	r.Get("/api/persons/search", movieHandler.SearchPeople)
	r.Get("/api/persons/{id}", movieHandler.GetPersonByID)
}
