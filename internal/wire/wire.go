package wire

import (
	"net/http"

	"movie-review-api/internal/adaptor"
	"movie-review-api/internal/data/repository"
	"movie-review-api/internal/usecase"
	"movie-review-api/pkg/middleware"
	"movie-review-api/pkg/tmdb"
	"movie-review-api/pkg/usersapi"
	"movie-review-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired application
type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies. The metadata client is constructed
// once here and injected, never reached through package globals.
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	metadata := tmdb.NewClient(config.TMDB.BaseURL, config.TMDB.Token, logger)
	users := usersapi.NewClient(config.UsersAPI.BaseURL, logger)

	service := usecase.NewService(repo, metadata, users, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the chi router
func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireReview(r, handler.Review, config, logger)
	wireMovie(r, handler.Movie)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
