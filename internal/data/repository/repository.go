package repository

import (
	"movie-review-api/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Review ReviewRepository
	User   UserRepository
}

func NewRepository(db *database.DB, log *zap.Logger) *Repository {
	return &Repository{
		Review: NewReviewRepository(db, log),
		User:   NewUserRepository(db, log),
	}
}
