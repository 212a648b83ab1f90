package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-review-api/internal/data/entity"
	"movie-review-api/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const userCollection = "users"

type UserRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error)
	AppendReview(ctx context.Context, userID, reviewID primitive.ObjectID) error
}

type userRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewUserRepository(db *database.DB, log *zap.Logger) UserRepository {
	return &userRepository{
		coll: db.Collection(userCollection),
		log:  log.With(zap.String("repository", "user")),
	}
}

func (r *userRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	var user entity.User
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.Hex()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id.Hex(), err)
	}

	return &user, nil
}

// AppendReview pushes a review id onto the user's reviews list
func (r *userRepository) AppendReview(ctx context.Context, userID, reviewID primitive.ObjectID) error {
	update := bson.M{"$push": bson.M{"reviews": reviewID}}

	result, err := r.coll.UpdateByID(ctx, userID, update)
	if err != nil {
		r.log.Error("Failed to append review to user",
			zap.Error(err),
			zap.String("user_id", userID.Hex()),
			zap.String("review_id", reviewID.Hex()),
		)
		return fmt.Errorf("append review %s to user %s: %w", reviewID.Hex(), userID.Hex(), err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s not found", userID.Hex())
	}

	return nil
}
