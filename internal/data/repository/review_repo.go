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
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const reviewCollection = "reviews"

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindAll(ctx context.Context) ([]*entity.Review, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Review, error)
	FindTopLiked(ctx context.Context, limit int64) ([]*entity.Review, error)
	FindByMovie(ctx context.Context, movieApiID string, limit int64) ([]*entity.Review, error)
	FindByAuthor(ctx context.Context, author primitive.ObjectID, limit int64) ([]*entity.Review, error)
	Search(ctx context.Context, query string) ([]*entity.Review, error)
	Replace(ctx context.Context, id primitive.ObjectID, review *entity.Review) (*entity.Review, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	IncrementLikes(ctx context.Context, id primitive.ObjectID) (*entity.Review, error)
}

type reviewRepository struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewReviewRepository(db *database.DB, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		coll: db.Collection(reviewCollection),
		log:  log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	result, err := r.coll.InsertOne(ctx, review)
	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("author", review.Author.Hex()),
			zap.String("movie_api_id", review.MovieApiID),
		)
		return fmt.Errorf("create review for movie %s by author %s: %w",
			review.MovieApiID, review.Author.Hex(), err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		review.ID = oid
	}

	return nil
}

func (r *reviewRepository) FindAll(ctx context.Context) ([]*entity.Review, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		r.log.Error("Failed to find reviews", zap.Error(err))
		return nil, fmt.Errorf("find reviews: %w", err)
	}

	return decodeReviews(ctx, cursor)
}

func (r *reviewRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Review, error) {
	var review entity.Review
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&review)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.String("review_id", id.Hex()),
		)
		return nil, fmt.Errorf("find review by ID %s: %w", id.Hex(), err)
	}

	return &review, nil
}

func (r *reviewRepository) FindTopLiked(ctx context.Context, limit int64) ([]*entity.Review, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "likesCounter", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		r.log.Error("Failed to find top liked reviews", zap.Error(err))
		return nil, fmt.Errorf("find top liked reviews: %w", err)
	}

	return decodeReviews(ctx, cursor)
}

func (r *reviewRepository) FindByMovie(ctx context.Context, movieApiID string, limit int64) ([]*entity.Review, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "rate", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{"movieApiId": movieApiID}, opts)
	if err != nil {
		r.log.Error("Failed to find reviews by movie",
			zap.Error(err),
			zap.String("movie_api_id", movieApiID),
		)
		return nil, fmt.Errorf("find reviews by movie %s: %w", movieApiID, err)
	}

	return decodeReviews(ctx, cursor)
}

func (r *reviewRepository) FindByAuthor(ctx context.Context, author primitive.ObjectID, limit int64) ([]*entity.Review, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "rate", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{"author": author}, opts)
	if err != nil {
		r.log.Error("Failed to find reviews by author",
			zap.Error(err),
			zap.String("author", author.Hex()),
		)
		return nil, fmt.Errorf("find reviews by author %s: %w", author.Hex(), err)
	}

	return decodeReviews(ctx, cursor)
}

func (r *reviewRepository) Search(ctx context.Context, query string) ([]*entity.Review, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"movieApiId": bson.M{"$regex": query, "$options": "i"}},
			bson.M{"content": bson.M{"$regex": query, "$options": "i"}},
		},
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		r.log.Error("Failed to search reviews",
			zap.Error(err),
			zap.String("query", query),
		)
		return nil, fmt.Errorf("search reviews for %q: %w", query, err)
	}

	return decodeReviews(ctx, cursor)
}

// Replace overwrites all mutable fields of a review and returns the updated
// document, or (nil, nil) when no review has that id.
func (r *reviewRepository) Replace(ctx context.Context, id primitive.ObjectID, review *entity.Review) (*entity.Review, error) {
	update := bson.M{
		"$set": bson.M{
			"movieApiId":   review.MovieApiID,
			"content":      review.Content,
			"rate":         review.Rate,
			"likesCounter": review.LikesCounter,
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated entity.Review
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to replace review",
			zap.Error(err),
			zap.String("review_id", id.Hex()),
		)
		return nil, fmt.Errorf("replace review %s: %w", id.Hex(), err)
	}

	return &updated, nil
}

// Delete removes a review. Deleting an id that does not exist is not an error.
func (r *reviewRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", id.Hex()),
		)
		return fmt.Errorf("delete review %s: %w", id.Hex(), err)
	}

	return nil
}

// IncrementLikes atomically bumps likesCounter by one and returns the updated
// document, or (nil, nil) when no review has that id. The single-document
// $inc keeps concurrent likes from losing updates.
func (r *reviewRepository) IncrementLikes(ctx context.Context, id primitive.ObjectID) (*entity.Review, error) {
	update := bson.M{"$inc": bson.M{"likesCounter": 1}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated entity.Review
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to increment review likes",
			zap.Error(err),
			zap.String("review_id", id.Hex()),
		)
		return nil, fmt.Errorf("increment likes for review %s: %w", id.Hex(), err)
	}

	return &updated, nil
}

func decodeReviews(ctx context.Context, cursor *mongo.Cursor) ([]*entity.Review, error) {
	defer cursor.Close(ctx)

	var reviews []*entity.Review
	for cursor.Next(ctx) {
		var review entity.Review
		if err := cursor.Decode(&review); err != nil {
			return nil, fmt.Errorf("decode review document: %w", err)
		}
		reviews = append(reviews, &review)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate review documents: %w", err)
	}

	return reviews, nil
}
