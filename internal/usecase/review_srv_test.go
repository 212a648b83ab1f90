package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"movie-review-api/internal/data/entity"
	"movie-review-api/internal/data/repository"
	"movie-review-api/internal/dto/request"
	"movie-review-api/internal/usecase"
	"movie-review-api/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Mock Review Repository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) FindAll(ctx context.Context) ([]*entity.Review, error) {
	args := m.Called(ctx)
	return reviewsArg(args.Get(0)), args.Error(1)
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Review, error) {
	args := m.Called(ctx, id)
	return reviewArg(args.Get(0)), args.Error(1)
}

func (m *MockReviewRepository) FindTopLiked(ctx context.Context, limit int64) ([]*entity.Review, error) {
	args := m.Called(ctx, limit)
	return reviewsArg(args.Get(0)), args.Error(1)
}

func (m *MockReviewRepository) FindByMovie(ctx context.Context, movieApiID string, limit int64) ([]*entity.Review, error) {
	args := m.Called(ctx, movieApiID, limit)
	return reviewsArg(args.Get(0)), args.Error(1)
}

func (m *MockReviewRepository) FindByAuthor(ctx context.Context, author primitive.ObjectID, limit int64) ([]*entity.Review, error) {
	args := m.Called(ctx, author, limit)
	return reviewsArg(args.Get(0)), args.Error(1)
}

func (m *MockReviewRepository) Search(ctx context.Context, query string) ([]*entity.Review, error) {
	args := m.Called(ctx, query)
	return reviewsArg(args.Get(0)), args.Error(1)
}

func (m *MockReviewRepository) Replace(ctx context.Context, id primitive.ObjectID, review *entity.Review) (*entity.Review, error) {
	args := m.Called(ctx, id, review)
	return reviewArg(args.Get(0)), args.Error(1)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewRepository) IncrementLikes(ctx context.Context, id primitive.ObjectID) (*entity.Review, error) {
	args := m.Called(ctx, id)
	return reviewArg(args.Get(0)), args.Error(1)
}

func reviewArg(v any) *entity.Review {
	if v == nil {
		return nil
	}
	return v.(*entity.Review)
}

func reviewsArg(v any) []*entity.Review {
	if v == nil {
		return nil
	}
	return v.([]*entity.Review)
}

// Mock User Repository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) AppendReview(ctx context.Context, userID, reviewID primitive.ObjectID) error {
	args := m.Called(ctx, userID, reviewID)
	return args.Error(0)
}

// Mock external clients
type MockMovieFetcher struct {
	mock.Mock
}

func (m *MockMovieFetcher) FetchMovieDetails(ctx context.Context, id string) (json.RawMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

type MockUserFetcher struct {
	mock.Mock
}

func (m *MockUserFetcher) FetchUserDetails(ctx context.Context, id string) (json.RawMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

type serviceMocks struct {
	reviews *MockReviewRepository
	users   *MockUserRepository
	movies  *MockMovieFetcher
	userAPI *MockUserFetcher
}

func newReviewService(t *testing.T) (usecase.ReviewService, *serviceMocks) {
	t.Helper()

	mocks := &serviceMocks{
		reviews: new(MockReviewRepository),
		users:   new(MockUserRepository),
		movies:  new(MockMovieFetcher),
		userAPI: new(MockUserFetcher),
	}

	repo := &repository.Repository{
		Review: mocks.reviews,
		User:   mocks.users,
	}

	svc := usecase.NewReviewService(repo, mocks.movies, mocks.userAPI, zap.NewNop())
	return svc, mocks
}

func sampleReview(likes int64) *entity.Review {
	return &entity.Review{
		ID:           primitive.NewObjectID(),
		Author:       primitive.NewObjectID(),
		MovieApiID:   "123",
		Content:      "a fine movie",
		Rate:         8,
		LikesCounter: likes,
		CreatedAt:    time.Now(),
	}
}

func TestListTopLiked(t *testing.T) {
	svc, mocks := newReviewService(t)

	first := sampleReview(9)
	second := sampleReview(3)
	mocks.reviews.On("FindTopLiked", mock.Anything, int64(10)).
		Return([]*entity.Review{first, second}, nil).Once()

	result, err := svc.ListTopLiked(context.Background())

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, first.ID.Hex(), result[0].ID)
	assert.GreaterOrEqual(t, result[0].LikesCounter, result[1].LikesCounter)
	mocks.reviews.AssertExpectations(t)
}

func TestListByMovie(t *testing.T) {
	svc, mocks := newReviewService(t)

	review := sampleReview(0)
	mocks.reviews.On("FindByMovie", mock.Anything, "123", int64(10)).
		Return([]*entity.Review{review}, nil).Once()

	result, err := svc.ListByMovie(context.Background(), "123")

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "123", result[0].MovieApiID)
	mocks.reviews.AssertExpectations(t)
}

func TestListByAuthor_InvalidID(t *testing.T) {
	svc, mocks := newReviewService(t)

	_, err := svc.ListByAuthor(context.Background(), "abc")

	assert.ErrorIs(t, err, utils.ErrInvalidID)
	mocks.reviews.AssertNotCalled(t, "FindByAuthor", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetReview_InvalidID_SkipsStore(t *testing.T) {
	svc, mocks := newReviewService(t)

	_, err := svc.GetReview(context.Background(), "abc")

	assert.ErrorIs(t, err, utils.ErrInvalidID)
	mocks.reviews.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestGetReview_AbsentReturnsNil(t *testing.T) {
	svc, mocks := newReviewService(t)

	id := primitive.NewObjectID()
	mocks.reviews.On("FindByID", mock.Anything, id).Return(nil, nil).Once()

	result, err := svc.GetReview(context.Background(), id.Hex())

	require.NoError(t, err)
	assert.Nil(t, result)
	mocks.reviews.AssertExpectations(t)
}

func TestCreateReview(t *testing.T) {
	svc, mocks := newReviewService(t)

	author := primitive.NewObjectID()
	req := &request.CreateReviewRequest{
		MovieApiID: "550",
		Content:    "unexpected ending",
		Rate:       9,
	}

	mocks.users.On("FindByID", mock.Anything, author).
		Return(&entity.User{ID: author, Username: "tyler"}, nil).Once()

	mocks.reviews.On("Create", mock.Anything, mock.MatchedBy(func(r *entity.Review) bool {
		return r.Author == author && r.MovieApiID == "550" && r.LikesCounter == 0
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Review).ID = primitive.NewObjectID()
	}).Return(nil).Once()

	mocks.users.On("AppendReview", mock.Anything, author, mock.Anything).Return(nil).Once()

	result, err := svc.CreateReview(context.Background(), author.Hex(), req)

	require.NoError(t, err)
	assert.Equal(t, "550", result.MovieApiID)
	assert.Equal(t, "unexpected ending", result.Content)
	assert.Equal(t, float64(9), result.Rate)
	assert.Equal(t, int64(0), result.LikesCounter)
	mocks.reviews.AssertExpectations(t)
	mocks.users.AssertExpectations(t)
}

func TestCreateReview_ValidationFailure(t *testing.T) {
	svc, mocks := newReviewService(t)

	req := &request.CreateReviewRequest{
		MovieApiID: "",
		Content:    "",
		Rate:       3,
	}

	_, err := svc.CreateReview(context.Background(), primitive.NewObjectID().Hex(), req)

	assert.ErrorIs(t, err, utils.ErrValidation)
	mocks.reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReview_UnknownAuthor(t *testing.T) {
	svc, mocks := newReviewService(t)

	author := primitive.NewObjectID()
	req := &request.CreateReviewRequest{
		MovieApiID: "550",
		Content:    "fine",
		Rate:       7,
	}

	mocks.users.On("FindByID", mock.Anything, author).Return(nil, nil).Once()

	_, err := svc.CreateReview(context.Background(), author.Hex(), req)

	assert.ErrorIs(t, err, utils.ErrNotFound)
	mocks.reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReview_AppendFailureKeepsReview(t *testing.T) {
	svc, mocks := newReviewService(t)

	author := primitive.NewObjectID()
	req := &request.CreateReviewRequest{
		MovieApiID: "550",
		Content:    "fine",
		Rate:       7,
	}

	mocks.users.On("FindByID", mock.Anything, author).
		Return(&entity.User{ID: author}, nil).Once()
	mocks.reviews.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	mocks.users.On("AppendReview", mock.Anything, author, mock.Anything).
		Return(errors.New("users collection unavailable")).Once()

	_, err := svc.CreateReview(context.Background(), author.Hex(), req)

	// The insert happened, the error from the second write still surfaces
	assert.Error(t, err)
	mocks.reviews.AssertExpectations(t)
	mocks.users.AssertExpectations(t)
}

func TestEditReview_NotFound(t *testing.T) {
	svc, mocks := newReviewService(t)

	id := primitive.NewObjectID()
	req := &request.EditReviewRequest{
		MovieApiID:   "550",
		Content:      "edited",
		Rate:         5,
		LikesCounter: 2,
	}

	mocks.reviews.On("Replace", mock.Anything, id, mock.Anything).Return(nil, nil).Once()

	_, err := svc.EditReview(context.Background(), id.Hex(), req)

	assert.ErrorIs(t, err, utils.ErrNotFound)
	mocks.reviews.AssertExpectations(t)
}

func TestEditReview_Overwrite(t *testing.T) {
	svc, mocks := newReviewService(t)

	existing := sampleReview(4)
	req := &request.EditReviewRequest{
		MovieApiID:   "999",
		Content:      "changed my mind",
		Rate:         2,
		LikesCounter: 4,
	}

	updated := *existing
	updated.MovieApiID = req.MovieApiID
	updated.Content = req.Content
	updated.Rate = req.Rate

	mocks.reviews.On("Replace", mock.Anything, existing.ID, mock.MatchedBy(func(r *entity.Review) bool {
		return r.MovieApiID == "999" && r.Content == "changed my mind" && r.LikesCounter == 4
	})).Return(&updated, nil).Once()

	result, err := svc.EditReview(context.Background(), existing.ID.Hex(), req)

	require.NoError(t, err)
	assert.Equal(t, "999", result.MovieApiID)
	assert.Equal(t, float64(2), result.Rate)
	mocks.reviews.AssertExpectations(t)
}

func TestDeleteReview_AbsentStillSucceeds(t *testing.T) {
	svc, mocks := newReviewService(t)

	id := primitive.NewObjectID()
	mocks.reviews.On("Delete", mock.Anything, id).Return(nil).Once()

	err := svc.DeleteReview(context.Background(), id.Hex())

	assert.NoError(t, err)
	mocks.reviews.AssertExpectations(t)
}

func TestDeleteReview_InvalidID(t *testing.T) {
	svc, mocks := newReviewService(t)

	err := svc.DeleteReview(context.Background(), "not-an-id")

	assert.ErrorIs(t, err, utils.ErrInvalidID)
	mocks.reviews.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestSearchReviews_EmptyQuery(t *testing.T) {
	svc, mocks := newReviewService(t)

	_, err := svc.SearchReviews(context.Background(), "  ")

	assert.ErrorIs(t, err, utils.ErrMissingParameter)
	mocks.reviews.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestSearchReviews(t *testing.T) {
	svc, mocks := newReviewService(t)

	review := sampleReview(0)
	mocks.reviews.On("Search", mock.Anything, "fine").
		Return([]*entity.Review{review}, nil).Once()

	result, err := svc.SearchReviews(context.Background(), "fine")

	require.NoError(t, err)
	require.Len(t, result, 1)
	mocks.reviews.AssertExpectations(t)
}

func TestLikeReview_Increments(t *testing.T) {
	svc, mocks := newReviewService(t)

	review := sampleReview(4)
	liked := *review
	liked.LikesCounter = 5

	mocks.reviews.On("IncrementLikes", mock.Anything, review.ID).Return(&liked, nil).Once()

	result, err := svc.LikeReview(context.Background(), review.ID.Hex())

	require.NoError(t, err)
	assert.Equal(t, review.LikesCounter+1, result.LikesCounter)
	mocks.reviews.AssertExpectations(t)
}

func TestLikeReview_NotFound(t *testing.T) {
	svc, mocks := newReviewService(t)

	id := primitive.NewObjectID()
	mocks.reviews.On("IncrementLikes", mock.Anything, id).Return(nil, nil).Once()

	_, err := svc.LikeReview(context.Background(), id.Hex())

	assert.ErrorIs(t, err, utils.ErrNotFound)
	mocks.reviews.AssertExpectations(t)
}

func TestGetReviewFullData(t *testing.T) {
	svc, mocks := newReviewService(t)

	review := sampleReview(7)
	movieData := json.RawMessage(`{"title":"Fight Club"}`)
	authorData := json.RawMessage(`{"username":"tyler"}`)

	mocks.reviews.On("FindByID", mock.Anything, review.ID).Return(review, nil).Once()
	mocks.movies.On("FetchMovieDetails", mock.Anything, review.MovieApiID).Return(movieData, nil).Once()
	mocks.userAPI.On("FetchUserDetails", mock.Anything, review.Author.Hex()).Return(authorData, nil).Once()

	result, err := svc.GetReviewFullData(context.Background(), review.ID.Hex())

	require.NoError(t, err)
	assert.Equal(t, review.ID.Hex(), result.ID)
	assert.Equal(t, review.Content, result.Content)
	assert.JSONEq(t, string(movieData), string(result.MovieApiID))
	assert.JSONEq(t, string(authorData), string(result.Author))
	mocks.reviews.AssertExpectations(t)
	mocks.movies.AssertExpectations(t)
	mocks.userAPI.AssertExpectations(t)
}

func TestGetReviewFullData_MovieFetchFailure(t *testing.T) {
	svc, mocks := newReviewService(t)

	review := sampleReview(7)

	mocks.reviews.On("FindByID", mock.Anything, review.ID).Return(review, nil).Once()
	mocks.movies.On("FetchMovieDetails", mock.Anything, review.MovieApiID).
		Return(nil, errors.New("tmdb unavailable")).Once()
	mocks.userAPI.On("FetchUserDetails", mock.Anything, review.Author.Hex()).
		Return(json.RawMessage(`{"username":"tyler"}`), nil).Maybe()

	result, err := svc.GetReviewFullData(context.Background(), review.ID.Hex())

	// No partial result when either downstream fetch fails
	assert.Error(t, err)
	assert.Nil(t, result)
	mocks.reviews.AssertExpectations(t)
	mocks.movies.AssertExpectations(t)
}

func TestGetReviewFullData_ReviewAbsent(t *testing.T) {
	svc, mocks := newReviewService(t)

	id := primitive.NewObjectID()
	mocks.reviews.On("FindByID", mock.Anything, id).Return(nil, nil).Once()

	_, err := svc.GetReviewFullData(context.Background(), id.Hex())

	assert.ErrorIs(t, err, utils.ErrNotFound)
	mocks.movies.AssertNotCalled(t, "FetchMovieDetails", mock.Anything, mock.Anything)
	mocks.userAPI.AssertNotCalled(t, "FetchUserDetails", mock.Anything, mock.Anything)
}
