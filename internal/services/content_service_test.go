package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/studybuckets/content-service/internal/cache"
	"github.com/studybuckets/content-service/internal/events"
	"github.com/studybuckets/content-service/internal/models"
	"github.com/studybuckets/content-service/internal/repositories"
	"github.com/studybuckets/content-service/internal/validator"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ===== MOCKS =====

type MockBucketRepository struct {
	mock.Mock
}

func (m *MockBucketRepository) Create(ctx context.Context, bucket *models.Bucket) error {
	args := m.Called(ctx, bucket)
	return args.Error(0)
}

func (m *MockBucketRepository) GetByID(ctx context.Context, id string) (*models.Bucket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bucket), args.Error(1)
}

func (m *MockBucketRepository) List(ctx context.Context, filters repositories.BucketFilters) ([]*models.Bucket, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Bucket), args.Get(1).(int64), args.Error(2)
}

func (m *MockBucketRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockQuestionSetRepository struct {
	mock.Mock
}

func (m *MockQuestionSetRepository) Create(ctx context.Context, set *models.QuestionSet) error {
	args := m.Called(ctx, set)
	return args.Error(0)
}

func (m *MockQuestionSetRepository) GetByID(ctx context.Context, id string) (*models.QuestionSet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuestionSet), args.Error(1)
}

func (m *MockQuestionSetRepository) GetByBucket(ctx context.Context, bucketID string, filters repositories.QuestionSetFilters) ([]*models.QuestionSet, int64, error) {
	args := m.Called(ctx, bucketID, filters)
	return args.Get(0).([]*models.QuestionSet), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuestionSetRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockRepository struct {
	buckets      *MockBucketRepository
	questionSets *MockQuestionSetRepository
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		buckets:      &MockBucketRepository{},
		questionSets: &MockQuestionSetRepository{},
	}
}

func (m *MockRepository) Bucket() repositories.BucketRepository           { return m.buckets }
func (m *MockRepository) QuestionSet() repositories.QuestionSetRepository { return m.questionSets }

// noopCache satisfies CacheService with a permanent miss, so service tests
// exercise the fallback paths without redis.
type noopCache struct{}

func (noopCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (noopCache) Get(ctx context.Context, key string, dest interface{}) error {
	return cache.ErrCacheMiss
}
func (noopCache) Delete(ctx context.Context, key string) error { return nil }

// ===== FIXTURES =====

const testBucketID = "0b54ce50-7a70-4f3e-a4e4-5e6c9ab23c01"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestContentService(repo *MockRepository, publisher events.EventPublisher) ContentService {
	return NewContentService(repo, noopCache{}, publisher, validator.New(), testLogger(), ContentServiceConfig{
		MaxUploadBytes:    1 << 20,
		AllowedExtensions: []string{".json", ".xlsx", ".csv"},
	})
}

func validContentJSON() string {
	return `{
		"success": true,
		"title": "Cell Biology",
		"question": "What is a cell?",
		"answer": "The basic unit of life.",
		"tips": ["Start with the organelles"],
		"correctness_percent": 92,
		"quiz": {
			"open_questions": [
				{"id": "oq-1", "question": "Define organelle.", "answer": "A specialized subunit."}
			],
			"multiple_choice_questions": [],
			"fill_in_the_blank": [],
			"flashcards": [],
			"micro_reels": []
		}
	}`
}

// ===== TESTS =====

func TestContentService_CreateQuestionSet(t *testing.T) {
	repo := NewMockRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	service := newTestContentService(repo, publisher)

	repo.buckets.On("GetByID", mock.Anything, testBucketID).
		Return(&models.Bucket{ID: testBucketID, Name: "Biology"}, nil)
	repo.questionSets.On("Create", mock.Anything, mock.AnythingOfType("*models.QuestionSet")).
		Return(nil)

	resp, err := service.CreateQuestionSet(context.Background(), &CreateQuestionSetRequest{
		BucketID: testBucketID,
		Name:     "Cell Biology",
		Raw:      validContentJSON(),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, testBucketID, resp.BucketID)
	assert.Equal(t, "What is a cell?", resp.Question)
	assert.Equal(t, 1, resp.Info.OpenQuestions)
	assert.Equal(t, 1, resp.Info.Total)
	require.NotNil(t, resp.Data)

	require.Len(t, publisher.Events, 1)
	assert.Equal(t, events.QuestionSetCreated, publisher.Events[0].Type)
	assert.Equal(t, resp.ID, publisher.Events[0].QuestionSetID)

	repo.questionSets.AssertExpectations(t)
}

func TestContentService_CreateQuestionSet_InvalidContent(t *testing.T) {
	repo := NewMockRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	service := newTestContentService(repo, publisher)

	_, err := service.CreateQuestionSet(context.Background(), &CreateQuestionSetRequest{
		BucketID: testBucketID,
		Name:     "Broken",
		Raw:      `{"success": true}`,
	})

	require.Error(t, err)
	var contentErr *ContentValidationError
	require.ErrorAs(t, err, &contentErr)
	assert.NotEmpty(t, contentErr.Errors)
	assert.ErrorIs(t, err, ErrContentInvalid)

	assert.Empty(t, publisher.Events, "invalid content must publish nothing")
	repo.questionSets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestContentService_CreateQuestionSet_BadRequest(t *testing.T) {
	service := newTestContentService(NewMockRepository(), events.NewMockEventPublisher(testLogger()))

	_, err := service.CreateQuestionSet(context.Background(), &CreateQuestionSetRequest{
		BucketID: "not-a-uuid",
		Name:     "",
		Raw:      validContentJSON(),
	})

	require.Error(t, err)
	var verrs ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestContentService_CreateQuestionSet_MissingBucket(t *testing.T) {
	repo := NewMockRepository()
	service := newTestContentService(repo, events.NewMockEventPublisher(testLogger()))

	repo.buckets.On("GetByID", mock.Anything, testBucketID).
		Return(nil, gorm.ErrRecordNotFound)

	_, err := service.CreateQuestionSet(context.Background(), &CreateQuestionSetRequest{
		BucketID: testBucketID,
		Name:     "Orphan",
		Raw:      validContentJSON(),
	})

	assert.ErrorIs(t, err, ErrBucketNotFound)
}

func TestContentService_GetQuestionSet(t *testing.T) {
	repo := NewMockRepository()
	service := newTestContentService(repo, events.NewMockEventPublisher(testLogger()))

	repo.questionSets.On("GetByID", mock.Anything, "set-1").Return(&models.QuestionSet{
		ID:       "set-1",
		BucketID: testBucketID,
		Name:     "Cell Biology",
		Data:     datatypes.JSON(validContentJSON()),
	}, nil)

	resp, err := service.GetQuestionSet(context.Background(), "set-1")

	require.NoError(t, err)
	assert.Equal(t, "set-1", resp.ID)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "Cell Biology", resp.Data.Title)
	// Info column empty: the summary is recounted from the document.
	assert.Equal(t, 1, resp.Info.Total)
}

func TestContentService_GetQuestionSet_NotFound(t *testing.T) {
	repo := NewMockRepository()
	service := newTestContentService(repo, events.NewMockEventPublisher(testLogger()))

	repo.questionSets.On("GetByID", mock.Anything, "missing").
		Return(nil, gorm.ErrRecordNotFound)

	_, err := service.GetQuestionSet(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrQuestionSetNotFound)
}

func TestContentService_DeleteQuestionSet(t *testing.T) {
	repo := NewMockRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	service := newTestContentService(repo, publisher)

	repo.questionSets.On("Delete", mock.Anything, "set-1").Return(nil)

	require.NoError(t, service.DeleteQuestionSet(context.Background(), "set-1"))

	require.Len(t, publisher.Events, 1)
	assert.Equal(t, events.QuestionSetDeleted, publisher.Events[0].Type)
}

func TestContentService_DeleteQuestionSet_NotFound(t *testing.T) {
	repo := NewMockRepository()
	service := newTestContentService(repo, events.NewMockEventPublisher(testLogger()))

	repo.questionSets.On("Delete", mock.Anything, "missing").
		Return(gorm.ErrRecordNotFound)

	err := service.DeleteQuestionSet(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrQuestionSetNotFound)
}

func TestContentService_CheckUpload(t *testing.T) {
	service := newTestContentService(NewMockRepository(), events.NewMockEventPublisher(testLogger()))

	assert.NoError(t, service.CheckUpload("quiz.json", 512))
	assert.NoError(t, service.CheckUpload("Quiz.XLSX", 512))
	assert.ErrorIs(t, service.CheckUpload("quiz.json", 0), ErrEmptyUpload)
	assert.ErrorIs(t, service.CheckUpload("quiz.json", 2<<20), ErrUploadTooLarge)
	assert.ErrorIs(t, service.CheckUpload("quiz.exe", 512), ErrUnsupportedExtension)
}

func TestContentService_ValidateContent_PassThrough(t *testing.T) {
	service := newTestContentService(NewMockRepository(), events.NewMockEventPublisher(testLogger()))

	valid := service.ValidateContent(context.Background(), validContentJSON())
	assert.True(t, valid.Valid)

	invalid := service.ValidateContent(context.Background(), `{"nope": true}`)
	assert.False(t, invalid.Valid)
	assert.NotEmpty(t, invalid.Errors)
}

func TestContentService_ListByBucket(t *testing.T) {
	repo := NewMockRepository()
	service := newTestContentService(repo, events.NewMockEventPublisher(testLogger()))

	sets := []*models.QuestionSet{
		{ID: "set-1", BucketID: testBucketID, Name: "A", Data: datatypes.JSON(validContentJSON())},
		{ID: "set-2", BucketID: testBucketID, Name: "B", Data: datatypes.JSON(validContentJSON())},
	}
	repo.questionSets.On("GetByBucket", mock.Anything, testBucketID, mock.Anything).
		Return(sets, int64(2), nil)

	responses, total, err := service.ListByBucket(context.Background(), testBucketID, repositories.QuestionSetFilters{})

	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, responses, 2)
	assert.Nil(t, responses[0].Data, "list views omit the full document")
}

func TestContentService_ListByBucket_RepoError(t *testing.T) {
	repo := NewMockRepository()
	service := newTestContentService(repo, events.NewMockEventPublisher(testLogger()))

	repo.questionSets.On("GetByBucket", mock.Anything, testBucketID, mock.Anything).
		Return([]*models.QuestionSet(nil), int64(0), errors.New("connection refused"))

	_, _, err := service.ListByBucket(context.Background(), testBucketID, repositories.QuestionSetFilters{})
	assert.Error(t, err)
}
