package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/studybuckets/content-service/internal/cache"
	"github.com/studybuckets/content-service/internal/events"
	"github.com/studybuckets/content-service/internal/models"
	"github.com/studybuckets/content-service/internal/repositories"
	"github.com/studybuckets/content-service/internal/validator"
)

// ContentService covers the write side of question sets: validating raw
// payloads and turning validated documents into stored records.
type ContentService interface {
	// ValidateContent runs a raw file or pasted-text payload through the
	// envelope schema without persisting anything.
	ValidateContent(ctx context.Context, raw any) validator.Result

	// ValidateLegacyBundle validates a standalone pre-envelope bundle.
	ValidateLegacyBundle(ctx context.Context, raw any) validator.LegacyResult

	// CheckUpload enforces the ingestion limits on an uploaded file before
	// its contents are read.
	CheckUpload(filename string, size int64) error

	CreateQuestionSet(ctx context.Context, req *CreateQuestionSetRequest) (*QuestionSetResponse, error)
	GetQuestionSet(ctx context.Context, id string) (*QuestionSetResponse, error)
	ListByBucket(ctx context.Context, bucketID string, filters repositories.QuestionSetFilters) ([]*QuestionSetResponse, int64, error)
	DeleteQuestionSet(ctx context.Context, id string) error
}

// CreateQuestionSetRequest carries an already validated document into
// persistence; Raw may be supplied instead, in which case validation runs
// here.
type CreateQuestionSetRequest struct {
	BucketID string `json:"bucket_id" validate:"required,uuid4"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Raw      any    `json:"raw,omitempty"`

	Document *models.LearningContentDocument `json:"document,omitempty"`
}

// QuestionSetResponse is the read-side view of a stored question set.
type QuestionSetResponse struct {
	ID        string                          `json:"id"`
	BucketID  string                          `json:"bucket_id"`
	Name      string                          `json:"name"`
	Question  string                          `json:"question"`
	Answer    string                          `json:"answer"`
	Info      models.QuestionInfo             `json:"info"`
	Data      *models.LearningContentDocument `json:"data,omitempty"`
	Warnings  []string                        `json:"warnings,omitempty"`
	CreatedAt time.Time                       `json:"created_at"`
}

type contentService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	publisher events.EventPublisher
	validator *validator.Validator
	logger    *slog.Logger

	maxUploadBytes    int64
	allowedExtensions map[string]bool
}

type ContentServiceConfig struct {
	MaxUploadBytes    int64
	AllowedExtensions []string
}

func NewContentService(
	repo repositories.Repository,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	v *validator.Validator,
	logger *slog.Logger,
	cfg ContentServiceConfig,
) ContentService {
	allowed := make(map[string]bool, len(cfg.AllowedExtensions))
	for _, ext := range cfg.AllowedExtensions {
		allowed[strings.ToLower(strings.TrimSpace(ext))] = true
	}
	return &contentService{
		repo:              repo,
		cache:             cacheService,
		publisher:         publisher,
		validator:         v,
		logger:            logger,
		maxUploadBytes:    cfg.MaxUploadBytes,
		allowedExtensions: allowed,
	}
}

func (s *contentService) ValidateContent(ctx context.Context, raw any) validator.Result {
	result := s.validator.Content().ValidateLearningContent(raw)
	if !result.Valid {
		s.logger.Info("content validation failed", "errors", len(result.Errors))
	}
	if len(result.Warnings) > 0 {
		s.logger.Warn("content validated with data-quality warnings", "warnings", result.Warnings)
	}
	return result
}

func (s *contentService) ValidateLegacyBundle(ctx context.Context, raw any) validator.LegacyResult {
	return s.validator.Legacy().ValidateQuestionBundle(raw)
}

func (s *contentService) CheckUpload(filename string, size int64) error {
	if size <= 0 {
		return ErrEmptyUpload
	}
	if s.maxUploadBytes > 0 && size > s.maxUploadBytes {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrUploadTooLarge, size, s.maxUploadBytes)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !s.allowedExtensions[ext] {
		return fmt.Errorf("%w: %s", ErrUnsupportedExtension, ext)
	}
	return nil
}

func (s *contentService) CreateQuestionSet(ctx context.Context, req *CreateQuestionSetRequest) (*QuestionSetResponse, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	doc := req.Document
	var warnings []string
	if doc == nil {
		result := s.ValidateContent(ctx, req.Raw)
		if !result.Valid {
			return nil, &ContentValidationError{Errors: result.Errors}
		}
		doc = result.Data
		warnings = result.Warnings
	}

	if _, err := s.repo.Bucket().GetByID(ctx, req.BucketID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrBucketNotFound
		}
		return nil, fmt.Errorf("failed to load bucket: %w", err)
	}

	info := models.SummarizeDocument(doc)

	dataJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	infoJSON, err := json.Marshal(info)
	if err != nil {
		return nil, fmt.Errorf("failed to encode summary: %w", err)
	}

	set := &models.QuestionSet{
		ID:       uuid.NewString(),
		BucketID: req.BucketID,
		Name:     req.Name,
		Question: doc.Question,
		Answer:   doc.Answer,
		Data:     dataJSON,
		Info:     infoJSON,
	}

	if err := s.repo.QuestionSet().Create(ctx, set); err != nil {
		return nil, fmt.Errorf("failed to persist question set: %w", err)
	}

	// Summary cache is an optimization; failures must not fail the create.
	if err := s.cache.Set(ctx, cache.QuestionInfoKey(set.ID), info, 24*time.Hour); err != nil {
		s.logger.Warn("failed to cache question set summary", "question_set_id", set.ID, "error", err)
	}

	event := &events.ContentEvent{
		ID:            uuid.NewString(),
		Type:          events.QuestionSetCreated,
		Source:        "content-service",
		Timestamp:     time.Now(),
		BucketID:      set.BucketID,
		QuestionSetID: set.ID,
		Info:          &info,
	}
	if err := s.publisher.PublishContentEvent(ctx, event); err != nil {
		s.logger.Error("failed to publish question_set.created", "question_set_id", set.ID, "error", err)
	}

	s.logger.Info("question set created",
		"question_set_id", set.ID,
		"bucket_id", set.BucketID,
		"total_questions", info.Total)

	return &QuestionSetResponse{
		ID:        set.ID,
		BucketID:  set.BucketID,
		Name:      set.Name,
		Question:  set.Question,
		Answer:    set.Answer,
		Info:      info,
		Data:      doc,
		Warnings:  warnings,
		CreatedAt: set.CreatedAt,
	}, nil
}

func (s *contentService) GetQuestionSet(ctx context.Context, id string) (*QuestionSetResponse, error) {
	set, err := s.repo.QuestionSet().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionSetNotFound
		}
		return nil, fmt.Errorf("failed to load question set: %w", err)
	}
	return s.toResponse(ctx, set, true)
}

func (s *contentService) ListByBucket(ctx context.Context, bucketID string, filters repositories.QuestionSetFilters) ([]*QuestionSetResponse, int64, error) {
	sets, total, err := s.repo.QuestionSet().GetByBucket(ctx, bucketID, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list question sets: %w", err)
	}

	responses := make([]*QuestionSetResponse, 0, len(sets))
	for _, set := range sets {
		resp, err := s.toResponse(ctx, set, false)
		if err != nil {
			return nil, 0, err
		}
		responses = append(responses, resp)
	}
	return responses, total, nil
}

func (s *contentService) DeleteQuestionSet(ctx context.Context, id string) error {
	if err := s.repo.QuestionSet().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrQuestionSetNotFound
		}
		return fmt.Errorf("failed to delete question set: %w", err)
	}

	if err := s.cache.Delete(ctx, cache.QuestionInfoKey(id)); err != nil {
		s.logger.Warn("failed to evict question set summary", "question_set_id", id, "error", err)
	}

	event := &events.ContentEvent{
		ID:            uuid.NewString(),
		Type:          events.QuestionSetDeleted,
		Source:        "content-service",
		Timestamp:     time.Now(),
		QuestionSetID: id,
	}
	if err := s.publisher.PublishContentEvent(ctx, event); err != nil {
		s.logger.Error("failed to publish question_set.deleted", "question_set_id", id, "error", err)
	}

	return nil
}

// toResponse builds a response, preferring the cached summary and falling
// back to the stored (or recounted) one.
func (s *contentService) toResponse(ctx context.Context, set *models.QuestionSet, includeData bool) (*QuestionSetResponse, error) {
	var info models.QuestionInfo
	if err := s.cache.Get(ctx, cache.QuestionInfoKey(set.ID), &info); err != nil {
		info, err = set.Summary()
		if err != nil {
			return nil, fmt.Errorf("failed to summarize question set %s: %w", set.ID, err)
		}
	}

	resp := &QuestionSetResponse{
		ID:        set.ID,
		BucketID:  set.BucketID,
		Name:      set.Name,
		Question:  set.Question,
		Answer:    set.Answer,
		Info:      info,
		CreatedAt: set.CreatedAt,
	}

	if includeData {
		doc, err := set.Document()
		if err != nil {
			return nil, err
		}
		resp.Data = doc
	}

	return resp, nil
}

// ContentValidationError carries the exhaustive list of schema violations
// back to the transport layer.
type ContentValidationError struct {
	Errors []string
}

func (e *ContentValidationError) Error() string {
	if len(e.Errors) == 1 {
		return "content validation failed: " + e.Errors[0]
	}
	return fmt.Sprintf("content validation failed: %d schema violations", len(e.Errors))
}

func (e *ContentValidationError) Unwrap() error {
	return ErrContentInvalid
}
