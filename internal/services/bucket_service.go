package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/studybuckets/content-service/internal/models"
	"github.com/studybuckets/content-service/internal/repositories"
	"github.com/studybuckets/content-service/internal/validator"
)

// BucketService manages the folders question sets are organized into.
type BucketService interface {
	CreateBucket(ctx context.Context, req *CreateBucketRequest) (*BucketResponse, error)
	GetBucket(ctx context.Context, id string) (*BucketResponse, error)
	ListBuckets(ctx context.Context, filters repositories.BucketFilters) ([]*BucketResponse, int64, error)
	DeleteBucket(ctx context.Context, id string) error
}

// Limits mirror the column sizing on models.Bucket.
type CreateBucketRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=120"`
	Description string `json:"description" validate:"max=1000"`
}

type BucketResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type bucketService struct {
	repo      repositories.Repository
	validator *validator.Validator
	logger    *slog.Logger
}

func NewBucketService(repo repositories.Repository, v *validator.Validator, logger *slog.Logger) BucketService {
	return &bucketService{repo: repo, validator: v, logger: logger}
}

func (s *bucketService) CreateBucket(ctx context.Context, req *CreateBucketRequest) (*BucketResponse, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	bucket := &models.Bucket{
		ID:   uuid.NewString(),
		Name: req.Name,
	}
	if req.Description != "" {
		bucket.Description = &req.Description
	}

	if err := s.repo.Bucket().Create(ctx, bucket); err != nil {
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	s.logger.Info("bucket created", "bucket_id", bucket.ID, "name", bucket.Name)
	return toBucketResponse(bucket), nil
}

func (s *bucketService) GetBucket(ctx context.Context, id string) (*BucketResponse, error) {
	bucket, err := s.repo.Bucket().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrBucketNotFound
		}
		return nil, fmt.Errorf("failed to load bucket: %w", err)
	}
	return toBucketResponse(bucket), nil
}

func (s *bucketService) ListBuckets(ctx context.Context, filters repositories.BucketFilters) ([]*BucketResponse, int64, error) {
	buckets, total, err := s.repo.Bucket().List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list buckets: %w", err)
	}

	responses := make([]*BucketResponse, 0, len(buckets))
	for _, bucket := range buckets {
		responses = append(responses, toBucketResponse(bucket))
	}
	return responses, total, nil
}

func (s *bucketService) DeleteBucket(ctx context.Context, id string) error {
	if err := s.repo.Bucket().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrBucketNotFound
		}
		return fmt.Errorf("failed to delete bucket: %w", err)
	}
	s.logger.Info("bucket deleted", "bucket_id", id)
	return nil
}

func toBucketResponse(b *models.Bucket) *BucketResponse {
	resp := &BucketResponse{
		ID:        b.ID,
		Name:      b.Name,
		CreatedAt: b.CreatedAt,
	}
	if b.Description != nil {
		resp.Description = *b.Description
	}
	return resp
}
