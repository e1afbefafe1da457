package repositories

import (
	"context"
	"errors"

	"github.com/studybuckets/content-service/internal/models"
	"gorm.io/gorm"
)

// ===== SHARED FILTER STRUCTS =====

type BucketFilters struct {
	Name      string `json:"name"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`    // "created_at", "name"
	SortOrder string `json:"sort_order"` // "asc", "desc"
}

type QuestionSetFilters struct {
	BucketID  string `json:"bucket_id"`
	Name      string `json:"name"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
}

// ===== REPOSITORY INTERFACES =====

type BucketRepository interface {
	Create(ctx context.Context, bucket *models.Bucket) error
	GetByID(ctx context.Context, id string) (*models.Bucket, error)
	List(ctx context.Context, filters BucketFilters) ([]*models.Bucket, int64, error)
	Delete(ctx context.Context, id string) error
}

type QuestionSetRepository interface {
	Create(ctx context.Context, set *models.QuestionSet) error
	GetByID(ctx context.Context, id string) (*models.QuestionSet, error)
	GetByBucket(ctx context.Context, bucketID string, filters QuestionSetFilters) ([]*models.QuestionSet, int64, error)
	Delete(ctx context.Context, id string) error
}

// Repository aggregates the per-model repositories.
type Repository interface {
	Bucket() BucketRepository
	QuestionSet() QuestionSetRepository
}

// IsNotFoundError reports whether err is gorm's missing-record error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
