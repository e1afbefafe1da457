package postgres

import (
	"context"
	"fmt"

	"github.com/studybuckets/content-service/internal/models"
	"github.com/studybuckets/content-service/internal/repositories"
	"gorm.io/gorm"
)

type BucketPostgreSQL struct {
	db *gorm.DB
}

func NewBucketPostgreSQL(db *gorm.DB) repositories.BucketRepository {
	return &BucketPostgreSQL{db: db}
}

func (b *BucketPostgreSQL) Create(ctx context.Context, bucket *models.Bucket) error {
	if err := b.db.WithContext(ctx).Create(bucket).Error; err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

func (b *BucketPostgreSQL) GetByID(ctx context.Context, id string) (*models.Bucket, error) {
	var bucket models.Bucket
	err := b.db.WithContext(ctx).First(&bucket, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &bucket, nil
}

func (b *BucketPostgreSQL) List(ctx context.Context, filters repositories.BucketFilters) ([]*models.Bucket, int64, error) {
	query := b.db.WithContext(ctx).Model(&models.Bucket{})

	if filters.Name != "" {
		query = query.Where("name ILIKE ?", "%"+filters.Name+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count buckets: %w", err)
	}

	query = applyOrdering(query, filters.SortBy, filters.SortOrder, "created_at")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var buckets []*models.Bucket
	if err := query.Find(&buckets).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list buckets: %w", err)
	}

	return buckets, total, nil
}

func (b *BucketPostgreSQL) Delete(ctx context.Context, id string) error {
	return b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bucket_id = ?", id).Delete(&models.QuestionSet{}).Error; err != nil {
			return fmt.Errorf("failed to delete bucket question sets: %w", err)
		}
		result := tx.Delete(&models.Bucket{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete bucket: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
