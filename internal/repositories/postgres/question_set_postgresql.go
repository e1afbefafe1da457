package postgres

import (
	"context"
	"fmt"

	"github.com/studybuckets/content-service/internal/models"
	"github.com/studybuckets/content-service/internal/repositories"
	"gorm.io/gorm"
)

type QuestionSetPostgreSQL struct {
	db *gorm.DB
}

func NewQuestionSetPostgreSQL(db *gorm.DB) repositories.QuestionSetRepository {
	return &QuestionSetPostgreSQL{db: db}
}

func (q *QuestionSetPostgreSQL) Create(ctx context.Context, set *models.QuestionSet) error {
	if err := q.db.WithContext(ctx).Create(set).Error; err != nil {
		return fmt.Errorf("failed to create question set: %w", err)
	}
	return nil
}

func (q *QuestionSetPostgreSQL) GetByID(ctx context.Context, id string) (*models.QuestionSet, error) {
	var set models.QuestionSet
	err := q.db.WithContext(ctx).First(&set, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &set, nil
}

func (q *QuestionSetPostgreSQL) GetByBucket(ctx context.Context, bucketID string, filters repositories.QuestionSetFilters) ([]*models.QuestionSet, int64, error) {
	query := q.db.WithContext(ctx).Model(&models.QuestionSet{}).Where("bucket_id = ?", bucketID)

	if filters.Name != "" {
		query = query.Where("name ILIKE ?", "%"+filters.Name+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count question sets: %w", err)
	}

	query = applyOrdering(query, filters.SortBy, filters.SortOrder, "created_at")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var sets []*models.QuestionSet
	if err := query.Find(&sets).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list question sets: %w", err)
	}

	return sets, total, nil
}

func (q *QuestionSetPostgreSQL) Delete(ctx context.Context, id string) error {
	result := q.db.WithContext(ctx).Delete(&models.QuestionSet{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete question set: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
