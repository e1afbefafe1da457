package postgres

import (
	"github.com/studybuckets/content-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	bucket      repositories.BucketRepository
	questionSet repositories.QuestionSetRepository
}

// NewRepository wires the gorm-backed repositories.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		bucket:      NewBucketPostgreSQL(db),
		questionSet: NewQuestionSetPostgreSQL(db),
	}
}

func (r *repository) Bucket() repositories.BucketRepository {
	return r.bucket
}

func (r *repository) QuestionSet() repositories.QuestionSetRepository {
	return r.questionSet
}

var allowedSortColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
}

// applyOrdering sanitizes sort inputs before they reach the query.
func applyOrdering(query *gorm.DB, sortBy, sortOrder, fallback string) *gorm.DB {
	if !allowedSortColumns[sortBy] {
		sortBy = fallback
	}
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}
	return query.Order(sortBy + " " + sortOrder)
}
