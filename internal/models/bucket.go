package models

import (
	"time"

	"gorm.io/gorm"
)

// Bucket is a user-defined topic collection grouping question sets.
type Bucket struct {
	ID          string  `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string  `json:"name" gorm:"not null;size:120;index" validate:"required,min=1,max=120"`
	Description *string `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	QuestionSets []QuestionSet `json:"question_sets,omitempty" gorm:"foreignKey:BucketID"`

	// Computed, not stored
	QuestionSetCount int `json:"question_set_count" gorm:"-"`
}

func (Bucket) TableName() string {
	return "buckets"
}
