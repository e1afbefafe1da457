package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuestionSet is the stored record of one validated learning content
// document: the full document as jsonb plus its precomputed count summary.
type QuestionSet struct {
	ID       string `json:"id" gorm:"type:uuid;primaryKey"`
	BucketID string `json:"bucket_id" gorm:"type:uuid;not null;index" validate:"required,uuid4"`
	Name     string `json:"name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Question string `json:"question" gorm:"type:text;not null"`
	Answer   string `json:"answer" gorm:"type:text;not null"`

	Data datatypes.JSON `json:"data" gorm:"type:jsonb;not null"` // LearningContentDocument
	Info datatypes.JSON `json:"info" gorm:"type:jsonb"`          // QuestionInfo

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Bucket *Bucket `json:"bucket,omitempty" gorm:"foreignKey:BucketID"`
}

func (QuestionSet) TableName() string {
	return "question_sets"
}

// Document decodes the stored learning content document.
func (q *QuestionSet) Document() (*LearningContentDocument, error) {
	var doc LearningContentDocument
	if err := json.Unmarshal(q.Data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode question set data: %w", err)
	}
	return &doc, nil
}

// Summary returns the stored count summary, falling back to recounting the
// document for rows written before the info column existed.
func (q *QuestionSet) Summary() (QuestionInfo, error) {
	if len(q.Info) > 0 {
		var info QuestionInfo
		if err := json.Unmarshal(q.Info, &info); err == nil {
			// Older rows stored the five counts without the total.
			info.Total = info.OpenQuestions + info.MultipleChoiceQuestions +
				info.FillInTheBlank + info.Flashcards + info.MicroReels
			return info, nil
		}
	}

	doc, err := q.Document()
	if err != nil {
		return QuestionInfo{}, err
	}
	return SummarizeDocument(doc), nil
}
