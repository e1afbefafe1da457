package events

import (
	"time"

	"github.com/studybuckets/content-service/internal/models"
	"github.com/studybuckets/content-service/internal/quiz"
)

// EventType identifies a content lifecycle event.
type EventType string

const (
	QuestionSetCreated   EventType = "question_set.created"
	QuestionSetDeleted   EventType = "question_set.deleted"
	QuizSessionCompleted EventType = "quiz_session.completed"
)

// ContentEvent is the message published to the content events topic.
type ContentEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`

	BucketID      string               `json:"bucket_id,omitempty"`
	QuestionSetID string               `json:"question_set_id,omitempty"`
	SessionID     string               `json:"session_id,omitempty"`
	Info          *models.QuestionInfo `json:"info,omitempty"`
	Progress      *quiz.Progress       `json:"progress,omitempty"`
}
