package quiz

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/studybuckets/content-service/internal/models"
)

// ItemType tags the question family of a session item.
type ItemType string

const (
	TypeOpen           ItemType = "open"
	TypeMultipleChoice ItemType = "multiple_choice"
	TypeFillInBlank    ItemType = "fill_in_blank"
	TypeFlashcard      ItemType = "flashcard"
	TypeMicroReel      ItemType = "micro_reel"
)

// Item is one flattened, session-scoped question instance. Exactly one of the
// payload pointers is set, matching Type. InstanceKey is unique per build:
// rebuilding a session issues new keys even for identical questions, so state
// keyed by it can never leak across a restart.
type Item struct {
	ID          string   `json:"id"`
	Type        ItemType `json:"type"`
	InstanceKey string   `json:"instance_key"`

	Open           *models.OpenQuestion           `json:"open,omitempty"`
	MultipleChoice *models.MultipleChoiceQuestion `json:"multiple_choice,omitempty"`
	FillInBlank    *models.FillInTheBlank         `json:"fill_in_blank,omitempty"`
	Flashcard      *models.Flashcard              `json:"flashcard,omitempty"`
	MicroReel      *models.MicroReel              `json:"micro_reel,omitempty"`
}

func newInstanceKey(itemType ItemType, id string) string {
	return fmt.Sprintf("%s-%s-%s", itemType, id, uuid.NewString())
}
