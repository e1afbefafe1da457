package quiz

import "github.com/studybuckets/content-service/internal/models"

// FlashcardState is a Front <-> Back toggle. Every transition to Back
// increments the view counter and sets HasSeenAnswer, which stays true no
// matter how the card is flipped afterwards. There is no terminal state.
type FlashcardState struct {
	card models.Flashcard

	isFlipped     bool
	viewCount     int
	hasSeenAnswer bool
}

func NewFlashcardState(card models.Flashcard) *FlashcardState {
	return &FlashcardState{card: card}
}

// Flip toggles the visible side.
func (s *FlashcardState) Flip() {
	s.isFlipped = !s.isFlipped
	if s.isFlipped {
		s.viewCount++
		s.hasSeenAnswer = true
	}
}

func (s *FlashcardState) IsFlipped() bool     { return s.isFlipped }
func (s *FlashcardState) ViewCount() int      { return s.viewCount }
func (s *FlashcardState) HasSeenAnswer() bool { return s.hasSeenAnswer }

func (s *FlashcardState) Projection() Projection {
	return Projection{HasSeenAnswer: s.hasSeenAnswer}
}
