package quiz

import (
	"strings"

	"github.com/studybuckets/content-service/internal/models"
)

// OpenQuestionState governs the lifecycle of a free-text question:
// Unanswered -> Submitted -> AnswerRevealed -> MarkedCorrect, with an Edit
// transition from any post-submit state back to Unanswered. Free text cannot
// be graded automatically, so MarkedCorrect is a user-asserted self-grade.
type OpenQuestionState struct {
	question models.OpenQuestion

	userAnswer        string
	isSubmitted       bool
	showCorrectAnswer bool
	isMarkedCorrect   bool
}

func NewOpenQuestionState(question models.OpenQuestion) *OpenQuestionState {
	return &OpenQuestionState{question: question}
}

// SetAnswer updates the draft answer. Ignored once submitted; the user must
// Edit first.
func (s *OpenQuestionState) SetAnswer(text string) {
	if s.isSubmitted {
		return
	}
	s.userAnswer = text
}

// Submit locks the current answer in. A blank answer does not submit.
func (s *OpenQuestionState) Submit() bool {
	if s.isSubmitted || strings.TrimSpace(s.userAnswer) == "" {
		return false
	}
	s.userAnswer = strings.TrimSpace(s.userAnswer)
	s.isSubmitted = true
	return true
}

// RevealAnswer shows the reference answer. Only reachable after submitting.
func (s *OpenQuestionState) RevealAnswer() {
	if !s.isSubmitted {
		return
	}
	s.showCorrectAnswer = true
}

// MarkCorrect records the self-grade. Only reachable once the reference
// answer is visible; marking twice has no additional effect.
func (s *OpenQuestionState) MarkCorrect() {
	if !s.showCorrectAnswer {
		return
	}
	s.isMarkedCorrect = true
}

// Edit returns to Unanswered so the user can revise and resubmit. The draft
// text is kept; the self-grade is discarded.
func (s *OpenQuestionState) Edit() {
	s.isSubmitted = false
	s.showCorrectAnswer = false
	s.isMarkedCorrect = false
}

func (s *OpenQuestionState) UserAnswer() string      { return s.userAnswer }
func (s *OpenQuestionState) IsSubmitted() bool       { return s.isSubmitted }
func (s *OpenQuestionState) ShowCorrectAnswer() bool { return s.showCorrectAnswer }
func (s *OpenQuestionState) IsMarkedCorrect() bool   { return s.isMarkedCorrect }
func (s *OpenQuestionState) CorrectAnswer() string   { return s.question.Answer }

func (s *OpenQuestionState) Projection() Projection {
	return Projection{
		IsSubmitted:     s.isSubmitted,
		HasSeenAnswer:   false,
		IsCorrect:       s.isMarkedCorrect,
		IsMarkedCorrect: s.isMarkedCorrect,
	}
}
