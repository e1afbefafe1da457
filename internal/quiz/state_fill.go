package quiz

import (
	"regexp"

	"github.com/studybuckets/content-service/internal/models"
)

// placeholderPattern matches the {{...}} blank marker inside a
// fill-in-the-blank question string.
var placeholderPattern = regexp.MustCompile(`\{\{[^}]+\}\}`)

// PlaceholderGlyph is rendered in place of the blank while nothing is
// selected.
const PlaceholderGlyph = "___"

// FillInBlankState mirrors MultipleChoiceState but keys the selection by
// answer text: the options are rendered as a word bank, and the chosen word
// is substituted into the question's {{...}} placeholder. The substitution
// itself is presentation; the state machine only has to expose the currently
// selected text.
type FillInBlankState struct {
	question models.FillInTheBlank

	selectedText string
	isSubmitted  bool
	isCorrect    bool
}

func NewFillInBlankState(question models.FillInTheBlank) *FillInBlankState {
	return &FillInBlankState{question: question}
}

// Inert reports whether the question arrived without answers.
func (s *FillInBlankState) Inert() bool {
	return len(s.question.Answers) == 0
}

// Select records the chosen word-bank text. The text must match one of the
// question's answers; reselecting before submit replaces the choice.
func (s *FillInBlankState) Select(text string) bool {
	if s.Inert() || s.isSubmitted {
		return false
	}
	if s.findAnswer(text) == nil {
		return false
	}
	s.selectedText = text
	return true
}

// Submit locks the selection and grades it by the chosen answer's flag.
func (s *FillInBlankState) Submit() bool {
	if s.Inert() || s.isSubmitted || s.selectedText == "" {
		return false
	}
	s.isSubmitted = true
	if a := s.findAnswer(s.selectedText); a != nil {
		s.isCorrect = a.IsCorrect
	}
	return true
}

// Reset returns to Unanswered.
func (s *FillInBlankState) Reset() {
	s.selectedText = ""
	s.isSubmitted = false
	s.isCorrect = false
}

func (s *FillInBlankState) SelectedText() string { return s.selectedText }
func (s *FillInBlankState) IsSubmitted() bool    { return s.isSubmitted }

// RenderedQuestion substitutes the current selection (or the placeholder
// glyph) into the blank marker.
func (s *FillInBlankState) RenderedQuestion() string {
	fill := s.selectedText
	if fill == "" {
		fill = PlaceholderGlyph
	}
	return placeholderPattern.ReplaceAllString(s.question.Question, fill)
}

func (s *FillInBlankState) findAnswer(text string) *models.Answer {
	for i := range s.question.Answers {
		if s.question.Answers[i].Text == text {
			return &s.question.Answers[i]
		}
	}
	return nil
}

func (s *FillInBlankState) Projection() Projection {
	return Projection{
		IsSubmitted: s.isSubmitted,
		IsCorrect:   s.isSubmitted && s.isCorrect,
	}
}
