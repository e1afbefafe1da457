package quiz

import "github.com/studybuckets/content-service/internal/models"

// MultipleChoiceState governs a single-selection question keyed by answer
// index: Unanswered -> Selected(i) (reselectable) -> Submitted, after which
// the selection is locked until Reset. Correctness is derived at submit time
// from the chosen answer's own is_correct flag, so payloads with zero or
// several flagged answers cannot crash it; they simply grade by the option
// the user picked.
//
// An empty answers array is a precondition violation from upstream
// validation; the state then stays inert, every transition a no-op.
type MultipleChoiceState struct {
	question models.MultipleChoiceQuestion

	selected    int
	isSubmitted bool
	isCorrect   bool
}

const noSelection = -1

func NewMultipleChoiceState(question models.MultipleChoiceQuestion) *MultipleChoiceState {
	return &MultipleChoiceState{question: question, selected: noSelection}
}

// Inert reports whether the question arrived without answers and the state
// machine is disabled.
func (s *MultipleChoiceState) Inert() bool {
	return len(s.question.Answers) == 0
}

// Select records the chosen answer index. Ignored after submit or when the
// index is out of range; selecting again before submit replaces the choice.
func (s *MultipleChoiceState) Select(index int) bool {
	if s.Inert() || s.isSubmitted || index < 0 || index >= len(s.question.Answers) {
		return false
	}
	s.selected = index
	return true
}

// Submit locks the selection and grades it.
func (s *MultipleChoiceState) Submit() bool {
	if s.Inert() || s.isSubmitted || s.selected == noSelection {
		return false
	}
	s.isSubmitted = true
	s.isCorrect = s.question.Answers[s.selected].IsCorrect
	return true
}

// Reset returns to Unanswered.
func (s *MultipleChoiceState) Reset() {
	s.selected = noSelection
	s.isSubmitted = false
	s.isCorrect = false
}

// SelectedIndex returns the chosen index, or -1 when nothing is selected.
func (s *MultipleChoiceState) SelectedIndex() int { return s.selected }
func (s *MultipleChoiceState) IsSubmitted() bool  { return s.isSubmitted }

func (s *MultipleChoiceState) Projection() Projection {
	return Projection{
		IsSubmitted: s.isSubmitted,
		IsCorrect:   s.isSubmitted && s.isCorrect,
	}
}
