package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/studybuckets/content-service/internal/models"
)

// ===== OPEN QUESTIONS =====

func TestOpenQuestionState_Lifecycle(t *testing.T) {
	s := NewOpenQuestionState(models.OpenQuestion{ID: "oq-1", Question: "q", Answer: "reference"})

	// Reveal and mark are unreachable before submit.
	s.RevealAnswer()
	assert.False(t, s.ShowCorrectAnswer())
	s.MarkCorrect()
	assert.False(t, s.IsMarkedCorrect())

	s.SetAnswer("  my answer  ")
	assert.True(t, s.Submit())
	assert.True(t, s.IsSubmitted())
	assert.Equal(t, "my answer", s.UserAnswer())

	// Mark is unreachable until the reference answer is shown.
	s.MarkCorrect()
	assert.False(t, s.IsMarkedCorrect())

	s.RevealAnswer()
	s.MarkCorrect()
	assert.True(t, s.IsMarkedCorrect())

	p := s.Projection()
	assert.True(t, p.IsSubmitted)
	assert.True(t, p.IsCorrect)
	assert.True(t, p.IsMarkedCorrect)
}

func TestOpenQuestionState_BlankAnswerDoesNotSubmit(t *testing.T) {
	s := NewOpenQuestionState(models.OpenQuestion{ID: "oq-1"})

	assert.False(t, s.Submit())
	s.SetAnswer("   ")
	assert.False(t, s.Submit())
	assert.False(t, s.IsSubmitted())
}

func TestOpenQuestionState_DraftLockedAfterSubmit(t *testing.T) {
	s := NewOpenQuestionState(models.OpenQuestion{ID: "oq-1"})

	s.SetAnswer("first")
	s.Submit()
	s.SetAnswer("second")
	assert.Equal(t, "first", s.UserAnswer())
}

func TestOpenQuestionState_EditKeepsTextDropsGrade(t *testing.T) {
	s := NewOpenQuestionState(models.OpenQuestion{ID: "oq-1"})

	s.SetAnswer("draft")
	s.Submit()
	s.RevealAnswer()
	s.MarkCorrect()

	s.Edit()

	assert.False(t, s.IsSubmitted())
	assert.False(t, s.ShowCorrectAnswer())
	assert.False(t, s.IsMarkedCorrect())
	assert.Equal(t, "draft", s.UserAnswer())

	s.SetAnswer("revised")
	assert.True(t, s.Submit())
	assert.Equal(t, "revised", s.UserAnswer())
}

// ===== MULTIPLE CHOICE =====

func TestMultipleChoiceState_SelectSubmitReset(t *testing.T) {
	s := NewMultipleChoiceState(models.MultipleChoiceQuestion{
		ID: "mc-1", Question: "q", Answers: fourAnswers(2),
	})

	assert.False(t, s.Submit(), "submit without a selection must fail")

	assert.True(t, s.Select(0))
	assert.True(t, s.Select(2), "reselecting before submit replaces the choice")
	assert.True(t, s.Submit())
	assert.True(t, s.Projection().IsCorrect)

	// Locked after submit.
	assert.False(t, s.Select(1))
	assert.False(t, s.Submit())

	s.Reset()
	assert.Equal(t, -1, s.SelectedIndex())
	assert.False(t, s.Projection().IsSubmitted)
	assert.False(t, s.Projection().IsCorrect)
}

func TestMultipleChoiceState_GradesByChosenAnswerFlag(t *testing.T) {
	s := NewMultipleChoiceState(models.MultipleChoiceQuestion{
		ID: "mc-1", Answers: fourAnswers(2),
	})

	s.Select(1)
	s.Submit()

	p := s.Projection()
	assert.True(t, p.IsSubmitted)
	assert.False(t, p.IsCorrect)
}

func TestMultipleChoiceState_OutOfRangeSelection(t *testing.T) {
	s := NewMultipleChoiceState(models.MultipleChoiceQuestion{
		ID: "mc-1", Answers: fourAnswers(0),
	})

	assert.False(t, s.Select(-1))
	assert.False(t, s.Select(4))
	assert.Equal(t, -1, s.SelectedIndex())
}

func TestMultipleChoiceState_InertWithoutAnswers(t *testing.T) {
	s := NewMultipleChoiceState(models.MultipleChoiceQuestion{ID: "mc-1"})

	assert.True(t, s.Inert())
	assert.False(t, s.Select(0))
	assert.False(t, s.Submit())
	assert.Equal(t, Projection{}, s.Projection())
}

// ===== FILL IN THE BLANK =====

func TestFillInBlankState_SelectByText(t *testing.T) {
	s := NewFillInBlankState(models.FillInTheBlank{
		ID:       "fb-1",
		Question: "Water boils at {{temp}} degrees.",
		Answers:  fourAnswers(0),
	})

	assert.False(t, s.Select("not an option"))
	assert.True(t, s.Select("option-1"))
	assert.True(t, s.Select("option-0"), "reselecting replaces the choice")
	assert.True(t, s.Submit())
	assert.True(t, s.Projection().IsCorrect)
}

func TestFillInBlankState_RenderedQuestion(t *testing.T) {
	s := NewFillInBlankState(models.FillInTheBlank{
		ID:       "fb-1",
		Question: "Water boils at {{temp}} degrees.",
		Answers:  fourAnswers(0),
	})

	assert.Equal(t, "Water boils at ___ degrees.", s.RenderedQuestion())
	s.Select("option-0")
	assert.Equal(t, "Water boils at option-0 degrees.", s.RenderedQuestion())
}

func TestFillInBlankState_SubmitWithoutSelection(t *testing.T) {
	s := NewFillInBlankState(models.FillInTheBlank{
		ID: "fb-1", Answers: fourAnswers(0),
	})

	assert.False(t, s.Submit())

	s.Select("option-3")
	s.Submit()
	s.Reset()
	assert.Empty(t, s.SelectedText())
	assert.False(t, s.IsSubmitted())
}

// ===== FLASHCARDS =====

func TestFlashcardState_FlipCycle(t *testing.T) {
	s := NewFlashcardState(models.Flashcard{ID: "fc-1", Front: "f", Back: "b"})

	assert.False(t, s.HasSeenAnswer())
	assert.Equal(t, 0, s.ViewCount())

	s.Flip() // to back
	assert.True(t, s.IsFlipped())
	assert.True(t, s.HasSeenAnswer())
	assert.Equal(t, 1, s.ViewCount())

	s.Flip() // back to front
	assert.False(t, s.IsFlipped())
	assert.True(t, s.HasSeenAnswer(), "seen flag is sticky")
	assert.Equal(t, 1, s.ViewCount(), "only flips to the back count")

	s.Flip() // to back again
	assert.Equal(t, 2, s.ViewCount())
	assert.True(t, s.Projection().HasSeenAnswer)
}

// ===== MICRO REELS =====

func TestMicroReelState_ReadThreshold(t *testing.T) {
	s := NewMicroReelState(models.MicroReel{ID: "mr-1", Text: "x"})

	assert.True(t, s.IsActive())
	for i := 0; i < ReadThresholdSeconds-1; i++ {
		s.Tick()
	}
	assert.False(t, s.HasBeenRead())

	s.Tick()
	assert.True(t, s.HasBeenRead())
	assert.Equal(t, ReadThresholdSeconds, s.TimeSpent())
}

func TestMicroReelState_PauseStopsAccumulation(t *testing.T) {
	s := NewMicroReelState(models.MicroReel{ID: "mr-1"})

	s.Tick()
	s.Pause()
	s.Tick()
	s.Tick()
	assert.Equal(t, 1, s.TimeSpent())

	s.Resume()
	s.Tick()
	assert.Equal(t, 2, s.TimeSpent())
}

func TestMicroReelState_ReadFlagStickyThroughPause(t *testing.T) {
	s := NewMicroReelState(models.MicroReel{ID: "mr-1"})

	for i := 0; i < ReadThresholdSeconds; i++ {
		s.Tick()
	}
	s.Pause()

	assert.True(t, s.HasBeenRead())
	p := s.Projection()
	assert.True(t, p.HasBeenRead)
	assert.Equal(t, ReadThresholdSeconds, p.TimeSpentSeconds)
}

// ===== STATE ISOLATION =====

func TestStates_ShareNoStateBetweenInstances(t *testing.T) {
	q := models.MultipleChoiceQuestion{ID: "mc-1", Answers: fourAnswers(0)}
	first := NewMultipleChoiceState(q)
	second := NewMultipleChoiceState(q)

	first.Select(0)
	first.Submit()

	assert.False(t, second.IsSubmitted())
	assert.Equal(t, -1, second.SelectedIndex())
}
