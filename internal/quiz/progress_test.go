package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecomputeProgress(t *testing.T) {
	states := map[string]Projection{
		"a": {IsSubmitted: true, IsCorrect: true},
		"b": {IsSubmitted: true},
		"c": {HasSeenAnswer: true},
		"d": {HasBeenRead: true, TimeSpentSeconds: 7},
		"e": {},
	}

	progress := RecomputeProgress(5, states)

	assert.Equal(t, 5, progress.TotalQuestions)
	assert.Equal(t, 4, progress.AnsweredQuestions)
	assert.Equal(t, 1, progress.CorrectAnswers)
	assert.Equal(t, 7, progress.TimeSpent)
	assert.False(t, progress.Completed())
}

func TestRecomputeProgress_IsTotalNotIncremental(t *testing.T) {
	states := map[string]Projection{
		"a": {IsSubmitted: true, IsCorrect: true},
	}
	first := RecomputeProgress(2, states)
	assert.Equal(t, 1, first.AnsweredQuestions)

	// Resetting the lone answered item must drop the count back to zero;
	// an incremental counter would leave it at one.
	states["a"] = Projection{}
	second := RecomputeProgress(2, states)
	assert.Equal(t, 0, second.AnsweredQuestions)
	assert.Equal(t, 0, second.CorrectAnswers)
}

func TestRecomputeProgress_SelfGradeCounts(t *testing.T) {
	states := map[string]Projection{
		"open": {IsSubmitted: true, IsMarkedCorrect: true},
	}

	progress := RecomputeProgress(1, states)
	assert.Equal(t, 1, progress.CorrectAnswers)
}

func TestProgressCompleted(t *testing.T) {
	assert.False(t, Progress{}.Completed(), "an empty session never completes")
	assert.False(t, Progress{TotalQuestions: 3, AnsweredQuestions: 2}.Completed())
	assert.True(t, Progress{TotalQuestions: 3, AnsweredQuestions: 3}.Completed())
}
