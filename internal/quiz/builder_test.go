package quiz

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studybuckets/content-service/internal/models"
)

func testBundle() models.QuizBundle {
	return models.QuizBundle{
		OpenQuestions: []models.OpenQuestion{
			{ID: "oq-1", Question: "q1", Answer: "a1"},
			{ID: "oq-2", Question: "q2", Answer: "a2"},
		},
		MultipleChoiceQuestions: []models.MultipleChoiceQuestion{
			{ID: "mc-1", Question: "q3", Answers: fourAnswers(0)},
		},
		FillInTheBlank: []models.FillInTheBlank{
			{ID: "fb-1", Question: "The answer is {{blank}}.", Answers: fourAnswers(1)},
		},
		Flashcards: []models.Flashcard{
			{ID: "fc-1", Front: "front", Back: "back"},
		},
		MicroReels: []models.MicroReel{
			{ID: "mr-1", Text: "some reading"},
		},
	}
}

func fourAnswers(correct int) []models.Answer {
	answers := make([]models.Answer, 4)
	for i := range answers {
		answers[i] = models.Answer{
			Text:      fmt.Sprintf("option-%d", i),
			IsCorrect: i == correct,
		}
	}
	return answers
}

func TestBuild_PreservesItemMultiset(t *testing.T) {
	bundle := testBundle()
	builder := NewBuilder()

	items := builder.Build(&bundle)

	require.Len(t, items, 6)

	ids := make(map[string]ItemType, len(items))
	for _, item := range items {
		ids[item.ID] = item.Type
	}
	assert.Equal(t, map[string]ItemType{
		"oq-1": TypeOpen,
		"oq-2": TypeOpen,
		"mc-1": TypeMultipleChoice,
		"fb-1": TypeFillInBlank,
		"fc-1": TypeFlashcard,
		"mr-1": TypeMicroReel,
	}, ids)
}

func TestBuild_DoesNotMutateBundle(t *testing.T) {
	bundle := testBundle()
	builder := NewBuilder()

	builder.Build(&bundle)

	assert.Equal(t, "oq-1", bundle.OpenQuestions[0].ID)
	assert.Equal(t, "oq-2", bundle.OpenQuestions[1].ID)
	assert.Equal(t, testBundle(), bundle)
}

func TestBuild_FreshInstanceKeysPerBuild(t *testing.T) {
	bundle := testBundle()
	builder := NewBuilder()

	first := builder.Build(&bundle)
	second := builder.Build(&bundle)

	firstKeys := make(map[string]string)
	for _, item := range first {
		assert.NotEmpty(t, item.InstanceKey)
		firstKeys[item.ID] = item.InstanceKey
	}
	for _, item := range second {
		assert.NotEqual(t, firstKeys[item.ID], item.InstanceKey,
			"item %s kept its instance key across builds", item.ID)
	}
}

func TestBuild_InstanceKeysAreUniqueWithinBuild(t *testing.T) {
	bundle := testBundle()
	items := NewBuilder().Build(&bundle)

	seen := make(map[string]bool)
	for _, item := range items {
		assert.False(t, seen[item.InstanceKey], "duplicate key %s", item.InstanceKey)
		seen[item.InstanceKey] = true
	}
}

func TestBuild_DeterministicWithSeededSource(t *testing.T) {
	bundle := testBundle()
	gen := func(itemType ItemType, id string) string {
		return string(itemType) + "-" + id
	}

	first := NewBuilderWith(rand.New(rand.NewSource(42)), gen).Build(&bundle)
	second := NewBuilderWith(rand.New(rand.NewSource(42)), gen).Build(&bundle)

	assert.Equal(t, first, second)
}

func TestBuild_ShufflesWithDifferentSeeds(t *testing.T) {
	// With 20 items, two fixed seeds producing the same permutation would
	// mean the shuffle is not consuming the source at all.
	var bundle models.QuizBundle
	for i := 0; i < 20; i++ {
		bundle.OpenQuestions = append(bundle.OpenQuestions, models.OpenQuestion{
			ID:       fmt.Sprintf("oq-%d", i),
			Question: "q",
			Answer:   "a",
		})
	}

	order := func(seed int64) []string {
		items := NewBuilderWith(rand.New(rand.NewSource(seed)), nil).Build(&bundle)
		ids := make([]string, len(items))
		for i, item := range items {
			ids[i] = item.ID
		}
		return ids
	}

	assert.NotEqual(t, order(1), order(2))
}

func TestBuild_NilAndEmptyBundles(t *testing.T) {
	builder := NewBuilder()

	assert.Nil(t, builder.Build(nil))
	assert.Empty(t, builder.Build(&models.QuizBundle{}))
}
