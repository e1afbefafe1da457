package quiz

import (
	"math/rand"
	"time"

	"github.com/studybuckets/content-service/internal/models"
)

// KeyGenerator issues instance keys for session items.
type KeyGenerator func(itemType ItemType, id string) string

// Builder flattens a quiz bundle into a uniformly shuffled item sequence.
type Builder struct {
	rng    *rand.Rand
	newKey KeyGenerator
}

// NewBuilder returns a builder with a time-seeded source and random instance
// keys.
func NewBuilder() *Builder {
	return NewBuilderWith(rand.New(rand.NewSource(time.Now().UnixNano())), newInstanceKey)
}

// NewBuilderWith allows injecting the randomness source and key generator,
// which tests use for deterministic permutations.
func NewBuilderWith(rng *rand.Rand, gen KeyGenerator) *Builder {
	if gen == nil {
		gen = newInstanceKey
	}
	return &Builder{rng: rng, newKey: gen}
}

// Build flattens the five arrays in fixed order (open, multiple-choice,
// fill-in-blank, flashcard, micro-reel; each array's internal order
// preserved) and applies a Fisher-Yates shuffle, so every permutation is
// equally likely. The input bundle is not mutated; every item gets a fresh
// instance key.
func (b *Builder) Build(bundle *models.QuizBundle) []Item {
	if bundle == nil {
		return nil
	}

	items := make([]Item, 0, models.Summarize(bundle).Total)

	for i := range bundle.OpenQuestions {
		q := bundle.OpenQuestions[i]
		items = append(items, Item{
			ID:          q.ID,
			Type:        TypeOpen,
			InstanceKey: b.newKey(TypeOpen, q.ID),
			Open:        &q,
		})
	}
	for i := range bundle.MultipleChoiceQuestions {
		q := bundle.MultipleChoiceQuestions[i]
		items = append(items, Item{
			ID:             q.ID,
			Type:           TypeMultipleChoice,
			InstanceKey:    b.newKey(TypeMultipleChoice, q.ID),
			MultipleChoice: &q,
		})
	}
	for i := range bundle.FillInTheBlank {
		q := bundle.FillInTheBlank[i]
		items = append(items, Item{
			ID:          q.ID,
			Type:        TypeFillInBlank,
			InstanceKey: b.newKey(TypeFillInBlank, q.ID),
			FillInBlank: &q,
		})
	}
	for i := range bundle.Flashcards {
		q := bundle.Flashcards[i]
		items = append(items, Item{
			ID:          q.ID,
			Type:        TypeFlashcard,
			InstanceKey: b.newKey(TypeFlashcard, q.ID),
			Flashcard:   &q,
		})
	}
	for i := range bundle.MicroReels {
		q := bundle.MicroReels[i]
		items = append(items, Item{
			ID:          q.ID,
			Type:        TypeMicroReel,
			InstanceKey: b.newKey(TypeMicroReel, q.ID),
			MicroReel:   &q,
		})
	}

	// Fisher-Yates, so every permutation is equally likely.
	for i := len(items) - 1; i > 0; i-- {
		j := b.rng.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}

	return items
}
