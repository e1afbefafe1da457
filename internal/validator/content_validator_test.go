package validator

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDocumentJSON() string {
	return `{
		"success": true,
		"title": "Photosynthesis",
		"question": "How do plants make food?",
		"answer": "Through photosynthesis in chloroplasts.",
		"tips": ["Focus on the light reactions"],
		"correctness_percent": 87.5,
		"quiz": {
			"open_questions": [
				{"id": "oq-1", "question": "Name the pigment.", "answer": "Chlorophyll"}
			],
			"multiple_choice_questions": [
				{"id": "mc-1", "question": "Where does it happen?", "answers": [
					{"text": "Chloroplast", "is_correct": true},
					{"text": "Nucleus", "is_correct": false},
					{"text": "Mitochondrion", "is_correct": false},
					{"text": "Ribosome", "is_correct": false}
				]}
			],
			"fill_in_the_blank": [
				{"id": "fb-1", "question": "Plants absorb {{gas}} from the air.", "answers": [
					{"text": "carbon dioxide", "is_correct": true},
					{"text": "oxygen", "is_correct": false},
					{"text": "nitrogen", "is_correct": false},
					{"text": "hydrogen", "is_correct": false}
				]}
			],
			"flashcards": [
				{"id": "fc-1", "front": "ATP", "back": "Energy currency of the cell"}
			],
			"micro_reels": [
				{"id": "mr-1", "text": "Sunlight powers the whole food chain."}
			]
		}
	}`
}

func TestValidateLearningContent_ValidDocument(t *testing.T) {
	v := NewContentValidator()

	result := v.ValidateLearningContent(validDocumentJSON())

	require.True(t, result.Valid, "errors: %v", result.Errors)
	require.NotNil(t, result.Data)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)

	assert.Equal(t, "Photosynthesis", result.Data.Title)
	assert.InDelta(t, 87.5, result.Data.CorrectnessPercent, 0.001)
	assert.Len(t, result.Data.Quiz.OpenQuestions, 1)
	assert.Len(t, result.Data.Quiz.MultipleChoiceQuestions, 1)
	assert.Len(t, result.Data.Quiz.FillInTheBlank, 1)
	assert.Len(t, result.Data.Quiz.Flashcards, 1)
	assert.Len(t, result.Data.Quiz.MicroReels, 1)
}

func TestValidateLearningContent_EmptyQuizArraysAreValid(t *testing.T) {
	v := NewContentValidator()

	result := v.ValidateLearningContent(`{
		"success": true,
		"title": "Empty set",
		"question": "q",
		"answer": "a",
		"tips": ["t"],
		"correctness_percent": 0,
		"quiz": {
			"open_questions": [],
			"multiple_choice_questions": [],
			"fill_in_the_blank": [],
			"flashcards": [],
			"micro_reels": []
		}
	}`)

	require.True(t, result.Valid, "errors: %v", result.Errors)
	assert.Empty(t, result.Data.Quiz.OpenQuestions)
}

func TestValidateLearningContent_SyntaxErrorYieldsSingleError(t *testing.T) {
	v := NewContentValidator()

	result := v.ValidateLearningContent(`{"success": true,`)

	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 1)
	assert.Nil(t, result.Data)
}

func TestValidateLearningContent_CollectsAllErrors(t *testing.T) {
	v := NewContentValidator()

	// Missing title, answer and tips; quiz item missing its answer.
	result := v.ValidateLearningContent(`{
		"success": true,
		"question": "q",
		"correctness_percent": 50,
		"quiz": {
			"open_questions": [{"id": "oq-1", "question": "only a question"}],
			"multiple_choice_questions": [],
			"fill_in_the_blank": [],
			"flashcards": [],
			"micro_reels": []
		}
	}`)

	require.False(t, result.Valid)
	assert.Nil(t, result.Data)
	assert.GreaterOrEqual(t, len(result.Errors), 4)

	joined := strings.Join(result.Errors, "\n")
	assert.Contains(t, joined, "title")
	assert.Contains(t, joined, "answer")
	assert.Contains(t, joined, "tips")
	assert.Contains(t, joined, "quiz.open_questions.0.answer")
}

func TestValidateLearningContent_ErrorPathsAreDotQualified(t *testing.T) {
	v := NewContentValidator()

	result := v.ValidateLearningContent(`{
		"success": true,
		"title": "t",
		"question": "q",
		"answer": "a",
		"tips": ["t"],
		"correctness_percent": 10,
		"quiz": {
			"open_questions": [],
			"multiple_choice_questions": [],
			"fill_in_the_blank": [],
			"flashcards": [{"id": "fc-1", "front": "only a front"}],
			"micro_reels": []
		}
	}`)

	require.False(t, result.Valid)
	found := false
	for _, msg := range result.Errors {
		if strings.HasPrefix(msg, "quiz.flashcards.0.back:") {
			found = true
		}
	}
	assert.True(t, found, "expected a path-qualified error for the missing back, got %v", result.Errors)
}

func TestValidateLearningContent_MinimumChoiceAnswers(t *testing.T) {
	v := NewContentValidator()

	result := v.ValidateLearningContent(`{
		"success": true,
		"title": "t",
		"question": "q",
		"answer": "a",
		"tips": ["t"],
		"correctness_percent": 0,
		"quiz": {
			"open_questions": [],
			"multiple_choice_questions": [
				{"id": "mc-1", "question": "too few options", "answers": [
					{"text": "a", "is_correct": true},
					{"text": "b", "is_correct": false}
				]}
			],
			"fill_in_the_blank": [],
			"flashcards": [],
			"micro_reels": []
		}
	}`)

	require.False(t, result.Valid)
	joined := strings.Join(result.Errors, "\n")
	assert.Contains(t, joined, "quiz.multiple_choice_questions.0.answers")
	assert.Contains(t, joined, fmt.Sprintf("at least %d answers", MinChoiceAnswers))
}

func TestValidateLearningContent_CorrectFlagWarnings(t *testing.T) {
	v := NewContentValidator()

	buildDoc := func(answers string) string {
		return `{
			"success": true,
			"title": "t",
			"question": "q",
			"answer": "a",
			"tips": ["t"],
			"correctness_percent": 0,
			"quiz": {
				"open_questions": [],
				"multiple_choice_questions": [
					{"id": "mc-1", "question": "q", "answers": ` + answers + `}
				],
				"fill_in_the_blank": [],
				"flashcards": [],
				"micro_reels": []
			}
		}`
	}

	t.Run("zero correct flags", func(t *testing.T) {
		result := v.ValidateLearningContent(buildDoc(`[
			{"text": "a", "is_correct": false},
			{"text": "b", "is_correct": false},
			{"text": "c", "is_correct": false},
			{"text": "d", "is_correct": false}
		]`))

		assert.True(t, result.Valid)
		assert.NotEmpty(t, result.Warnings)
	})

	t.Run("multiple correct flags", func(t *testing.T) {
		result := v.ValidateLearningContent(buildDoc(`[
			{"text": "a", "is_correct": true},
			{"text": "b", "is_correct": true},
			{"text": "c", "is_correct": false},
			{"text": "d", "is_correct": false}
		]`))

		assert.True(t, result.Valid)
		assert.NotEmpty(t, result.Warnings)
	})

	t.Run("exactly one correct flag", func(t *testing.T) {
		result := v.ValidateLearningContent(buildDoc(`[
			{"text": "a", "is_correct": true},
			{"text": "b", "is_correct": false},
			{"text": "c", "is_correct": false},
			{"text": "d", "is_correct": false}
		]`))

		assert.True(t, result.Valid)
		assert.Empty(t, result.Warnings)
	})
}

func TestValidateLearningContent_AcceptsBytesAndDecodedValues(t *testing.T) {
	v := NewContentValidator()

	t.Run("byte slice", func(t *testing.T) {
		result := v.ValidateLearningContent([]byte(validDocumentJSON()))
		assert.True(t, result.Valid, "errors: %v", result.Errors)
	})

	t.Run("non-object value", func(t *testing.T) {
		result := v.ValidateLearningContent(`[1, 2, 3]`)
		assert.False(t, result.Valid)
		assert.NotEmpty(t, result.Errors)
	})
}

func TestValidateLearningContent_DuplicateIDAcrossArrays(t *testing.T) {
	v := NewContentValidator()
	doc := strings.Replace(validDocumentJSON(), `"id": "mr-1"`, `"id": "fc-1"`, 1)

	result := v.ValidateLearningContent(doc)

	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, `quiz.micro_reels.0.id: duplicate id "fc-1"`, result.Errors[0])
}
