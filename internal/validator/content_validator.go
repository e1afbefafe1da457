package validator

import (
	"encoding/json"
	"fmt"

	"github.com/studybuckets/content-service/internal/models"
)

// MinChoiceAnswers is the hard schema rule for multiple-choice and
// fill-in-the-blank items: one correct answer plus at least three
// distractors.
const MinChoiceAnswers = 4

// Result is the outcome of schema validation. Exactly one of Data and Errors
// is populated: a valid result carries a fully constructed document, an
// invalid one carries every violation found, not just the first.
//
// Warnings report data-quality issues the schema tolerates, currently
// questions whose answers flag zero or more than one option as correct.
type Result struct {
	Valid    bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings,omitempty"`
	Data     *models.LearningContentDocument `json:"data,omitempty"`
}

// ContentValidator validates raw learning content payloads against the
// envelope schema. It is stateless and safe for concurrent use.
type ContentValidator struct{}

func NewContentValidator() *ContentValidator {
	return &ContentValidator{}
}

// ValidateLearningContent accepts a JSON string, raw bytes, or an already
// decoded value, and validates it against the learning content schema. A JSON
// syntax failure yields a single-element error list with the parser's
// message. Structural failures are collected exhaustively, each rendered as
// "<dot.separated.path>: <message>".
func (v *ContentValidator) ValidateLearningContent(raw any) Result {
	value, err := decodeRaw(raw)
	if err != nil {
		return Result{Valid: false, Errors: []string{err.Error()}}
	}

	w := newWalker()
	doc := v.parseDocument(w, value)
	if len(w.errors) > 0 {
		return Result{Valid: false, Errors: w.errors, Warnings: w.warnings}
	}

	return Result{Valid: true, Warnings: w.warnings, Data: doc}
}

func (v *ContentValidator) parseDocument(w *walker, value any) *models.LearningContentDocument {
	root, ok := w.object(value, "")
	if !ok {
		return nil
	}

	doc := &models.LearningContentDocument{}
	doc.Success, _ = w.requireBool(root, "success")
	doc.Title, _ = w.requireString(root, "title")
	doc.Question, _ = w.requireString(root, "question")
	doc.Answer, _ = w.requireString(root, "answer")
	doc.CorrectnessPercent, _ = w.requireNumber(root, "correctness_percent")
	doc.Tips = w.requireStringArray(root, "tips", 1)

	if quizRaw, ok := w.requireField(root, "quiz"); ok {
		if quiz, ok := w.object(quizRaw, "quiz"); ok {
			doc.Quiz = v.parseBundle(w, quiz, "quiz")
		}
	}

	return doc
}

func (v *ContentValidator) parseBundle(w *walker, obj map[string]any, base string) models.QuizBundle {
	var bundle models.QuizBundle

	// Item ids key session state and projections, so they must be unique
	// across all five arrays, not just within one.
	seen := make(map[string]bool)
	uniqueID := func(path, id string) {
		if id == "" {
			return
		}
		if seen[id] {
			w.addError(joinPath(path, "id"), fmt.Sprintf("duplicate id %q", id))
			return
		}
		seen[id] = true
	}

	w.eachItem(obj, base, "open_questions", 0, func(path string, item map[string]any) {
		q := parseOpenQuestion(w, item, path)
		uniqueID(path, q.ID)
		bundle.OpenQuestions = append(bundle.OpenQuestions, q)
	})
	w.eachItem(obj, base, "multiple_choice_questions", 0, func(path string, item map[string]any) {
		q := parseChoiceQuestion(w, item, path)
		uniqueID(path, q.ID)
		bundle.MultipleChoiceQuestions = append(bundle.MultipleChoiceQuestions,
			models.MultipleChoiceQuestion(q))
	})
	w.eachItem(obj, base, "fill_in_the_blank", 0, func(path string, item map[string]any) {
		q := parseChoiceQuestion(w, item, path)
		uniqueID(path, q.ID)
		bundle.FillInTheBlank = append(bundle.FillInTheBlank, models.FillInTheBlank(q))
	})
	w.eachItem(obj, base, "flashcards", 0, func(path string, item map[string]any) {
		f := parseFlashcard(w, item, path)
		uniqueID(path, f.ID)
		bundle.Flashcards = append(bundle.Flashcards, f)
	})
	w.eachItem(obj, base, "micro_reels", 0, func(path string, item map[string]any) {
		m := parseMicroReel(w, item, path)
		uniqueID(path, m.ID)
		bundle.MicroReels = append(bundle.MicroReels, m)
	})

	return bundle
}

func parseOpenQuestion(w *walker, item map[string]any, path string) models.OpenQuestion {
	var q models.OpenQuestion
	q.ID, _ = w.requireStringAt(item, path, "id")
	q.Question, _ = w.requireStringAt(item, path, "question")
	q.Answer, _ = w.requireStringAt(item, path, "answer")
	return q
}

// choiceQuestion is the shared shape of multiple-choice and fill-in-the-blank
// items; the two differ only in how the UI keys a selection.
type choiceQuestion struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Answers  []models.Answer `json:"answers"`
}

func parseChoiceQuestion(w *walker, item map[string]any, path string) choiceQuestion {
	var q choiceQuestion
	q.ID, _ = w.requireStringAt(item, path, "id")
	q.Question, _ = w.requireStringAt(item, path, "question")

	answersPath := joinPath(path, "answers")
	raw, ok := item["answers"]
	if !ok {
		w.addError(answersPath, "is required")
		return q
	}
	arr, ok := raw.([]any)
	if !ok {
		w.addError(answersPath, "must be an array")
		return q
	}
	if len(arr) < MinChoiceAnswers {
		w.addError(answersPath, fmt.Sprintf("must contain at least %d answers", MinChoiceAnswers))
	}

	correct := 0
	for i, el := range arr {
		elPath := fmt.Sprintf("%s.%d", answersPath, i)
		obj, ok := w.object(el, elPath)
		if !ok {
			continue
		}
		var a models.Answer
		a.Text, _ = w.requireStringAt(obj, elPath, "text")
		a.IsCorrect, _ = w.requireBoolAt(obj, elPath, "is_correct")
		if a.IsCorrect {
			correct++
		}
		q.Answers = append(q.Answers, a)
	}

	if correct != 1 {
		w.addWarning(answersPath, fmt.Sprintf("expected exactly one correct answer, found %d", correct))
	}

	return q
}

func parseFlashcard(w *walker, item map[string]any, path string) models.Flashcard {
	var f models.Flashcard
	f.ID, _ = w.requireStringAt(item, path, "id")
	f.Front, _ = w.requireStringAt(item, path, "front")
	f.Back, _ = w.requireStringAt(item, path, "back")
	return f
}

func parseMicroReel(w *walker, item map[string]any, path string) models.MicroReel {
	var m models.MicroReel
	m.ID, _ = w.requireStringAt(item, path, "id")
	m.Text, _ = w.requireStringAt(item, path, "text")
	return m
}

// decodeRaw normalizes the validator input: strings and byte slices are
// parsed as JSON, anything else is assumed to be an already decoded value.
func decodeRaw(raw any) (any, error) {
	switch in := raw.(type) {
	case string:
		var value any
		if err := json.Unmarshal([]byte(in), &value); err != nil {
			return nil, err
		}
		return value, nil
	case []byte:
		var value any
		if err := json.Unmarshal(in, &value); err != nil {
			return nil, err
		}
		return value, nil
	case json.RawMessage:
		var value any
		if err := json.Unmarshal(in, &value); err != nil {
			return nil, err
		}
		return value, nil
	default:
		return raw, nil
	}
}
