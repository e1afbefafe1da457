package validator

import (
	"github.com/google/uuid"
	"github.com/studybuckets/content-service/internal/models"
)

// IDGenerator produces identifiers for legacy bundles uploaded without one.
// Any version-4-shaped random generator satisfies the contract; tests swap in
// a deterministic one.
type IDGenerator func() string

// LegacyResult is the outcome of validating a standalone question bundle.
type LegacyResult struct {
	Valid    bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings,omitempty"`
	Data     *models.LegacyQuestionBundle `json:"data,omitempty"`
}

// LegacyValidator accepts the pre-envelope question-set shape: the five
// question arrays at the top level, with an optional id. It is more lenient
// than the envelope schema in exactly one way: a missing id is synthesized
// instead of rejected. New content should go through ContentValidator; this
// exists only to bridge previously stored bundles.
type LegacyValidator struct {
	newID IDGenerator
}

func NewLegacyValidator(gen IDGenerator) *LegacyValidator {
	if gen == nil {
		gen = uuid.NewString
	}
	return &LegacyValidator{newID: gen}
}

// ValidateQuestionBundle validates a raw standalone bundle, synthesizing an
// id when the payload carries none.
func (v *LegacyValidator) ValidateQuestionBundle(raw any) LegacyResult {
	value, err := decodeRaw(raw)
	if err != nil {
		return LegacyResult{Valid: false, Errors: []string{err.Error()}}
	}

	w := newWalker()
	root, ok := w.object(value, "")
	if !ok {
		return LegacyResult{Valid: false, Errors: w.errors}
	}

	bundle := &models.LegacyQuestionBundle{}

	// id is optional here, but if present it must be a non-empty string.
	if idRaw, present := root["id"]; present {
		if s, isString := idRaw.(string); isString && s != "" {
			bundle.ID = s
		} else {
			w.addError("id", "must be a non-empty string")
		}
	}

	cv := ContentValidator{}
	quiz := cv.parseBundle(w, root, "")
	bundle.OpenQuestions = quiz.OpenQuestions
	bundle.MultipleChoiceQuestions = quiz.MultipleChoiceQuestions
	bundle.FillInTheBlank = quiz.FillInTheBlank
	bundle.Flashcards = quiz.Flashcards
	bundle.MicroReels = quiz.MicroReels

	if len(w.errors) > 0 {
		return LegacyResult{Valid: false, Errors: w.errors, Warnings: w.warnings}
	}

	if bundle.ID == "" {
		bundle.ID = v.newID()
	}

	return LegacyResult{Valid: true, Warnings: w.warnings, Data: bundle}
}
