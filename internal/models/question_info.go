package models

// QuestionInfo is the derived per-type count summary stored alongside a
// question set for fast overview rendering. It is recomputed from the bundle
// it summarizes, never maintained independently.
type QuestionInfo struct {
	OpenQuestions           int `json:"open_questions"`
	MultipleChoiceQuestions int `json:"multiple_choice_questions"`
	FillInTheBlank          int `json:"fill_in_the_blank"`
	Flashcards              int `json:"flashcards"`
	MicroReels              int `json:"micro_reels"`
	Total                   int `json:"total"`
}

// Summarize derives QuestionInfo from a quiz bundle. A nil bundle or nil
// array counts as zero; Total is always the sum of the five counts.
func Summarize(bundle *QuizBundle) QuestionInfo {
	if bundle == nil {
		return QuestionInfo{}
	}

	info := QuestionInfo{
		OpenQuestions:           len(bundle.OpenQuestions),
		MultipleChoiceQuestions: len(bundle.MultipleChoiceQuestions),
		FillInTheBlank:          len(bundle.FillInTheBlank),
		Flashcards:              len(bundle.Flashcards),
		MicroReels:              len(bundle.MicroReels),
	}
	info.Total = info.OpenQuestions +
		info.MultipleChoiceQuestions +
		info.FillInTheBlank +
		info.Flashcards +
		info.MicroReels
	return info
}

// SummarizeDocument derives QuestionInfo from a validated document.
func SummarizeDocument(doc *LearningContentDocument) QuestionInfo {
	if doc == nil {
		return QuestionInfo{}
	}
	return Summarize(&doc.Quiz)
}
