package models

// LearningContentDocument is the envelope produced by a successful schema
// validation. It is never constructed partially: callers either get a complete
// document or a list of validation errors.
type LearningContentDocument struct {
	Success            bool       `json:"success"`
	Title              string     `json:"title"`
	Question           string     `json:"question"`
	Answer             string     `json:"answer"`
	Tips               []string   `json:"tips"`
	CorrectnessPercent float64    `json:"correctness_percent"`
	Quiz               QuizBundle `json:"quiz"`
}

// QuizBundle holds the five question-type arrays of a question set. The
// flattening order used by the quiz session builder follows field order here.
type QuizBundle struct {
	OpenQuestions           []OpenQuestion           `json:"open_questions"`
	MultipleChoiceQuestions []MultipleChoiceQuestion `json:"multiple_choice_questions"`
	FillInTheBlank          []FillInTheBlank         `json:"fill_in_the_blank"`
	Flashcards              []Flashcard              `json:"flashcards"`
	MicroReels              []MicroReel              `json:"micro_reels"`
}

type OpenQuestion struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Answer is a single option of a multiple-choice or fill-in-the-blank
// question. The schema does not enforce that exactly one option per question
// is flagged correct; the validator surfaces deviations as warnings.
type Answer struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type MultipleChoiceQuestion struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Answers  []Answer `json:"answers"`
}

// FillInTheBlank questions carry a {{...}} placeholder inside Question; the
// answers are rendered as a word bank, not inline.
type FillInTheBlank struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Answers  []Answer `json:"answers"`
}

type Flashcard struct {
	ID    string `json:"id"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

type MicroReel struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// LegacyQuestionBundle is the standalone question-set shape accepted by the
// legacy validator, kept for bridging content stored before the envelope
// schema existed. Unlike the envelope, it carries its own id, which may be
// absent on input and is then synthesized.
type LegacyQuestionBundle struct {
	ID                      string                   `json:"id"`
	OpenQuestions           []OpenQuestion           `json:"open_questions"`
	MultipleChoiceQuestions []MultipleChoiceQuestion `json:"multiple_choice_questions"`
	FillInTheBlank          []FillInTheBlank         `json:"fill_in_the_blank"`
	Flashcards              []Flashcard              `json:"flashcards"`
	MicroReels              []MicroReel              `json:"micro_reels"`
}

// Bundle returns the quiz bundle view of a legacy question set.
func (l *LegacyQuestionBundle) Bundle() QuizBundle {
	return QuizBundle{
		OpenQuestions:           l.OpenQuestions,
		MultipleChoiceQuestions: l.MultipleChoiceQuestions,
		FillInTheBlank:          l.FillInTheBlank,
		Flashcards:              l.Flashcards,
		MicroReels:              l.MicroReels,
	}
}
