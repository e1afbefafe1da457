package quiz

// Projection is the narrow per-item state view consumed by the progress
// aggregator. Each state machine maps its internals onto these flags; the
// aggregator never needs type-specific knowledge.
type Projection struct {
	IsSubmitted     bool `json:"is_submitted"`
	HasSeenAnswer   bool `json:"has_seen_answer"`
	HasBeenRead     bool `json:"has_been_read"`
	IsCorrect       bool `json:"is_correct"`
	IsMarkedCorrect bool `json:"is_marked_correct"`

	// Seconds accumulated by a micro-reel stopwatch; zero for other types.
	TimeSpentSeconds int `json:"time_spent_seconds"`
}

// Engaged reports whether the user has interacted with the item in the way
// its family counts as "answered": submitted, seen the back of a flashcard,
// or read a micro-reel.
func (p Projection) Engaged() bool {
	return p.IsSubmitted || p.HasSeenAnswer || p.HasBeenRead
}

// Correct reports whether the item counts toward the correct-answer total,
// either graded or self-asserted.
func (p Projection) Correct() bool {
	return p.IsCorrect || p.IsMarkedCorrect
}

// ItemState is implemented by all five per-type state machines.
type ItemState interface {
	Projection() Projection
}
