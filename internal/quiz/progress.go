package quiz

// Progress is the aggregate view of a running session.
type Progress struct {
	TotalQuestions    int `json:"total_questions"`
	AnsweredQuestions int `json:"answered_questions"`
	CorrectAnswers    int `json:"correct_answers"`
	TimeSpent         int `json:"time_spent"`
}

// RecomputeProgress rebuilds the aggregate counts from the full projection
// map. The recomputation is total rather than incremental so an overwritten
// or removed state can never leave a stale count behind; callers invoke it
// after every single item state change.
func RecomputeProgress(total int, states map[string]Projection) Progress {
	progress := Progress{TotalQuestions: total}

	for _, p := range states {
		if p.Engaged() {
			progress.AnsweredQuestions++
		}
		if p.Correct() {
			progress.CorrectAnswers++
		}
		progress.TimeSpent += p.TimeSpentSeconds
	}

	return progress
}

// Completed reports whether every item in the session has been engaged with.
func (p Progress) Completed() bool {
	return p.TotalQuestions > 0 && p.AnsweredQuestions >= p.TotalQuestions
}
