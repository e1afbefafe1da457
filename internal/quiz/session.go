package quiz

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/studybuckets/content-service/internal/models"
)

var (
	ErrItemNotFound  = errors.New("quiz item not found")
	ErrWrongItemType = errors.New("operation does not match item type")
	ErrSessionClosed = errors.New("quiz session is closed")
)

// Session owns one user's in-memory quiz run: the shuffled item list, one
// state machine per item, the aggregate progress, and the lifecycle of the
// micro-reel stopwatch. Sessions are ephemeral; nothing here is persisted.
//
// All methods are safe for concurrent use. The state map is keyed by item id;
// a restart tears every timer down and discards every state before the new
// item list is built, so stale keys and zombie ticks are prevented by
// construction.
type Session struct {
	mu sync.Mutex

	id            string
	questionSetID string
	bundle        models.QuizBundle
	builder       *Builder
	tickInterval  time.Duration

	items    []Item
	states   map[string]ItemState
	current  int
	progress Progress
	watch    *Stopwatch // stopwatch of the current item, reels only
	closed   bool

	startedAt time.Time
}

// SessionOption tweaks session construction.
type SessionOption func(*Session)

// WithBuilder injects the item builder (deterministic in tests).
func WithBuilder(b *Builder) SessionOption {
	return func(s *Session) { s.builder = b }
}

// WithTickInterval overrides the one-second stopwatch cadence.
func WithTickInterval(d time.Duration) SessionOption {
	return func(s *Session) { s.tickInterval = d }
}

// NewSession builds and starts a session over the given bundle.
func NewSession(id, questionSetID string, bundle models.QuizBundle, opts ...SessionOption) *Session {
	s := &Session{
		id:            id,
		questionSetID: questionSetID,
		bundle:        bundle,
		builder:       NewBuilder(),
		tickInterval:  time.Second,
		startedAt:     time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mu.Lock()
	s.rebuild()
	s.mu.Unlock()
	return s
}

// rebuild constructs a fresh item list and state set. Callers hold s.mu.
// Teardown happens first: the old stopwatch must be invalidated before any
// new item exists.
//
// The schema rejects ids reused across arrays, but a bundle that arrived
// another way may still carry them. Duplicates collapse to the occurrence
// the shuffle placed first, so every retained item has exactly one state
// machine and the progress total stays reachable.
func (s *Session) rebuild() {
	s.stopWatchLocked()

	built := s.builder.Build(&s.bundle)
	s.items = built[:0]
	s.states = make(map[string]ItemState, len(built))
	for _, item := range built {
		if _, dup := s.states[item.ID]; dup {
			continue
		}
		s.states[item.ID] = newStateFor(item)
		s.items = append(s.items, item)
	}
	s.current = 0
	s.recomputeLocked()
	s.activateCurrentLocked()
}

func newStateFor(item Item) ItemState {
	switch item.Type {
	case TypeOpen:
		return NewOpenQuestionState(*item.Open)
	case TypeMultipleChoice:
		return NewMultipleChoiceState(*item.MultipleChoice)
	case TypeFillInBlank:
		return NewFillInBlankState(*item.FillInBlank)
	case TypeFlashcard:
		return NewFlashcardState(*item.Flashcard)
	case TypeMicroReel:
		return NewMicroReelState(*item.MicroReel)
	default:
		return nil
	}
}

func (s *Session) ID() string            { return s.id }
func (s *Session) QuestionSetID() string { return s.questionSetID }

// Items returns a copy of the shuffled item list.
func (s *Session) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Current returns the item the session is positioned on.
func (s *Session) Current() (Item, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		return Item{}, 0
	}
	return s.items[s.current], s.current
}

// Progress returns the aggregate counters as of the last state change.
func (s *Session) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// Projections returns a snapshot of every item's projection, keyed by item
// id.
func (s *Session) Projections() map[string]Projection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projectionsLocked()
}

func (s *Session) projectionsLocked() map[string]Projection {
	out := make(map[string]Projection, len(s.states))
	for id, state := range s.states {
		out[id] = state.Projection()
	}
	return out
}

// GoTo moves the session to the item at index. The departing item's
// stopwatch is torn down before the new item's starts.
func (s *Session) GoTo(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if index < 0 || index >= len(s.items) {
		return fmt.Errorf("index %d out of range", index)
	}
	if index == s.current {
		return nil
	}
	s.stopWatchLocked()
	s.current = index
	s.activateCurrentLocked()
	return nil
}

// Next advances to the following item, staying put at the end.
func (s *Session) Next() error {
	s.mu.Lock()
	index := s.current + 1
	if index >= len(s.items) {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()
	return s.GoTo(index)
}

// Prev moves back one item, staying put at the start.
func (s *Session) Prev() error {
	s.mu.Lock()
	index := s.current - 1
	s.mu.Unlock()
	if index < 0 {
		return nil
	}
	return s.GoTo(index)
}

// Restart rebuilds the session: all timers are invalidated and all states
// discarded before the new shuffled item list is constructed, and every item
// receives a brand-new instance key.
func (s *Session) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	s.rebuild()
	return nil
}

// Close stops the session's timers for good.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopWatchLocked()
	s.closed = true
}

// activateCurrentLocked starts the reading stopwatch when the current item
// is a micro-reel. The tick callback carries the item's instance key; ticks
// whose key no longer matches the current item are discarded, which makes a
// racing tick from a just-stopped watch harmless.
func (s *Session) activateCurrentLocked() {
	if s.closed || len(s.items) == 0 {
		return
	}
	item := s.items[s.current]
	if item.Type != TypeMicroReel {
		return
	}
	key := item.InstanceKey
	s.watch = NewStopwatch(s.tickInterval, func() { s.tickReel(key) })
}

func (s *Session) stopWatchLocked() {
	if s.watch != nil {
		s.watch.Stop()
		s.watch = nil
	}
}

func (s *Session) tickReel(instanceKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || len(s.items) == 0 {
		return
	}
	item := s.items[s.current]
	if item.InstanceKey != instanceKey {
		return
	}
	state, ok := s.states[item.ID].(*MicroReelState)
	if !ok {
		return
	}
	state.Tick()
	s.recomputeLocked()
}

func (s *Session) recomputeLocked() {
	s.progress = RecomputeProgress(len(s.items), s.projectionsLocked())
}

// ===== PER-ITEM OPERATIONS =====

func (s *Session) openState(itemID string) (*OpenQuestionState, error) {
	state, ok := s.states[itemID]
	if !ok {
		return nil, ErrItemNotFound
	}
	open, ok := state.(*OpenQuestionState)
	if !ok {
		return nil, ErrWrongItemType
	}
	return open, nil
}

// SubmitOpenAnswer sets and submits a free-text answer.
func (s *Session) SubmitOpenAnswer(itemID, text string) error {
	return s.withOpen(itemID, func(state *OpenQuestionState) {
		state.SetAnswer(text)
		state.Submit()
	})
}

// RevealOpenAnswer shows the reference answer for a submitted open question.
func (s *Session) RevealOpenAnswer(itemID string) error {
	return s.withOpen(itemID, (*OpenQuestionState).RevealAnswer)
}

// MarkOpenCorrect records the user's self-grade.
func (s *Session) MarkOpenCorrect(itemID string) error {
	return s.withOpen(itemID, (*OpenQuestionState).MarkCorrect)
}

// EditOpenAnswer reopens a submitted open question for revision.
func (s *Session) EditOpenAnswer(itemID string) error {
	return s.withOpen(itemID, (*OpenQuestionState).Edit)
}

func (s *Session) withOpen(itemID string, fn func(*OpenQuestionState)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.openState(itemID)
	if err != nil {
		return err
	}
	fn(state)
	s.recomputeLocked()
	return nil
}

// SelectChoice records a multiple-choice selection by index.
func (s *Session) SelectChoice(itemID string, index int) error {
	return s.withChoice(itemID, func(state *MultipleChoiceState) { state.Select(index) })
}

// SubmitChoice locks and grades the multiple-choice selection.
func (s *Session) SubmitChoice(itemID string) error {
	return s.withChoice(itemID, func(state *MultipleChoiceState) { state.Submit() })
}

// ResetChoice returns a multiple-choice item to Unanswered.
func (s *Session) ResetChoice(itemID string) error {
	return s.withChoice(itemID, (*MultipleChoiceState).Reset)
}

func (s *Session) withChoice(itemID string, fn func(*MultipleChoiceState)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[itemID]
	if !ok {
		return ErrItemNotFound
	}
	choice, ok := state.(*MultipleChoiceState)
	if !ok {
		return ErrWrongItemType
	}
	fn(choice)
	s.recomputeLocked()
	return nil
}

// SelectBlank records a fill-in-the-blank selection by word-bank text.
func (s *Session) SelectBlank(itemID, text string) error {
	return s.withBlank(itemID, func(state *FillInBlankState) { state.Select(text) })
}

// SubmitBlank locks and grades the fill-in-the-blank selection.
func (s *Session) SubmitBlank(itemID string) error {
	return s.withBlank(itemID, func(state *FillInBlankState) { state.Submit() })
}

// ResetBlank returns a fill-in-the-blank item to Unanswered.
func (s *Session) ResetBlank(itemID string) error {
	return s.withBlank(itemID, (*FillInBlankState).Reset)
}

func (s *Session) withBlank(itemID string, fn func(*FillInBlankState)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[itemID]
	if !ok {
		return ErrItemNotFound
	}
	blank, ok := state.(*FillInBlankState)
	if !ok {
		return ErrWrongItemType
	}
	fn(blank)
	s.recomputeLocked()
	return nil
}

// FlipFlashcard toggles the flashcard's visible side.
func (s *Session) FlipFlashcard(itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[itemID]
	if !ok {
		return ErrItemNotFound
	}
	card, ok := state.(*FlashcardState)
	if !ok {
		return ErrWrongItemType
	}
	card.Flip()
	s.recomputeLocked()
	return nil
}

// PauseReel pauses the current micro-reel's stopwatch accumulation.
func (s *Session) PauseReel(itemID string) error {
	return s.withReel(itemID, (*MicroReelState).Pause)
}

// ResumeReel resumes a paused micro-reel.
func (s *Session) ResumeReel(itemID string) error {
	return s.withReel(itemID, (*MicroReelState).Resume)
}

func (s *Session) withReel(itemID string, fn func(*MicroReelState)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[itemID]
	if !ok {
		return ErrItemNotFound
	}
	reel, ok := state.(*MicroReelState)
	if !ok {
		return ErrWrongItemType
	}
	fn(reel)
	s.recomputeLocked()
	return nil
}

// State exposes the state machine of one item for read access.
func (s *Session) State(itemID string) (ItemState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[itemID]
	if !ok {
		return nil, ErrItemNotFound
	}
	return state, nil
}
