package quiz

import "github.com/studybuckets/content-service/internal/models"

// ReadThresholdSeconds is the cumulative reading time after which a
// micro-reel counts as read.
const ReadThresholdSeconds = 5

// MicroReelState tracks passive reading time for a micro-reel. The stopwatch
// driving Tick is owned by the session controller, not the state, so the
// state itself stays a pure reducer. HasBeenRead becomes true the moment
// cumulative time reaches the threshold and is never unset, regardless of
// later pausing.
type MicroReelState struct {
	reel models.MicroReel

	timeSpent   int
	isActive    bool
	hasBeenRead bool
}

// NewMicroReelState starts active with zeroed time, the state a freshly
// presented reel begins in.
func NewMicroReelState(reel models.MicroReel) *MicroReelState {
	return &MicroReelState{reel: reel, isActive: true}
}

// Tick advances the stopwatch by one second. Ignored while paused.
func (s *MicroReelState) Tick() {
	if !s.isActive {
		return
	}
	s.timeSpent++
	if s.timeSpent >= ReadThresholdSeconds {
		s.hasBeenRead = true
	}
}

func (s *MicroReelState) Pause()  { s.isActive = false }
func (s *MicroReelState) Resume() { s.isActive = true }

func (s *MicroReelState) TimeSpent() int    { return s.timeSpent }
func (s *MicroReelState) IsActive() bool    { return s.isActive }
func (s *MicroReelState) HasBeenRead() bool { return s.hasBeenRead }

func (s *MicroReelState) Projection() Projection {
	return Projection{
		HasBeenRead:      s.hasBeenRead,
		TimeSpentSeconds: s.timeSpent,
	}
}
