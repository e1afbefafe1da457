package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/studybuckets/content-service/internal/events"
	"github.com/studybuckets/content-service/internal/quiz"
	"github.com/studybuckets/content-service/internal/repositories"
)

// QuizService runs interactive quiz sessions over stored question sets.
// Sessions are in-memory: they live for the duration of a study run and are
// not persisted across restarts.
type QuizService interface {
	StartSession(ctx context.Context, questionSetID string) (*SessionResponse, error)
	GetSession(ctx context.Context, sessionID string) (*SessionResponse, error)
	RestartSession(ctx context.Context, sessionID string) (*SessionResponse, error)
	CloseSession(ctx context.Context, sessionID string) error

	GoTo(ctx context.Context, sessionID string, index int) (*SessionResponse, error)
	Next(ctx context.Context, sessionID string) (*SessionResponse, error)
	Prev(ctx context.Context, sessionID string) (*SessionResponse, error)

	SubmitOpenAnswer(ctx context.Context, sessionID, itemID, text string) (*SessionResponse, error)
	RevealOpenAnswer(ctx context.Context, sessionID, itemID string) (*SessionResponse, error)
	MarkOpenCorrect(ctx context.Context, sessionID, itemID string) (*SessionResponse, error)
	EditOpenAnswer(ctx context.Context, sessionID, itemID string) (*SessionResponse, error)

	SelectChoice(ctx context.Context, sessionID, itemID string, index int) (*SessionResponse, error)
	SubmitChoice(ctx context.Context, sessionID, itemID string) (*SessionResponse, error)
	ResetChoice(ctx context.Context, sessionID, itemID string) (*SessionResponse, error)

	SelectBlank(ctx context.Context, sessionID, itemID, text string) (*SessionResponse, error)
	SubmitBlank(ctx context.Context, sessionID, itemID string) (*SessionResponse, error)
	ResetBlank(ctx context.Context, sessionID, itemID string) (*SessionResponse, error)

	FlipFlashcard(ctx context.Context, sessionID, itemID string) (*SessionResponse, error)
	PauseReel(ctx context.Context, sessionID, itemID string) (*SessionResponse, error)
	ResumeReel(ctx context.Context, sessionID, itemID string) (*SessionResponse, error)
}

// SessionResponse is a snapshot of a session after an operation: the shuffled
// deck, current position, per-item projections and the recomputed progress.
type SessionResponse struct {
	SessionID     string                     `json:"session_id"`
	QuestionSetID string                     `json:"question_set_id"`
	Items         []quiz.Item                `json:"items"`
	CurrentIndex  int                        `json:"current_index"`
	Progress      quiz.Progress              `json:"progress"`
	Projections   map[string]quiz.Projection `json:"projections"`
	Completed     bool                       `json:"completed"`
}

type quizService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*quiz.Session
	// completion events are published once per session
	completed map[string]bool

	sessionOpts []quiz.SessionOption
}

func NewQuizService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, opts ...quiz.SessionOption) QuizService {
	return &quizService{
		repo:        repo,
		publisher:   publisher,
		logger:      logger,
		sessions:    make(map[string]*quiz.Session),
		completed:   make(map[string]bool),
		sessionOpts: opts,
	}
}

func (s *quizService) StartSession(ctx context.Context, questionSetID string) (*SessionResponse, error) {
	set, err := s.repo.QuestionSet().GetByID(ctx, questionSetID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionSetNotFound
		}
		return nil, fmt.Errorf("failed to load question set: %w", err)
	}

	doc, err := set.Document()
	if err != nil {
		return nil, fmt.Errorf("failed to decode question set %s: %w", set.ID, err)
	}

	sessionID := uuid.NewString()
	session := quiz.NewSession(sessionID, set.ID, doc.Quiz, s.sessionOpts...)

	s.mu.Lock()
	s.sessions[sessionID] = session
	s.mu.Unlock()

	s.logger.Info("quiz session started",
		"session_id", sessionID,
		"question_set_id", set.ID,
		"items", len(session.Items()))

	return s.snapshot(session), nil
}

func (s *quizService) GetSession(ctx context.Context, sessionID string) (*SessionResponse, error) {
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return s.snapshot(session), nil
}

func (s *quizService) RestartSession(ctx context.Context, sessionID string) (*SessionResponse, error) {
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Restart(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	delete(s.completed, sessionID)
	s.mu.Unlock()

	s.logger.Info("quiz session restarted", "session_id", sessionID)
	return s.snapshot(session), nil
}

func (s *quizService) CloseSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if ok {
		delete(s.sessions, sessionID)
		delete(s.completed, sessionID)
	}
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	session.Close()
	s.logger.Info("quiz session closed", "session_id", sessionID)
	return nil
}

func (s *quizService) GoTo(ctx context.Context, sessionID string, index int) (*SessionResponse, error) {
	return s.apply(ctx, sessionID, func(session *quiz.Session) error {
		return session.GoTo(index)
	})
}

func (s *quizService) Next(ctx context.Context, sessionID string) (*SessionResponse, error) {
	return s.apply(ctx, sessionID, func(session *quiz.Session) error {
		return session.Next()
	})
}

func (s *quizService) Prev(ctx context.Context, sessionID string) (*SessionResponse, error) {
	return s.apply(ctx, sessionID, func(session *quiz.Session) error {
		return session.Prev()
	})
}

func (s *quizService) SubmitOpenAnswer(ctx context.Context, sessionID, itemID, text string) (*SessionResponse, error) {
	return s.apply(ctx, sessionID, func(session *quiz.Session) error {
		return session.SubmitOpenAnswer(itemID, text)
	})
}

func (s *quizService) RevealOpenAnswer(ctx context.Context, sessionID, itemID string) (*SessionResponse, error) {
	return s.apply(ctx, sessionID, func(session *quiz.Session) error {
		return session.RevealOpenAnswer(itemID)
	})
}

func (s *quizService) MarkOpenCorrect(ctx context.Context, sessionID, itemID string) (*SessionResponse, error) {
	return s.apply(ctx, sessionID, func(session *quiz.Session) error {
		return session.MarkOpenCorrect(itemID)
	})
}

func (s *quizService) EditOpenAnswer(ctx context.Context, sessionID, itemID string) (*SessionResponse, error) {
	return s.apply(ctx, sessionID, func(session *quiz.Session) error {
		return session.EditOpenAnswer(itemID)
	})
}

func (s *quizService) SelectChoice(ctx context.Context, sessionID, itemID string, index int) (*SessionResponse, error) {
	return s.apply(ctx, sessionID, func(session *quiz.Session) error {
		return session.SelectChoice(itemID, index)
	})
}

func (s *quizService) SubmitChoice(ctx context.Context, sessionID, itemID string) (*SessionResponse, error) {
	return s.apply(ctx, sessionID, func(session *quiz.Session) error {
		return session.SubmitChoice(itemID)
	})
}

func (s *quizService) ResetChoice(ctx context.Context, sessionID, itemID string) (*SessionResponse, error) {
	return s.apply(ctx, sessionID, func(session *quiz.Session) error {
		return session.ResetChoice(itemID)
	})
}

func (s *quizService) SelectBlank(ctx context.Context, sessionID, itemID, text string) (*SessionResponse, error) {
	return s.apply(ctx, sessionID, func(session *quiz.Session) error {
		return session.SelectBlank(itemID, text)
	})
}

func (s *quizService) SubmitBlank(ctx context.Context, sessionID, itemID string) (*SessionResponse, error) {
	return s.apply(ctx, sessionID, func(session *quiz.Session) error {
		return session.SubmitBlank(itemID)
	})
}

func (s *quizService) ResetBlank(ctx context.Context, sessionID, itemID string) (*SessionResponse, error) {
	return s.apply(ctx, sessionID, func(session *quiz.Session) error {
		return session.ResetBlank(itemID)
	})
}

func (s *quizService) FlipFlashcard(ctx context.Context, sessionID, itemID string) (*SessionResponse, error) {
	return s.apply(ctx, sessionID, func(session *quiz.Session) error {
		return session.FlipFlashcard(itemID)
	})
}

func (s *quizService) PauseReel(ctx context.Context, sessionID, itemID string) (*SessionResponse, error) {
	return s.apply(ctx, sessionID, func(session *quiz.Session) error {
		return session.PauseReel(itemID)
	})
}

func (s *quizService) ResumeReel(ctx context.Context, sessionID, itemID string) (*SessionResponse, error) {
	return s.apply(ctx, sessionID, func(session *quiz.Session) error {
		return session.ResumeReel(itemID)
	})
}

func (s *quizService) lookup(sessionID string) (*quiz.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// apply runs one session operation and returns the resulting snapshot,
// publishing the completion event when the operation crossed the finish
// line.
func (s *quizService) apply(ctx context.Context, sessionID string, op func(*quiz.Session) error) (*SessionResponse, error) {
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	if err := op(session); err != nil {
		return nil, err
	}

	resp := s.snapshot(session)
	if resp.Completed {
		s.publishCompletion(ctx, session, resp.Progress)
	}
	return resp, nil
}

func (s *quizService) publishCompletion(ctx context.Context, session *quiz.Session, progress quiz.Progress) {
	s.mu.Lock()
	if s.completed[session.ID()] {
		s.mu.Unlock()
		return
	}
	s.completed[session.ID()] = true
	s.mu.Unlock()

	event := &events.ContentEvent{
		ID:            uuid.NewString(),
		Type:          events.QuizSessionCompleted,
		Source:        "content-service",
		Timestamp:     time.Now(),
		QuestionSetID: session.QuestionSetID(),
		SessionID:     session.ID(),
		Progress:      &progress,
	}
	if err := s.publisher.PublishContentEvent(ctx, event); err != nil {
		s.logger.Error("failed to publish quiz_session.completed",
			"session_id", session.ID(), "error", err)
	}
}

func (s *quizService) snapshot(session *quiz.Session) *SessionResponse {
	_, index := session.Current()
	progress := session.Progress()
	return &SessionResponse{
		SessionID:     session.ID(),
		QuestionSetID: session.QuestionSetID(),
		Items:         session.Items(),
		CurrentIndex:  index,
		Progress:      progress,
		Projections:   session.Projections(),
		Completed:     progress.Completed(),
	}
}
