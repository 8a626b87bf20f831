package service

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"time"

	"github.com/google/uuid"

	"checkflow/internal/cache"
	"checkflow/internal/catalog"
	"checkflow/internal/model"
)

// SessionService owns the questionnaire state machine: it walks the
// question catalog in declared order, gates questions on their
// dependencies, validates answers, and decides completion. Question
// availability is always recomputed from the current answers, never
// cached, so answer changes immediately add or remove downstream
// questions.
type SessionService struct {
	store       cache.SessionStore
	questions   *catalog.Questions
	suggCache   cache.SuggestionCache
	broadcaster Broadcaster
}

// NewSessionService creates a new session service
func NewSessionService(store cache.SessionStore, questions *catalog.Questions) *SessionService {
	return &SessionService{
		store:     store,
		questions: questions,
	}
}

// SetSuggestionCache wires the cache invalidated when answers change.
func (s *SessionService) SetSuggestionCache(c cache.SuggestionCache) {
	s.suggCache = c
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *SessionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Create starts a fresh session with an empty answer map.
func (s *SessionService) Create(ctx context.Context) (*model.Session, error) {
	now := time.Now()
	session := &model.Session{
		ID:        uuid.New().String(),
		Answers:   make(map[string]model.Answer),
		StartedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return session, nil
}

// Get loads a session by id.
func (s *SessionService) Get(ctx context.Context, sessionID string) (*model.Session, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Delete abandons a session.
func (s *SessionService) Delete(ctx context.Context, sessionID string) error {
	if s.broadcaster != nil {
		s.broadcaster.DisconnectSession(sessionID)
	}
	return s.store.Delete(ctx, sessionID)
}

// applicable reports whether a question's dependency is met by the
// session's current answers.
func (s *SessionService) applicable(q model.Question, session *model.Session) bool {
	if q.DependsOn == nil {
		return true
	}
	answer, answered := session.Answers[q.DependsOn.QuestionID]
	return q.DependsOn.Matches(answer.Value, answered)
}

// CurrentQuestion returns the next unanswered applicable question with
// its option list resolved, or nil once the flow is exhausted. Reaching
// the end of the flow marks the session complete when every applicable
// required question has an answer.
func (s *SessionService) CurrentQuestion(ctx context.Context, sessionID string) (*model.Question, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	for _, q := range s.questions.All() {
		if !s.applicable(q, session) {
			continue
		}
		if session.Answered(q.ID) {
			continue
		}
		next := q
		next.Options = s.questions.ResolveOptions(q, session.Values())
		return &next, nil
	}

	if !session.IsComplete && s.requiredAnswered(session) {
		s.markComplete(session)
		if err := s.store.Set(ctx, session); err != nil {
			return nil, fmt.Errorf("store session: %w", err)
		}
		if s.broadcaster != nil {
			s.broadcaster.BroadcastToSession(session.ID, "session_completed", session)
		}
	}
	return nil, nil
}

// Answer validates and records one answer, then re-evaluates completion.
func (s *SessionService) Answer(ctx context.Context, sessionID, questionID string, value model.AnswerValue) (*model.Session, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	q, ok := s.questions.Get(questionID)
	if !ok {
		return nil, ErrQuestionNotFound
	}

	if err := s.validate(q, session, value); err != nil {
		return nil, err
	}

	session.PutAnswer(questionID, value, time.Now())
	// Re-answering a gate question can hide branches that already have
	// recorded answers; those go stale and are dropped.
	s.pruneStale(session)

	wasComplete := session.IsComplete
	if s.requiredAnswered(session) {
		if !session.IsComplete {
			s.markComplete(session)
		}
	} else {
		session.IsComplete = false
		session.CompletedAt = nil
	}

	if err := s.store.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	s.invalidateDerived(ctx, session.ID)

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToSession(session.ID, "progress_update", s.progressOf(session))
		if session.IsComplete && !wasComplete {
			s.broadcaster.BroadcastToSession(session.ID, "session_completed", session)
		}
	}
	return session, nil
}

// GoBack withdraws the most recently answered question (LIFO) and then
// prunes answers whose questions are no longer applicable, so hidden
// branches never keep stale values. No-op on a session with no answers.
func (s *SessionService) GoBack(ctx context.Context, sessionID string) (*model.Session, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(session.AnswerOrder) == 0 {
		return session, nil
	}

	last := session.AnswerOrder[len(session.AnswerOrder)-1]
	session.RemoveAnswer(last)
	s.pruneStale(session)

	session.IsComplete = false
	session.CompletedAt = nil
	session.UpdatedAt = time.Now()

	if err := s.store.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	s.invalidateDerived(ctx, session.ID)

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToSession(session.ID, "progress_update", s.progressOf(session))
	}
	return session, nil
}

// Progress reports answered vs currently-applicable question counts.
// Total changes dynamically as conditional questions become relevant.
func (s *SessionService) Progress(ctx context.Context, sessionID string) (*model.Progress, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.progressOf(session), nil
}

func (s *SessionService) progressOf(session *model.Session) *model.Progress {
	total, current := 0, 0
	for _, q := range s.questions.All() {
		if !s.applicable(q, session) {
			continue
		}
		total++
		if session.Answered(q.ID) {
			current++
		}
	}
	p := &model.Progress{Current: current, Total: total}
	if total > 0 {
		p.Percentage = int(math.Round(float64(current) / float64(total) * 100))
	}
	return p
}

// pruneStale drops answers whose questions are no longer applicable.
// Removing one answer can hide further questions, so the scan repeats
// until the answer map is consistent with the dependency rules.
func (s *SessionService) pruneStale(session *model.Session) {
	for {
		removed := false
		for _, id := range append([]string(nil), session.AnswerOrder...) {
			q, ok := s.questions.Get(id)
			if !ok {
				continue
			}
			if !s.applicable(q, session) {
				session.RemoveAnswer(id)
				removed = true
			}
		}
		if !removed {
			break
		}
	}
}

// requiredAnswered reports whether every applicable required question
// has an answer.
func (s *SessionService) requiredAnswered(session *model.Session) bool {
	for _, q := range s.questions.All() {
		if !q.Required {
			continue
		}
		if !s.applicable(q, session) {
			continue
		}
		if !session.Answered(q.ID) {
			return false
		}
	}
	return true
}

func (s *SessionService) markComplete(session *model.Session) {
	now := time.Now()
	session.IsComplete = true
	session.CompletedAt = &now
	session.UpdatedAt = now
}

func (s *SessionService) invalidateDerived(ctx context.Context, sessionID string) {
	if s.suggCache != nil {
		// Suggestions are a pure function of the answers; any change
		// makes the cached set stale.
		_ = s.suggCache.Invalidate(ctx, sessionID)
	}
}

// validate applies the per-type answer rules: required values must be
// non-empty, selected options must exist in the currently valid option
// set, numbers must satisfy min/max, and text must match the pattern.
func (s *SessionService) validate(q model.Question, session *model.Session, v model.AnswerValue) error {
	if q.Required && v.IsEmpty() {
		return &ValidationError{QuestionID: q.ID, Reason: "answer is required"}
	}
	if v.IsEmpty() {
		return nil
	}

	options := s.questions.ResolveOptions(q, session.Values())

	switch q.Type {
	case model.QuestionTypeSingleSelect:
		if v.Kind != model.ValueText {
			return &ValidationError{QuestionID: q.ID, Reason: "expected a single option value"}
		}
		if !model.HasOption(options, v.Text) {
			return &ValidationError{QuestionID: q.ID, Reason: fmt.Sprintf("%q is not a valid option", v.Text)}
		}
	case model.QuestionTypeMultiSelect:
		if v.Kind != model.ValueList {
			return &ValidationError{QuestionID: q.ID, Reason: "expected a list of option values"}
		}
		for _, item := range v.List {
			if !model.HasOption(options, item) {
				return &ValidationError{QuestionID: q.ID, Reason: fmt.Sprintf("%q is not a valid option", item)}
			}
		}
	case model.QuestionTypeNumber, model.QuestionTypeScale:
		n, ok := v.AsNumber()
		if !ok {
			return &ValidationError{QuestionID: q.ID, Reason: "expected a number"}
		}
		if q.Validation != nil {
			if q.Validation.Min != nil && n < *q.Validation.Min {
				return &ValidationError{QuestionID: q.ID, Reason: fmt.Sprintf("must be at least %g", *q.Validation.Min)}
			}
			if q.Validation.Max != nil && n > *q.Validation.Max {
				return &ValidationError{QuestionID: q.ID, Reason: fmt.Sprintf("must be at most %g", *q.Validation.Max)}
			}
		}
	case model.QuestionTypeBoolean:
		if v.Kind != model.ValueBool {
			return &ValidationError{QuestionID: q.ID, Reason: "expected true or false"}
		}
	case model.QuestionTypeText, model.QuestionTypeFile:
		if v.Kind != model.ValueText {
			return &ValidationError{QuestionID: q.ID, Reason: "expected text"}
		}
		if q.Validation != nil && q.Validation.Pattern != "" {
			re, err := regexp.Compile(q.Validation.Pattern)
			if err != nil {
				return fmt.Errorf("question %s has invalid pattern: %w", q.ID, err)
			}
			if !re.MatchString(v.Text) {
				return &ValidationError{QuestionID: q.ID, Reason: "value has an invalid format"}
			}
		}
	default:
		return &ValidationError{QuestionID: q.ID, Reason: fmt.Sprintf("unsupported question type %q", q.Type)}
	}
	return nil
}
