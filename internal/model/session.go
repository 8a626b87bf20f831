package model

import "time"

// Session is one in-progress questionnaire. It owns its answer map
// exclusively for its lifetime; the engines only read derived views.
type Session struct {
	ID          string            `json:"id" bson:"_id,omitempty"`
	Answers     map[string]Answer `json:"answers" bson:"answers"`
	AnswerOrder []string          `json:"answerOrder" bson:"answerOrder"`
	IsComplete  bool              `json:"isComplete" bson:"isComplete"`
	StartedAt   time.Time         `json:"startedAt" bson:"startedAt"`
	UpdatedAt   time.Time         `json:"updatedAt" bson:"updatedAt"`
	CompletedAt *time.Time        `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
}

// Values returns the answer set the engines consume.
func (s *Session) Values() AnswerSet {
	set := make(AnswerSet, len(s.Answers))
	for id, a := range s.Answers {
		set[id] = a.Value
	}
	return set
}

// Answered reports whether the question has a recorded answer.
func (s *Session) Answered(questionID string) bool {
	_, ok := s.Answers[questionID]
	return ok
}

// PutAnswer records an answer, tracking submission order for GoBack.
func (s *Session) PutAnswer(questionID string, v AnswerValue, now time.Time) {
	if s.Answers == nil {
		s.Answers = make(map[string]Answer)
	}
	if !s.Answered(questionID) {
		s.AnswerOrder = append(s.AnswerOrder, questionID)
	}
	s.Answers[questionID] = Answer{QuestionID: questionID, Value: v, AnsweredAt: now}
	s.UpdatedAt = now
}

// RemoveAnswer drops an answer and its order entry.
func (s *Session) RemoveAnswer(questionID string) {
	delete(s.Answers, questionID)
	for i, id := range s.AnswerOrder {
		if id == questionID {
			s.AnswerOrder = append(s.AnswerOrder[:i], s.AnswerOrder[i+1:]...)
			break
		}
	}
}

// Progress summarizes how far a session has advanced through the
// currently applicable questions.
type Progress struct {
	Current    int `json:"current"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}
