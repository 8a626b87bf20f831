package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"checkflow/internal/cache"
	"checkflow/internal/catalog"
	"checkflow/internal/model"
)

// Weights are the tunable constants of the additive scoring heuristic.
// They encode the domain intuition that explicit requests dominate and
// property size / frequency are secondary modifiers.
type Weights struct {
	RoomBase          float64
	ServiceTypeMatch  float64
	PriorityAreaMatch float64
	SmallGuestPenalty float64
	LargeBonus        float64
	RoomThreshold     float64

	TaskBase              float64
	FrequencyMismatch     float64
	FrequencyExact        float64
	DeepCleanHighPriority float64
	SanitizationMatch     float64
	ServiceKeywordMatch   float64
	TaskThreshold         float64

	OneTimeMultiplier float64
}

// DefaultWeights returns the stock heuristic constants.
func DefaultWeights() Weights {
	return Weights{
		RoomBase:          0.5,
		ServiceTypeMatch:  0.2,
		PriorityAreaMatch: 0.3,
		SmallGuestPenalty: 0.2,
		LargeBonus:        0.1,
		RoomThreshold:     0.6,

		TaskBase:              0.7,
		FrequencyMismatch:     0.2,
		FrequencyExact:        0.2,
		DeepCleanHighPriority: 0.2,
		SanitizationMatch:     0.3,
		ServiceKeywordMatch:   0.3,
		TaskThreshold:         0.5,

		OneTimeMultiplier: 1.3,
	}
}

// SuggestionService scores rooms and tasks against accumulated answers.
// Scoring is a pure function of (template, answers); the per-session
// cache only avoids recomputation between reads.
type SuggestionService struct {
	weights   Weights
	templates catalog.TemplateSource
	suggCache cache.SuggestionCache
}

// NewSuggestionService creates a new suggestion service
func NewSuggestionService(weights Weights, templates catalog.TemplateSource) *SuggestionService {
	return &SuggestionService{
		weights:   weights,
		templates: templates,
	}
}

// SetCache wires the per-session suggestion cache.
func (s *SuggestionService) SetCache(c cache.SuggestionCache) {
	s.suggCache = c
}

// ForSession computes (or returns cached) suggestions for a session's
// answers against the template matching its service and property type.
func (s *SuggestionService) ForSession(ctx context.Context, session *model.Session) (*model.SuggestionSet, error) {
	if s.suggCache != nil {
		if cached, err := s.suggCache.GetSuggestions(ctx, session.ID); err == nil && cached != nil {
			return cached, nil
		}
	}

	answers := session.Values()
	serviceType := answers.StringAt(catalog.QServiceType)
	propertyType := answers.StringAt(catalog.QPropertyType)

	templates, err := s.templates.DefaultTemplates(ctx, serviceType, propertyType)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	var template *model.Template
	if len(templates) > 0 {
		template = templates[0]
	} else {
		all, err := s.templates.Templates(ctx)
		if err != nil {
			return nil, fmt.Errorf("load templates: %w", err)
		}
		if len(all) == 0 {
			return &model.SuggestionSet{}, nil
		}
		template = all[0]
	}

	rooms := s.GenerateRoomSuggestions(template, answers)
	set := &model.SuggestionSet{
		Rooms:         rooms,
		EstimatedTime: s.CalculateEstimatedTime(template, rooms, answers),
	}

	if s.suggCache != nil {
		_ = s.suggCache.SetSuggestions(ctx, session.ID, set)
	}
	return set, nil
}

// GenerateRoomSuggestions scores every room in the template, ordered by
// descending confidence. Confidence is always clamped to [0,1].
func (s *SuggestionService) GenerateRoomSuggestions(template *model.Template, answers model.AnswerSet) []model.RoomSuggestion {
	serviceType := answers.StringAt(catalog.QServiceType)
	propertySize := answers.StringAt(catalog.QPropertySize)
	priorityAreas := answers.ListAt(catalog.QPriorityAreas)

	var suggestions []model.RoomSuggestion
	for _, room := range template.AllRooms() {
		confidence := s.weights.RoomBase
		reasons := []string{"included in template"}

		if serviceType != "" && room.Type == serviceType {
			confidence += s.weights.ServiceTypeMatch
			reasons = append(reasons, "matches service type")
		}
		for _, area := range priorityAreas {
			if strings.EqualFold(area, room.Name) || strings.Contains(strings.ToLower(room.Name), strings.ToLower(area)) {
				confidence += s.weights.PriorityAreaMatch
				reasons = append(reasons, "marked as a priority area")
				break
			}
		}
		if propertySize == "small" && strings.Contains(room.Name, "Guest") {
			confidence -= s.weights.SmallGuestPenalty
			reasons = append(reasons, "guest room on a small property")
		}
		if propertySize == "large" {
			confidence += s.weights.LargeBonus
			reasons = append(reasons, "large property")
		}

		confidence = clamp01(confidence)
		suggestions = append(suggestions, model.RoomSuggestion{
			RoomID:         room.ID,
			Confidence:     confidence,
			Reason:         strings.Join(reasons, "; "),
			IsSelected:     confidence > s.weights.RoomThreshold,
			SuggestedTasks: s.generateTaskSuggestions(room, answers),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})
	return suggestions
}

func (s *SuggestionService) generateTaskSuggestions(room model.Room, answers model.AnswerSet) []model.TaskSuggestion {
	frequency := answers.StringAt(catalog.QFrequency)
	requirements := answers.ListAt(catalog.QSpecialRequirements)
	services := answers.ListAt(catalog.QAdditionalServices)

	var suggestions []model.TaskSuggestion
	for _, task := range room.Tasks {
		confidence := s.weights.TaskBase
		reasons := []string{"default task for " + room.Name}
		taskName := strings.ToLower(task.Name)

		if frequency == "one-time" && task.Frequency == "daily" {
			confidence -= s.weights.FrequencyMismatch
			reasons = append(reasons, "daily task on a one-time visit")
		}
		if frequency != "" && frequency == task.Frequency {
			confidence += s.weights.FrequencyExact
			reasons = append(reasons, "matches requested frequency")
		}
		if containsFold(requirements, "deep-clean") && task.Priority == model.PriorityHigh {
			confidence += s.weights.DeepCleanHighPriority
			reasons = append(reasons, "high priority for deep clean")
		}
		if containsFold(requirements, "sanitization") && strings.Contains(taskName, "disinfect") {
			confidence += s.weights.SanitizationMatch
			reasons = append(reasons, "covers sanitization")
		}
		for _, svc := range services {
			if strings.Contains(taskName, strings.ToLower(svc)) {
				confidence += s.weights.ServiceKeywordMatch
				reasons = append(reasons, "requested service: "+svc)
			}
		}

		confidence = clamp01(confidence)
		suggestions = append(suggestions, model.TaskSuggestion{
			TaskID:     task.ID,
			RoomID:     room.ID,
			Confidence: confidence,
			Reason:     strings.Join(reasons, "; "),
			IsSelected: confidence > s.weights.TaskThreshold,
		})
	}
	return suggestions
}

// CalculateEstimatedTime sums estimates over tasks whose parent room
// and the task itself are both selected. One-time visits carry a setup
// overhead multiplier.
func (s *SuggestionService) CalculateEstimatedTime(template *model.Template, suggestions []model.RoomSuggestion, answers model.AnswerSet) int {
	taskTime := make(map[string]int)
	for _, room := range template.AllRooms() {
		for _, task := range room.Tasks {
			taskTime[task.ID] = task.EstimatedTime
		}
	}

	total := 0.0
	for _, room := range suggestions {
		if !room.IsSelected {
			continue
		}
		for _, task := range room.SuggestedTasks {
			if !task.IsSelected {
				continue
			}
			minutes := taskTime[task.TaskID]
			if task.IsEdited && task.EditedTime > 0 {
				minutes = task.EditedTime
			}
			total += float64(minutes)
		}
	}

	if answers.StringAt(catalog.QFrequency) == "one-time" {
		total *= s.weights.OneTimeMultiplier
	}
	return int(total)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
