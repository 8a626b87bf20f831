package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkflow/internal/catalog"
	"checkflow/internal/model"
)

func scoringTemplate() *model.Template {
	return &model.Template{
		ID:           "tpl-test",
		Name:         "Scoring test",
		ServiceType:  "residential",
		PropertyType: "house",
		Categories: []model.Category{
			{
				ID:   "cat",
				Name: "Rooms",
				Rooms: []model.Room{
					{
						ID:   "room-kitchen",
						Name: "Kitchen",
						Type: "residential",
						Tasks: []model.Task{
							{ID: "t-disinfect", Name: "Wipe and disinfect countertops", EstimatedTime: 10, Priority: model.PriorityHigh, Frequency: "daily"},
							{ID: "t-windows", Name: "Clean windows", EstimatedTime: 20, Priority: model.PriorityLow, Frequency: "monthly"},
						},
					},
					{
						ID:   "room-guest",
						Name: "Guest Suite",
						Type: "residential",
						Tasks: []model.Task{
							{ID: "t-guest", Name: "Refresh guest bedding", EstimatedTime: 10, Priority: model.PriorityLow, Frequency: "monthly"},
						},
					},
				},
			},
		},
	}
}

func newSuggestionService() *SuggestionService {
	return NewSuggestionService(DefaultWeights(), catalog.NewStaticTemplates(catalog.BuiltinTemplates()))
}

func roomByID(t *testing.T, rooms []model.RoomSuggestion, id string) model.RoomSuggestion {
	t.Helper()
	for _, r := range rooms {
		if r.RoomID == id {
			return r
		}
	}
	t.Fatalf("room %s not in suggestions", id)
	return model.RoomSuggestion{}
}

func TestConfidenceStaysInBounds(t *testing.T) {
	svc := newSuggestionService()
	template := scoringTemplate()

	// Stack every boost at once
	answers := model.AnswerSet{
		catalog.QServiceType:         model.TextValue("residential"),
		catalog.QPropertySize:        model.TextValue("large"),
		catalog.QPriorityAreas:       model.ListValue([]string{"Kitchen", "Guest Suite"}),
		catalog.QFrequency:           model.TextValue("daily"),
		catalog.QSpecialRequirements: model.ListValue([]string{"deep-clean", "sanitization"}),
		catalog.QAdditionalServices:  model.ListValue([]string{"windows", "countertops"}),
	}

	for _, room := range svc.GenerateRoomSuggestions(template, answers) {
		assert.GreaterOrEqual(t, room.Confidence, 0.0)
		assert.LessOrEqual(t, room.Confidence, 1.0)
		for _, task := range room.SuggestedTasks {
			assert.GreaterOrEqual(t, task.Confidence, 0.0)
			assert.LessOrEqual(t, task.Confidence, 1.0)
		}
	}
}

func TestGuestRoomPenaltyOnSmallProperty(t *testing.T) {
	svc := newSuggestionService()
	template := scoringTemplate()

	small := svc.GenerateRoomSuggestions(template, model.AnswerSet{
		catalog.QPropertySize: model.TextValue("small"),
	})
	large := svc.GenerateRoomSuggestions(template, model.AnswerSet{
		catalog.QPropertySize: model.TextValue("large"),
	})

	smallGuest := roomByID(t, small, "room-guest")
	largeGuest := roomByID(t, large, "room-guest")

	// -0.2 small penalty vs +0.1 large bonus, all else equal
	assert.InDelta(t, 0.3, largeGuest.Confidence-smallGuest.Confidence, 1e-9)
	assert.False(t, smallGuest.IsSelected)
}

func TestSuggestionsOrderedByConfidence(t *testing.T) {
	svc := newSuggestionService()
	template := scoringTemplate()

	rooms := svc.GenerateRoomSuggestions(template, model.AnswerSet{
		catalog.QPropertySize:  model.TextValue("small"),
		catalog.QPriorityAreas: model.ListValue([]string{"Kitchen"}),
	})

	require.Len(t, rooms, 2)
	for i := 1; i < len(rooms); i++ {
		assert.GreaterOrEqual(t, rooms[i-1].Confidence, rooms[i].Confidence)
	}
	assert.Equal(t, "room-kitchen", rooms[0].RoomID)
}

func TestTaskFrequencyAdjustments(t *testing.T) {
	svc := newSuggestionService()
	template := scoringTemplate()

	oneTime := svc.GenerateRoomSuggestions(template, model.AnswerSet{
		catalog.QFrequency: model.TextValue("one-time"),
	})
	daily := svc.GenerateRoomSuggestions(template, model.AnswerSet{
		catalog.QFrequency: model.TextValue("daily"),
	})

	var oneTimeTask, dailyTask model.TaskSuggestion
	for _, task := range roomByID(t, oneTime, "room-kitchen").SuggestedTasks {
		if task.TaskID == "t-disinfect" {
			oneTimeTask = task
		}
	}
	for _, task := range roomByID(t, daily, "room-kitchen").SuggestedTasks {
		if task.TaskID == "t-disinfect" {
			dailyTask = task
		}
	}

	// Daily task scores -0.2 on a one-time visit and +0.2 on a daily one
	assert.InDelta(t, 0.5, oneTimeTask.Confidence, 1e-9)
	assert.InDelta(t, 0.9, dailyTask.Confidence, 1e-9)
	assert.False(t, oneTimeTask.IsSelected)
	assert.True(t, dailyTask.IsSelected)
}

func TestSanitizationBoostsDisinfectTasks(t *testing.T) {
	svc := newSuggestionService()
	template := scoringTemplate()

	rooms := svc.GenerateRoomSuggestions(template, model.AnswerSet{
		catalog.QSpecialRequirements: model.ListValue([]string{"sanitization"}),
	})

	for _, task := range roomByID(t, rooms, "room-kitchen").SuggestedTasks {
		if task.TaskID == "t-disinfect" {
			// base 0.7 + 0.3 sanitization, clamped
			assert.InDelta(t, 1.0, task.Confidence, 1e-9)
		}
	}
}

func TestCalculateEstimatedTime(t *testing.T) {
	svc := newSuggestionService()
	template := scoringTemplate()

	answers := model.AnswerSet{catalog.QFrequency: model.TextValue("weekly")}
	rooms := svc.GenerateRoomSuggestions(template, answers)

	// Only tasks under selected rooms count; force a known selection.
	for i := range rooms {
		rooms[i].IsSelected = rooms[i].RoomID == "room-kitchen"
		for j := range rooms[i].SuggestedTasks {
			rooms[i].SuggestedTasks[j].IsSelected = true
		}
	}

	assert.Equal(t, 30, svc.CalculateEstimatedTime(template, rooms, answers))

	// One-time visits carry the 1.3 overhead multiplier
	oneTime := model.AnswerSet{catalog.QFrequency: model.TextValue("one-time")}
	assert.Equal(t, 39, svc.CalculateEstimatedTime(template, rooms, oneTime))

	// Edited estimates override the catalog value
	rooms[0].SuggestedTasks[0].IsEdited = true
	rooms[0].SuggestedTasks[0].EditedTime = 60
	assert.Equal(t, 80, svc.CalculateEstimatedTime(template, rooms, answers))
}
