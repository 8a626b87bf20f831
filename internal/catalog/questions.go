package catalog

import (
	"checkflow/internal/model"
)

// Canonical question ids referenced by the engines.
const (
	QServiceType          = "service-type"
	QPropertyType         = "property-type"
	QPropertySize         = "property-size"
	QRooms                = "rooms"
	QFrequency            = "frequency"
	QPriorityAreas        = "priority-areas"
	QPetFriendly          = "pet-friendly"
	QNumberOfBedrooms     = "number-of-bedrooms"
	QDeepCleanAreas       = "deep-clean-areas"
	QSpecialRequirements  = "special-requirements"
	QAdditionalServices   = "additional-services"
	QSpecialRequests      = "special-requests"
	QPriority             = "priority"
	QPhotoUpload          = "photo-upload"
)

// DynamicOptions resolves a question's option list from a prior answer.
// Sets is keyed by the source question's answered value; Default is used
// when the source answer has no dedicated set.
type DynamicOptions struct {
	SourceQuestion string                    `yaml:"sourceQuestion"`
	Sets           map[string][]model.Option `yaml:"sets"`
	Default        []model.Option            `yaml:"default"`
}

// Questions is a read-only, ordered question flow. It is constructed
// once and handed to the session engine explicitly; nothing in this
// package mutates it after construction.
type Questions struct {
	list    []model.Question
	index   map[string]int
	dynamic map[string]DynamicOptions
}

// NewQuestions builds a flow from an ordered question list and its
// dynamic option tables (keyed by Question.OptionsFrom).
func NewQuestions(list []model.Question, dynamic map[string]DynamicOptions) *Questions {
	idx := make(map[string]int, len(list))
	for i, q := range list {
		idx[q.ID] = i
	}
	return &Questions{list: list, index: idx, dynamic: dynamic}
}

// All returns the questions in declared order.
func (q *Questions) All() []model.Question {
	return q.list
}

// Len returns the number of questions in the flow.
func (q *Questions) Len() int {
	return len(q.list)
}

// Get returns a copy of the question with the given id.
func (q *Questions) Get(id string) (model.Question, bool) {
	i, ok := q.index[id]
	if !ok {
		return model.Question{}, false
	}
	return q.list[i], true
}

// ResolveOptions returns the concrete option list for a question,
// consulting the dynamic tables when the question declares OptionsFrom.
func (q *Questions) ResolveOptions(question model.Question, answers model.AnswerSet) []model.Option {
	if question.OptionsFrom == "" {
		return question.Options
	}
	dyn, ok := q.dynamic[question.OptionsFrom]
	if !ok {
		return question.Options
	}
	if v, answered := answers[dyn.SourceQuestion]; answered {
		if set, found := dyn.Sets[v.Text]; found {
			return set
		}
	}
	if dyn.Default != nil {
		return dyn.Default
	}
	return question.Options
}

func opts(values ...string) []model.Option {
	out := make([]model.Option, len(values))
	for i, v := range values {
		out[i] = model.Option{Value: v, Label: v}
	}
	return out
}

// DefaultQuestions returns the built-in cleaning questionnaire flow.
func DefaultQuestions() *Questions {
	list := []model.Question{
		{
			ID:       QServiceType,
			Text:     "What kind of service are you setting up?",
			Type:     model.QuestionTypeSingleSelect,
			Required: true,
			Options: []model.Option{
				{Value: "residential", Label: "Residential cleaning"},
				{Value: "commercial", Label: "Commercial cleaning"},
				{Value: "deep_clean", Label: "Deep clean"},
				{Value: "move_out", Label: "Move-out clean"},
			},
		},
		{
			ID:       QPropertyType,
			Text:     "What type of property is it?",
			Type:     model.QuestionTypeSingleSelect,
			Required: true,
			Options: []model.Option{
				{Value: "house", Label: "House"},
				{Value: "apartment", Label: "Apartment"},
				{Value: "office", Label: "Office"},
				{Value: "retail", Label: "Retail space"},
			},
		},
		{
			ID:       QPropertySize,
			Text:     "How large is the property?",
			Type:     model.QuestionTypeSingleSelect,
			Required: true,
			Options: []model.Option{
				{Value: "small", Label: "Small (under 100 m²)"},
				{Value: "medium", Label: "Medium (100–250 m²)"},
				{Value: "large", Label: "Large (over 250 m²)"},
			},
		},
		{
			ID:          QRooms,
			Text:        "Which rooms or areas should be covered?",
			Type:        model.QuestionTypeMultiSelect,
			Required:    true,
			OptionsFrom: "rooms-by-property",
			DependsOn: &model.Dependency{
				QuestionID: QPropertyType,
				Condition:  model.ConditionNotEmpty,
			},
		},
		{
			ID:       QFrequency,
			Text:     "How often will this checklist run?",
			Type:     model.QuestionTypeSingleSelect,
			Required: true,
			Options: []model.Option{
				{Value: "one-time", Label: "One-time"},
				{Value: "daily", Label: "Daily"},
				{Value: "weekly", Label: "Weekly"},
				{Value: "monthly", Label: "Monthly"},
			},
		},
		{
			ID:   QNumberOfBedrooms,
			Text: "How many bedrooms does the house have?",
			Type: model.QuestionTypeNumber,
			DependsOn: &model.Dependency{
				QuestionID: QPropertyType,
				Expected:   "house",
				Condition:  model.ConditionEquals,
			},
			Validation: &model.Validation{Min: ptr(1), Max: ptr(12)},
		},
		{
			ID:   QPetFriendly,
			Text: "Are there pets on the property?",
			Type: model.QuestionTypeBoolean,
			DependsOn: &model.Dependency{
				QuestionID: QServiceType,
				Expected:   "residential",
				Condition:  model.ConditionEquals,
			},
		},
		{
			ID:   QDeepCleanAreas,
			Text: "Which areas need a deep clean?",
			Type: model.QuestionTypeMultiSelect,
			DependsOn: &model.Dependency{
				QuestionID: QServiceType,
				Expected:   "deep_clean",
				Condition:  model.ConditionEquals,
			},
			Options: opts("Oven", "Fridge", "Windows", "Carpets", "Baseboards", "Grout"),
		},
		{
			ID:   QPriorityAreas,
			Text: "Which areas matter most to you?",
			Type: model.QuestionTypeMultiSelect,
			DependsOn: &model.Dependency{
				QuestionID: QRooms,
				Condition:  model.ConditionNotEmpty,
			},
			Options: opts("Kitchen", "Bathroom", "Bedroom", "Living Room", "Entrance", "Guest Suite"),
		},
		{
			ID:      QSpecialRequirements,
			Text:    "Any special requirements?",
			Type:    model.QuestionTypeMultiSelect,
			Options: opts("deep-clean", "sanitization", "eco-friendly", "allergen-free"),
		},
		{
			ID:      QAdditionalServices,
			Text:    "Any additional services?",
			Type:    model.QuestionTypeMultiSelect,
			Options: opts("windows", "laundry", "dishes", "organizing", "trash"),
		},
		{
			ID:   QPriority,
			Text: "Which category should be done first?",
			Type: model.QuestionTypeSingleSelect,
			Options: []model.Option{
				{Value: "bedroom", Label: "Bedrooms"},
				{Value: "bathroom", Label: "Bathrooms"},
				{Value: "kitchen", Label: "Kitchen"},
				{Value: "living_room", Label: "Living room"},
			},
		},
		{
			ID:         QSpecialRequests,
			Text:       "Anything else we should know?",
			Type:       model.QuestionTypeText,
			Validation: &model.Validation{Pattern: `^[^<>]*$`},
		},
		{
			ID:   QPhotoUpload,
			Text: "Upload a photo of the space for AI task detection (optional)",
			Type: model.QuestionTypeFile,
		},
	}

	dynamic := map[string]DynamicOptions{
		"rooms-by-property": {
			SourceQuestion: QPropertyType,
			Sets: map[string][]model.Option{
				"house":     opts("bedroom", "bathroom", "kitchen", "living_room", "garage", "yard"),
				"apartment": opts("bedroom", "bathroom", "kitchen", "living_room", "balcony"),
				"office":    opts("workspace", "meeting_room", "kitchen", "bathroom", "reception"),
				"retail":    opts("sales_floor", "stockroom", "bathroom", "entrance"),
			},
			Default: opts("bedroom", "bathroom", "kitchen", "living_room"),
		},
	}

	return NewQuestions(list, dynamic)
}

func ptr(f float64) *float64 { return &f }
