package catalog

import (
	"context"
	"strings"

	"checkflow/internal/model"
)

// TemplateSource is the read-only template catalog the engines consume.
// Implemented by the built-in static catalog and by the Mongo-backed
// template repository.
type TemplateSource interface {
	Templates(ctx context.Context) ([]*model.Template, error)
	TemplateByID(ctx context.Context, id string) (*model.Template, error)
	DefaultTemplates(ctx context.Context, serviceType, propertyType string) ([]*model.Template, error)
}

// StaticTemplates serves templates from an in-memory list.
type StaticTemplates struct {
	templates []*model.Template
}

// NewStaticTemplates wraps a fixed template list.
func NewStaticTemplates(templates []*model.Template) *StaticTemplates {
	return &StaticTemplates{templates: templates}
}

func (s *StaticTemplates) Templates(ctx context.Context) ([]*model.Template, error) {
	out := make([]*model.Template, len(s.templates))
	for i, t := range s.templates {
		out[i] = t.Clone()
	}
	return out, nil
}

func (s *StaticTemplates) TemplateByID(ctx context.Context, id string) (*model.Template, error) {
	for _, t := range s.templates {
		if t.ID == id {
			return t.Clone(), nil
		}
	}
	return nil, nil
}

func (s *StaticTemplates) DefaultTemplates(ctx context.Context, serviceType, propertyType string) ([]*model.Template, error) {
	var out []*model.Template
	for _, t := range s.templates {
		if strings.EqualFold(t.ServiceType, serviceType) && strings.EqualFold(t.PropertyType, propertyType) {
			out = append(out, t.Clone())
		}
	}
	return out, nil
}

// BuiltinTemplates returns the bundled industry templates.
func BuiltinTemplates() []*model.Template {
	return []*model.Template{
		{
			ID:           "tpl-residential-house",
			Name:         "Residential house cleaning",
			ServiceType:  "residential",
			PropertyType: "house",
			Categories: []model.Category{
				{
					ID:   "cat-living",
					Name: "Living areas",
					Rooms: []model.Room{
						{
							ID:   "room-living",
							Name: "Living Room",
							Type: "residential",
							Tasks: []model.Task{
								{ID: "t-dust-surfaces", Name: "Dust all surfaces", EstimatedTime: 15, Priority: model.PriorityMedium, Frequency: "weekly", Supplies: []string{"microfiber cloth"}},
								{ID: "t-vacuum-floors", Name: "Vacuum floors and rugs", EstimatedTime: 20, Priority: model.PriorityHigh, Frequency: "weekly", Supplies: []string{"vacuum"}},
								{ID: "t-clean-windows", Name: "Clean interior windows", EstimatedTime: 25, Priority: model.PriorityLow, Frequency: "monthly", Supplies: []string{"glass cleaner"}},
							},
						},
						{
							ID:   "room-bedroom",
							Name: "Bedroom",
							Type: "residential",
							Tasks: []model.Task{
								{ID: "t-change-linens", Name: "Change bed linens", EstimatedTime: 10, Priority: model.PriorityHigh, Frequency: "weekly"},
								{ID: "t-dust-bedroom", Name: "Dust furniture and fixtures", EstimatedTime: 10, Priority: model.PriorityMedium, Frequency: "weekly", Supplies: []string{"microfiber cloth"}},
							},
						},
						{
							ID:   "room-guest",
							Name: "Guest Suite",
							Type: "residential",
							Tasks: []model.Task{
								{ID: "t-guest-refresh", Name: "Refresh guest bedding", EstimatedTime: 10, Priority: model.PriorityLow, Frequency: "monthly"},
								{ID: "t-guest-dust", Name: "Dust guest room", EstimatedTime: 10, Priority: model.PriorityLow, Frequency: "monthly"},
							},
						},
					},
				},
				{
					ID:   "cat-wet",
					Name: "Kitchen and bathrooms",
					Rooms: []model.Room{
						{
							ID:   "room-kitchen",
							Name: "Kitchen",
							Type: "residential",
							Tasks: []model.Task{
								{ID: "t-counters", Name: "Wipe and disinfect countertops", EstimatedTime: 10, Priority: model.PriorityHigh, Frequency: "daily", Supplies: []string{"disinfectant"}},
								{ID: "t-dishes", Name: "Wash dishes and empty sink", EstimatedTime: 15, Priority: model.PriorityHigh, Frequency: "daily"},
								{ID: "t-appliances", Name: "Clean appliance exteriors", EstimatedTime: 15, Priority: model.PriorityMedium, Frequency: "weekly"},
							},
						},
						{
							ID:   "room-bathroom",
							Name: "Bathroom",
							Type: "residential",
							Tasks: []model.Task{
								{ID: "t-toilet", Name: "Scrub and disinfect toilet", EstimatedTime: 10, Priority: model.PriorityHigh, Frequency: "weekly", Supplies: []string{"toilet cleaner", "gloves"}},
								{ID: "t-shower", Name: "Scrub shower and tub", EstimatedTime: 20, Priority: model.PriorityHigh, Frequency: "weekly"},
								{ID: "t-mirrors", Name: "Polish mirrors and fixtures", EstimatedTime: 5, Priority: model.PriorityLow, Frequency: "weekly", Supplies: []string{"glass cleaner"}},
							},
						},
					},
				},
			},
			DefaultItems: []model.TemplateItem{
				{Text: "Dust all surfaces", Category: "living_room", Order: 1, TimeEstimate: 15},
				{Text: "Vacuum floors and rugs", Category: "living_room", Order: 2, TimeEstimate: 20},
				{Text: "Change bed linens", Category: "bedroom", Order: 3, TimeEstimate: 10},
				{Text: "Wipe and disinfect countertops", Category: "kitchen", Order: 4, TimeEstimate: 10},
				{Text: "Wash dishes and empty sink", Category: "kitchen", Order: 5, TimeEstimate: 15},
				{Text: "Scrub and disinfect toilet", Category: "bathroom", Order: 6, TimeEstimate: 10},
				{Text: "Scrub shower and tub", Category: "bathroom", Order: 7, TimeEstimate: 20},
			},
		},
		{
			ID:           "tpl-deepclean-house",
			Name:         "Deep clean - house",
			ServiceType:  "deep_clean",
			PropertyType: "house",
			Categories: []model.Category{
				{
					ID:   "cat-deep",
					Name: "Deep clean targets",
					Rooms: []model.Room{
						{
							ID:   "room-deep-kitchen",
							Name: "Kitchen",
							Type: "deep_clean",
							Tasks: []model.Task{
								{ID: "t-oven", Name: "Degrease and clean oven interior", EstimatedTime: 45, Priority: model.PriorityHigh, Frequency: "one-time", Supplies: []string{"degreaser"}},
								{ID: "t-fridge", Name: "Empty and disinfect fridge", EstimatedTime: 30, Priority: model.PriorityHigh, Frequency: "one-time", Supplies: []string{"disinfectant"}},
							},
						},
						{
							ID:   "room-deep-bath",
							Name: "Bathroom",
							Type: "deep_clean",
							Tasks: []model.Task{
								{ID: "t-grout", Name: "Scrub tile grout", EstimatedTime: 40, Priority: model.PriorityMedium, Frequency: "one-time"},
								{ID: "t-descale", Name: "Descale shower head and taps", EstimatedTime: 20, Priority: model.PriorityMedium, Frequency: "one-time"},
							},
						},
					},
				},
			},
			DefaultItems: []model.TemplateItem{
				{Text: "Degrease and clean oven interior", Category: "kitchen", Order: 1, TimeEstimate: 45},
				{Text: "Empty and disinfect fridge", Category: "kitchen", Order: 2, TimeEstimate: 30},
				{Text: "Scrub tile grout", Category: "bathroom", Order: 3, TimeEstimate: 40},
				{Text: "Descale shower head and taps", Category: "bathroom", Order: 4, TimeEstimate: 20},
			},
		},
		{
			ID:           "tpl-commercial-office",
			Name:         "Commercial office cleaning",
			ServiceType:  "commercial",
			PropertyType: "office",
			Categories: []model.Category{
				{
					ID:   "cat-office",
					Name: "Office areas",
					Rooms: []model.Room{
						{
							ID:   "room-workspace",
							Name: "Workspace",
							Type: "commercial",
							Tasks: []model.Task{
								{ID: "t-desks", Name: "Wipe and disinfect desks", EstimatedTime: 20, Priority: model.PriorityHigh, Frequency: "daily", Supplies: []string{"disinfectant"}},
								{ID: "t-bins", Name: "Empty waste bins", EstimatedTime: 10, Priority: model.PriorityHigh, Frequency: "daily"},
								{ID: "t-office-vacuum", Name: "Vacuum carpeted areas", EstimatedTime: 25, Priority: model.PriorityMedium, Frequency: "weekly", Supplies: []string{"vacuum"}},
							},
						},
						{
							ID:   "room-reception",
							Name: "Reception",
							Type: "commercial",
							Tasks: []model.Task{
								{ID: "t-reception-glass", Name: "Clean entrance glass", EstimatedTime: 10, Priority: model.PriorityMedium, Frequency: "daily", Supplies: []string{"glass cleaner"}},
							},
						},
					},
				},
			},
			DefaultItems: []model.TemplateItem{
				{Text: "Wipe and disinfect desks", Category: "workspace", Order: 1, TimeEstimate: 20},
				{Text: "Empty waste bins", Category: "workspace", Order: 2, TimeEstimate: 10},
				{Text: "Vacuum carpeted areas", Category: "workspace", Order: 3, TimeEstimate: 25},
				{Text: "Clean entrance glass", Category: "reception", Order: 4, TimeEstimate: 10},
			},
		},
	}
}
