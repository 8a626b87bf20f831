package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"checkflow/internal/catalog"
	"checkflow/internal/model"
	"checkflow/internal/repository"
)

// ChecklistService materializes completed sessions into persisted
// checklists. A missing template is not fatal: the service degrades to
// a synthesized generic checklist instead of blocking the user.
type ChecklistService struct {
	sessions  *SessionService
	templates catalog.TemplateSource
	merge     *MergeService
	repo      repository.ChecklistRepo
}

// NewChecklistService creates a new checklist service
func NewChecklistService(
	sessions *SessionService,
	templates catalog.TemplateSource,
	merge *MergeService,
	repo repository.ChecklistRepo,
) *ChecklistService {
	return &ChecklistService{
		sessions:  sessions,
		templates: templates,
		merge:     merge,
		repo:      repo,
	}
}

// CreateChecklistFromTemplate copies a template's items into fresh
// checklist items with new ids. Item order is preserved when set and
// defaults to the array position otherwise.
func (s *ChecklistService) CreateChecklistFromTemplate(template *model.Template) *model.Checklist {
	now := time.Now()
	checklist := &model.Checklist{
		ID:           uuid.New().String(),
		Name:         template.Name,
		ServiceType:  template.ServiceType,
		PropertyType: template.PropertyType,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for i, item := range template.DefaultItems {
		order := item.Order
		if order == 0 {
			order = i + 1
		}
		checklist.Items = append(checklist.Items, model.ChecklistItem{
			ID:           uuid.New().String(),
			Text:         item.Text,
			Category:     item.Category,
			Completed:    false,
			Order:        order,
			TimeEstimate: item.TimeEstimate,
		})
	}
	return checklist
}

// GenerateChecklist materializes a completed session: looks up the
// default template for the answered (serviceType, propertyType), merges
// the answers in, filters items to the selected rooms, and persists the
// result. Without a matching template it synthesizes one generic item
// per selected room.
func (s *ChecklistService) GenerateChecklist(ctx context.Context, sessionID string) (*model.Checklist, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsComplete {
		return nil, ErrSessionNotComplete
	}

	answers := session.Values()
	serviceType := answers.StringAt(catalog.QServiceType)
	propertyType := answers.StringAt(catalog.QPropertyType)
	rooms := answers.ListAt(catalog.QRooms)

	templates, err := s.templates.DefaultTemplates(ctx, serviceType, propertyType)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	var checklist *model.Checklist
	if len(templates) > 0 {
		merged := s.merge.MergeTemplateWithQA(templates[0], answers)
		checklist = s.CreateChecklistFromTemplate(merged)
		checklist.Items = filterItemsToRooms(checklist.Items, rooms)
	} else {
		checklist = s.synthesize(serviceType, propertyType, rooms)
	}

	if err := s.repo.Create(ctx, checklist); err != nil {
		return nil, fmt.Errorf("persist checklist: %w", err)
	}
	return checklist, nil
}

// synthesize builds the no-template fallback: one generic item per
// selected room.
func (s *ChecklistService) synthesize(serviceType, propertyType string, rooms []string) *model.Checklist {
	now := time.Now()
	checklist := &model.Checklist{
		ID:           uuid.New().String(),
		Name:         "Custom checklist",
		ServiceType:  serviceType,
		PropertyType: propertyType,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for i, room := range rooms {
		checklist.Items = append(checklist.Items, model.ChecklistItem{
			ID:       uuid.New().String(),
			Text:     "Clean " + displayName(room),
			Category: strings.ToLower(room),
			Order:    i + 1,
		})
	}
	return checklist
}

// filterItemsToRooms keeps items whose category or text references one
// of the selected rooms, plus answer-derived categories that are not
// rooms at all (pets, special, deep-clean areas). Everything kept is
// renumbered contiguously.
func filterItemsToRooms(items []model.ChecklistItem, rooms []string) []model.ChecklistItem {
	if len(rooms) == 0 {
		return items
	}
	roomSet := make(map[string]bool, len(rooms))
	for _, room := range rooms {
		roomSet[strings.ToLower(room)] = true
	}
	knownRooms := map[string]bool{
		"bedroom": true, "bathroom": true, "kitchen": true, "living_room": true,
		"garage": true, "yard": true, "balcony": true, "workspace": true,
		"meeting_room": true, "bathroom_office": true, "reception": true,
		"sales_floor": true, "stockroom": true, "entrance": true,
	}

	var kept []model.ChecklistItem
	for _, item := range items {
		category := strings.ToLower(item.Category)
		switch {
		case roomSet[category]:
			kept = append(kept, item)
		case !knownRooms[category]:
			// pets, special requests, deep-clean areas
			kept = append(kept, item)
		default:
			if mentionsAnyRoom(item.Text, rooms) {
				kept = append(kept, item)
			}
		}
	}
	for i := range kept {
		kept[i].Order = i + 1
	}
	return kept
}

func mentionsAnyRoom(text string, rooms []string) bool {
	lower := strings.ToLower(text)
	for _, room := range rooms {
		if strings.Contains(lower, displayName(room)) {
			return true
		}
	}
	return false
}
