package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkflow/internal/catalog"
	"checkflow/internal/model"
)

func mergeTemplate() *model.Template {
	return &model.Template{
		ID:   "tpl-merge",
		Name: "Merge test",
		DefaultItems: []model.TemplateItem{
			{Text: "Dust all surfaces", Category: "general", Order: 1},
			{Text: "Clean kitchen counters", Category: "kitchen", Order: 2},
			{Text: "Empty trash bins", Category: "general", Order: 3},
		},
	}
}

func itemTexts(items []model.TemplateItem) []string {
	texts := make([]string, len(items))
	for i, item := range items {
		texts[i] = item.Text
	}
	return texts
}

func TestMergeEmptyAnswersIsIdentity(t *testing.T) {
	svc := NewMergeService()
	template := mergeTemplate()

	merged := svc.MergeTemplateWithQA(template, model.AnswerSet{})

	assert.Equal(t, template.DefaultItems, merged.DefaultItems)

	// The result is a copy; mutating it must not touch the input
	merged.DefaultItems[0].Text = "changed"
	assert.Equal(t, "Dust all surfaces", template.DefaultItems[0].Text)
}

func TestMergeRoomExpansion(t *testing.T) {
	svc := NewMergeService()

	merged := svc.MergeTemplateWithQA(mergeTemplate(), model.AnswerSet{
		catalog.QRooms: model.ListValue([]string{"bedroom", "kitchen", "garage"}),
	})

	texts := itemTexts(merged.DefaultItems)
	assert.Contains(t, texts, "Clean bedroom")
	assert.Contains(t, texts, "Make beds and change linens")
	assert.Contains(t, texts, "Organize closet and drawers")

	// Kitchen already has items, so no duplicate expansion
	assert.NotContains(t, texts, "Clean kitchen")

	// Unknown rooms get only the generic item
	assert.Contains(t, texts, "Clean garage")
	garageItems := 0
	for _, item := range merged.DefaultItems {
		if item.Category == "garage" {
			garageItems++
		}
	}
	assert.Equal(t, 1, garageItems)
}

func TestMergePetFriendlyItems(t *testing.T) {
	svc := NewMergeService()

	merged := svc.MergeTemplateWithQA(mergeTemplate(), model.AnswerSet{
		catalog.QPetFriendly: model.BoolValue(true),
	})

	var petItems []model.TemplateItem
	for _, item := range merged.DefaultItems {
		if item.Category == "pets" {
			petItems = append(petItems, item)
		}
	}
	require.Len(t, petItems, 2)
	for _, item := range petItems {
		assert.Contains(t, strings.ToLower(item.Text), "pet")
	}

	// An explicit "no" adds nothing
	unchanged := svc.MergeTemplateWithQA(mergeTemplate(), model.AnswerSet{
		catalog.QPetFriendly: model.BoolValue(false),
	})
	assert.Len(t, unchanged.DefaultItems, 3)
}

func TestMergeDeepCleanAreas(t *testing.T) {
	svc := NewMergeService()

	merged := svc.MergeTemplateWithQA(mergeTemplate(), model.AnswerSet{
		catalog.QDeepCleanAreas: model.ListValue([]string{"oven_interior", "baseboards"}),
	})

	texts := itemTexts(merged.DefaultItems)
	assert.Contains(t, texts, "Deep clean oven interior")
	assert.Contains(t, texts, "Deep clean baseboards")
}

func TestMergeSpecialRequest(t *testing.T) {
	svc := NewMergeService()

	merged := svc.MergeTemplateWithQA(mergeTemplate(), model.AnswerSet{
		catalog.QSpecialRequests: model.TextValue("use unscented products only"),
	})

	last := merged.DefaultItems[len(merged.DefaultItems)-1]
	assert.Equal(t, "Special: use unscented products only", last.Text)
	assert.Equal(t, "special", last.Category)
}

func TestMergePriorityReordering(t *testing.T) {
	svc := NewMergeService()

	merged := svc.MergeTemplateWithQA(mergeTemplate(), model.AnswerSet{
		catalog.QRooms:    model.ListValue([]string{"bathroom"}),
		catalog.QPriority: model.TextValue("bathroom"),
	})

	items := merged.DefaultItems
	require.NotEmpty(t, items)

	// Bathroom items form a contiguous prefix
	inPrefix := true
	for _, item := range items {
		if item.Category == "bathroom" {
			assert.True(t, inPrefix, "bathroom item after non-bathroom item: %s", item.Text)
		} else {
			inPrefix = false
		}
	}
	assert.Equal(t, "bathroom", items[0].Category)

	// Orders are renumbered contiguously from 1
	for i, item := range items {
		assert.Equal(t, i+1, item.Order)
	}
}

func TestMergeMultiBedroomExpansion(t *testing.T) {
	svc := NewMergeService()

	merged := svc.MergeTemplateWithQA(mergeTemplate(), model.AnswerSet{
		catalog.QRooms:            model.ListValue([]string{"bedroom"}),
		catalog.QNumberOfBedrooms: model.NumberValue(3),
	})

	texts := itemTexts(merged.DefaultItems)
	assert.Contains(t, texts, "Clean bedroom")
	assert.Contains(t, texts, "Clean bedroom #2")
	assert.Contains(t, texts, "Clean bedroom #3")
	assert.NotContains(t, texts, "Clean bedroom #4")
}

func TestMergeOrdersStayUnique(t *testing.T) {
	svc := NewMergeService()

	merged := svc.MergeTemplateWithQA(mergeTemplate(), model.AnswerSet{
		catalog.QRooms:            model.ListValue([]string{"bedroom", "bathroom", "living_room"}),
		catalog.QPetFriendly:      model.BoolValue(true),
		catalog.QDeepCleanAreas:   model.ListValue([]string{"windows"}),
		catalog.QSpecialRequests:  model.TextValue("check smoke detectors"),
		catalog.QPriority:         model.TextValue("bathroom"),
		catalog.QNumberOfBedrooms: model.NumberValue(2),
	})

	seen := make(map[int]bool)
	for _, item := range merged.DefaultItems {
		assert.False(t, seen[item.Order], "duplicate order %d", item.Order)
		seen[item.Order] = true
	}
}
