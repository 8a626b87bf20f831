package service

import (
	"strconv"
	"strings"

	"checkflow/internal/catalog"
	"checkflow/internal/model"
)

// roomTaskLibrary maps room names to their canned follow-up tasks,
// appended right after the generic "Clean {room}" item. Unknown rooms
// get only the generic item.
var roomTaskLibrary = map[string][]string{
	"bedroom":     {"Make beds and change linens", "Organize closet and drawers"},
	"bathroom":    {"Scrub toilet, sink, and shower", "Restock towels and toiletries"},
	"kitchen":     {"Clean countertops and sink", "Wipe down appliance exteriors"},
	"living_room": {"Dust shelves and electronics", "Vacuum sofa and carpets"},
}

// MergeService folds a final answer set into a template's item list,
// producing a structurally new template. The input is never mutated and
// its slices are never aliased.
type MergeService struct{}

// NewMergeService creates a new merge service
func NewMergeService() *MergeService {
	return &MergeService{}
}

// MergeTemplateWithQA applies the answer-driven transformations in a
// fixed order: room expansion, pet items, deep-clean areas, special
// requests, priority reordering, then multi-bedroom expansion. The
// expansions run before the reorder so it sees the complete item set;
// bedroom-count expansion runs last because it depends on how many
// bedroom items already exist. Empty answers are the identity.
func (s *MergeService) MergeTemplateWithQA(template *model.Template, answers model.AnswerSet) *model.Template {
	merged := template.Clone()
	if len(answers) == 0 {
		return merged
	}

	items := merged.DefaultItems
	nextOrder := maxOrder(items) + 1
	push := func(text, category string) {
		items = append(items, model.TemplateItem{Text: text, Category: category, Order: nextOrder})
		nextOrder++
	}

	// 1. Room expansion
	for _, room := range answers.ListAt(catalog.QRooms) {
		category := strings.ToLower(room)
		if hasCategory(items, category) {
			continue
		}
		push("Clean "+displayName(room), category)
		for _, task := range roomTaskLibrary[category] {
			push(task, category)
		}
	}

	// 2. Pet-friendly additions, appended without a dedup check
	if answers.BoolAt(catalog.QPetFriendly) {
		push("Vacuum pet hair from furniture and floors", "pets")
		push("Wash pet bedding and clean feeding area", "pets")
	}

	// 3. Deep-clean areas
	for _, area := range answers.ListAt(catalog.QDeepCleanAreas) {
		push("Deep clean "+displayName(area), strings.ToLower(area))
	}

	// 4. Special requests
	if request := answers.StringAt(catalog.QSpecialRequests); request != "" {
		push("Special: "+request, "special")
	}

	// 5. Priority reordering: full partition and renumber, not a
	// stable merge.
	if priority := answers.StringAt(catalog.QPriority); priority != "" {
		var first, rest []model.TemplateItem
		for _, item := range items {
			if item.Category == priority {
				first = append(first, item)
			} else {
				rest = append(rest, item)
			}
		}
		items = append(first, rest...)
		for i := range items {
			items[i].Order = i + 1
		}
		nextOrder = len(items) + 1
	}

	// 6. Multi-bedroom expansion
	if bedrooms := int(answers.NumberAt(catalog.QNumberOfBedrooms)); bedrooms > 1 {
		if countCategory(items, "bedroom") < 2*bedrooms {
			for n := 2; n <= bedrooms; n++ {
				push("Clean bedroom #"+strconv.Itoa(n), "bedroom")
			}
		}
	}

	merged.DefaultItems = items
	return merged
}

func maxOrder(items []model.TemplateItem) int {
	max := 0
	for _, item := range items {
		if item.Order > max {
			max = item.Order
		}
	}
	return max
}

func hasCategory(items []model.TemplateItem, category string) bool {
	for _, item := range items {
		if strings.EqualFold(item.Category, category) {
			return true
		}
	}
	return false
}

func countCategory(items []model.TemplateItem, category string) int {
	count := 0
	for _, item := range items {
		if strings.EqualFold(item.Category, category) {
			count++
		}
	}
	return count
}

func displayName(value string) string {
	return strings.ReplaceAll(strings.ToLower(value), "_", " ")
}
