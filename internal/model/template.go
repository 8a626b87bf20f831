package model

// Priority ranks a task's importance
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Task is one unit of work inside a template room
type Task struct {
	ID            string   `json:"id" bson:"id" yaml:"id"`
	Name          string   `json:"name" bson:"name" yaml:"name"`
	EstimatedTime int      `json:"estimatedTime" bson:"estimatedTime" yaml:"estimatedTime"` // minutes
	Priority      Priority `json:"priority" bson:"priority" yaml:"priority"`
	Frequency     string   `json:"frequency" bson:"frequency" yaml:"frequency"`
	Supplies      []string `json:"supplies,omitempty" bson:"supplies,omitempty" yaml:"supplies,omitempty"`
}

// Room groups tasks within a template category
type Room struct {
	ID    string `json:"id" bson:"id" yaml:"id"`
	Name  string `json:"name" bson:"name" yaml:"name"`
	Type  string `json:"type" bson:"type" yaml:"type"`
	Tasks []Task `json:"tasks" bson:"tasks" yaml:"tasks"`
}

// Category is the top level of the template tree
type Category struct {
	ID    string `json:"id" bson:"id" yaml:"id"`
	Name  string `json:"name" bson:"name" yaml:"name"`
	Rooms []Room `json:"rooms" bson:"rooms" yaml:"rooms"`
}

// TemplateItem is a flat default checklist entry carried by a template.
// The merge engine appends and reorders these; materialization copies
// them into concrete ChecklistItems.
type TemplateItem struct {
	Text         string `json:"text" bson:"text" yaml:"text"`
	Category     string `json:"category" bson:"category" yaml:"category"`
	Order        int    `json:"order" bson:"order" yaml:"order"`
	TimeEstimate int    `json:"timeEstimate,omitempty" bson:"timeEstimate,omitempty" yaml:"timeEstimate,omitempty"`
}

// Template is a static industry checklist blueprint. Templates are
// read-only reference data; all customization produces new derived
// structures and never mutates the original.
type Template struct {
	ID           string         `json:"id" bson:"_id,omitempty" yaml:"id"`
	Name         string         `json:"name" bson:"name" yaml:"name"`
	ServiceType  string         `json:"serviceType" bson:"serviceType" yaml:"serviceType"`
	PropertyType string         `json:"propertyType" bson:"propertyType" yaml:"propertyType"`
	Categories   []Category     `json:"categories" bson:"categories" yaml:"categories"`
	DefaultItems []TemplateItem `json:"defaultItems" bson:"defaultItems" yaml:"defaultItems"`
}

// Clone returns a deep copy so engines can derive new structures
// without aliasing the catalog's slices.
func (t *Template) Clone() *Template {
	out := &Template{
		ID:           t.ID,
		Name:         t.Name,
		ServiceType:  t.ServiceType,
		PropertyType: t.PropertyType,
	}
	if t.Categories != nil {
		out.Categories = make([]Category, len(t.Categories))
		for i, c := range t.Categories {
			cc := c
			cc.Rooms = make([]Room, len(c.Rooms))
			for j, r := range c.Rooms {
				rr := r
				rr.Tasks = append([]Task(nil), r.Tasks...)
				cc.Rooms[j] = rr
			}
			out.Categories[i] = cc
		}
	}
	if t.DefaultItems != nil {
		out.DefaultItems = append([]TemplateItem(nil), t.DefaultItems...)
	}
	return out
}

// AllRooms flattens the category tree into a single room list.
func (t *Template) AllRooms() []Room {
	var rooms []Room
	for _, c := range t.Categories {
		rooms = append(rooms, c.Rooms...)
	}
	return rooms
}
