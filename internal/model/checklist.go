package model

import "time"

// ChecklistItem is one concrete, user-ownable entry
type ChecklistItem struct {
	ID           string `json:"id" bson:"id"`
	Text         string `json:"text" bson:"text"`
	Category     string `json:"category" bson:"category"`
	Completed    bool   `json:"completed" bson:"completed"`
	Order        int    `json:"order" bson:"order"`
	Notes        string `json:"notes,omitempty" bson:"notes,omitempty"`
	TimeEstimate int    `json:"timeEstimate,omitempty" bson:"timeEstimate,omitempty"`
}

// Checklist is the materialized output of a completed flow. Once
// persisted it belongs to the user and is mutable through the CRUD
// surface; the engines never touch it again.
type Checklist struct {
	ID           string          `json:"id" bson:"_id,omitempty"`
	Name         string          `json:"name" bson:"name"`
	Items        []ChecklistItem `json:"items" bson:"items"`
	ServiceType  string          `json:"serviceType" bson:"serviceType"`
	PropertyType string          `json:"propertyType" bson:"propertyType"`
	CreatedAt    time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// TotalTime sums the item time estimates in minutes.
func (c *Checklist) TotalTime() int {
	total := 0
	for _, item := range c.Items {
		total += item.TimeEstimate
	}
	return total
}
