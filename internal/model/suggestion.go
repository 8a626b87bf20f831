package model

// TaskSuggestion is an ephemeral, per-session task recommendation
type TaskSuggestion struct {
	TaskID        string  `json:"taskId"`
	RoomID        string  `json:"roomId"`
	Confidence    float64 `json:"confidence"`
	Reason        string  `json:"reason"`
	IsSelected    bool    `json:"isSelected"`
	IsEdited      bool    `json:"isEdited"`
	EditedContent string  `json:"editedContent,omitempty"`
	// EditedTime overrides the catalog task's estimate when >0.
	EditedTime int `json:"editedTime,omitempty"`
}

// RoomSuggestion is a confidence-scored room recommendation carrying
// its task suggestions
type RoomSuggestion struct {
	RoomID         string           `json:"roomId"`
	Confidence     float64          `json:"confidence"`
	Reason         string           `json:"reason"`
	IsSelected     bool             `json:"isSelected"`
	SuggestedTasks []TaskSuggestion `json:"suggestedTasks"`
}

// SuggestionSet is the bundle handed back to the client for review.
type SuggestionSet struct {
	Rooms         []RoomSuggestion `json:"rooms"`
	EstimatedTime int              `json:"estimatedTime"` // minutes
}
