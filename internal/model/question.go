package model

// QuestionType defines the input shape of a question
type QuestionType string

const (
	QuestionTypeSingleSelect QuestionType = "single_select"
	QuestionTypeMultiSelect  QuestionType = "multi_select"
	QuestionTypeNumber       QuestionType = "number"
	QuestionTypeText         QuestionType = "text"
	QuestionTypeBoolean      QuestionType = "boolean"
	QuestionTypeScale        QuestionType = "scale"
	QuestionTypeFile         QuestionType = "file"
)

// Condition is the comparison applied by a question dependency
type Condition string

const (
	ConditionEquals      Condition = "equals"
	ConditionContains    Condition = "contains"
	ConditionGreaterThan Condition = "greaterThan"
	ConditionLessThan    Condition = "lessThan"
	ConditionNotEmpty    Condition = "notEmpty"
)

// Option is a selectable answer choice
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Dependency gates a question on a previous answer
type Dependency struct {
	QuestionID string    `json:"questionId" yaml:"questionId"`
	Expected   string    `json:"expectedValue,omitempty" yaml:"expectedValue,omitempty"`
	Condition  Condition `json:"condition" yaml:"condition"`
}

// Validation constrains an answer value
type Validation struct {
	Min     *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max     *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Pattern string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
}

// Question is a single step in the questionnaire flow. Questions are
// immutable reference data owned by the catalog.
type Question struct {
	ID       string       `json:"id" yaml:"id"`
	Text     string       `json:"text" yaml:"text"`
	Type     QuestionType `json:"type" yaml:"type"`
	Required bool         `json:"required" yaml:"required"`
	Options  []Option     `json:"options,omitempty" yaml:"options,omitempty"`
	// OptionsFrom names a dynamic option set resolved against a prior
	// answer at display time (e.g. room choices keyed by property type).
	OptionsFrom string      `json:"optionsFrom,omitempty" yaml:"optionsFrom,omitempty"`
	DependsOn   *Dependency `json:"dependsOn,omitempty" yaml:"dependsOn,omitempty"`
	Validation  *Validation `json:"validation,omitempty" yaml:"validation,omitempty"`
}

// Matches reports whether the dependency condition holds for the given
// answer value. An unanswered gate question satisfies nothing.
func (d *Dependency) Matches(v AnswerValue, answered bool) bool {
	if d == nil {
		return true
	}
	if !answered {
		return false
	}
	switch d.Condition {
	case ConditionEquals:
		return v.EqualsString(d.Expected)
	case ConditionContains:
		return v.ContainsString(d.Expected)
	case ConditionGreaterThan:
		n, ok := v.AsNumber()
		return ok && n > parseNumber(d.Expected)
	case ConditionLessThan:
		n, ok := v.AsNumber()
		return ok && n < parseNumber(d.Expected)
	case ConditionNotEmpty:
		return !v.IsEmpty()
	default:
		return false
	}
}

// HasOption reports whether value is one of the given options.
func HasOption(options []Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}
