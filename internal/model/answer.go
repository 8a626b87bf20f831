package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ValueKind discriminates the answer union
type ValueKind string

const (
	ValueText   ValueKind = "text"
	ValueNumber ValueKind = "number"
	ValueBool   ValueKind = "bool"
	ValueList   ValueKind = "list"
)

// AnswerValue is a tagged union over the value shapes a question can
// collect: free text / option value, number, boolean, or a list of
// option values. Only the field matching Kind is meaningful.
type AnswerValue struct {
	Kind   ValueKind `json:"kind" bson:"kind"`
	Text   string    `json:"text,omitempty" bson:"text,omitempty"`
	Number float64   `json:"number,omitempty" bson:"number,omitempty"`
	Bool   bool      `json:"bool,omitempty" bson:"bool,omitempty"`
	List   []string  `json:"list,omitempty" bson:"list,omitempty"`
}

func TextValue(s string) AnswerValue    { return AnswerValue{Kind: ValueText, Text: s} }
func NumberValue(n float64) AnswerValue { return AnswerValue{Kind: ValueNumber, Number: n} }
func BoolValue(b bool) AnswerValue      { return AnswerValue{Kind: ValueBool, Bool: b} }
func ListValue(l []string) AnswerValue  { return AnswerValue{Kind: ValueList, List: l} }

// ParseValue decodes a bare JSON scalar or string array into an
// AnswerValue. The wire format carries plain JSON values, not the
// tagged struct.
func ParseValue(raw json.RawMessage) (AnswerValue, error) {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return BoolValue(b), nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return NumberValue(n), nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return TextValue(s), nil
	}
	var l []string
	if err := json.Unmarshal(raw, &l); err == nil {
		return ListValue(l), nil
	}
	return AnswerValue{}, fmt.Errorf("unsupported answer value: %s", string(raw))
}

// MarshalWire renders the value back to its bare JSON form.
func (v AnswerValue) MarshalWire() json.RawMessage {
	var data []byte
	switch v.Kind {
	case ValueNumber:
		data, _ = json.Marshal(v.Number)
	case ValueBool:
		data, _ = json.Marshal(v.Bool)
	case ValueList:
		data, _ = json.Marshal(v.List)
	default:
		data, _ = json.Marshal(v.Text)
	}
	return data
}

// IsEmpty reports whether the value carries no usable content.
func (v AnswerValue) IsEmpty() bool {
	switch v.Kind {
	case ValueText:
		return v.Text == ""
	case ValueList:
		return len(v.List) == 0
	case ValueNumber, ValueBool:
		return false
	default:
		return true
	}
}

// EqualsString compares the value against a string form. Numbers and
// booleans compare by rendered representation so catalog dependencies
// can be declared with plain strings.
func (v AnswerValue) EqualsString(s string) bool {
	switch v.Kind {
	case ValueText:
		return v.Text == s
	case ValueNumber:
		return v.Number == parseNumber(s)
	case ValueBool:
		return strconv.FormatBool(v.Bool) == s
	default:
		return false
	}
}

// ContainsString reports whether a list value includes s, or a text
// value equals it.
func (v AnswerValue) ContainsString(s string) bool {
	switch v.Kind {
	case ValueList:
		for _, item := range v.List {
			if item == s {
				return true
			}
		}
		return false
	case ValueText:
		return v.Text == s
	default:
		return false
	}
}

// AsNumber returns the numeric form when the kind permits one.
func (v AnswerValue) AsNumber() (float64, bool) {
	switch v.Kind {
	case ValueNumber:
		return v.Number, true
	case ValueText:
		n, err := strconv.ParseFloat(v.Text, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// AsList returns the value as a string slice; scalars become a
// single-element list, empty values nil.
func (v AnswerValue) AsList() []string {
	switch v.Kind {
	case ValueList:
		return v.List
	case ValueText:
		if v.Text == "" {
			return nil
		}
		return []string{v.Text}
	default:
		return nil
	}
}

func parseNumber(s string) float64 {
	n, _ := strconv.ParseFloat(s, 64)
	return n
}

// Answer is one recorded response within a session
type Answer struct {
	QuestionID string      `json:"questionId" bson:"questionId"`
	Value      AnswerValue `json:"value" bson:"value"`
	AnsweredAt time.Time   `json:"answeredAt" bson:"answeredAt"`
}

// AnswerSet is the read-only view of a session's answers that the
// suggestion and merge engines consume, keyed by question id.
type AnswerSet map[string]AnswerValue

// StringAt returns the text form of an answer, or "" when absent.
func (a AnswerSet) StringAt(questionID string) string {
	v, ok := a[questionID]
	if !ok || v.Kind != ValueText {
		return ""
	}
	return v.Text
}

// ListAt returns the list form of an answer, or nil when absent.
func (a AnswerSet) ListAt(questionID string) []string {
	v, ok := a[questionID]
	if !ok {
		return nil
	}
	return v.AsList()
}

// BoolAt returns a boolean answer, false when absent or non-boolean.
func (a AnswerSet) BoolAt(questionID string) bool {
	v, ok := a[questionID]
	return ok && v.Kind == ValueBool && v.Bool
}

// NumberAt returns a numeric answer, 0 when absent or non-numeric.
func (a AnswerSet) NumberAt(questionID string) float64 {
	v, ok := a[questionID]
	if !ok {
		return 0
	}
	n, _ := v.AsNumber()
	return n
}
