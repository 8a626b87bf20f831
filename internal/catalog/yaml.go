package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"checkflow/internal/model"
)

// questionsFile is the on-disk shape of a custom question catalog.
type questionsFile struct {
	Questions      []model.Question          `yaml:"questions"`
	DynamicOptions map[string]DynamicOptions `yaml:"dynamicOptions"`
}

// templatesFile is the on-disk shape of a custom template catalog.
type templatesFile struct {
	Templates []*model.Template `yaml:"templates"`
}

// LoadQuestionsFile reads a YAML question catalog.
func LoadQuestionsFile(path string) (*Questions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question catalog: %w", err)
	}
	return ParseQuestions(data)
}

// ParseQuestions builds a flow from YAML catalog bytes.
func ParseQuestions(data []byte) (*Questions, error) {
	var file questionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse question catalog: %w", err)
	}
	if len(file.Questions) == 0 {
		return nil, fmt.Errorf("question catalog is empty")
	}
	seen := make(map[string]bool, len(file.Questions))
	for _, q := range file.Questions {
		if q.ID == "" {
			return nil, fmt.Errorf("question catalog: question without id")
		}
		if seen[q.ID] {
			return nil, fmt.Errorf("question catalog: duplicate question id %q", q.ID)
		}
		seen[q.ID] = true
		if q.DependsOn != nil && !seen[q.DependsOn.QuestionID] {
			return nil, fmt.Errorf("question catalog: %q depends on unknown or later question %q", q.ID, q.DependsOn.QuestionID)
		}
	}
	return NewQuestions(file.Questions, file.DynamicOptions), nil
}

// LoadTemplatesFile reads a YAML template catalog.
func LoadTemplatesFile(path string) ([]*model.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template catalog: %w", err)
	}
	var file templatesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse template catalog: %w", err)
	}
	for _, t := range file.Templates {
		if t.ID == "" {
			return nil, fmt.Errorf("template catalog: template without id")
		}
	}
	return file.Templates, nil
}
