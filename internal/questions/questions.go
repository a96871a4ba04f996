package questions

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed questions.yaml
var defaultCatalogYAML []byte

// Question is one single-select entry of the fixed questionnaire.
type Question struct {
	ID      string   `yaml:"id" json:"id"`
	Label   string   `yaml:"label" json:"label"`
	Options []string `yaml:"options" json:"options"`
}

// Catalog is the ordered, read-only question bank. The built-in catalog has
// 10 entries; QUESTIONS_PATH can point at a YAML file to override wording.
type Catalog struct {
	list []Question
	byID map[string]int
}

type catalogFile struct {
	Questions []Question `yaml:"questions"`
}

func Load(path string) (*Catalog, error) {
	raw := defaultCatalogYAML
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read question catalog: %w", err)
		}
		raw = data
	}

	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse question catalog: %w", err)
	}
	if len(file.Questions) == 0 {
		return nil, fmt.Errorf("question catalog is empty")
	}

	byID := make(map[string]int, len(file.Questions))
	for i, q := range file.Questions {
		if strings.TrimSpace(q.ID) == "" {
			return nil, fmt.Errorf("question %d has no id", i)
		}
		if _, dup := byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		if len(q.Options) < 2 {
			return nil, fmt.Errorf("question %q has fewer than 2 options", q.ID)
		}
		byID[q.ID] = i
	}
	return &Catalog{list: file.Questions, byID: byID}, nil
}

// Default returns the built-in catalog. Panics only on a broken embed,
// which is a build defect, not a runtime condition.
func Default() *Catalog {
	c, err := Load("")
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) All() []Question {
	out := make([]Question, len(c.list))
	copy(out, c.list)
	return out
}

func (c *Catalog) Len() int { return len(c.list) }

// ValidateAnswers checks that every key is a known question id and every
// value one of that question's options. Unanswered questions are permitted;
// downstream rules treat them as no-match.
func (c *Catalog) ValidateAnswers(answers map[string]string) error {
	if len(answers) == 0 {
		return fmt.Errorf("answers are empty")
	}
	for id, value := range answers {
		idx, ok := c.byID[id]
		if !ok {
			return fmt.Errorf("unknown question id %q", id)
		}
		if !contains(c.list[idx].Options, value) {
			return fmt.Errorf("question %q has no option %q", id, value)
		}
	}
	return nil
}

func contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
