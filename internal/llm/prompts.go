package llm

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Catalog prompt names.
const (
	PromptGenerateResume = "generate_resume"
	PromptOptimizeResume = "optimize_resume"
	PromptTailorResume   = "tailor_resume"
)

//go:embed prompts.yaml
var promptsYAML []byte

// Prompt is one entry of the embedded prompt catalog. Template placeholders
// use the {{KEY}} form.
type Prompt struct {
	Name        string   `yaml:"-"`
	System      string   `yaml:"system"`
	Template    string   `yaml:"template"`
	JSON        bool     `yaml:"json"`
	Temperature *float64 `yaml:"temperature"`
}

var (
	catalogOnce sync.Once
	catalog     map[string]Prompt
	catalogErr  error
)

// LoadPrompt returns the named prompt from the embedded catalog.
func LoadPrompt(name string) (Prompt, error) {
	catalogOnce.Do(func() {
		catalog, catalogErr = parseCatalog(promptsYAML)
	})
	if catalogErr != nil {
		return Prompt{}, catalogErr
	}
	p, ok := catalog[name]
	if !ok {
		return Prompt{}, fmt.Errorf("prompt %q not found", name)
	}
	return p, nil
}

// PromptNames lists the catalog entries in sorted order.
func PromptNames() []string {
	if _, err := LoadPrompt(PromptGenerateResume); err != nil {
		return nil
	}
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func parseCatalog(data []byte) (map[string]Prompt, error) {
	var raw map[string]Prompt
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse prompt catalog: %w", err)
	}
	out := make(map[string]Prompt, len(raw))
	for name, p := range raw {
		if strings.TrimSpace(p.Template) == "" {
			return nil, fmt.Errorf("prompt %q has empty template", name)
		}
		p.Name = name
		out[name] = p
	}
	return out, nil
}

// Render substitutes {{KEY}} placeholders and returns a Request.
func (p Prompt) Render(vars map[string]string) Request {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	text := strings.NewReplacer(pairs...).Replace(p.Template)
	return Request{
		Name:        p.Name,
		System:      strings.TrimSpace(p.System),
		Prompt:      strings.TrimSpace(text),
		JSON:        p.JSON,
		Temperature: p.Temperature,
	}
}
