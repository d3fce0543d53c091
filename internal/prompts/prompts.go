// README: LLM instruction templates, embedded as YAML and rendered with text/template.
package prompts

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"gopkg.in/yaml.v3"
)

// Template names.
const (
	Intent          = "intent"
	InferCity       = "infer_city"
	ExtractCity     = "extract_city"
	ClothingAdvice  = "clothing_advice"
	RecommendPlaces = "recommend_places"
	PhraseWeather   = "phrase_weather"
	Clarify         = "clarify"
)

//go:embed prompts.yaml
var rawTemplates []byte

// Set holds the parsed templates by name.
type Set struct {
	templates map[string]*template.Template
}

var (
	defaultSet *Set
	defaultErr error
	once       sync.Once
)

// Default returns the embedded template set, parsing it on first use.
func Default() *Set {
	once.Do(func() {
		defaultSet, defaultErr = Parse(rawTemplates)
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("prompts: embedded templates are invalid: %v", defaultErr))
	}
	return defaultSet
}

// Parse decodes a YAML mapping of name -> template source.
func Parse(src []byte) (*Set, error) {
	var raw map[string]string
	if err := yaml.Unmarshal(src, &raw); err != nil {
		return nil, fmt.Errorf("decode prompts: %w", err)
	}
	funcs := template.FuncMap{"join": strings.Join}
	set := &Set{templates: make(map[string]*template.Template, len(raw))}
	for name, body := range raw {
		t, err := template.New(name).Funcs(funcs).Option("missingkey=error").Parse(body)
		if err != nil {
			return nil, fmt.Errorf("parse prompt %q: %w", name, err)
		}
		set.templates[name] = t
	}
	return set, nil
}

// Render executes the named template with data.
func (s *Set) Render(name string, data any) (string, error) {
	t, ok := s.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown prompt %q", name)
	}
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render prompt %q: %w", name, err)
	}
	return strings.TrimSpace(b.String()), nil
}

// Names lists the available template names.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.templates))
	for n := range s.templates {
		names = append(names, n)
	}
	return names
}
