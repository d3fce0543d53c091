// README: Intent parser; LLM classification plus slot repairs, degrading to Default on any LLM failure.
package intent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"skyguide/internal/ai"
	"skyguide/internal/prompts"
)

// undetermined markers the city-inference prompt may answer with.
var undetermined = []string{"khong_xac_dinh", "không xác định", "undetermined", "unknown"}

// maxCityWords bounds a city answer; anything longer is a sentence, not a name.
const maxCityWords = 5

// cityInSentence captures the name after an inline "thành phố" in replies like "Đại Nội nằm ở thành phố Huế".
var cityInSentence = regexp.MustCompile(`(?i)\S\s+(?:thành phố|tp\.?)\s+(.+)$`)

// Parser turns a free-text question into an Analysis using the LLM collaborator.
type Parser struct {
	llm     ai.Completer
	prompts *prompts.Set
	logger  *slog.Logger
}

func NewParser(llm ai.Completer, logger *slog.Logger) *Parser {
	return &Parser{
		llm:     llm,
		prompts: prompts.Default(),
		logger:  logger.With("component", "intent-parser"),
	}
}

// Parse classifies question. It never fails: any LLM error is logged and Default is returned.
func (p *Parser) Parse(ctx context.Context, question string) Analysis {
	a, err := p.parse(ctx, question)
	if err != nil {
		p.logger.Warn("intent analysis failed", "question", question, "error", err)
		return Default()
	}
	p.logger.Debug("intent resolved",
		"question", question,
		"intent", a.Intent,
		"city", a.City,
		"place", a.PlaceName,
		"num_days", a.NumDays,
	)
	return a
}

func (p *Parser) parse(ctx context.Context, question string) (Analysis, error) {
	intents := make([]string, len(All))
	for i, k := range All {
		intents[i] = string(k)
	}
	prompt, err := p.prompts.Render(prompts.Intent, map[string]any{
		"Question": question,
		"Intents":  intents,
	})
	if err != nil {
		return Analysis{}, err
	}
	raw, err := p.llm.Complete(ctx, prompt)
	if err != nil {
		return Analysis{}, fmt.Errorf("classify: %w", err)
	}
	a := ParseLabeled(raw)

	// 1. navigation without a place: fall back to the text after "đến".
	if a.Intent == SpecificPlaceNavigation && a.PlaceName == "" {
		a.PlaceName = PlaceAfterKeyword(question)
	}

	// 2. a place without a city: ask the model where the place is.
	if a.PlaceName != "" && a.City == "" {
		city, err := p.InferCity(ctx, a.PlaceName)
		if err != nil {
			return Analysis{}, err
		}
		a.City = city
	}

	// 3. still no city: extract one straight from the question when it matters.
	if a.City == "" && needsCityExtraction(a) {
		city, err := p.ExtractCity(ctx, question)
		if err != nil {
			return Analysis{}, err
		}
		a.City = city
	}
	return a, nil
}

func needsCityExtraction(a Analysis) bool {
	if a.Intent.RequiresCity() {
		return true
	}
	switch a.Intent {
	case PlaceRecommendation, Unknown:
		return a.PlaceName == ""
	}
	return false
}

// InferCity asks the model which city place belongs to. Returns "" when the model is unsure.
func (p *Parser) InferCity(ctx context.Context, place string) (string, error) {
	prompt, err := p.prompts.Render(prompts.InferCity, map[string]any{"Place": place})
	if err != nil {
		return "", err
	}
	raw, err := p.llm.Complete(ctx, prompt)
	if errors.Is(err, ai.ErrEmptyResponse) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("infer city: %w", err)
	}
	lower := strings.ToLower(raw)
	for _, marker := range undetermined {
		if strings.Contains(lower, marker) {
			return "", nil
		}
	}
	return cleanCity(raw), nil
}

// ExtractCity asks the model for the city named in question. Returns "" when none is found.
func (p *Parser) ExtractCity(ctx context.Context, question string) (string, error) {
	prompt, err := p.prompts.Render(prompts.ExtractCity, map[string]any{"Question": question})
	if err != nil {
		return "", err
	}
	raw, err := p.llm.Complete(ctx, prompt)
	// the prompt asks for an empty answer when the question names no city
	if errors.Is(err, ai.ErrEmptyResponse) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("extract city: %w", err)
	}
	return cleanCity(raw), nil
}

// cleanCity keeps the first non-empty line of a one-line answer, minus any echoed label.
// A full sentence is reduced to the name after "thành phố", or rejected.
func cleanCity(raw string) string {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if i := strings.Index(line, ":"); i >= 0 && strings.Contains(strings.ToLower(line[:i]), "thành phố") {
			line = line[i+1:]
		}
		line = firstClause(line)
		if m := cityInSentence.FindStringSubmatch(line); m != nil {
			line = m[1]
		}
		line = cleanValue(line)
		if len(strings.Fields(line)) > maxCityWords {
			return ""
		}
		return line
	}
	return ""
}

// firstClause cuts s at the first clause or sentence break. "TP." is an abbreviation, not a break.
func firstClause(s string) string {
	if i := strings.IndexAny(s, ",;!?"); i >= 0 {
		s = s[:i]
	}
	for off := 0; ; {
		i := strings.Index(s[off:], ". ")
		if i < 0 {
			break
		}
		i += off
		if words := strings.Fields(s[:i]); len(words) > 0 && strings.EqualFold(words[len(words)-1], "tp") {
			off = i + 2
			continue
		}
		s = s[:i]
		break
	}
	return strings.TrimRight(strings.TrimSpace(s), ".")
}
