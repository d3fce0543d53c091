// README: Assistant; resolves intent, then routes to one handler per intent and returns the final message.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"skyguide/internal/ai"
	"skyguide/internal/maps"
	"skyguide/internal/modules/intent"
	"skyguide/internal/modules/weather"
	"skyguide/internal/prompts"
	"skyguide/internal/types"
)

// MaxForecastDays is the widest window the 5-day/3-hour forecast can cover.
const MaxForecastDays = 5

// IntentParser is the slice of intent.Parser the assistant depends on.
type IntentParser interface {
	Parse(ctx context.Context, question string) intent.Analysis
	ExtractCity(ctx context.Context, question string) (string, error)
}

// Request is one inbound question. Origin is nil unless the caller shared valid coordinates.
type Request struct {
	Question string
	Origin   *types.Point
}

type Deps struct {
	Parser  IntentParser
	Weather weather.Fetcher
	LLM     ai.Completer
	// Places and Routes are optional; links are built without them.
	Places maps.PlaceFinder
	Routes maps.RouteEstimator
	// Now defaults to time.Now in Location.
	Now      func() time.Time
	Location *time.Location
	Logger   *slog.Logger
}

type handler func(ctx context.Context, req Request, a intent.Analysis) string

type Assistant struct {
	parser   IntentParser
	weather  weather.Fetcher
	llm      ai.Completer
	places   maps.PlaceFinder
	routes   maps.RouteEstimator
	prompts  *prompts.Set
	now      func() time.Time
	logger   *slog.Logger
	handlers map[intent.Kind]handler
}

func NewAssistant(d Deps) *Assistant {
	loc := d.Location
	if loc == nil {
		loc = time.UTC
	}
	now := d.Now
	if now == nil {
		now = func() time.Time { return time.Now().In(loc) }
	}
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	a := &Assistant{
		parser:  d.Parser,
		weather: d.Weather,
		llm:     d.LLM,
		places:  d.Places,
		routes:  d.Routes,
		prompts: prompts.Default(),
		now:     now,
		logger:  logger.With("component", "assistant"),
	}
	a.handlers = map[intent.Kind]handler{
		intent.CurrentWeather:          a.currentWeather,
		intent.ClothingAdviceToday:     a.clothingToday,
		intent.ForecastTomorrow:        a.forecastTomorrow,
		intent.ClothingAdviceTomorrow:  a.clothingTomorrow,
		intent.ForecastNextDays:        a.forecastNextDays,
		intent.PlaceRecommendation:     a.recommendPlaces,
		intent.SpecificPlaceNavigation: a.navigate,
		intent.Unknown:                 a.clarify,
	}
	return a
}

// Answer never fails: every error is logged and turned into a message for the user.
func (a *Assistant) Answer(ctx context.Context, req Request) string {
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		return msgEmptyQuestion
	}

	// 1. Resolve intent and slots.
	an := a.parser.Parse(ctx, req.Question)

	// 2. Guards before dispatch.
	if an.Intent.RequiresCity() && an.City == "" {
		city, err := a.parser.ExtractCity(ctx, req.Question)
		if err != nil {
			a.logger.Warn("city extraction failed", "question", req.Question, "error", err)
		}
		if city == "" {
			return msgNoCity
		}
		an.City = city
	}
	if an.Intent == intent.SpecificPlaceNavigation && an.PlaceName == "" {
		return msgNoPlace
	}

	// 3. Dispatch.
	h, ok := a.handlers[an.Intent]
	if !ok {
		h = a.handlers[intent.Unknown]
	}
	return h(ctx, req, an)
}

// complete renders a prompt and runs it through the LLM.
func (a *Assistant) complete(ctx context.Context, name string, data map[string]any) (string, error) {
	prompt, err := a.prompts.Render(name, data)
	if err != nil {
		return "", err
	}
	out, err := a.llm.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return strings.TrimSpace(out), nil
}

func (a *Assistant) weatherFailure(err error, city string) string {
	a.logger.Warn("weather fetch failed", "city", city, "error", err)
	return weather.UserMessage(err, city)
}

// remark appends a short LLM-written comment to a deterministic fact; the fact alone on failure.
func (a *Assistant) remark(ctx context.Context, fact string) string {
	out, err := a.complete(ctx, prompts.PhraseWeather, map[string]any{"Fact": fact})
	if err != nil || out == "" {
		if err != nil {
			a.logger.Warn("weather phrasing failed", "error", err)
		}
		return fact
	}
	return fact + "\n" + out
}
