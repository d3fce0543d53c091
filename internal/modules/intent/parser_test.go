package intent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyguide/internal/ai"
)

// scriptedCompleter answers each prompt family with a fixed reply and records the order of calls.
// An empty reply surfaces as ai.ErrEmptyResponse, as the real providers do.
type scriptedCompleter struct {
	mu      sync.Mutex
	intent  string
	infer   string
	extract string
	failOn  string
	calls   []string
}

func (s *scriptedCompleter) Complete(_ context.Context, prompt string) (string, error) {
	var kind, reply string
	switch {
	case strings.Contains(prompt, "CITY:"):
		kind, reply = "intent", s.intent
	case strings.Contains(prompt, "KHONG_XAC_DINH"):
		kind, reply = "infer", s.infer
	case strings.Contains(prompt, "trích xuất"):
		kind, reply = "extract", s.extract
	default:
		kind = "other"
	}
	s.mu.Lock()
	s.calls = append(s.calls, kind)
	s.mu.Unlock()
	if kind == s.failOn {
		return "", errors.New("llm unavailable")
	}
	if strings.TrimSpace(reply) == "" {
		return "", fmt.Errorf("scripted: %w", ai.ErrEmptyResponse)
	}
	return reply, nil
}

func newTestParser(c *scriptedCompleter) *Parser {
	return NewParser(c, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestParser_CompleteAnswerNeedsNoRepair(t *testing.T) {
	llm := &scriptedCompleter{intent: "CITY: Hà Nội\nPLACE_NAME:\nINTENT: current_weather\nNUM_DAYS: 1"}
	got := newTestParser(llm).Parse(context.Background(), "Thời tiết Hà Nội hôm nay")

	assert.Equal(t, Analysis{City: "Hà Nội", Intent: CurrentWeather, NumDays: 1}, got)
	assert.Equal(t, []string{"intent"}, llm.calls)
}

func TestParser_NavigationHeuristicThenInferCity(t *testing.T) {
	llm := &scriptedCompleter{
		intent: "CITY:\nPLACE_NAME:\nINTENT: specific_place_navigation\nNUM_DAYS: 1",
		infer:  "Huế",
	}
	got := newTestParser(llm).Parse(context.Background(), "đến Đại Nội Huế")

	assert.Equal(t, SpecificPlaceNavigation, got.Intent)
	assert.Equal(t, "Đại Nội Huế", got.PlaceName)
	assert.Equal(t, "Huế", got.City)
	assert.Equal(t, []string{"intent", "infer"}, llm.calls)
}

func TestParser_UndeterminedCityIsDropped(t *testing.T) {
	llm := &scriptedCompleter{
		intent: "CITY:\nPLACE_NAME: Quán cà phê nhà bà Tư\nINTENT: specific_place_navigation",
		infer:  "KHONG_XAC_DINH",
	}
	got := newTestParser(llm).Parse(context.Background(), "đến quán cà phê nhà bà Tư")

	assert.Empty(t, got.City)
	assert.Equal(t, "Quán cà phê nhà bà Tư", got.PlaceName)
	// navigation never triggers the extraction call
	assert.Equal(t, []string{"intent", "infer"}, llm.calls)
}

func TestParser_WeatherIntentWithoutCityExtracts(t *testing.T) {
	llm := &scriptedCompleter{
		intent:  "INTENT: forecast_next_days\nNUM_DAYS: 3",
		extract: "Tên thành phố: Đà Lạt.",
	}
	got := newTestParser(llm).Parse(context.Background(), "3 ngày tới ở Đà Lạt thế nào")

	assert.Equal(t, Analysis{City: "Đà Lạt", Intent: ForecastNextDays, NumDays: 3}, got)
	assert.Equal(t, []string{"intent", "extract"}, llm.calls)
}

func TestParser_RecommendationWithPlaceInfersOnly(t *testing.T) {
	llm := &scriptedCompleter{
		intent: "CITY:\nPLACE_NAME: Bà Nà Hills\nINTENT: place_recommendation",
		infer:  "",
	}
	got := newTestParser(llm).Parse(context.Background(), "gần Bà Nà Hills có gì chơi")

	assert.Equal(t, PlaceRecommendation, got.Intent)
	assert.Empty(t, got.City)
	assert.Equal(t, []string{"intent", "infer"}, llm.calls)
}

func TestParser_UnknownWithNothingTriesExtraction(t *testing.T) {
	llm := &scriptedCompleter{intent: "INTENT: unknown", extract: ""}
	got := newTestParser(llm).Parse(context.Background(), "xin chào")

	assert.Equal(t, Default(), got)
	assert.Equal(t, []string{"intent", "extract"}, llm.calls)
}

func TestParser_DegradesOnAnyLLMError(t *testing.T) {
	for _, step := range []string{"intent", "infer", "extract"} {
		t.Run(step, func(t *testing.T) {
			llm := &scriptedCompleter{
				intent: "CITY:\nPLACE_NAME: Hồ Gươm\nINTENT: current_weather",
				infer:  "",
				failOn: step,
			}
			got := newTestParser(llm).Parse(context.Background(), "Hồ Gươm hôm nay thế nào")
			assert.Equal(t, Default(), got)
		})
	}
}

func TestParser_ExtractCity(t *testing.T) {
	llm := &scriptedCompleter{extract: "\n  \"Cần Thơ\"\n"}
	city, err := newTestParser(llm).ExtractCity(context.Background(), "Cần Thơ có mưa không")
	require.NoError(t, err)
	assert.Equal(t, "Cần Thơ", city)

	llm = &scriptedCompleter{extract: "none"}
	city, err = newTestParser(llm).ExtractCity(context.Background(), "có mưa không")
	require.NoError(t, err)
	assert.Empty(t, city)
}

func TestParser_NoCityKeepsClassifiedIntent(t *testing.T) {
	for _, kind := range []Kind{PlaceRecommendation, CurrentWeather, ForecastNextDays} {
		t.Run(string(kind), func(t *testing.T) {
			llm := &scriptedCompleter{
				intent:  "CITY:\nPLACE_NAME:\nINTENT: " + string(kind) + "\nNUM_DAYS: 1",
				extract: "",
			}
			got := newTestParser(llm).Parse(context.Background(), "Gợi ý vài địa điểm du lịch cho tôi")

			assert.Equal(t, Analysis{Intent: kind, NumDays: 1}, got)
			assert.Equal(t, []string{"intent", "extract"}, llm.calls)
		})
	}
}

func TestParser_EmptyAnswersMeanNoCity(t *testing.T) {
	p := newTestParser(&scriptedCompleter{})

	city, err := p.ExtractCity(context.Background(), "có mưa không")
	require.NoError(t, err)
	assert.Empty(t, city)

	city, err = p.InferCity(context.Background(), "quán cà phê nhà bà Tư")
	require.NoError(t, err)
	assert.Empty(t, city)
}

func TestCleanCity(t *testing.T) {
	cases := map[string]string{
		"Huế":                    "Huế",
		"Tên thành phố: Đà Lạt.": "Đà Lạt",
		"Đại Nội nằm ở thành phố Huế.":            "Huế",
		"Bà Nà Hills thuộc TP. Đà Nẵng, Việt Nam": "Đà Nẵng",
		"Thành phố Hồ Chí Minh":                   "Thành phố Hồ Chí Minh",
		"TP. Hồ Chí Minh":                         "TP. Hồ Chí Minh",
		"Hội An, Quảng Nam":                       "Hội An",
		"Nha Trang. Đây là thành phố biển.":       "Nha Trang",
		"Tôi không chắc địa điểm này nằm ở đâu":   "",
		"\n\n  none \n":                           "",
	}
	for in, want := range cases {
		assert.Equal(t, want, cleanCity(in), in)
	}
}
