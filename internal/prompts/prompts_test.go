package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_AllTemplatesPresent(t *testing.T) {
	set := Default()
	for _, name := range []string{Intent, InferCity, ExtractCity, ClothingAdvice, RecommendPlaces, PhraseWeather, Clarify} {
		assert.Contains(t, set.Names(), name)
	}
}

func TestRender_Intent(t *testing.T) {
	out, err := Default().Render(Intent, map[string]any{
		"Question": "Thời tiết Hà Nội hôm nay",
		"Intents":  []string{"current_weather", "unknown"},
	})
	require.NoError(t, err)
	assert.Contains(t, out, `Câu hỏi: "Thời tiết Hà Nội hôm nay"`)
	assert.Contains(t, out, "current_weather, unknown")
	assert.Contains(t, out, "NUM_DAYS:")
}

func TestRender_ClarifyOptionalSections(t *testing.T) {
	out, err := Default().Render(Clarify, map[string]any{
		"Question": "kể gì đó",
		"City":     "Huế",
		"Place":    "",
		"Context":  "",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Thành phố liên quan: Huế.")
	assert.NotContains(t, out, "Địa điểm liên quan")
	assert.NotContains(t, out, "Thông tin thời tiết hiện tại")
}

func TestRender_MissingKey(t *testing.T) {
	_, err := Default().Render(InferCity, map[string]any{})
	assert.Error(t, err)
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := Default().Render("nope", nil)
	assert.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("a: '{{ .X '"))
	assert.Error(t, err)

	_, err = Parse([]byte("- not a map"))
	assert.Error(t, err)
}
