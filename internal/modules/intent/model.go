// README: Intent kinds and the per-request Analysis produced by the parser.
package intent

type Kind string

const (
	CurrentWeather          Kind = "current_weather"
	ClothingAdviceToday     Kind = "clothing_advice_today"
	ForecastTomorrow        Kind = "forecast_tomorrow"
	ClothingAdviceTomorrow  Kind = "clothing_advice_tomorrow"
	ForecastNextDays        Kind = "forecast_next_days"
	PlaceRecommendation     Kind = "place_recommendation"
	SpecificPlaceNavigation Kind = "specific_place_navigation"
	Unknown                 Kind = "unknown"
)

// All lists every intent kind in prompt order.
var All = []Kind{
	CurrentWeather,
	ClothingAdviceToday,
	ForecastTomorrow,
	ClothingAdviceTomorrow,
	ForecastNextDays,
	PlaceRecommendation,
	SpecificPlaceNavigation,
	Unknown,
}

// ParseKind maps a raw label value to a Kind; anything unrecognised is Unknown.
func ParseKind(s string) Kind {
	for _, k := range All {
		if string(k) == s {
			return k
		}
	}
	return Unknown
}

// RequiresCity reports whether handling the intent needs a resolved city.
func (k Kind) RequiresCity() bool {
	switch k {
	case CurrentWeather, ClothingAdviceToday, ForecastTomorrow, ClothingAdviceTomorrow, ForecastNextDays:
		return true
	}
	return false
}

// FutureOriented reports whether the intent only concerns days after today.
func (k Kind) FutureOriented() bool {
	switch k {
	case ForecastTomorrow, ClothingAdviceTomorrow, ForecastNextDays:
		return true
	}
	return false
}

// Analysis is the resolved classification of one question. It is immutable once returned.
type Analysis struct {
	City      string `json:"city"`
	PlaceName string `json:"place_name"`
	Intent    Kind   `json:"intent"`
	NumDays   int    `json:"num_days"`
}

// Default is the analysis used when nothing could be extracted.
func Default() Analysis {
	return Analysis{Intent: Unknown, NumDays: 1}
}
