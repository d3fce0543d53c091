// README: Weather domain types; current snapshot, forecast points and the OpenWeatherMap payload shapes.
package weather

import "time"

// Kind selects the upstream endpoint.
type Kind string

const (
	KindCurrent  Kind = "current"
	KindForecast Kind = "forecast"
)

// Snapshot is the current conditions for one city at fetch time.
type Snapshot struct {
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    float64 `json:"humidity"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

// Point is one timestamped reading of a multi-point forecast.
type Point struct {
	Time        time.Time `json:"time"`
	Temp        float64   `json:"temp"`
	TempMin     float64   `json:"temp_min"`
	TempMax     float64   `json:"temp_max"`
	Humidity    float64   `json:"humidity"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
}

type Forecast struct {
	City   string  `json:"city"`
	Points []Point `json:"points"`
}

// Result holds exactly one of Current or Forecast, matching Kind.
type Result struct {
	Kind     Kind
	Current  *Snapshot
	Forecast *Forecast
}

// dtLayout is the format of the forecast "dt_txt" field, always UTC.
const dtLayout = "2006-01-02 15:04:05"

type owmMain struct {
	Temp      *float64 `json:"temp"`
	FeelsLike float64  `json:"feels_like"`
	TempMin   *float64 `json:"temp_min"`
	TempMax   *float64 `json:"temp_max"`
	Humidity  float64  `json:"humidity"`
}

type owmCondition struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type owmCurrent struct {
	Name    string         `json:"name"`
	Main    *owmMain       `json:"main"`
	Weather []owmCondition `json:"weather"`
}

type owmForecast struct {
	City struct {
		Name string `json:"name"`
	} `json:"city"`
	List []struct {
		Dt      int64          `json:"dt"`
		DtTxt   string         `json:"dt_txt"`
		Main    *owmMain       `json:"main"`
		Weather []owmCondition `json:"weather"`
	} `json:"list"`
}

// owmError is the body OpenWeatherMap sends with non-2xx statuses.
type owmError struct {
	Message string `json:"message"`
}
