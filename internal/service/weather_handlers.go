package service

import (
	"context"
	"fmt"

	"skyguide/internal/modules/forecast"
	"skyguide/internal/modules/intent"
	"skyguide/internal/modules/weather"
	"skyguide/internal/prompts"
)

func currentFact(s weather.Snapshot) string {
	return fmt.Sprintf("Thời tiết hiện tại ở %s: %s, nhiệt độ %.1f°C (cảm giác như %.1f°C), độ ẩm %.0f%%.",
		s.City, s.Description, s.Temperature, s.FeelsLike, s.Humidity)
}

func (a *Assistant) fetchCurrent(ctx context.Context, city string) (weather.Snapshot, error) {
	r, err := weather.Fetch(ctx, a.weather, city, weather.KindCurrent)
	if err != nil {
		return weather.Snapshot{}, err
	}
	return *r.Current, nil
}

func (a *Assistant) fetchForecast(ctx context.Context, city string) (weather.Forecast, error) {
	r, err := weather.Fetch(ctx, a.weather, city, weather.KindForecast)
	if err != nil {
		return weather.Forecast{}, err
	}
	return *r.Forecast, nil
}

func (a *Assistant) currentWeather(ctx context.Context, _ Request, an intent.Analysis) string {
	s, err := a.fetchCurrent(ctx, an.City)
	if err != nil {
		return a.weatherFailure(err, an.City)
	}
	return a.remark(ctx, currentFact(s))
}

func (a *Assistant) clothingToday(ctx context.Context, _ Request, an intent.Analysis) string {
	s, err := a.fetchCurrent(ctx, an.City)
	if err != nil {
		return a.weatherFailure(err, an.City)
	}
	fact := currentFact(s)
	return fact + "\n\n" + a.clothingAdvice(ctx, "hôm nay", s.City, fact)
}

func (a *Assistant) clothingAdvice(ctx context.Context, when, city, conditions string) string {
	advice, err := a.complete(ctx, prompts.ClothingAdvice, map[string]any{
		"When":       when,
		"City":       city,
		"Conditions": conditions,
	})
	if err != nil || advice == "" {
		a.logger.Warn("clothing advice failed", "city", city, "error", err)
		return msgAdviceFailed
	}
	return advice
}

func (a *Assistant) forecastTomorrow(ctx context.Context, _ Request, an intent.Analysis) string {
	return a.forecastReply(ctx, an.City, 1)
}

func (a *Assistant) forecastNextDays(ctx context.Context, _ Request, an intent.Analysis) string {
	return a.forecastReply(ctx, an.City, min(max(an.NumDays, 1), MaxForecastDays))
}

func (a *Assistant) forecastReply(ctx context.Context, city string, days int) string {
	f, err := a.fetchForecast(ctx, city)
	if err != nil {
		return a.weatherFailure(err, city)
	}
	// a single day always means tomorrow
	kind := intent.ForecastNextDays
	if days == 1 {
		kind = intent.ForecastTomorrow
	}
	sum := forecast.Aggregate(f.Points, days, kind, a.now())
	if sum.Status != forecast.StatusOK {
		return sum.Text
	}

	header := fmt.Sprintf("Dự báo thời tiết %d ngày tới ở %s:", len(sum.Days), f.City)
	if days == 1 {
		header = fmt.Sprintf("Dự báo thời tiết ngày mai ở %s:", f.City)
	}
	return a.remark(ctx, header+"\n"+sum.Text)
}

func (a *Assistant) clothingTomorrow(ctx context.Context, _ Request, an intent.Analysis) string {
	f, err := a.fetchForecast(ctx, an.City)
	if err != nil {
		return a.weatherFailure(err, an.City)
	}
	sum := forecast.Aggregate(f.Points, 1, intent.ClothingAdviceTomorrow, a.now())
	if sum.Status != forecast.StatusOK || sum.Tomorrow == nil {
		return sum.Text
	}

	t := sum.Tomorrow
	conditions := fmt.Sprintf("nhiệt độ từ %.0f đến %.0f°C, độ ẩm trung bình %.0f%%", t.MinTemp, t.MaxTemp, t.Humidity)
	if t.Description != "" {
		conditions += ", " + t.Description
	}
	fact := fmt.Sprintf("Dự báo ngày mai ở %s: %s.", f.City, conditions)
	return fact + "\n\n" + a.clothingAdvice(ctx, "ngày mai", f.City, conditions)
}
