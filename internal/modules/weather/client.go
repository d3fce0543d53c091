// README: OpenWeatherMap client (resty); classifies every failure into a FetchError.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"skyguide/internal/config"
)

const (
	currentEndpoint  = "/weather"
	forecastEndpoint = "/forecast"
	userAgent        = "skyguide/1.0"
)

// Fetcher is the weather collaborator. Client and its wrappers all implement it.
type Fetcher interface {
	Current(ctx context.Context, city string) (Snapshot, error)
	Forecast(ctx context.Context, city string) (Forecast, error)
}

type Client struct {
	rc     *resty.Client
	logger *slog.Logger
}

var _ Fetcher = (*Client)(nil)

func NewClient(cfg config.WeatherConfig, logger *slog.Logger) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetQueryParams(map[string]string{
			"appid": cfg.APIKey,
			"units": "metric",
			"lang":  cfg.Lang,
		})
	return &Client{rc: rc, logger: logger.With("component", "weather-client")}
}

// Fetch dispatches to Current or Forecast. Exactly one of the result payload or the error is set.
func Fetch(ctx context.Context, f Fetcher, city string, kind Kind) (Result, error) {
	switch kind {
	case KindCurrent:
		s, err := f.Current(ctx, city)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: kind, Current: &s}, nil
	case KindForecast:
		fc, err := f.Forecast(ctx, city)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: kind, Forecast: &fc}, nil
	}
	return Result{}, fetchErr(ErrUnexpected, city, 0, fmt.Errorf("unknown kind %q", kind))
}

func (c *Client) Current(ctx context.Context, city string) (Snapshot, error) {
	var raw owmCurrent
	if err := c.get(ctx, currentEndpoint, city, &raw); err != nil {
		return Snapshot{}, err
	}
	if raw.Main == nil || raw.Main.Temp == nil || len(raw.Weather) == 0 || raw.Weather[0].Description == "" {
		return Snapshot{}, fetchErr(ErrIncompleteData, city, 0, nil)
	}
	name := raw.Name
	if name == "" {
		name = city
	}
	return Snapshot{
		City:        name,
		Temperature: *raw.Main.Temp,
		FeelsLike:   raw.Main.FeelsLike,
		Humidity:    raw.Main.Humidity,
		Description: raw.Weather[0].Description,
		Icon:        raw.Weather[0].Icon,
	}, nil
}

func (c *Client) Forecast(ctx context.Context, city string) (Forecast, error) {
	var raw owmForecast
	if err := c.get(ctx, forecastEndpoint, city, &raw); err != nil {
		return Forecast{}, err
	}
	out := Forecast{City: raw.City.Name, Points: make([]Point, 0, len(raw.List))}
	if out.City == "" {
		out.City = city
	}
	for _, item := range raw.List {
		if item.Main == nil || item.Main.Temp == nil {
			continue
		}
		p := Point{
			Time:     pointTime(item.DtTxt, item.Dt),
			Temp:     *item.Main.Temp,
			TempMin:  *item.Main.Temp,
			TempMax:  *item.Main.Temp,
			Humidity: item.Main.Humidity,
		}
		if item.Main.TempMin != nil {
			p.TempMin = *item.Main.TempMin
		}
		if item.Main.TempMax != nil {
			p.TempMax = *item.Main.TempMax
		}
		if len(item.Weather) > 0 {
			p.Description = item.Weather[0].Description
			p.Icon = item.Weather[0].Icon
		}
		out.Points = append(out.Points, p)
	}
	if len(raw.List) > 0 && len(out.Points) == 0 {
		return Forecast{}, fetchErr(ErrIncompleteData, city, 0, nil)
	}
	return out, nil
}

func pointTime(dtTxt string, dt int64) time.Time {
	if t, err := time.ParseInLocation(dtLayout, dtTxt, time.UTC); err == nil {
		return t
	}
	return time.Unix(dt, 0).UTC()
}

func (c *Client) get(ctx context.Context, endpoint, city string, out any) error {
	start := time.Now()
	resp, err := c.rc.R().
		SetContext(ctx).
		SetQueryParam("q", city).
		Get(endpoint)
	if err != nil {
		kind := ErrNetwork
		var ne net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
			kind = ErrTimeout
		}
		c.logger.Warn("weather request failed", "endpoint", endpoint, "city", city, "error", err)
		return fetchErr(kind, city, 0, err)
	}

	status := resp.StatusCode()
	c.logger.Debug("weather response",
		"endpoint", endpoint,
		"city", city,
		"status", status,
		"latency", time.Since(start),
	)
	switch {
	case status == http.StatusNotFound:
		return fetchErr(ErrCityNotFound, city, status, nil)
	case status == http.StatusUnauthorized:
		return fetchErr(ErrUnauthorized, city, status, nil)
	case !resp.IsSuccess():
		var body owmError
		_ = json.Unmarshal(resp.Body(), &body)
		var detail error
		if body.Message != "" {
			detail = errors.New(body.Message)
		}
		return fetchErr(ErrUpstreamStatus, city, status, detail)
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fetchErr(ErrUnexpected, city, status, fmt.Errorf("decode %s: %w", endpoint, err))
	}
	return nil
}
