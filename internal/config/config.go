// README: Config loader; .env + environment via viper, with defaults for HTTP, LLM, weather, cache and quota settings.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LLM providers understood by ai.NewProvider.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

var ErrMissingSecret = errors.New("required secret is not set")

type LLMConfig struct {
	Provider string
	Model    string
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
}

type WeatherConfig struct {
	APIKey   string
	BaseURL  string
	Lang     string
	Timeout  time.Duration
	RPS      float64
	Burst    int
	CacheTTL time.Duration
}

type Config struct {
	HTTP struct {
		Addr    string
		GinMode string
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr string
	}
	Quota struct {
		Tokens int
	}
	Log struct {
		Level  string
		Format string
	}
	Maps struct {
		APIKey string
	}
	LLM      LLMConfig
	Weather  WeatherConfig
	Timezone string
}

// Load reads .env (if present) and the process environment. Missing secrets are fatal.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return load(viper.New())
}

func load(v *viper.Viper) (Config, error) {
	v.SetDefault("http.addr", ":8000")
	v.SetDefault("http.ginmode", "release")
	v.SetDefault("llm.provider", ProviderGemini)
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.timeout", 20*time.Second)
	v.SetDefault("weather.baseurl", "https://api.openweathermap.org/data/2.5")
	v.SetDefault("weather.lang", "vi")
	v.SetDefault("weather.timeout", 10*time.Second)
	v.SetDefault("weather.rps", 1.0)
	v.SetDefault("weather.burst", 5)
	v.SetDefault("weather.cachettl", 10*time.Minute)
	v.SetDefault("quota.tokens", 100)
	v.SetDefault("timezone", "Asia/Ho_Chi_Minh")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	bindings := map[string][]string{
		"http.addr":        {"SKYGUIDE_HTTP_ADDR"},
		"http.ginmode":     {"SKYGUIDE_GIN_MODE"},
		"llm.provider":     {"SKYGUIDE_LLM_PROVIDER"},
		"llm.model":        {"SKYGUIDE_LLM_MODEL"},
		"llm.baseurl":      {"SKYGUIDE_LLM_BASE_URL"},
		"llm.timeout":      {"SKYGUIDE_LLM_TIMEOUT"},
		"llm.geminikey":    {"GOOGLE_AI_API_KEY", "GEMINI_API_KEY"},
		"llm.openaikey":    {"OPENAI_API_KEY"},
		"weather.apikey":   {"OPENWEATHERMAP_API_KEY"},
		"weather.baseurl":  {"SKYGUIDE_WEATHER_BASE_URL"},
		"weather.lang":     {"SKYGUIDE_WEATHER_LANG"},
		"weather.timeout":  {"SKYGUIDE_WEATHER_TIMEOUT"},
		"weather.rps":      {"SKYGUIDE_WEATHER_RPS"},
		"weather.burst":    {"SKYGUIDE_WEATHER_BURST"},
		"weather.cachettl": {"SKYGUIDE_CACHE_TTL"},
		"redis.addr":       {"SKYGUIDE_REDIS_ADDR"},
		"db.dsn":           {"SKYGUIDE_DB_DSN"},
		"quota.tokens":     {"SKYGUIDE_QUOTA_TOKENS"},
		"maps.apikey":      {"GOOGLE_MAPS_API_KEY"},
		"timezone":         {"SKYGUIDE_TIMEZONE"},
		"log.level":        {"SKYGUIDE_LOG_LEVEL"},
		"log.format":       {"SKYGUIDE_LOG_FORMAT"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	var cfg Config
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.HTTP.GinMode = v.GetString("http.ginmode")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.Redis.Addr = v.GetString("redis.addr")
	cfg.Quota.Tokens = v.GetInt("quota.tokens")
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")
	cfg.Maps.APIKey = v.GetString("maps.apikey")
	cfg.Timezone = v.GetString("timezone")

	cfg.LLM = LLMConfig{
		Provider: strings.ToLower(strings.TrimSpace(v.GetString("llm.provider"))),
		Model:    v.GetString("llm.model"),
		BaseURL:  v.GetString("llm.baseurl"),
		Timeout:  v.GetDuration("llm.timeout"),
	}
	switch cfg.LLM.Provider {
	case ProviderGemini:
		cfg.LLM.APIKey = v.GetString("llm.geminikey")
		if cfg.LLM.APIKey == "" {
			return Config{}, fmt.Errorf("%w: GOOGLE_AI_API_KEY", ErrMissingSecret)
		}
	case ProviderOpenAI:
		cfg.LLM.APIKey = v.GetString("llm.openaikey")
		if cfg.LLM.APIKey == "" {
			return Config{}, fmt.Errorf("%w: OPENAI_API_KEY", ErrMissingSecret)
		}
	case ProviderOllama:
	default:
		return Config{}, fmt.Errorf("unsupported llm provider %q", cfg.LLM.Provider)
	}

	cfg.Weather = WeatherConfig{
		APIKey:   v.GetString("weather.apikey"),
		BaseURL:  v.GetString("weather.baseurl"),
		Lang:     v.GetString("weather.lang"),
		Timeout:  v.GetDuration("weather.timeout"),
		RPS:      v.GetFloat64("weather.rps"),
		Burst:    v.GetInt("weather.burst"),
		CacheTTL: v.GetDuration("weather.cachettl"),
	}
	if cfg.Weather.APIKey == "" {
		return Config{}, fmt.Errorf("%w: OPENWEATHERMAP_API_KEY", ErrMissingSecret)
	}

	return cfg, nil
}

// Location resolves the configured timezone, falling back to UTC+7 when the tz database is unavailable.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.FixedZone(c.Timezone, 7*60*60)
	}
	return loc
}

// NewLogger builds the process logger from the log level and format settings.
func (c Config) NewLogger() *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default:
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}
