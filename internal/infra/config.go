package infra

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv              string
	Port                string
	StoragePath         string
	StorageBaseURL      string
	GeminiAPIKey        string
	GeminiTextModel     string
	GeminiImageModel    string
	GeminiBaseURL       string
	PexelsAPIKey        string
	UnsplashAccessKey   string
	AllowedOrigins      []string
	HTTPReadTimeout     time.Duration
	HTTPWriteTimeout    time.Duration
	HTTPIdleTimeout     time.Duration
	RateLimitPerMin     int
	SessionTTL          time.Duration
	SearchDebounce      time.Duration
	RenderTimeout       time.Duration
	ScreenshotDimension int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:              getEnv("APP_ENV", "development"),
		Port:                getEnv("PORT", "8080"),
		StoragePath:         getEnv("STORAGE_PATH", "./data/artwork"),
		StorageBaseURL:      os.Getenv("STORAGE_BASE_URL"),
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		GeminiTextModel:     getEnv("GEMINI_TEXT_MODEL", "gemini-1.5-flash"),
		GeminiImageModel:    getEnv("GEMINI_IMAGE_MODEL", "gemini-2.0-flash-preview-image-generation"),
		GeminiBaseURL:       getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		PexelsAPIKey:        os.Getenv("PEXELS_API_KEY"),
		UnsplashAccessKey:   os.Getenv("UNSPLASH_ACCESS_KEY"),
		AllowedOrigins:      splitCSV(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		HTTPReadTimeout:     time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:    time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 60)),
		HTTPIdleTimeout:     time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:     getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		SessionTTL:          time.Minute * time.Duration(getEnvInt("SESSION_TTL_MINUTES", 120)),
		SearchDebounce:      time.Millisecond * time.Duration(getEnvInt("SEARCH_DEBOUNCE_MS", 500)),
		RenderTimeout:       time.Second * time.Duration(getEnvInt("RENDER_TIMEOUT_SECONDS", 20)),
		ScreenshotDimension: getEnvInt("SCREENSHOT_DIMENSION", 512),
	}

	if cfg.StorageBaseURL == "" {
		cfg.StorageBaseURL = "http://localhost:" + cfg.Port + "/static"
	}
	if _, err := url.Parse(cfg.StorageBaseURL); err != nil {
		return nil, err
	}

	return cfg, nil
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
