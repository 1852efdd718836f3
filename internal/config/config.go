package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates every tunable of the service.
type Config struct {
	Server  ServerConfig
	AI      AIConfig
	Session SessionConfig
	Store   StoreConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	session, err := loadSessionConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:  server,
		AI:      ai,
		Session: session,
		Store:   loadStoreConfig(),
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
	SessionSecret  string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	addr := port
	if !strings.Contains(port, ":") {
		if strings.Contains(port, " ") {
			return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
		}
		// Accept bare "8080" as well as ":8080" or "127.0.0.1:8080".
		addr = ":" + port
	}

	origins := splitAndTrim(getEnvOrDefault("ALLOWED_ORIGINS", "https://myrecovery365.com"))

	return ServerConfig{
		Addr:           addr,
		AllowedOrigins: origins,
		SessionSecret:  strings.TrimSpace(os.Getenv("SECRET_KEY")),
	}, nil
}

// Backend providers for the completion service.
const (
	ProviderGemini = "gemini"
	ProviderArk    = "ark"
)

// AIConfig describes the completion backend.
type AIConfig struct {
	Provider string

	GeminiAPIKey string
	GeminiModel  string

	ArkAPIKey    string
	ArkAccessKey string
	ArkSecretKey string
	ArkModel     string
	ArkBaseURL   string
	ArkRegion    string

	Temperature *float64
	MaxTokens   *int
	Timeout     time.Duration
}

// Enabled reports whether the configured provider has usable credentials.
func (c AIConfig) Enabled() bool {
	switch c.Provider {
	case ProviderGemini:
		return c.GeminiAPIKey != ""
	case ProviderArk:
		return c.ArkModel != "" && (c.ArkAPIKey != "" || (c.ArkAccessKey != "" && c.ArkSecretKey != ""))
	default:
		return false
	}
}

func loadAIConfig() (AIConfig, error) {
	provider := strings.ToLower(getEnvOrDefault("BACKEND_PROVIDER", ProviderGemini))
	if provider != ProviderGemini && provider != ProviderArk {
		return AIConfig{}, fmt.Errorf("unknown BACKEND_PROVIDER %q", provider)
	}

	temperature, err := parseOptionalFloatEnv("BACKEND_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("BACKEND_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	timeoutSeconds := 8
	if override, err := parseOptionalIntEnv("BACKEND_TIMEOUT_SECONDS"); err != nil {
		return AIConfig{}, err
	} else if override != nil && *override > 0 {
		timeoutSeconds = *override
	}

	return AIConfig{
		Provider:     provider,
		GeminiAPIKey: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:  getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash-exp"),
		ArkAPIKey:    strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		ArkAccessKey: strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		ArkSecretKey: strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		ArkModel:     strings.TrimSpace(os.Getenv("ARK_MODEL")),
		ArkBaseURL:   getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		ArkRegion:    getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature:  temperature,
		MaxTokens:    maxTokens,
		Timeout:      time.Duration(timeoutSeconds) * time.Second,
	}, nil
}

// SessionConfig bounds the in-memory session store.
type SessionConfig struct {
	HistoryWindow int
	TTL           time.Duration
	MaxSessions   int
}

func loadSessionConfig() (SessionConfig, error) {
	cfg := SessionConfig{}

	if window, err := parseOptionalIntEnv("SESSION_HISTORY_WINDOW"); err != nil {
		return SessionConfig{}, err
	} else if window != nil {
		cfg.HistoryWindow = *window
	}

	if ttlMinutes, err := parseOptionalIntEnv("SESSION_TTL_MINUTES"); err != nil {
		return SessionConfig{}, err
	} else if ttlMinutes != nil {
		cfg.TTL = time.Duration(*ttlMinutes) * time.Minute
	}

	if max, err := parseOptionalIntEnv("SESSION_MAX"); err != nil {
		return SessionConfig{}, err
	} else if max != nil {
		cfg.MaxSessions = *max
	}

	return cfg, nil
}

// StoreConfig describes durable storage for feedback records.
type StoreConfig struct {
	FeedbackDBPath string
}

func loadStoreConfig() StoreConfig {
	return StoreConfig{
		FeedbackDBPath: getEnvOrDefault("FEEDBACK_DB_PATH", "data/feedback.db"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
