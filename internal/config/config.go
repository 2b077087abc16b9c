package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the configuration for the application.
type Config struct {
	DatabasePath    string
	PlanStoragePath string
	LogLevel        string
	LogFormat       string

	// Optimizer
	OptimizerPreset       string
	OptimizerFast         bool
	BodyWeightKg          float64
	RestrictionVocabulary []string

	// Food grading at import time
	GeminiAPIKey   string
	GeminiModel    string
	GroqAPIKey     string
	GroqModel      string
	GradeCachePath string

	// Telegram Config
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramListenAddr     string
	TelegramAllowedUserIDs []int64
	AdminTelegramID        int64
}

// NewFromEnv creates a new Config object from environment variables. A .env
// file in the working directory is loaded first when present.
func NewFromEnv() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{
		DatabasePath:       getEnv("DATABASE_PATH", "data/menu.db"),
		PlanStoragePath:    getEnv("PLAN_STORAGE_PATH", "data/plans"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
		OptimizerPreset:    os.Getenv("OPTIMIZER_PRESET"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		GroqAPIKey:         os.Getenv("GROQ_API_KEY"),
		GroqModel:          getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
		GradeCachePath:     getEnv("GRADE_CACHE_PATH", "data/grades.json"),
		TelegramBotToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL: os.Getenv("TELEGRAM_WEBHOOK_URL"),
		TelegramListenAddr: getEnv("TELEGRAM_LISTEN_ADDR", ":8080"),
	}

	var err error
	if cfg.OptimizerFast, err = parseBool("OPTIMIZER_FAST", false); err != nil {
		return nil, err
	}
	if cfg.BodyWeightKg, err = parseFloat("BODY_WEIGHT_KG", 70); err != nil {
		return nil, err
	}
	if cfg.AdminTelegramID, err = parseInt("ADMIN_TELEGRAM_ID"); err != nil {
		return nil, err
	}
	if cfg.TelegramAllowedUserIDs, err = parseIDs("TELEGRAM_ALLOWED_USER_IDS"); err != nil {
		return nil, err
	}
	cfg.RestrictionVocabulary = splitList(os.Getenv("RESTRICTION_VOCABULARY"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that parse but make no sense.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH must not be empty")
	}
	if c.BodyWeightKg <= 0 || c.BodyWeightKg > 500 {
		return fmt.Errorf("BODY_WEIGHT_KG must be in (0, 500], got %v", c.BodyWeightKg)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.LogFormat)
	}
	return nil
}

// RequireTelegram checks the settings the bot binary cannot start without.
func (c *Config) RequireTelegram() error {
	if c.TelegramBotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable not set")
	}
	if c.TelegramWebhookURL == "" {
		return fmt.Errorf("TELEGRAM_WEBHOOK_URL environment variable not set")
	}
	if len(c.TelegramAllowedUserIDs) == 0 && c.AdminTelegramID == 0 {
		return fmt.Errorf("TELEGRAM_ALLOWED_USER_IDS or ADMIN_TELEGRAM_ID must be set")
	}
	return nil
}

// IsUserAllowed reports whether the Telegram user may talk to the bot.
func (c *Config) IsUserAllowed(id int64) bool {
	if id != 0 && id == c.AdminTelegramID {
		return true
	}
	for _, allowed := range c.TelegramAllowedUserIDs {
		if allowed == id {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseBool(key string, def bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func parseFloat(key string, def float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func parseInt(key string) (int64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func parseIDs(key string) ([]int64, error) {
	var ids []int64
	for _, part := range splitList(os.Getenv(key)) {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s entry %q: %w", key, part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
