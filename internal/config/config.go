package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for a pipeline run.
type Config struct {
	// Call fetcher
	RingoverAPIKey  string
	RingoverBaseURL string

	// Report sink
	GoogleCredentialsFile string
	DriveFolderName       string

	// Insight generator
	OpenAIAPIKey      string
	OpenAIModel       string
	OpenAIMaxTokens   int
	OpenAITemperature float64

	// Notifier
	EmailUser      string
	EmailPass      string
	EmailReceivers []string
	SMTPHost       string
	SMTPPort       int

	// Classification tuning
	ExcludeFirstNames []string
	MinCallVolume     int

	TargetDate string // YYYY-MM-DD
	ArchiveDir string // empty disables the local snapshot
	LogLevel   string
}

// Load loads configuration from environment variables. Every required
// credential is checked here, before any network call is attempted.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		RingoverBaseURL: getEnv("RINGOVER_API_URL", "https://public-api-us.ringover.com"),
		DriveFolderName: getEnv("DRIVE_FOLDER_NAME", "RingoverLogs"),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		SMTPHost:        getEnv("SMTP_HOST", "smtp.gmail.com"),
		TargetDate:      getEnv("TARGET_DATE", time.Now().AddDate(0, 0, -1).Format("2006-01-02")),
		ArchiveDir:      os.Getenv("ARCHIVE_DIR"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}

	required := []struct {
		name string
		dst  *string
	}{
		{"RINGOVER_API_KEY", &config.RingoverAPIKey},
		{"OPENAI_API_KEY", &config.OpenAIAPIKey},
		{"EMAIL_USER", &config.EmailUser},
		{"EMAIL_PASS", &config.EmailPass},
		{"GOOGLE_CREDENTIALS_FILE", &config.GoogleCredentialsFile},
	}
	for _, req := range required {
		value := strings.TrimSpace(os.Getenv(req.name))
		if value == "" {
			return nil, fmt.Errorf("missing required environment variable %s", req.name)
		}
		*req.dst = value
	}

	if _, err := time.Parse("2006-01-02", config.TargetDate); err != nil {
		return nil, fmt.Errorf("invalid TARGET_DATE: %w", err)
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	config.SMTPPort = smtpPort

	maxTokens, err := strconv.Atoi(getEnv("OPENAI_MAX_TOKENS", "2000"))
	if err != nil {
		return nil, fmt.Errorf("invalid OPENAI_MAX_TOKENS: %w", err)
	}
	config.OpenAIMaxTokens = maxTokens

	temperature, err := strconv.ParseFloat(getEnv("OPENAI_TEMPERATURE", "0.4"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OPENAI_TEMPERATURE: %w", err)
	}
	config.OpenAITemperature = temperature

	minCalls, err := strconv.Atoi(getEnv("MIN_CALL_VOLUME", "150"))
	if err != nil {
		return nil, fmt.Errorf("invalid MIN_CALL_VOLUME: %w", err)
	}
	config.MinCallVolume = minCalls

	config.EmailReceivers = splitList(getEnv("EMAIL_RECEIVERS", config.EmailUser))
	config.ExcludeFirstNames = splitList(getEnv("EXCLUDE_FIRST_NAMES", "Cody,Hannah,Shannon,Clinton"))

	return config, nil
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
