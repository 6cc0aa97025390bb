package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Oracle   OracleConfig
	Records  RecordsConfig
}

type AppConfig struct {
	Port        string
	Environment string
	LogFilePath string
}

// IsProduction reports whether GO_ENV selects production
func (a AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

type DatabaseConfig struct {
	URL string
}

type OracleConfig struct {
	Provider    string // "gemini" or "lexical"
	APIKey      string
	Model       string
	Timeout     time.Duration
	MaxAttempts int
}

type RecordsConfig struct {
	Source   string // "builtin", "file" or "postgres"
	SeedPath string
}

const (
	ProviderGemini  = "gemini"
	ProviderLexical = "lexical"
)

// Load reads .env (if any) and the process environment
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Println("Note: .env file not found, using system environment")
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only
func FromEnv() *Config {
	return &Config{
		App: AppConfig{
			Port:        getEnv("PORT", "8080"),
			Environment: getEnv("GO_ENV", "development"),
			LogFilePath: getEnv("LOG_FILE_PATH", "logs/awardcheck.log"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Oracle: OracleConfig{
			Provider:    getEnv("ORACLE_PROVIDER", ProviderGemini),
			APIKey:      getEnv("GEMINI_API_KEY", ""),
			Model:       getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			Timeout:     getEnvAsDuration("ORACLE_TIMEOUT", 5*time.Second),
			MaxAttempts: getEnvAsInt("ORACLE_MAX_ATTEMPTS", 1),
		},
		Records: RecordsConfig{
			Source:   getEnv("RECORD_SOURCE", "builtin"),
			SeedPath: getEnv("RECORD_SEED_PATH", "records.yaml"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("1500ms") or whole seconds ("5")
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if d, err := time.ParseDuration(strValue); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(strValue); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
