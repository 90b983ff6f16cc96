package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultEnv           = "development"
	defaultDBPath        = "./dev.db"
	defaultPort          = "8080"
	defaultLogLevel      = "info"
	defaultGeminiModel   = "gemini-2.5-flash"
	defaultAdviceTimeout = 30 * time.Second
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env           string
	AdminEmail    string
	AdminPassword string
	SessionSecret string
	DBPath        string
	Port          string
	LogLevel      string
	LogFormat     string
	GeminiAPIKey  string
	GeminiModel   string
	AdviceTimeout time.Duration
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Local development only; variables already in the environment win.
	if err := loadDotEnv(".env"); err != nil {
		log.Printf("warning: load .env: %v", err)
	}

	cfg := Config{
		Env:           os.Getenv("APP_ENV"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		DBPath:        os.Getenv("DB_PATH"),
		Port:          os.Getenv("PORT"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		LogFormat:     os.Getenv("LOG_FORMAT"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   os.Getenv("GEMINI_MODEL"),
		AdviceTimeout: defaultAdviceTimeout,
	}

	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
		if cfg.IsDev() {
			cfg.LogFormat = "console"
		}
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = defaultGeminiModel
	}
	if raw := os.Getenv("ADVICE_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			log.Printf("warning: invalid ADVICE_TIMEOUT %q, using %s", raw, defaultAdviceTimeout)
		} else {
			cfg.AdviceTimeout = d
		}
	}

	if cfg.AdminEmail == "" {
		log.Print("warning: ADMIN_EMAIL is not set")
	}
	if cfg.AdminPassword == "" {
		log.Print("warning: ADMIN_PASSWORD is not set")
	}
	if cfg.SessionSecret == "" && cfg.IsDev() {
		log.Print("warning: SESSION_SECRET is not set, using a random per-process secret")
	}
	if cfg.GeminiAPIKey == "" {
		log.Print("warning: GEMINI_API_KEY is not set, advice is disabled")
	}

	return cfg
}

// ErrMissingSessionSecret is returned by Validate outside development when no
// session secret is configured.
var ErrMissingSessionSecret = errors.New("SESSION_SECRET is required outside development")

// Validate reports configuration the server must not start with.
func (c Config) Validate() error {
	if c.SessionSecret == "" && !c.IsDev() {
		return ErrMissingSessionSecret
	}
	return nil
}

// IsDev reports whether the application runs in development mode.
func (c Config) IsDev() bool {
	return strings.EqualFold(c.Env, "development") || strings.EqualFold(c.Env, "dev")
}

// AdviceEnabled reports whether an advisory backend is configured.
func (c Config) AdviceEnabled() bool {
	return c.GeminiAPIKey != ""
}

// loadDotEnv loads a dotenv file without overwriting existing variables.
// A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
