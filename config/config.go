// Package config handles loading and validation of application configuration
// from environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/feedbackform/feedback-backend/logger"
	"github.com/spf13/viper"
)

// Environment represents the application's running environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"

	minJWTSecretLength = 32
)

// Storage backend identifiers selectable via STORE_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendBadger   = "badger"
	BackendFile     = "file"
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT"`
	Port           string      `mapstructure:"PORT"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS"`
	Version        string      `mapstructure:"VERSION"`
	// AdminToken is the shared secret expected in X-Admin-Token on
	// administrative endpoints. Empty disables the gate.
	AdminToken string `mapstructure:"ADMIN_TOKEN"`
	// TrustedProxies is a list of CIDR ranges or IPs of trusted reverse
	// proxies. If empty, X-Forwarded-For headers are ignored entirely, so the
	// stored client IP is the socket peer.
	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES"`
}

// DatabaseConfig holds PostgreSQL connection details.
type DatabaseConfig struct {
	Host     string `mapstructure:"HOST"`
	Port     int    `mapstructure:"PORT"`
	User     string `mapstructure:"USER"`
	Password string `mapstructure:"PASSWORD"`
	Name     string `mapstructure:"NAME"`
	SSLMode  string `mapstructure:"SSL_MODE"`
	MaxConns int    `mapstructure:"MAX_CONNS"`
}

// URL returns a postgres:// connection URL suitable for golang-migrate and
// pgxpool.
func (c *DatabaseConfig) URL() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		c.Name,
		sslmode,
	)
}

// StoreConfig selects the feedback storage backend.
type StoreConfig struct {
	// Backend is one of postgres, badger, file.
	Backend string `mapstructure:"BACKEND"`
	// BadgerDir is the data directory for the badger backend.
	BadgerDir string `mapstructure:"BADGER_DIR"`
	// FilePath is the JSONL file for the append-only file backend.
	FilePath string `mapstructure:"FILE_PATH"`
}

// OpenAIConfig holds settings for the chat completion provider. An empty API
// key disables the chat endpoints.
type OpenAIConfig struct {
	APIKey       string `mapstructure:"API_KEY"`
	Model        string `mapstructure:"MODEL"`
	BaseURL      string `mapstructure:"BASE_URL"`
	SystemPrompt string `mapstructure:"SYSTEM_PROMPT"`
}

// AuthConfig holds the HS256 secret used to verify bearer identity tokens on
// the chat endpoints. Empty disables identity verification.
type AuthConfig struct {
	JWTSecret string `mapstructure:"JWT_SECRET"`
}

// Config aggregates all application configuration sections.
type Config struct {
	Server   ServerConfig   `mapstructure:"SERVER"`
	Database DatabaseConfig `mapstructure:"DATABASE"`
	Store    StoreConfig    `mapstructure:"STORE"`
	OpenAI   OpenAIConfig   `mapstructure:"OPENAI"`
	Auth     AuthConfig     `mapstructure:"AUTH"`
}

// IsProduction returns true when running in the production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// applies defaults, unmarshals and validates.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER.TRUSTED_PROXIES", []string{})
	v.SetDefault("SERVER.VERSION", "dev")
	v.SetDefault("DATABASE.HOST", "localhost")
	v.SetDefault("DATABASE.PORT", 5432)
	v.SetDefault("DATABASE.USER", "postgres")
	v.SetDefault("DATABASE.PASSWORD", "")
	v.SetDefault("DATABASE.NAME", "feedback_dev")
	v.SetDefault("DATABASE.SSL_MODE", "disable")
	v.SetDefault("DATABASE.MAX_CONNS", 5)
	v.SetDefault("STORE.BACKEND", BackendPostgres)
	v.SetDefault("STORE.BADGER_DIR", "data/badger")
	v.SetDefault("STORE.FILE_PATH", "data/feedback.jsonl")
	v.SetDefault("OPENAI.MODEL", "gpt-4.1-mini")
	v.SetDefault("OPENAI.BASE_URL", "")
	v.SetDefault("OPENAI.SYSTEM_PROMPT", "You are a concise, friendly assistant. Always answer in the language the question was asked in.")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		{"SERVER.ENVIRONMENT", "SERVER_ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.VERSION", "VERSION"},
		{"SERVER.ADMIN_TOKEN", "ADMIN_TOKEN"},
		{"SERVER.TRUSTED_PROXIES", "TRUSTED_PROXIES"},
		{"DATABASE.HOST", "DB_HOST"},
		{"DATABASE.PORT", "DB_PORT"},
		{"DATABASE.USER", "DB_USER"},
		{"DATABASE.PASSWORD", "DB_PASSWORD"},
		{"DATABASE.NAME", "DB_NAME"},
		{"DATABASE.SSL_MODE", "DB_SSL_MODE"},
		{"DATABASE.MAX_CONNS", "DB_MAX_CONNS"},
		{"STORE.BACKEND", "STORE_BACKEND"},
		{"STORE.BADGER_DIR", "BADGER_DIR"},
		{"STORE.FILE_PATH", "FEEDBACK_FILE"},
		{"OPENAI.API_KEY", "OPENAI_API_KEY"},
		{"OPENAI.MODEL", "OPENAI_MODEL"},
		{"OPENAI.BASE_URL", "OPENAI_BASE_URL"},
		{"OPENAI.SYSTEM_PROMPT", "OPENAI_SYSTEM_PROMPT"},
		{"AUTH.JWT_SECRET", "AUTH_JWT_SECRET"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Infow("Configuration loaded",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
		"store_backend", cfg.Store.Backend,
		"admin_gate", cfg.Server.AdminToken != "",
		"chat_enabled", cfg.OpenAI.APIKey != "",
	)
	return &cfg, nil
}

// validateConfig checks the loaded configuration values.
func validateConfig(cfg *Config) error {
	log := logger.GetLogger()

	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if !containsWildcard(cfg.Server.AllowedOrigins) {
		for _, origin := range cfg.Server.AllowedOrigins {
			if _, err := url.ParseRequestURI(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %q: %w", origin, err)
			}
		}
	}
	if cfg.Server.AdminToken == "" {
		log.Warn("ADMIN_TOKEN is not set; administrative endpoints are unauthenticated")
	}

	switch cfg.Store.Backend {
	case BackendPostgres:
		if cfg.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if cfg.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if cfg.Database.Name == "" {
			return fmt.Errorf("database name is required")
		}
		if cfg.Database.Password == "" {
			log.Warn("Database password is not set. Ensure this is intended (e.g., trusted auth).")
		}
	case BackendBadger:
		if cfg.Store.BadgerDir == "" {
			return fmt.Errorf("badger data directory is required")
		}
	case BackendFile:
		if cfg.Store.FilePath == "" {
			return fmt.Errorf("feedback file path is required")
		}
	default:
		return fmt.Errorf("unknown store backend %q (want postgres, badger or file)", cfg.Store.Backend)
	}

	if cfg.OpenAI.APIKey == "" {
		log.Warn("OPENAI_API_KEY is not set; chat endpoints are disabled")
	}
	if cfg.Auth.JWTSecret != "" && len(cfg.Auth.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT secret must be at least %d characters long", minJWTSecretLength)
	}

	return nil
}

// containsWildcard checks whether the allowed origins contain "*".
func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
