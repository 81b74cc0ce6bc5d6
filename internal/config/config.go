package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/parcauto/fleet-dashboard/internal/secrets"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Backend   BackendConfig
	Session   SessionConfig
	Prefs     PrefsConfig
	Storage   StorageConfig
	Secrets   SecretsConfig
	Logging   LoggingConfig
	Server    ServerConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Jobs      JobsConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
}

// BackendConfig points at the remote fleet maintenance API.
// Every /api path the browser calls is resolved against BaseURL.
type BackendConfig struct {
	// BaseURL is the root of the fleet backend API, e.g. https://fleet.example.com/api
	BaseURL string
	// APIKey optionally identifies the gateway for system calls (from secrets)
	APIKey string
	// RequestTimeout is the per-request timeout in seconds
	RequestTimeout int
	// HealthPath is probed by /health/backend
	HealthPath string
}

// SessionConfig controls the browser session cookie
type SessionConfig struct {
	// CookieName is the session cookie name
	CookieName string
	// TTLDays is the cookie and token lifetime in days
	TTLDays int
	// SigningKey signs the session JWT (from secrets in staging/production)
	SigningKey string
	// CookieSecure marks the cookie Secure (HTTPS only)
	CookieSecure bool
}

// PrefsConfig locates the local UI-preferences database
type PrefsConfig struct {
	// Path is the SQLite file path; ":memory:" is allowed for tests
	Path string
}

// StorageConfig configures the optional export archive
type StorageConfig struct {
	// ArchiveEnabled tees generated report files into the archive
	ArchiveEnabled bool
	Mode           string
	LocalBasePath  string
	// CloudConnectionString comes from secrets when Mode is azure
	CloudConnectionString string
	CloudContainer        string
}

type SecretsConfig struct {
	// Source determines where secrets are loaded from: "environment", "vault", or "auto"
	Source       string
	KeyVaultName string
	CacheEnabled bool
	CacheTTL     int // seconds
}

type LoggingConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	ReadTimeout    int
	WriteTimeout   int
	RequestTimeout int
	EnableSwagger  bool
}

// CORSConfig holds CORS configuration for the browser frontend
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled               bool
	RequestsPerMinute     int
	RequestsPerMinuteAuth int
	WhitelistIPs          []string
	WhitelistPaths        []string
}

// JobsConfig controls the background cron jobs
type JobsConfig struct {
	Enabled bool
	// DashboardRefreshCron keeps the dashboard cache warm
	DashboardRefreshCron string
	// LowStockPollCron polls spare-part stock levels
	LowStockPollCron string
	// ServiceToken authenticates job-initiated backend calls (from secrets)
	ServiceToken string
}

// RequestTimeoutDuration returns the backend request timeout as a duration
func (b *BackendConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(b.RequestTimeout) * time.Second
}

// TTL returns the session lifetime as a duration
func (s *SessionConfig) TTL() time.Duration {
	return time.Duration(s.TTLDays) * 24 * time.Hour
}

// ReadTimeoutDuration returns read timeout as duration
func (s *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns write timeout as duration
func (s *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// RequestTimeoutDuration returns request timeout as duration
func (s *ServerConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(s.RequestTimeout) * time.Second
}

// Load loads configuration from file and environment variables.
// This is a basic load that doesn't fetch secrets from vault;
// use LoadWithSecrets for full secret resolution.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override config file
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Backend base URL may come straight from the environment
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = v.GetString("FLEET_API_URL")
	}
	if cfg.Backend.APIKey == "" {
		cfg.Backend.APIKey = v.GetString("FLEET_API_KEY")
	}
	if cfg.Session.SigningKey == "" {
		cfg.Session.SigningKey = v.GetString("SESSION_SIGNING_KEY")
	}
	if cfg.Jobs.ServiceToken == "" {
		cfg.Jobs.ServiceToken = v.GetString("JOBS_SERVICE_TOKEN")
	}
	if cfg.Secrets.KeyVaultName == "" {
		cfg.Secrets.KeyVaultName = v.GetString("AZURE_KEY_VAULT_NAME")
	}

	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("backend base URL is required (backend.baseURL or FLEET_API_URL)")
	}

	return &cfg, nil
}

// LoadWithSecrets loads configuration and resolves secrets from the configured
// source. In development secrets come from env vars; in staging/production
// (with USE_AZURE_KEY_VAULT=true) they come from Azure Key Vault.
func LoadWithSecrets(ctx context.Context, logger *zap.Logger) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	useKeyVault := strings.ToLower(os.Getenv("USE_AZURE_KEY_VAULT")) == "true"
	isValidEnv := cfg.App.Environment == "staging" || cfg.App.Environment == "production"

	if !useKeyVault {
		logger.Info("USE_AZURE_KEY_VAULT not enabled, using environment variables for secrets",
			zap.String("environment", cfg.App.Environment),
		)
		return cfg, nil
	}

	if !isValidEnv {
		logger.Warn("USE_AZURE_KEY_VAULT is enabled but environment is not staging or production, using environment variables",
			zap.String("environment", cfg.App.Environment),
		)
		return cfg, nil
	}

	if cfg.Secrets.KeyVaultName == "" {
		return nil, fmt.Errorf("AZURE_KEY_VAULT_NAME is required when USE_AZURE_KEY_VAULT=true")
	}

	logger.Info("Azure Key Vault enabled for secrets",
		zap.String("environment", cfg.App.Environment),
		zap.String("key_vault_name", cfg.Secrets.KeyVaultName),
	)

	provider, err := secrets.NewProvider(&secrets.ProviderConfig{
		Source:       secrets.SourceVault,
		VaultName:    cfg.Secrets.KeyVaultName,
		Environment:  cfg.App.Environment,
		CacheEnabled: cfg.Secrets.CacheEnabled,
		CacheTTL:     time.Duration(cfg.Secrets.CacheTTL) * time.Second,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize secrets provider: %w", err)
	}

	if key, err := provider.GetSecretOrEnv(ctx, "SESSION-SIGNING-KEY", "SESSION_SIGNING_KEY"); err == nil && key != "" {
		cfg.Session.SigningKey = key
	}
	if apiKey, err := provider.GetSecretOrEnv(ctx, "FLEET-API-KEY", "FLEET_API_KEY"); err == nil && apiKey != "" {
		cfg.Backend.APIKey = apiKey
	}
	if token, err := provider.GetSecretOrEnv(ctx, "JOBS-SERVICE-TOKEN", "JOBS_SERVICE_TOKEN"); err == nil && token != "" {
		cfg.Jobs.ServiceToken = token
	}
	if connStr, err := provider.GetSecretOrEnv(ctx, "storage-connection-string", "STORAGE_CLOUDCONNECTIONSTRING"); err == nil && connStr != "" {
		cfg.Storage.CloudConnectionString = connStr
	}

	logger.Info("Secrets loaded from vault successfully")
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "Fleet Dashboard Gateway")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 8080)

	// Backend defaults
	v.SetDefault("backend.requestTimeout", 30)
	v.SetDefault("backend.healthPath", "/health")

	// Session defaults (7-day cookie, matching the frontend contract)
	v.SetDefault("session.cookieName", "token")
	v.SetDefault("session.ttlDays", 7)
	v.SetDefault("session.cookieSecure", false)

	// Preferences store defaults
	v.SetDefault("prefs.path", "./data/prefs.db")

	// Storage defaults (export archive disabled by default)
	v.SetDefault("storage.archiveEnabled", false)
	v.SetDefault("storage.mode", "local")
	v.SetDefault("storage.localBasePath", "./storage/exports")

	// Secrets defaults
	v.SetDefault("secrets.source", "auto")
	v.SetDefault("secrets.cacheEnabled", true)
	v.SetDefault("secrets.cacheTTL", 300) // 5 minutes

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Server defaults
	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 60)
	v.SetDefault("server.requestTimeout", 60)
	v.SetDefault("server.enableSwagger", true)

	// CORS defaults - restrictive by default
	v.SetDefault("cors.allowedOrigins", []string{})
	v.SetDefault("cors.allowedMethods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowedHeaders", []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"})
	v.SetDefault("cors.exposedHeaders", []string{"Content-Disposition", "X-Request-ID"})
	v.SetDefault("cors.allowCredentials", true)
	v.SetDefault("cors.maxAge", 300)

	// Rate limiting defaults
	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requestsPerMinute", 60)
	v.SetDefault("rateLimit.requestsPerMinuteAuth", 120)
	v.SetDefault("rateLimit.whitelistIPs", []string{"127.0.0.1", "::1"})
	v.SetDefault("rateLimit.whitelistPaths", []string{"/health", "/health/backend"})

	// Background jobs defaults
	v.SetDefault("jobs.enabled", false)
	v.SetDefault("jobs.dashboardRefreshCron", "@every 10m")
	v.SetDefault("jobs.lowStockPollCron", "@every 30m")
}
