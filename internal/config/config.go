package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Global singleton for components that cannot take injected config
var globalConfig *Config

// Config holds all environment backed configuration for board-api.
type Config struct {
	// HTTP Server
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8080"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"9091"`
	DatabaseURL string `env:"DATABASE_URL,notEmpty"`

	// Auth
	JWKSURL             string        `env:"JWKS_URL"`
	OIDCDiscoveryURL    string        `env:"OIDC_DISCOVERY_URL"`
	Issuer              string        `env:"ISSUER,notEmpty"`
	Audience            string        `env:"AUDIENCE,notEmpty"`
	RefreshJWKSInterval time.Duration `env:"JWKS_REFRESH_INTERVAL" envDefault:"5m"`
	AuthClockSkew       time.Duration `env:"AUTH_CLOCK_SKEW" envDefault:"30s"`

	// PostgreSQL
	DBPostgresqlWriteDSN string `env:"DB_POSTGRESQL_WRITE_DSN"`
	DBPostgresqlRead1DSN string `env:"DB_POSTGRESQL_READ1_DSN"`

	// Inference providers
	TextProvider       string `env:"TEXT_PROVIDER" envDefault:"openai"`
	ImageProvider      string `env:"IMAGE_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey       string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL      string `env:"OPENAI_BASE_URL"`
	GeminiAPIKey       string `env:"GEMINI_API_KEY"`
	GeminiBaseURL      string `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`
	ReplicateAPIToken  string `env:"REPLICATE_API_TOKEN"`
	ReplicateBaseURL   string `env:"REPLICATE_BASE_URL" envDefault:"https://api.replicate.com"`
	TextModel          string `env:"TEXT_MODEL"`
	ImageModel         string `env:"IMAGE_MODEL"`
	ProviderConfigFile string `env:"PROVIDER_CONFIGS_FILE"`
	ProviderConfigSet  string `env:"PROVIDER_CONFIG_SET" envDefault:"default"`
	ProviderBootstrap  *ProviderBootstrapConfig `env:"-"`

	// Generation
	ImageWorkerCount       int           `env:"IMAGE_WORKER_COUNT" envDefault:"4"`
	ImageGenerationTimeout time.Duration `env:"IMAGE_GENERATION_TIMEOUT" envDefault:"120s"`
	ConceptCacheTTL        time.Duration `env:"CONCEPT_CACHE_TTL" envDefault:"10m"`
	ConceptCacheSecret     string        `env:"CONCEPT_CACHE_SECRET" envDefault:"visioneer-concept-cache"`
	EditSessionTTL         time.Duration `env:"EDIT_SESSION_TTL" envDefault:"1h"`

	// Rate limiting
	GenerateRateLimit       int           `env:"GENERATE_RATE_LIMIT" envDefault:"10"`
	GenerateRateWindow      time.Duration `env:"GENERATE_RATE_WINDOW" envDefault:"1m"`
	APIRateLimit            int           `env:"API_RATE_LIMIT" envDefault:"120"`
	APIRateWindow           time.Duration `env:"API_RATE_WINDOW" envDefault:"1m"`
	UsageRetentionDays      int           `env:"USAGE_RETENTION_DAYS" envDefault:"30"`

	// Observability / Logging
	HTTPTimeout      time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	OTLPEndpoint     string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPHeaders      string        `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	ServiceName      string        `env:"SERVICE_NAME" envDefault:"board-api"`
	ServiceNamespace string        `env:"SERVICE_NAMESPACE" envDefault:"visioneer"`
	Environment      string        `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string        `env:"LOG_FORMAT" envDefault:"console"`

	// Features
	AutoMigrate   bool `env:"AUTO_MIGRATE" envDefault:"true"`
	EnableSwagger bool `env:"ENABLE_SWAGGER" envDefault:"true"`

	// Internal
	EnvReloadedAt time.Time
}

// Load parses environment variables into Config and performs minimal validation.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.ProviderConfigSet = strings.TrimSpace(cfg.ProviderConfigSet)
	if cfg.ProviderConfigSet == "" {
		cfg.ProviderConfigSet = "default"
	}

	if configFile := strings.TrimSpace(cfg.ProviderConfigFile); configFile != "" {
		bootstrap, err := LoadProviderBootstrapConfig(configFile)
		if err != nil {
			return nil, fmt.Errorf("load provider configs: %w", err)
		}
		cfg.ProviderBootstrap = bootstrap
		if len(bootstrap.ProvidersForSet(cfg.ProviderConfigSet)) == 0 {
			return nil, fmt.Errorf("provider config set %q is missing or empty in %s", cfg.ProviderConfigSet, configFile)
		}
		cfg.applyProviderBootstrap()
	}

	if cfg.JWKSURL == "" && cfg.OIDCDiscoveryURL == "" {
		return nil, errors.New("either JWKS_URL or OIDC_DISCOVERY_URL must be provided")
	}

	if cfg.JWKSURL != "" {
		if _, err := url.ParseRequestURI(cfg.JWKSURL); err != nil {
			return nil, fmt.Errorf("invalid JWKS_URL: %w", err)
		}
	}

	if cfg.OIDCDiscoveryURL != "" {
		if _, err := url.ParseRequestURI(cfg.OIDCDiscoveryURL); err != nil {
			return nil, fmt.Errorf("invalid OIDC_DISCOVERY_URL: %w", err)
		}
	}

	if cfg.ImageWorkerCount < 1 {
		return nil, fmt.Errorf("IMAGE_WORKER_COUNT must be at least 1, got %d", cfg.ImageWorkerCount)
	}

	switch cfg.TextProvider {
	case "openai", "gemini":
	default:
		return nil, fmt.Errorf("unsupported TEXT_PROVIDER %q", cfg.TextProvider)
	}

	switch cfg.ImageProvider {
	case "openai", "gemini", "replicate":
	default:
		return nil, fmt.Errorf("unsupported IMAGE_PROVIDER %q", cfg.ImageProvider)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.EnvReloadedAt = time.Now()

	globalConfig = cfg

	return cfg, nil
}

// ResolveJWKSURL returns the JWKS endpoint using either the explicit JWKS_URL or the OIDC discovery document.
func (c *Config) ResolveJWKSURL(ctx context.Context) (string, error) {
	if c.JWKSURL != "" {
		return c.JWKSURL, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.OIDCDiscoveryURL, nil)
	if err != nil {
		return "", fmt.Errorf("oidc discovery request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch oidc discovery: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("oidc discovery unexpected status: %s", resp.Status)
	}

	var doc struct {
		JWKSURL string `json:"jwks_uri"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return "", fmt.Errorf("decode oidc discovery: %w", err)
	}

	if doc.JWKSURL == "" {
		return "", errors.New("jwks_uri not found in discovery document")
	}

	return doc.JWKSURL, nil
}

// GetGlobal returns the global config instance.
// Deprecated: Use dependency injection with Load() instead.
func GetGlobal() *Config {
	return globalConfig
}

// GetEnvReloadedAt returns when the environment was last reloaded
func GetEnvReloadedAt() time.Time {
	if globalConfig != nil {
		return globalConfig.EnvReloadedAt
	}
	return time.Time{}
}

// applyProviderBootstrap fills provider credentials from the bootstrap
// file for any field the environment left empty. Explicit environment
// credentials always win; base URLs from the file replace the shipped
// defaults.
func (c *Config) applyProviderBootstrap() {
	for _, entry := range c.ProviderBootstrapEntries() {
		if !entry.Active {
			continue
		}
		switch strings.ToLower(entry.Vendor) {
		case "openai":
			if c.OpenAIAPIKey == "" {
				c.OpenAIAPIKey = entry.APIKey
			}
			if c.OpenAIBaseURL == "" {
				c.OpenAIBaseURL = entry.BaseURL
			}
		case "gemini":
			if c.GeminiAPIKey == "" {
				c.GeminiAPIKey = entry.APIKey
			}
			if entry.BaseURL != "" {
				c.GeminiBaseURL = entry.BaseURL
			}
		case "replicate":
			if c.ReplicateAPIToken == "" {
				c.ReplicateAPIToken = entry.APIKey
			}
			if entry.BaseURL != "" {
				c.ReplicateBaseURL = entry.BaseURL
			}
		}
	}
}

// ProviderBootstrapEntries returns the configured provider definitions for the active set.
func (c *Config) ProviderBootstrapEntries() []ProviderBootstrapEntry {
	if c == nil || c.ProviderBootstrap == nil {
		return nil
	}
	return c.ProviderBootstrap.ProvidersForSet(c.ProviderConfigSet)
}

// GetDatabaseWriteDSN returns the primary DSN, falling back to DATABASE_URL.
func (c *Config) GetDatabaseWriteDSN() string {
	if c.DBPostgresqlWriteDSN != "" {
		return c.DBPostgresqlWriteDSN
	}
	return c.DatabaseURL
}

// GetDatabaseReadDSNs returns the configured read replica DSNs, if any.
func (c *Config) GetDatabaseReadDSNs() []string {
	if c.DBPostgresqlRead1DSN != "" {
		return []string{c.DBPostgresqlRead1DSN}
	}
	return nil
}

var Version = "dev"

func IsDev() bool {
	return strings.HasPrefix(Version, "dev")
}
