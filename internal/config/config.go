// Package config loads service configuration from an optional YAML file
// and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/channels"
	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/extractor"
	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/inventory"
	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/reply"
)

const (
	CatalogSourceSeed     = "seed"
	CatalogSourceFile     = "file"
	CatalogSourcePostgres = "postgres"
)

type Config struct {
	HTTP        HTTPConfig        `koanf:"http"`
	LLM         LLMConfig         `koanf:"llm"`
	OpenAI      OpenAIConfig      `koanf:"openai"`
	HuggingFace HuggingFaceConfig `koanf:"huggingface"`
	Gemini      GeminiConfig      `koanf:"gemini"`
	Telegram    TelegramConfig    `koanf:"telegram"`
	WhatsApp    WhatsAppConfig    `koanf:"whatsapp"`
	Catalog     CatalogConfig     `koanf:"catalog"`
	Database    DatabaseConfig    `koanf:"database"`
	RabbitMQ    RabbitMQConfig    `koanf:"rabbitmq"`
	Log         LogConfig         `koanf:"log"`
	Tracing     TracingConfig     `koanf:"tracing"`
}

type HTTPConfig struct {
	Addr string `koanf:"addr"`
	// Port is the bare port from PORT; Addr wins when both are set.
	Port            string        `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// ListenAddr returns the address the HTTP server binds to.
func (h HTTPConfig) ListenAddr() string {
	if h.Addr != "" {
		return h.Addr
	}
	if h.Port != "" {
		return ":" + h.Port
	}
	return defaultHTTPAddr
}

type LLMConfig struct {
	Provider string        `koanf:"provider"`
	Timeout  time.Duration `koanf:"timeout"`
	Locale   string        `koanf:"locale"`
}

type OpenAIConfig struct {
	APIKey  Secret `koanf:"api_key"`
	Model   string `koanf:"model"`
	BaseURL string `koanf:"base_url"`
}

type HuggingFaceConfig struct {
	APIKey Secret `koanf:"api_key"`
	Model  string `koanf:"model"`
}

type GeminiConfig struct {
	APIKey Secret `koanf:"api_key"`
	Model  string `koanf:"model"`
}

type TelegramConfig struct {
	BotToken Secret `koanf:"bot_token"`
	BaseURL  string `koanf:"base_url"`
}

type WhatsAppConfig struct {
	Token       Secret `koanf:"token"`
	PhoneID     string `koanf:"phone_id"`
	VerifyToken Secret `koanf:"verify_token"`
	BaseURL     string `koanf:"base_url"`
}

type CatalogConfig struct {
	Source              string  `koanf:"source"`
	Path                string  `koanf:"path"`
	AcceptanceThreshold float64 `koanf:"acceptance_threshold"`
}

type DatabaseConfig struct {
	DSN           Secret `koanf:"dsn"`
	RunMigrations bool   `koanf:"run_migrations"`
}

type RabbitMQConfig struct {
	URL Secret `koanf:"url"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type TracingConfig struct {
	Stdout bool `koanf:"stdout"`
}

const (
	defaultHTTPAddr        = ":8080"
	defaultShutdownTimeout = 10 * time.Second
)

func applyDefaults(cfg *Config) {
	if cfg.HTTP.ShutdownTimeout <= 0 {
		cfg.HTTP.ShutdownTimeout = defaultShutdownTimeout
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = extractor.ProviderRules
	}
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	if cfg.LLM.Timeout <= 0 {
		cfg.LLM.Timeout = extractor.DefaultTimeout
	}
	if cfg.LLM.Locale == "" {
		cfg.LLM.Locale = "es"
	}
	if cfg.Catalog.Source == "" {
		cfg.Catalog.Source = CatalogSourceSeed
	}
	cfg.Catalog.Source = strings.ToLower(strings.TrimSpace(cfg.Catalog.Source))
	if cfg.Catalog.AcceptanceThreshold == 0 {
		cfg.Catalog.AcceptanceThreshold = inventory.DefaultAcceptanceThreshold
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
}

// Validate reports every problem found, joined.
func (c *Config) Validate() error {
	var errs []error

	switch c.LLM.Provider {
	case extractor.ProviderRules, extractor.ProviderStub, extractor.ProviderOpenAI,
		extractor.ProviderHuggingFace, extractor.ProviderGemini:
	default:
		errs = append(errs, fmt.Errorf("llm.provider: unknown provider %q", c.LLM.Provider))
	}
	if _, err := reply.ForLocale(c.LLM.Locale); err != nil {
		errs = append(errs, fmt.Errorf("llm.locale: %w", err))
	}

	switch c.Catalog.Source {
	case CatalogSourceSeed:
	case CatalogSourceFile:
		if c.Catalog.Path == "" {
			errs = append(errs, errors.New("catalog.path: required when catalog.source is file"))
		}
	case CatalogSourcePostgres:
		if !c.Database.DSN.IsSet() {
			errs = append(errs, errors.New("database.dsn: required when catalog.source is postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("catalog.source: unknown source %q", c.Catalog.Source))
	}
	if t := c.Catalog.AcceptanceThreshold; t <= 0 || t > 1 {
		errs = append(errs, fmt.Errorf("catalog.acceptance_threshold: %v outside (0,1]", t))
	}

	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

func (c *Config) ExtractorConfig() extractor.Config {
	return extractor.Config{
		Provider: c.LLM.Provider,
		Locale:   c.LLM.Locale,
		Timeout:  c.LLM.Timeout,
		OpenAI: extractor.OpenAIConfig{
			APIKey:  c.OpenAI.APIKey.Value(),
			Model:   c.OpenAI.Model,
			BaseURL: c.OpenAI.BaseURL,
		},
		HuggingFace: extractor.HuggingFaceConfig{
			APIKey: c.HuggingFace.APIKey.Value(),
			Model:  c.HuggingFace.Model,
		},
		Gemini: extractor.GeminiConfig{
			APIKey: c.Gemini.APIKey.Value(),
			Model:  c.Gemini.Model,
		},
	}
}

func (c *Config) TelegramConfig() channels.TelegramConfig {
	return channels.TelegramConfig{Token: c.Telegram.BotToken.Value(), BaseURL: c.Telegram.BaseURL}
}

func (c *Config) WhatsAppConfig() channels.WhatsAppConfig {
	return channels.WhatsAppConfig{
		Token:   c.WhatsApp.Token.Value(),
		PhoneID: c.WhatsApp.PhoneID,
		BaseURL: c.WhatsApp.BaseURL,
	}
}
