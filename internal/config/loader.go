package config

import (
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// envKeys maps the deployment's environment variable names to config keys.
var envKeys = map[string]string{
	"HTTP_ADDR":                    "http.addr",
	"PORT":                         "http.port",
	"SHUTDOWN_TIMEOUT":             "http.shutdown_timeout",
	"LLM_PROVIDER":                 "llm.provider",
	"LLM_TIMEOUT":                  "llm.timeout",
	"REPLY_LOCALE":                 "llm.locale",
	"OPENAI_API_KEY":               "openai.api_key",
	"OPENAI_MODEL":                 "openai.model",
	"OPENAI_BASE_URL":              "openai.base_url",
	"HUGGINGFACE_API_KEY":          "huggingface.api_key",
	"HUGGINGFACE_MODEL":            "huggingface.model",
	"GEMINI_API_KEY":               "gemini.api_key",
	"GEMINI_MODEL":                 "gemini.model",
	"TELEGRAM_BOT_TOKEN":           "telegram.bot_token",
	"WHATSAPP_TOKEN":               "whatsapp.token",
	"WHATSAPP_PHONE_ID":            "whatsapp.phone_id",
	"WHATSAPP_VERIFY_TOKEN":        "whatsapp.verify_token",
	"CATALOG_SOURCE":               "catalog.source",
	"CATALOG_PATH":                 "catalog.path",
	"CATALOG_ACCEPTANCE_THRESHOLD": "catalog.acceptance_threshold",
	"DATABASE_DSN":                 "database.dsn",
	"RUN_MIGRATIONS":               "database.run_migrations",
	"RABBITMQ_URL":                 "rabbitmq.url",
	"LOG_LEVEL":                    "log.level",
	"LOG_FORMAT":                   "log.format",
	"TRACING_STDOUT":               "tracing.stdout",
}

// Load reads configuration with this precedence, highest first:
//  1. environment variables (see envKeys)
//  2. the YAML file at path, when path is not empty
//  3. defaults
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// unknown variables map to "" and are skipped
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return envKeys[s]
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}
