// Package extractor turns free-text procurement messages into structured
// requests. Implementations are interchangeable: a deterministic rule-based
// one and several backed by remote language models.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/reply"
	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/request"
)

var (
	// ErrExtraction means the text could not be turned into a request.
	ErrExtraction = errors.New("extraction failed")

	// ErrMissingCredential is returned by remote extractors that were
	// selected without the credentials or model they need.
	ErrMissingCredential = fmt.Errorf("%w: missing credential", ErrExtraction)
)

// Extractor parses one message. A nil request always comes with an error;
// callers treat both the same way: the text was not understood.
type Extractor interface {
	Name() string
	Parse(ctx context.Context, text string) (*request.Request, error)
}

// Renderer is implemented by extractors that phrase their own replies.
type Renderer interface {
	Render(d reply.Decision) string
}

const (
	ProviderRules       = "rules"
	ProviderStub        = "stub"
	ProviderOpenAI      = "openai"
	ProviderHuggingFace = "huggingface"
	ProviderGemini      = "gemini"
)

const DefaultTimeout = 20 * time.Second

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type HuggingFaceConfig struct {
	APIKey string
	Model  string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

// Config selects and configures one extractor.
type Config struct {
	Provider    string
	Locale      string
	Timeout     time.Duration
	OpenAI      OpenAIConfig
	HuggingFace HuggingFaceConfig
	Gemini      GeminiConfig
}

// New builds the extractor named by cfg.Provider. Remote extractors with
// missing credentials are still returned; their Parse fails with
// ErrMissingCredential instead of aborting startup.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (Extractor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	wording, err := reply.ForLocale(cfg.Locale)
	if err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	opts := []RemoteOption{WithWording(wording), WithTimeout(timeout), WithLogger(logger)}

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderRules, ProviderStub:
		return NewRules(WithRulesWording(wording)), nil
	case ProviderOpenAI:
		return NewOpenAI(cfg.OpenAI, opts...), nil
	case ProviderHuggingFace:
		return NewHuggingFace(cfg.HuggingFace, opts...), nil
	case ProviderGemini:
		return NewGemini(ctx, cfg.Gemini, opts...), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
