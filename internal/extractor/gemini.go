package extractor

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.5-flash"

type geminiCompleter struct {
	client *genai.Client
	model  string
}

func (c geminiCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0),
		ResponseMIMEType:  "application/json",
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// NewGemini returns an extractor backed by the Gemini API.
func NewGemini(ctx context.Context, cfg GeminiConfig, opts ...RemoteOption) *Remote {
	r := newRemote(ProviderGemini, nil, opts...)
	if strings.TrimSpace(cfg.APIKey) == "" {
		r.logger.Warn("gemini api key not set; every request will be reported as not understood")
		return r
	}

	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		r.logger.Error("create gemini client", zap.Error(err))
		return r
	}
	r.llm = geminiCompleter{client: client, model: model}
	return r
}
