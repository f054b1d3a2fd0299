package extractor

import (
	"context"
	"errors"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

const DefaultOpenAIModel = "gpt-4o"

type openAICompleter struct {
	llm *openai.LLM
}

func (c openAICompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := c.llm.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}, llms.WithTemperature(0))
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in completion")
	}
	return resp.Choices[0].Content, nil
}

// NewOpenAI returns an extractor backed by the OpenAI chat completions API.
func NewOpenAI(cfg OpenAIConfig, opts ...RemoteOption) *Remote {
	r := newRemote(ProviderOpenAI, nil, opts...)
	if strings.TrimSpace(cfg.APIKey) == "" {
		r.logger.Warn("openai api key not set; every request will be reported as not understood")
		return r
	}

	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}
	clientOpts := []openai.Option{openai.WithToken(cfg.APIKey), openai.WithModel(model)}
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts, openai.WithBaseURL(cfg.BaseURL))
	}

	llm, err := openai.New(clientOpts...)
	if err != nil {
		r.logger.Error("create openai client", zap.Error(err))
		return r
	}
	r.llm = openAICompleter{llm: llm}
	return r
}
