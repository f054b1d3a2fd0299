package extractor

import (
	"context"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/huggingface"
	"go.uber.org/zap"
)

type huggingFaceCompleter struct {
	llm *huggingface.LLM
}

// Complete folds the system prompt into the text: the inference API takes a single input.
func (c huggingFaceCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, c.llm, system+"\n"+prompt)
}

// NewHuggingFace returns an extractor backed by the Hugging Face inference API.
// Both the token and the model are required.
func NewHuggingFace(cfg HuggingFaceConfig, opts ...RemoteOption) *Remote {
	r := newRemote(ProviderHuggingFace, nil, opts...)
	if strings.TrimSpace(cfg.APIKey) == "" || strings.TrimSpace(cfg.Model) == "" {
		r.logger.Warn("huggingface api key or model not set; every request will be reported as not understood")
		return r
	}

	llm, err := huggingface.New(huggingface.WithToken(cfg.APIKey), huggingface.WithModel(cfg.Model))
	if err != nil {
		r.logger.Error("create huggingface client", zap.Error(err))
		return r
	}
	r.llm = huggingFaceCompleter{llm: llm}
	return r
}
