package extractor

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/reply"
	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/request"
)

// completer is one round trip to a remote model.
type completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Remote is an Extractor backed by a language model. A Remote without a
// completer was configured without credentials and never calls out.
type Remote struct {
	name    string
	llm     completer
	wording reply.Wording
	timeout time.Duration
	logger  *zap.Logger
}

type RemoteOption func(*Remote)

func WithWording(w reply.Wording) RemoteOption {
	return func(r *Remote) { r.wording = w }
}

// WithTimeout bounds each remote call.
func WithTimeout(d time.Duration) RemoteOption {
	return func(r *Remote) { r.timeout = d }
}

func WithLogger(l *zap.Logger) RemoteOption {
	return func(r *Remote) { r.logger = l }
}

func newRemote(name string, llm completer, opts ...RemoteOption) *Remote {
	r := &Remote{
		name:    name,
		llm:     llm,
		wording: reply.Spanish,
		timeout: DefaultTimeout,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With(zap.String("provider", name))
	return r
}

func (r *Remote) Name() string { return r.name }

// Configured reports whether the extractor has what it needs to call out.
func (r *Remote) Configured() bool { return r.llm != nil }

func (r *Remote) Parse(ctx context.Context, text string) (*request.Request, error) {
	if r.llm == nil {
		return nil, fmt.Errorf("%s: %w", r.name, ErrMissingCredential)
	}

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	out, err := r.llm.Complete(callCtx, systemPrompt, userPrompt(text))
	if err != nil {
		r.logger.Warn("remote extraction call failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %s call: %v", ErrExtraction, r.name, err)
	}

	req, err := DecodeRequest(out)
	if err != nil {
		r.logger.Warn("remote extraction returned unusable output", zap.Error(err), zap.Int("raw_len", len(out)))
		r.logger.Debug("unusable remote output", zap.String("raw", snippet(out, rawLogLimit)))
		return nil, err
	}
	return req, nil
}

// rawLogLimit bounds how much model output reaches debug logs.
const rawLogLimit = 200

func snippet(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "…"
}

func (r *Remote) Render(d reply.Decision) string {
	return reply.Render(r.wording, d)
}
