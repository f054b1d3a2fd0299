// Package fulfillment runs one message through the pipeline: extract a
// request, resolve it against the catalog, reserve stock and phrase a reply.
package fulfillment

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/extractor"
	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/inventory"
	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/reply"
)

const instrumentationName = "procurement-service-go/fulfillment"

// ReservationNotifier is told about every reservation attempt.
type ReservationNotifier interface {
	NotifyReservation(ctx context.Context, item inventory.Item, quantity int, res inventory.Reservation) error
}

// Result is the outcome of one message.
type Result struct {
	Reply    string
	Decision reply.Decision
}

type Orchestrator struct {
	extractor extractor.Extractor
	catalog   inventory.Resolver
	notifier  ReservationNotifier
	metrics   *Metrics
	fallback  reply.Wording
	logger    *zap.Logger
	tracer    trace.Tracer
}

type Option func(*Orchestrator)

func WithNotifier(n ReservationNotifier) Option {
	return func(o *Orchestrator) { o.notifier = n }
}

func WithMetrics(m *Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *Orchestrator) { o.tracer = tp.Tracer(instrumentationName) }
}

// WithFallbackWording sets the wording used when the extractor does not
// render its own replies.
func WithFallbackWording(w reply.Wording) Option {
	return func(o *Orchestrator) { o.fallback = w }
}

func New(ex extractor.Extractor, catalog inventory.Resolver, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		extractor: ex,
		catalog:   catalog,
		fallback:  reply.Brief,
		logger:    zap.NewNop(),
		tracer:    otel.Tracer(instrumentationName),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Handle returns the reply for text. It never fails.
func (o *Orchestrator) Handle(ctx context.Context, text string) string {
	return o.Process(ctx, text).Reply
}

func (o *Orchestrator) Process(ctx context.Context, text string) Result {
	ctx, span := o.tracer.Start(ctx, "fulfillment.process",
		trace.WithAttributes(attribute.String("extractor", o.extractor.Name())))
	defer span.End()

	d := o.decide(ctx, span, text)

	span.SetAttributes(attribute.String("outcome", string(d.Outcome)))
	if o.metrics != nil {
		o.metrics.Requests.WithLabelValues(string(d.Outcome)).Inc()
	}
	o.logger.Info("message processed",
		zap.String("extractor", o.extractor.Name()),
		zap.String("outcome", string(d.Outcome)),
	)

	return Result{Reply: o.render(d), Decision: d}
}

func (o *Orchestrator) decide(ctx context.Context, span trace.Span, text string) reply.Decision {
	start := time.Now()
	req, err := o.extractor.Parse(ctx, text)
	if o.metrics != nil {
		o.metrics.ExtractionDuration.WithLabelValues(o.extractor.Name()).Observe(time.Since(start).Seconds())
	}
	if err != nil || req == nil {
		if err != nil {
			span.RecordError(err)
			o.logger.Warn("extraction failed", zap.String("extractor", o.extractor.Name()), zap.Error(err))
		}
		return reply.Decision{Outcome: reply.OutcomeNotUnderstood}
	}

	d := reply.Decision{Request: req}
	if req.NeedsClarification() {
		d.Outcome = reply.OutcomeNeedsClarification
		return d
	}
	if !req.HasMaterial() {
		d.Outcome = reply.OutcomeNotUnderstood
		return d
	}

	match := o.catalog.Lookup(*req.Material)
	if match == nil {
		d.Outcome = reply.OutcomeNotFound
		return d
	}
	d.Match = match
	span.SetAttributes(
		attribute.String("item.id", match.Item.ID),
		attribute.Float64("match.score", match.Score),
	)

	if !req.HasQuantity() {
		d.Outcome = reply.OutcomeNeedsQuantity
		return d
	}

	qty := *req.Quantity
	res, err := o.catalog.Reserve(match.Item.ID, qty)
	if err != nil {
		// Lookup only returns known items and quantities are validated
		// upstream, so this is a broken Resolver.
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		o.logger.Error("reserve failed", zap.String("item_id", match.Item.ID), zap.Int("quantity", qty), zap.Error(err))
		return reply.Decision{Outcome: reply.OutcomeNotUnderstood, Request: req}
	}
	d.Reservation = &res
	if res.Succeeded {
		d.Outcome = reply.OutcomeReserved
		if o.metrics != nil {
			o.metrics.ReservedUnits.Add(float64(qty))
		}
	} else {
		d.Outcome = reply.OutcomeInsufficientStock
	}

	o.notify(ctx, match.Item, qty, res)
	return d
}

func (o *Orchestrator) notify(ctx context.Context, item inventory.Item, qty int, res inventory.Reservation) {
	if o.notifier == nil {
		return
	}
	if err := o.notifier.NotifyReservation(ctx, item, qty, res); err != nil {
		o.logger.Warn("reservation notification failed", zap.String("item_id", item.ID), zap.Error(err))
	}
}

func (o *Orchestrator) render(d reply.Decision) string {
	if r, ok := o.extractor.(extractor.Renderer); ok {
		return r.Render(d)
	}
	return reply.Render(o.fallback, d)
}
