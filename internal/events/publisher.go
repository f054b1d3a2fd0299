package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/inventory"
	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/middleware"
)

var (
	newEventID = uuid.NewString
	now        = func() time.Time { return time.Now().UTC() }
)

const publishTimeout = 3 * time.Second

type Publisher struct {
	ch       Channel
	producer string
	logger   *zap.Logger
}

type PublisherOptions struct {
	Producer string
	Logger   *zap.Logger
}

// NewPublisher declares the events exchange on ch and takes ownership of it.
func NewPublisher(ch Channel, opts PublisherOptions) (*Publisher, error) {
	if err := declareEventsExchange(ch); err != nil {
		return nil, fmt.Errorf("declare events exchange: %w", err)
	}

	producer := opts.Producer
	if producer == "" {
		producer = procurementServiceName
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Publisher{ch: ch, producer: producer, logger: logger}, nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

// NotifyReservation publishes StockReserved for a successful reservation and
// StockDepleted for one that found too little stock.
func (p *Publisher) NotifyReservation(ctx context.Context, item inventory.Item, quantity int, res inventory.Reservation) error {
	meta := EventMeta{
		CorrelationID: middleware.GetCorrelationID(ctx),
		PartitionKey:  item.ID,
	}
	if res.Succeeded {
		return p.PublishStockReserved(ctx, meta, StockReservedPayload{
			ItemID:    item.ID,
			Name:      item.Name,
			Quantity:  quantity,
			Remaining: res.Remaining,
			Location:  item.Location,
			Timestamp: now(),
		})
	}
	return p.PublishStockDepleted(ctx, meta, StockDepletedPayload{
		ItemID:    item.ID,
		Name:      item.Name,
		Requested: quantity,
		Available: res.Remaining,
		Location:  item.Location,
		Timestamp: now(),
	})
}

func (p *Publisher) PublishStockReserved(ctx context.Context, meta EventMeta, payload StockReservedPayload) error {
	return p.publishEvent(ctx, StockReservedRoutingKey, EventTypeStockReserved, stockReservedSchema, meta, payload)
}

func (p *Publisher) PublishStockDepleted(ctx context.Context, meta EventMeta, payload StockDepletedPayload) error {
	return p.publishEvent(ctx, StockDepletedRoutingKey, EventTypeStockDepleted, stockDepletedSchema, meta, payload)
}

func (p *Publisher) PublishReplied(ctx context.Context, meta EventMeta, payload ProcurementReplied) error {
	return p.publishEvent(ctx, ProcurementRepliedRoutingKey, EventTypeProcurementReplied, procurementRepliedSchema, meta, payload)
}

func (p *Publisher) publishEvent(ctx context.Context, routingKey, name, schema string, meta EventMeta, payload any) error {
	env, err := newEnvelope(name, schema, p.producer, meta, payload, now())
	if err != nil {
		return err
	}
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal %s envelope: %w", name, err)
	}

	if err := p.publishJSON(ctx, routingKey, body); err != nil {
		return fmt.Errorf("publish %s: %w", name, err)
	}
	p.logger.Debug("event published",
		zap.String("event", name),
		zap.String("event_id", env.EventID),
		zap.String("partition_key", env.PartitionKey),
	)
	return nil
}

func (p *Publisher) publishJSON(ctx context.Context, routingKey string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}
