package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/fulfillment"
	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/middleware"
)

// ErrInvalidMessage marks deliveries that can never be processed.
var ErrInvalidMessage = errors.New("invalid message")

// HandlerFunc processes one delivery body. Returning an error NACKs the
// message without requeue.
type HandlerFunc func(ctx context.Context, body []byte) error

type Processor interface {
	Process(ctx context.Context, text string) fulfillment.Result
}

type ReplyPublisher interface {
	PublishReplied(ctx context.Context, meta EventMeta, payload ProcurementReplied) error
}

// ProcurementRequestedHandler runs the message text through proc and
// publishes the reply.
func ProcurementRequestedHandler(proc Processor, pub ReplyPublisher, logger *zap.Logger) HandlerFunc {
	return func(ctx context.Context, body []byte) error {
		msg, env, err := parseProcurementRequested(body)
		if err != nil {
			return err
		}

		meta := EventMeta{PartitionKey: msg.RequestID}
		if env != nil {
			meta.CorrelationID = env.CorrelationID
			meta.CausationID = env.EventID
		}
		if meta.CorrelationID == "" {
			meta.CorrelationID = uuid.NewString()
		}
		ctx = middleware.WithCorrelationID(ctx, meta.CorrelationID)

		res := proc.Process(ctx, msg.Text)
		logger.Info("procurement request processed",
			zap.String("request_id", msg.RequestID),
			zap.String("correlation_id", meta.CorrelationID),
			zap.String("outcome", string(res.Decision.Outcome)),
		)

		return pub.PublishReplied(ctx, meta, ProcurementReplied{
			RequestID: msg.RequestID,
			ReplyTo:   msg.ReplyTo,
			Reply:     res.Reply,
			Outcome:   string(res.Decision.Outcome),
			Timestamp: now(),
		})
	}
}

func parseProcurementRequested(body []byte) (ProcurementRequested, *EventEnvelope, error) {
	var env EventEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ProcurementRequested{}, nil, fmt.Errorf("%w: unmarshal: %v", ErrInvalidMessage, err)
	}

	raw := body
	var envelope *EventEnvelope
	if env.EventName != "" {
		if err := env.Validate(EventTypeProcurementRequested, 1); err != nil {
			return ProcurementRequested{}, nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
		}
		raw = env.Payload
		envelope = &env
	}

	var msg ProcurementRequested
	if err := json.Unmarshal(raw, &msg); err != nil {
		return ProcurementRequested{}, nil, fmt.Errorf("%w: unmarshal payload: %v", ErrInvalidMessage, err)
	}
	if strings.TrimSpace(msg.RequestID) == "" {
		return ProcurementRequested{}, nil, fmt.Errorf("%w: missing requestId", ErrInvalidMessage)
	}
	if strings.TrimSpace(msg.Text) == "" {
		return ProcurementRequested{}, nil, fmt.Errorf("%w: missing text", ErrInvalidMessage)
	}
	return msg, envelope, nil
}

type Consumer struct {
	ch      Channel
	queue   string
	tag     string
	handler HandlerFunc
	logger  *zap.Logger
}

// NewProcurementRequestedConsumer declares the service queue and binds it to
// procurement.requested.v1 on the events exchange.
func NewProcurementRequestedConsumer(ch Channel, handler HandlerFunc, logger *zap.Logger) (*Consumer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := declareEventsExchange(ch); err != nil {
		return nil, fmt.Errorf("declare events exchange: %w", err)
	}

	queue := procurementQueueName(ProcurementRequestedRoutingKey)
	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		return nil, fmt.Errorf("queue declare: %w", err)
	}
	if err := ch.QueueBind(queue, ProcurementRequestedRoutingKey, EventsExchange, false, nil); err != nil {
		return nil, fmt.Errorf("queue bind: %w", err)
	}

	return &Consumer{
		ch:      ch,
		queue:   queue,
		tag:     procurementServiceName,
		handler: handler,
		logger:  logger.With(zap.String("queue", queue)),
	}, nil
}

// Run consumes until ctx is cancelled or the delivery channel closes.
func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.ch.Consume(
		c.queue,
		c.tag, // consumer tag
		false, // autoAck
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}
	c.logger.Info("consumer started")
	return c.serve(ctx, msgs)
}

func (c *Consumer) serve(ctx context.Context, msgs <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("stopping consumer")
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}

			if err := c.handler(ctx, msg.Body); err != nil {
				// Reservations are not idempotent, so failed messages are
				// dropped rather than redelivered.
				c.logger.Warn("handle message", zap.Error(err), zap.Bool("invalid", errors.Is(err, ErrInvalidMessage)))
				_ = msg.Nack(false, false)
				continue
			}
			_ = msg.Ack(false)
		}
	}
}

func (c *Consumer) Close() error {
	return c.ch.Close()
}
