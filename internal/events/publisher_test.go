package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/inventory"
	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/middleware"
)

var cement = inventory.Item{ID: "SKU-003", Name: "cemento saco 25kg", Available: 30, Location: "almacén A"}

func decodeEnvelope(t *testing.T, p published) EventEnvelope {
	t.Helper()
	var env EventEnvelope
	require.NoError(t, json.Unmarshal(p.Msg.Body, &env))
	return env
}

func TestNewPublisherDeclaresExchange(t *testing.T) {
	ch := newFakeChannel()
	pub, err := NewPublisher(ch, PublisherOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"procurement.events:topic"}, ch.exchanges)
	require.NoError(t, pub.Close())
	assert.True(t, ch.closed)
}

func TestNotifyReservationSucceeded(t *testing.T) {
	ch := newFakeChannel()
	pub, err := NewPublisher(ch, PublisherOptions{Producer: "procurement-test"})
	require.NoError(t, err)

	ctx := middleware.WithCorrelationID(context.Background(), "cid-1")
	require.NoError(t, pub.NotifyReservation(ctx, cement, 10, inventory.Reservation{Succeeded: true, Remaining: 20}))

	require.Len(t, ch.published, 1)
	p := ch.published[0]
	assert.Equal(t, EventsExchange, p.Exchange)
	assert.Equal(t, StockReservedRoutingKey, p.RoutingKey)
	assert.Equal(t, "application/json", p.Msg.ContentType)
	assert.Equal(t, amqp.Persistent, p.Msg.DeliveryMode)

	env := decodeEnvelope(t, p)
	require.NoError(t, env.Validate(EventTypeStockReserved, 1))
	assert.Equal(t, "SKU-003", env.PartitionKey)
	assert.Equal(t, "cid-1", env.CorrelationID)
	assert.Equal(t, "procurement-test", env.Producer)
	assert.Equal(t, stockReservedSchema, env.Schema)

	var payload StockReservedPayload
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Equal(t, "SKU-003", payload.ItemID)
	assert.Equal(t, 10, payload.Quantity)
	assert.Equal(t, 20, payload.Remaining)
	assert.Equal(t, "almacén A", payload.Location)
}

func TestNotifyReservationDepleted(t *testing.T) {
	ch := newFakeChannel()
	pub, err := NewPublisher(ch, PublisherOptions{})
	require.NoError(t, err)

	require.NoError(t, pub.NotifyReservation(context.Background(), cement, 500, inventory.Reservation{Remaining: 30}))

	require.Len(t, ch.published, 1)
	assert.Equal(t, StockDepletedRoutingKey, ch.published[0].RoutingKey)

	env := decodeEnvelope(t, ch.published[0])
	require.NoError(t, env.Validate(EventTypeStockDepleted, 1))
	assert.Equal(t, procurementServiceName, env.Producer)
	assert.Empty(t, env.CorrelationID)

	var payload StockDepletedPayload
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Equal(t, 500, payload.Requested)
	assert.Equal(t, 30, payload.Available)
}

func TestPublishErrorIsWrapped(t *testing.T) {
	ch := newFakeChannel()
	pub, err := NewPublisher(ch, PublisherOptions{})
	require.NoError(t, err)

	ch.publishErr = amqp.ErrClosed
	err = pub.NotifyReservation(context.Background(), cement, 1, inventory.Reservation{Succeeded: true, Remaining: 29})
	require.Error(t, err)
	assert.True(t, errors.Is(err, amqp.ErrClosed))
}

func TestEnvelopeValidate(t *testing.T) {
	valid := EventEnvelope{EventName: "X", EventVersion: 1, EventID: "id", PartitionKey: "pk"}
	tests := map[string]func(e *EventEnvelope){
		"wrong name":        func(e *EventEnvelope) { e.EventName = "Y" },
		"wrong version":     func(e *EventEnvelope) { e.EventVersion = 2 },
		"missing partition": func(e *EventEnvelope) { e.PartitionKey = "" },
		"missing id":        func(e *EventEnvelope) { e.EventID = "" },
	}

	require.NoError(t, valid.Validate("X", 1))
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			e := valid
			mutate(&e)
			assert.Error(t, e.Validate("X", 1))
		})
	}
}
