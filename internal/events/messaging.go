package events

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventsExchange                 = "procurement.events"
	StockReservedRoutingKey        = "stock.reserved.v1"
	StockDepletedRoutingKey        = "stock.depleted.v1"
	ProcurementRequestedRoutingKey = "procurement.requested.v1"
	ProcurementRepliedRoutingKey   = "procurement.replied.v1"
	procurementServiceName         = "procurement-service-go"
)

// Channel is the subset of *amqp.Channel the service uses.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

func serviceQueue(serviceName, routingKey string) string {
	return serviceName + "." + routingKey
}

func procurementQueueName(routingKey string) string {
	return serviceQueue(procurementServiceName, routingKey)
}

func declareEventsExchange(ch Channel) error {
	return ch.ExchangeDeclare(
		EventsExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
}
