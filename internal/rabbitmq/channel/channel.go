package channel

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the part of *amqp.Channel the consumer and responder use.
// Implementations are not safe for concurrent Publish calls.
type Channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Consume(queue, consumer string,
		autoAck, exclusive, noLocal, noWait bool,
		args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

type amqpChannel struct {
	*amqp.Channel
}

// NewAmqpChannel adapts a broker channel to Channel.
func NewAmqpChannel(ch *amqp.Channel) Channel {
	return amqpChannel{Channel: ch}
}
