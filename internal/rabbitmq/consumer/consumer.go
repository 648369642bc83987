package consumer

import (
	"context"
	"encoding/json"
	e "errors"

	"github.com/mini-maxit/grader/internal/logger"
	"github.com/mini-maxit/grader/internal/rabbitmq/channel"
	"github.com/mini-maxit/grader/internal/rabbitmq/responder"
	"github.com/mini-maxit/grader/internal/scheduler"
	"github.com/mini-maxit/grader/pkg/constants"
	"github.com/mini-maxit/grader/pkg/errors"
	"github.com/mini-maxit/grader/pkg/messages"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type Consumer interface {
	// Listen declares the worker queue and dispatches deliveries until ctx is done
	// or the broker closes the delivery channel.
	Listen(ctx context.Context) error
	ProcessMessage(ctx context.Context, msg amqp.Delivery)
}

type consumer struct {
	channel         channel.Channel
	workerQueueName string
	scheduler       scheduler.Scheduler
	responder       responder.Responder
	logger          *zap.SugaredLogger
}

func NewConsumer(
	mainChannel channel.Channel,
	workerQueueName string,
	scheduler scheduler.Scheduler,
	responder responder.Responder,
) Consumer {
	return &consumer{
		channel:         mainChannel,
		workerQueueName: workerQueueName,
		scheduler:       scheduler,
		responder:       responder,
		logger:          logger.NewNamedLogger("consumer"),
	}
}

func (c *consumer) Listen(ctx context.Context) error {
	c.logger.Infof("Declaring queue %s", c.workerQueueName)

	args := amqp.Table{"x-max-priority": constants.RabbitMQMaxPriority}
	if _, err := c.channel.QueueDeclare(c.workerQueueName, true, false, false, false, args); err != nil {
		c.logger.Errorf("Failed to declare queue %s: %s", c.workerQueueName, err)
		return err
	}

	msgs, err := c.channel.Consume(c.workerQueueName, "", true, false, false, false, nil)
	if err != nil {
		c.logger.Errorf("Failed to consume messages from queue %s: %s", c.workerQueueName, err)
		return err
	}

	c.logger.Infof("Listening for messages on queue %s", c.workerQueueName)

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Stopped listening for messages")
			return nil
		case msg, ok := <-msgs:
			if !ok {
				c.logger.Warn("Delivery channel closed by broker")
				return nil
			}
			c.ProcessMessage(ctx, msg)
		}
	}
}

func (c *consumer) ProcessMessage(ctx context.Context, msg amqp.Delivery) {
	var queueMessage messages.QueueMessage
	if err := json.Unmarshal(msg.Body, &queueMessage); err != nil {
		c.logger.Errorf("Failed to unmarshal message: %s", err)
		c.responder.PublishErrorToResponseQueue(queueMessage.Type, msg.CorrelationId, msg.ReplyTo, err)
		return
	}

	switch queueMessage.Type {
	case constants.QueueMessageTypeTask:
		c.logger.Infof("Received task message [MsgID: %s]", queueMessage.MessageID)
		c.handleTaskMessage(ctx, queueMessage, msg)
	case constants.QueueMessageTypeStatus:
		c.logger.Infof("Received status message [MsgID: %s]", queueMessage.MessageID)
		c.handleStatusMessage(queueMessage, msg.ReplyTo)
	case constants.QueueMessageTypeHandshake:
		c.logger.Infof("Received handshake message [MsgID: %s]", queueMessage.MessageID)
		c.handleHandshakeMessage(queueMessage, msg.ReplyTo)
	default:
		c.logger.Errorf("Unknown message type %q [MsgID: %s]", queueMessage.Type, queueMessage.MessageID)
		c.responder.PublishErrorToResponseQueue(
			queueMessage.Type,
			queueMessage.MessageID,
			msg.ReplyTo,
			errors.ErrUnknownMessageType)
	}
}

// requeueTask puts the delivery back on the worker queue above the default priority
// so it is picked up before newer tasks once a worker frees up.
func (c *consumer) requeueTask(queueMessage messages.QueueMessage, msg amqp.Delivery) error {
	return c.channel.Publish("", c.workerQueueName, false, false, amqp.Publishing{
		ContentType:   "application/json",
		CorrelationId: queueMessage.MessageID,
		ReplyTo:       msg.ReplyTo,
		Body:          msg.Body,
		Priority:      constants.RabbitMQRequeuePriority,
	})
}

func (c *consumer) handleTaskMessage(ctx context.Context, queueMessage messages.QueueMessage, msg amqp.Delivery) {
	var task messages.TaskQueueMessage
	if err := json.Unmarshal(queueMessage.Payload, &task); err != nil {
		c.logger.Errorf("Failed to unmarshal task message [MsgID: %s]: %s", queueMessage.MessageID, err)
		c.responder.PublishErrorToResponseQueue(queueMessage.Type, queueMessage.MessageID, msg.ReplyTo, err)
		return
	}

	// Accepted tasks run to completion even when listening stops.
	err := c.scheduler.ProcessTask(context.WithoutCancel(ctx), msg.ReplyTo, queueMessage.MessageID, &task)
	if err == nil {
		return
	}

	if e.Is(err, errors.ErrFailedToGetFreeWorker) {
		c.logger.Infof("All workers busy, requeueing task [MsgID: %s]", queueMessage.MessageID)
		if requeueErr := c.requeueTask(queueMessage, msg); requeueErr != nil {
			c.logger.Errorf("Failed to requeue task [MsgID: %s]: %s", queueMessage.MessageID, requeueErr)
			c.responder.PublishErrorToResponseQueue(queueMessage.Type, queueMessage.MessageID, msg.ReplyTo, requeueErr)
		}
		return
	}

	c.logger.Errorf("Failed to process task message [MsgID: %s]: %s", queueMessage.MessageID, err)
	c.responder.PublishErrorToResponseQueue(queueMessage.Type, queueMessage.MessageID, msg.ReplyTo, err)
}

func (c *consumer) handleStatusMessage(queueMessage messages.QueueMessage, replyTo string) {
	status := c.scheduler.GetWorkersStatus()

	err := c.responder.PublishSuccessStatusRespond(queueMessage.Type, queueMessage.MessageID, replyTo, status)
	if err != nil {
		c.logger.Errorf("Failed to publish status message [MsgID: %s]: %s", queueMessage.MessageID, err)
		c.responder.PublishErrorToResponseQueue(queueMessage.Type, queueMessage.MessageID, replyTo, err)
	}
}

func (c *consumer) handleHandshakeMessage(queueMessage messages.QueueMessage, replyTo string) {
	languages := c.scheduler.GetSupportedLanguages()

	err := c.responder.PublishSuccessHandshakeRespond(queueMessage.Type, queueMessage.MessageID, replyTo, languages)
	if err != nil {
		c.logger.Errorf("Failed to publish supported languages [MsgID: %s]: %s", queueMessage.MessageID, err)
		c.responder.PublishErrorToResponseQueue(queueMessage.Type, queueMessage.MessageID, replyTo, err)
	}
}
