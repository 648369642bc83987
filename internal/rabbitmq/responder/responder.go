package responder

import (
	"encoding/json"
	"sync"

	"github.com/mini-maxit/grader/internal/logger"
	"github.com/mini-maxit/grader/internal/rabbitmq/channel"
	"github.com/mini-maxit/grader/pkg/errors"
	"github.com/mini-maxit/grader/pkg/languages"
	"github.com/mini-maxit/grader/pkg/messages"
	"github.com/mini-maxit/grader/pkg/solution"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type Responder interface {
	PublishErrorToResponseQueue(messageType, messageID, responseQueue string, err error)
	PublishPayloadTaskRespond(messageType, messageID, responseQueue string, taskResult solution.Result)
	PublishSuccessHandshakeRespond(
		messageType, messageID, responseQueue string,
		languageSpecs []languages.LanguageSpec,
	) error
	PublishSuccessStatusRespond(
		messageType, messageID, responseQueue string,
		status messages.ResponseWorkerStatusPayload,
	) error
	// Publish hands msg to the single publisher goroutine and waits for the broker result.
	Publish(queueName string, msg amqp.Publishing) error
	Close() error
}

type publishRequest struct {
	queueName string
	msg       amqp.Publishing
	result    chan error
}

// responder serializes all publishes through one goroutine, since an AMQP channel
// must not be used concurrently.
type responder struct {
	logger      *zap.SugaredLogger
	channel     channel.Channel
	publishChan chan publishRequest
	done        chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewResponder(ch channel.Channel, publishChanSize int) Responder {
	r := &responder{
		logger:      logger.NewNamedLogger("responder"),
		channel:     ch,
		publishChan: make(chan publishRequest, publishChanSize),
		done:        make(chan struct{}),
	}
	go r.publisherLoop()
	return r
}

func (r *responder) publisherLoop() {
	defer close(r.done)
	for req := range r.publishChan {
		req.result <- r.channel.Publish("", req.queueName, false, false, req.msg)
	}
}

func (r *responder) Publish(queueName string, msg amqp.Publishing) error {
	r.mu.RLock()
	if r.closed {
		r.mu.RUnlock()
		return errors.ErrResponderClosed
	}
	req := publishRequest{queueName: queueName, msg: msg, result: make(chan error, 1)}
	r.publishChan <- req
	r.mu.RUnlock()

	return <-req.result
}

// Close stops accepting publishes and waits until queued ones are delivered to the channel.
func (r *responder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.publishChan)
	r.mu.Unlock()

	<-r.done
	return nil
}

func (r *responder) PublishErrorToResponseQueue(messageType, messageID, responseQueue string, err error) {
	errorPayload := map[string]string{"error": err.Error()}
	payload, jsonErr := json.Marshal(errorPayload)
	if jsonErr != nil {
		r.logger.Errorf("Failed to marshal error payload [MsgID: %s]: %s", messageID, jsonErr)
		return
	}

	if pubErr := r.publishResponse(messageType, messageID, responseQueue, false, payload); pubErr != nil {
		r.logger.Errorf("Failed to publish error message [MsgID: %s]: %s", messageID, pubErr)
		return
	}

	r.logger.Infof("Published error message to %s [MsgID: %s]", responseQueue, messageID)
}

func (r *responder) PublishPayloadTaskRespond(messageType, messageID, responseQueue string, taskResult solution.Result) {
	payload, err := json.Marshal(taskResult)
	if err != nil {
		r.logger.Errorf("Failed to marshal task result [MsgID: %s]: %s", messageID, err)
		r.PublishErrorToResponseQueue(messageType, messageID, responseQueue, err)
		return
	}

	if err := r.publishResponse(messageType, messageID, responseQueue, true, payload); err != nil {
		r.logger.Errorf("Failed to publish task result [MsgID: %s]: %s", messageID, err)
		return
	}

	r.logger.Infof("Published task result to %s [MsgID: %s]", responseQueue, messageID)
}

func (r *responder) PublishSuccessHandshakeRespond(
	messageType, messageID, responseQueue string,
	languageSpecs []languages.LanguageSpec,
) error {
	payload, err := json.Marshal(messages.ResponseHandshakePayload{Languages: languageSpecs})
	if err != nil {
		return err
	}

	return r.publishResponse(messageType, messageID, responseQueue, true, payload)
}

func (r *responder) PublishSuccessStatusRespond(
	messageType, messageID, responseQueue string,
	status messages.ResponseWorkerStatusPayload,
) error {
	payload, err := json.Marshal(status)
	if err != nil {
		return err
	}

	return r.publishResponse(messageType, messageID, responseQueue, true, payload)
}

func (r *responder) publishResponse(messageType, messageID, responseQueue string, ok bool, payload []byte) error {
	queueMessage := messages.ResponseQueueMessage{
		Type:      messageType,
		MessageID: messageID,
		Ok:        ok,
		Payload:   payload,
	}

	responseJSON, err := json.Marshal(queueMessage)
	if err != nil {
		return err
	}

	return r.Publish(responseQueue, amqp.Publishing{
		ContentType:   "application/json",
		CorrelationId: messageID,
		Body:          responseJSON,
	})
}
