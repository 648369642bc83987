package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/mock/gomock"

	"github.com/mini-maxit/grader/internal/rabbitmq/consumer"
	"github.com/mini-maxit/grader/pkg/constants"
	pkgerrors "github.com/mini-maxit/grader/pkg/errors"
	"github.com/mini-maxit/grader/pkg/languages"
	"github.com/mini-maxit/grader/pkg/messages"
	"github.com/mini-maxit/grader/tests/mocks"
)

const workerQueue = "grader_queue"

func delivery(t *testing.T, msgType, messageID string, payload any) amqp.Delivery {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	body, err := json.Marshal(messages.QueueMessage{Type: msgType, MessageID: messageID, Payload: raw})
	if err != nil {
		t.Fatalf("failed to marshal message: %v", err)
	}
	return amqp.Delivery{Body: body, ReplyTo: "reply_q"}
}

func trialTask() messages.TaskQueueMessage {
	return messages.TaskQueueMessage{
		Mode:         constants.ModeTrial,
		LanguageType: "python",
		SourceCode:   "print(1)",
		TestCases:    []messages.TestCase{{Input: "", ExpectedOutput: "1"}},
	}
}

type fixture struct {
	channel   *mocks.MockChannel
	scheduler *mocks.MockScheduler
	responder *mocks.MockResponder
	consumer  consumer.Consumer
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := fixture{
		channel:   mocks.NewMockChannel(ctrl),
		scheduler: mocks.NewMockScheduler(ctrl),
		responder: mocks.NewMockResponder(ctrl),
	}
	f.consumer = consumer.NewConsumer(f.channel, workerQueue, f.scheduler, f.responder)
	return f
}

func TestProcessMessage_TaskDispatchedToScheduler(t *testing.T) {
	f := newFixture(t)

	f.scheduler.EXPECT().
		ProcessTask(gomock.Any(), "reply_q", "msg-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, task *messages.TaskQueueMessage) error {
			if task.LanguageType != "python" || task.Mode != constants.ModeTrial {
				t.Fatalf("unexpected task %+v", task)
			}
			return nil
		})

	f.consumer.ProcessMessage(context.Background(), delivery(t, constants.QueueMessageTypeTask, "msg-1", trialTask()))
}

func TestProcessMessage_TaskRequeuedWhenBusy(t *testing.T) {
	f := newFixture(t)

	msg := delivery(t, constants.QueueMessageTypeTask, "msg-2", trialTask())

	f.scheduler.EXPECT().
		ProcessTask(gomock.Any(), "reply_q", "msg-2", gomock.Any()).
		Return(pkgerrors.ErrFailedToGetFreeWorker)
	f.channel.EXPECT().
		Publish("", workerQueue, false, false, gomock.AssignableToTypeOf(amqp.Publishing{})).
		DoAndReturn(func(_, _ string, _, _ bool, pub amqp.Publishing) error {
			if pub.Priority != constants.RabbitMQRequeuePriority {
				t.Fatalf("expected priority %d, got %d", constants.RabbitMQRequeuePriority, pub.Priority)
			}
			if pub.ReplyTo != "reply_q" {
				t.Fatalf("expected reply-to to be preserved, got %q", pub.ReplyTo)
			}
			if string(pub.Body) != string(msg.Body) {
				t.Fatalf("expected original body to be requeued")
			}
			return nil
		})

	f.consumer.ProcessMessage(context.Background(), msg)
}

func TestProcessMessage_TaskErrorPublished(t *testing.T) {
	f := newFixture(t)

	schedErr := errors.New("boom")
	f.scheduler.EXPECT().ProcessTask(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(schedErr)
	f.responder.EXPECT().PublishErrorToResponseQueue(constants.QueueMessageTypeTask, "msg-3", "reply_q", schedErr)

	f.consumer.ProcessMessage(context.Background(), delivery(t, constants.QueueMessageTypeTask, "msg-3", trialTask()))
}

func TestProcessMessage_MalformedTaskPayload(t *testing.T) {
	f := newFixture(t)

	f.responder.EXPECT().
		PublishErrorToResponseQueue(constants.QueueMessageTypeTask, "msg-4", "reply_q", gomock.Any())

	f.consumer.ProcessMessage(context.Background(), delivery(t, constants.QueueMessageTypeTask, "msg-4", []int{1, 2}))
}

func TestProcessMessage_StatusAndHandshake(t *testing.T) {
	f := newFixture(t)

	status := messages.ResponseWorkerStatusPayload{TotalWorkers: 2}
	f.scheduler.EXPECT().GetWorkersStatus().Return(status)
	f.responder.EXPECT().
		PublishSuccessStatusRespond(constants.QueueMessageTypeStatus, "st-1", "reply_q", status).
		Return(nil)

	langs := languages.GetSupportedLanguages()
	f.scheduler.EXPECT().GetSupportedLanguages().Return(langs)
	f.responder.EXPECT().
		PublishSuccessHandshakeRespond(constants.QueueMessageTypeHandshake, "hs-1", "reply_q", langs).
		Return(nil)

	f.consumer.ProcessMessage(context.Background(), delivery(t, constants.QueueMessageTypeStatus, "st-1", struct{}{}))
	f.consumer.ProcessMessage(context.Background(), delivery(t, constants.QueueMessageTypeHandshake, "hs-1", struct{}{}))
}

func TestProcessMessage_UnknownType(t *testing.T) {
	f := newFixture(t)

	f.responder.EXPECT().
		PublishErrorToResponseQueue("bogus", "x-1", "reply_q", pkgerrors.ErrUnknownMessageType)

	f.consumer.ProcessMessage(context.Background(), delivery(t, "bogus", "x-1", struct{}{}))
}

func TestProcessMessage_InvalidJSON(t *testing.T) {
	f := newFixture(t)

	f.responder.EXPECT().PublishErrorToResponseQueue("", "corr-1", "reply_q", gomock.Any())

	f.consumer.ProcessMessage(context.Background(), amqp.Delivery{
		Body:          []byte("{not json"),
		ReplyTo:       "reply_q",
		CorrelationId: "corr-1",
	})
}

func TestListen_DeclaresPriorityQueueAndStopsOnCancel(t *testing.T) {
	f := newFixture(t)

	deliveries := make(chan amqp.Delivery, 1)
	deliveries <- delivery(t, constants.QueueMessageTypeStatus, "st-2", struct{}{})

	f.channel.EXPECT().
		QueueDeclare(workerQueue, true, false, false, false, gomock.Any()).
		DoAndReturn(func(name string, _, _, _, _ bool, args amqp.Table) (amqp.Queue, error) {
			if args["x-max-priority"] != constants.RabbitMQMaxPriority {
				t.Fatalf("expected x-max-priority %d, got %v", constants.RabbitMQMaxPriority, args["x-max-priority"])
			}
			return amqp.Queue{Name: name}, nil
		})
	f.channel.EXPECT().
		Consume(workerQueue, "", true, false, false, false, gomock.Any()).
		Return((<-chan amqp.Delivery)(deliveries), nil)

	handled := make(chan struct{})
	f.scheduler.EXPECT().GetWorkersStatus().Return(messages.ResponseWorkerStatusPayload{})
	f.responder.EXPECT().
		PublishSuccessStatusRespond(gomock.Any(), "st-2", "reply_q", gomock.Any()).
		DoAndReturn(func(_, _, _ string, _ messages.ResponseWorkerStatusPayload) error {
			close(handled)
			return nil
		})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.consumer.Listen(ctx) }()

	<-handled
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error from Listen: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Listen did not return after cancel")
	}
}

func TestListen_DeclareFails(t *testing.T) {
	f := newFixture(t)

	declareErr := errors.New("access refused")
	f.channel.EXPECT().
		QueueDeclare(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(amqp.Queue{}, declareErr)

	if err := f.consumer.Listen(context.Background()); !errors.Is(err, declareErr) {
		t.Fatalf("expected declare error, got %v", err)
	}
}
