package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/mini-maxit/grader/internal/grader"
	"github.com/mini-maxit/grader/internal/logger"
	"github.com/mini-maxit/grader/internal/rabbitmq/responder"
	"github.com/mini-maxit/grader/pkg/constants"
	"github.com/mini-maxit/grader/pkg/languages"
	"github.com/mini-maxit/grader/pkg/messages"
	"github.com/mini-maxit/grader/pkg/solution"
	"go.uber.org/zap"
)

type Worker interface {
	// ProcessTask grades the task and publishes the result or the error to responseQueue.
	ProcessTask(ctx context.Context, messageID, responseQueue string, task *messages.TaskQueueMessage)
	// Grade grades the task and returns the result to the caller.
	Grade(ctx context.Context, messageID string, task *messages.TaskQueueMessage) (solution.Result, error)
	GetState() WorkerState
	UpdateStatus(status constants.WorkerStatus)
	GetProcessingMessageID() string
	GetId() int
}

type WorkerState struct {
	Status              constants.WorkerStatus `json:"status"`
	ProcessingMessageID string                 `json:"processing_message_id"`
}

type worker struct {
	id        int
	mu        sync.RWMutex
	state     WorkerState
	grader    grader.Grader
	responder responder.Responder
	logger    *zap.SugaredLogger
}

// NewWorker creates a worker. The responder may be nil when results are only returned through Grade.
func NewWorker(id int, grader grader.Grader, responder responder.Responder) Worker {
	return &worker{
		id:        id,
		state:     WorkerState{Status: constants.WorkerStatusIdle},
		grader:    grader,
		responder: responder,
		logger:    logger.NewNamedLogger(fmt.Sprintf("worker-%d", id)),
	}
}

func (ws *worker) GetId() int {
	return ws.id
}

func (ws *worker) GetState() WorkerState {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return ws.state
}

func (ws *worker) UpdateStatus(status constants.WorkerStatus) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.state.Status = status
}

func (ws *worker) GetProcessingMessageID() string {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return ws.state.ProcessingMessageID
}

func (ws *worker) setProcessingMessageID(messageID string) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.state.ProcessingMessageID = messageID
}

func (ws *worker) ProcessTask(
	ctx context.Context,
	messageID, responseQueue string,
	task *messages.TaskQueueMessage,
) {
	result, err := ws.Grade(ctx, messageID, task)
	if err != nil {
		ws.logger.Errorf("Failed to grade task [MsgID: %s]: %s", messageID, err)
		ws.responder.PublishErrorToResponseQueue(constants.QueueMessageTypeTask, messageID, responseQueue, err)
		return
	}

	ws.responder.PublishPayloadTaskRespond(constants.QueueMessageTypeTask, messageID, responseQueue, result)
}

func (ws *worker) Grade(
	ctx context.Context,
	messageID string,
	task *messages.TaskQueueMessage,
) (result solution.Result, err error) {
	ws.logger.Infof("Processing task [MsgID: %s]", messageID)
	ws.setProcessingMessageID(messageID)
	defer ws.setProcessingMessageID("")

	defer func() {
		if r := recover(); r != nil {
			ws.logger.Errorf("Recovered from panic while grading [MsgID: %s]: %v", messageID, r)
			result = solution.Result{}
			err = fmt.Errorf("internal error while grading: %v", r)
		}
	}()

	mode, err := grader.ParseMode(task.Mode)
	if err != nil {
		return solution.Result{}, err
	}

	langType, err := languages.ParseLanguageType(task.LanguageType)
	if err != nil {
		ws.logger.Errorf("Invalid language type %s [MsgID: %s]: %s", task.LanguageType, messageID, err)
		return solution.Result{}, err
	}

	result, err = ws.grader.Grade(ctx, mode, grader.Request{
		MessageID:  messageID,
		Language:   langType,
		SourceCode: task.SourceCode,
		TestCases:  task.TestCases,
	})
	if err != nil {
		return solution.Result{}, err
	}

	ws.logger.Infof("Finished processing task [MsgID: %s]: %s", messageID, result.Message)
	return result, nil
}
