package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/mini-maxit/grader/internal/grader"
	"github.com/mini-maxit/grader/internal/logger"
	"github.com/mini-maxit/grader/internal/pipeline"
	"github.com/mini-maxit/grader/internal/rabbitmq/responder"
	"github.com/mini-maxit/grader/pkg/constants"
	"github.com/mini-maxit/grader/pkg/errors"
	"github.com/mini-maxit/grader/pkg/languages"
	"github.com/mini-maxit/grader/pkg/messages"
	"github.com/mini-maxit/grader/pkg/solution"
	"go.uber.org/zap"
)

type Scheduler interface {
	GetWorkersStatus() messages.ResponseWorkerStatusPayload
	// ProcessTask hands the task to an idle worker and returns immediately.
	// It fails with ErrFailedToGetFreeWorker when every worker is busy.
	ProcessTask(ctx context.Context, responseQueueName, messageID string, task *messages.TaskQueueMessage) error
	// Grade waits for an idle worker, grades the task on it and returns the result.
	Grade(ctx context.Context, messageID string, task *messages.TaskQueueMessage) (solution.Result, error)
	GetSupportedLanguages() []languages.LanguageSpec
	// Wait blocks until every task started by ProcessTask has finished.
	Wait()
}

type scheduler struct {
	mu               sync.Mutex
	busyWorkersCount int
	workers          []pipeline.Worker
	// released is closed and replaced each time a worker goes back to idle.
	released chan struct{}
	inFlight sync.WaitGroup
	logger   *zap.SugaredLogger
}

func NewScheduler(maxWorkers int, grader grader.Grader, responder responder.Responder) Scheduler {
	workers := make([]pipeline.Worker, maxWorkers)
	for i := range workers {
		workers[i] = pipeline.NewWorker(i, grader, responder)
	}

	return NewSchedulerWithWorkers(workers)
}

func NewSchedulerWithWorkers(workers []pipeline.Worker) Scheduler {
	return &scheduler{
		workers:  workers,
		released: make(chan struct{}),
		logger:   logger.NewNamedLogger("scheduler"),
	}
}

func (s *scheduler) GetWorkersStatus() messages.ResponseWorkerStatusPayload {
	s.mu.Lock()
	defer s.mu.Unlock()

	statuses := make([]messages.WorkerStatus, 0, len(s.workers))
	for _, worker := range s.workers {
		state := worker.GetState()
		status := messages.WorkerStatus{WorkerID: worker.GetId(), Status: state.Status}
		if state.Status == constants.WorkerStatusBusy {
			status.ProcessingMessageID = state.ProcessingMessageID
		}
		statuses = append(statuses, status)
	}

	return messages.ResponseWorkerStatusPayload{
		BusyWorkers:  s.busyWorkersCount,
		TotalWorkers: len(s.workers),
		WorkerStatus: statuses,
	}
}

// getFreeWorker marks the first idle worker busy. When none is idle it returns the
// channel that will be closed on the next release.
func (s *scheduler) getFreeWorker() (pipeline.Worker, <-chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, worker := range s.workers {
		if worker.GetState().Status == constants.WorkerStatusIdle {
			worker.UpdateStatus(constants.WorkerStatusBusy)
			s.busyWorkersCount++
			return worker, nil
		}
	}

	return nil, s.released
}

func (s *scheduler) waitForFreeWorker(ctx context.Context) (pipeline.Worker, error) {
	for {
		worker, released := s.getFreeWorker()
		if worker != nil {
			return worker, nil
		}

		select {
		case <-released:
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", errors.ErrFailedToGetFreeWorker, ctx.Err())
		}
	}
}

func (s *scheduler) ProcessTask(
	ctx context.Context,
	responseQueueName, messageID string,
	task *messages.TaskQueueMessage,
) error {
	s.logger.Infof("Processing task [MsgID: %s]", messageID)

	worker, _ := s.getFreeWorker()
	if worker == nil {
		s.logger.Warnf("No available workers [MsgID: %s]", messageID)
		return errors.ErrFailedToGetFreeWorker
	}

	s.inFlight.Add(1)
	go func(w pipeline.Worker) {
		defer s.inFlight.Done()
		defer s.markWorkerAsIdle(w)
		defer func() {
			if r := recover(); r != nil {
				s.logger.Errorf("Worker panicked [WorkerID: %d, MsgID: %s]: %v", w.GetId(), messageID, r)
			}
		}()

		w.ProcessTask(ctx, messageID, responseQueueName, task)
	}(worker)

	return nil
}

func (s *scheduler) Grade(
	ctx context.Context,
	messageID string,
	task *messages.TaskQueueMessage,
) (solution.Result, error) {
	worker, err := s.waitForFreeWorker(ctx)
	if err != nil {
		s.logger.Warnf("Gave up waiting for a worker [MsgID: %s]: %s", messageID, err)
		return solution.Result{}, err
	}
	defer s.markWorkerAsIdle(worker)

	return worker.Grade(ctx, messageID, task)
}

func (s *scheduler) markWorkerAsIdle(worker pipeline.Worker) {
	s.mu.Lock()
	defer s.mu.Unlock()

	worker.UpdateStatus(constants.WorkerStatusIdle)
	s.busyWorkersCount--

	close(s.released)
	s.released = make(chan struct{})

	s.logger.Debugf("Worker marked as idle [WorkerID: %d]", worker.GetId())
}

func (s *scheduler) GetSupportedLanguages() []languages.LanguageSpec {
	return languages.GetSupportedLanguages()
}

func (s *scheduler) Wait() {
	s.inFlight.Wait()
}
