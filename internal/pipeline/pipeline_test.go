package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mini-maxit/grader/internal/grader"
	"github.com/mini-maxit/grader/internal/pipeline"
	"github.com/mini-maxit/grader/pkg/constants"
	pkgerrors "github.com/mini-maxit/grader/pkg/errors"
	"github.com/mini-maxit/grader/pkg/languages"
	"github.com/mini-maxit/grader/pkg/messages"
	"github.com/mini-maxit/grader/pkg/solution"
	mocks "github.com/mini-maxit/grader/tests/mocks"
	"go.uber.org/mock/gomock"
)

func twoSumTask(mode string) *messages.TaskQueueMessage {
	return &messages.TaskQueueMessage{
		Mode:         mode,
		LanguageType: "python",
		SourceCode:   "print('[0, 1]')",
		TestCases: []messages.TestCase{
			{Input: `{"nums": [2, 7, 11, 15], "target": 9}`, ExpectedOutput: "[0, 1]"},
		},
	}
}

func TestProcessTask_PublishesResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGrader := mocks.NewMockGrader(ctrl)
	mockResponder := mocks.NewMockResponder(ctrl)
	w := pipeline.NewWorker(1, mockGrader, mockResponder)

	task := twoSumTask(constants.ModeSubmit)
	expected := solution.Result{Success: true, Status: solution.Accepted, Message: "Accepted! All 1 test cases passed."}

	mockGrader.EXPECT().
		Grade(gomock.Any(), grader.ModeSubmit, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ grader.Mode, req grader.Request) (solution.Result, error) {
			if req.MessageID != "msg-1" || req.Language != languages.PYTHON {
				t.Fatalf("unexpected request %+v", req)
			}
			if len(req.TestCases) != 1 {
				t.Fatalf("expected 1 test case, got %d", len(req.TestCases))
			}
			if w.GetProcessingMessageID() != "msg-1" {
				t.Fatalf("expected processing message id to be set while grading")
			}
			return expected, nil
		})
	mockResponder.EXPECT().
		PublishPayloadTaskRespond(constants.QueueMessageTypeTask, "msg-1", "reply_q", expected)

	w.ProcessTask(context.Background(), "msg-1", "reply_q", task)

	if w.GetProcessingMessageID() != "" {
		t.Fatalf("expected processing message id to be cleared, got %q", w.GetProcessingMessageID())
	}
}

func TestProcessTask_InvalidLanguagePublishesError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGrader := mocks.NewMockGrader(ctrl)
	mockResponder := mocks.NewMockResponder(ctrl)
	w := pipeline.NewWorker(1, mockGrader, mockResponder)

	task := twoSumTask(constants.ModeTrial)
	task.LanguageType = "cobol"

	mockResponder.EXPECT().
		PublishErrorToResponseQueue(constants.QueueMessageTypeTask, "msg-2", "reply_q", pkgerrors.ErrInvalidLanguageType)

	w.ProcessTask(context.Background(), "msg-2", "reply_q", task)
}

func TestProcessTask_GraderErrorPublishesError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGrader := mocks.NewMockGrader(ctrl)
	mockResponder := mocks.NewMockResponder(ctrl)
	w := pipeline.NewWorker(1, mockGrader, mockResponder)

	mockGrader.EXPECT().
		Grade(gomock.Any(), grader.ModeTrial, gomock.Any()).
		Return(solution.Result{}, pkgerrors.ErrNoTestCases)
	mockResponder.EXPECT().
		PublishErrorToResponseQueue(constants.QueueMessageTypeTask, "msg-3", "reply_q", pkgerrors.ErrNoTestCases)

	w.ProcessTask(context.Background(), "msg-3", "reply_q", twoSumTask("run"))
}

func TestGrade_InvalidMode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	w := pipeline.NewWorker(1, mocks.NewMockGrader(ctrl), nil)

	_, err := w.Grade(context.Background(), "msg-4", twoSumTask("judge"))
	if !errors.Is(err, pkgerrors.ErrInvalidMode) {
		t.Fatalf("expected ErrInvalidMode, got %v", err)
	}
}

func TestGrade_PanicRecovered(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGrader := mocks.NewMockGrader(ctrl)
	w := pipeline.NewWorker(1, mockGrader, nil)

	mockGrader.EXPECT().
		Grade(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, grader.Mode, grader.Request) (solution.Result, error) {
			panic("runner exploded")
		})

	_, err := w.Grade(context.Background(), "msg-5", twoSumTask(constants.ModeTrial))
	if err == nil {
		t.Fatalf("expected error after panic")
	}
	if w.GetProcessingMessageID() != "" {
		t.Fatalf("expected processing message id to be cleared after panic")
	}
}

func TestGetState(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	w := pipeline.NewWorker(7, mocks.NewMockGrader(ctrl), nil)

	if w.GetId() != 7 {
		t.Fatalf("expected id 7, got %d", w.GetId())
	}
	if w.GetState().Status != constants.WorkerStatusIdle {
		t.Fatalf("expected new worker to be idle")
	}

	w.UpdateStatus(constants.WorkerStatusBusy)
	if w.GetState().Status != constants.WorkerStatusBusy {
		t.Fatalf("expected worker to be busy")
	}
}
