// Package grader runs a submission against its test cases and turns the outcomes into a verdict.
package grader

import (
	"context"
	"fmt"
	"strings"

	"github.com/mini-maxit/grader/internal/logger"
	"github.com/mini-maxit/grader/internal/runner"
	"github.com/mini-maxit/grader/internal/stages/inputs"
	"github.com/mini-maxit/grader/internal/stages/verifier"
	"github.com/mini-maxit/grader/pkg/constants"
	"github.com/mini-maxit/grader/pkg/errors"
	"github.com/mini-maxit/grader/pkg/languages"
	"github.com/mini-maxit/grader/pkg/messages"
	"github.com/mini-maxit/grader/pkg/solution"
	"go.uber.org/zap"
)

type Request struct {
	MessageID  string
	Language   languages.LanguageType
	SourceCode string
	TestCases  []messages.TestCase
}

type Grader interface {
	// Trial runs every non-hidden case and reports a count-based message.
	Trial(ctx context.Context, req Request) (solution.Result, error)
	// Submit runs all cases in order and stops at the first one that does not pass.
	Submit(ctx context.Context, req Request) (solution.Result, error)
	Grade(ctx context.Context, mode Mode, req Request) (solution.Result, error)
}

type grader struct {
	runners  map[languages.LanguageType]runner.Runner
	verifier verifier.Verifier
	logger   *zap.SugaredLogger
}

func NewGrader(runners map[languages.LanguageType]runner.Runner, verifier verifier.Verifier) Grader {
	return &grader{
		runners:  runners,
		verifier: verifier,
		logger:   logger.NewNamedLogger("grader"),
	}
}

func (g *grader) Grade(ctx context.Context, mode Mode, req Request) (solution.Result, error) {
	switch mode {
	case ModeTrial:
		return g.Trial(ctx, req)
	case ModeSubmit:
		return g.Submit(ctx, req)
	default:
		return solution.Result{}, errors.ErrInvalidMode
	}
}

func (g *grader) Trial(ctx context.Context, req Request) (solution.Result, error) {
	r, err := g.runnerFor(req)
	if err != nil {
		return solution.Result{}, err
	}

	public := make([]messages.TestCase, 0, len(req.TestCases))
	for _, tc := range req.TestCases {
		if !tc.IsHidden {
			public = append(public, tc)
		}
	}

	if len(public) == 0 {
		g.logger.Infof("No public test cases to run [MsgID: %s]", req.MessageID)
		return solution.Result{
			Success:     false,
			Message:     constants.TrialMessageNoTestCases,
			TestResults: []solution.TestResult{},
		}, nil
	}

	g.logger.Infof("Running trial for %s with %d test cases [MsgID: %s]", req.Language, len(public), req.MessageID)
	result := verdict{solution.Result{
		TestResults: make([]solution.TestResult, 0, len(public)),
		TotalTests:  len(public),
	}}
	for i, tc := range public {
		tr := g.evaluate(ctx, r, req, tc, i+1)
		result.add(tr)
	}

	result.Success = result.PassedTests == result.TotalTests
	if result.Success {
		result.Message = fmt.Sprintf(constants.TrialMessagePassed, result.PassedTests, result.TotalTests)
	} else {
		result.Message = fmt.Sprintf(constants.TrialMessageFailed, result.TotalTests-result.PassedTests)
	}

	g.logger.Infof("Trial finished: %s [MsgID: %s]", result.Message, req.MessageID)
	return result.Result, nil
}

func (g *grader) Submit(ctx context.Context, req Request) (solution.Result, error) {
	r, err := g.runnerFor(req)
	if err != nil {
		return solution.Result{}, err
	}
	if len(req.TestCases) == 0 {
		return solution.Result{}, errors.ErrNoTestCases
	}

	g.logger.Infof("Running submission for %s with %d test cases [MsgID: %s]", req.Language, len(req.TestCases), req.MessageID)
	result := verdict{solution.Result{
		Status:      solution.Accepted,
		TestResults: make([]solution.TestResult, 0, len(req.TestCases)),
		TotalTests:  len(req.TestCases),
	}}
	for i, tc := range req.TestCases {
		tr := g.evaluate(ctx, r, req, tc, i+1)
		result.add(tr)
		if !tr.Passed {
			result.Status = tr.Status
			break
		}
	}

	result.Success = result.Status == solution.Accepted
	result.Message = submitMessage(result.Status, result.PassedTests, result.TotalTests)

	g.logger.Infof("Submission finished: %s [MsgID: %s]", result.Message, req.MessageID)
	return result.Result, nil
}

// verdict accumulates consumed test results.
type verdict struct {
	solution.Result
}

func (v *verdict) add(tr solution.TestResult) {
	v.TestResults = append(v.TestResults, tr)
	if tr.Passed {
		v.PassedTests++
	}
	v.ExecutionTime += tr.ExecutionTime
}

func (g *grader) runnerFor(req Request) (runner.Runner, error) {
	r, ok := g.runners[req.Language]
	if !ok {
		g.logger.Warnf("No runner for language %d [MsgID: %s]", req.Language, req.MessageID)
		return nil, errors.ErrInvalidLanguageType
	}
	if strings.TrimSpace(req.SourceCode) == "" {
		return nil, errors.ErrEmptySourceCode
	}
	return r, nil
}

// evaluate runs one test case. Runner failures become part of the TestResult, never an error.
func (g *grader) evaluate(
	ctx context.Context,
	r runner.Runner,
	req Request,
	tc messages.TestCase,
	order int,
) solution.TestResult {
	stdin := inputs.Normalize(tc.Input)
	outcome := r.Run(ctx, req.SourceCode, stdin, req.MessageID)

	tr := solution.TestResult{
		Input:          tc.Input,
		ExpectedOutput: tc.ExpectedOutput,
		ExecutionTime:  outcome.Elapsed.Seconds(),
		IsHidden:       tc.IsHidden,
	}

	if outcome.Failed() {
		message := outcome.Err.Message
		tr.Error = &message
		tr.Status = classify(outcome.Err)
		g.logger.Infof("Test case %d failed with %s [MsgID: %s]", order, tr.Status, req.MessageID)
		return tr
	}

	stdout := outcome.Stdout
	tr.ActualOutput = &stdout
	tr.Passed = g.verifier.CompareOutput(stdout, tc.ExpectedOutput)
	if tr.Passed {
		tr.Status = solution.Accepted
	} else {
		tr.Status = solution.WrongAnswer
	}
	g.logger.Debugf("Test case %d: %s [MsgID: %s]", order, tr.Status, req.MessageID)
	return tr
}

// classify maps a runner failure to a verdict: timeouts first, then compilation failures,
// everything else is a runtime error.
func classify(err *runner.RunError) solution.Status {
	switch err.Kind {
	case runner.KindTimeout:
		return solution.TimeLimitExceeded
	case runner.KindCompilation:
		return solution.CompilationError
	default:
		return solution.RuntimeError
	}
}

func submitMessage(status solution.Status, passed, total int) string {
	switch status {
	case solution.Accepted:
		return fmt.Sprintf(constants.SubmitMessageAccepted, total)
	case solution.WrongAnswer:
		return fmt.Sprintf(constants.SubmitMessageWrongAnswer, passed, total)
	case solution.TimeLimitExceeded:
		return constants.SubmitMessageTimeLimitExceeded
	case solution.CompilationError:
		return constants.SubmitMessageCompilationError
	default:
		return constants.SubmitMessageRuntimeError
	}
}
