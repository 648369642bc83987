package executor

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/mini-maxit/grader/internal/logger"
	customErr "github.com/mini-maxit/grader/pkg/errors"
	"go.uber.org/zap"
)

// Time given to a killed process to release its output pipes before Wait gives up on them.
const waitDelay = 500 * time.Millisecond

// errCommandTimeout is the cancellation cause of a command's own deadline.
var errCommandTimeout = errors.New("command timeout elapsed")

// Command describes a single child process invocation.
type Command struct {
	MessageID string
	Path      string
	Args      []string
	Dir       string
	Stdin     string
	Timeout   time.Duration
}

// Result is the outcome of a child process. Err is nil only for a clean exit with code 0.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	TimedOut bool
	Elapsed  time.Duration
	Err      error
}

type Executor interface {
	// Execute runs the command to completion or until its timeout fires, in which case
	// the whole process group is killed and TimedOut is set.
	Execute(ctx context.Context, command Command) Result
}

type executor struct {
	logger         *zap.SugaredLogger
	maxOutputBytes int64
}

func NewExecutor(maxOutputBytes int64) Executor {
	logger := logger.NewNamedLogger("executor")
	return &executor{logger: logger, maxOutputBytes: maxOutputBytes}
}

func (e *executor) Execute(ctx context.Context, command Command) Result {
	path, err := exec.LookPath(command.Path)
	if err != nil {
		e.logger.Warnf("Executable %s not found [MsgID: %s]: %s", command.Path, command.MessageID, err)
		return Result{
			ExitCode: -1,
			Err:      fmt.Errorf("%w: %s", customErr.ErrToolchainMissing, command.Path),
		}
	}

	if command.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(ctx, command.Timeout, errCommandTimeout)
		defer cancel()
	}

	stdout := newLimitedBuffer(e.maxOutputBytes)
	stderr := newLimitedBuffer(e.maxOutputBytes)

	cmd := exec.CommandContext(ctx, path, command.Args...)
	cmd.Dir = command.Dir
	cmd.Stdin = strings.NewReader(command.Stdin)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = waitDelay
	setProcessGroup(cmd)

	e.logger.Debugf("Running %s %v [MsgID: %s]", path, command.Args, command.MessageID)
	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	result := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: -1,
		Elapsed:  elapsed,
	}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	// The command's own deadline wins over whatever exit status the killed process reported.
	// A deadline inherited from the caller is reported as a plain context error.
	if errors.Is(context.Cause(ctx), errCommandTimeout) {
		e.logger.Infof("Process %s timed out after %s [MsgID: %s]", command.Path, elapsed, command.MessageID)
		result.TimedOut = true
		result.Err = customErr.ErrTimeLimitExceeded
		return result
	}
	if ctx.Err() != nil {
		result.Err = ctx.Err()
		return result
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			result.Err = fmt.Errorf("%w: %d", customErr.ErrNonZeroExitCode, result.ExitCode)
		} else {
			e.logger.Errorf("Failed to run %s [MsgID: %s]: %s", command.Path, command.MessageID, runErr)
			result.Err = runErr
		}
	}

	return result
}
