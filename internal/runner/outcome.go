package runner

import (
	"time"

	customErr "github.com/mini-maxit/grader/pkg/errors"
)

// Kind classifies why a run produced no output.
type Kind int

const (
	KindToolchainMissing Kind = iota + 1
	KindCompilation
	KindRuntime
	KindTimeout
	KindMalformed
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindToolchainMissing:
		return "toolchain_missing"
	case KindCompilation:
		return "compilation"
	case KindRuntime:
		return "runtime"
	case KindTimeout:
		return "timeout"
	case KindMalformed:
		return "malformed"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// RunError is the failure half of an Outcome. Message is the text shown to the user.
type RunError struct {
	Kind    Kind
	Message string
}

func (e *RunError) Error() string {
	return e.Message
}

func (e *RunError) Unwrap() error {
	switch e.Kind {
	case KindToolchainMissing:
		return customErr.ErrToolchainMissing
	case KindCompilation:
		return customErr.ErrCompilationFailed
	case KindRuntime:
		return customErr.ErrNonZeroExitCode
	case KindTimeout:
		return customErr.ErrTimeLimitExceeded
	case KindMalformed:
		return customErr.ErrNoPublicClass
	default:
		return nil
	}
}

// Outcome is the result of one runner invocation. Exactly one of Stdout and Err is meaningful:
// when Err is nil the run exited cleanly and Stdout holds its output, possibly empty.
type Outcome struct {
	Stdout  string
	Err     *RunError
	Elapsed time.Duration
}

func (o Outcome) Failed() bool {
	return o.Err != nil
}

func failure(kind Kind, message string) Outcome {
	return Outcome{Err: &RunError{Kind: kind, Message: message}}
}
