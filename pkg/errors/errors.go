package errors

import "errors"

// Error messages.
var (
	ErrInvalidLanguageType   = errors.New("invalid language type")
	ErrInvalidMode           = errors.New("invalid grading mode")
	ErrEmptySourceCode       = errors.New("source code is empty")
	ErrNoTestCases           = errors.New("no test cases found for this problem")
	ErrNoPublicClass         = errors.New("no public class found in Java code")
	ErrToolchainMissing      = errors.New("toolchain executable not found")
	ErrCompilationFailed     = errors.New("compilation failed")
	ErrTimeLimitExceeded     = errors.New("time limit exceeded")
	ErrNonZeroExitCode       = errors.New("process exited with non-zero exit code")
	ErrFailedToGetFreeWorker = errors.New("failed to get free worker")
	ErrUnknownMessageType    = errors.New("unknown message type")
	ErrResponderClosed       = errors.New("responder is closed")
)
