package constants

import "fmt"

// Queue message types.
const (
	QueueMessageTypeTask      = "task"
	QueueMessageTypeHandshake = "handshake"
	QueueMessageTypeStatus    = "status"
)

// Grading modes carried in task messages.
const (
	ModeTrial  = "trial"
	ModeSubmit = "submit"
)

// Trial mode messages.
const (
	TrialMessagePassed      = "Passed %d/%d test cases"
	TrialMessageFailed      = "Failed %d test case(s)"
	TrialMessageNoTestCases = "No test cases found for this problem"
)

// Submit mode messages.
const (
	SubmitMessageAccepted          = "Accepted! All %d test cases passed."
	SubmitMessageWrongAnswer       = "Wrong Answer. Passed %d/%d test cases."
	SubmitMessageTimeLimitExceeded = "Time Limit Exceeded."
	SubmitMessageRuntimeError      = "Runtime Error."
	SubmitMessageCompilationError  = "Compilation Error."
)

// Runner error messages.
const (
	RunnerMessageTimeout         = "Execution timed out (%d seconds limit)"
	RunnerMessageCompileTimeout  = "Compilation timed out (%d seconds limit)"
	RunnerMessageCompilation     = "Compilation error: %s"
	RunnerMessageNonZeroExitCode = "Process exited with code %d"
	RunnerMessageNoPublicClass   = "No public class found in Java code"
)

// Toolchain missing messages, one per language.
const (
	ToolchainMissingPython     = "python3 interpreter not found. Please install Python 3 to run Python code."
	ToolchainMissingJavaScript = "Node.js not found. Please install Node.js to run JavaScript code."
	ToolchainMissingCpp        = "g++ compiler not found. Please install GCC to compile C++ code."
	ToolchainMissingJava       = "Java compiler not found. Please install JDK to compile Java code."
	ToolchainMissingC          = "gcc compiler not found. Please install GCC to compile C code."
)

// Worker specific constants.
type WorkerStatus int

const (
	WorkerStatusIdle WorkerStatus = iota
	WorkerStatusBusy
)

func (ws WorkerStatus) String() string {
	switch ws {
	case WorkerStatusIdle:
		return "idle"
	case WorkerStatusBusy:
		return "busy"
	default:
		return "unknown"
	}
}

func (ws WorkerStatus) MarshalText() ([]byte, error) {
	return []byte(ws.String()), nil
}

func (ws *WorkerStatus) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*ws = WorkerStatusIdle
	case "busy":
		*ws = WorkerStatusBusy
	default:
		return fmt.Errorf("unknown worker status %q", string(text))
	}
	return nil
}

// Exit codes.
const (
	ExitCodeSuccess = 0
)

// Configuration constants.
const (
	DefaultRabbitmqEnabled         = true
	DefaultRabbitmqHost            = "localhost"
	DefaultRabbitmqUser            = "guest"
	DefaultRabbitmqPassword        = "guest"
	DefaultRabbitmqPort            = "5672"
	DefaultRabbitmqPublishChanSize = 100
	DefaultWorkerQueueName         = "grader_queue"
	DefaultMaxWorkers              = 10
	DefaultHTTPEnabled             = true
	DefaultHTTPAddr                = ":8080"
	DefaultCompileTimeoutSec       = 10
	DefaultRunTimeoutSec           = 5
	DefaultMaxOutputBytes          = 10 * 1024 * 1024 // 10 MB per stream
	DefaultPythonBin               = "python3"
	DefaultNodeBin                 = "node"
	DefaultGccBin                  = "gcc"
	DefaultGppBin                  = "g++"
	DefaultJavacBin                = "javac"
	DefaultJavaBin                 = "java"
)

// Workspace layout.
const (
	WorkspaceDirPrefix   = "submission-"
	SolutionFileBaseName = "solution"
	CompileErrFileName   = "compile.err"
)

// RabbitMQ specific constants.
const (
	RabbitMQReconnectTries  = 10
	RabbitMQMaxPriority     = 3
	RabbitMQRequeuePriority = 2
)

// HTTP specific constants.
const (
	RequestIDHeader       = "X-Request-ID"
	MaxRequestBodyBytes   = 4 * 1024 * 1024
	HTTPShutdownTimeout   = 10
	HTTPReadHeaderTimeout = 5
)
