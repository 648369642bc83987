package solution

import "fmt"

type Status int

const (
	// All consumed test cases passed.
	Accepted Status = iota + 1
	// The program ran cleanly but its output did not match.
	WrongAnswer
	// The program exceeded its run budget.
	TimeLimitExceeded
	// The program exited with a non-zero code, or could not be started.
	RuntimeError
	// The source failed to build.
	CompilationError
)

var statusNames = map[Status]string{
	Accepted:          "Accepted",
	WrongAnswer:       "Wrong Answer",
	TimeLimitExceeded: "Time Limit Exceeded",
	RuntimeError:      "Runtime Error",
	CompilationError:  "Compilation Error",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return ""
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for status, name := range statusNames {
		if name == string(text) {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", string(text))
}

type TestResult struct {
	Input          string  `json:"input"`
	ExpectedOutput string  `json:"expected_output"`
	ActualOutput   *string `json:"actual_output"` // nil when the run failed
	Passed         bool    `json:"passed"`
	Error          *string `json:"error"`
	ExecutionTime  float64 `json:"execution_time"` // seconds
	IsHidden       bool    `json:"is_hidden"`
	// Classification of this case; Accepted when it passed.
	Status Status `json:"status"`
}

// Result is the aggregate verdict of one grading run.
// Status is only set in submit mode.
type Result struct {
	Success       bool         `json:"success"`
	Status        Status       `json:"status,omitempty"`
	Message       string       `json:"message"`
	TestResults   []TestResult `json:"test_results"`
	TotalTests    int          `json:"total_tests"`
	PassedTests   int          `json:"passed_tests"`
	ExecutionTime float64      `json:"execution_time"` // sum of the per-case execution times
}
