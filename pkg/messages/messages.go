package messages

import (
	"encoding/json"

	"github.com/mini-maxit/grader/pkg/constants"
	"github.com/mini-maxit/grader/pkg/languages"
)

type QueueMessage struct {
	Type      string          `json:"type"`
	MessageID string          `json:"message_id"`
	Payload   json.RawMessage `json:"payload"`
}

// TestCase is a single input/expected-output pair supplied by the problem store.
type TestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output"`
	IsHidden       bool   `json:"is_hidden"`
}

type TaskQueueMessage struct {
	// Mode is either "trial" (public cases only, no early stop) or "submit".
	Mode         string     `json:"mode"`
	ProblemID    int64      `json:"problem_id,omitempty"`
	LanguageType string     `json:"language_type"`
	SourceCode   string     `json:"source_code"`
	TestCases    []TestCase `json:"test_cases"`
}

type ResponseQueueMessage struct {
	Type      string          `json:"type"`
	MessageID string          `json:"message_id"`
	Ok        bool            `json:"ok"`
	Payload   json.RawMessage `json:"payload"`
}

type WorkerStatus struct {
	WorkerID            int                    `json:"worker_id"`
	Status              constants.WorkerStatus `json:"status"`
	ProcessingMessageID string                 `json:"processing_message_id,omitempty"`
}

type ResponseWorkerStatusPayload struct {
	BusyWorkers  int            `json:"busy_workers"`
	TotalWorkers int            `json:"total_workers"`
	WorkerStatus []WorkerStatus `json:"worker_status"`
}

type ResponseHandshakePayload struct {
	Languages []languages.LanguageSpec `json:"languages"`
}
