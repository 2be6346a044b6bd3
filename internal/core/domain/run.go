package domain

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus is the terminal state of an inference invocation.
type RunStatus string

const (
	RunStatusSucceeded RunStatus = "SUCCEEDED"
	RunStatusFailed    RunStatus = "FAILED"
)

// InferenceRun is one recorded fast-inference invocation: which endpoint was
// called, with how many rows, how long it took and how it ended.
type InferenceRun struct {
	ID           uuid.UUID
	CreatedAt    time.Time
	EndpointName string
	InputRows    int
	OutputRows   int
	LatencyMS    int64
	Status       RunStatus
	Error        string
}
