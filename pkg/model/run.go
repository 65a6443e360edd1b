package model

import "time"

// RunKind identifies the kind of ingestion run.
type RunKind int

const (
	RunKindDecode RunKind = iota
	RunKindParse
)

// String returns the string representation of RunKind.
func (k RunKind) String() string {
	switch k {
	case RunKindDecode:
		return "decode"
	case RunKindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// RunStatus represents the outcome of a run.
type RunStatus int

const (
	RunStatusOK RunStatus = iota
	RunStatusFailed
)

// String returns the string representation of RunStatus.
func (s RunStatus) String() string {
	switch s {
	case RunStatusOK:
		return "ok"
	case RunStatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Run records one decode or parse invocation for the history view.
type Run struct {
	ID         int64     `json:"id"`
	Kind       RunKind   `json:"kind"`
	InputFile  string    `json:"input_file"`
	Format     string    `json:"format,omitempty"`
	Records    int       `json:"records"`
	Status     RunStatus `json:"status"`
	StatusInfo string    `json:"status_info,omitempty"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}
