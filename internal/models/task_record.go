package models

import "time"

// TaskRecord is one journaled task execution.
type TaskRecord struct {
	ID           string        `json:"id" yaml:"id"`
	Sequence     int           `json:"sequence" yaml:"sequence"`
	DaemonName   string        `json:"daemon_name" yaml:"daemon_name"`
	Daemon       Daemon        `json:"daemon" yaml:"daemon"`
	Method       string        `json:"method" yaml:"method"`
	Target       string        `json:"target,omitempty" yaml:"target,omitempty"`
	Success      bool          `json:"success" yaml:"success"`
	ErrorType    string        `json:"error_type,omitempty" yaml:"error_type,omitempty"`
	ErrorMessage string        `json:"error_message,omitempty" yaml:"error_message,omitempty"`
	StartedAt    time.Time     `json:"started_at" yaml:"started_at"`
	Duration     time.Duration `json:"duration" yaml:"duration"`
}

// Outcome returns "success" or "failure".
func (r TaskRecord) Outcome() string {
	if r.Success {
		return "success"
	}
	return "failure"
}
