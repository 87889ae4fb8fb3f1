package models

import (
	"encoding/json"
)

// Status is the state of the most recent extraction attempt in a session.
type Status int

const (
	StatusIdle Status = iota
	StatusExtracting
	StatusCompleted
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusExtracting:
		return "extracting"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
