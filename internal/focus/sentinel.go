package focus

import (
	"errors"
	"fmt"
)

// Sentinel is a token returned by the focus script.
type Sentinel string

const (
	SentinelNotRunning Sentinel = "NOT_RUNNING"
	SentinelNotFound   Sentinel = "NOT_FOUND"
	SentinelFocused    Sentinel = "FOCUSED"
)

// ErrEmptyResponse is returned when the focus script printed nothing.
var ErrEmptyResponse = errors.New("focus window returned an empty response")

// UnexpectedResponseError carries a token outside the known sentinel set.
type UnexpectedResponseError struct {
	Response string
}

func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("unexpected osascript response: %s", e.Response)
}

// ParseSentinel maps raw script output to a Sentinel.
func ParseSentinel(raw string) (Sentinel, error) {
	switch s := Sentinel(raw); s {
	case SentinelNotRunning, SentinelNotFound, SentinelFocused:
		return s, nil
	case "":
		return "", ErrEmptyResponse
	default:
		return "", &UnexpectedResponseError{Response: raw}
	}
}
