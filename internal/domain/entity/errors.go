package entity

import (
	"errors"
	"fmt"
)

var (
	ErrNoChoices = errors.New("no choices in completion response")
	ErrNoImages  = errors.New("no images in generation response")
)

// UpstreamError covers every failure of the external generative service:
// transport, authentication, status and malformed payloads alike.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func NewUpstreamError(op string, err error) *UpstreamError {
	return &UpstreamError{Op: op, Err: err}
}

func IsUpstreamError(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
