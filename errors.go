package siq

import (
	"errors"
	"fmt"
)

var (
	ErrArchive         = errors.New("siq: archive error")
	ErrParse           = errors.New("siq: parse error")
	ErrUnknownResource = errors.New("siq: unknown resource")
	ErrLimitExceeded   = errors.New("siq: limit exceeded")
	ErrValidation      = errors.New("siq: validation failed")
)

// UnknownResourceError reports a container member that is neither a reserved
// member nor under a resource category directory. It never aborts a load.
type UnknownResourceError struct {
	Path string
}

func (e *UnknownResourceError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnknownResource, e.Path)
}

func (e *UnknownResourceError) Unwrap() error { return ErrUnknownResource }
