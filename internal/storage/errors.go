package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrLocked is returned when another process holds the store lock.
	ErrLocked = errors.New("store is locked by another process")
	// ErrUnknownBackend is returned for an unsupported store name.
	ErrUnknownBackend = errors.New("unknown store backend")
)

// OpError records a failed storage operation and the path involved.
type OpError struct {
	Op   string
	Path string
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return ""
	}
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func wrapErr(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Path: path, Err: err}
}
