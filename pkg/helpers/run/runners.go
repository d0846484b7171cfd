package run

import (
	"errors"
	"fmt"
)

// ErrPanic marks errors recovered from a panic that did not carry an error value.
var ErrPanic = errors.New("panic")

// WithError runs fn and turns a panic inside it into the returned error.
func WithError(fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = asError(p)
		}
	}()

	return fn()
}

// AsyncWithError runs fn in a new goroutine; the channel receives exactly one value, the result of fn.
func AsyncWithError(fn func() error) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- WithError(fn)
	}()

	return errCh
}

func asError(p interface{}) error {
	if perr, ok := p.(error); ok {
		return perr
	}
	return fmt.Errorf("%w: %v", ErrPanic, p)
}
