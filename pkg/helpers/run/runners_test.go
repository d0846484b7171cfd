package run

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func TestWithErrorReturnsResultOfFn(t *testing.T) {
	requires := require.New(t)

	requires.NoError(WithError(func() error { return nil }))
	requires.ErrorIs(WithError(func() error { return errBoom }), errBoom)
}

func TestWithErrorRecoversPanics(t *testing.T) {
	requires := require.New(t)

	var err error
	requires.NotPanics(func() {
		err = WithError(func() error { panic(errBoom) })
	})
	requires.ErrorIs(err, errBoom)
	requires.NotErrorIs(err, ErrPanic, "an error value is returned as it is")

	requires.NotPanics(func() {
		err = WithError(func() error { panic(42) })
	})
	requires.ErrorIs(err, ErrPanic)
	requires.EqualError(err, "panic: 42")

	requires.NotPanics(func() {
		err = WithError(func() error { panic("lost disk") })
	})
	requires.ErrorIs(err, ErrPanic)
	requires.EqualError(err, "panic: lost disk")
}

func TestAsyncWithErrorSendsExactlyOneValue(t *testing.T) {
	requires := require.New(t)

	done := AsyncWithError(func() error { return errBoom })

	select {
	case err := <-done:
		requires.ErrorIs(err, errBoom)
	case <-time.After(5 * time.Second):
		requires.FailNow("no result from the goroutine")
	}
	select {
	case err := <-done:
		requires.FailNow("unexpected second value", "%v", err)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestAsyncWithErrorPublishesCapturedResult(t *testing.T) {
	requires := require.New(t)

	var (
		result []string
		err    error
	)
	done := AsyncWithError(func() error {
		result = []string{"copied"}
		return nil
	})
	err = <-done

	requires.NoError(err)
	requires.Equal([]string{"copied"}, result, "values set by fn are visible once the channel delivers")
}

func TestAsyncWithErrorRecoversPanics(t *testing.T) {
	requires := require.New(t)

	err := <-AsyncWithError(func() error { panic("worker died") })

	requires.ErrorIs(err, ErrPanic)
	requires.EqualError(err, "panic: worker died")
}
