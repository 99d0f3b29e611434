package waiter

import (
	"errors"
	"fmt"
	"time"
)

var ErrTimeout = errors.New("wait timed out")

// TimeoutError is returned when a condition never held within the timeout,
// or when an action kept hitting stale elements until the retries ran out.
type TimeoutError struct {
	Target    string
	Condition string
	Timeout   time.Duration
	Message   string
	// Attempts and Elapsed are set when the error comes from an exhausted
	// retry. Timeout is then the per-wait timeout and was not reached.
	Attempts int
	Elapsed  time.Duration
	// Err is the last error seen while polling, if any.
	Err error
}

func (e *TimeoutError) Error() string {
	var msg string
	if e.Attempts > 0 {
		msg = fmt.Sprintf("gave up waiting for %s to be %s (%d attempts in %s)",
			e.Target, e.Condition, e.Attempts, e.Elapsed.Round(time.Millisecond))
	} else {
		msg = fmt.Sprintf("timed out after %s waiting for %s to be %s", e.Timeout, e.Target, e.Condition)
	}
	if e.Message != "" {
		msg = e.Message + ": " + msg
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}
