package middleware

import "errors"

// ErrRetryExhausted is returned by the retry middleware when all retry
// attempts have been consumed without a successful response. The error is
// wrapped together with the last underlying provider error so callers can use
// [errors.Is] / [errors.As] to inspect the root cause.
var ErrRetryExhausted = errors.New("middleware: all retry attempts exhausted")
