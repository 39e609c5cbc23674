// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package interop

import (
	"errors"
	"fmt"
)

// Error is the single error kind used across the runtime. It carries a
// human-readable message and, optionally, the condition it belongs to and
// the underlying failure.
type Error struct {
	Msg   string
	Kind  error
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", e.Msg, e.Cause)
	}
	return e.Msg
}

// Is matches the condition sentinel, so callers can branch with errors.Is.
func (e *Error) Is(target error) bool {
	return e.Kind != nil && e.Kind == target
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError returns an Error of the given kind.
func NewError(kind error, msg string) *Error {
	return &Error{Msg: msg, Kind: kind}
}

// WrapError returns an Error of the given kind wrapping cause.
func WrapError(kind error, msg string, cause error) *Error {
	return &Error{Msg: msg, Kind: kind, Cause: cause}
}

// Errorf formats an Error of the given kind.
func Errorf(kind error, format string, args ...interface{}) *Error {
	return &Error{Msg: fmt.Sprintf(format, args...), Kind: kind}
}

// ErrTransport is returned for I/O or protocol failures of a transport call,
// including a reply body that cannot be read.
var ErrTransport = errors.New("ErrTransport")

// ErrSerialization is returned when a handler output cannot be serialized.
var ErrSerialization = errors.New("ErrSerialization")

// ErrClient is returned when the Runtime API answers with a 4xx status.
var ErrClient = errors.New("ErrClient")

// ErrContainer is returned when the Runtime API answers with a 5xx status.
// The execution environment is condemned and will be recycled.
var ErrContainer = errors.New("Container error. Non-recoverable state.")

// ErrMissingRequestID is returned when a next-invocation reply carries no
// Lambda-Runtime-Aws-Request-Id header.
var ErrMissingRequestID = errors.New("Missing Lambda-Runtime-Aws-Request-Id header")

// ErrMissingDeadline is returned by remaining-time arithmetic when the
// invocation carried no deadline.
var ErrMissingDeadline = errors.New("Missing deadline info")

// ErrDeadlinePassed is returned by remaining-time arithmetic when the
// deadline is already in the past.
var ErrDeadlinePassed = errors.New("Duration error")

// ErrMissingRuntimeAPI is returned when AWS_LAMBDA_RUNTIME_API is not set.
var ErrMissingRuntimeAPI = errors.New("Failed getting API base URL from env vars")

// FatalError marks a condition after which the process must stop serving:
// a 5xx from the Runtime API, a failed poll or a failed initializer.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal: %s", e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// Fatal wraps err as a FatalError. Wrapping an already fatal error is a no-op.
func Fatal(err error) error {
	if err == nil || IsFatal(err) {
		return err
	}
	return &FatalError{Err: err}
}

// IsFatal reports whether err, or any error it wraps, is a FatalError.
func IsFatal(err error) bool {
	var fatal *FatalError
	return errors.As(err, &fatal)
}
