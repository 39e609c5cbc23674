// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package fatalerror

import (
	"errors"
	"reflect"
)

// This package defines the error types the runtime reports to the Runtime API
// in the Lambda-Runtime-Function-Error-Type header.
// Separate package for namespacing

// ErrorType is sent in Lambda-Runtime-Function-Error-Type
type ErrorType string

const (
	RuntimeInitError          ErrorType = "Runtime.InitError"          // initializer returned an error
	RuntimeExit               ErrorType = "Runtime.ExitError"          // runtime is exiting after a fatal poll failure
	RuntimeMissingRequestID   ErrorType = "Runtime.MissingRequestId"   // next invocation carried no request id
	RuntimeSerializationError ErrorType = "Runtime.SerializationError" // handler output could not be serialized
	RuntimeHandlerPanic       ErrorType = "Runtime.HandlerPanic"       // handler panicked
	FunctionUnknown           ErrorType = "Function.Unknown"
	Unknown                   ErrorType = "Unknown"
)

// typedError is implemented by handler errors that name their own type.
type typedError interface {
	ErrorType() string
}

// FromError derives the reported error type of a handler error: the
// ErrorType method when the error has one, otherwise the Go type name.
func FromError(err error) ErrorType {
	if err == nil {
		return Unknown
	}

	var typed typedError
	if errors.As(err, &typed) {
		if t := typed.ErrorType(); t != "" {
			return ErrorType(t)
		}
	}

	errType := reflect.TypeOf(err)
	if errType.Kind() == reflect.Ptr {
		errType = errType.Elem()
	}
	if name := errType.Name(); name != "" {
		return ErrorType(name)
	}
	return FunctionUnknown
}
