// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package loop

import (
	"encoding/json"
	"errors"
	"fmt"
	"runtime"

	"github.com/aws/aws-lambda-go/lambda/messages"

	"github.com/rtlambda/rtlambda-go/lambda/fatalerror"
)

// maxStackFrames bounds the stack trace attached to a panic report.
const maxStackFrames = 32

type panicError struct {
	value interface{}
	stack []*messages.InvokeResponse_Error_StackFrame
}

func newPanicError(value interface{}) *panicError {
	// skip runtime.Callers, callerFrames and newPanicError
	return &panicError{value: value, stack: callerFrames(3)}
}

func (e *panicError) Error() string {
	return fmt.Sprintf("%v", e.value)
}

func (e *panicError) ErrorType() string {
	return string(fatalerror.RuntimeHandlerPanic)
}

func callerFrames(skip int) []*messages.InvokeResponse_Error_StackFrame {
	pcs := make([]uintptr, maxStackFrames)
	n := runtime.Callers(skip, pcs)
	if n == 0 {
		return nil
	}

	var stack []*messages.InvokeResponse_Error_StackFrame
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		stack = append(stack, &messages.InvokeResponse_Error_StackFrame{
			Path:  frame.File,
			Line:  int32(frame.Line),
			Label: frame.Function,
		})
		if !more {
			break
		}
	}
	return stack
}

// errorBody renders the JSON error document posted to /error and /init/error.
func errorBody(err error, errorType fatalerror.ErrorType) string {
	payload := messages.InvokeResponse_Error{
		Message: err.Error(),
		Type:    string(errorType),
	}

	var panicked *panicError
	if errors.As(err, &panicked) {
		payload.StackTrace = panicked.stack
	}

	body, marshalErr := json.Marshal(payload)
	if marshalErr != nil {
		return err.Error()
	}
	return string(body)
}
