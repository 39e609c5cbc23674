// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"context"

	"github.com/rtlambda/rtlambda-go/lambda/rapi/model"
)

// InvocationBroker hands invocations to the runtime and collects what the
// runtime reports back.
type InvocationBroker interface {
	// Next blocks until an invocation is available or ctx is done.
	Next(ctx context.Context) (*model.Invocation, error)
	// Respond completes the outstanding invocation with a response payload.
	Respond(requestID string, payload []byte) error
	// Fail completes the outstanding invocation with an error document.
	Fail(requestID string, errorType string, payload []byte) error
	// InitFail records an error not tied to an invocation.
	InitFail(errorType string, payload []byte)
}
