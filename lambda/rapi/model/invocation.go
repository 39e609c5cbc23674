// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package model

import "errors"

var (
	// ErrNoInvocation is returned for a report that arrives while no
	// invocation is outstanding.
	ErrNoInvocation = errors.New("no invocation is outstanding")
	// ErrInvalidRequestID is returned for a report naming a request id other
	// than the outstanding one.
	ErrInvalidRequestID = errors.New("invalid request id")
)

// Invocation is one event handed to the runtime by /runtime/invocation/next.
type Invocation struct {
	RequestID          string
	Payload            []byte
	ContentType        string
	DeadlineMs         int64
	InvokedFunctionArn string
	TraceID            string
	ClientContext      string
	CognitoIdentity    string
}

// Report is what the runtime posted back: a response, an invocation error or
// an initialization error. RequestID is empty for initialization errors.
type Report struct {
	RequestID string
	Failed    bool
	ErrorType string
	Payload   []byte
}
