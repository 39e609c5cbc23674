// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package execctx exposes per-invocation metadata to handlers. An
// ExecutionContext only borrows the loop's environment snapshot and the
// current invocation response; it is built for one invocation and must not
// be retained after the handler returns.
package execctx

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"

	"github.com/rtlambda/rtlambda-go/lambda/env"
	"github.com/rtlambda/rtlambda-go/lambda/interop"
)

// ExecutionContext combines container-level and invocation-level metadata.
type ExecutionContext struct {
	env  *env.Snapshot
	resp *interop.InvocationResponse
	now  func() time.Time
}

// New returns an ExecutionContext over snapshot and resp.
func New(snapshot *env.Snapshot, resp *interop.InvocationResponse) *ExecutionContext {
	return &ExecutionContext{env: snapshot, resp: resp, now: time.Now}
}

// WithClock overrides the clock used by RemainingTime.
func (c *ExecutionContext) WithClock(now func() time.Time) *ExecutionContext {
	c.now = now
	return c
}

// RemainingTime returns the time left before the invocation deadline.
func (c *ExecutionContext) RemainingTime() (time.Duration, error) {
	deadline, ok := c.resp.Deadline()
	if !ok {
		return 0, interop.NewError(interop.ErrMissingDeadline, interop.ErrMissingDeadline.Error())
	}
	now := c.now()
	if now.After(deadline) {
		return 0, interop.Errorf(interop.ErrDeadlinePassed, "%s: deadline %s passed at %s",
			interop.ErrDeadlinePassed, deadline.UTC().Format(time.RFC3339Nano), now.UTC().Format(time.RFC3339Nano))
	}
	return deadline.Sub(now), nil
}

func (c *ExecutionContext) Deadline() (time.Time, bool)       { return c.resp.Deadline() }
func (c *ExecutionContext) InvokedFunctionArn() (string, bool) { return c.resp.InvokedFunctionArn() }
func (c *ExecutionContext) AwsRequestID() (string, bool)       { return c.resp.RequestID() }
func (c *ExecutionContext) TraceID() (string, bool)            { return c.resp.TraceID() }
func (c *ExecutionContext) ClientContext() (string, bool)      { return c.resp.ClientContext() }
func (c *ExecutionContext) CognitoIdentity() (string, bool)    { return c.resp.CognitoIdentity() }

func (c *ExecutionContext) FunctionName() (string, bool)    { return c.env.FunctionName() }
func (c *ExecutionContext) FunctionVersion() (string, bool) { return c.env.FunctionVersion() }
func (c *ExecutionContext) MemoryLimitInMB() (int, bool)    { return c.env.FunctionMemorySize() }
func (c *ExecutionContext) LogGroupName() (string, bool)    { return c.env.LogGroupName() }
func (c *ExecutionContext) LogStreamName() (string, bool)   { return c.env.LogStreamName() }

// Env gives read access to the rest of the container environment.
func (c *ExecutionContext) Env() *env.Snapshot {
	return c.env
}

// ParseClientContext decodes the Lambda-Runtime-Client-Context blob.
// An absent header yields the zero value.
func (c *ExecutionContext) ParseClientContext() (lambdacontext.ClientContext, error) {
	var cc lambdacontext.ClientContext
	raw, ok := c.resp.ClientContext()
	if !ok {
		return cc, nil
	}
	if err := json.Unmarshal([]byte(raw), &cc); err != nil {
		return cc, interop.WrapError(interop.ErrSerialization, "failed to parse client context", err)
	}
	return cc, nil
}

// ParseCognitoIdentity decodes the Lambda-Runtime-Cognito-Identity blob.
// An absent header yields the zero value.
func (c *ExecutionContext) ParseCognitoIdentity() (lambdacontext.CognitoIdentity, error) {
	var id lambdacontext.CognitoIdentity
	raw, ok := c.resp.CognitoIdentity()
	if !ok {
		return id, nil
	}
	if err := json.Unmarshal([]byte(raw), &id); err != nil {
		return id, interop.WrapError(interop.ErrSerialization, "failed to parse cognito identity", err)
	}
	return id, nil
}

type ctxKey int

const executionContextKey ctxKey = iota

// Context returns a child of parent carrying c and the equivalent
// aws-lambda-go LambdaContext. Blobs that fail to parse are left empty.
// No deadline is attached.
func (c *ExecutionContext) Context(parent context.Context) context.Context {
	lc := &lambdacontext.LambdaContext{}
	lc.AwsRequestID, _ = c.AwsRequestID()
	lc.InvokedFunctionArn, _ = c.InvokedFunctionArn()
	lc.Identity, _ = c.ParseCognitoIdentity()
	lc.ClientContext, _ = c.ParseClientContext()

	ctx := lambdacontext.NewContext(parent, lc)
	return context.WithValue(ctx, executionContextKey, c)
}

// FromContext returns the ExecutionContext stored by Context.
func FromContext(ctx context.Context) (*ExecutionContext, bool) {
	c, ok := ctx.Value(executionContextKey).(*ExecutionContext)
	return c, ok
}
