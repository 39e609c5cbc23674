// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rapi

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rtlambda/rtlambda-go/lambda/rapi/handler"
	"github.com/rtlambda/rtlambda-go/lambda/rapi/model"
)

// DefaultInvokeTimeout is the function timeout used when InvokeOptions has none.
const DefaultInvokeTimeout = 3 * time.Second

// ErrInitFailed is returned by Invoke once the runtime has reported an
// initialization error.
var ErrInitFailed = errors.New("runtime reported an initialization error")

// InvokeOptions carry the invocation metadata rendered to the runtime.
type InvokeOptions struct {
	Timeout            time.Duration
	InvokedFunctionArn string
	TraceID            string
	ClientContext      string
	CognitoIdentity    string
	ContentType        string
}

type pendingInvoke struct {
	invoke *model.Invocation
	result chan *model.Report
}

// Dispatcher queues invocations for the runtime one at a time and routes the
// runtime's reports back to the waiting caller.
type Dispatcher struct {
	queue chan *pendingInvoke
	now   func() time.Time

	mutex      sync.Mutex
	current    *pendingInvoke
	initReport *model.Report
	initFailed chan struct{}
	initOnce   sync.Once
}

var _ handler.InvocationBroker = (*Dispatcher)(nil)

// NewDispatcher returns an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		queue:      make(chan *pendingInvoke),
		now:        time.Now,
		initFailed: make(chan struct{}),
	}
}

// Invoke hands payload to the runtime on its next poll and waits for the
// runtime's response or error report.
func (d *Dispatcher) Invoke(ctx context.Context, payload []byte, opts InvokeOptions) (*model.Report, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultInvokeTimeout
	}

	pending := &pendingInvoke{
		invoke: &model.Invocation{
			RequestID:          uuid.New().String(),
			Payload:            payload,
			ContentType:        opts.ContentType,
			DeadlineMs:         d.now().Add(timeout).UnixMilli(),
			InvokedFunctionArn: opts.InvokedFunctionArn,
			TraceID:            opts.TraceID,
			ClientContext:      opts.ClientContext,
			CognitoIdentity:    opts.CognitoIdentity,
		},
		result: make(chan *model.Report, 1),
	}

	select {
	case d.queue <- pending:
	case <-d.initFailed:
		return d.loadInitReport(), ErrInitFailed
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case report := <-pending.result:
		return report, nil
	case <-d.initFailed:
		return d.loadInitReport(), ErrInitFailed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Next implements handler.InvocationBroker.
func (d *Dispatcher) Next(ctx context.Context) (*model.Invocation, error) {
	select {
	case pending := <-d.queue:
		d.mutex.Lock()
		d.current = pending
		d.mutex.Unlock()
		return pending.invoke, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Respond implements handler.InvocationBroker.
func (d *Dispatcher) Respond(requestID string, payload []byte) error {
	return d.complete(&model.Report{RequestID: requestID, Payload: payload})
}

// Fail implements handler.InvocationBroker.
func (d *Dispatcher) Fail(requestID string, errorType string, payload []byte) error {
	return d.complete(&model.Report{RequestID: requestID, Failed: true, ErrorType: errorType, Payload: payload})
}

func (d *Dispatcher) complete(report *model.Report) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.current == nil {
		return model.ErrNoInvocation
	}
	if d.current.invoke.RequestID != report.RequestID {
		return model.ErrInvalidRequestID
	}

	d.current.result <- report
	d.current = nil
	return nil
}

// InitFail implements handler.InvocationBroker. Every waiting and future
// Invoke fails with ErrInitFailed afterwards.
func (d *Dispatcher) InitFail(errorType string, payload []byte) {
	d.mutex.Lock()
	d.initReport = &model.Report{Failed: true, ErrorType: errorType, Payload: payload}
	d.mutex.Unlock()

	d.initOnce.Do(func() { close(d.initFailed) })
}

// InitError returns the last initialization error reported by the runtime.
func (d *Dispatcher) InitError() (*model.Report, bool) {
	report := d.loadInitReport()
	return report, report != nil
}

func (d *Dispatcher) loadInitReport() *model.Report {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.initReport
}
