// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rapi

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtlambda/rtlambda-go/lambda/rapi/model"
)

func TestDispatcherIssuesDeadlineAndUUID(t *testing.T) {
	dispatcher := NewDispatcher()
	now := time.UnixMilli(1542409700000)
	dispatcher.now = func() time.Time { return now }

	startInvoke(t, dispatcher, "{}")
	invoke, err := dispatcher.Next(context.Background())
	require.NoError(t, err)

	_, err = uuid.Parse(invoke.RequestID)
	assert.NoError(t, err)
	assert.Equal(t, now.Add(DefaultInvokeTimeout).UnixMilli(), invoke.DeadlineMs)
}

func TestDispatcherReportWithoutInvocation(t *testing.T) {
	dispatcher := NewDispatcher()
	assert.ErrorIs(t, dispatcher.Respond("abc", nil), model.ErrNoInvocation)
	assert.ErrorIs(t, dispatcher.Fail("abc", "Function.Unknown", nil), model.ErrNoInvocation)
}

func TestDispatcherInitFailureReleasesInvoke(t *testing.T) {
	dispatcher := NewDispatcher()
	outcomes := startInvoke(t, dispatcher, "{}")

	_, err := dispatcher.Next(context.Background())
	require.NoError(t, err)
	dispatcher.InitFail("Runtime.ExitError", []byte(`{"errorMessage":"bye"}`))

	outcome := <-outcomes
	assert.ErrorIs(t, outcome.err, ErrInitFailed)
	require.NotNil(t, outcome.report)
	assert.Equal(t, "Runtime.ExitError", outcome.report.ErrorType)

	_, err = dispatcher.Invoke(context.Background(), []byte("{}"), InvokeOptions{})
	assert.ErrorIs(t, err, ErrInitFailed)
}

func TestDispatcherInvokeHonoursContext(t *testing.T) {
	dispatcher := NewDispatcher()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := dispatcher.Invoke(ctx, []byte("{}"), InvokeOptions{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = dispatcher.Next(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
