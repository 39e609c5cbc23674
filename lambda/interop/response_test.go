// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package interop

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtlambda/rtlambda-go/lambda/testdata"
)

func invokeHeaders() http.Header {
	header := http.Header{}
	header.Set(RequestIDHeader, "8476a536-e9f4-11e8-9739-2dfe598c3fcd")
	header.Set(DeadlineMsHeader, "1542409706888")
	header.Set(FunctionArnHeader, "arn:aws:lambda:us-east-2:123456789012:function:custom-runtime")
	header.Set(TraceIDHeader, "Root=1-5bef4de7-ad49b0e87f6ef6c87fc2e700;Parent=9a9197af755a6419;Sampled=1")
	header.Set(ClientContextHeader, `{"client":{"installation_id":"id"}}`)
	header.Set(CognitoIdentityHeader, `{"cognitoIdentityId":"a","cognitoIdentityPoolId":"b"}`)
	return header
}

func TestNewInvocationResponseExtractsHeaders(t *testing.T) {
	resp, err := NewInvocationResponse(http.StatusOK, invokeHeaders(), strings.NewReader(`{"key":"value"}`))
	require.NoError(t, err)

	requestID, ok := resp.RequestID()
	assert.True(t, ok)
	assert.Equal(t, "8476a536-e9f4-11e8-9739-2dfe598c3fcd", requestID)

	deadline, ok := resp.Deadline()
	assert.True(t, ok)
	assert.Equal(t, int64(1542409706888), deadline.UnixMilli())

	arn, ok := resp.InvokedFunctionArn()
	assert.True(t, ok)
	assert.Equal(t, "arn:aws:lambda:us-east-2:123456789012:function:custom-runtime", arn)

	traceID, ok := resp.TraceID()
	assert.True(t, ok)
	assert.Contains(t, traceID, "Root=1-5bef4de7")

	clientContext, ok := resp.ClientContext()
	assert.True(t, ok)
	assert.JSONEq(t, `{"client":{"installation_id":"id"}}`, clientContext)

	cognito, ok := resp.CognitoIdentity()
	assert.True(t, ok)
	assert.JSONEq(t, `{"cognitoIdentityId":"a","cognitoIdentityPoolId":"b"}`, cognito)

	require.NotNil(t, resp.EventResponse())
	assert.Equal(t, `{"key":"value"}`, *resp.EventResponse())
	assert.Nil(t, resp.ErrorResponse())
}

func TestNewInvocationResponseMissingHeaders(t *testing.T) {
	resp, err := NewInvocationResponse(http.StatusOK, http.Header{}, nil)
	require.NoError(t, err)

	_, ok := resp.RequestID()
	assert.False(t, ok)
	_, ok = resp.Deadline()
	assert.False(t, ok)
	_, ok = resp.InvokedFunctionArn()
	assert.False(t, ok)
	_, ok = resp.TraceID()
	assert.False(t, ok)
	_, ok = resp.Body()
	assert.False(t, ok)

	// classification does not depend on the request id
	assert.True(t, resp.IsSuccess())
}

func TestMalformedDeadlineIsUnset(t *testing.T) {
	for _, value := range []string{"soon", "-5", "1.5", "99999999999999999999999"} {
		header := http.Header{}
		header.Set(RequestIDHeader, "id")
		header.Set(DeadlineMsHeader, value)

		resp, err := NewInvocationResponse(http.StatusOK, header, strings.NewReader("{}"))
		require.NoError(t, err, value)

		_, ok := resp.Deadline()
		assert.False(t, ok, value)
		requestID, _ := resp.RequestID()
		assert.Equal(t, "id", requestID)
	}
}

func TestUnreadableBodyIsTransportError(t *testing.T) {
	_, err := NewInvocationResponse(http.StatusOK, invokeHeaders(), &testdata.ReaderFailureMock{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport))
}

func TestClientErrorExposesErrorResponse(t *testing.T) {
	body := `{"errorMessage":"Invalid request ID","errorType":"InvalidRequestID"}`
	resp, err := NewInvocationResponse(http.StatusBadRequest, http.Header{}, strings.NewReader(body))
	require.NoError(t, err)

	assert.True(t, resp.IsClientErr())
	assert.True(t, resp.IsErr())
	assert.Nil(t, resp.EventResponse())
	require.NotNil(t, resp.ErrorResponse())
	assert.Equal(t, body, *resp.ErrorResponse())
}

func TestServerErrorHasNoPayloadAccessors(t *testing.T) {
	resp, err := NewInvocationResponse(http.StatusInternalServerError, http.Header{}, strings.NewReader("boom"))
	require.NoError(t, err)

	assert.True(t, resp.IsServerErr())
	assert.True(t, resp.IsErr())
	assert.Nil(t, resp.EventResponse())
	assert.Nil(t, resp.ErrorResponse())
	assert.Equal(t, ServerError, resp.Band())
	assert.Equal(t, "ServerError", resp.Band().String())
}

func TestStatusBandsAreExclusiveAndExhaustive(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("exactly one band for 100-599", prop.ForAll(
		func(code int) bool {
			resp, err := NewInvocationResponse(code, http.Header{}, nil)
			if err != nil {
				return false
			}
			band := resp.Band()
			matches := 0
			for _, b := range []StatusBand{Informational, Success, Redirection, ClientError, ServerError} {
				if band == b {
					matches++
				}
			}
			flags := 0
			for _, set := range []bool{resp.IsSuccess(), resp.IsClientErr(), resp.IsServerErr()} {
				if set {
					flags++
				}
			}
			return matches == 1 && flags <= 1 && resp.IsErr() == (resp.IsClientErr() || resp.IsServerErr())
		},
		gen.IntRange(100, 599),
	))

	properties.Property("success band only for 2xx", prop.ForAll(
		func(code int) bool {
			return BandOf(code) == Success
		},
		gen.IntRange(200, 299),
	))

	properties.Property("outside 100-599 is unknown", prop.ForAll(
		func(code int) bool {
			return BandOf(code) == Unknown
		},
		gen.OneGenOf(gen.IntRange(-1000, 99), gen.IntRange(600, 10000)),
	))

	properties.TestingRun(t)
}

func TestDeadlineIsAbsolute(t *testing.T) {
	deadline := time.Now().Add(3 * time.Second).Truncate(time.Millisecond)
	header := http.Header{}
	header.Set(DeadlineMsHeader, strconv.FormatInt(deadline.UnixMilli(), 10))

	resp, err := NewInvocationResponse(http.StatusOK, header, nil)
	require.NoError(t, err)

	got, ok := resp.Deadline()
	require.True(t, ok)
	assert.True(t, deadline.Equal(got))
}
