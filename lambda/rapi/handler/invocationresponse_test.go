// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-lambda-go/events/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/tidwall/gjson"

	"github.com/rtlambda/rtlambda-go/lambda/interop"
	"github.com/rtlambda/rtlambda-go/lambda/rapi/model"
)

func TestResponseTooLarge(t *testing.T) {
	broker := NewMockInvocationBroker(t)
	var reported []byte
	broker.On("Fail", "InvocationID1", functionResponseSizeTooLargeType, mock.Anything).
		Run(func(args mock.Arguments) { reported = args.Get(2).([]byte) }).
		Return(nil).Once()

	handler := NewInvocationResponseHandler(broker)
	responseRecorder := httptest.NewRecorder()

	var responseBody = make([]byte, interop.MaxPayloadSize+1)
	request := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(responseBody))
	request = addInvocationID(request, "InvocationID1")
	handler.ServeHTTP(responseRecorder, request)

	assert.Equal(t, http.StatusRequestEntityTooLarge, responseRecorder.Code)

	expectedAPIResponse := fmt.Sprintf("{\"errorMessage\":\"Exceeded maximum allowed payload size (%d bytes).\",\"errorType\":\"RequestEntityTooLarge\"}\n", interop.MaxPayloadSize)
	body, err := io.ReadAll(responseRecorder.Body)
	assert.NoError(t, err)
	test.AssertJsonsEqual(t, []byte(expectedAPIResponse), body)

	assert.Equal(t, functionResponseSizeTooLargeType, gjson.GetBytes(reported, "errorType").String())
	broker.AssertNotCalled(t, "Respond", mock.Anything, mock.Anything)
}

func TestResponseAccepted(t *testing.T) {
	broker := NewMockInvocationBroker(t)
	broker.On("Respond", "InvocationID1", []byte(`{"message":"hello"}`)).Return(nil).Once()

	handler := NewInvocationResponseHandler(broker)
	responseRecorder := httptest.NewRecorder()

	request := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte(`{"message":"hello"}`)))
	request = addInvocationID(request, "InvocationID1")
	handler.ServeHTTP(responseRecorder, request)

	assert.Equal(t, http.StatusAccepted, responseRecorder.Code)
	test.AssertJsonsEqual(t, []byte(`{"status":"OK"}`), responseRecorder.Body.Bytes())
}

func TestResponseRejected(t *testing.T) {
	cases := []struct {
		name       string
		brokerErr  error
		statusCode int
		errorType  string
	}{
		{"unknown request id", model.ErrInvalidRequestID, http.StatusBadRequest, "InvalidRequestID"},
		{"no outstanding invocation", model.ErrNoInvocation, http.StatusForbidden, "InvalidStateTransition"},
		{"unexpected failure", assert.AnError, http.StatusInternalServerError, "InternalServerError"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			broker := NewMockInvocationBroker(t)
			broker.On("Respond", "InvocationID1", mock.Anything).Return(tc.brokerErr).Once()

			responseRecorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("1")))
			NewInvocationResponseHandler(broker).ServeHTTP(responseRecorder, addInvocationID(request, "InvocationID1"))

			assert.Equal(t, tc.statusCode, responseRecorder.Code)
			assert.Equal(t, tc.errorType, gjson.GetBytes(responseRecorder.Body.Bytes(), "errorType").String())
		})
	}
}
