// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtlambda/rtlambda-go/lambda/interop"
)

var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9-]*$`)

func FuzzInitErrorHandler(f *testing.F) {
	f.Add([]byte(`{"errorMessage":"boom","errorType":"Runtime.InitError"}`), []byte("Runtime.InitError"))
	f.Add([]byte(""), []byte(""))
	f.Add([]byte("not json"), []byte("Runtime.ExitError"))

	f.Fuzz(func(t *testing.T, errorBody []byte, errTypeHeader []byte) {
		dispatcher := NewDispatcher()
		router := NewRouter(dispatcher)

		request := httptest.NewRequest("POST", "/runtime/init/error", bytes.NewReader(errorBody))
		request.Header.Set(interop.FunctionErrorTypeHeader, string(errTypeHeader))
		responseRecorder := makeTestRequest(t, router, request)

		assert.Equal(t, http.StatusAccepted, responseRecorder.Code)
		assert.JSONEq(t, "{\"status\":\"OK\"}\n", responseRecorder.Body.String())

		report, ok := dispatcher.InitError()
		require.True(t, ok)
		assert.Equal(t, errorBody, report.Payload)
	})
}

func FuzzInvocationResponseHandler(f *testing.F) {
	f.Add([]byte("SUCCESS"), "")
	f.Add([]byte(strings.Repeat("a", interop.MaxPayloadSize+1)), "")
	f.Add([]byte("{}"), "XYZ")

	f.Fuzz(func(t *testing.T, responseBody []byte, requestIDOverride string) {
		if !requestIDPattern.MatchString(requestIDOverride) {
			t.Skip("request id is not a plain path segment")
		}

		dispatcher := NewDispatcher()
		router := NewRouter(dispatcher)
		startInvoke(t, dispatcher, "{}")
		requestID := nextInvocation(t, router)

		target := requestID
		if requestIDOverride != "" {
			target = requestIDOverride
		}
		request := httptest.NewRequest("POST", "/runtime/invocation/"+target+"/response", bytes.NewReader(responseBody))
		responseRecorder := makeTestRequest(t, router, request)

		switch {
		case target != requestID:
			assert.Equal(t, http.StatusBadRequest, responseRecorder.Code)
		case len(responseBody) > interop.MaxPayloadSize:
			assert.Equal(t, http.StatusRequestEntityTooLarge, responseRecorder.Code)
		default:
			assert.Equal(t, http.StatusAccepted, responseRecorder.Code)
		}
	})
}
