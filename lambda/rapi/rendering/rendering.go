// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rendering

import (
	"net/http"
	"strconv"

	"github.com/go-chi/render"
	log "github.com/sirupsen/logrus"

	"github.com/rtlambda/rtlambda-go/lambda/interop"
	"github.com/rtlambda/rtlambda-go/lambda/rapi/model"
)

// RenderJSON writes v as the JSON body of a reply with the given status.
func RenderJSON(status int, w http.ResponseWriter, r *http.Request, v interface{}) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

// RenderAccepted acknowledges a report.
func RenderAccepted(w http.ResponseWriter, r *http.Request) {
	RenderJSON(http.StatusAccepted, w, r, &model.StatusResponse{
		Status: "OK",
	})
}

func setHeaderIfNotEmpty(headers http.Header, key string, value string) {
	if len(value) != 0 {
		headers.Set(key, value)
	}
}

func setHeaderOrDefault(headers http.Header, key, val, defaultVal string) {
	if val == "" {
		headers.Set(key, defaultVal)
		return
	}
	headers.Set(key, val)
}

// RenderInvoke hands an invocation to the runtime: the payload is the body and
// the invocation metadata travels in Lambda-Runtime-* headers.
func RenderInvoke(w http.ResponseWriter, invoke *model.Invocation) {
	headers := w.Header()
	setHeaderIfNotEmpty(headers, interop.RequestIDHeader, invoke.RequestID)
	setHeaderIfNotEmpty(headers, interop.TraceIDHeader, invoke.TraceID)
	setHeaderIfNotEmpty(headers, interop.ClientContextHeader, invoke.ClientContext)
	setHeaderIfNotEmpty(headers, interop.CognitoIdentityHeader, invoke.CognitoIdentity)
	setHeaderIfNotEmpty(headers, interop.FunctionArnHeader, invoke.InvokedFunctionArn)
	if invoke.DeadlineMs > 0 {
		headers.Set(interop.DeadlineMsHeader, strconv.FormatInt(invoke.DeadlineMs, 10))
	}
	setHeaderOrDefault(headers, interop.ContentTypeHeader, invoke.ContentType, interop.DefaultEventContentType)
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(invoke.Payload); err != nil {
		log.WithError(err).WithField("requestId", invoke.RequestID).Warn("Failed to write invocation payload")
	}
}
