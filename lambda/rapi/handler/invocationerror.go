// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"net/http"

	"github.com/go-chi/chi"
	log "github.com/sirupsen/logrus"

	"github.com/rtlambda/rtlambda-go/lambda/interop"
	"github.com/rtlambda/rtlambda-go/lambda/rapi/rendering"
)

type invocationErrorHandler struct {
	broker InvocationBroker
}

func (h *invocationErrorHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	requestID := chi.URLParam(request, "awsrequestid")
	errorType := request.Header.Get(interop.FunctionErrorTypeHeader)

	errorBody, err := readBody(request)
	if err != nil {
		log.WithError(err).Warn("Failed to read error body")
	}

	if err := h.broker.Fail(requestID, errorType, errorBody); err != nil {
		log.WithError(err).WithField("requestId", requestID).Warn("Error report rejected")
		rendering.RenderReportError(writer, request, err)
		return
	}

	rendering.RenderAccepted(writer, request)
}

// NewInvocationErrorHandler returns a new instance of http handler
// for serving /runtime/invocation/{awsrequestid}/error.
func NewInvocationErrorHandler(broker InvocationBroker) http.Handler {
	return &invocationErrorHandler{
		broker: broker,
	}
}
