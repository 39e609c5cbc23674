// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/rtlambda/rtlambda-go/lambda/interop"
	"github.com/rtlambda/rtlambda-go/lambda/rapi/rendering"
)

type initErrorHandler struct {
	broker InvocationBroker
}

func (h *initErrorHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	errorType := request.Header.Get(interop.FunctionErrorTypeHeader)

	errorBody, err := readBody(request)
	if err != nil {
		log.WithError(err).Warn("Failed to read error body")
	}

	log.WithField("errorType", errorType).Warn("Runtime reported an initialization error")
	h.broker.InitFail(errorType, errorBody)

	rendering.RenderAccepted(writer, request)
}

// NewInitErrorHandler returns a new instance of http handler
// for serving /runtime/init/error.
func NewInitErrorHandler(broker InvocationBroker) http.Handler {
	return &initErrorHandler{
		broker: broker,
	}
}
