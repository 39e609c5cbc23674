// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/rtlambda/rtlambda-go/lambda/rapi/rendering"
)

type invocationNextHandler struct {
	broker InvocationBroker
}

func (h *invocationNextHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	invoke, err := h.broker.Next(request.Context())
	if err != nil {
		// the runtime went away or the server is shutting down
		log.WithError(err).Debug("Stopped waiting for next invocation")
		return
	}
	rendering.RenderInvoke(writer, invoke)
}

// NewInvocationNextHandler returns a new instance of http handler
// for serving /runtime/invocation/next.
func NewInvocationNextHandler(broker InvocationBroker) http.Handler {
	return &invocationNextHandler{
		broker: broker,
	}
}
