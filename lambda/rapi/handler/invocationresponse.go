// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi"
	log "github.com/sirupsen/logrus"

	"github.com/rtlambda/rtlambda-go/lambda/interop"
	"github.com/rtlambda/rtlambda-go/lambda/rapi/model"
	"github.com/rtlambda/rtlambda-go/lambda/rapi/rendering"
)

const (
	functionResponseSizeTooLargeType = "Function.ResponseSizeTooLarge"
)

type invocationResponseHandler struct {
	broker InvocationBroker
}

// readBody reads at most one byte past MaxPayloadSize, enough to tell an
// oversized body apart.
func readBody(request *http.Request) ([]byte, error) {
	return io.ReadAll(io.LimitReader(request.Body, interop.MaxPayloadSize+1))
}

func (h *invocationResponseHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	requestID := chi.URLParam(request, "awsrequestid")

	data, err := readBody(request)
	if err != nil {
		log.WithError(err).Error("Failed to read response body")
		rendering.RenderInternalServerError(writer, request)
		return
	}

	if len(data) > interop.MaxPayloadSize {
		log.WithField("requestId", requestID).Warn("Request entity too large")

		resp := model.ErrorResponse{
			ErrorType:    functionResponseSizeTooLargeType,
			ErrorMessage: fmt.Sprintf("Response payload size exceeded maximum allowed payload size (%d bytes).", interop.MaxPayloadSize),
		}
		payload, _ := json.Marshal(resp)

		if err := h.broker.Fail(requestID, resp.ErrorType, payload); err != nil {
			rendering.RenderReportError(writer, request, err)
			return
		}

		rendering.RenderRequestEntityTooLarge(writer, request)
		return
	}

	if err := h.broker.Respond(requestID, data); err != nil {
		log.WithError(err).WithField("requestId", requestID).Warn("Response rejected")
		rendering.RenderReportError(writer, request, err)
		return
	}

	rendering.RenderAccepted(writer, request)
}

// NewInvocationResponseHandler returns a new instance of http handler
// for serving /runtime/invocation/{awsrequestid}/response.
func NewInvocationResponseHandler(broker InvocationBroker) http.Handler {
	return &invocationResponseHandler{
		broker: broker,
	}
}
