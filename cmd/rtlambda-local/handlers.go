// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/render"
	log "github.com/sirupsen/logrus"

	"github.com/rtlambda/rtlambda-go/lambda/interop"
	"github.com/rtlambda/rtlambda-go/lambda/rapi"
	"github.com/rtlambda/rtlambda-go/lambda/rapi/model"
)

const functionErrorHeader = "X-Amz-Function-Error"

// invoker is the part of rapi.Server the invoke endpoint depends on.
type invoker interface {
	Invoke(ctx context.Context, payload []byte, opts rapi.InvokeOptions) (*model.Report, error)
}

type invokeHandler struct {
	invoker      invoker
	functionArn  string
	timeout      time.Duration
	printReports func(report *model.Report, start time.Time)
}

func newInvokeHandler(inv invoker, opts options) http.Handler {
	return &invokeHandler{
		invoker:      inv,
		functionArn:  fmt.Sprintf("arn:aws:lambda:us-east-1:012345678912:function:%s", opts.FunctionName),
		timeout:      opts.FunctionTimeout,
		printReports: printEndReports,
	}
}

func printEndReports(report *model.Report, start time.Time) {
	duration := float64(time.Since(start).Nanoseconds()) / float64(time.Millisecond)
	fmt.Println("END RequestId: " + report.RequestID)
	fmt.Printf("REPORT RequestId: %s\tDuration: %.2f ms\tBilled Duration: %.f ms\t\n",
		report.RequestID, duration, math.Ceil(duration))
}

func (h *invokeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log.Debugf("invoke: -> %s %s %v", r.Method, r.URL, r.Header)
	payload, err := io.ReadAll(io.LimitReader(r.Body, interop.MaxPayloadSize+1))
	if err != nil {
		log.WithError(err).Error("Failed to read invoke body")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if len(payload) > interop.MaxPayloadSize {
		render.Status(r, http.StatusRequestEntityTooLarge)
		render.JSON(w, r, &model.ErrorResponse{
			ErrorType:    "RequestEntityTooLarge",
			ErrorMessage: fmt.Sprintf("Request must be smaller than %d bytes for the InvokeFunction operation", interop.MaxPayloadSize),
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	start := time.Now()
	report, err := h.invoker.Invoke(ctx, payload, rapi.InvokeOptions{
		Timeout:            h.timeout,
		InvokedFunctionArn: h.functionArn,
		TraceID:            r.Header.Get("X-Amzn-Trace-Id"),
		ClientContext:      r.Header.Get("X-Amz-Client-Context"),
		ContentType:        r.Header.Get("Content-Type"),
	})

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		render.Status(r, http.StatusOK)
		w.Header().Set(functionErrorHeader, "Unhandled")
		render.JSON(w, r, &model.ErrorResponse{
			ErrorType:    "Sandbox.Timedout",
			ErrorMessage: fmt.Sprintf("Task timed out after %.2f seconds", h.timeout.Seconds()),
		})
		return
	case errors.Is(err, rapi.ErrInitFailed) && report != nil:
		w.Header().Set(functionErrorHeader, "Unhandled")
	case err != nil:
		log.WithError(err).Error("Invoke failed")
		w.WriteHeader(http.StatusInternalServerError)
		return
	case report.Failed:
		w.Header().Set(functionErrorHeader, "Unhandled")
	}

	h.printReports(report, start)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(report.Payload); err != nil {
		log.WithError(err).Warn("Failed to write invoke response")
	}
}
