// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package echo is a sample function: it answers every event with the event
// itself and the request id.
package echo

import (
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/rtlambda/rtlambda-go/lambda/execctx"
	"github.com/rtlambda/rtlambda-go/lambda/loop"
)

// Response is the echo reply.
type Response struct {
	Msg   string `json:"msg"`
	ReqID string `json:"req_id"`
}

// invalidEventError rejects events the echo function cannot answer.
type invalidEventError struct {
	reason string
}

func (e *invalidEventError) Error() string     { return "invalid event: " + e.reason }
func (e *invalidEventError) ErrorType() string { return "Echo.InvalidEvent" }

// Initialize returns the echo Handler.
func Initialize() (loop.Handler[*Response], error) {
	return Handle, nil
}

// Handle rejects a missing event and the empty JSON string.
func Handle(event *string, ec *execctx.ExecutionContext) (*Response, error) {
	if event == nil {
		return nil, &invalidEventError{reason: "no payload"}
	}
	if parsed := gjson.Parse(*event); parsed.Type == gjson.String && parsed.Str == "" {
		return nil, &invalidEventError{reason: "empty string"}
	}

	requestID, _ := ec.AwsRequestID()
	if remaining, err := ec.RemainingTime(); err == nil {
		log.WithField("requestId", requestID).Debugf("Echoing event with %s left", remaining)
	}

	return &Response{
		Msg:   "ECHO: " + *event,
		ReqID: requestID,
	}, nil
}
