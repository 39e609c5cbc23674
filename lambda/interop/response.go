// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package interop

import (
	"io"
	"net/http"
	"strconv"
	"time"
)

// StatusBand is the class of an HTTP status code.
type StatusBand int

const (
	Unknown StatusBand = iota
	Informational
	Success
	Redirection
	ClientError
	ServerError
)

func (b StatusBand) String() string {
	switch b {
	case Informational:
		return "Informational"
	case Success:
		return "Success"
	case Redirection:
		return "Redirection"
	case ClientError:
		return "ClientError"
	case ServerError:
		return "ServerError"
	}
	return "Unknown"
}

// BandOf classifies a status code. Codes outside 100-599 are Unknown.
func BandOf(statusCode int) StatusBand {
	switch {
	case statusCode >= 100 && statusCode <= 199:
		return Informational
	case statusCode >= 200 && statusCode <= 299:
		return Success
	case statusCode >= 300 && statusCode <= 399:
		return Redirection
	case statusCode >= 400 && statusCode <= 499:
		return ClientError
	case statusCode >= 500 && statusCode <= 599:
		return ServerError
	}
	return Unknown
}

// InvocationResponse is a normalized view of one Runtime API reply: the
// status code, the body and the Lambda-specific headers. It is built once
// per transport call and never modified afterwards.
type InvocationResponse struct {
	statusCode         int
	body               *string
	requestID          string
	deadline           time.Time
	invokedFunctionArn string
	traceID            string
	clientContext      string
	cognitoIdentity    string
}

// NewInvocationResponse reads the known header set and the body of a reply.
// Optional headers that are missing or malformed are treated as absent; only
// a body that cannot be read fails the construction.
func NewInvocationResponse(statusCode int, header http.Header, body io.Reader) (*InvocationResponse, error) {
	resp := &InvocationResponse{
		statusCode:         statusCode,
		requestID:          header.Get(RequestIDHeader),
		deadline:           parseDeadline(header.Get(DeadlineMsHeader)),
		invokedFunctionArn: header.Get(FunctionArnHeader),
		traceID:            header.Get(TraceIDHeader),
		clientContext:      header.Get(ClientContextHeader),
		cognitoIdentity:    header.Get(CognitoIdentityHeader),
	}

	if body != nil {
		data, err := io.ReadAll(body)
		if err != nil {
			return nil, WrapError(ErrTransport, "failed to read response body", err)
		}
		if len(data) > 0 {
			text := string(data)
			resp.body = &text
		}
	}

	return resp, nil
}

// parseDeadline converts the epoch-milliseconds header into an absolute
// time. Anything that is not a non-negative integer yields the zero time.
func parseDeadline(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	ms, err := strconv.ParseInt(value, 10, 64)
	if err != nil || ms < 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

// StatusCode returns the HTTP status code of the reply.
func (r *InvocationResponse) StatusCode() int {
	return r.statusCode
}

// Band returns the status band of the reply.
func (r *InvocationResponse) Band() StatusBand {
	return BandOf(r.statusCode)
}

// Body returns the raw body, if any.
func (r *InvocationResponse) Body() (string, bool) {
	if r.body == nil {
		return "", false
	}
	return *r.body, true
}

// RequestID returns the Lambda-Runtime-Aws-Request-Id header, if present.
func (r *InvocationResponse) RequestID() (string, bool) {
	return r.requestID, r.requestID != ""
}

// Deadline returns the absolute invocation deadline, if present and valid.
func (r *InvocationResponse) Deadline() (time.Time, bool) {
	return r.deadline, !r.deadline.IsZero()
}

func (r *InvocationResponse) InvokedFunctionArn() (string, bool) {
	return r.invokedFunctionArn, r.invokedFunctionArn != ""
}

func (r *InvocationResponse) TraceID() (string, bool) {
	return r.traceID, r.traceID != ""
}

func (r *InvocationResponse) ClientContext() (string, bool) {
	return r.clientContext, r.clientContext != ""
}

func (r *InvocationResponse) CognitoIdentity() (string, bool) {
	return r.cognitoIdentity, r.cognitoIdentity != ""
}

func (r *InvocationResponse) IsSuccess() bool {
	return r.Band() == Success
}

func (r *InvocationResponse) IsClientErr() bool {
	return r.Band() == ClientError
}

func (r *InvocationResponse) IsServerErr() bool {
	return r.Band() == ServerError
}

func (r *InvocationResponse) IsErr() bool {
	return r.IsClientErr() || r.IsServerErr()
}

// EventResponse returns the event payload of a successful next-invocation reply.
func (r *InvocationResponse) EventResponse() *string {
	if !r.IsSuccess() {
		return nil
	}
	return r.body
}

// ErrorResponse returns the error detail of a 4xx reply.
func (r *InvocationResponse) ErrorResponse() *string {
	if !r.IsClientErr() {
		return nil
	}
	return r.body
}

// StatusResponse returns the body of a successful reply to a report call,
// typically {"status":"OK"}.
func (r *InvocationResponse) StatusResponse() *string {
	return r.EventResponse()
}
