// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package model

// StatusResponse is the reply to an accepted report.
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the reply to a rejected request. It has the same shape as
// the error documents runtimes post to /error and /init/error.
type ErrorResponse struct {
	ErrorMessage string   `json:"errorMessage"`
	ErrorType    string   `json:"errorType"`
	StackTrace   []string `json:"stackTrace,omitempty"`
}
