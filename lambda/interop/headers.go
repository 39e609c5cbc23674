// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package interop

// Runtime API headers.
// https://docs.aws.amazon.com/lambda/latest/dg/runtimes-api.html
const (
	RequestIDHeader          = "Lambda-Runtime-Aws-Request-Id"
	DeadlineMsHeader         = "Lambda-Runtime-Deadline-Ms"
	FunctionArnHeader        = "Lambda-Runtime-Invoked-Function-Arn"
	TraceIDHeader            = "Lambda-Runtime-Trace-Id"
	ClientContextHeader      = "Lambda-Runtime-Client-Context"
	CognitoIdentityHeader    = "Lambda-Runtime-Cognito-Identity"
	FunctionErrorTypeHeader  = "Lambda-Runtime-Function-Error-Type"
	ContentTypeHeader        = "Content-Type"
	DefaultEventContentType  = "application/json"
	TraceIDEnvironmentVarKey = "_X_AMZN_TRACE_ID"
)

// MaxPayloadSize max event body size declared as LAMBDA_EVENT_BODY_SIZE
const MaxPayloadSize = 6*1024*1024 + 100 // 6 MiB + 100 bytes
