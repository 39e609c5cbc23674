// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package testdata

import (
	"fmt"
	"io"
)

// RuntimeAPIAddress is the AWS_LAMBDA_RUNTIME_API value used by fixtures.
const RuntimeAPIAddress = "127.0.0.1:9001"

// RuntimeEnv returns the environment Lambda sets for a provided runtime,
// merged with overrides. An override with an empty value removes the key.
func RuntimeEnv(overrides map[string]string) map[string]string {
	env := map[string]string{
		"_HANDLER":                        "main.handler",
		"AWS_REGION":                      "us-east-1",
		"AWS_EXECUTION_ENV":               "AWS_Lambda_provided.al2",
		"AWS_LAMBDA_FUNCTION_NAME":        "test_function",
		"AWS_LAMBDA_FUNCTION_VERSION":     "$LATEST",
		"AWS_LAMBDA_FUNCTION_MEMORY_SIZE": "128",
		"AWS_LAMBDA_INITIALIZATION_TYPE":  "on-demand",
		"AWS_LAMBDA_LOG_GROUP_NAME":       "/aws/lambda/test_function",
		"AWS_LAMBDA_LOG_STREAM_NAME":      "2022/01/01/[$LATEST]0123456789abcdef",
		"AWS_ACCESS_KEY":                  "AKIDEXAMPLE",
		"AWS_ACCESS_KEY_ID":               "AKIDEXAMPLE",
		"AWS_SECRET_ACCESS_KEY":           "secret",
		"AWS_SESSION_TOKEN":               "token",
		"AWS_LAMBDA_RUNTIME_API":          RuntimeAPIAddress,
		"LAMBDA_TASK_ROOT":                "/var/task",
		"LAMBDA_RUNTIME_DIR":              "/var/runtime",
		"TZ":                              ":UTC",
	}
	for key, val := range overrides {
		if val == "" {
			delete(env, key)
			continue
		}
		env[key] = val
	}
	return env
}

// Lookup adapts a map to the os.LookupEnv signature.
func Lookup(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		val, ok := env[key]
		return val, ok
	}
}

// ReaderFailureMock fails every read.
type ReaderFailureMock struct{}

func (r *ReaderFailureMock) Read(p []byte) (int, error) {
	return 0, fmt.Errorf("can't read")
}

var _ io.Reader = (*ReaderFailureMock)(nil)
