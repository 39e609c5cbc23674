// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package env

// Reserved environment variables set by Lambda for provided runtimes.
// https://docs.aws.amazon.com/lambda/latest/dg/configuration-envvars.html#configuration-envvars-runtime
const (
	handlerEnvKey            = "_HANDLER"
	regionEnvKey             = "AWS_REGION"
	traceIDEnvKey            = "_X_AMZN_TRACE_ID"
	executionEnvKey          = "AWS_EXECUTION_ENV"
	functionNameEnvKey       = "AWS_LAMBDA_FUNCTION_NAME"
	functionMemorySizeEnvKey = "AWS_LAMBDA_FUNCTION_MEMORY_SIZE"
	functionVersionEnvKey    = "AWS_LAMBDA_FUNCTION_VERSION"
	initializationTypeEnvKey = "AWS_LAMBDA_INITIALIZATION_TYPE"
	logGroupNameEnvKey       = "AWS_LAMBDA_LOG_GROUP_NAME"
	logStreamNameEnvKey      = "AWS_LAMBDA_LOG_STREAM_NAME"
	accessKeyEnvKey          = "AWS_ACCESS_KEY"
	accessKeyIDEnvKey        = "AWS_ACCESS_KEY_ID"
	secretAccessKeyEnvKey    = "AWS_SECRET_ACCESS_KEY"
	sessionTokenEnvKey       = "AWS_SESSION_TOKEN"
	runtimeAPIAddressKey     = "AWS_LAMBDA_RUNTIME_API"
	taskRootEnvKey           = "LAMBDA_TASK_ROOT"
	runtimeDirEnvKey         = "LAMBDA_RUNTIME_DIR"
	timezoneEnvKey           = "TZ"
)

// RecognizedKeys returns the set of environment variables read by NewSnapshot.
func RecognizedKeys() map[string]bool {
	return map[string]bool{
		handlerEnvKey:            true,
		regionEnvKey:             true,
		traceIDEnvKey:            true,
		executionEnvKey:          true,
		functionNameEnvKey:       true,
		functionMemorySizeEnvKey: true,
		functionVersionEnvKey:    true,
		initializationTypeEnvKey: true,
		logGroupNameEnvKey:       true,
		logStreamNameEnvKey:      true,
		accessKeyEnvKey:          true,
		accessKeyIDEnvKey:        true,
		secretAccessKeyEnvKey:    true,
		sessionTokenEnvKey:       true,
		runtimeAPIAddressKey:     true,
		taskRootEnvKey:           true,
		runtimeDirEnvKey:         true,
		timezoneEnvKey:           true,
	}
}

// InitializationType is the value of AWS_LAMBDA_INITIALIZATION_TYPE.
type InitializationType int

const (
	InitUnknown InitializationType = iota
	InitOnDemand
	InitProvisionedConcurrency
)

// ParseInitializationType maps the env value to an InitializationType.
// The value must be lowercase; anything unexpected is InitUnknown.
func ParseInitializationType(value string) InitializationType {
	switch value {
	case "on-demand":
		return InitOnDemand
	case "provisioned-concurrency":
		return InitProvisionedConcurrency
	}
	return InitUnknown
}

func (t InitializationType) String() string {
	switch t {
	case InitOnDemand:
		return "on-demand"
	case InitProvisionedConcurrency:
		return "provisioned-concurrency"
	}
	return "unknown"
}
