// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package env

import (
	"os"
	"strconv"

	"github.com/aws/aws-lambda-go/lambdacontext"
	log "github.com/sirupsen/logrus"

	"github.com/rtlambda/rtlambda-go/lambda/interop"
)

// Snapshot holds the container-level configuration Lambda passes to the
// runtime through its environment. It is read once at startup; the trace id
// is the only field that changes afterwards, once per received invocation.
type Snapshot struct {
	handler            *string
	region             *string
	executionEnv       *string
	functionName       *string
	functionVersion    *string
	functionMemorySize *int
	initializationType InitializationType
	logGroupName       *string
	logStreamName      *string
	accessKey          *string
	accessKeyID        *string
	secretAccessKey    *string
	sessionToken       *string
	runtimeAPI         string
	taskRoot           *string
	runtimeDir         *string
	tz                 *string

	traceID *string
	setenv  SetenvFunc
}

// NewSnapshot reads every recognized variable through lookup. A missing
// variable leaves its field unset, except AWS_LAMBDA_RUNTIME_API which is
// required to address the Runtime API at all.
func NewSnapshot(lookup LookupFunc) (*Snapshot, error) {
	runtimeAPI, ok := lookup(runtimeAPIAddressKey)
	if !ok || runtimeAPI == "" {
		return nil, interop.NewError(interop.ErrMissingRuntimeAPI, interop.ErrMissingRuntimeAPI.Error())
	}

	s := &Snapshot{
		handler:            lookupString(lookup, handlerEnvKey),
		region:             lookupString(lookup, regionEnvKey),
		executionEnv:       lookupString(lookup, executionEnvKey),
		functionName:       lookupString(lookup, functionNameEnvKey),
		functionVersion:    lookupString(lookup, functionVersionEnvKey),
		functionMemorySize: lookupMemorySize(lookup),
		initializationType: InitUnknown,
		logGroupName:       lookupString(lookup, logGroupNameEnvKey),
		logStreamName:      lookupString(lookup, logStreamNameEnvKey),
		accessKey:          lookupString(lookup, accessKeyEnvKey),
		accessKeyID:        lookupString(lookup, accessKeyIDEnvKey),
		secretAccessKey:    lookupString(lookup, secretAccessKeyEnvKey),
		sessionToken:       lookupString(lookup, sessionTokenEnvKey),
		runtimeAPI:         runtimeAPI,
		taskRoot:           lookupString(lookup, taskRootEnvKey),
		runtimeDir:         lookupString(lookup, runtimeDirEnvKey),
		tz:                 lookupString(lookup, timezoneEnvKey),
		traceID:            lookupString(lookup, traceIDEnvKey),
		setenv:             os.Setenv,
	}

	if itype, ok := lookup(initializationTypeEnvKey); ok {
		s.initializationType = ParseInitializationType(itype)
	}

	return s, nil
}

// FromEnvironment builds a Snapshot from the process environment.
func FromEnvironment() (*Snapshot, error) {
	return NewSnapshot(os.LookupEnv)
}

func lookupMemorySize(lookup LookupFunc) *int {
	val, ok := lookup(functionMemorySizeEnvKey)
	if !ok {
		return nil
	}
	size, err := strconv.Atoi(val)
	if err != nil || size < 0 {
		log.WithError(err).Warnf("Ignoring invalid %s value %q", functionMemorySizeEnvKey, val)
		return nil
	}
	return &size
}

func deref(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}

// WithSetenv replaces the function used to publish the trace id to the
// process environment and returns the Snapshot.
func (s *Snapshot) WithSetenv(setenv SetenvFunc) *Snapshot {
	s.setenv = setenv
	return s
}

// SetTraceID caches the trace id of the current invocation and exports it as
// _X_AMZN_TRACE_ID, where tracing SDKs called by the handler look for it.
func (s *Snapshot) SetTraceID(traceID string) {
	s.traceID = &traceID
	if s.setenv == nil {
		return
	}
	if err := s.setenv(traceIDEnvKey, traceID); err != nil {
		log.WithError(err).Warnf("Failed to set %s", traceIDEnvKey)
	}
}

// PublishLambdaContext copies the per-container values into the
// aws-lambda-go lambdacontext package variables.
func (s *Snapshot) PublishLambdaContext() {
	if v, ok := s.FunctionName(); ok {
		lambdacontext.FunctionName = v
	}
	if v, ok := s.FunctionVersion(); ok {
		lambdacontext.FunctionVersion = v
	}
	if v, ok := s.FunctionMemorySize(); ok {
		lambdacontext.MemoryLimitInMB = v
	}
	if v, ok := s.LogGroupName(); ok {
		lambdacontext.LogGroupName = v
	}
	if v, ok := s.LogStreamName(); ok {
		lambdacontext.LogStreamName = v
	}
}

func (s *Snapshot) Handler() (string, bool)         { return deref(s.handler) }
func (s *Snapshot) Region() (string, bool)          { return deref(s.region) }
func (s *Snapshot) TraceID() (string, bool)         { return deref(s.traceID) }
func (s *Snapshot) ExecutionEnv() (string, bool)    { return deref(s.executionEnv) }
func (s *Snapshot) FunctionName() (string, bool)    { return deref(s.functionName) }
func (s *Snapshot) FunctionVersion() (string, bool) { return deref(s.functionVersion) }
func (s *Snapshot) LogGroupName() (string, bool)    { return deref(s.logGroupName) }
func (s *Snapshot) LogStreamName() (string, bool)   { return deref(s.logStreamName) }
func (s *Snapshot) AccessKey() (string, bool)       { return deref(s.accessKey) }
func (s *Snapshot) AccessKeyID() (string, bool)     { return deref(s.accessKeyID) }
func (s *Snapshot) SecretAccessKey() (string, bool) { return deref(s.secretAccessKey) }
func (s *Snapshot) SessionToken() (string, bool)    { return deref(s.sessionToken) }
func (s *Snapshot) TaskRoot() (string, bool)        { return deref(s.taskRoot) }
func (s *Snapshot) RuntimeDir() (string, bool)      { return deref(s.runtimeDir) }
func (s *Snapshot) TZ() (string, bool)              { return deref(s.tz) }

// FunctionMemorySize returns AWS_LAMBDA_FUNCTION_MEMORY_SIZE in MB.
func (s *Snapshot) FunctionMemorySize() (int, bool) {
	if s.functionMemorySize == nil {
		return 0, false
	}
	return *s.functionMemorySize, true
}

func (s *Snapshot) InitializationType() InitializationType {
	return s.initializationType
}

// RuntimeAPI returns the host:port of the Runtime API. Always set.
func (s *Snapshot) RuntimeAPI() string {
	return s.runtimeAPI
}
