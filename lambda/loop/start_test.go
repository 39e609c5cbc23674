// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package loop

import (
	"testing"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rtlambda/rtlambda-go/lambda/fatalerror"
	"github.com/rtlambda/rtlambda-go/lambda/interop"
	"github.com/rtlambda/rtlambda-go/lambda/testdata"
	"github.com/rtlambda/rtlambda-go/lambda/transport"
)

func TestStartWithTransportUsesProcessEnvironment(t *testing.T) {
	for key, val := range testdata.RuntimeEnv(nil) {
		t.Setenv(key, val)
	}

	tr := transport.NewMockTransport(t)
	tr.On("Post", "http://"+testdata.RuntimeAPIAddress+"/2018-06-01/runtime/init/error", mock.Anything,
		errorTypeHeader(fatalerror.RuntimeInitError)).Return(accepted(t), nil).Once()

	err := StartWithTransport("/2018-06-01", tr, func() (Handler[string], error) {
		assert.Equal(t, "test_function", lambdacontext.FunctionName)
		assert.Equal(t, 128, lambdacontext.MemoryLimitInMB)
		return nil, assert.AnError
	})

	require.Error(t, err)
	assert.True(t, interop.IsFatal(err))
	assert.ErrorIs(t, err, assert.AnError)
}

func TestStartExitsWithoutRuntimeAPI(t *testing.T) {
	t.Setenv("AWS_LAMBDA_RUNTIME_API", "")

	exitCode := -1
	exitFunc = func(code int) { exitCode = code }
	defer func() { exitFunc = defaultExit }()

	Start(handlerOf(suffixHandler))

	assert.Equal(t, 1, exitCode)

	err := StartWithTransport(LambdaVersion, transport.NewMockTransport(t), handlerOf(suffixHandler))
	assert.ErrorIs(t, err, interop.ErrMissingRuntimeAPI)
	assert.True(t, interop.IsFatal(err))
}
