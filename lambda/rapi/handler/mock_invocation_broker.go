// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	context "context"

	mock "github.com/stretchr/testify/mock"

	model "github.com/rtlambda/rtlambda-go/lambda/rapi/model"
)

type MockInvocationBroker struct {
	mock.Mock
}

func (_m *MockInvocationBroker) Fail(requestID string, errorType string, payload []byte) error {
	ret := _m.Called(requestID, errorType, payload)

	if len(ret) == 0 {
		panic("no return value specified for Fail")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(string, string, []byte) error); ok {
		r0 = rf(requestID, errorType, payload)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockInvocationBroker) InitFail(errorType string, payload []byte) {
	_m.Called(errorType, payload)
}

func (_m *MockInvocationBroker) Next(ctx context.Context) (*model.Invocation, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for Next")
	}

	var r0 *model.Invocation
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) (*model.Invocation, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) *model.Invocation); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*model.Invocation)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockInvocationBroker) Respond(requestID string, payload []byte) error {
	ret := _m.Called(requestID, payload)

	if len(ret) == 0 {
		panic("no return value specified for Respond")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(string, []byte) error); ok {
		r0 = rf(requestID, payload)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func NewMockInvocationBroker(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockInvocationBroker {
	mock := &MockInvocationBroker{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
