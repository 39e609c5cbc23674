// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	mock "github.com/stretchr/testify/mock"

	interop "github.com/rtlambda/rtlambda-go/lambda/interop"
)

type MockTransport struct {
	mock.Mock
}

func (_m *MockTransport) Get(url string, body *string, headers *Headers) (*interop.InvocationResponse, error) {
	ret := _m.Called(url, body, headers)

	if len(ret) == 0 {
		panic("no return value specified for Get")
	}

	var r0 *interop.InvocationResponse
	var r1 error
	if rf, ok := ret.Get(0).(func(string, *string, *Headers) (*interop.InvocationResponse, error)); ok {
		return rf(url, body, headers)
	}
	if rf, ok := ret.Get(0).(func(string, *string, *Headers) *interop.InvocationResponse); ok {
		r0 = rf(url, body, headers)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*interop.InvocationResponse)
		}
	}

	if rf, ok := ret.Get(1).(func(string, *string, *Headers) error); ok {
		r1 = rf(url, body, headers)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockTransport) Post(url string, body *string, headers *Headers) (*interop.InvocationResponse, error) {
	ret := _m.Called(url, body, headers)

	if len(ret) == 0 {
		panic("no return value specified for Post")
	}

	var r0 *interop.InvocationResponse
	var r1 error
	if rf, ok := ret.Get(0).(func(string, *string, *Headers) (*interop.InvocationResponse, error)); ok {
		return rf(url, body, headers)
	}
	if rf, ok := ret.Get(0).(func(string, *string, *Headers) *interop.InvocationResponse); ok {
		r0 = rf(url, body, headers)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*interop.InvocationResponse)
		}
	}

	if rf, ok := ret.Get(1).(func(string, *string, *Headers) error); ok {
		r1 = rf(url, body, headers)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func NewMockTransport(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTransport {
	mock := &MockTransport{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
