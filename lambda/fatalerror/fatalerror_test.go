// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package fatalerror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type validationError struct{}

func (validationError) Error() string     { return "invalid input" }
func (validationError) ErrorType() string { return "Validation.Failed" }

type customError struct{ msg string }

func (e *customError) Error() string { return e.msg }

func TestFromError(t *testing.T) {
	assert.Equal(t, Unknown, FromError(nil))
	assert.Equal(t, ErrorType("Validation.Failed"), FromError(validationError{}))
	assert.Equal(t, ErrorType("Validation.Failed"), FromError(fmt.Errorf("wrapped: %w", validationError{})))
	assert.Equal(t, ErrorType("customError"), FromError(&customError{msg: "boom"}))
	assert.Equal(t, ErrorType("errorString"), FromError(errors.New("boom")))
}
