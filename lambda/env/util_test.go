// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitEnvironmentVariable(t *testing.T) {
	cases := []struct {
		in, key, val string
		fails        bool
	}{
		{in: "AWS_REGION=us-east-1", key: "AWS_REGION", val: "us-east-1"},
		{in: "_X_AMZN_TRACE_ID=Root=1-abc;Sampled=1", key: "_X_AMZN_TRACE_ID", val: "Root=1-abc;Sampled=1"},
		{in: "TZ=", key: "TZ", val: ""},
		{in: "TZ", fails: true},
	}

	for _, c := range cases {
		k, v, err := SplitEnvironmentVariable(c.in)
		if c.fails {
			assert.Error(t, err, c.in)
		} else {
			assert.NoError(t, err, c.in)
		}
		assert.Equal(t, c.key, k, c.in)
		assert.Equal(t, c.val, v, c.in)
	}
}
