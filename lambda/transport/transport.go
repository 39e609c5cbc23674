// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"github.com/rtlambda/rtlambda-go/lambda/interop"
)

// Transport issues Runtime API requests and normalizes the replies.
//
// Get is only used for /runtime/invocation/next, which the Runtime API holds
// open until an invocation arrives, so implementations must not apply a read
// timeout to it. Post carries reports and may use a bounded timeout.
type Transport interface {
	Get(url string, body *string, headers *Headers) (*interop.InvocationResponse, error)
	Post(url string, body *string, headers *Headers) (*interop.InvocationResponse, error)
}

// Headers are request headers given as two positional sequences. When the
// sequences differ in length only the overlapping prefix is sent.
type Headers struct {
	Names  []string
	Values []string
}

// NewHeaders pairs names and values positionally.
func NewHeaders(names, values []string) *Headers {
	return &Headers{Names: names, Values: values}
}

// SingleHeader returns Headers holding one name/value pair.
func SingleHeader(name, value string) *Headers {
	return &Headers{Names: []string{name}, Values: []string{value}}
}

// Pair is one header name and value.
type Pair struct {
	Name  string
	Value string
}

// Pairs returns the header pairs that will be sent.
func (h *Headers) Pairs() []Pair {
	if h == nil {
		return nil
	}
	n := min(len(h.Names), len(h.Values))
	pairs := make([]Pair, 0, n)
	for i := 0; i < n; i++ {
		pairs = append(pairs, Pair{Name: h.Names[i], Value: h.Values[i]})
	}
	return pairs
}
