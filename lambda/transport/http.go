// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/rtlambda/rtlambda-go/lambda/interop"
)

// DefaultTimeout bounds report calls. The next-invocation poll is unbounded.
const DefaultTimeout = 30 * time.Second

// Version is reported in the User-Agent header.
const Version = "0.1.0"

// HTTPTransport is the net/http Transport backend.
type HTTPTransport struct {
	pollClient   *http.Client
	reportClient *http.Client
	userAgent    string
}

type options struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures an HTTPTransport. Options may be given in any order.
type Option func(*options)

// WithTimeout sets the timeout of report calls.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// WithHTTPClient bases both polls and reports on a copy of client. The poll
// path always runs with a zero Timeout, whatever client sets. Unless
// WithTimeout is also given, reports keep client's Timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.client = client
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(o *options) {
		o.userAgent = userAgent
	}
}

// NewHTTPTransport returns a Transport over a shared connection pool.
func NewHTTPTransport(opts ...Option) *HTTPTransport {
	o := &options{
		timeout:   -1,
		userAgent: fmt.Sprintf("rtlambda-go/%s", Version),
	}
	for _, opt := range opts {
		opt(o)
	}

	base := http.Client{
		Transport: &http.Transport{
			Proxy:               nil,
			MaxIdleConns:        1,
			MaxIdleConnsPerHost: 1,
			IdleConnTimeout:     0,
		},
		Timeout: DefaultTimeout,
	}
	if o.client != nil {
		base = *o.client
	}

	poll, report := base, base
	poll.Timeout = 0
	if o.timeout >= 0 {
		report.Timeout = o.timeout
	}

	return &HTTPTransport{
		pollClient:   &poll,
		reportClient: &report,
		userAgent:    o.userAgent,
	}
}

func (t *HTTPTransport) Get(url string, body *string, headers *Headers) (*interop.InvocationResponse, error) {
	return t.do(t.pollClient, http.MethodGet, url, body, headers)
}

func (t *HTTPTransport) Post(url string, body *string, headers *Headers) (*interop.InvocationResponse, error) {
	return t.do(t.reportClient, http.MethodPost, url, body, headers)
}

func (t *HTTPTransport) do(client *http.Client, method, url string, body *string, headers *Headers) (*interop.InvocationResponse, error) {
	var reader io.Reader
	if body != nil {
		reader = strings.NewReader(*body)
	}

	request, err := http.NewRequest(method, url, reader)
	if err != nil {
		return nil, interop.WrapError(interop.ErrTransport, fmt.Sprintf("%s %s", method, url), err)
	}
	request.Header.Set("User-Agent", t.userAgent)
	for _, pair := range headers.Pairs() {
		request.Header.Set(pair.Name, pair.Value)
	}

	log.Debugf("runtime api: -> %s %s", method, url)
	response, err := client.Do(request)
	if err != nil {
		return nil, interop.WrapError(interop.ErrTransport, fmt.Sprintf("%s %s", method, url), err)
	}
	defer response.Body.Close()
	log.Debugf("runtime api: <- %s %s %d", method, url, response.StatusCode)

	// one byte past the limit is enough to tell an oversized body apart
	data, err := io.ReadAll(io.LimitReader(response.Body, interop.MaxPayloadSize+1))
	if err != nil {
		return nil, interop.WrapError(interop.ErrTransport, fmt.Sprintf("%s %s: reading body", method, url), err)
	}
	if len(data) > interop.MaxPayloadSize {
		return nil, interop.Errorf(interop.ErrTransport, "%s %s: body exceeds %d bytes", method, url, interop.MaxPayloadSize)
	}

	return interop.NewInvocationResponse(response.StatusCode, response.Header, bytes.NewReader(data))
}
