// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package loop

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/rtlambda/rtlambda-go/lambda/env"
	"github.com/rtlambda/rtlambda-go/lambda/execctx"
	"github.com/rtlambda/rtlambda-go/lambda/fatalerror"
	"github.com/rtlambda/rtlambda-go/lambda/interop"
	"github.com/rtlambda/rtlambda-go/lambda/transport"
)

// LambdaVersion is the Runtime API version served by AWS Lambda.
const LambdaVersion = "2018-06-01"

// Handler processes one event. The event is nil when the invocation carried
// no body. The ExecutionContext is only valid until the handler returns.
type Handler[OUT any] func(event *string, ec *execctx.ExecutionContext) (OUT, error)

// Initializer runs once before the first poll and returns the Handler used
// for every invocation. Use it to open connections and load static data.
type Initializer[OUT any] func() (Handler[OUT], error)

// Serializer encodes handler output for /response.
type Serializer func(v interface{}) ([]byte, error)

type config struct {
	serialize Serializer
	logger    log.FieldLogger
}

// Option configures a Runtime.
type Option func(*config)

// WithSerializer replaces encoding/json as the output serializer.
func WithSerializer(serialize Serializer) Option {
	return func(c *config) {
		c.serialize = serialize
	}
}

// WithLogger replaces the logrus standard logger.
func WithLogger(logger log.FieldLogger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// Runtime drives the Runtime API protocol for one process: initialize once,
// then poll, invoke and report forever.
type Runtime[OUT any] struct {
	env         *env.Snapshot
	version     string
	apiBase     string
	transport   transport.Transport
	initializer Initializer[OUT]
	serialize   Serializer
	logger      log.FieldLogger
}

// New returns a Runtime speaking the given API version ("2018-06-01" and
// "/2018-06-01" are equivalent) to the address found in snapshot.
func New[OUT any](version string, snapshot *env.Snapshot, t transport.Transport, initializer Initializer[OUT], opts ...Option) (*Runtime[OUT], error) {
	if snapshot == nil || snapshot.RuntimeAPI() == "" {
		return nil, interop.Fatal(interop.NewError(interop.ErrMissingRuntimeAPI, interop.ErrMissingRuntimeAPI.Error()))
	}

	cfg := &config{
		serialize: json.Marshal,
		logger:    log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Runtime[OUT]{
		env:         snapshot,
		version:     FormatVersion(version),
		apiBase:     snapshot.RuntimeAPI(),
		transport:   t,
		initializer: initializer,
		serialize:   cfg.serialize,
		logger:      cfg.logger,
	}, nil
}

// FormatVersion strips one leading '/' from an API version string.
func FormatVersion(version string) string {
	return strings.TrimPrefix(version, "/")
}

// Env returns the environment snapshot owned by the runtime.
func (r *Runtime[OUT]) Env() *env.Snapshot {
	return r.env
}

// Version returns the formatted API version.
func (r *Runtime[OUT]) Version() string {
	return r.version
}

func (r *Runtime[OUT]) NextInvocationURL() string {
	return fmt.Sprintf("http://%s/%s/runtime/invocation/next", r.apiBase, r.version)
}

func (r *Runtime[OUT]) InvocationResponseURL(requestID string) string {
	return fmt.Sprintf("http://%s/%s/runtime/invocation/%s/response", r.apiBase, r.version, requestID)
}

func (r *Runtime[OUT]) InvocationErrorURL(requestID string) string {
	return fmt.Sprintf("http://%s/%s/runtime/invocation/%s/error", r.apiBase, r.version, requestID)
}

func (r *Runtime[OUT]) InitErrorURL() string {
	return fmt.Sprintf("http://%s/%s/runtime/init/error", r.apiBase, r.version)
}

// checkStatus applies the status banding shared by every call: 4xx is a
// recoverable client error, 5xx means the execution environment is condemned.
func checkStatus(resp *interop.InvocationResponse) error {
	switch resp.Band() {
	case interop.ClientError:
		detail := ""
		if body := resp.ErrorResponse(); body != nil {
			detail = *body
		}
		return interop.Errorf(interop.ErrClient, "Client error (%d). ErrorResponse: %s", resp.StatusCode(), detail)
	case interop.ServerError:
		return interop.Fatal(interop.Errorf(interop.ErrContainer, "%s Status code: %d", interop.ErrContainer, resp.StatusCode()))
	}
	return nil
}

// NextInvocation fetches the next event. A transport failure or a 5xx reply
// is fatal; a 4xx reply is returned as a recoverable ErrClient. On success the
// invocation trace id, if any, is propagated to the environment.
func (r *Runtime[OUT]) NextInvocation() (*interop.InvocationResponse, error) {
	resp, err := r.transport.Get(r.NextInvocationURL(), nil, nil)
	if err != nil {
		return nil, interop.Fatal(err)
	}

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	if traceID, ok := resp.TraceID(); ok {
		r.env.SetTraceID(traceID)
	}

	return resp, nil
}

// InvocationResponse serializes out and posts it as the result of requestID.
// A serialization failure is returned as ErrSerialization and nothing is sent.
func (r *Runtime[OUT]) InvocationResponse(requestID string, out OUT) error {
	payload, err := r.serialize(out)
	if err != nil {
		return interop.WrapError(interop.ErrSerialization, "Failed serializing output to JSON", err)
	}

	body := string(payload)
	resp, err := r.transport.Post(r.InvocationResponseURL(requestID), &body, nil)
	if err != nil {
		return err
	}
	return checkStatus(resp)
}

// InvocationError reports a failed invocation. An empty errorType sends no
// Lambda-Runtime-Function-Error-Type header.
func (r *Runtime[OUT]) InvocationError(requestID string, errorType fatalerror.ErrorType, body *string) error {
	return r.postError(r.InvocationErrorURL(requestID), errorType, body)
}

// InitializationError reports a failure that is not tied to an invocation.
func (r *Runtime[OUT]) InitializationError(errorType fatalerror.ErrorType, body *string) error {
	return r.postError(r.InitErrorURL(), errorType, body)
}

func (r *Runtime[OUT]) postError(url string, errorType fatalerror.ErrorType, body *string) error {
	var headers *transport.Headers
	if errorType != "" {
		headers = transport.SingleHeader(interop.FunctionErrorTypeHeader, string(errorType))
	}

	resp, err := r.transport.Post(url, body, headers)
	if err != nil {
		return err
	}
	return checkStatus(resp)
}

// Run executes the initializer and then serves invocations until a fatal
// condition occurs. It only returns on such a condition, with an error for
// which interop.IsFatal holds; the caller is expected to exit the process.
func (r *Runtime[OUT]) Run() error {
	handler, err := r.initialize()
	if err != nil {
		return err
	}

	for {
		if err := r.iterate(handler); err != nil {
			return err
		}
	}
}

func (r *Runtime[OUT]) initialize() (Handler[OUT], error) {
	handler, initErr := r.callInitializer()
	if initErr == nil && handler == nil {
		initErr = errors.New("initializer returned a nil handler")
	}
	if initErr == nil {
		return handler, nil
	}

	r.logger.WithError(initErr).Error("Initialization failed")

	body := errorBody(initErr, fatalerror.RuntimeInitError)
	if reportErr := r.InitializationError(fatalerror.RuntimeInitError, &body); reportErr != nil {
		return nil, interop.Fatal(fmt.Errorf("failed to report initialization error. Error: %v, AWS Error: %w", initErr, reportErr))
	}

	return nil, interop.Fatal(fmt.Errorf("Initialization Error: %w", initErr))
}

func (r *Runtime[OUT]) callInitializer() (handler Handler[OUT], err error) {
	defer func() {
		if v := recover(); v != nil {
			err = newPanicError(v)
		}
	}()
	return r.initializer()
}

// iterate runs one poll/invoke/report cycle. It returns an error only when
// the loop must stop.
func (r *Runtime[OUT]) iterate(handler Handler[OUT]) error {
	resp, err := r.NextInvocation()
	if err != nil {
		if interop.IsFatal(err) {
			r.reportFatal(err)
			return err
		}
		r.logger.WithError(err).Warn("Next invocation rejected, polling again")
		return nil
	}

	requestID, ok := resp.RequestID()
	if !ok {
		r.logger.Warn("Next invocation has no request id, skipping")
		body := errorBody(interop.ErrMissingRequestID, fatalerror.RuntimeMissingRequestID)
		return r.settle("", r.InitializationError(fatalerror.RuntimeMissingRequestID, &body))
	}

	logger := r.logger.WithField("requestId", requestID)
	logger.Debug("Invoking handler")

	ec := execctx.New(r.env, resp)
	out, handlerErr := r.invoke(handler, resp.EventResponse(), ec)
	if handlerErr != nil {
		logger.WithError(handlerErr).Info("Handler returned an error")
		return r.reportInvocationError(requestID, fatalerror.FromError(handlerErr), handlerErr)
	}

	err = r.InvocationResponse(requestID, out)
	if errors.Is(err, interop.ErrSerialization) {
		logger.WithError(err).Warn("Handler output could not be serialized")
		return r.reportInvocationError(requestID, fatalerror.RuntimeSerializationError, err)
	}
	return r.settle(requestID, err)
}

func (r *Runtime[OUT]) invoke(handler Handler[OUT], event *string, ec *execctx.ExecutionContext) (out OUT, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = newPanicError(v)
		}
	}()
	return handler(event, ec)
}

func (r *Runtime[OUT]) reportInvocationError(requestID string, errorType fatalerror.ErrorType, cause error) error {
	body := errorBody(cause, errorType)
	return r.settle(requestID, r.InvocationError(requestID, errorType, &body))
}

// settle decides what a report outcome means for the loop: fatal errors stop
// it, anything else is logged since there is nothing further to escalate to.
func (r *Runtime[OUT]) settle(requestID string, err error) error {
	if err == nil {
		return nil
	}
	if interop.IsFatal(err) {
		return err
	}
	logger := r.logger.WithError(err)
	if requestID != "" {
		logger = logger.WithField("requestId", requestID)
	}
	logger.Warn("Report was not accepted")
	return nil
}

// reportFatal makes one best-effort attempt to tell the Runtime API why the
// runtime is about to exit. Its outcome does not change the exit.
func (r *Runtime[OUT]) reportFatal(cause error) {
	r.logger.WithError(cause).Error("Fatal runtime error")
	body := errorBody(cause, fatalerror.RuntimeExit)
	if err := r.InitializationError(fatalerror.RuntimeExit, &body); err != nil {
		r.logger.WithError(err).Warn("Failed to report fatal runtime error")
	}
}
