// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package loop

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/rtlambda/rtlambda-go/lambda/env"
	"github.com/rtlambda/rtlambda-go/lambda/interop"
	"github.com/rtlambda/rtlambda-go/lambda/transport"
)

var (
	defaultExit = os.Exit
	exitFunc    = defaultExit
)

// Start runs the runtime loop against the process environment over HTTP and
// never returns. A fatal error is logged and the process exits with status 1.
func Start[OUT any](initializer Initializer[OUT], opts ...Option) {
	if err := StartWithTransport(LambdaVersion, transport.NewHTTPTransport(), initializer, opts...); err != nil {
		log.WithError(err).Error("Runtime terminated")
		exitFunc(1)
	}
}

// StartWithTransport snapshots the process environment, publishes it to
// lambdacontext and runs the loop over t. It returns only on a fatal error.
func StartWithTransport[OUT any](version string, t transport.Transport, initializer Initializer[OUT], opts ...Option) error {
	snapshot, err := env.FromEnvironment()
	if err != nil {
		return interop.Fatal(err)
	}
	snapshot.PublishLambdaContext()

	rt, err := New(version, snapshot, t, initializer, opts...)
	if err != nil {
		return err
	}
	return rt.Run()
}
