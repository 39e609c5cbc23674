// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rtlambda/rtlambda-go/lambda/env"
	"github.com/rtlambda/rtlambda-go/lambda/echo"
	"github.com/rtlambda/rtlambda-go/lambda/logging"
	"github.com/rtlambda/rtlambda-go/lambda/loop"
	"github.com/rtlambda/rtlambda-go/lambda/rapi"
	"github.com/rtlambda/rtlambda-go/lambda/transport"
)

type options struct {
	LogLevel        string        `long:"log-level" default:"info" description:"log level"`
	InvokeAddress   string        `long:"listen" default:"127.0.0.1:8080" description:"address of the invoke endpoint"`
	APIHost         string        `long:"api-host" default:"127.0.0.1" description:"Runtime API host"`
	APIPort         int           `long:"api-port" default:"9001" description:"Runtime API port, 0 picks a free one"`
	FunctionName    string        `long:"function-name" default:"function" description:"function name used in the invoked function ARN"`
	FunctionTimeout time.Duration `long:"function-timeout" default:"3s" description:"invocation deadline"`
}

func main() {
	opts := getCLIArgs()
	if err := logging.SetLogLevel(opts.LogLevel); err != nil {
		log.WithError(err).Fatal("Failed to set log level")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil && ctx.Err() == nil {
		log.WithError(err).Fatal("Local emulator terminated")
	}
	log.Info("Local emulator stopped")
}

// run supervises the Runtime API server, the invoke endpoint and the echo
// runtime. The first one to fail stops the others.
func run(ctx context.Context, opts options) error {
	server := rapi.NewServer(opts.APIHost, opts.APIPort)
	if err := server.Listen(); err != nil {
		return err
	}

	snapshot, err := env.NewSnapshot(runtimeLookup(server.Address(), os.LookupEnv))
	if err != nil {
		return err
	}
	snapshot.PublishLambdaContext()

	runtime, err := loop.New(loop.LambdaVersion, snapshot, transport.NewHTTPTransport(), echo.Initialize)
	if err != nil {
		return err
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return server.Serve(groupCtx)
	})
	group.Go(func() error {
		return serveInvokes(groupCtx, opts.InvokeAddress, newInvokeHandler(server, opts))
	})
	group.Go(runtime.Run)

	return group.Wait()
}

// runtimeLookup points the runtime at the in-process Runtime API and falls
// back to lookup for every other variable.
func runtimeLookup(address string, lookup env.LookupFunc) env.LookupFunc {
	return func(key string) (string, bool) {
		if key == "AWS_LAMBDA_RUNTIME_API" {
			return address, true
		}
		return lookup(key)
	}
}

func getCLIArgs() options {
	var opts options
	parser := flags.NewParser(&opts, flags.IgnoreUnknown)
	if _, err := parser.ParseArgs(os.Args); err != nil {
		log.WithError(err).Fatal("Failed to parse command line arguments:", os.Args)
	}

	return opts
}
