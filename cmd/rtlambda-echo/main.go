// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	log "github.com/sirupsen/logrus"

	"github.com/rtlambda/rtlambda-go/lambda/echo"
	"github.com/rtlambda/rtlambda-go/lambda/logging"
	"github.com/rtlambda/rtlambda-go/lambda/loop"
	"github.com/rtlambda/rtlambda-go/lambda/transport"
)

type options struct {
	LogLevel   string        `long:"log-level" default:"info" description:"log level"`
	APIVersion string        `long:"api-version" default:"2018-06-01" description:"Runtime API version"`
	Timeout    time.Duration `long:"timeout" default:"30s" description:"timeout of report calls to the Runtime API"`
}

func main() {
	opts := getCLIArgs()
	if err := logging.SetLogLevel(opts.LogLevel); err != nil {
		log.WithError(err).Fatal("Failed to set log level")
	}

	tr := transport.NewHTTPTransport(transport.WithTimeout(opts.Timeout))
	if err := loop.StartWithTransport(opts.APIVersion, tr, echo.Initialize); err != nil {
		log.WithError(err).Fatal("Runtime terminated")
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
