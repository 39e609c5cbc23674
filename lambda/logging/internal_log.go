// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

// SetOutput configures logging output for standard loggers.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
	logrus.SetOutput(w)
}

// SetLogLevel parses level and applies it together with InternalFormatter.
func SetLogLevel(level string) error {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q, valid log levels are %v: %w", level, logrus.AllLevels, err)
	}

	logrus.SetLevel(parsed)
	logrus.SetFormatter(&InternalFormatter{})
	return nil
}

// InternalFormatter renders runtime logs as
// `<RFC3339 UTC time> [<level>] <message> key=value ...` with sorted keys.
type InternalFormatter struct{}

// Format implements logrus.Formatter.
func (f *InternalFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	b := &bytes.Buffer{}
	if entry.Buffer != nil {
		b = entry.Buffer
	}

	fmt.Fprintf(b, "%s [%s] %s", entry.Time.UTC().Format(time.RFC3339Nano), entry.Level.String(), entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for key := range entry.Data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(b, " %s=%v", key, entry.Data[key])
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}
