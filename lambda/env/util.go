// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package env

import (
	"errors"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// LookupFunc resolves one environment variable, with the os.LookupEnv contract.
type LookupFunc func(key string) (string, bool)

// SetenvFunc publishes one process-wide environment variable.
type SetenvFunc func(key, value string) error

func SplitEnvironmentVariable(envKeyVal string) (string, string, error) {
	splitKeyVal := strings.SplitN(envKeyVal, "=", 2) // values can contain '='
	if len(splitKeyVal) < 2 {
		return "", "", errors.New("could not split env var by '=' delimiter")
	}
	return splitKeyVal[0], splitKeyVal[1], nil
}

// LookupFromEnviron builds a LookupFunc over KEY=VALUE strings, as returned
// by os.Environ. Entries without '=' are skipped; later entries win.
func LookupFromEnviron(environ []string) LookupFunc {
	vars := make(map[string]string, len(environ))
	for _, keyval := range environ {
		key, val, err := SplitEnvironmentVariable(keyval)
		if err != nil {
			log.Warnf("Environment variable with invalid format: %s", err)
			continue
		}
		vars[key] = val
	}
	return func(key string) (string, bool) {
		val, ok := vars[key]
		return val, ok
	}
}

func lookupString(lookup LookupFunc, key string) *string {
	val, ok := lookup(key)
	if !ok {
		return nil
	}
	return &val
}

var _ LookupFunc = os.LookupEnv
var _ SetenvFunc = os.Setenv
