// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 5 * time.Second

func newInvokeRouter(h http.Handler) http.Handler {
	router := chi.NewRouter()
	router.Post("/2015-03-31/functions/function/invocations", h.ServeHTTP)
	router.Post("/2015-03-31/functions/{function}/invocations", h.ServeHTTP)
	return router
}

// serveInvokes runs the invoke endpoint until ctx is done.
func serveInvokes(ctx context.Context, ipport string, h http.Handler) error {
	srv := &http.Server{
		Addr:    ipport,
		Handler: newInvokeRouter(h),
	}

	serveErrors := make(chan error, 1)
	go func() {
		log.Warnf("Listening on %s", ipport)
		serveErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return ctx.Err()
	}
}
