// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rapi

import (
	"net/http"

	"github.com/go-chi/chi"
	log "github.com/sirupsen/logrus"

	"github.com/rtlambda/rtlambda-go/lambda/rapi/handler"
)

// NewRouter returns a new instance of chi router implementing
// the runtime side of the Runtime API for one runtime.
func NewRouter(broker handler.InvocationBroker) http.Handler {
	router := chi.NewRouter()
	router.Use(accessLogMiddleware)

	router.Get("/ping", handler.NewPingHandler().ServeHTTP)

	router.Get("/runtime/invocation/next",
		handler.NewInvocationNextHandler(broker).ServeHTTP)

	router.Post("/runtime/invocation/{awsrequestid}/response",
		handler.NewInvocationResponseHandler(broker).ServeHTTP)

	router.Post("/runtime/invocation/{awsrequestid}/error",
		handler.NewInvocationErrorHandler(broker).ServeHTTP)

	router.Post("/runtime/init/error", handler.NewInitErrorHandler(broker).ServeHTTP)

	return router
}

func accessLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Debugf("API request - %s %s, Headers:%v", r.Method, r.URL, r.Header)
		next.ServeHTTP(w, r)
	})
}
