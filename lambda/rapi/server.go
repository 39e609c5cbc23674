// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/chi"
	log "github.com/sirupsen/logrus"

	"github.com/rtlambda/rtlambda-go/lambda/rapi/model"
)

const version20180601 = "/2018-06-01"

// Server is a Runtime API server for a single runtime.
type Server struct {
	host       string
	port       int
	server     *http.Server
	listener   net.Listener
	dispatcher *Dispatcher
}

// NewServer creates a new Runtime API Server
//
// Unlike net/http server's ListenAndServe, we separate Listen()
// and Serve(), this is done to guarantee order: call to Listen()
// should happen before the runtime is started.
//
// When port is 0, OS will dynamically allocate the listening port.
func NewServer(host string, port int) *Server {
	dispatcher := NewDispatcher()

	router := chi.NewRouter()
	router.Mount(version20180601, NewRouter(dispatcher))

	return &Server{
		host:       host,
		port:       port,
		server:     &http.Server{Handler: router},
		dispatcher: dispatcher,
	}
}

// Listen on port
func (s *Server) Listen() error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	s.listener = ln
	if s.port == 0 {
		s.port = ln.Addr().(*net.TCPAddr).Port
		log.WithField("port", s.port).Info("Listening port was dynamically allocated")
	}

	log.Debugf("Runtime API Server listening on %s:%d", s.host, s.port)

	return nil
}

func (s *Server) IsListening() bool {
	return s.listener != nil
}

// Serve requests until ctx is cancelled. Cancellation closes the listener
// and every open connection, including a runtime blocked on /next.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		return errors.New("Runtime API Server is not listening")
	}
	defer s.Close()

	select {
	case err := <-s.serveAsync():
		return err

	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) serveAsync() chan error {
	serveErrors := make(chan error, 1)
	go func() {
		serveErrors <- s.server.Serve(s.listener)
	}()

	return serveErrors
}

// Address is the value runtimes expect in AWS_LAMBDA_RUNTIME_API.
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.host, s.port)
}

// Invoke queues an invocation for the runtime and waits for its report.
func (s *Server) Invoke(ctx context.Context, payload []byte, opts InvokeOptions) (*model.Report, error) {
	return s.dispatcher.Invoke(ctx, payload, opts)
}

// InitError returns the last initialization error reported by the runtime.
func (s *Server) InitError() (*model.Report, bool) {
	return s.dispatcher.InitError()
}

// Close forcefully closes listeners & connections
func (s *Server) Close() error {
	err := s.server.Close()
	if err == nil {
		log.Info("Runtime API Server closed")
	}
	return err
}

// Shutdown gracefully shuts down server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
