// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

// Package rpc provides the HTTP JSON-RPC and websocket server swapd
// exposes to swapcli and other local clients. It is a thin surface
// over protocol/swap.Manager and protocol/backend.Backend: the core
// engine (protocol/alice, protocol/bob, protocol/coordinator) runs
// independently of whether anything is listening on this port.
package rpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	gorillarpc "github.com/gorilla/rpc/v2"
	logging "github.com/ipfs/go-log/v2"

	"github.com/athanorlabs/atomic-swap-btc/protocol/backend"
	"github.com/athanorlabs/atomic-swap-btc/protocol/swap"
)

// Namespace names recognized by Config.Namespaces, mirroring the
// teacher's DaemonNamespace/SwapNamespace/NetNamespace split minus the
// Ethereum-specific "personal" namespace, which had no Bitcoin/Monero
// analogue.
const (
	DaemonNamespace = "daemon"
	SwapNamespace   = "swap"
	NetNamespace    = "net"
)

var log = logging.Logger("rpc")

// AllNamespaces returns every namespace this server knows how to serve.
func AllNamespaces() map[string]struct{} {
	return map[string]struct{}{
		DaemonNamespace: {},
		SwapNamespace:   {},
		NetNamespace:    {},
	}
}

// Config bundles everything NewServer needs to stand up the daemon's
// RPC surface.
type Config struct {
	Ctx        context.Context
	Address    string // "IP:port"
	Backend    *backend.Backend
	Manager    swap.Manager
	Namespaces map[string]struct{}
}

// Server is the HTTP server backing the JSON-RPC and websocket
// endpoints.
type Server struct {
	ctx        context.Context
	cancel     context.CancelFunc
	listener   net.Listener
	httpServer *http.Server
}

// NewServer constructs and binds (but does not yet Start) the RPC
// server described by cfg.
func NewServer(cfg *Config) (*Server, error) {
	rpcServer := gorillarpc.NewServer()
	rpcServer.RegisterCodec(NewCodec(), "application/json")

	serverCtx, serverCancel := context.WithCancel(cfg.Ctx)

	var ws *wsServer
	for ns := range cfg.Namespaces {
		var err error
		switch ns {
		case DaemonNamespace:
			err = rpcServer.RegisterService(NewDaemonService(serverCancel), DaemonNamespace)
		case SwapNamespace:
			err = rpcServer.RegisterService(NewSwapService(cfg.Manager), SwapNamespace)
			ws = newWsServer(serverCtx, cfg.Manager)
		case NetNamespace:
			err = rpcServer.RegisterService(NewNetService(cfg.Backend), NetNamespace)
		default:
			err = fmt.Errorf("rpc: unknown namespace %q", ns)
		}
		if err != nil {
			serverCancel()
			return nil, err
		}
	}

	lc := net.ListenConfig{}
	ln, err := lc.Listen(serverCtx, "tcp", cfg.Address)
	if err != nil {
		serverCancel()
		return nil, err
	}

	r := mux.NewRouter()
	r.Handle("/", rpcServer)
	if ws != nil {
		r.Handle("/ws", ws)
	}

	headersOk := handlers.AllowedHeaders([]string{"content-type"})
	methodsOk := handlers.AllowedMethods([]string{"GET", "HEAD", "POST", "OPTIONS"})
	originsOk := handlers.AllowedOrigins([]string{"*"})

	httpServer := &http.Server{
		Addr:              ln.Addr().String(),
		ReadHeaderTimeout: time.Second,
		Handler:           handlers.CORS(headersOk, methodsOk, originsOk)(r),
		BaseContext: func(net.Listener) context.Context {
			return serverCtx
		},
	}

	return &Server{
		ctx:        serverCtx,
		cancel:     serverCancel,
		listener:   ln,
		httpServer: httpServer,
	}, nil
}

// HTTPURL returns the URL swapcli sends JSON-RPC requests to.
func (s *Server) HTTPURL() string {
	return fmt.Sprintf("http://%s", s.httpServer.Addr)
}

// WSURL returns the URL swapcli opens a websocket subscription against.
func (s *Server) WSURL() string {
	return fmt.Sprintf("ws://%s/ws", s.httpServer.Addr)
}

// Start serves until ctx is cancelled or the listener errors.
func (s *Server) Start() error {
	if s.ctx.Err() != nil {
		return s.ctx.Err()
	}

	log.Infof("starting RPC server on %s", s.HTTPURL())

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- s.httpServer.Serve(s.listener)
	}()

	select {
	case <-s.ctx.Done():
		shutdownErr := s.httpServer.Shutdown(s.ctx)
		if shutdownErr != nil && !errors.Is(shutdownErr, context.Canceled) {
			log.Warnf("RPC server shutdown errored: %s", shutdownErr)
		}
		return s.ctx.Err()
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("RPC server failed: %s", err)
		} else {
			log.Info("RPC server shut down")
		}
		return err
	}
}

// Stop gracefully shuts the server down.
func (s *Server) Stop() error {
	s.cancel()
	return s.httpServer.Shutdown(context.Background())
}
