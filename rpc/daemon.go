// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package rpc

import (
	"context"
	"net/http"
)

// DaemonService exposes process-lifecycle operations, mirroring the
// teacher's daemon namespace.
type DaemonService struct {
	shutdown context.CancelFunc
}

// NewDaemonService constructs a DaemonService whose Shutdown cancels
// the server's root context.
func NewDaemonService(shutdown context.CancelFunc) *DaemonService {
	return &DaemonService{shutdown: shutdown}
}

// ShutdownRequest is the (empty) request for DaemonService.Shutdown.
type ShutdownRequest struct{}

// ShutdownResponse is the (empty) response for DaemonService.Shutdown.
type ShutdownResponse struct{}

// Shutdown cancels the server's context, causing swapd to exit once its
// in-flight swaps reach a safe suspension point.
func (s *DaemonService) Shutdown(_ *http.Request, _ *ShutdownRequest, _ *ShutdownResponse) error {
	s.shutdown()
	return nil
}
