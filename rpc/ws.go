// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package rpc

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/athanorlabs/atomic-swap-btc/protocol/swap"
)

// statusPollInterval is how often a subscription re-checks its swap's
// Info for a status change. The swap's actual progress is driven by
// protocol/coordinator on its own schedule (bounded by on-chain
// timelocks, not a fixed tick); this interval only governs how promptly
// a websocket client is told about the change.
const statusPollInterval = 2 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// wsServer handles GET /ws?id=<swap-id>, streaming JSON-encoded
// swap.Info updates for that swap until it reaches a terminal status or
// the client disconnects.
type wsServer struct {
	ctx     context.Context
	manager swap.Manager
}

func newWsServer(ctx context.Context, mgr swap.Manager) *wsServer {
	return &wsServer{ctx: ctx, manager: mgr}
}

func (w *wsServer) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(rw, "missing or invalid swap id", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(rw, r, nil)
	if err != nil {
		log.Warnf("ws upgrade failed: %s", err)
		return
	}
	defer conn.Close() //nolint:errcheck

	ticker := time.NewTicker(statusPollInterval)
	defer ticker.Stop()

	var last swap.Status
	first := true

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
			info, err := w.manager.GetOngoingSwap(id)
			if err != nil {
				// No longer ongoing; report the final record once, then stop.
				past, pastErr := w.manager.GetPastSwap(id)
				if pastErr != nil {
					return
				}
				if err := conn.WriteJSON(past); err != nil {
					return
				}
				return
			}

			if first || info.Status != last {
				if err := conn.WriteJSON(info); err != nil {
					return
				}
				last = info.Status
				first = false
			}

			if !info.Status.IsOngoing() {
				return
			}
		}
	}
}
