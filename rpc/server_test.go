// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/athanorlabs/atomic-swap-btc/db"
	"github.com/athanorlabs/atomic-swap-btc/protocol/swap"
)

type rpcEnvelope struct {
	Version string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
	ID      uint64      `json:"id"`
}

type rpcReply struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func doCall(t *testing.T, url, method string, params interface{}) rpcReply {
	t.Helper()

	body, err := json.Marshal(rpcEnvelope{Version: "2.0", Method: method, Params: []interface{}{params}, ID: 1})
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck

	var reply rpcReply
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reply))
	return reply
}

func TestSwapNamespaceListsOngoingAndPastSwaps(t *testing.T) {
	bdb, err := db.Open(filepath.Join(t.TempDir(), "swapd.db"))
	require.NoError(t, err)
	defer bdb.Close() //nolint:errcheck

	manager, err := swap.NewManager(bdb)
	require.NoError(t, err)

	ongoing := &swap.Info{ID: uuid.New(), IsAlice: true, Status: swap.StatusOngoing, StartTime: time.Now()}
	require.NoError(t, manager.AddSwap(ongoing))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server, err := NewServer(&Config{
		Ctx:        ctx,
		Address:    "127.0.0.1:0",
		Manager:    manager,
		Namespaces: map[string]struct{}{SwapNamespace: {}, DaemonNamespace: {}},
	})
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		_ = server.Start()
		close(done)
	}()
	defer func() {
		cancel()
		<-done
	}()

	// Give the listener a moment to accept connections.
	time.Sleep(50 * time.Millisecond)

	reply := doCall(t, server.HTTPURL(), "swap.GetOngoing", struct{}{})
	require.Nil(t, reply.Error)

	var ongoingResp struct {
		Swaps []*swap.Info `json:"swaps"`
	}
	require.NoError(t, json.Unmarshal(reply.Result, &ongoingResp))
	require.Len(t, ongoingResp.Swaps, 1)
	require.Equal(t, ongoing.ID, ongoingResp.Swaps[0].ID)
}
