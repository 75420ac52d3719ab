// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package rpc

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/athanorlabs/atomic-swap-btc/protocol/swap"
)

// SwapService exposes the swap Manager over JSON-RPC so swapcli can
// list ongoing and past swaps without holding its own copy of the
// protocol state.
type SwapService struct {
	manager swap.Manager
}

// NewSwapService constructs a SwapService backed by mgr.
func NewSwapService(mgr swap.Manager) *SwapService {
	return &SwapService{manager: mgr}
}

// OngoingRequest is the (empty) request for SwapService.GetOngoing.
type OngoingRequest struct{}

// OngoingResponse carries every currently-ongoing swap's summary.
type OngoingResponse struct {
	Swaps []*swap.Info `json:"swaps"`
}

// GetOngoing returns every swap whose state machine has not yet
// reached a terminal state.
func (s *SwapService) GetOngoing(_ *http.Request, _ *OngoingRequest, resp *OngoingResponse) error {
	swaps, err := s.manager.GetOngoingSwaps()
	if err != nil {
		return err
	}
	resp.Swaps = swaps
	return nil
}

// PastRequest selects which completed swap to look up.
type PastRequest struct {
	ID uuid.UUID `json:"id"`
}

// PastResponse carries a single completed swap's summary.
type PastResponse struct {
	Swap *swap.Info `json:"swap"`
}

// GetPast returns the completed swap identified by req.ID.
func (s *SwapService) GetPast(_ *http.Request, req *PastRequest, resp *PastResponse) error {
	info, err := s.manager.GetPastSwap(req.ID)
	if err != nil {
		return fmt.Errorf("rpc: swap %s: %w", req.ID, err)
	}
	resp.Swap = info
	return nil
}

// PastIDsRequest is the (empty) request for SwapService.GetPastIDs.
type PastIDsRequest struct{}

// PastIDsResponse carries every completed swap's ID.
type PastIDsResponse struct {
	IDs []uuid.UUID `json:"ids"`
}

// GetPastIDs returns the IDs of every completed swap.
func (s *SwapService) GetPastIDs(_ *http.Request, _ *PastIDsRequest, resp *PastIDsResponse) error {
	ids, err := s.manager.GetPastIDs()
	if err != nil {
		return err
	}
	resp.IDs = ids
	return nil
}
