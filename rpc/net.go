// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package rpc

import (
	"net/http"

	"github.com/libp2p/go-libp2p/core/peer"

	"github.com/athanorlabs/atomic-swap-btc/net/message"
	"github.com/athanorlabs/atomic-swap-btc/protocol/backend"
)

// NetService exposes the narrow slice of the P2P transport a local
// client needs directly: requesting a cooperative redeem relay after a
// punish. Routine message exchange (setup, transfer proof, encrypted
// signature) flows through protocol/coordinator, not this namespace.
type NetService struct {
	be *backend.Backend
}

// NewNetService constructs a NetService backed by be.
func NewNetService(be *backend.Backend) *NetService {
	return &NetService{be: be}
}

// CooperativeRedeemRequest asks a counterparty, identified by PeerID, to
// relay a cooperative-redeem transaction.
type CooperativeRedeemRequest struct {
	PeerID string                            `json:"peerID"`
	Body   message.CooperativeRedeemMessage `json:"body"`
}

// CooperativeRedeemResponse carries the counterparty's reply, if any.
type CooperativeRedeemResponse struct {
	Accepted bool                               `json:"accepted"`
	Reply    *message.CooperativeRedeemMessage `json:"reply,omitempty"`
}

// SubmitCooperativeRedeem forwards req to the counterparty over the
// swap's net.Net transport.
func (s *NetService) SubmitCooperativeRedeem(
	_ *http.Request,
	req *CooperativeRedeemRequest,
	resp *CooperativeRedeemResponse,
) error {
	id, err := peer.Decode(req.PeerID)
	if err != nil {
		return err
	}

	reply, err := s.be.Net.SubmitCooperativeRedeem(id, &req.Body)
	if err != nil {
		return err
	}

	resp.Accepted = reply != nil
	resp.Reply = reply
	return nil
}
