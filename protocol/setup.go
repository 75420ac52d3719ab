// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package protocol

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/athanorlabs/atomic-swap-btc/crypto/ed25519x"
	"github.com/athanorlabs/atomic-swap-btc/crypto/secp256k1"
	"github.com/athanorlabs/atomic-swap-btc/dleq"
	"github.com/athanorlabs/atomic-swap-btc/net/message"
)

// ErrSwapIDMismatch is returned when a message's SwapID does not match
// the swap it's being applied to.
var ErrSwapIDMismatch = errors.New("protocol: swap ID mismatch")

// CounterpartyKeys is the verified result of decoding and checking a
// counterparty's key-exchange message: their Bitcoin signing key, their
// Monero spend point, and their view-key share. Every field has already
// passed DLEQ verification by the time this is returned, satisfying
// spec §4.4's "every DLEQ verifies before its point is used" invariant.
type CounterpartyKeys struct {
	BitcoinPubKey    *secp256k1.PublicKey
	MoneroSpendPoint *ed25519x.Point
	ViewKeyShare     *ed25519x.Scalar
}

// Message0Fees bundles the Bitcoin fees Bob pre-computes for the
// transactions his M0 commits to.
type Message0Fees struct {
	RefundSats        int64
	PartialRefundSats int64
	CancelSats        int64
}

// NewMessage0 builds Bob's opening offer.
func NewMessage0(swapID uuid.UUID, keys *KeysAndProof, refundAddress string, fees Message0Fees) *message.Message0 {
	return &message.Message0{
		SwapID:               swapID,
		BitcoinPubKey:        keys.BitcoinPublicKey().Bytes(),
		MoneroSpendPoint:     pointBytes(keys.MoneroSpendPoint()),
		DLEqProof:            keys.Proof.Encode(),
		MoneroViewKeyShare:   scalarBytes(keys.ViewKeyShare),
		BitcoinRefundAddress: refundAddress,
		RefundFeeSats:        fees.RefundSats,
		PartialRefundFeeSats: fees.PartialRefundSats,
		CancelFeeSats:        fees.CancelSats,
	}
}

// VerifyMessage0 decodes and verifies m against swapID, returning Bob's
// verified key material.
func VerifyMessage0(swapID uuid.UUID, m *message.Message0) (*CounterpartyKeys, error) {
	if m.SwapID != swapID {
		return nil, ErrSwapIDMismatch
	}
	return verifyKeyExchange(m.BitcoinPubKey, m.MoneroSpendPoint, m.DLEqProof, m.MoneroViewKeyShare)
}

// Message1Fees bundles the Bitcoin fees Alice pre-computes for the
// transactions her M1 commits to, plus the amnesty carve-out amount.
type Message1Fees struct {
	RedeemSats  int64
	PunishSats  int64
	AmnestySats int64
}

// NewMessage1 builds Alice's counter-offer.
func NewMessage1(swapID uuid.UUID, keys *KeysAndProof, redeemAddress, punishAddress string, fees Message1Fees) *message.Message1 {
	return &message.Message1{
		SwapID:               swapID,
		BitcoinPubKey:        keys.BitcoinPublicKey().Bytes(),
		MoneroSpendPoint:     pointBytes(keys.MoneroSpendPoint()),
		DLEqProof:            keys.Proof.Encode(),
		MoneroViewKeyShare:   scalarBytes(keys.ViewKeyShare),
		BitcoinRedeemAddress: redeemAddress,
		BitcoinPunishAddress: punishAddress,
		RedeemFeeSats:        fees.RedeemSats,
		PunishFeeSats:        fees.PunishSats,
		AmnestySats:          fees.AmnestySats,
	}
}

// VerifyMessage1 decodes and verifies m against swapID, returning
// Alice's verified key material.
func VerifyMessage1(swapID uuid.UUID, m *message.Message1) (*CounterpartyKeys, error) {
	if m.SwapID != swapID {
		return nil, ErrSwapIDMismatch
	}
	return verifyKeyExchange(m.BitcoinPubKey, m.MoneroSpendPoint, m.DLEqProof, m.MoneroViewKeyShare)
}

func verifyKeyExchange(btcPubKey, xmrSpendPoint, dleqProof, viewKeyShare []byte) (*CounterpartyKeys, error) {
	sBtc, err := secp256k1.NewPublicKeyFromBytes(btcPubKey)
	if err != nil {
		return nil, fmt.Errorf("protocol: invalid bitcoin pubkey: %w", err)
	}

	sXmr, err := ed25519x.NewPointFromBytes(xmrSpendPoint)
	if err != nil {
		return nil, fmt.Errorf("protocol: invalid monero spend point: %w", err)
	}

	proof, err := dleq.DecodeProof(dleqProof, sBtc, sXmr)
	if err != nil {
		return nil, fmt.Errorf("protocol: malformed dleq proof: %w", err)
	}

	if _, err := dleq.Verify(proof); err != nil {
		return nil, fmt.Errorf("protocol: dleq verification failed: %w", err)
	}

	viewShare, err := ed25519x.NewScalarFromCanonicalBytes(viewKeyShare)
	if err != nil {
		return nil, fmt.Errorf("protocol: invalid view key share: %w", err)
	}

	return &CounterpartyKeys{
		BitcoinPubKey:    sBtc,
		MoneroSpendPoint: sXmr,
		ViewKeyShare:     viewShare,
	}, nil
}

func pointBytes(p *ed25519x.Point) []byte {
	b := p.Bytes()
	return b[:]
}

func scalarBytes(s *ed25519x.Scalar) []byte {
	b := s.Bytes()
	return b[:]
}
