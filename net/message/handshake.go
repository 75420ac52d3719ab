// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package message

import (
	"fmt"

	"github.com/google/uuid"
)

// Message0 is Bob's opening offer of setup parameters.
type Message0 struct {
	SwapID uuid.UUID

	BitcoinPubKey      []byte // B, compressed secp256k1 point
	MoneroSpendPoint   []byte // S_b_xmr, compressed ed25519 point
	DLEqProof          []byte // proves S_b_xmr shares a discrete log with BitcoinPubKey
	MoneroViewKeyShare []byte // v_b, 32-byte little-endian scalar

	BitcoinRefundAddress string

	RefundFeeSats        int64
	PartialRefundFeeSats int64
	CancelFeeSats        int64
}

// String implements fmt.Stringer.
func (m *Message0) String() string {
	return fmt.Sprintf("Message0 SwapID=%s BitcoinRefundAddress=%s", m.SwapID, m.BitcoinRefundAddress)
}

// Type implements Message.
func (m *Message0) Type() Type { return TypeMessage0 }

// Encode implements Message.
func (m *Message0) Encode() ([]byte, error) { return encode(TypeMessage0, m) }

// Message1 is Alice's counter-offer of setup parameters.
type Message1 struct {
	SwapID uuid.UUID

	BitcoinPubKey      []byte // A, compressed secp256k1 point
	MoneroSpendPoint   []byte // S_a_xmr, compressed ed25519 point
	DLEqProof          []byte
	MoneroViewKeyShare []byte // v_a

	BitcoinRedeemAddress string
	BitcoinPunishAddress string

	RedeemFeeSats int64
	PunishFeeSats int64
	AmnestySats   int64
}

// String implements fmt.Stringer.
func (m *Message1) String() string {
	return fmt.Sprintf("Message1 SwapID=%s BitcoinRedeemAddress=%s AmnestySats=%d",
		m.SwapID, m.BitcoinRedeemAddress, m.AmnestySats)
}

// Type implements Message.
func (m *Message1) Type() Type { return TypeMessage1 }

// Encode implements Message.
func (m *Message1) Encode() ([]byte, error) { return encode(TypeMessage1, m) }

// Message2 carries Bob's funded TxLock PSBT.
type Message2 struct {
	SwapID uuid.UUID
	PSBT   []byte
}

// String implements fmt.Stringer.
func (m *Message2) String() string {
	return fmt.Sprintf("Message2 SwapID=%s PSBTLen=%d", m.SwapID, len(m.PSBT))
}

// Type implements Message.
func (m *Message2) Type() Type { return TypeMessage2 }

// Encode implements Message.
func (m *Message2) Encode() ([]byte, error) { return encode(TypeMessage2, m) }

// Message3 carries Alice's cancel signature and her encrypted refund
// signature(s). FullRefundEncSig and AmnestySig are both optional: Alice
// may pre-commit to waiving the amnesty carve-out at setup time by
// sending FullRefundEncSig, or leave the decision for refund time via
// the separate TxRefundBurn/TxFinalAmnesty cooperative path.
type Message3 struct {
	SwapID uuid.UUID

	CancelSig           []byte
	PartialRefundEncSig []byte // adaptor.EncryptedSignature encoding
	FullRefundEncSig    []byte `cbor:",omitempty"`
	AmnestySig          []byte `cbor:",omitempty"`
}

// String implements fmt.Stringer.
func (m *Message3) String() string {
	return fmt.Sprintf("Message3 SwapID=%s hasFullRefund=%t hasAmnestySig=%t",
		m.SwapID, len(m.FullRefundEncSig) > 0, len(m.AmnestySig) > 0)
}

// Type implements Message.
func (m *Message3) Type() Type { return TypeMessage3 }

// Encode implements Message.
func (m *Message3) Encode() ([]byte, error) { return encode(TypeMessage3, m) }

// Message4 carries Bob's punish, cancel, and early-refund signatures.
type Message4 struct {
	SwapID uuid.UUID

	PunishSig      []byte
	CancelSig      []byte
	EarlyRefundSig []byte `cbor:",omitempty"`
}

// String implements fmt.Stringer.
func (m *Message4) String() string {
	return fmt.Sprintf("Message4 SwapID=%s hasEarlyRefund=%t", m.SwapID, len(m.EarlyRefundSig) > 0)
}

// Type implements Message.
func (m *Message4) Type() Type { return TypeMessage4 }

// Encode implements Message.
func (m *Message4) Encode() ([]byte, error) { return encode(TypeMessage4, m) }
