// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package message

import (
	"fmt"

	"github.com/google/uuid"
)

// Quote is a price quote exchanged ahead of the setup handshake.
type Quote struct {
	ExchangeRate string // decimal XMR-per-BTC rate
	MinBitcoin   int64  // satoshis
	MaxBitcoin   int64  // satoshis
}

// String implements fmt.Stringer.
func (q *Quote) String() string {
	return fmt.Sprintf("Quote rate=%s min=%d max=%d", q.ExchangeRate, q.MinBitcoin, q.MaxBitcoin)
}

// Type implements Message.
func (q *Quote) Type() Type { return TypeQuote }

// Encode implements Message.
func (q *Quote) Encode() ([]byte, error) { return encode(TypeQuote, q) }

// TransferProofMessage carries Alice's Monero transfer receipt to Bob
// once she has locked her XMR.
type TransferProofMessage struct {
	SwapID uuid.UUID
	TxID   string
	TxKey  []byte // 32-byte little-endian ed25519 scalar
}

// String implements fmt.Stringer.
func (m *TransferProofMessage) String() string {
	return fmt.Sprintf("TransferProof SwapID=%s TxID=%s", m.SwapID, m.TxID)
}

// Type implements Message.
func (m *TransferProofMessage) Type() Type { return TypeTransferProof }

// Encode implements Message.
func (m *TransferProofMessage) Encode() ([]byte, error) { return encode(TypeTransferProof, m) }

// EncryptedSignatureMessage carries a single adaptor-encrypted
// signature sent outside the M0-M4 handshake, e.g. a late-arriving
// full-refund encrypted signature negotiated after setup.
type EncryptedSignatureMessage struct {
	SwapID    uuid.UUID
	Purpose   string // e.g. "full_refund"
	EncSigned []byte
}

// String implements fmt.Stringer.
func (m *EncryptedSignatureMessage) String() string {
	return fmt.Sprintf("EncryptedSignature SwapID=%s Purpose=%s", m.SwapID, m.Purpose)
}

// Type implements Message.
func (m *EncryptedSignatureMessage) Type() Type { return TypeEncryptedSignature }

// Encode implements Message.
func (m *EncryptedSignatureMessage) Encode() ([]byte, error) { return encode(TypeEncryptedSignature, m) }

// CooperativeRedeemMessage is Alice's post-punish request that a relayer
// (or Bob, acting as one) broadcast her redeem transaction on her
// behalf in exchange for a relay fee.
type CooperativeRedeemMessage struct {
	SwapID      uuid.UUID
	SignedTxHex string
	RelayFeeSats int64
}

// String implements fmt.Stringer.
func (m *CooperativeRedeemMessage) String() string {
	return fmt.Sprintf("CooperativeRedeem SwapID=%s RelayFeeSats=%d", m.SwapID, m.RelayFeeSats)
}

// Type implements Message.
func (m *CooperativeRedeemMessage) Type() Type { return TypeCooperativeRedeem }

// Encode implements Message.
func (m *CooperativeRedeemMessage) Encode() ([]byte, error) { return encode(TypeCooperativeRedeem, m) }
