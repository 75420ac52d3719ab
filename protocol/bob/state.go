// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

// Package bob implements the BTC-seller side of the swap protocol
// (spec §4.6) as a tagged-variant state machine: State is an interface
// with one concrete struct per named state, and transitions are free
// functions of the form func(State, ...) (State, error) rather than
// methods mutating a shared struct, mirroring protocol/alice.
package bob

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/google/uuid"

	"github.com/athanorlabs/atomic-swap-btc/adaptor"
	"github.com/athanorlabs/atomic-swap-btc/crypto/ed25519x"
	"github.com/athanorlabs/atomic-swap-btc/protocol"
)

// Session is the immutable material every one of Bob's states carries
// forward: the swap's identity, both parties' keys, the Bitcoin
// transaction templates agreed during setup, and Alice's M3
// pre-signatures.
type Session struct {
	SwapID             uuid.UUID
	Keys               *protocol.KeysAndProof     // Bob's own keys: b, s_b_xmr, v_b
	Counterparty       *protocol.CounterpartyKeys // Alice's verified keys: A, S_a_xmr, v_a
	Txs                *protocol.Transactions
	SafetyMarginBlocks uint32

	// AliceCancelSig is Alice's plain pre-signature on Cancel from
	// Message3, needed whichever side's epoch watcher fires first.
	AliceCancelSig []byte

	// AlicePartialRefundEncSig is Alice's adaptor signature on
	// PartialRefund from Message3, encrypted under Bob's own Monero
	// spend point — Bob decrypts it with his own secret once he needs
	// to refund, combines it with his own plain signature, and
	// broadcasting it reveals nothing new to him (he already knows
	// s_b) but lets Alice recover s_b from the chain.
	AlicePartialRefundEncSig *adaptor.EncryptedSignature
}

// State is one point in Bob's swap state machine. Every concrete state
// stores exactly the material reaching it needs.
type State interface {
	fmt.Stringer
	Session() Session
	// Terminal reports whether this state has no further transitions.
	Terminal() bool
}

type base struct {
	session Session
}

func (b base) Session() Session { return b.session }

// Started is the swap's initial state, reached once the setup
// handshake (M0-M4) has completed and every signature and DLEQ proof in
// it has verified.
type Started struct{ base }

// NewStarted constructs the initial state from a completed handshake.
func NewStarted(session Session) Started {
	return Started{base{session}}
}

func (Started) String() string { return "Started" }
func (Started) Terminal() bool { return false }

// BtcLocked is reached once Bob has funded and broadcast TxLock from
// his own wallet and it has reached finality_confirmations_btc.
type BtcLocked struct{ base }

// NewBtcLocked reconstructs this state for swap resumption.
func NewBtcLocked(session Session) BtcLocked {
	return BtcLocked{base{session}}
}

func (BtcLocked) String() string { return "BtcLocked" }
func (BtcLocked) Terminal() bool { return false }

// XmrLockProofReceived is reached once Alice's transfer proof has
// arrived over the P2P channel, before its amount has been verified.
type XmrLockProofReceived struct {
	base
	XmrTxID string
	TxKey   ed25519x.Scalar
}

// NewXmrLockProofReceived reconstructs this state for swap resumption.
func NewXmrLockProofReceived(session Session, xmrTxID string, txKey ed25519x.Scalar) XmrLockProofReceived {
	return XmrLockProofReceived{base{session}, xmrTxID, txKey}
}

func (XmrLockProofReceived) String() string { return "XmrLockProofReceived" }
func (XmrLockProofReceived) Terminal() bool { return false }

// XmrLocked is reached once Bob has verified Alice's transfer pays the
// exact agreed amount and has sent her his adaptor signature on Redeem.
type XmrLocked struct {
	base
	RedeemEncSig *adaptor.EncryptedSignature // Bob's own, kept to recover s_a later
}

// NewXmrLocked reconstructs this state for swap resumption.
func NewXmrLocked(session Session, redeemEncSig *adaptor.EncryptedSignature) XmrLocked {
	return XmrLocked{base{session}, redeemEncSig}
}

func (XmrLocked) String() string { return "XmrLocked" }
func (XmrLocked) Terminal() bool { return false }

// BtcRedeemed is terminal: Bob observed Alice's broadcast of the
// decrypted Redeem, recovered s_a from it, combined it with his own
// s_b, and swept the joint Monero wallet to his receive address pool.
type BtcRedeemed struct {
	base
	RedeemTxID      chainhash.Hash
	RecoveredSecret *ed25519x.Scalar // s_a
}

// NewBtcRedeemed reconstructs this state for swap resumption.
func NewBtcRedeemed(session Session, redeemTxID chainhash.Hash, recoveredSecret *ed25519x.Scalar) BtcRedeemed {
	return BtcRedeemed{base{session}, redeemTxID, recoveredSecret}
}

func (BtcRedeemed) String() string { return "BtcRedeemed" }
func (BtcRedeemed) Terminal() bool { return true }

// CancelTimelockExpired marks that T1 has matured; Cancel is ready to
// broadcast.
type CancelTimelockExpired struct{ base }

// NewCancelTimelockExpired reconstructs this state for swap resumption.
func NewCancelTimelockExpired(session Session) CancelTimelockExpired {
	return CancelTimelockExpired{base{session}}
}

func (CancelTimelockExpired) String() string { return "CancelTimelockExpired" }
func (CancelTimelockExpired) Terminal() bool { return false }

// BtcCancelled is reached once Bob has broadcast Cancel.
type BtcCancelled struct{ base }

// NewBtcCancelled reconstructs this state for swap resumption.
func NewBtcCancelled(session Session) BtcCancelled {
	return BtcCancelled{base{session}}
}

func (BtcCancelled) String() string { return "BtcCancelled" }
func (BtcCancelled) Terminal() bool { return false }

// BtcRefundPublished is reached once Bob has decrypted Alice's
// PartialRefund signature, combined it with his own, and broadcast the
// result, before it has accumulated any confirmations.
type BtcRefundPublished struct{ base }

// NewBtcRefundPublished reconstructs this state for swap resumption.
func NewBtcRefundPublished(session Session) BtcRefundPublished {
	return BtcRefundPublished{base{session}}
}

func (BtcRefundPublished) String() string { return "BtcRefundPublished" }
func (BtcRefundPublished) Terminal() bool { return false }

// BtcRefunded is terminal: Refund reached finality. Publishing it
// lets Alice recover Bob's s_b from the chain; Bob learns nothing new
// from it.
type BtcRefunded struct{ base }

// NewBtcRefunded reconstructs this state for swap resumption.
func NewBtcRefunded(session Session) BtcRefunded {
	return BtcRefunded{base{session}}
}

func (BtcRefunded) String() string { return "BtcRefunded" }
func (BtcRefunded) Terminal() bool { return true }

// BtcPunished is terminal: the punish timelock matured without Bob
// publishing Refund and Alice broadcast Punish, claiming the entire
// locked amount. Bob loses his funds.
type BtcPunished struct{ base }

// NewBtcPunished reconstructs this state for swap resumption.
func NewBtcPunished(session Session) BtcPunished {
	return BtcPunished{base{session}}
}

func (BtcPunished) String() string { return "BtcPunished" }
func (BtcPunished) Terminal() bool { return true }

// BtcEarlyRefundable marks that Alice has cooperated in aborting the
// swap before T1 by sending her EarlyRefund signature.
type BtcEarlyRefundable struct {
	base
	AliceEarlyRefundSig []byte
}

// NewBtcEarlyRefundable reconstructs this state for swap resumption.
func NewBtcEarlyRefundable(session Session, aliceEarlyRefundSig []byte) BtcEarlyRefundable {
	return BtcEarlyRefundable{base{session}, aliceEarlyRefundSig}
}

func (BtcEarlyRefundable) String() string { return "BtcEarlyRefundable" }
func (BtcEarlyRefundable) Terminal() bool { return false }

// BtcEarlyRefunded is terminal: Bob co-signed and broadcast
// EarlyRefund.
type BtcEarlyRefunded struct{ base }

// NewBtcEarlyRefunded reconstructs this state for swap resumption.
func NewBtcEarlyRefunded(session Session) BtcEarlyRefunded {
	return BtcEarlyRefunded{base{session}}
}

func (BtcEarlyRefunded) String() string { return "BtcEarlyRefunded" }
func (BtcEarlyRefunded) Terminal() bool { return true }

// SafelyAborted is terminal: the swap ended before Bitcoin was ever
// locked, so nothing further is owed on either side.
type SafelyAborted struct {
	base
	Reason error
}

// NewSafelyAborted reconstructs this state for swap resumption.
func NewSafelyAborted(session Session, reason error) SafelyAborted {
	return SafelyAborted{base{session}, reason}
}

func (s SafelyAborted) String() string { return fmt.Sprintf("SafelyAborted(%v)", s.Reason) }
func (SafelyAborted) Terminal() bool   { return true }
