// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

// Package alice implements the XMR-seller side of the swap protocol
// (spec §4.5) as a tagged-variant state machine: State is an interface
// with one concrete struct per named state, and transitions are free
// functions of the form func(State, ...) (State, error) rather than
// methods mutating a shared struct.
package alice

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/google/uuid"

	"github.com/athanorlabs/atomic-swap-btc/adaptor"
	"github.com/athanorlabs/atomic-swap-btc/crypto/ed25519x"
	"github.com/athanorlabs/atomic-swap-btc/protocol"
)

// Session is the immutable material every one of Alice's states
// carries forward: the swap's identity, both parties' keys, the
// Bitcoin transaction templates agreed during setup, and the
// pre-signed material M3/M4 exchanged before anything is broadcast. A
// transition only ever adds information; Session itself is fixed from
// Started onward.
type Session struct {
	SwapID             uuid.UUID
	Keys               *protocol.KeysAndProof     // Alice's own keys: a, s_a_xmr, v_a
	Counterparty       *protocol.CounterpartyKeys // Bob's verified keys: B, S_b_xmr, v_b
	Txs                *protocol.Transactions
	SafetyMarginBlocks uint32

	// BobCancelSig, BobPunishSig, and BobEarlyRefundSig are Bob's
	// plain pre-signatures from Message4, needed the moment Alice
	// broadcasts each of those transactions.
	BobCancelSig      []byte
	BobPunishSig      []byte
	BobEarlyRefundSig []byte // nil unless Bob offered an early-refund cooperation

	// OwnPartialRefundEncSig is the encrypted signature on
	// PartialRefund Alice sent Bob in Message3, kept so that once Bob
	// publishes a decrypted signature on-chain, Alice can recover s_b
	// from it via adaptor.Recover.
	OwnPartialRefundEncSig *adaptor.EncryptedSignature
}

// State is one point in Alice's swap state machine. Every concrete
// state stores exactly the material reaching it needs.
type State interface {
	fmt.Stringer
	Session() Session
	// Terminal reports whether this state takes no further epoch-driven
	// transitions. BtcRefunded is terminal in this sense, yet
	// AdvanceBtcRefunded still moves it on to XmrRefunded.
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

func (Started) String() string  { return "Started" }
func (Started) Terminal() bool  { return false }

// BtcLockTransactionSeen is reached once TxLock is observed in the
// mempool, before it has accumulated any confirmations.
type BtcLockTransactionSeen struct{ base }

// NewBtcLockTransactionSeen reconstructs this state from persisted
// Session material, for resuming a swap the coordinator had already
// advanced past Started.
func NewBtcLockTransactionSeen(session Session) BtcLockTransactionSeen {
	return BtcLockTransactionSeen{base{session}}
}

func (BtcLockTransactionSeen) String() string { return "BtcLockTransactionSeen" }
func (BtcLockTransactionSeen) Terminal() bool { return false }

// BtcLocked is reached once TxLock has reached
// finality_confirmations_btc confirmations.
type BtcLocked struct{ base }

// NewBtcLocked reconstructs this state for swap resumption.
func NewBtcLocked(session Session) BtcLocked {
	return BtcLocked{base{session}}
}

func (BtcLocked) String() string { return "BtcLocked" }
func (BtcLocked) Terminal() bool { return false }

// XmrLocked is reached once Alice has sent her half of the joint
// Monero output and notified Bob of the transfer over the P2P channel.
type XmrLocked struct {
	base
	XmrTxID string
}

// NewXmrLocked reconstructs this state for swap resumption.
func NewXmrLocked(session Session, xmrTxID string) XmrLocked {
	return XmrLocked{base{session}, xmrTxID}
}

func (XmrLocked) String() string { return "XmrLocked" }
func (XmrLocked) Terminal() bool { return false }

// EncSigLearned is reached once Bob's adaptor signature on Redeem has
// verified against (B, S_a_xmr, digest(Redeem)).
type EncSigLearned struct {
	base
	XmrTxID      string
	RedeemEncSig *adaptor.EncryptedSignature
}

// NewEncSigLearned reconstructs this state for swap resumption.
func NewEncSigLearned(session Session, xmrTxID string, redeemEncSig *adaptor.EncryptedSignature) EncSigLearned {
	return EncSigLearned{base{session}, xmrTxID, redeemEncSig}
}

func (EncSigLearned) String() string { return "EncSigLearned" }
func (EncSigLearned) Terminal() bool { return false }

// BtcRedeemed is terminal: Alice decrypted Bob's signature with her own
// secret a, combined it with her own plain signature, and broadcast
// Redeem.
type BtcRedeemed struct {
	base
	RedeemTxID chainhash.Hash
}

// NewBtcRedeemed reconstructs this state for swap resumption.
func NewBtcRedeemed(session Session, redeemTxID chainhash.Hash) BtcRedeemed {
	return BtcRedeemed{base{session}, redeemTxID}
}

func (BtcRedeemed) String() string { return "BtcRedeemed" }
func (BtcRedeemed) Terminal() bool { return true }

// CancelTimelockExpired marks that T1 has matured, or that Alice
// refused to lock XMR because T1 was already within the safety margin;
// Cancel is ready to broadcast.
type CancelTimelockExpired struct{ base }

// NewCancelTimelockExpired reconstructs this state for swap resumption.
func NewCancelTimelockExpired(session Session) CancelTimelockExpired {
	return CancelTimelockExpired{base{session}}
}

func (CancelTimelockExpired) String() string { return "CancelTimelockExpired" }
func (CancelTimelockExpired) Terminal() bool { return false }

// BtcCancelled is reached once Cancel has been broadcast.
type BtcCancelled struct{ base }

// NewBtcCancelled reconstructs this state for swap resumption.
func NewBtcCancelled(session Session) BtcCancelled {
	return BtcCancelled{base{session}}
}

func (BtcCancelled) String() string { return "BtcCancelled" }
func (BtcCancelled) Terminal() bool { return false }

// BtcRefunded is terminal on the Bitcoin side: Bob published Refund and
// Alice recovered his secret s_b from it.
type BtcRefunded struct {
	base
	RecoveredSecret *ed25519x.Scalar // s_b
}

// NewBtcRefunded reconstructs this state for swap resumption.
func NewBtcRefunded(session Session, recoveredSecret *ed25519x.Scalar) BtcRefunded {
	return BtcRefunded{base{session}, recoveredSecret}
}

func (BtcRefunded) String() string { return "BtcRefunded" }
func (BtcRefunded) Terminal() bool { return true }

// XmrRefunded is terminal: Alice combined her own secret s_a with
// Bob's recovered s_b and swept the joint Monero wallet back to
// herself.
type XmrRefunded struct{ base }

// NewXmrRefunded reconstructs this state for swap resumption.
func NewXmrRefunded(session Session) XmrRefunded {
	return XmrRefunded{base{session}}
}

func (XmrRefunded) String() string { return "XmrRefunded" }
func (XmrRefunded) Terminal() bool { return true }

// BtcPunishable marks that T2 has matured without Bob publishing
// Refund; Punish is ready to broadcast.
type BtcPunishable struct{ base }

// NewBtcPunishable reconstructs this state for swap resumption.
func NewBtcPunishable(session Session) BtcPunishable {
	return BtcPunishable{base{session}}
}

func (BtcPunishable) String() string { return "BtcPunishable" }
func (BtcPunishable) Terminal() bool { return false }

// BtcPunished is terminal: Alice broadcast Punish, claiming the entire
// locked amount.
type BtcPunished struct{ base }

// NewBtcPunished reconstructs this state for swap resumption.
func NewBtcPunished(session Session) BtcPunished {
	return BtcPunished{base{session}}
}

func (BtcPunished) String() string { return "BtcPunished" }
func (BtcPunished) Terminal() bool { return true }

// BtcEarlyRefundable marks that Bob has cooperated in aborting the swap
// before T1 by sending his EarlyRefund signature.
type BtcEarlyRefundable struct{ base }

// NewBtcEarlyRefundable reconstructs this state for swap resumption.
func NewBtcEarlyRefundable(session Session) BtcEarlyRefundable {
	return BtcEarlyRefundable{base{session}}
}

func (BtcEarlyRefundable) String() string { return "BtcEarlyRefundable" }
func (BtcEarlyRefundable) Terminal() bool { return false }

// BtcEarlyRefunded is terminal: Alice co-signed and broadcast
// EarlyRefund.
type BtcEarlyRefunded struct{ base }

// NewBtcEarlyRefunded reconstructs this state for swap resumption.
func NewBtcEarlyRefunded(session Session) BtcEarlyRefunded {
	return BtcEarlyRefunded{base{session}}
}

func (BtcEarlyRefunded) String() string { return "BtcEarlyRefunded" }
func (BtcEarlyRefunded) Terminal() bool { return true }

// SafelyAborted is terminal: the swap ended before Bitcoin was ever
// locked (or before it was worth recovering), so nothing further is
// owed on either side.
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
