// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package protocol

import (
	"github.com/athanorlabs/atomic-swap-btc/crypto/secp256k1"
	"github.com/athanorlabs/atomic-swap-btc/swapbtc"
)

// Params bundles every agreed-upon value from the M0/M1 handshake that
// the rest of the swap's Bitcoin transactions are built from.
type Params struct {
	Amount               int64
	CancelTimelock       uint32
	PunishTimelock       uint32
	RefundFeeSats        int64
	PartialRefundFeeSats int64
	CancelFeeSats        int64
	RedeemFeeSats        int64
	PunishFeeSats        int64
	AmnestySats          int64

	RedeemScript []byte // Alice's payout scriptPubKey
	PunishScript []byte // Alice's punish scriptPubKey
	RefundScript []byte // Bob's refund scriptPubKey
}

// Transactions is the full set of pre-built templates both parties
// derive from the same agreed Params and the same TxLock, per spec
// §4.3: every downstream transaction is fixed the moment TxLock and the
// handshake parameters are known, well before any of them is signed.
type Transactions struct {
	Lock          *swapbtc.TxLock
	Cancel        *swapbtc.TxCancel
	Redeem        *swapbtc.TxRedeem
	Punish        *swapbtc.TxPunish
	PartialRefund *swapbtc.TxPartialRefund
	EarlyRefund   *swapbtc.TxEarlyRefund

	// AmnestyDescriptor is non-nil only when Params.AmnestySats > 0; it
	// is the 2-of-2 output PartialRefund's amnesty carve-out locks back
	// into, spendable by TxRefundBurn.
	AmnestyDescriptor *swapbtc.LockDescriptor
}

// BuildTransactions derives every template this swap needs from lock,
// the agreed params, and both parties' Bitcoin keys. It performs no
// signing; callers sign and finalize individual templates as the state
// machine reaches the point each is needed.
func BuildTransactions(lock *swapbtc.TxLock, p Params, a, b *secp256k1.PublicKey) (*Transactions, error) {
	cancel, err := swapbtc.NewTxCancel(lock, lock.Descriptor(), p.CancelTimelock, p.CancelFeeSats)
	if err != nil {
		return nil, err
	}

	redeem, err := swapbtc.NewTxRedeem(lock, p.RedeemScript, p.RedeemFeeSats)
	if err != nil {
		return nil, err
	}

	punish, err := swapbtc.NewTxPunish(cancel, p.PunishScript, p.PunishTimelock, p.PunishFeeSats)
	if err != nil {
		return nil, err
	}

	earlyRefund, err := swapbtc.NewTxEarlyRefund(lock, p.RefundScript, p.RefundFeeSats)
	if err != nil {
		return nil, err
	}

	var amnestyDescriptor *swapbtc.LockDescriptor
	if p.AmnestySats > 0 {
		// The amnesty carve-out is re-locked into the same shared 2-of-2
		// descriptor over (A, B): neither party is favored by reusing it,
		// and it lets TxRefundBurn spend it with the same witness-stack
		// shape every other template already uses.
		amnestyDescriptor, err = swapbtc.NewLockDescriptor(a, b)
		if err != nil {
			return nil, err
		}
	}

	partialRefund, err := swapbtc.NewTxPartialRefund(
		cancel, p.RefundScript, p.AmnestySats, amnestyDescriptor, p.PartialRefundFeeSats,
	)
	if err != nil {
		return nil, err
	}

	return &Transactions{
		Lock:              lock,
		Cancel:            cancel,
		Redeem:            redeem,
		Punish:            punish,
		PartialRefund:     partialRefund,
		EarlyRefund:       earlyRefund,
		AmnestyDescriptor: amnestyDescriptor,
	}, nil
}
