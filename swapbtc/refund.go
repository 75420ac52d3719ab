// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package swapbtc

import (
	"errors"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

const txPartialRefundWeight = 548

// ErrAmnestyExceedsAmount is returned when the requested amnesty carve-out
// is not smaller than the amount being refunded.
var ErrAmnestyExceedsAmount = errors.New("swapbtc: amnesty amount must be smaller than the refund amount")

// TxPartialRefund spends TxCancel's output to Bob's refund address once
// Bob has not redeemed before the cancel timelock expired. When
// amnestyAmount is non-zero, the refund is split: the bulk goes straight
// to Bob, and amnestyAmount is locked back into a fresh 2-of-2 output
// that Alice can neutralize via TxRefundBurn or cooperatively return via
// TxFinalAmnesty. The split is fixed at setup: protocol.BuildTransactions
// builds this template from the amnesty amount agreed in the handshake.
type TxPartialRefund struct {
	*spendTemplate
	amnestyDescriptor *LockDescriptor
	hasAmnesty        bool
}

// NewTxPartialRefund builds the unsigned refund transaction spending
// cancel's output. If amnestyAmount > 0, amnestyDescriptor must be
// provided and a second output locking amnestyAmount back to it is
// added.
func NewTxPartialRefund(
	cancel *TxCancel,
	refundScript []byte,
	amnestyAmount int64,
	amnestyDescriptor *LockDescriptor,
	spendingFee int64,
) (*TxPartialRefund, error) {
	if amnestyAmount > 0 && amnestyAmount >= cancel.Amount()-spendingFee {
		return nil, ErrAmnestyExceedsAmount
	}

	refundAmount := cancel.Amount() - spendingFee - amnestyAmount
	outputs := []*wire.TxOut{wire.NewTxOut(refundAmount, refundScript)}

	hasAmnesty := amnestyAmount > 0
	if hasAmnesty {
		amnestyPkScript, err := amnestyDescriptor.ScriptPubKey()
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, wire.NewTxOut(amnestyAmount, amnestyPkScript))
	}

	cancelTmpl, err := newSpendTemplate(
		cancel.Outpoint(),
		wire.MaxTxInSequenceNum,
		cancel.descriptor,
		cancel.Amount(),
		outputs,
	)
	if err != nil {
		return nil, err
	}

	return &TxPartialRefund{
		spendTemplate:     cancelTmpl,
		amnestyDescriptor: amnestyDescriptor,
		hasAmnesty:        hasAmnesty,
	}, nil
}

// TxID returns the refund transaction's txid.
func (r *TxPartialRefund) TxID() chainhash.Hash {
	return txid(r.msgTx)
}

// HasAmnestyOutput reports whether this refund carved out an amnesty
// output.
func (r *TxPartialRefund) HasAmnestyOutput() bool {
	return r.hasAmnesty
}

// AmnestyOutpoint identifies the amnesty output, valid only when
// HasAmnestyOutput is true.
func (r *TxPartialRefund) AmnestyOutpoint() wire.OutPoint {
	return wire.OutPoint{Hash: r.TxID(), Index: 1}
}

// AmnestyAmount returns the number of satoshis locked into the amnesty
// output, or zero if there is none.
func (r *TxPartialRefund) AmnestyAmount() int64 {
	if !r.hasAmnesty {
		return 0
	}
	return r.msgTx.TxOut[1].Value
}

// Weight returns TxPartialRefund's weight for a build with no amnesty
// output; each additional P2WSH output adds a fixed, well-known amount
// that callers doing precise fee accounting should add themselves.
func (r *TxPartialRefund) Weight() int64 {
	return txPartialRefundWeight
}
