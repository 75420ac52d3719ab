// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package swapbtc

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

const txEarlyRefundWeight = 548

// TxEarlyRefund spends TxLock's output directly to Bob's refund address,
// bypassing TxCancel and its timelock entirely. It only becomes valid
// with both parties' signatures, so it exists purely as a cooperative
// shortcut: if Alice agrees the swap should be aborted before the
// cancel timelock matures, publishing TxEarlyRefund returns Bob's coins
// immediately instead of making him wait out T1.
type TxEarlyRefund struct {
	*spendTemplate
}

// NewTxEarlyRefund builds the unsigned early-refund transaction.
func NewTxEarlyRefund(lock *TxLock, refundScript []byte, spendingFee int64) (*TxEarlyRefund, error) {
	out := wire.NewTxOut(lock.Amount()-spendingFee, refundScript)

	tmpl, err := newSpendTemplate(
		lock.Outpoint(),
		wire.MaxTxInSequenceNum,
		lock.Descriptor(),
		lock.Amount(),
		[]*wire.TxOut{out},
	)
	if err != nil {
		return nil, err
	}

	return &TxEarlyRefund{spendTemplate: tmpl}, nil
}

// TxID returns the early-refund transaction's txid.
func (r *TxEarlyRefund) TxID() chainhash.Hash {
	return txid(r.msgTx)
}

// Weight returns TxEarlyRefund's fixed weight, equal to TxRedeem's and
// TxPartialRefund's since all three share the same single-input,
// single-output P2WSH shape.
func (r *TxEarlyRefund) Weight() int64 {
	return txEarlyRefundWeight
}
