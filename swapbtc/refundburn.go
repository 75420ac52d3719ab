// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package swapbtc

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

const (
	txRefundBurnWeight    = 548
	txFinalAmnestyWeight  = 548
)

// TxRefundBurn spends TxPartialRefund's amnesty output into a fresh
// 2-of-2 output. It carries no timelock, so Alice may publish it the
// moment TxPartialRefund confirms, neutralizing Bob's ability to claim
// the carve-out unilaterally while keeping the door open for a
// cooperative return via TxFinalAmnesty.
type TxRefundBurn struct {
	*spendTemplate
	burnDescriptor *LockDescriptor
}

// NewTxRefundBurn builds the unsigned burn transaction spending
// refund's amnesty output.
func NewTxRefundBurn(refund *TxPartialRefund, burnDescriptor *LockDescriptor, spendingFee int64) (*TxRefundBurn, error) {
	pkScript, err := burnDescriptor.ScriptPubKey()
	if err != nil {
		return nil, err
	}

	out := wire.NewTxOut(refund.AmnestyAmount()-spendingFee, pkScript)

	tmpl, err := newSpendTemplate(
		refund.AmnestyOutpoint(),
		wire.MaxTxInSequenceNum,
		refund.amnestyDescriptor,
		refund.AmnestyAmount(),
		[]*wire.TxOut{out},
	)
	if err != nil {
		return nil, err
	}

	return &TxRefundBurn{spendTemplate: tmpl, burnDescriptor: burnDescriptor}, nil
}

// TxID returns the burn transaction's txid.
func (b *TxRefundBurn) TxID() chainhash.Hash {
	return txid(b.msgTx)
}

// Outpoint identifies the burn output, the single input TxFinalAmnesty
// spends.
func (b *TxRefundBurn) Outpoint() wire.OutPoint {
	return wire.OutPoint{Hash: b.TxID(), Index: 0}
}

// Amount is the number of satoshis carried into the burn output.
func (b *TxRefundBurn) Amount() int64 {
	return b.msgTx.TxOut[0].Value
}

// Weight returns TxRefundBurn's fixed weight.
func (b *TxRefundBurn) Weight() int64 {
	return txRefundBurnWeight
}

// TxFinalAmnesty spends TxRefundBurn's output back to Bob, the
// cooperative resolution of the amnesty carve-out: Alice has already
// neutralized Bob's unilateral claim via TxRefundBurn, and this
// transaction lets her return the funds to him whenever she chooses.
type TxFinalAmnesty struct {
	*spendTemplate
}

// NewTxFinalAmnesty builds the unsigned transaction returning the burn
// output to Bob's destinationScript.
func NewTxFinalAmnesty(burn *TxRefundBurn, destinationScript []byte, spendingFee int64) (*TxFinalAmnesty, error) {
	out := wire.NewTxOut(burn.Amount()-spendingFee, destinationScript)

	tmpl, err := newSpendTemplate(
		burn.Outpoint(),
		wire.MaxTxInSequenceNum,
		burn.burnDescriptor,
		burn.Amount(),
		[]*wire.TxOut{out},
	)
	if err != nil {
		return nil, err
	}

	return &TxFinalAmnesty{spendTemplate: tmpl}, nil
}

// TxID returns the final-amnesty transaction's txid.
func (f *TxFinalAmnesty) TxID() chainhash.Hash {
	return txid(f.msgTx)
}

// Weight returns TxFinalAmnesty's fixed weight.
func (f *TxFinalAmnesty) Weight() int64 {
	return txFinalAmnestyWeight
}
