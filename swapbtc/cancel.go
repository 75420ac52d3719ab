// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package swapbtc

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// txCancelWeight is the weight, in weight units, of a signed TxCancel:
// one P2WSH 2-of-2 input, one P2WSH 2-of-2 output, no change.
const txCancelWeight = 548

// TxCancel spends TxLock's output once the cancel timelock (T1) has
// expired, re-locking the coins into a fresh 2-of-2 output that TxRefund
// or TxPunish subsequently spends. Either party may publish it once the
// relative locktime matures; only a signature from each party makes it
// valid, so both parties pre-sign it during the setup handshake.
type TxCancel struct {
	*spendTemplate
}

// NewTxCancel builds the unsigned cancel transaction. cancelTimelock is
// the number of blocks, relative to TxLock's confirmation, after which
// this transaction becomes valid per BIP-68.
func NewTxCancel(
	lock *TxLock,
	cancelOutputDescriptor *LockDescriptor,
	cancelTimelock uint32,
	spendingFee int64,
) (*TxCancel, error) {
	pkScript, err := cancelOutputDescriptor.ScriptPubKey()
	if err != nil {
		return nil, err
	}

	out := wire.NewTxOut(lock.Amount()-spendingFee, pkScript)

	tmpl, err := newSpendTemplate(
		lock.Outpoint(),
		relativeBlockLockToSequence(cancelTimelock),
		lock.Descriptor(),
		lock.Amount(),
		[]*wire.TxOut{out},
	)
	if err != nil {
		return nil, err
	}

	return &TxCancel{spendTemplate: tmpl}, nil
}

// TxID returns the cancel transaction's txid.
func (c *TxCancel) TxID() chainhash.Hash {
	return txid(c.msgTx)
}

// Outpoint identifies the fresh 2-of-2 output TxCancel creates, the
// single input TxRefund and TxPunish spend.
func (c *TxCancel) Outpoint() wire.OutPoint {
	return wire.OutPoint{Hash: c.TxID(), Index: 0}
}

// Amount is the number of satoshis carried forward into TxCancel's
// output.
func (c *TxCancel) Amount() int64 {
	return c.msgTx.TxOut[0].Value
}

// Weight returns TxCancel's fixed weight, used for fee estimation ahead
// of broadcast.
func (c *TxCancel) Weight() int64 {
	return txCancelWeight
}
