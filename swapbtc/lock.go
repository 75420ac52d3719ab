// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package swapbtc

import (
	"errors"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// ErrLockOutputNotFound is returned when a candidate transaction does
// not pay the expected amount to the shared 2-of-2 descriptor.
var ErrLockOutputNotFound = errors.New("swapbtc: no output pays the expected amount to the shared descriptor")

// TxLock is the funding transaction that pays into the shared 2-of-2
// witness script. Every other template in this package spends its
// single locked output.
type TxLock struct {
	msgTx       *wire.MsgTx
	outputIndex int
	descriptor  *LockDescriptor
}

// NewTxLock assembles a funding transaction paying amount to
// descriptor's P2WSH output, plus an optional change output. inputs are
// supplied pre-selected by the wallet backend; this package only shapes
// the transaction, it does not perform coin selection.
func NewTxLock(
	inputs []*wire.TxIn,
	amount int64,
	descriptor *LockDescriptor,
	change *wire.TxOut,
) (*TxLock, error) {
	pkScript, err := descriptor.ScriptPubKey()
	if err != nil {
		return nil, err
	}

	tx := wire.NewMsgTx(2)
	for _, in := range inputs {
		tx.AddTxIn(in)
	}
	tx.AddTxOut(wire.NewTxOut(amount, pkScript))
	if change != nil {
		tx.AddTxOut(change)
	}

	return &TxLock{msgTx: tx, outputIndex: 0, descriptor: descriptor}, nil
}

// TxLockFromCandidate validates that tx has an output paying amount to
// descriptor's script, as a counterparty must before trusting a TxLock
// it did not build itself.
func TxLockFromCandidate(tx *wire.MsgTx, descriptor *LockDescriptor, amount int64) (*TxLock, error) {
	pkScript, err := descriptor.ScriptPubKey()
	if err != nil {
		return nil, err
	}

	for i, out := range tx.TxOut {
		if out.Value == amount && bytesEqual(out.PkScript, pkScript) {
			return &TxLock{msgTx: tx, outputIndex: i, descriptor: descriptor}, nil
		}
	}

	return nil, ErrLockOutputNotFound
}

// MsgTx returns the underlying transaction.
func (t *TxLock) MsgTx() *wire.MsgTx {
	return t.msgTx
}

// TxID returns the transaction's txid.
func (t *TxLock) TxID() chainhash.Hash {
	return t.msgTx.TxHash()
}

// Outpoint identifies the locked output, the single input every
// downstream spending transaction consumes.
func (t *TxLock) Outpoint() wire.OutPoint {
	return wire.OutPoint{Hash: t.TxID(), Index: uint32(t.outputIndex)}
}

// Amount returns the number of satoshis locked into the shared output.
func (t *TxLock) Amount() int64 {
	return t.msgTx.TxOut[t.outputIndex].Value
}

// Descriptor returns the shared 2-of-2 witness script this lock output
// pays to.
func (t *TxLock) Descriptor() *LockDescriptor {
	return t.descriptor
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
