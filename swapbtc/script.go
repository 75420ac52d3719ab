// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

// Package swapbtc builds the Bitcoin transaction templates and the
// shared 2-of-2 witness script that the swap protocol's setup handshake
// signs ahead of broadcast: TxLock, TxCancel, TxPartialRefund, TxRedeem,
// TxPunish, and the optional TxEarlyRefund, plus the TxRefundBurn /
// TxFinalAmnesty pair that lets Alice neutralize the amnesty carve-out.
package swapbtc

import (
	"bytes"
	"errors"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"

	"github.com/athanorlabs/atomic-swap-btc/crypto/secp256k1"
)

// LockDescriptor is the 2-of-2 P2WSH witness script shared by every
// transaction that spends the swap's locked coins. NewLockDescriptor
// builds the witness script once from (A, B) and stores it; the
// templates that spend an output share its descriptor rather than
// rebuilding it per use.
type LockDescriptor struct {
	a, b         *secp256k1.PublicKey
	witnessScript []byte
}

// NewLockDescriptor builds the 2-of-2 multisig witness script over A and
// B. Public keys are sorted lexicographically before insertion so both
// parties derive byte-identical scripts regardless of call order.
func NewLockDescriptor(a, b *secp256k1.PublicKey) (*LockDescriptor, error) {
	aBytes, bBytes := a.Bytes(), b.Bytes()
	first, second := aBytes, bBytes
	if bytes.Compare(aBytes, bBytes) > 0 {
		first, second = bBytes, aBytes
	}

	builder := txscript.NewScriptBuilder()
	builder.AddOp(txscript.OP_2)
	builder.AddData(first)
	builder.AddData(second)
	builder.AddOp(txscript.OP_2)
	builder.AddOp(txscript.OP_CHECKMULTISIG)

	script, err := builder.Script()
	if err != nil {
		return nil, err
	}

	return &LockDescriptor{a: a, b: b, witnessScript: script}, nil
}

// WitnessScript returns the redeem script (the "witness program" in
// BIP-141 terms) that the P2WSH output commits to.
func (d *LockDescriptor) WitnessScript() []byte {
	return d.witnessScript
}

// ScriptPubKey returns the P2WSH scriptPubKey that locks coins to this
// descriptor: OP_0 <sha256(witness script)>.
func (d *LockDescriptor) ScriptPubKey() ([]byte, error) {
	hash := chainhash.HashB(d.witnessScript)
	return txscript.NewScriptBuilder().
		AddOp(txscript.OP_0).
		AddData(hash).
		Script()
}

// sortedSignatures orders (sigA, sigB) as der-encoded signatures into the
// order required by the witness stack, matching the sort applied when
// the witness script's public keys were inserted.
func sortedSignatures(a, b *secp256k1.PublicKey, sigA, sigB []byte) [][]byte {
	aBytes, bBytes := a.Bytes(), b.Bytes()
	if bytes.Compare(aBytes, bBytes) > 0 {
		return [][]byte{sigB, sigA}
	}
	return [][]byte{sigA, sigB}
}

// witnessStack assembles the full witness field for spending a 2-of-2
// CHECKMULTISIG output: the mandatory empty element that compensates for
// CHECKMULTISIG's off-by-one stack bug, the two signatures in script
// order, and the witness script itself.
func witnessStack(d *LockDescriptor, sigA, sigB []byte) wire.TxWitness {
	ordered := sortedSignatures(d.a, d.b, sigA, sigB)
	return wire.TxWitness{
		nil,
		ordered[0],
		ordered[1],
		d.witnessScript,
	}
}

// ErrMissingSignature reports a missing signature. Finalize does not
// check the signatures it is given, so it never returns this error.
var ErrMissingSignature = errors.New("swapbtc: missing signature")

// DerEncode serializes an ECDSA signature with a SIGHASH_ALL suffix,
// the form expected in a witness stack.
func DerEncode(sig *ecdsa.Signature) []byte {
	return append(sig.Serialize(), byte(txscript.SigHashAll))
}
