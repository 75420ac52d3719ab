// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package swapbtc

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// spendTemplate is the common shape shared by every transaction in this
// package that spends the shared 2-of-2 output: one input, BIP-68
// sequence-encoded where a relative timelock applies, and one or two
// outputs.
type spendTemplate struct {
	msgTx      *wire.MsgTx
	descriptor *LockDescriptor
	prevAmount int64
}

func newSpendTemplate(
	prevOut wire.OutPoint,
	sequence uint32,
	descriptor *LockDescriptor,
	prevAmount int64,
	outputs []*wire.TxOut,
) (*spendTemplate, error) {
	tx := wire.NewMsgTx(2)
	tx.AddTxIn(&wire.TxIn{
		PreviousOutPoint: prevOut,
		Sequence:         sequence,
	})
	for _, out := range outputs {
		tx.AddTxOut(out)
	}

	return &spendTemplate{msgTx: tx, descriptor: descriptor, prevAmount: prevAmount}, nil
}

// Digest computes the BIP-143 segwit v0 sighash over input 0, the one
// that spends the shared descriptor.
func (s *spendTemplate) Digest() ([32]byte, error) {
	pkScript, err := s.descriptor.ScriptPubKey()
	if err != nil {
		return [32]byte{}, err
	}

	fetcher := txscript.NewCannedPrevOutputFetcher(pkScript, s.prevAmount)
	sigHashes := txscript.NewTxSigHashes(s.msgTx, fetcher)

	digest, err := txscript.CalcWitnessSigHash(
		s.descriptor.WitnessScript(),
		sigHashes,
		txscript.SigHashAll,
		s.msgTx,
		0,
		s.prevAmount,
	)
	if err != nil {
		return [32]byte{}, err
	}

	var out [32]byte
	copy(out[:], digest)
	return out, nil
}

// Finalize attaches the witness satisfying the shared 2-of-2 script and
// returns the fully signed transaction.
func (s *spendTemplate) Finalize(sigA, sigB []byte) *wire.MsgTx {
	s.msgTx.TxIn[0].Witness = witnessStack(s.descriptor, sigA, sigB)
	return s.msgTx
}

// TxID returns the txid of the (possibly unsigned) underlying
// transaction. Witness data does not affect the txid, so this is stable
// before and after Finalize.
func txid(tx *wire.MsgTx) chainhash.Hash {
	return tx.TxHash()
}
