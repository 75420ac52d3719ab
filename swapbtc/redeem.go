// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package swapbtc

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

const txRedeemWeight = 548

// TxRedeem spends TxLock's output directly to Alice's payout address.
// It is valid the moment TxLock confirms: Alice decrypts Bob's adaptor
// signature over it with her own secret and adds her own signature, and
// publishing it is the moment her half of the Monero spend key leaks to
// Bob.
type TxRedeem struct {
	*spendTemplate
}

// NewTxRedeem builds the unsigned redeem transaction, paying Alice's
// payoutScript.
func NewTxRedeem(lock *TxLock, payoutScript []byte, spendingFee int64) (*TxRedeem, error) {
	out := wire.NewTxOut(lock.Amount()-spendingFee, payoutScript)

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

	return &TxRedeem{spendTemplate: tmpl}, nil
}

// TxID returns the redeem transaction's txid.
func (r *TxRedeem) TxID() chainhash.Hash {
	return txid(r.msgTx)
}

// Weight returns TxRedeem's fixed weight.
func (r *TxRedeem) Weight() int64 {
	return txRedeemWeight
}
