// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package swapbtc

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

const txPunishWeight = 548

// TxPunish spends TxCancel's output to Alice's payout address once the
// punish timelock (T2, relative to TxCancel's confirmation) has expired
// without Bob publishing TxPartialRefund. Bob co-signs it during the
// setup handshake; publishing it is Alice's recourse against a
// counterparty who locked funds but never completed the swap or
// refunded.
type TxPunish struct {
	*spendTemplate
}

// NewTxPunish builds the unsigned punish transaction.
func NewTxPunish(cancel *TxCancel, payoutScript []byte, punishTimelock uint32, spendingFee int64) (*TxPunish, error) {
	out := wire.NewTxOut(cancel.Amount()-spendingFee, payoutScript)

	tmpl, err := newSpendTemplate(
		cancel.Outpoint(),
		relativeBlockLockToSequence(punishTimelock),
		cancel.descriptor,
		cancel.Amount(),
		[]*wire.TxOut{out},
	)
	if err != nil {
		return nil, err
	}

	return &TxPunish{spendTemplate: tmpl}, nil
}

// TxID returns the punish transaction's txid.
func (p *TxPunish) TxID() chainhash.Hash {
	return txid(p.msgTx)
}

// Weight returns TxPunish's fixed weight.
func (p *TxPunish) Weight() int64 {
	return txPunishWeight
}
