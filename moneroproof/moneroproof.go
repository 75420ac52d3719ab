// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

// Package moneroproof carries the receipt a Monero transfer leaves
// behind: the transaction's ID and the private transaction key needed
// to prove, to a third party holding only the view key, that a specific
// output pays a specific amount to a specific address.
package moneroproof

import (
	"encoding/hex"
	"errors"

	"github.com/athanorlabs/atomic-swap-btc/crypto/ed25519x"
)

// ErrInvalidTxID is returned when a transaction ID is not a 32-byte hex
// string.
var ErrInvalidTxID = errors.New("moneroproof: invalid transaction ID")

// TransferProof lets a recipient (or an auditor, given the recipient's
// view key) verify that a Monero transaction paid a claimed amount to a
// claimed address.
type TransferProof struct {
	TxID string
	TxKey ed25519x.Scalar
}

// NewTransferProof validates txID's shape before attaching it to a
// proof.
func NewTransferProof(txID string, txKey ed25519x.Scalar) (*TransferProof, error) {
	raw, err := hex.DecodeString(txID)
	if err != nil || len(raw) != 32 {
		return nil, ErrInvalidTxID
	}

	return &TransferProof{TxID: txID, TxKey: txKey}, nil
}
