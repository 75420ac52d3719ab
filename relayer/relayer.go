// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

// Package relayer validates and submits a cooperative-redeem
// transaction on behalf of a counterparty who cannot (or should not)
// broadcast it themselves, generalized from the teacher's Ethereum
// meta-transaction relayer. On the Bitcoin side there is no gas to
// sponsor, so this package exists for a narrower reason: after Bob
// has been punished, spec §4.9's open question leaves room for Alice
// to cooperate by handing Bob a pre-signed redemption of her own
// share of the joint Monero wallet rather than stranding it; the
// analogous Bitcoin-side courtesy is a party broadcasting a
// counterparty's already-valid transaction when the counterparty's own
// node is unreachable. Validation never trusts the sender: every
// relayed transaction is checked against the swap's own lock
// descriptor before broadcast.
package relayer

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/google/uuid"
	logging "github.com/ipfs/go-log/v2"

	"github.com/athanorlabs/atomic-swap-btc/net/message"
	"github.com/athanorlabs/atomic-swap-btc/protocol/swaperr"
	"github.com/athanorlabs/atomic-swap-btc/swapbtc"
)

var log = logging.Logger("relayer")

// Broadcaster is the narrow surface a relayer needs from a Bitcoin
// node: push a fully-signed transaction to the network. A relayer never
// signs, so it needs only this one method; backend.BitcoinWallet does not
// satisfy it as is, since its method is named SignAndBroadcast.
type Broadcaster interface {
	Broadcast(ctx context.Context, tx *wire.MsgTx) (chainhash.Hash, error)
}

// Relayer validates and submits CooperativeRedeemMessage requests
// against one swap's known lock descriptor and expected outpoint.
type Relayer struct {
	broadcaster Broadcaster
	minFeeSats  int64
}

// New constructs a Relayer that broadcasts via b and refuses to relay
// any request offering less than minFeeSats.
func New(b Broadcaster, minFeeSats int64) *Relayer {
	return &Relayer{broadcaster: b, minFeeSats: minFeeSats}
}

// Validate checks that req's signed transaction spends expectedOutpoint
// under descriptor and pays expectedScript, without broadcasting it.
// Any mismatch is a ProtocolPolicyError: the requester is either
// confused or attempting to relay an unrelated transaction.
func Validate(
	req *message.CooperativeRedeemMessage,
	descriptor *swapbtc.LockDescriptor,
	expectedOutpoint wire.OutPoint,
	expectedScript []byte,
) (*wire.MsgTx, error) {
	raw, err := decodeHex(req.SignedTxHex)
	if err != nil {
		return nil, &swaperr.ProtocolPolicyError{Op: "relayer.Validate/decode", Err: err}
	}

	tx := wire.NewMsgTx(0)
	if err := tx.Deserialize(bytes.NewReader(raw)); err != nil {
		return nil, &swaperr.ProtocolPolicyError{Op: "relayer.Validate/deserialize", Err: err}
	}

	if len(tx.TxIn) != 1 {
		return nil, &swaperr.ProtocolPolicyError{
			Op: "relayer.Validate", Err: fmt.Errorf("expected exactly one input, got %d", len(tx.TxIn)),
		}
	}
	if tx.TxIn[0].PreviousOutPoint != expectedOutpoint {
		return nil, &swaperr.ProtocolPolicyError{
			Op: "relayer.Validate", Err: fmt.Errorf("spends %s, expected %s", tx.TxIn[0].PreviousOutPoint, expectedOutpoint),
		}
	}
	if len(tx.TxOut) == 0 || !bytes.Equal(tx.TxOut[0].PkScript, expectedScript) {
		return nil, &swaperr.ProtocolPolicyError{
			Op: "relayer.Validate", Err: fmt.Errorf("output 0 does not pay the expected script"),
		}
	}

	witnessScript := descriptor.WitnessScript()
	if len(tx.TxIn[0].Witness) == 0 || !bytes.Contains(tx.TxIn[0].Witness[len(tx.TxIn[0].Witness)-1], witnessScript) {
		return nil, &swaperr.ProtocolPolicyError{
			Op: "relayer.Validate", Err: fmt.Errorf("witness does not commit to the swap's lock descriptor"),
		}
	}

	return tx, nil
}

// Submit validates req against descriptor/expectedOutpoint/expectedScript
// and, if it checks out and offers at least the relayer's minimum fee,
// broadcasts it and returns the resulting txid. A broadcaster error that
// is a swaperr.OnChainRuleError with AlreadyInChain set is treated as
// success: the cooperative redeem already landed, which is exactly what
// the requester wanted.
func (r *Relayer) Submit(
	ctx context.Context,
	swapID uuid.UUID,
	req *message.CooperativeRedeemMessage,
	descriptor *swapbtc.LockDescriptor,
	expectedOutpoint wire.OutPoint,
	expectedScript []byte,
) (chainhash.Hash, error) {
	if req.RelayFeeSats < r.minFeeSats {
		return chainhash.Hash{}, &swaperr.ProtocolPolicyError{
			Op: "relayer.Submit", Err: fmt.Errorf("offered relay fee %d below minimum %d", req.RelayFeeSats, r.minFeeSats),
		}
	}

	tx, err := Validate(req, descriptor, expectedOutpoint, expectedScript)
	if err != nil {
		return chainhash.Hash{}, err
	}

	txid, err := r.broadcaster.Broadcast(ctx, tx)
	if err != nil {
		var ruleErr *swaperr.OnChainRuleError
		if errors.As(err, &ruleErr) && ruleErr.AlreadyInChain {
			log.Infof("%s: cooperative redeem %s already in chain", swapID, tx.TxHash())
			return tx.TxHash(), nil
		}
		return chainhash.Hash{}, &swaperr.NetworkError{Op: "relayer.Submit/Broadcast", Err: err}
	}

	log.Infof("%s: relayed cooperative redeem %s", swapID, txid)
	return txid, nil
}

func decodeHex(s string) ([]byte, error) {
	return hex.DecodeString(s)
}
