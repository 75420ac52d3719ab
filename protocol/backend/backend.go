// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

// Package backend defines the external-world interfaces the protocol's
// state machines depend on: a Bitcoin wallet, a Monero wallet, the
// network layer, and the swap database. Concrete implementations live
// outside this package; protocol/alice and protocol/bob only ever see
// these interfaces, the way the teacher's protocol/backend decouples
// the swap state machines from go-ethereum and monero-project/monero.
package backend

import (
	"context"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/google/uuid"
	"github.com/libp2p/go-libp2p/core/peer"

	"github.com/athanorlabs/atomic-swap-btc/crypto/ed25519x"
	"github.com/athanorlabs/atomic-swap-btc/net/message"
	"github.com/athanorlabs/atomic-swap-btc/swapbtc"
	"github.com/athanorlabs/atomic-swap-btc/timelock"
)

// BitcoinWallet is the Bitcoin-side surface the protocol needs: funding
// TxLock, broadcasting signed spends, and watching outputs for
// confirmations.
type BitcoinWallet interface {
	SendToAddress(ctx context.Context, addr btcutil.Address, amount btcutil.Amount, feeRate swapbtc.SatPerKWeight) (*psbt.Packet, error)
	SignAndBroadcast(ctx context.Context, tx *wire.MsgTx) (chainhash.Hash, error)
	Subscribe(ctx context.Context, script []byte, txid *chainhash.Hash) (<-chan timelock.ScriptStatus, error)
	EstimateFeeRate(ctx context.Context, targetBlocks uint32) (swapbtc.SatPerKWeight, error)
	MinRelayFee(ctx context.Context) (swapbtc.SatPerKWeight, error)
	NewAddress(ctx context.Context) (btcutil.Address, error)
	Network() *chaincfg.Params
}

// TxReceipt is the result of a Monero wallet operation that moves
// funds: a transaction ID and (for outgoing transfers) the secret
// transaction key needed to build a moneroproof.TransferProof.
type TxReceipt struct {
	TxID string
	TxKey ed25519x.Scalar
}

// SweepDestination is one output of a multi-destination Monero sweep,
// e.g. splitting a redeemed balance between Alice's primary address and
// a fee-reserve address.
type SweepDestination struct {
	Address    string
	Percentage float64
}

// MoneroWallet is the Monero-side surface the protocol needs: opening a
// wallet (fresh, or restored from a joint key share), transferring
// funds, and verifying/watching incoming transfers by spend/view key
// rather than by owning the wallet outright.
type MoneroWallet interface {
	OpenOrCreate(ctx context.Context, path, daemonAddr string, backgroundSync bool) error
	OpenOrCreateFromKeys(ctx context.Context, path, addr string, viewKey, spendKey ed25519x.Scalar, restoreHeight uint64) error
	Transfer(ctx context.Context, addr string, piconero uint64) (*TxReceipt, error)
	SweepMultiDestination(ctx context.Context, dests []SweepDestination) (*TxReceipt, error)
	VerifyTransfer(ctx context.Context, txID string, spendPoint *ed25519x.Point, viewScalar ed25519x.Scalar, expectedPiconero uint64) (bool, error)
	WaitForIncomingTransfer(ctx context.Context, spendPoint *ed25519x.Point, viewScalar ed25519x.Scalar, expectedPiconero uint64, restoreHeight uint64) (string, error)
	WaitUntilConfirmed(ctx context.Context, txID string, target uint64, onUpdate func(uint64)) error
	LatestBlockNumber(ctx context.Context) (uint64, error)
}

// Net is the network surface the protocol needs: sending setup/runtime
// messages to the counterparty and, for the post-punish recovery path,
// submitting a cooperative-redeem request to a relayer.
type Net interface {
	SendSwapMessage(msg message.Message, id uuid.UUID) error
	SubmitCooperativeRedeem(peerID peer.ID, req *message.CooperativeRedeemMessage) (*message.CooperativeRedeemMessage, error)
	CloseProtocolStream(id uuid.UUID)
}

// SwapMeta is the side-table of a swap's static parameters, stored
// alongside its append-only state history so a restart can reconstruct
// a swap's Manager entry without replaying every transition.
type SwapMeta struct {
	ID           uuid.UUID
	IsAlice      bool
	CounterpartyID string
	StartedAt    int64
}

// Database is the persistence surface the protocol needs: an
// append-only per-swap state log plus the swap's static metadata.
type Database interface {
	PutState(id uuid.UUID, encodedState []byte) error
	GetStates(id uuid.UUID) ([][]byte, error)
	PutSwapMeta(id uuid.UUID, meta *SwapMeta) error
	GetSwapMeta(id uuid.UUID) (*SwapMeta, error)
	GetAllSwapIDs() ([]uuid.UUID, error)
}

// ConfirmationPolicy bundles the finality thresholds both chains must
// clear before the protocol treats a transaction as settled.
type ConfirmationPolicy struct {
	FinalityConfirmationsBTC uint32
	FinalityConfirmationsXMR uint64
}

// Backend bundles every external dependency the protocol's state
// machines and coordinator need, mirroring the teacher's
// protocol/backend.Backend facade.
type Backend struct {
	Ctx     context.Context
	Bitcoin BitcoinWallet
	Monero  MoneroWallet
	Net     Net
	DB      Database
	Policy  ConfirmationPolicy
}
