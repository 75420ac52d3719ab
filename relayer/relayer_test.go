// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package relayer

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/athanorlabs/atomic-swap-btc/crypto/secp256k1"
	"github.com/athanorlabs/atomic-swap-btc/net/message"
	"github.com/athanorlabs/atomic-swap-btc/swapbtc"
)

func testLockAndKeys(t *testing.T) (*swapbtc.TxLock, *secp256k1.PrivateKey, *secp256k1.PrivateKey) {
	t.Helper()

	a, err := secp256k1.GenerateKeyPair(rand.Reader)
	require.NoError(t, err)
	b, err := secp256k1.GenerateKeyPair(rand.Reader)
	require.NoError(t, err)

	descriptor, err := swapbtc.NewLockDescriptor(a.Public(), b.Public())
	require.NoError(t, err)

	var fundingHash chainhash.Hash
	copy(fundingHash[:], []byte("deterministic-funding-txid-relay"))
	input := &wire.TxIn{
		PreviousOutPoint: wire.OutPoint{Hash: fundingHash, Index: 0},
		Sequence:         wire.MaxTxInSequenceNum,
	}

	lock, err := swapbtc.NewTxLock([]*wire.TxIn{input}, 1_000_000, descriptor, nil)
	require.NoError(t, err)
	return lock, a, b
}

func signedRedeemHex(t *testing.T, lock *swapbtc.TxLock, a, b *secp256k1.PrivateKey) string {
	t.Helper()

	payout := make([]byte, 22)
	payout[0] = 0x00
	payout[1] = 0x14

	redeem, err := swapbtc.NewTxRedeem(lock, payout, 1000)
	require.NoError(t, err)

	digest, err := redeem.Digest()
	require.NoError(t, err)

	sigA := swapbtc.DerEncode(a.Sign(digest))
	sigB := swapbtc.DerEncode(b.Sign(digest))
	finalTx := redeem.Finalize(sigA, sigB)

	var buf bytes.Buffer
	require.NoError(t, finalTx.Serialize(&buf))
	return hex.EncodeToString(buf.Bytes())
}

type stubBroadcaster struct {
	txid chainhash.Hash
	err  error
	got  *wire.MsgTx
}

func (s *stubBroadcaster) Broadcast(_ context.Context, tx *wire.MsgTx) (chainhash.Hash, error) {
	s.got = tx
	return s.txid, s.err
}

func TestValidateAcceptsWellFormedRedeem(t *testing.T) {
	lock, a, b := testLockAndKeys(t)
	txHex := signedRedeemHex(t, lock, a, b)

	payout := make([]byte, 22)
	payout[0] = 0x00
	payout[1] = 0x14

	tx, err := Validate(
		&message.CooperativeRedeemMessage{SignedTxHex: txHex},
		lock.Descriptor(),
		lock.Outpoint(),
		payout,
	)
	require.NoError(t, err)
	require.Equal(t, lock.Outpoint(), tx.TxIn[0].PreviousOutPoint)
}

func TestValidateRejectsWrongOutpoint(t *testing.T) {
	lock, a, b := testLockAndKeys(t)
	txHex := signedRedeemHex(t, lock, a, b)

	payout := make([]byte, 22)
	payout[0] = 0x00
	payout[1] = 0x14

	wrongOutpoint := lock.Outpoint()
	wrongOutpoint.Index++

	_, err := Validate(
		&message.CooperativeRedeemMessage{SignedTxHex: txHex},
		lock.Descriptor(),
		wrongOutpoint,
		payout,
	)
	require.Error(t, err)
}

func TestValidateRejectsWrongScript(t *testing.T) {
	lock, a, b := testLockAndKeys(t)
	txHex := signedRedeemHex(t, lock, a, b)

	wrongScript := make([]byte, 22)
	wrongScript[2] = 0xff

	_, err := Validate(
		&message.CooperativeRedeemMessage{SignedTxHex: txHex},
		lock.Descriptor(),
		lock.Outpoint(),
		wrongScript,
	)
	require.Error(t, err)
}

func TestSubmitRejectsFeeBelowMinimum(t *testing.T) {
	lock, a, b := testLockAndKeys(t)
	txHex := signedRedeemHex(t, lock, a, b)

	r := New(&stubBroadcaster{}, 5000)
	_, err := r.Submit(
		context.Background(),
		uuid.New(),
		&message.CooperativeRedeemMessage{SignedTxHex: txHex, RelayFeeSats: 100},
		lock.Descriptor(),
		lock.Outpoint(),
		make([]byte, 22),
	)
	require.Error(t, err)
}

func TestSubmitBroadcastsValidRequest(t *testing.T) {
	lock, a, b := testLockAndKeys(t)
	txHex := signedRedeemHex(t, lock, a, b)

	payout := make([]byte, 22)
	payout[0] = 0x00
	payout[1] = 0x14

	want := chainhash.Hash{0x01, 0x02}
	broadcaster := &stubBroadcaster{txid: want}
	r := New(broadcaster, 500)

	got, err := r.Submit(
		context.Background(),
		uuid.New(),
		&message.CooperativeRedeemMessage{SignedTxHex: txHex, RelayFeeSats: 1000},
		lock.Descriptor(),
		lock.Outpoint(),
		payout,
	)
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.NotNil(t, broadcaster.got)
}
