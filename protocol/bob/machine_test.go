// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package bob

import (
	"context"
	"crypto/rand"
	"errors"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/athanorlabs/atomic-swap-btc/adaptor"
	"github.com/athanorlabs/atomic-swap-btc/crypto/ed25519x"
	"github.com/athanorlabs/atomic-swap-btc/protocol"
	"github.com/athanorlabs/atomic-swap-btc/protocol/backend"
	"github.com/athanorlabs/atomic-swap-btc/swapbtc"
	"github.com/athanorlabs/atomic-swap-btc/timelock"
)

// fixture bundles both parties' real key material and a fully-built
// transaction set, mirroring protocol/alice's test fixture but from
// Bob's point of view.
type fixture struct {
	alice *protocol.KeysAndProof
	bob   *protocol.KeysAndProof
	txs   *protocol.Transactions
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	aliceKeys, err := protocol.GenerateKeysAndProof(rand.Reader)
	require.NoError(t, err)
	bobKeys, err := protocol.GenerateKeysAndProof(rand.Reader)
	require.NoError(t, err)

	descriptor, err := swapbtc.NewLockDescriptor(aliceKeys.BitcoinPublicKey(), bobKeys.BitcoinPublicKey())
	require.NoError(t, err)

	var fundingHash chainhash.Hash
	copy(fundingHash[:], []byte("deterministic-funding-txid-0000"))
	input := &wire.TxIn{
		PreviousOutPoint: wire.OutPoint{Hash: fundingHash, Index: 0},
		Sequence:         wire.MaxTxInSequenceNum,
	}
	lock, err := swapbtc.NewTxLock([]*wire.TxIn{input}, 1_000_000, descriptor, nil)
	require.NoError(t, err)

	payoutScript := make([]byte, 22)
	payoutScript[0] = 0x00
	payoutScript[1] = 0x14

	params := protocol.Params{
		Amount:               1_000_000,
		CancelTimelock:       144,
		PunishTimelock:       72,
		RefundFeeSats:        1000,
		PartialRefundFeeSats: 1000,
		CancelFeeSats:        1000,
		RedeemFeeSats:        1000,
		PunishFeeSats:        1000,
		RedeemScript:         payoutScript,
		PunishScript:         payoutScript,
		RefundScript:         payoutScript,
	}

	txs, err := protocol.BuildTransactions(lock, params, aliceKeys.BitcoinPublicKey(), bobKeys.BitcoinPublicKey())
	require.NoError(t, err)

	return &fixture{alice: aliceKeys, bob: bobKeys, txs: txs}
}

func (f *fixture) aliceCounterparty() *protocol.CounterpartyKeys {
	return &protocol.CounterpartyKeys{
		BitcoinPubKey:    f.alice.BitcoinPublicKey(),
		MoneroSpendPoint: f.alice.MoneroSpendPoint(),
		ViewKeyShare:     f.alice.ViewKeyShare,
	}
}

func (f *fixture) session(t *testing.T) Session {
	t.Helper()

	cancelDigest, err := f.txs.Cancel.Digest()
	require.NoError(t, err)
	aliceCancelSig := f.alice.BitcoinPrivateKey.Sign(cancelDigest)

	refundDigest, err := f.txs.PartialRefund.Digest()
	require.NoError(t, err)
	aliceRefundEncSig, err := adaptor.EncSign(f.alice.BitcoinPrivateKey, f.bob.BitcoinPublicKey(), refundDigest)
	require.NoError(t, err)

	return Session{
		SwapID:                   uuid.New(),
		Keys:                     f.bob,
		Counterparty:             f.aliceCounterparty(),
		Txs:                      f.txs,
		SafetyMarginBlocks:       6,
		AliceCancelSig:           swapbtc.DerEncode(aliceCancelSig),
		AlicePartialRefundEncSig: aliceRefundEncSig,
	}
}

func TestAdvanceOnLockStatusReachesFinality(t *testing.T) {
	f := newFixture(t)
	started := NewStarted(f.session(t))

	s, err := AdvanceOnLockStatus(started, timelock.FromConfirmations(1), 3)
	require.NoError(t, err)
	require.IsType(t, Started{}, s)

	s, err = AdvanceOnLockStatus(s, timelock.FromConfirmations(3), 3)
	require.NoError(t, err)
	require.IsType(t, BtcLocked{}, s)
}

func TestAdvanceOnLockStatusRejectsUnexpectedState(t *testing.T) {
	f := newFixture(t)
	btcLocked := BtcLocked{base{f.session(t)}}

	_, err := AdvanceOnLockStatus(btcLocked, timelock.FromConfirmations(3), 3)
	require.Error(t, err)
}

func TestAdvanceOnTransferProof(t *testing.T) {
	f := newFixture(t)
	btcLocked := BtcLocked{base{f.session(t)}}

	s, err := AdvanceOnTransferProof(btcLocked, "xmr-txid", ed25519x.Scalar{})
	require.NoError(t, err)
	proofReceived, ok := s.(XmrLockProofReceived)
	require.True(t, ok)
	require.Equal(t, "xmr-txid", proofReceived.XmrTxID)
}

func TestAdvanceXmrLockProofReceivedSendsEncSigOnExactAmount(t *testing.T) {
	f := newFixture(t)
	session := f.session(t)
	s := XmrLockProofReceived{base{session}, "xmr-txid", ed25519x.Scalar{}}

	ctrl := gomock.NewController(t)
	monero := backend.NewMockMoneroWallet(ctrl)
	net := backend.NewMockNet(ctrl)

	monero.EXPECT().VerifyTransfer(gomock.Any(), "xmr-txid", gomock.Any(), gomock.Any(), uint64(500)).
		Return(true, nil)
	net.EXPECT().SendSwapMessage(gomock.Any(), session.SwapID).Return(nil)

	be := &backend.Backend{Monero: monero, Net: net}

	out, err := AdvanceXmrLockProofReceived(context.Background(), be, s, 500)
	require.NoError(t, err)
	xmrLocked, ok := out.(XmrLocked)
	require.True(t, ok)
	require.NotNil(t, xmrLocked.RedeemEncSig)
}

func TestAdvanceXmrLockProofReceivedRefusesOnAmountMismatch(t *testing.T) {
	f := newFixture(t)
	session := f.session(t)
	s := XmrLockProofReceived{base{session}, "xmr-txid", ed25519x.Scalar{}}

	ctrl := gomock.NewController(t)
	monero := backend.NewMockMoneroWallet(ctrl)

	monero.EXPECT().VerifyTransfer(gomock.Any(), "xmr-txid", gomock.Any(), gomock.Any(), uint64(500)).
		Return(false, nil)

	be := &backend.Backend{Monero: monero}

	out, err := AdvanceXmrLockProofReceived(context.Background(), be, s, 500)
	require.NoError(t, err)
	require.IsType(t, BtcLocked{}, out)
}

func TestAdvanceOnRedeemSeenRecoversAliceSecretAndSweeps(t *testing.T) {
	f := newFixture(t)
	session := f.session(t)

	digest, err := f.txs.Redeem.Digest()
	require.NoError(t, err)
	bobRedeemEncSig, err := adaptor.EncSign(f.bob.BitcoinPrivateKey, f.alice.BitcoinPublicKey(), digest)
	require.NoError(t, err)

	s := XmrLocked{base{session}, bobRedeemEncSig}

	// Alice decrypts Bob's encrypted signature with her own secret and
	// publishes the result.
	aliceDecrypted := adaptor.Decrypt(bobRedeemEncSig, f.alice.BitcoinPrivateKey)

	ctrl := gomock.NewController(t)
	monero := backend.NewMockMoneroWallet(ctrl)
	monero.EXPECT().
		OpenOrCreateFromKeys(gomock.Any(), "wallet-path", "", gomock.Any(), gomock.Any(), uint64(0)).
		Return(nil)
	monero.EXPECT().SweepMultiDestination(gomock.Any(), gomock.Any()).
		Return(&backend.TxReceipt{TxID: "sweep-txid"}, nil)

	be := &backend.Backend{Monero: monero}

	var redeemTxID chainhash.Hash
	copy(redeemTxID[:], []byte("redeem-txid-0000000000000000000"))

	out, err := AdvanceOnRedeemSeen(context.Background(), be, s, aliceDecrypted, redeemTxID, "wallet-path", 0, nil)
	require.NoError(t, err)
	redeemed, ok := out.(BtcRedeemed)
	require.True(t, ok)
	require.Equal(t, redeemTxID, redeemed.RedeemTxID)

	wantSecret, err := protocol.SharedScalarFromSecpPrivateKey(f.alice.BitcoinPrivateKey)
	require.NoError(t, err)
	require.Equal(t, wantSecret.Bytes(), redeemed.RecoveredSecret.Bytes())
}

func TestAdvanceOnCancelEpochRejectsTerminalState(t *testing.T) {
	f := newFixture(t)
	redeemed := BtcRedeemed{base{f.session(t)}, chainhash.Hash{}, nil}

	_, err := AdvanceOnCancelEpoch(redeemed, timelock.Cancel(0))
	require.Error(t, err)
}

func TestAdvanceCancelTimelockExpiredBroadcastsCancel(t *testing.T) {
	f := newFixture(t)
	s := CancelTimelockExpired{base{f.session(t)}}

	ctrl := gomock.NewController(t)
	bitcoin := backend.NewMockBitcoinWallet(ctrl)
	var txid chainhash.Hash
	bitcoin.EXPECT().SignAndBroadcast(gomock.Any(), gomock.Any()).Return(txid, nil)

	be := &backend.Backend{Bitcoin: bitcoin}

	out, err := AdvanceCancelTimelockExpired(context.Background(), be, s)
	require.NoError(t, err)
	require.IsType(t, BtcCancelled{}, out)
}

func TestAdvanceBtcCancelledBroadcastsPartialRefund(t *testing.T) {
	f := newFixture(t)
	s := BtcCancelled{base{f.session(t)}}

	ctrl := gomock.NewController(t)
	bitcoin := backend.NewMockBitcoinWallet(ctrl)
	var txid chainhash.Hash
	bitcoin.EXPECT().SignAndBroadcast(gomock.Any(), gomock.Any()).Return(txid, nil)

	be := &backend.Backend{Bitcoin: bitcoin}

	out, err := AdvanceBtcCancelled(context.Background(), be, s)
	require.NoError(t, err)
	require.IsType(t, BtcRefundPublished{}, out)
}

func TestAdvanceOnRefundStatusReachesFinality(t *testing.T) {
	f := newFixture(t)
	s := BtcRefundPublished{base{f.session(t)}}

	out, err := AdvanceOnRefundStatus(s, timelock.FromConfirmations(1), 3)
	require.NoError(t, err)
	require.IsType(t, BtcRefundPublished{}, out)

	out, err = AdvanceOnRefundStatus(s, timelock.FromConfirmations(3), 3)
	require.NoError(t, err)
	require.IsType(t, BtcRefunded{}, out)
}

func TestAdvanceOnPunishObservedOnlyFromCancelledOrRefundPublished(t *testing.T) {
	f := newFixture(t)
	cancelled := BtcCancelled{base{f.session(t)}}

	out, err := AdvanceOnPunishObserved(cancelled, timelock.Cancel(5))
	require.NoError(t, err)
	require.IsType(t, BtcCancelled{}, out)

	out, err = AdvanceOnPunishObserved(cancelled, timelock.Punish())
	require.NoError(t, err)
	require.IsType(t, BtcPunished{}, out)

	started := NewStarted(f.session(t))
	_, err = AdvanceOnPunishObserved(started, timelock.Punish())
	require.Error(t, err)
}

func TestCanEarlyRefundCooperateAndBroadcast(t *testing.T) {
	f := newFixture(t)
	session := f.session(t)
	started := NewStarted(session)

	require.True(t, CanEarlyRefund(started))

	aliceEarlyRefundSig := session.AliceCancelSig // any valid DER signature stands in
	s, err := AdvanceOnEarlyRefundCooperate(started, aliceEarlyRefundSig)
	require.NoError(t, err)
	early, ok := s.(BtcEarlyRefundable)
	require.True(t, ok)
	require.Equal(t, aliceEarlyRefundSig, early.AliceEarlyRefundSig)

	ctrl := gomock.NewController(t)
	bitcoin := backend.NewMockBitcoinWallet(ctrl)
	var txid chainhash.Hash
	bitcoin.EXPECT().SignAndBroadcast(gomock.Any(), gomock.Any()).Return(txid, nil)
	be := &backend.Backend{Bitcoin: bitcoin}

	out, err := AdvanceBtcEarlyRefundable(context.Background(), be, early)
	require.NoError(t, err)
	require.IsType(t, BtcEarlyRefunded{}, out)
}

func TestAdvanceAbortOnlyValidBeforeFunding(t *testing.T) {
	f := newFixture(t)
	started := NewStarted(f.session(t))
	reason := errors.New("counterparty offline")

	out, err := AdvanceAbort(started, reason)
	require.NoError(t, err)
	require.IsType(t, SafelyAborted{}, out)

	btcLocked := BtcLocked{base{f.session(t)}}
	_, err = AdvanceAbort(btcLocked, reason)
	require.Error(t, err)
}
