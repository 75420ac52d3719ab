// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package alice

import (
	"context"
	"crypto/rand"
	"errors"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/athanorlabs/atomic-swap-btc/adaptor"
	"github.com/athanorlabs/atomic-swap-btc/crypto/ed25519x"
	"github.com/athanorlabs/atomic-swap-btc/crypto/secp256k1"
	"github.com/athanorlabs/atomic-swap-btc/protocol"
	"github.com/athanorlabs/atomic-swap-btc/protocol/backend"
	"github.com/athanorlabs/atomic-swap-btc/swapbtc"
	"github.com/athanorlabs/atomic-swap-btc/timelock"
)

// fixture bundles both parties' real key material and a fully-built
// transaction set, so transitions exercise real signatures and real
// adaptor-signature math rather than stubs.
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

func (f *fixture) bobCounterparty() *protocol.CounterpartyKeys {
	return &protocol.CounterpartyKeys{
		BitcoinPubKey:    f.bob.BitcoinPublicKey(),
		MoneroSpendPoint: f.bob.MoneroSpendPoint(),
		ViewKeyShare:     f.bob.ViewKeyShare,
	}
}

func (f *fixture) session(t *testing.T) Session {
	t.Helper()

	cancelDigest, err := f.txs.Cancel.Digest()
	require.NoError(t, err)
	bobCancelSig := f.bob.BitcoinPrivateKey.Sign(cancelDigest)

	punishDigest, err := f.txs.Punish.Digest()
	require.NoError(t, err)
	bobPunishSig := f.bob.BitcoinPrivateKey.Sign(punishDigest)

	refundDigest, err := f.txs.PartialRefund.Digest()
	require.NoError(t, err)
	ownRefundEncSig, err := adaptor.EncSign(f.alice.BitcoinPrivateKey, f.bob.BitcoinPublicKey(), refundDigest)
	require.NoError(t, err)

	return Session{
		SwapID:                 uuid.New(),
		Keys:                   f.alice,
		Counterparty:           f.bobCounterparty(),
		Txs:                    f.txs,
		SafetyMarginBlocks:     6,
		BobCancelSig:           swapbtc.DerEncode(bobCancelSig),
		BobPunishSig:           swapbtc.DerEncode(bobPunishSig),
		OwnPartialRefundEncSig: ownRefundEncSig,
	}
}

func TestAdvanceOnLockStatusProgressesThroughSeenAndFinality(t *testing.T) {
	f := newFixture(t)
	started := NewStarted(f.session(t))

	s, err := AdvanceOnLockStatus(started, timelock.Unseen, 3)
	require.NoError(t, err)
	require.IsType(t, Started{}, s)

	s, err = AdvanceOnLockStatus(s, timelock.FromConfirmations(0), 3)
	require.NoError(t, err)
	require.IsType(t, BtcLockTransactionSeen{}, s)

	s, err = AdvanceOnLockStatus(s, timelock.FromConfirmations(1), 3)
	require.NoError(t, err)
	require.IsType(t, BtcLockTransactionSeen{}, s)

	s, err = AdvanceOnLockStatus(s, timelock.FromConfirmations(3), 3)
	require.NoError(t, err)
	require.IsType(t, BtcLocked{}, s)
}

func TestAdvanceOnLockStatusRejectsUnexpectedState(t *testing.T) {
	f := newFixture(t)
	xmrLocked := XmrLocked{base{f.session(t)}, "txid"}

	_, err := AdvanceOnLockStatus(xmrLocked, timelock.FromConfirmations(1), 3)
	require.Error(t, err)
}

func TestAdvanceBtcLockedRefusesWhenWithinSafetyMargin(t *testing.T) {
	f := newFixture(t)
	session := f.session(t)
	session.SafetyMarginBlocks = 10
	btcLocked := BtcLocked{base{session}}

	s, err := AdvanceBtcLocked(context.Background(), &backend.Backend{}, btcLocked, timelock.None(5), "joint-addr", 1000)
	require.NoError(t, err)
	require.IsType(t, CancelTimelockExpired{}, s)
}

func TestAdvanceBtcLockedLocksXmrAndNotifiesBob(t *testing.T) {
	f := newFixture(t)
	session := f.session(t)
	btcLocked := BtcLocked{base{session}}

	ctrl := gomock.NewController(t)
	monero := backend.NewMockMoneroWallet(ctrl)
	net := backend.NewMockNet(ctrl)

	txKey, err := ed25519x.GenerateScalar(rand.Reader)
	require.NoError(t, err)
	xmrTxID := strings.Repeat("ab", 32)

	monero.EXPECT().Transfer(gomock.Any(), "joint-addr", uint64(1000)).
		Return(&backend.TxReceipt{TxID: xmrTxID, TxKey: *txKey}, nil)
	net.EXPECT().SendSwapMessage(gomock.Any(), session.SwapID).Return(nil)

	be := &backend.Backend{Monero: monero, Net: net}

	s, err := AdvanceBtcLocked(context.Background(), be, btcLocked, timelock.None(100), "joint-addr", 1000)
	require.NoError(t, err)
	xmrLocked, ok := s.(XmrLocked)
	require.True(t, ok)
	require.Equal(t, xmrTxID, xmrLocked.XmrTxID)
}

func TestAdvanceXmrLockedVerifiesBobsEncryptedSignature(t *testing.T) {
	f := newFixture(t)
	session := f.session(t)
	xmrLocked := XmrLocked{base{session}, "txid"}

	digest, err := f.txs.Redeem.Digest()
	require.NoError(t, err)

	// Bob signs Redeem, encrypted under Alice's point, per the swap's
	// adaptor-signature direction.
	encsig, err := adaptor.EncSign(f.bob.BitcoinPrivateKey, f.alice.BitcoinPublicKey(), digest)
	require.NoError(t, err)

	s, err := AdvanceXmrLocked(xmrLocked, encsig)
	require.NoError(t, err)
	require.IsType(t, EncSigLearned{}, s)
}

func TestAdvanceXmrLockedRejectsInvalidEncryptedSignature(t *testing.T) {
	f := newFixture(t)
	session := f.session(t)
	xmrLocked := XmrLocked{base{session}, "txid"}

	digest, err := f.txs.Redeem.Digest()
	require.NoError(t, err)

	// Encrypted towards the wrong point: should fail EncVerify.
	otherKey, err := secp256k1.GenerateKeyPair(rand.Reader)
	require.NoError(t, err)
	encsig, err := adaptor.EncSign(f.bob.BitcoinPrivateKey, otherKey.Public(), digest)
	require.NoError(t, err)

	_, err = AdvanceXmrLocked(xmrLocked, encsig)
	require.Error(t, err)
}

func TestAdvanceEncSigLearnedBroadcastsRedeem(t *testing.T) {
	f := newFixture(t)
	session := f.session(t)

	digest, err := f.txs.Redeem.Digest()
	require.NoError(t, err)
	encsig, err := adaptor.EncSign(f.bob.BitcoinPrivateKey, f.alice.BitcoinPublicKey(), digest)
	require.NoError(t, err)

	s := EncSigLearned{base{session}, "txid", encsig}

	ctrl := gomock.NewController(t)
	bitcoin := backend.NewMockBitcoinWallet(ctrl)
	var txid chainhash.Hash
	copy(txid[:], []byte("redeem-txid-0000000000000000000"))
	bitcoin.EXPECT().SignAndBroadcast(gomock.Any(), gomock.Any()).Return(txid, nil)

	be := &backend.Backend{Bitcoin: bitcoin}

	out, err := AdvanceEncSigLearned(context.Background(), be, s)
	require.NoError(t, err)
	redeemed, ok := out.(BtcRedeemed)
	require.True(t, ok)
	require.Equal(t, txid, redeemed.RedeemTxID)
}

func TestAdvanceCancelTimelockExpiredBroadcastsCancel(t *testing.T) {
	f := newFixture(t)
	session := f.session(t)
	s := CancelTimelockExpired{base{session}}

	ctrl := gomock.NewController(t)
	bitcoin := backend.NewMockBitcoinWallet(ctrl)
	var txid chainhash.Hash
	bitcoin.EXPECT().SignAndBroadcast(gomock.Any(), gomock.Any()).Return(txid, nil)

	be := &backend.Backend{Bitcoin: bitcoin}

	out, err := AdvanceCancelTimelockExpired(context.Background(), be, s)
	require.NoError(t, err)
	require.IsType(t, BtcCancelled{}, out)
}

func TestAdvanceOnRefundSeenRecoversBobsSecret(t *testing.T) {
	f := newFixture(t)
	session := f.session(t)
	s := BtcCancelled{base{session}}

	// Bob decrypts Alice's encrypted PartialRefund signature with his
	// own secret and publishes the result.
	bobDecrypted := adaptor.Decrypt(session.OwnPartialRefundEncSig, f.bob.BitcoinPrivateKey)

	out, err := AdvanceOnRefundSeen(s, bobDecrypted)
	require.NoError(t, err)
	refunded, ok := out.(BtcRefunded)
	require.True(t, ok)

	wantSecret, err := protocol.SharedScalarFromSecpPrivateKey(f.bob.BitcoinPrivateKey)
	require.NoError(t, err)
	require.Equal(t, wantSecret.Bytes(), refunded.RecoveredSecret.Bytes())
}

func TestAdvanceBtcRefundedOpensJointWalletByKeysAndSweeps(t *testing.T) {
	f := newFixture(t)
	session := f.session(t)

	wantSecret, err := protocol.SharedScalarFromSecpPrivateKey(f.bob.BitcoinPrivateKey)
	require.NoError(t, err)
	s := BtcRefunded{base{session}, wantSecret}

	ctrl := gomock.NewController(t)
	monero := backend.NewMockMoneroWallet(ctrl)
	// addr is "": the joint wallet's address is derived by the wallet RPC
	// from (spendKey, viewKey), never from Alice's own destination address.
	monero.EXPECT().
		OpenOrCreateFromKeys(gomock.Any(), "wallet-path", "", gomock.Any(), gomock.Any(), uint64(0)).
		Return(nil)
	monero.EXPECT().SweepMultiDestination(gomock.Any(), gomock.Any()).
		Return(&backend.TxReceipt{TxID: "sweep-txid"}, nil)

	be := &backend.Backend{Monero: monero}

	out, err := AdvanceBtcRefunded(context.Background(), be, s, "wallet-path", "recovery-addr", 0)
	require.NoError(t, err)
	require.IsType(t, XmrRefunded{}, out)
}

func TestAdvanceOnPunishEpochTransitionsOnlyOnPunishEpoch(t *testing.T) {
	f := newFixture(t)
	s := BtcCancelled{base{f.session(t)}}

	out, err := AdvanceOnPunishEpoch(s, timelock.Cancel(5))
	require.NoError(t, err)
	require.IsType(t, BtcCancelled{}, out)

	out, err = AdvanceOnPunishEpoch(s, timelock.Punish())
	require.NoError(t, err)
	require.IsType(t, BtcPunishable{}, out)
}

func TestAdvanceBtcPunishableBroadcastsPunish(t *testing.T) {
	f := newFixture(t)
	s := BtcPunishable{base{f.session(t)}}

	ctrl := gomock.NewController(t)
	bitcoin := backend.NewMockBitcoinWallet(ctrl)
	var txid chainhash.Hash
	bitcoin.EXPECT().SignAndBroadcast(gomock.Any(), gomock.Any()).Return(txid, nil)

	be := &backend.Backend{Bitcoin: bitcoin}

	out, err := AdvanceBtcPunishable(context.Background(), be, s)
	require.NoError(t, err)
	require.IsType(t, BtcPunished{}, out)
}

func TestCanEarlyRefundCooperateAndBroadcast(t *testing.T) {
	f := newFixture(t)
	session := f.session(t)
	session.BobEarlyRefundSig = session.BobCancelSig // any valid DER signature stands in
	started := NewStarted(session)

	require.True(t, CanEarlyRefund(started))

	s, err := AdvanceOnEarlyRefundCooperate(started)
	require.NoError(t, err)
	early, ok := s.(BtcEarlyRefundable)
	require.True(t, ok)

	ctrl := gomock.NewController(t)
	bitcoin := backend.NewMockBitcoinWallet(ctrl)
	var txid chainhash.Hash
	bitcoin.EXPECT().SignAndBroadcast(gomock.Any(), gomock.Any()).Return(txid, nil)
	be := &backend.Backend{Bitcoin: bitcoin}

	out, err := AdvanceBtcEarlyRefundable(context.Background(), be, early)
	require.NoError(t, err)
	require.IsType(t, BtcEarlyRefunded{}, out)
}

func TestAdvanceAbortOnlyValidPreLock(t *testing.T) {
	f := newFixture(t)
	started := NewStarted(f.session(t))
	reason := errors.New("counterparty offline")

	out, err := AdvanceAbort(started, reason)
	require.NoError(t, err)
	require.IsType(t, SafelyAborted{}, out)

	xmrLocked := XmrLocked{base{f.session(t)}, "txid"}
	_, err = AdvanceAbort(xmrLocked, reason)
	require.Error(t, err)
}
