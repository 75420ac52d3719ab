// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package coordinator

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/fxamacker/cbor/v2"

	"github.com/athanorlabs/atomic-swap-btc/adaptor"
	"github.com/athanorlabs/atomic-swap-btc/crypto/ed25519x"
	"github.com/athanorlabs/atomic-swap-btc/protocol/alice"
	"github.com/athanorlabs/atomic-swap-btc/protocol/bob"
)

// record is what actually gets appended to backend.Database's
// per-swap state log: the name of the concrete state plus whatever
// extra fields that state carries beyond Session, which the
// coordinator already holds in memory and doesn't need to
// re-persist on every transition.
type record struct {
	Kind string `cbor:"kind"`

	XmrTxID             string `cbor:"xmr_tx_id,omitempty"`
	RedeemEncSig        []byte `cbor:"redeem_enc_sig,omitempty"`
	TxKey               []byte `cbor:"tx_key,omitempty"`
	RedeemTxID          []byte `cbor:"redeem_tx_id,omitempty"`
	RecoveredSecret     []byte `cbor:"recovered_secret,omitempty"`
	AliceEarlyRefundSig []byte `cbor:"alice_early_refund_sig,omitempty"`
	Reason              string `cbor:"reason,omitempty"`
}

// EncodeAliceState encodes s for backend.Database.PutState. Session
// itself is not part of the record: it is fixed for the lifetime of a
// swap and is supplied separately when decoding.
func EncodeAliceState(s alice.State) ([]byte, error) {
	rec := record{Kind: kindName(s)}

	switch st := s.(type) {
	case alice.XmrLocked:
		rec.XmrTxID = st.XmrTxID
	case alice.EncSigLearned:
		rec.XmrTxID = st.XmrTxID
		rec.RedeemEncSig = st.RedeemEncSig.Encode()
	case alice.BtcRedeemed:
		rec.RedeemTxID = st.RedeemTxID[:]
	case alice.BtcRefunded:
		secret := st.RecoveredSecret.Bytes()
		rec.RecoveredSecret = secret[:]
	case alice.SafelyAborted:
		rec.Reason = st.Reason.Error()
	}

	return cbor.Marshal(rec)
}

// DecodeAliceState decodes a record produced by EncodeAliceState back
// into a concrete alice.State, reattaching session, which the caller
// reconstructs once from the swap's persisted setup metadata.
func DecodeAliceState(session alice.Session, b []byte) (alice.State, error) {
	var rec record
	if err := cbor.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("decoding alice state record: %w", err)
	}

	switch rec.Kind {
	case "Started":
		return alice.NewStarted(session), nil
	case "BtcLockTransactionSeen":
		return alice.NewBtcLockTransactionSeen(session), nil
	case "BtcLocked":
		return alice.NewBtcLocked(session), nil
	case "XmrLocked":
		return alice.NewXmrLocked(session, rec.XmrTxID), nil
	case "EncSigLearned":
		encsig, err := adaptor.DecodeEncryptedSignature(rec.RedeemEncSig)
		if err != nil {
			return nil, fmt.Errorf("decoding EncSigLearned.RedeemEncSig: %w", err)
		}
		return alice.NewEncSigLearned(session, rec.XmrTxID, encsig), nil
	case "BtcRedeemed":
		txid, err := chainhash.NewHash(rec.RedeemTxID)
		if err != nil {
			return nil, fmt.Errorf("decoding BtcRedeemed.RedeemTxID: %w", err)
		}
		return alice.NewBtcRedeemed(session, *txid), nil
	case "CancelTimelockExpired":
		return alice.NewCancelTimelockExpired(session), nil
	case "BtcCancelled":
		return alice.NewBtcCancelled(session), nil
	case "BtcRefunded":
		secret, err := ed25519x.NewScalarFromCanonicalBytes(rec.RecoveredSecret)
		if err != nil {
			return nil, fmt.Errorf("decoding BtcRefunded.RecoveredSecret: %w", err)
		}
		return alice.NewBtcRefunded(session, secret), nil
	case "XmrRefunded":
		return alice.NewXmrRefunded(session), nil
	case "BtcPunishable":
		return alice.NewBtcPunishable(session), nil
	case "BtcPunished":
		return alice.NewBtcPunished(session), nil
	case "BtcEarlyRefundable":
		return alice.NewBtcEarlyRefundable(session), nil
	case "BtcEarlyRefunded":
		return alice.NewBtcEarlyRefunded(session), nil
	case "SafelyAborted":
		return alice.NewSafelyAborted(session, fmt.Errorf("%s", rec.Reason)), nil
	default:
		return nil, fmt.Errorf("unknown alice state kind %q", rec.Kind)
	}
}

// EncodeBobState encodes s for backend.Database.PutState, mirroring
// EncodeAliceState.
func EncodeBobState(s bob.State) ([]byte, error) {
	rec := record{Kind: kindName(s)}

	switch st := s.(type) {
	case bob.XmrLockProofReceived:
		rec.XmrTxID = st.XmrTxID
		txKey := st.TxKey.Bytes()
		rec.TxKey = txKey[:]
	case bob.XmrLocked:
		rec.RedeemEncSig = st.RedeemEncSig.Encode()
	case bob.BtcRedeemed:
		rec.RedeemTxID = st.RedeemTxID[:]
		secret := st.RecoveredSecret.Bytes()
		rec.RecoveredSecret = secret[:]
	case bob.BtcEarlyRefundable:
		rec.AliceEarlyRefundSig = st.AliceEarlyRefundSig
	case bob.SafelyAborted:
		rec.Reason = st.Reason.Error()
	}

	return cbor.Marshal(rec)
}

// DecodeBobState decodes a record produced by EncodeBobState, mirroring
// DecodeAliceState.
func DecodeBobState(session bob.Session, b []byte) (bob.State, error) {
	var rec record
	if err := cbor.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("decoding bob state record: %w", err)
	}

	switch rec.Kind {
	case "Started":
		return bob.NewStarted(session), nil
	case "BtcLocked":
		return bob.NewBtcLocked(session), nil
	case "XmrLockProofReceived":
		txKey, err := ed25519x.NewScalarFromCanonicalBytes(rec.TxKey)
		if err != nil {
			return nil, fmt.Errorf("decoding XmrLockProofReceived.TxKey: %w", err)
		}
		return bob.NewXmrLockProofReceived(session, rec.XmrTxID, *txKey), nil
	case "XmrLocked":
		encsig, err := adaptor.DecodeEncryptedSignature(rec.RedeemEncSig)
		if err != nil {
			return nil, fmt.Errorf("decoding XmrLocked.RedeemEncSig: %w", err)
		}
		return bob.NewXmrLocked(session, encsig), nil
	case "BtcRedeemed":
		txid, err := chainhash.NewHash(rec.RedeemTxID)
		if err != nil {
			return nil, fmt.Errorf("decoding BtcRedeemed.RedeemTxID: %w", err)
		}
		secret, err := ed25519x.NewScalarFromCanonicalBytes(rec.RecoveredSecret)
		if err != nil {
			return nil, fmt.Errorf("decoding BtcRedeemed.RecoveredSecret: %w", err)
		}
		return bob.NewBtcRedeemed(session, *txid, secret), nil
	case "CancelTimelockExpired":
		return bob.NewCancelTimelockExpired(session), nil
	case "BtcCancelled":
		return bob.NewBtcCancelled(session), nil
	case "BtcRefundPublished":
		return bob.NewBtcRefundPublished(session), nil
	case "BtcRefunded":
		return bob.NewBtcRefunded(session), nil
	case "BtcPunished":
		return bob.NewBtcPunished(session), nil
	case "BtcEarlyRefundable":
		return bob.NewBtcEarlyRefundable(session, rec.AliceEarlyRefundSig), nil
	case "BtcEarlyRefunded":
		return bob.NewBtcEarlyRefunded(session), nil
	case "SafelyAborted":
		return bob.NewSafelyAborted(session, fmt.Errorf("%s", rec.Reason)), nil
	default:
		return nil, fmt.Errorf("unknown bob state kind %q", rec.Kind)
	}
}

// kindName returns the discriminant stored in a record's Kind field.
// It is the same name State.String() prints for every state except
// SafelyAborted, whose String() embeds its Reason instead of naming
// the state.
func kindName(s fmt.Stringer) string {
	switch s.(type) {
	case alice.SafelyAborted, bob.SafelyAborted:
		return "SafelyAborted"
	default:
		return s.String()
	}
}
