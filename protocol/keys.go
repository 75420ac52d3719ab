// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

// Package protocol implements the four-message setup handshake shared
// by protocol/alice and protocol/bob: generating each party's keys and
// DLEQ proof, and building/verifying Message0 through Message4 per
// spec §4.4.
package protocol

import (
	"io"

	"github.com/athanorlabs/atomic-swap-btc/crypto/ed25519x"
	"github.com/athanorlabs/atomic-swap-btc/crypto/secp256k1"
	"github.com/athanorlabs/atomic-swap-btc/dleq"
)

// KeysAndProof bundles one party's per-swap key material: the single
// secret scalar s that is simultaneously Bitcoin's signing key and the
// Monero spend-key share, a separate Monero view-key share, and the
// DLEQ proof binding s's secp256k1 and ed25519 public points.
type KeysAndProof struct {
	BitcoinPrivateKey *secp256k1.PrivateKey
	Secret            *ed25519x.Scalar
	ViewKeyShare      *ed25519x.Scalar
	Proof             *dleq.Proof
}

// BitcoinPublicKey is the party's Bitcoin signing key B (or A), equal to
// the DLEQ proof's SBtc point.
func (k *KeysAndProof) BitcoinPublicKey() *secp256k1.PublicKey {
	return k.BitcoinPrivateKey.Public()
}

// MoneroSpendPoint is the party's public Monero spend-key share,
// equal to the DLEQ proof's SXmr point.
func (k *KeysAndProof) MoneroSpendPoint() *ed25519x.Point {
	return k.Secret.BasePointMult()
}

// GenerateKeysAndProof draws a fresh secret scalar and view-key share
// and proves the secret's cross-curve consistency, mirroring the
// teacher's protocol/common.GenerateKeysAndProof used by both
// xmrmaker and xmrtaker instances.
func GenerateKeysAndProof(rnd io.Reader) (*KeysAndProof, error) {
	secret, err := ed25519x.GenerateScalar(rnd)
	if err != nil {
		return nil, err
	}

	viewKeyShare, err := ed25519x.GenerateScalar(rnd)
	if err != nil {
		return nil, err
	}

	btcKey, err := secpPrivateKeyFromSharedScalar(secret)
	if err != nil {
		return nil, err
	}

	proof, err := dleq.Prove(secret, rnd)
	if err != nil {
		return nil, err
	}

	return &KeysAndProof{
		BitcoinPrivateKey: btcKey,
		Secret:            secret,
		ViewKeyShare:      viewKeyShare,
		Proof:             proof,
	}, nil
}

// secpPrivateKeyFromSharedScalar reinterprets an ed25519 scalar (<L, and
// therefore automatically a valid secp256k1 scalar since L<N) as a
// secp256k1 private key. ed25519x.Scalar.Bytes is little-endian;
// secp256k1.NewPrivateKeyFromBytes expects big-endian, so the bytes are
// reversed — the same conversion dleq.Prove performs internally to
// derive its SBtc point from the same secret.
func secpPrivateKeyFromSharedScalar(s *ed25519x.Scalar) (*secp256k1.PrivateKey, error) {
	b := s.Bytes()
	be := make([]byte, 32)
	for i, v := range b {
		be[31-i] = v
	}
	return secp256k1.NewPrivateKeyFromBytes(be)
}

// SharedScalarFromSecpPrivateKey is the inverse of
// secpPrivateKeyFromSharedScalar: it reinterprets a secp256k1 private
// key recovered via adaptor.Recover (the counterparty's half of the
// joint Monero spend key, leaked by their on-chain Bitcoin signature)
// back into the ed25519 scalar it started life as.
func SharedScalarFromSecpPrivateKey(sk *secp256k1.PrivateKey) (*ed25519x.Scalar, error) {
	b := sk.Bytes()
	le := make([]byte, 32)
	for i, v := range b {
		le[31-i] = v
	}
	return ed25519x.NewScalarFromCanonicalBytes(le)
}
