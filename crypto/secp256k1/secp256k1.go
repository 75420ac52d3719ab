// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

// Package secp256k1 wraps btcec scalar/point arithmetic with the
// zeroize-on-drop discipline the protocol's adaptor signatures and DLEQ
// proofs depend on.
package secp256k1

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// ErrInvalidScalar is returned when a 32-byte buffer does not decode to a
// valid, non-zero scalar.
var ErrInvalidScalar = errors.New("invalid secp256k1 scalar")

// PrivateKey is a secp256k1 private scalar.
type PrivateKey struct {
	key *btcec.PrivateKey
}

// PublicKey is a secp256k1 group element.
type PublicKey struct {
	key *btcec.PublicKey
}

// GenerateKeyPair returns a fresh, uniformly random private/public keypair.
func GenerateKeyPair(rnd io.Reader) (*PrivateKey, error) {
	if rnd == nil {
		rnd = rand.Reader
	}

	var buf [32]byte
	for {
		if _, err := io.ReadFull(rnd, buf[:]); err != nil {
			return nil, err
		}

		sk, err := NewPrivateKeyFromBytes(buf[:])
		if err == nil {
			return sk, nil
		}
	}
}

// NewPrivateKeyFromBytes parses a 32-byte big-endian scalar.
func NewPrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != 32 {
		return nil, ErrInvalidScalar
	}

	var s btcec.ModNScalar
	if overflow := s.SetByteSlice(b); overflow || s.IsZero() {
		return nil, ErrInvalidScalar
	}

	return &PrivateKey{key: btcec.PrivKeyFromScalar(&s)}, nil
}

// Bytes returns the 32-byte big-endian encoding of the scalar.
func (sk *PrivateKey) Bytes() [32]byte {
	var out [32]byte
	b := sk.key.Serialize()
	copy(out[:], b)
	return out
}

// Public derives the public key K = k*G.
func (sk *PrivateKey) Public() *PublicKey {
	return &PublicKey{key: sk.key.PubKey()}
}

// Zero overwrites the private scalar's backing bytes. Go provides no
// guaranteed memory scrubbing, so this is advisory best-effort hygiene,
// not a security boundary.
func (sk *PrivateKey) Zero() {
	if sk == nil || sk.key == nil {
		return
	}
	sk.key.Key.Zero()
}

// Sign produces a standard deterministic ECDSA signature over digest,
// for the plain (non-adaptor) co-signatures the protocol collects
// during setup: Cancel, Punish, and EarlyRefund.
func (sk *PrivateKey) Sign(digest [32]byte) *ecdsa.Signature {
	return ecdsa.Sign(sk.key, digest[:])
}

// Scalar exposes the underlying btcec scalar for use by the adaptor
// signature and DLEQ packages, which need raw field arithmetic.
func (sk *PrivateKey) Scalar() *btcec.ModNScalar {
	s := sk.key.Key
	return &s
}

// Add returns sk + other (mod n) as a new PrivateKey.
func (sk *PrivateKey) Add(other *PrivateKey) *PrivateKey {
	var sum btcec.ModNScalar
	sum.Set(sk.Scalar())
	sum.Add(other.Scalar())
	return &PrivateKey{key: btcec.PrivKeyFromScalar(&sum)}
}

// NewPublicKeyFromBytes parses a compressed (33-byte) or uncompressed
// (65-byte) SEC1 public key.
func NewPublicKeyFromBytes(b []byte) (*PublicKey, error) {
	pub, err := btcec.ParsePubKey(b)
	if err != nil {
		return nil, err
	}
	return &PublicKey{key: pub}, nil
}

// Bytes returns the compressed SEC1 encoding.
func (pk *PublicKey) Bytes() []byte {
	return pk.key.SerializeCompressed()
}

// Point exposes the underlying jacobian point.
func (pk *PublicKey) Point() *btcec.JacobianPoint {
	var p btcec.JacobianPoint
	pk.key.AsJacobian(&p)
	return &p
}

// Add returns pk + other as a new PublicKey (point addition).
func (pk *PublicKey) Add(other *PublicKey) *PublicKey {
	p1, p2 := pk.Point(), other.Point()
	var sum btcec.JacobianPoint
	btcec.AddNonConst(p1, p2, &sum)
	sum.ToAffine()
	return &PublicKey{key: btcec.NewPublicKey(&sum.X, &sum.Y)}
}

// Equal reports whether two public keys encode the same point.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	return pk.key.IsEqual(other.key)
}

// Negate returns -pk, the point's additive inverse.
func (pk *PublicKey) Negate() *PublicKey {
	var negOne btcec.ModNScalar
	negOne.SetInt(1)
	negOne.Negate()
	return ScalarMult(&negOne, pk)
}

// String returns the hex-encoded compressed public key.
func (pk *PublicKey) String() string {
	return hex.EncodeToString(pk.Bytes())
}

// ScalarBaseMult returns s*G for the secp256k1 generator G.
func ScalarBaseMult(s *btcec.ModNScalar) *PublicKey {
	var p btcec.JacobianPoint
	btcec.ScalarBaseMultNonConst(s, &p)
	p.ToAffine()
	return &PublicKey{key: btcec.NewPublicKey(&p.X, &p.Y)}
}

// ScalarMult returns s*P.
func ScalarMult(s *btcec.ModNScalar, p *PublicKey) *PublicKey {
	var point, res btcec.JacobianPoint
	p.key.AsJacobian(&point)
	btcec.ScalarMultNonConst(s, &point, &res)
	res.ToAffine()
	return &PublicKey{key: btcec.NewPublicKey(&res.X, &res.Y)}
}
