// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

// Package adaptor implements secp256k1 ECDSA adaptor signatures, the glue
// that links a Bitcoin spend to Monero key material (spec.md §4.2).
//
// The construction follows the standard DLEQ-based ECDSA adaptor
// signature scheme (as used by the comit-network `ecdsa_fun` crate that
// the original implementation this protocol is distilled from depends
// on): the encrypted nonce point R = k*Y is published alongside a public
// nonce commitment R_hat = k*G and a same-curve Chaum-Pedersen proof that
// both share the discrete log k. ECDSA's s-value inversion is not
// homomorphic the way Schnorr's is, which is why, unlike a Schnorr
// adaptor signature, an extra commitment and proof are required.
package adaptor

import (
	"crypto/rand"
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"github.com/athanorlabs/atomic-swap-btc/crypto/secp256k1"
)

// ErrInvalidEncryptedSignature is returned when EncVerify fails.
var ErrInvalidEncryptedSignature = errors.New("adaptor: invalid encrypted signature")

// ErrRecoveredKeyMismatch is returned by Recover when the recovered
// scalar does not match the claimed encryption point Y.
var ErrRecoveredKeyMismatch = errors.New("adaptor: recovered secret does not match encryption point")

// EncryptedSignature is an ECDSA signature encrypted under a public point
// Y = y*G. It reveals nothing about y on its own, but decrypting it with
// y yields a valid ECDSA signature, and recovering y from the decrypted
// signature is possible by anyone holding the EncryptedSignature and Y.
type EncryptedSignature struct {
	r     *secp256k1.PublicKey // R = k*Y, the encrypted nonce point
	rHat  *secp256k1.PublicKey // R_hat = k*G, the public nonce commitment
	sHat  *btcec.ModNScalar
	proof *dleqProof // proves log_G(R_hat) = log_Y(R)
}

// Signature is a decrypted, standard ECDSA signature (r, s).
type Signature struct {
	R *btcec.ModNScalar
	S *btcec.ModNScalar
}

// EncSign produces an encrypted signature over digest under sk,
// encrypted towards the point Y = y*G.
func EncSign(sk *secp256k1.PrivateKey, y *secp256k1.PublicKey, digest [32]byte) (*EncryptedSignature, error) {
	k, err := secp256k1.GenerateKeyPair(rand.Reader)
	if err != nil {
		return nil, err
	}

	rPoint := secp256k1.ScalarMult(k.Scalar(), y)
	rHat := secp256k1.ScalarBaseMult(k.Scalar())

	r := xCoordScalar(rPoint)
	e := digestScalar(digest)

	var rx btcec.ModNScalar
	rx.Mul2(r, sk.Scalar())
	rx.Add(e)

	var kInv btcec.ModNScalar
	kInv.Set(k.Scalar())
	kInv.InverseNonConst()

	var sHat btcec.ModNScalar
	sHat.Mul2(&kInv, &rx)

	proof := proveDLEQ(k.Scalar(), y, rHat, rPoint)

	return &EncryptedSignature{
		r:     rPoint,
		rHat:  rHat,
		sHat:  &sHat,
		proof: proof,
	}, nil
}

// EncVerify checks that encsig is a validly-formed encrypted signature
// over digest under the public key X, encrypted towards Y.
func EncVerify(encsig *EncryptedSignature, x, y *secp256k1.PublicKey, digest [32]byte) error {
	if !verifyDLEQ(encsig.proof, y, encsig.rHat, encsig.r) {
		return ErrInvalidEncryptedSignature
	}

	r := xCoordScalar(encsig.r)
	e := digestScalar(digest)

	// Check s_hat * R_hat == e*G + r*X
	lhs := secp256k1.ScalarMult(encsig.sHat, encsig.rHat)

	rhs := secp256k1.ScalarBaseMult(e).Add(secp256k1.ScalarMult(r, x))

	if !lhs.Equal(rhs) {
		return ErrInvalidEncryptedSignature
	}

	return nil
}

// Decrypt decrypts encsig with the secret scalar y, yielding a standard
// ECDSA signature under the key that produced encsig.
func Decrypt(encsig *EncryptedSignature, y *secp256k1.PrivateKey) *Signature {
	var yInv btcec.ModNScalar
	yInv.Set(y.Scalar())
	yInv.InverseNonConst()

	var s btcec.ModNScalar
	s.Mul2(encsig.sHat, &yInv)

	r := xCoordScalar(encsig.r)
	return &Signature{R: r, S: &s}
}

// Recover extracts y such that Y = y*G, given the encrypted signature and
// its decrypted counterpart.
func Recover(sig *Signature, encsig *EncryptedSignature, y *secp256k1.PublicKey) (*secp256k1.PrivateKey, error) {
	var sInv btcec.ModNScalar
	sInv.Set(sig.S)
	sInv.InverseNonConst()

	var yScalar btcec.ModNScalar
	yScalar.Mul2(encsig.sHat, &sInv)

	sk, err := secp256k1.NewPrivateKeyFromBytes(scalarBytes(&yScalar))
	if err != nil {
		return nil, err
	}

	if !sk.Public().Equal(y) {
		return nil, ErrRecoveredKeyMismatch
	}

	return sk, nil
}

// ToWire converts a decrypted Signature into the serialize format used on
// the wire / for broadcasting inside a Bitcoin witness.
func (s *Signature) ToWire() *ecdsa.Signature {
	return ecdsa.NewSignature(s.R, s.S)
}

func xCoordScalar(p *secp256k1.PublicKey) *btcec.ModNScalar {
	point := p.Point()
	point.ToAffine()
	var s btcec.ModNScalar
	xBytes := point.X.Bytes()
	s.SetBytes(&xBytes)
	return &s
}

func digestScalar(digest [32]byte) *btcec.ModNScalar {
	var s btcec.ModNScalar
	s.SetBytes(&digest)
	return &s
}

func scalarBytes(s *btcec.ModNScalar) []byte {
	b := s.Bytes()
	return b[:]
}
