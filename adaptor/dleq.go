// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

package adaptor

import (
	"crypto/rand"
	"crypto/sha256"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/athanorlabs/atomic-swap-btc/crypto/secp256k1"
)

// dleqProof is a same-curve Chaum-Pedersen proof that log_G(rHat) ==
// log_Y(r), i.e. that R_hat and R were derived from the same nonce k
// against the two different bases G and Y. It is what lets an encrypted
// signature's public nonce commitment R_hat stand in for the encrypted
// nonce point R during verification.
type dleqProof struct {
	e *btcec.ModNScalar
	z *btcec.ModNScalar
}

func proveDLEQ(k *btcec.ModNScalar, y, rHat, r *secp256k1.PublicKey) *dleqProof {
	t, err := secp256k1.GenerateKeyPair(rand.Reader)
	if err != nil {
		// GenerateKeyPair only fails if the system CSPRNG is broken, in
		// which case the process cannot proceed safely in any case.
		panic(err)
	}

	t1 := secp256k1.ScalarBaseMult(t.Scalar())
	t2 := secp256k1.ScalarMult(t.Scalar(), y)

	e := dleqChallenge(y, rHat, r, t1, t2)

	var z btcec.ModNScalar
	z.Mul2(e, k)
	z.Add(t.Scalar())

	return &dleqProof{e: e, z: &z}
}

func verifyDLEQ(proof *dleqProof, y, rHat, r *secp256k1.PublicKey) bool {
	// T1' = z*G - e*R_hat
	t1 := secp256k1.ScalarBaseMult(proof.z).Add(negatedScalarMult(proof.e, rHat))
	// T2' = z*Y - e*R
	t2 := secp256k1.ScalarMult(proof.z, y).Add(negatedScalarMult(proof.e, r))

	e := dleqChallenge(y, rHat, r, t1, t2)
	return e.Equals(proof.e)
}

func negatedScalarMult(s *btcec.ModNScalar, p *secp256k1.PublicKey) *secp256k1.PublicKey {
	var neg btcec.ModNScalar
	neg.Set(s)
	neg.Negate()
	return secp256k1.ScalarMult(&neg, p)
}

func dleqChallenge(y, rHat, r, t1, t2 *secp256k1.PublicKey) *btcec.ModNScalar {
	h := sha256.New()
	h.Write([]byte("atomic-swap-btc/adaptor/dleq/v1"))
	h.Write(y.Bytes())
	h.Write(rHat.Bytes())
	h.Write(r.Bytes())
	h.Write(t1.Bytes())
	h.Write(t2.Bytes())
	digest := h.Sum(nil)

	var e btcec.ModNScalar
	var buf [32]byte
	copy(buf[:], digest)
	e.SetBytes(&buf)
	return &e
}
