// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

// Package coins defines the Bitcoin and Monero amount types used
// throughout the protocol, keeping conversions between satoshis,
// piconero, and decimal display amounts in one place rather than
// scattering raw int64/uint64 math across callers.
package coins

import (
	"fmt"
	"math/big"

	"github.com/cockroachdb/apd/v3"
)

// satPerBTC is the number of satoshis in one bitcoin.
const satPerBTC = 1_0000_0000

// piconeroPerXMR is the number of piconero in one monero.
const piconeroPerXMR = 1_0000_0000_0000

// BitcoinAmount is a quantity of bitcoin, stored internally as satoshis
// to avoid floating-point rounding on the hot path.
type BitcoinAmount struct {
	sats int64
}

// NewBitcoinAmountFromSats constructs a BitcoinAmount from a satoshi count.
func NewBitcoinAmountFromSats(sats int64) BitcoinAmount {
	return BitcoinAmount{sats: sats}
}

// NewBitcoinAmountFromDecimal parses a decimal BTC string (e.g. "0.015")
// into a BitcoinAmount.
func NewBitcoinAmountFromDecimal(s string) (BitcoinAmount, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return BitcoinAmount{}, fmt.Errorf("coins: invalid bitcoin amount %q: %w", s, err)
	}

	scaled := new(apd.Decimal)
	_, err = apd.BaseContext.Mul(scaled, d, apd.New(satPerBTC, 0))
	if err != nil {
		return BitcoinAmount{}, err
	}

	rounded := new(apd.Decimal)
	_, err = apd.BaseContext.RoundToIntegralValue(rounded, scaled)
	if err != nil {
		return BitcoinAmount{}, err
	}

	sats, err := rounded.Int64()
	if err != nil {
		return BitcoinAmount{}, fmt.Errorf("coins: bitcoin amount out of range: %w", err)
	}

	return BitcoinAmount{sats: sats}, nil
}

// Sats returns the amount as an integer satoshi count.
func (a BitcoinAmount) Sats() int64 {
	return a.sats
}

// Decimal returns the amount as a decimal BTC string.
func (a BitcoinAmount) Decimal() string {
	// sats carries exactly 8 decimal places of BTC, so the exponent
	// shift is exact and needs no division context.
	return apd.New(a.sats, -8).Text('f')
}

// Add returns a + b.
func (a BitcoinAmount) Add(b BitcoinAmount) BitcoinAmount {
	return BitcoinAmount{sats: a.sats + b.sats}
}

// Sub returns a - b.
func (a BitcoinAmount) Sub(b BitcoinAmount) BitcoinAmount {
	return BitcoinAmount{sats: a.sats - b.sats}
}

// String implements fmt.Stringer.
func (a BitcoinAmount) String() string {
	return a.Decimal() + " BTC"
}

// MoneroAmount is a quantity of monero, stored internally as piconero.
type MoneroAmount struct {
	piconero uint64
}

// NewMoneroAmountFromPiconero constructs a MoneroAmount from a piconero
// count.
func NewMoneroAmountFromPiconero(piconero uint64) MoneroAmount {
	return MoneroAmount{piconero: piconero}
}

// NewMoneroAmountFromDecimal parses a decimal XMR string (e.g. "1.5")
// into a MoneroAmount.
func NewMoneroAmountFromDecimal(s string) (MoneroAmount, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return MoneroAmount{}, fmt.Errorf("coins: invalid monero amount %q: %w", s, err)
	}

	scaled := new(apd.Decimal)
	_, err = apd.BaseContext.Mul(scaled, d, apd.New(piconeroPerXMR, 0))
	if err != nil {
		return MoneroAmount{}, err
	}

	rounded := new(apd.Decimal)
	_, err = apd.BaseContext.RoundToIntegralValue(rounded, scaled)
	if err != nil {
		return MoneroAmount{}, err
	}

	piconero, err := rounded.Uint64()
	if err != nil {
		return MoneroAmount{}, fmt.Errorf("coins: monero amount out of range: %w", err)
	}

	return MoneroAmount{piconero: piconero}, nil
}

// Piconero returns the amount as an integer piconero count.
func (a MoneroAmount) Piconero() uint64 {
	return a.piconero
}

// Decimal returns the amount as a decimal XMR string.
func (a MoneroAmount) Decimal() string {
	// piconero carries exactly 12 decimal places of XMR.
	return apd.NewWithBigInt(new(big.Int).SetUint64(a.piconero), -12).Text('f')
}

// String implements fmt.Stringer.
func (a MoneroAmount) String() string {
	return a.Decimal() + " XMR"
}

// ExchangeRate converts between bitcoin and monero amounts at a fixed
// XMR-per-BTC rate, mirroring the rate type the teacher's RPC quote
// namespace exchanges over the wire.
type ExchangeRate struct {
	// XMRPerBTC is the number of XMR one BTC buys.
	XMRPerBTC *apd.Decimal
}

// ToXMR converts a bitcoin amount to its monero equivalent at this rate.
func (r ExchangeRate) ToXMR(btc BitcoinAmount) (MoneroAmount, error) {
	btcDecimal := apd.New(btc.sats, -8)

	xmrDecimal := new(apd.Decimal)
	_, err := apd.BaseContext.Mul(xmrDecimal, btcDecimal, r.XMRPerBTC)
	if err != nil {
		return MoneroAmount{}, err
	}

	return NewMoneroAmountFromDecimal(xmrDecimal.Text('f'))
}
