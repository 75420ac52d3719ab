// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

// Package config loads swapd's layered configuration (defaults, then a
// TOML config file, then "ATOMICSWAP_"-prefixed environment variables)
// using spf13/viper, generalized from the Bitcoin/Monero env structs of
// the original implementation's config crate.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Network selects which Bitcoin/Monero network triple swapd connects
// to, mirroring the original's Mainnet/Testnet/Regtest env types.
type Network string

const (
	// Mainnet is Bitcoin mainnet paired with Monero mainnet.
	Mainnet Network = "mainnet"
	// Testnet is Bitcoin testnet3 paired with Monero stagenet.
	Testnet Network = "testnet"
	// Regtest is Bitcoin regtest paired with a local Monero regtest
	// daemon, used for integration tests.
	Regtest Network = "regtest"
)

const envPrefix = "ATOMICSWAP"

// Config bundles every value the protocol and its state machines need
// beyond what's exchanged over the wire: which network to run on, the
// relative timelocks baked into every swap's scripts, and the
// confirmation/safety margins each chain's monitor waits for before
// treating a transaction as final.
type Config struct {
	Network Network `mapstructure:"network"`

	BitcoinCancelTimelock          uint32 `mapstructure:"bitcoin_cancel_timelock"`
	BitcoinPunishTimelock          uint32 `mapstructure:"bitcoin_punish_timelock"`
	BitcoinFinalityConfirmations   uint32 `mapstructure:"bitcoin_finality_confirmations"`
	MoneroFinalityConfirmations    uint64 `mapstructure:"monero_finality_confirmations"`
	MoneroAvgBlockTimeSecs         uint64 `mapstructure:"monero_avg_block_time"`
	MoneroSafetyMarginBlocks       uint64 `mapstructure:"monero_safety_margin_blocks"`

	DataDir string `mapstructure:"data_dir"`
}

// defaults returns the per-network defaults: cancel/punish timelocks of
// 72 Bitcoin blocks (~12h at 10min/block) and Monero finality of 10
// confirmations, shortened to 10-block timelocks and single
// confirmations on regtest.
func defaults(network Network) Config {
	cfg := Config{
		Network:                      network,
		BitcoinCancelTimelock:        72,
		BitcoinPunishTimelock:        72,
		BitcoinFinalityConfirmations: 1,
		MoneroFinalityConfirmations:  10,
		MoneroAvgBlockTimeSecs:       120,
		MoneroSafetyMarginBlocks:     10,
		DataDir:                      defaultDataDir(network),
	}

	if network == Regtest {
		cfg.BitcoinCancelTimelock = 10
		cfg.BitcoinPunishTimelock = 10
		cfg.BitcoinFinalityConfirmations = 1
		cfg.MoneroFinalityConfirmations = 1
	}

	return cfg
}

func defaultDataDir(network Network) string {
	return fmt.Sprintf("~/.atomicswap/%s", network)
}

// Load reads Config for the given network: defaults, overridden by
// configFile (if non-empty and present), overridden by
// ATOMICSWAP_-prefixed environment variables (e.g.
// ATOMICSWAP_BITCOIN_CANCEL_TIMELOCK).
func Load(network Network, configFile string) (*Config, error) {
	v := viper.New()

	for key, val := range structToMap(defaults(network)) {
		v.SetDefault(key, val)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config: failed to read %s: %w", configFile, err)
			}
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal: %w", err)
	}

	return &cfg, nil
}

func structToMap(cfg Config) map[string]interface{} {
	return map[string]interface{}{
		"network":                       string(cfg.Network),
		"bitcoin_cancel_timelock":       cfg.BitcoinCancelTimelock,
		"bitcoin_punish_timelock":       cfg.BitcoinPunishTimelock,
		"bitcoin_finality_confirmations": cfg.BitcoinFinalityConfirmations,
		"monero_finality_confirmations": cfg.MoneroFinalityConfirmations,
		"monero_avg_block_time":         cfg.MoneroAvgBlockTimeSecs,
		"monero_safety_margin_blocks":   cfg.MoneroSafetyMarginBlocks,
		"data_dir":                      cfg.DataDir,
	}
}

// Validate checks that cfg's cancel and punish timelocks are nonzero and
// that its network is Mainnet, Testnet or Regtest. Confirmation counts
// and the relative size of the two timelocks are not checked.
func (c *Config) Validate() error {
	if c.BitcoinCancelTimelock == 0 {
		return fmt.Errorf("config: bitcoin_cancel_timelock must be nonzero")
	}
	if c.BitcoinPunishTimelock == 0 {
		return fmt.Errorf("config: bitcoin_punish_timelock must be nonzero")
	}
	switch c.Network {
	case Mainnet, Testnet, Regtest:
	default:
		return fmt.Errorf("config: unknown network %q", c.Network)
	}
	return nil
}
