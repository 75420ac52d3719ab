// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

// Command swapd is the atomic-swap daemon: it loads configuration,
// opens the swap database, and serves the RPC surface clients like
// swapcli talk to. It does not, on its own, wire a Bitcoin wallet, a
// Monero wallet, or a P2P transport — those are collaborators per
// spec §1/§6, supplied by an embedding build via backend.Backend. What
// this binary boots unconditionally is the persistence and bookkeeping
// layer (config, db, protocol/swap.Manager) plus the daemon/swap RPC
// namespaces, which are enough to inspect a database of swaps produced
// by a fuller build even without live wallets attached.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	logging "github.com/ipfs/go-log/v2"
	"github.com/urfave/cli/v2"

	"github.com/athanorlabs/atomic-swap-btc/config"
	"github.com/athanorlabs/atomic-swap-btc/db"
	"github.com/athanorlabs/atomic-swap-btc/protocol/swap"
	"github.com/athanorlabs/atomic-swap-btc/rpc"
)

var log = logging.Logger("swapd")

const (
	flagNetwork    = "network"
	flagDataDir    = "data-dir"
	flagConfigFile = "config-file"
	flagRPCAddress = "rpc-address"
	flagLogLevel   = "log-level"
)

func main() {
	app := &cli.App{
		Name:  "swapd",
		Usage: "Bitcoin/Monero atomic-swap daemon",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagNetwork, Value: string(config.Mainnet), Usage: "mainnet, testnet, or regtest"},
			&cli.StringFlag{Name: flagDataDir, Usage: "overrides the network's default data directory"},
			&cli.StringFlag{Name: flagConfigFile, Usage: "path to a TOML config file"},
			&cli.StringFlag{Name: flagRPCAddress, Value: "127.0.0.1:5000", Usage: "address the RPC server listens on"},
			&cli.StringFlag{Name: flagLogLevel, Value: "info", Usage: "debug, info, warn, or error"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Errorf("%s", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if err := logging.SetLogLevel("*", c.String(flagLogLevel)); err != nil {
		return fmt.Errorf("invalid %s: %w", flagLogLevel, err)
	}

	cfg, err := config.Load(config.Network(c.String(flagNetwork)), c.String(flagConfigFile))
	if err != nil {
		return err
	}
	if dir := c.String(flagDataDir); dir != "" {
		cfg.DataDir = dir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	bdb, err := db.Open(cfg.DataDir + "/swapd.db")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer bdb.Close() //nolint:errcheck

	manager, err := swap.NewManager(bdb)
	if err != nil {
		return fmt.Errorf("loading swap manager: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	server, err := rpc.NewServer(&rpc.Config{
		Ctx:        ctx,
		Address:    c.String(flagRPCAddress),
		Manager:    manager,
		Namespaces: map[string]struct{}{rpc.DaemonNamespace: {}, rpc.SwapNamespace: {}},
	})
	if err != nil {
		return fmt.Errorf("starting rpc server: %w", err)
	}

	log.Infof("swapd started on network %s, data dir %s", cfg.Network, cfg.DataDir)
	return server.Start()
}
