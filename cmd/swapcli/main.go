// Copyright 2023 The AthanorLabs/atomic-swap Authors
// SPDX-License-Identifier: LGPL-3.0-only

// Package main provides the entrypoint of swapcli, an executable for
// interacting with a local swapd instance's JSON-RPC server from the
// command line.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/athanorlabs/atomic-swap-btc/protocol/swap"
)

const (
	flagSwapdAddress = "swapd-address"
	flagSwapID       = "id"
)

func swapdAddressFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  flagSwapdAddress,
		Value: "http://127.0.0.1:5000",
		Usage: "base URL of a running swapd's RPC server",
	}
}

func cliApp() *cli.App {
	return &cli.App{
		Name:  "swapcli",
		Usage: "Client for swapd",
		Commands: []*cli.Command{
			{
				Name:   "ongoing",
				Usage:  "List ongoing swaps",
				Action: runOngoing,
				Flags:  []cli.Flag{swapdAddressFlag()},
			},
			{
				Name:   "past",
				Usage:  "Show a completed swap by ID",
				Action: runPast,
				Flags: []cli.Flag{
					swapdAddressFlag(),
					&cli.StringFlag{Name: flagSwapID, Required: true, Usage: "swap ID (UUID)"},
				},
			},
			{
				Name:   "past-ids",
				Usage:  "List every completed swap's ID",
				Action: runPastIDs,
				Flags:  []cli.Flag{swapdAddressFlag()},
			},
			{
				Name:   "shutdown",
				Usage:  "Gracefully shut down the connected swapd instance",
				Action: runShutdown,
				Flags:  []cli.Flag{swapdAddressFlag()},
			},
		},
	}
}

func runOngoing(c *cli.Context) error {
	var resp struct {
		Swaps []*swap.Info `json:"swaps"`
	}
	if err := call(c.String(flagSwapdAddress), "swap.GetOngoing", struct{}{}, &resp); err != nil {
		return err
	}
	return printJSON(resp.Swaps)
}

func runPast(c *cli.Context) error {
	id, err := uuid.Parse(c.String(flagSwapID))
	if err != nil {
		return fmt.Errorf("invalid --%s: %w", flagSwapID, err)
	}

	var resp struct {
		Swap *swap.Info `json:"swap"`
	}
	req := struct {
		ID uuid.UUID `json:"id"`
	}{ID: id}
	if err := call(c.String(flagSwapdAddress), "swap.GetPast", req, &resp); err != nil {
		return err
	}
	return printJSON(resp.Swap)
}

func runPastIDs(c *cli.Context) error {
	var resp struct {
		IDs []uuid.UUID `json:"ids"`
	}
	if err := call(c.String(flagSwapdAddress), "swap.GetPastIDs", struct{}{}, &resp); err != nil {
		return err
	}
	return printJSON(resp.IDs)
}

func runShutdown(c *cli.Context) error {
	var resp struct{}
	if err := call(c.String(flagSwapdAddress), "daemon.Shutdown", struct{}{}, &resp); err != nil {
		return err
	}
	fmt.Println("shutdown requested")
	return nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := cliApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
