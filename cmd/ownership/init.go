// Copyright (c) 2026 The Bao Ownership developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/baofinance/ownership/builtin"
	"github.com/baofinance/ownership/genesis"
	"github.com/baofinance/ownership/state"
)

func initAction(ctx *cli.Context) error {
	initLogger(ctx)

	path := ctx.String(genesisFlag.Name)
	if path == "" {
		return cli.NewExitError("genesis is not set", 1)
	}
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	cfg, err := genesis.FromJSON(file)
	if err != nil {
		return err
	}

	db, err := openMainDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := genesis.Build(cfg, builtin.NewRegistry(), state.New(db)); err != nil {
		return err
	}
	clog.Info("genesis state built",
		"contracts", len(cfg.Contracts), "launchTime", cfg.LaunchTime)
	return nil
}
