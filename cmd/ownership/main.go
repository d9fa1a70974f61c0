// Copyright (c) 2026 The Bao Ownership developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	"github.com/inconshreveable/log15"
	cli "gopkg.in/urfave/cli.v1"
)

var (
	version   string
	gitCommit string
	gitTag    string

	clog = log15.New()
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "ownership",
		Usage:     "contract ownership & role state machine tool",
		Copyright: "2026 Bao Finance",
		Flags: []cli.Flag{
			verbosityFlag,
		},
		Commands: []cli.Command{
			{
				Name:      "init",
				Usage:     "initialize a state database from a genesis config",
				ArgsUsage: "",
				Flags: []cli.Flag{
					dataDirFlag,
					genesisFlag,
					verbosityFlag,
				},
				Action: initAction,
			},
			{
				Name:      "inspect",
				Usage:     "print the ownership state of a contract",
				ArgsUsage: "ADDRESS [ACCOUNT]",
				Flags: []cli.Flag{
					dataDirFlag,
					blockTimeFlag,
					verbosityFlag,
				},
				Action: inspectAction,
			},
			{
				Name:      "solo",
				Usage:     "apply a scripted call scenario to a fresh state",
				ArgsUsage: "SCRIPT",
				Flags: []cli.Flag{
					dataDirFlag,
					persistFlag,
					metricsAddrFlag,
					verbosityFlag,
				},
				Action: soloAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
