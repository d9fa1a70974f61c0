// Copyright (c) 2026 The Bao Ownership developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/inconshreveable/log15"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/baofinance/ownership/log"
	"github.com/baofinance/ownership/lvldb"
	"github.com/baofinance/ownership/metrics"
)

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ownership")
}

func initLogger(ctx *cli.Context) {
	logLevel := ctx.Int(verbosityFlag.Name)
	log15.Root().SetHandler(log15.LvlFilterHandler(log15.Lvl(logLevel), log15.StderrHandler))
	log.SetVerbosity(logLevel)
}

func openMainDB(ctx *cli.Context) (*lvldb.LevelDB, error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return nil, cli.NewExitError("data-dir is not set", 1)
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, err
	}
	return lvldb.New(filepath.Join(dataDir, "state.db"), lvldb.Options{
		CacheSize:              128,
		OpenFilesCacheCapacity: 512,
	})
}

// startMetricsServer serves the prometheus endpoint when an address is
// given.
func startMetricsServer(ctx *cli.Context) {
	addr := ctx.String(metricsAddrFlag.Name)
	if addr == "" {
		return
	}
	metrics.InitializePrometheusMetrics()
	go func() {
		if err := http.ListenAndServe(addr, metrics.HTTPHandler()); err != nil {
			clog.Warn("metrics server stopped", "err", err)
		}
	}()
	clog.Info("metrics served", "addr", addr)
}
