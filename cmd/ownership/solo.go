// Copyright (c) 2026 The Bao Ownership developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/baofinance/ownership/bao"
	"github.com/baofinance/ownership/builtin"
	"github.com/baofinance/ownership/genesis"
	"github.com/baofinance/ownership/lvldb"
	"github.com/baofinance/ownership/runtime"
	"github.com/baofinance/ownership/state"
	"github.com/baofinance/ownership/xenv"
)

// soloStep is one scripted call. Data is the full ABI-encoded call input.
// A non-empty ExpectErr asserts the call reverts with a matching error.
type soloStep struct {
	Caller      bao.Address   `json:"caller"`
	To          bao.Address   `json:"to"`
	Data        hexutil.Bytes `json:"data"`
	AdvanceTime uint64        `json:"advanceTime,omitempty"`
	ExpectErr   string        `json:"expectErr,omitempty"`
}

type soloScript struct {
	Genesis genesis.Config `json:"genesis"`
	Steps   []soloStep     `json:"steps"`
}

func soloAction(ctx *cli.Context) error {
	initLogger(ctx)
	startMetricsServer(ctx)

	if ctx.NArg() < 1 {
		return cli.NewExitError("missing script file", 1)
	}
	raw, err := os.ReadFile(ctx.Args().First())
	if err != nil {
		return err
	}
	var script soloScript
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&script); err != nil {
		return errors.Wrap(err, "parse script")
	}

	persist := ctx.Bool(persistFlag.Name)
	var db *lvldb.LevelDB
	if persist {
		db, err = openMainDB(ctx)
	} else {
		db, err = lvldb.NewMem()
	}
	if err != nil {
		return err
	}
	defer db.Close()

	reg := builtin.NewRegistry()
	st := state.New(db)
	if err := genesis.Build(&script.Genesis, reg, st); err != nil {
		return err
	}

	blockCtx := &xenv.BlockContext{Number: 1, Time: script.Genesis.LaunchTime}
	rt := runtime.New(reg, st, blockCtx)

	for i, step := range script.Steps {
		blockCtx.Time += step.AdvanceTime
		blockCtx.Number++

		out, err := rt.Call(step.Caller, step.To, step.Data)
		if err != nil {
			if step.ExpectErr != "" && strings.Contains(err.Error(), step.ExpectErr) {
				clog.Info("step reverted as scripted", "step", i, "err", err)
				continue
			}
			return errors.Wrapf(err, "step %d", i)
		}
		if step.ExpectErr != "" {
			return errors.Errorf("step %d succeeded, want error %q", i, step.ExpectErr)
		}
		clog.Info("step applied", "step", i, "caller", step.Caller, "to", step.To, "events", len(out.Events))
		for _, ev := range out.Events {
			clog.Debug("event", "address", ev.Address, "topic0", ev.Topics[0])
		}
	}

	if persist {
		if err := st.Commit(); err != nil {
			return err
		}
	}
	clog.Info("scenario complete", "steps", len(script.Steps))
	return nil
}
