// Copyright (c) 2026 The Bao Ownership developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis builds the initial contract state from a declarative
// config.
package genesis

import (
	"encoding/json"
	"io"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"

	"github.com/baofinance/ownership/bao"
	"github.com/baofinance/ownership/runtime"
	"github.com/baofinance/ownership/state"
	"github.com/baofinance/ownership/xenv"
)

// Contract declares one contract to deploy at genesis. Params is the
// implementation's constructor input, hex-encoded in JSON.
type Contract struct {
	Address        bao.Address   `json:"address"`
	Implementation string        `json:"implementation"`
	Deployer       bao.Address   `json:"deployer"`
	Params         hexutil.Bytes `json:"params,omitempty"`
}

// Config is the genesis declaration.
type Config struct {
	LaunchTime uint64     `json:"launchTime"`
	Contracts  []Contract `json:"contracts"`
}

// FromJSON reads a genesis config.
func FromJSON(r io.Reader) (*Config, error) {
	var cfg Config
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "parse genesis config")
	}
	for _, c := range cfg.Contracts {
		if c.Address.IsZero() {
			return nil, errors.New("genesis contract with zero address")
		}
		if c.Implementation == "" {
			return nil, errors.Errorf("genesis contract %v without implementation", c.Address)
		}
	}
	return &cfg, nil
}

// Build deploys every declared contract into st and commits. Deployment
// order follows declaration order, so later contracts may assume earlier
// ones exist.
func Build(cfg *Config, reg *runtime.Registry, st *state.State) error {
	rt := runtime.New(reg, st, &xenv.BlockContext{Number: 0, Time: cfg.LaunchTime})
	for _, c := range cfg.Contracts {
		if err := rt.Deploy(c.Deployer, c.Address, c.Implementation, c.Params); err != nil {
			return errors.Wrapf(err, "deploy genesis contract %v", c.Address)
		}
	}
	return st.Commit()
}
