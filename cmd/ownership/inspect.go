// Copyright (c) 2026 The Bao Ownership developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/baofinance/ownership/abi"
	"github.com/baofinance/ownership/bao"
	"github.com/baofinance/ownership/builtin"
	"github.com/baofinance/ownership/runtime"
	"github.com/baofinance/ownership/state"
	"github.com/baofinance/ownership/xenv"
)

func inspectAction(ctx *cli.Context) error {
	initLogger(ctx)

	if ctx.NArg() < 1 {
		return cli.NewExitError("missing contract address", 1)
	}
	addr, err := bao.ParseAddress(ctx.Args().Get(0))
	if err != nil {
		return err
	}

	db, err := openMainDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	st := state.New(db)
	blockTime := ctx.Uint64(blockTimeFlag.Name)
	if blockTime == 0 {
		blockTime = uint64(time.Now().Unix())
	}
	rt := runtime.New(builtin.NewRegistry(), st, &xenv.BlockContext{Time: blockTime})

	implName, err := st.GetImplementation(addr)
	if err != nil {
		return err
	}
	if implName == "" {
		return cli.NewExitError("contract is not deployed", 1)
	}
	fmt.Printf("Address:        %v\n", addr)
	fmt.Printf("Implementation: %s\n", implName)

	var owner common.Address
	if err := view(rt, addr, builtin.MethodOwner, &owner); err != nil {
		return err
	}
	fmt.Printf("Owner:          %v\n", bao.Address(owner))

	// not every implementation answers pending
	var pending struct {
		Arg0 common.Address
		Arg1 uint64
		Arg2 bool
		Arg3 uint64
	}
	if err := view(rt, addr, builtin.MethodPending, &pending); err == nil {
		if pending.Arg1 == 0 {
			fmt.Println("Pending:        none")
		} else {
			fmt.Printf("Pending:        %v (expires %s, validated %v, paused until %s)\n",
				bao.Address(pending.Arg0),
				time.Unix(int64(pending.Arg1), 0).UTC().Format(time.RFC3339),
				pending.Arg2,
				time.Unix(int64(pending.Arg3), 0).UTC().Format(time.RFC3339))
		}
	}

	if ctx.NArg() > 1 {
		account, err := bao.ParseAddress(ctx.Args().Get(1))
		if err != nil {
			return err
		}
		mask := new(big.Int)
		if err := view(rt, addr, builtin.MethodRolesOf, &mask, common.Address(account)); err != nil {
			return err
		}
		fmt.Printf("Roles[%v]: %#x\n", account, mask)
	}
	return nil
}

// view executes a read-only call and decodes the single output.
func view(rt *runtime.Runtime, to bao.Address, m *abi.Method, out any, args ...any) error {
	input, err := m.EncodeInput(args...)
	if err != nil {
		return err
	}
	o, err := rt.Call(bao.Address{}, to, input)
	if err != nil {
		return err
	}
	return m.DecodeOutput(o.Data, out)
}
