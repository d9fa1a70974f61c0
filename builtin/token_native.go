// Copyright (c) 2026 The Bao Ownership developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/baofinance/ownership/bao"
	"github.com/baofinance/ownership/builtin/token"
	"github.com/baofinance/ownership/runtime"
	"github.com/baofinance/ownership/xenv"
)

func newTokenImpl() *runtime.Implementation {
	return runtime.NewImplementation(ImplToken, slotOwner).
		WithActivate(tokenActivate).
		AddMethods(tokenMethods()...).
		DeclareInterface(methodBalanceOf, methodTotalSupply, methodTransfer)
}

// tokenActivate mints the initial supply to a holder given as RLP-encoded
// {Holder, Supply} constructor params. The deployer becomes the owner.
func tokenActivate(env *xenv.Environment, params []byte) error {
	if err := env.State().SetOwner(env.To(), env.Caller()); err != nil {
		return err
	}
	if len(params) == 0 {
		return nil
	}
	var args struct {
		Holder bao.Address
		Supply *big.Int
	}
	if err := rlp.DecodeBytes(params, &args); err != nil {
		return err
	}
	if err := token.New(env.To(), env.State()).Mint(args.Holder, args.Supply); err != nil {
		return err
	}
	env.Log(eventTransfer,
		[]bao.Bytes32{addrTopic(bao.Address{}), addrTopic(args.Holder)}, args.Supply)
	return nil
}

func tokenMethods() []*runtime.NativeMethod {
	return []*runtime.NativeMethod{
		{
			ABI: methodBalanceOf,
			Run: func(env *xenv.Environment) []any {
				var holder common.Address
				env.ParseArgs(&holder)
				bal, err := token.New(env.To(), env.State()).BalanceOf(bao.Address(holder))
				env.Check(err)
				return []any{bal}
			},
		},
		{
			ABI: methodTotalSupply,
			Run: func(env *xenv.Environment) []any {
				supply, err := token.New(env.To(), env.State()).TotalSupply()
				env.Check(err)
				return []any{supply}
			},
		},
		{
			ABI: methodTransfer,
			Run: func(env *xenv.Environment) []any {
				var args struct {
					Arg0 common.Address
					Arg1 *big.Int
				}
				env.ParseArgs(&args)
				tok := token.New(env.To(), env.State())
				env.Check(tok.Transfer(env.Caller(), bao.Address(args.Arg0), args.Arg1))
				env.Log(eventTransfer,
					[]bao.Bytes32{addrTopic(env.Caller()), addrTopic(bao.Address(args.Arg0))}, args.Arg1)
				return []any{true}
			},
		},
	}
}
