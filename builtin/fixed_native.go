// Copyright (c) 2026 The Bao Ownership developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/baofinance/ownership/bao"
	"github.com/baofinance/ownership/builtin/fixed"
	"github.com/baofinance/ownership/runtime"
	"github.com/baofinance/ownership/xenv"
)

func newFixedImpl() *runtime.Implementation {
	return runtime.NewImplementation(ImplFixed, timeOwner).
		WithActivate(fixedActivate).
		AddMethods(scheduledOwnerMethod()).
		DeclareInterface(methodOwner)
}

// fixedActivate writes the immutable ownership schedule from RLP-encoded
// constructor params.
func fixedActivate(env *xenv.Environment, params []byte) error {
	var args struct {
		Before bao.Address
		After  bao.Address
		FlipAt uint64
	}
	if err := rlp.DecodeBytes(params, &args); err != nil {
		return err
	}
	return fixed.New(env.To(), env.State()).Init(args.Before, args.After, args.FlipAt)
}

// scheduledOwnerMethod answers owner() from the delayed ownership schedule
// at current block time.
func scheduledOwnerMethod() *runtime.NativeMethod {
	return &runtime.NativeMethod{
		ABI: methodOwner,
		Run: func(env *xenv.Environment) []any {
			owner, err := fixed.New(env.To(), env.State()).Owner(env.BlockTime())
			env.Check(err)
			return []any{common.Address(owner)}
		},
	}
}
