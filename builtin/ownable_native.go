// Copyright (c) 2026 The Bao Ownership developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/baofinance/ownership/bao"
	"github.com/baofinance/ownership/builtin/ownable"
	"github.com/baofinance/ownership/builtin/roles"
	"github.com/baofinance/ownership/builtin/token"
	"github.com/baofinance/ownership/runtime"
	"github.com/baofinance/ownership/xenv"
)

func newOwnableImpl() *runtime.Implementation {
	return runtime.NewImplementation(ImplOwnable, slotOwner).
		WithActivate(ownableActivate).
		AddMethods(ownershipBaseMethods()...).
		AddMethods(oneShotTransferMethod()).
		AddMethods(rolesMethods()...).
		AddMethods(sweepMethod()).
		DeclareInterface(methodOwner, methodPending, methodInitialize, methodTransferOwn).
		DeclareInterface(methodGrantRoles, methodRevokeRoles, methodRenounceRoles,
			methodRolesOf, methodHasAnyRole, methodHasAllRoles)
}

// ownableActivate optionally runs initialize at deployment, taking the
// RLP-encoded final owner as constructor params. Empty params defer to an
// explicit initialize call.
func ownableActivate(env *xenv.Environment, params []byte) error {
	if len(params) == 0 {
		return nil
	}
	var finalOwner bao.Address
	if err := rlp.DecodeBytes(params, &finalOwner); err != nil {
		return err
	}
	if err := ownable.New(env.To(), env.State()).Initialize(env.Caller(), finalOwner, env.BlockTime()); err != nil {
		return err
	}
	env.Log(eventOwnershipTransferred,
		[]bao.Bytes32{addrTopic(bao.Address{}), addrTopic(env.Caller())})
	return nil
}

// ownershipBaseMethods is the surface every ownable variant shares: the
// owner and pending views plus initialize.
func ownershipBaseMethods() []*runtime.NativeMethod {
	return []*runtime.NativeMethod{
		{
			ABI: methodOwner,
			Run: func(env *xenv.Environment) []any {
				owner, err := env.State().GetOwner(env.To())
				env.Check(err)
				return []any{common.Address(owner)}
			},
		},
		{
			ABI: methodPending,
			Run: func(env *xenv.Environment) []any {
				p, err := ownable.New(env.To(), env.State()).Pending()
				env.Check(err)
				return []any{common.Address(p.Target), p.ExpiresAt, p.Validated, p.PauseUntil}
			},
		},
		{
			ABI: methodInitialize,
			Run: func(env *xenv.Environment) []any {
				var finalOwner common.Address
				env.ParseArgs(&finalOwner)
				o := ownable.New(env.To(), env.State())
				env.Check(o.Initialize(env.Caller(), bao.Address(finalOwner), env.BlockTime()))
				env.Log(eventOwnershipTransferred,
					[]bao.Bytes32{addrTopic(bao.Address{}), addrTopic(env.Caller())})
				return nil
			},
		},
	}
}

// oneShotTransferMethod is transferOwnership for the variants whose only
// unprotected transfer is the deployment one.
func oneShotTransferMethod() *runtime.NativeMethod {
	return &runtime.NativeMethod{
		ABI: methodTransferOwn,
		Run: func(env *xenv.Environment) []any {
			var confirm common.Address
			env.ParseArgs(&confirm)
			o := ownable.New(env.To(), env.State())
			prev, err := o.Owner()
			env.Check(err)
			env.Check(o.TransferOwnership(env.Caller(), bao.Address(confirm), env.BlockTime()))
			env.Log(eventOwnershipTransferred,
				[]bao.Bytes32{addrTopic(prev), addrTopic(bao.Address(confirm))})
			return nil
		},
	}
}

func rolesMethods() []*runtime.NativeMethod {
	return []*runtime.NativeMethod{
		{
			ABI: methodGrantRoles,
			Run: func(env *xenv.Environment) []any {
				var args struct {
					Arg0 common.Address
					Arg1 *big.Int
				}
				env.ParseArgs(&args)
				env.Check(requireOwner(env))
				mask, err := roles.New(env.To(), env.State()).Grant(bao.Address(args.Arg0), args.Arg1)
				env.Check(err)
				env.Log(eventRolesUpdated, []bao.Bytes32{addrTopic(bao.Address(args.Arg0))}, mask)
				return nil
			},
		},
		{
			ABI: methodRevokeRoles,
			Run: func(env *xenv.Environment) []any {
				var args struct {
					Arg0 common.Address
					Arg1 *big.Int
				}
				env.ParseArgs(&args)
				env.Check(requireOwner(env))
				mask, err := roles.New(env.To(), env.State()).Revoke(bao.Address(args.Arg0), args.Arg1)
				env.Check(err)
				env.Log(eventRolesUpdated, []bao.Bytes32{addrTopic(bao.Address(args.Arg0))}, mask)
				return nil
			},
		},
		{
			ABI: methodRenounceRoles,
			Run: func(env *xenv.Environment) []any {
				var mask *big.Int
				env.ParseArgs(&mask)
				held, err := roles.New(env.To(), env.State()).Revoke(env.Caller(), mask)
				env.Check(err)
				env.Log(eventRolesUpdated, []bao.Bytes32{addrTopic(env.Caller())}, held)
				return nil
			},
		},
		{
			ABI: methodRolesOf,
			Run: func(env *xenv.Environment) []any {
				var account common.Address
				env.ParseArgs(&account)
				mask, err := roles.New(env.To(), env.State()).RolesOf(bao.Address(account))
				env.Check(err)
				return []any{mask}
			},
		},
		{
			ABI: methodHasAnyRole,
			Run: func(env *xenv.Environment) []any {
				var args struct {
					Arg0 common.Address
					Arg1 *big.Int
				}
				env.ParseArgs(&args)
				ok, err := roles.New(env.To(), env.State()).HasAny(bao.Address(args.Arg0), args.Arg1)
				env.Check(err)
				return []any{ok}
			},
		},
		{
			ABI: methodHasAllRoles,
			Run: func(env *xenv.Environment) []any {
				var args struct {
					Arg0 common.Address
					Arg1 *big.Int
				}
				env.ParseArgs(&args)
				ok, err := roles.New(env.To(), env.State()).HasAll(bao.Address(args.Arg0), args.Arg1)
				env.Check(err)
				return []any{ok}
			},
		},
	}
}

// sweepMethod rescues the contract's full balance of a stray token. The
// owner may always sweep; accounts holding RoleSweeper may too.
func sweepMethod() *runtime.NativeMethod {
	return &runtime.NativeMethod{
		ABI: methodSweep,
		Run: func(env *xenv.Environment) []any {
			var args struct {
				Arg0 common.Address // token contract
				Arg1 common.Address // receiver
			}
			env.ParseArgs(&args)
			env.Check(requireOwnerOrRoles(env, RoleSweeper))
			tok := token.New(bao.Address(args.Arg0), env.State())
			bal, err := tok.BalanceOf(env.To())
			env.Check(err)
			if bal.Sign() == 0 {
				env.Revert(token.ErrZeroAmount)
			}
			env.Check(tok.Transfer(env.To(), bao.Address(args.Arg1), bal))
			env.Log(eventSwept,
				[]bao.Bytes32{addrTopic(bao.Address(args.Arg0)), addrTopic(bao.Address(args.Arg1))}, bal)
			return nil
		},
	}
}
