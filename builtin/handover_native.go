// Copyright (c) 2026 The Bao Ownership developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/baofinance/ownership/bao"
	"github.com/baofinance/ownership/builtin/ownable"
	"github.com/baofinance/ownership/runtime"
	"github.com/baofinance/ownership/xenv"
)

func newHandoverImpl() *runtime.Implementation {
	return runtime.NewImplementation(ImplHandover, slotOwner).
		WithActivate(ownableActivate).
		AddMethods(ownershipBaseMethods()...).
		AddMethods(oneShotTransferMethod()).
		AddMethods(handoverMethods()...).
		AddMethods(rolesMethods()...).
		AddMethods(sweepMethod()).
		DeclareInterface(methodOwner, methodPending, methodInitialize, methodTransferOwn,
			methodInitiateHandover, methodCancelHandover, methodAcceptHandover, methodCompleteHandover).
		DeclareInterface(methodGrantRoles, methodRevokeRoles, methodRenounceRoles,
			methodRolesOf, methodHasAnyRole, methodHasAllRoles)
}

// handoverMethods is the two-step protocol: initiate, accept, complete,
// with cancel open to either party.
func handoverMethods() []*runtime.NativeMethod {
	return []*runtime.NativeMethod{
		{
			ABI: methodInitiateHandover,
			Run: func(env *xenv.Environment) []any {
				var target common.Address
				env.ParseArgs(&target)
				h := ownable.NewHandover(env.To(), env.State(), 0)
				env.Check(h.InitiateHandover(env.Caller(), bao.Address(target), env.BlockTime()))
				env.Log(eventHandoverInitiated, []bao.Bytes32{addrTopic(bao.Address(target))})
				return nil
			},
		},
		{
			ABI: methodCancelHandover,
			Run: func(env *xenv.Environment) []any {
				h := ownable.NewHandover(env.To(), env.State(), 0)
				p, err := h.Pending()
				env.Check(err)
				env.Check(h.CancelHandover(env.Caller()))
				env.Log(eventHandoverCanceled, []bao.Bytes32{addrTopic(p.Target)})
				return nil
			},
		},
		{
			ABI: methodAcceptHandover,
			Run: func(env *xenv.Environment) []any {
				h := ownable.NewHandover(env.To(), env.State(), 0)
				env.Check(h.AcceptHandover(env.Caller(), env.BlockTime()))
				env.Log(eventHandoverAccepted, []bao.Bytes32{addrTopic(env.Caller())})
				return nil
			},
		},
		{
			ABI: methodCompleteHandover,
			Run: func(env *xenv.Environment) []any {
				var target common.Address
				env.ParseArgs(&target)
				h := ownable.NewHandover(env.To(), env.State(), 0)
				prev, err := h.Owner()
				env.Check(err)
				env.Check(h.CompleteHandover(env.Caller(), bao.Address(target), env.BlockTime()))
				env.Log(eventOwnershipTransferred,
					[]bao.Bytes32{addrTopic(prev), addrTopic(bao.Address(target))})
				return nil
			},
		},
	}
}
