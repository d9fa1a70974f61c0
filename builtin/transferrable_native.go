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

func newTransferrableImpl() *runtime.Implementation {
	return runtime.NewImplementation(ImplTransferrable, slotOwner).
		WithActivate(ownableActivate).
		AddMethods(ownershipBaseMethods()...).
		AddMethods(transferrableMethods()...).
		AddMethods(rolesMethods()...).
		AddMethods(sweepMethod()).
		DeclareInterface(methodOwner, methodPending, methodInitialize, methodTransferOwn,
			methodInitiateTransfer, methodValidateTransfer, methodCancelTransfer).
		DeclareInterface(methodGrantRoles, methodRevokeRoles, methodRenounceRoles,
			methodRolesOf, methodHasAnyRole, methodHasAllRoles)
}

// transferrableMethods is the three-step protocol. transferOwnership doubles
// as the completion step once the deployment window is spent.
func transferrableMethods() []*runtime.NativeMethod {
	return []*runtime.NativeMethod{
		{
			ABI: methodInitiateTransfer,
			Run: func(env *xenv.Environment) []any {
				var target common.Address
				env.ParseArgs(&target)
				t := ownable.NewTransferrable(env.To(), env.State())
				env.Check(t.InitiateTransfer(env.Caller(), bao.Address(target), env.BlockTime()))
				env.Log(eventTransferInitiated, []bao.Bytes32{addrTopic(bao.Address(target))})
				return nil
			},
		},
		{
			ABI: methodValidateTransfer,
			Run: func(env *xenv.Environment) []any {
				t := ownable.NewTransferrable(env.To(), env.State())
				env.Check(t.ValidateTransfer(env.Caller(), env.BlockTime()))
				env.Log(eventTransferValidated, []bao.Bytes32{addrTopic(env.Caller())})
				return nil
			},
		},
		{
			ABI: methodCancelTransfer,
			Run: func(env *xenv.Environment) []any {
				t := ownable.NewTransferrable(env.To(), env.State())
				p, err := t.Pending()
				env.Check(err)
				env.Check(t.CancelTransfer(env.Caller()))
				env.Log(eventTransferCanceled, []bao.Bytes32{addrTopic(p.Target)})
				return nil
			},
		},
		{
			ABI: methodTransferOwn,
			Run: func(env *xenv.Environment) []any {
				var target common.Address
				env.ParseArgs(&target)
				t := ownable.NewTransferrable(env.To(), env.State())
				prev, err := t.Owner()
				env.Check(err)
				env.Check(t.TransferOwnership(env.Caller(), bao.Address(target), env.BlockTime()))
				env.Log(eventOwnershipTransferred,
					[]bao.Bytes32{addrTopic(prev), addrTopic(bao.Address(target))})
				return nil
			},
		},
	}
}
