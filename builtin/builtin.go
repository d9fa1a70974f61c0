// Copyright (c) 2026 The Bao Ownership developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package builtin assembles the native contract implementations and their
// method tables.
package builtin

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/baofinance/ownership/bao"
	"github.com/baofinance/ownership/builtin/fixed"
	"github.com/baofinance/ownership/builtin/ownable"
	"github.com/baofinance/ownership/builtin/roles"
	"github.com/baofinance/ownership/runtime"
	"github.com/baofinance/ownership/state"
	"github.com/baofinance/ownership/xenv"
)

// Registered implementation names.
const (
	ImplOwnable       = "ownable"
	ImplHandover      = "handover"
	ImplTransferrable = "transferrable"
	ImplFixed         = "fixed"
	ImplStem          = "stem"
	ImplToken         = "token"
)

// ErrStemmed every selector outside the stem's minimal ownership surface
// fails with this while the stem implementation is active.
var ErrStemmed = errors.New("stemmed")

// RoleSweeper authorizes sweeping stray tokens alongside the owner.
var RoleSweeper = big.NewInt(1)

// NewRegistry assembles a registry with every builtin implementation.
func NewRegistry() *runtime.Registry {
	reg := runtime.NewRegistry()
	reg.Register(newOwnableImpl())
	reg.Register(newHandoverImpl())
	reg.Register(newTransferrableImpl())
	reg.Register(newFixedImpl())
	reg.Register(newStemImpl())
	reg.Register(newTokenImpl())
	return reg
}

// slotOwner resolves the owner from the owner slot.
func slotOwner(st *state.State, addr bao.Address, _ uint64) (bao.Address, error) {
	return st.GetOwner(addr)
}

// timeOwner resolves the owner from the delayed ownership schedule.
func timeOwner(st *state.State, addr bao.Address, blockTime uint64) (bao.Address, error) {
	return fixed.New(addr, st).Owner(blockTime)
}

func addrTopic(a bao.Address) bao.Bytes32 {
	return bao.BytesToBytes32(a.Bytes())
}

func requireOwner(env *xenv.Environment) error {
	owner, err := env.State().GetOwner(env.To())
	if err != nil {
		return err
	}
	if env.Caller() != owner {
		return ownable.ErrUnauthorized
	}
	return nil
}

func requireOwnerOrRoles(env *xenv.Environment, mask *big.Int) error {
	owner, err := env.State().GetOwner(env.To())
	if err != nil {
		return err
	}
	if env.Caller() == owner {
		return nil
	}
	ok, err := roles.New(env.To(), env.State()).HasAny(env.Caller(), mask)
	if err != nil {
		return err
	}
	if !ok {
		return ownable.ErrUnauthorized
	}
	return nil
}
