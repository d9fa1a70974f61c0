// Copyright (c) 2026 The Bao Ownership developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package roles implements the per-account role bitmask store.
//
// A role is a bit position; an account's roles are one 256-bit mask. There
// is no per-role admin hierarchy: who may grant or revoke is decided by the
// contract composing this store, not here.
package roles

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/baofinance/ownership/bao"
	"github.com/baofinance/ownership/state"
)

// Roles grants/revokes and queries role masks of a contract.
type Roles struct {
	addr  bao.Address
	state *state.State
}

// New creates a role store bound to the given contract address.
func New(addr bao.Address, st *state.State) *Roles {
	return &Roles{addr, st}
}

func maskKey(account bao.Address) bao.Bytes32 {
	return bao.Blake2b([]byte("roles"), account.Bytes())
}

// RolesOf returns the role mask held by account.
func (r *Roles) RolesOf(account bao.Address) (*big.Int, error) {
	mask := new(big.Int)
	err := r.state.DecodeStorage(r.addr, maskKey(account), func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, mask)
	})
	if err != nil {
		return nil, err
	}
	return mask, nil
}

func (r *Roles) setRoles(account bao.Address, mask *big.Int) error {
	return r.state.EncodeStorage(r.addr, maskKey(account), func() ([]byte, error) {
		if mask.Sign() == 0 {
			return nil, nil
		}
		return rlp.EncodeToBytes(mask)
	})
}

// Grant ORs mask into the account's roles. Granting an already-held bit is
// a no-op on that bit. Returns the resulting mask.
func (r *Roles) Grant(account bao.Address, mask *big.Int) (*big.Int, error) {
	held, err := r.RolesOf(account)
	if err != nil {
		return nil, err
	}
	held.Or(held, mask)
	if err := r.setRoles(account, held); err != nil {
		return nil, err
	}
	return held, nil
}

// Revoke ANDs-NOT mask out of the account's roles. Returns the resulting
// mask.
func (r *Roles) Revoke(account bao.Address, mask *big.Int) (*big.Int, error) {
	held, err := r.RolesOf(account)
	if err != nil {
		return nil, err
	}
	held.AndNot(held, mask)
	if err := r.setRoles(account, held); err != nil {
		return nil, err
	}
	return held, nil
}

// HasAny returns true if the account holds at least one bit of mask.
func (r *Roles) HasAny(account bao.Address, mask *big.Int) (bool, error) {
	held, err := r.RolesOf(account)
	if err != nil {
		return false, err
	}
	return new(big.Int).And(held, mask).Sign() != 0, nil
}

// HasAll returns true if the account holds every bit of mask.
func (r *Roles) HasAll(account bao.Address, mask *big.Int) (bool, error) {
	held, err := r.RolesOf(account)
	if err != nil {
		return false, err
	}
	return new(big.Int).And(held, mask).Cmp(mask) == 0, nil
}
