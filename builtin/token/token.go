// Copyright (c) 2026 The Bao Ownership developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements a minimal balance ledger, enough to back the
// ownable sweep/rescue utility.
package token

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/baofinance/ownership/bao"
	"github.com/baofinance/ownership/state"
)

var (
	// ErrInsufficientBalance transfer amount exceeds the holder's balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrZeroAmount zero-amount token operations are rejected outright.
	ErrZeroAmount = errors.New("zero amount")
)

var supplyKey = bao.Blake2b([]byte("total-supply"))

func balanceKey(holder bao.Address) bao.Bytes32 {
	return bao.Blake2b([]byte("balance"), holder.Bytes())
}

// Token reads and writes the balance ledger of a token contract.
type Token struct {
	addr  bao.Address
	state *state.State
}

// New creates a Token bound to the given contract address.
func New(addr bao.Address, st *state.State) *Token {
	return &Token{addr, st}
}

func (t *Token) getAmount(key bao.Bytes32) (*big.Int, error) {
	v := new(big.Int)
	err := t.state.DecodeStorage(t.addr, key, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, v)
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (t *Token) setAmount(key bao.Bytes32, v *big.Int) error {
	return t.state.EncodeStorage(t.addr, key, func() ([]byte, error) {
		if v.Sign() == 0 {
			return nil, nil
		}
		return rlp.EncodeToBytes(v)
	})
}

// BalanceOf returns the balance of holder.
func (t *Token) BalanceOf(holder bao.Address) (*big.Int, error) {
	return t.getAmount(balanceKey(holder))
}

// TotalSupply returns total minted supply.
func (t *Token) TotalSupply() (*big.Int, error) {
	return t.getAmount(supplyKey)
}

// Mint credits amount to holder and grows total supply.
func (t *Token) Mint(holder bao.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return ErrZeroAmount
	}
	bal, err := t.BalanceOf(holder)
	if err != nil {
		return err
	}
	if err := t.setAmount(balanceKey(holder), new(big.Int).Add(bal, amount)); err != nil {
		return err
	}
	supply, err := t.TotalSupply()
	if err != nil {
		return err
	}
	return t.setAmount(supplyKey, new(big.Int).Add(supply, amount))
}

// Transfer moves amount from one holder to another.
func (t *Token) Transfer(from, to bao.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return ErrZeroAmount
	}
	fromBal, err := t.BalanceOf(from)
	if err != nil {
		return err
	}
	if fromBal.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	if err := t.setAmount(balanceKey(from), new(big.Int).Sub(fromBal, amount)); err != nil {
		return err
	}
	toBal, err := t.BalanceOf(to)
	if err != nil {
		return err
	}
	return t.setAmount(balanceKey(to), new(big.Int).Add(toBal, amount))
}
