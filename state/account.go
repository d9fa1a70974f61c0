// Copyright (c) 2026 The Bao Ownership developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/baofinance/ownership/bao"
)

// Account is the per-contract bookkeeping record: the owner slot, the
// implementation slot (which logic the address currently dispatches to),
// and the one-way initialization latch.
type Account struct {
	Owner          bao.Address
	Implementation string
	Initialized    bool
}

// IsEmpty returns whether the account can be treated as empty.
func (a *Account) IsEmpty() bool {
	return a.Owner.IsZero() && a.Implementation == "" && !a.Initialized
}

func encodeAccount(a *Account) ([]byte, error) {
	if a.IsEmpty() {
		return nil, nil
	}
	return rlp.EncodeToBytes(a)
}

func decodeAccount(data []byte) (*Account, error) {
	var a Account
	if len(data) == 0 {
		return &a, nil
	}
	if err := rlp.DecodeBytes(data, &a); err != nil {
		return nil, err
	}
	return &a, nil
}
