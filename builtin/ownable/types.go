// Copyright (c) 2026 The Bao Ownership developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ownable

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/baofinance/ownership/bao"
	"github.com/baofinance/ownership/state"
)

var (
	_ state.StorageEncoder = (*Pending)(nil)
	_ state.StorageDecoder = (*Pending)(nil)
)

// Pending is the singleton in-flight transition record of a contract.
// Initiating a new transition overwrites it; there is never more than one.
type Pending struct {
	Target     bao.Address
	CreatedAt  uint64
	PauseUntil uint64
	ExpiresAt  uint64
	Validated  bool

	// Deploy marks the record created by Initialize: the one permitted
	// unprotected transfer. Multi-step records never have it set.
	Deploy bool

	// Free marks a deploy record whose target is unconstrained, granted
	// when the deployer initialized ownership to itself.
	Free bool
}

// IsEmpty returns whether the record can be treated as absent.
func (p *Pending) IsEmpty() bool {
	return p.ExpiresAt == 0
}

// Encode implements state.StorageEncoder.
func (p *Pending) Encode() ([]byte, error) {
	if p.IsEmpty() {
		return nil, nil
	}
	return rlp.EncodeToBytes(p)
}

// Decode implements state.StorageDecoder.
func (p *Pending) Decode(data []byte) error {
	if len(data) == 0 {
		*p = Pending{}
		return nil
	}
	return rlp.DecodeBytes(data, p)
}
