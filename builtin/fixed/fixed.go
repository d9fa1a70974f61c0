// Copyright (c) 2026 The Bao Ownership developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package fixed implements time-delayed immutable ownership: the owner is
// one address until a preset timestamp and another after it, with no
// transaction required for the flip.
package fixed

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/baofinance/ownership/bao"
	"github.com/baofinance/ownership/state"
)

// ErrZeroAfterOwner construction with a zero after-owner is rejected:
// the flip must never strand the contract.
var ErrZeroAfterOwner = errors.New("zero after owner")

var scheduleKey = bao.Blake2b([]byte("fixed-owner"))

var (
	_ state.StorageEncoder = (*Schedule)(nil)
	_ state.StorageDecoder = (*Schedule)(nil)
)

// Schedule is the immutable ownership schedule, written once at
// construction.
type Schedule struct {
	Before bao.Address
	After  bao.Address
	FlipAt uint64
}

// IsEmpty returns whether the schedule is absent.
func (s *Schedule) IsEmpty() bool {
	return s.After.IsZero()
}

// Encode implements state.StorageEncoder.
func (s *Schedule) Encode() ([]byte, error) {
	if s.IsEmpty() {
		return nil, nil
	}
	return rlp.EncodeToBytes(s)
}

// Decode implements state.StorageDecoder.
func (s *Schedule) Decode(data []byte) error {
	if len(data) == 0 {
		*s = Schedule{}
		return nil
	}
	return rlp.DecodeBytes(data, s)
}

// Fixed reads and writes the delayed ownership schedule of a contract.
type Fixed struct {
	addr  bao.Address
	state *state.State
}

// New creates a Fixed bound to the given contract address.
func New(addr bao.Address, st *state.State) *Fixed {
	return &Fixed{addr, st}
}

// Init writes the schedule. after must be non-zero.
func (f *Fixed) Init(before, after bao.Address, flipAt uint64) error {
	if after.IsZero() {
		return ErrZeroAfterOwner
	}
	return f.state.SetStructuredStorage(f.addr, scheduleKey, &Schedule{
		Before: before,
		After:  after,
		FlipAt: flipAt,
	})
}

// Schedule returns the stored schedule, empty if never initialized.
func (f *Fixed) Schedule() (*Schedule, error) {
	var s Schedule
	if err := f.state.GetStructuredStorage(f.addr, scheduleKey, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Owner returns the owner at the given block time. The flip is a pure
// read: no transaction moves it.
func (f *Fixed) Owner(now uint64) (bao.Address, error) {
	s, err := f.Schedule()
	if err != nil {
		return bao.Address{}, err
	}
	if s.IsEmpty() {
		return bao.Address{}, nil
	}
	if now >= s.FlipAt {
		return s.After, nil
	}
	return s.Before, nil
}
