// Copyright (c) 2026 The Bao Ownership developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/baofinance/ownership/bao"
)

// StorageEncoder defines the interface of storage value encoding.
type StorageEncoder interface {
	// Encode returns the encoded value.
	// The empty value must encode to nil to clear the slot.
	Encode() ([]byte, error)
}

// StorageDecoder defines the interface of storage value decoding.
type StorageDecoder interface {
	// Decode decodes the value from data.
	// Zero-length data denotes an empty slot.
	Decode([]byte) error
}

var (
	_ StorageEncoder = (*stgBytes32)(nil)
	_ StorageDecoder = (*stgBytes32)(nil)
	_ StorageEncoder = (*stgAddress)(nil)
	_ StorageDecoder = (*stgAddress)(nil)
	_ StorageEncoder = (*stgUint64)(nil)
	_ StorageDecoder = (*stgUint64)(nil)
)

type stgBytes32 bao.Bytes32

func (s *stgBytes32) Encode() ([]byte, error) {
	if (*bao.Bytes32)(s).IsZero() {
		return nil, nil
	}
	trimmed, _ := rlp.EncodeToBytes(bytes.TrimLeft(s[:], "\x00"))
	return trimmed, nil
}

func (s *stgBytes32) Decode(data []byte) error {
	if len(data) == 0 {
		*s = stgBytes32{}
		return nil
	}
	_, content, _, err := rlp.Split(data)
	if err != nil {
		return err
	}
	*s = stgBytes32(bao.BytesToBytes32(content))
	return nil
}

type stgAddress bao.Address

func (s *stgAddress) Encode() ([]byte, error) {
	if (*bao.Address)(s).IsZero() {
		return nil, nil
	}
	trimmed, _ := rlp.EncodeToBytes(bytes.TrimLeft(s[:], "\x00"))
	return trimmed, nil
}

func (s *stgAddress) Decode(data []byte) error {
	if len(data) == 0 {
		*s = stgAddress{}
		return nil
	}
	_, content, _, err := rlp.Split(data)
	if err != nil {
		return err
	}
	*s = stgAddress(bao.BytesToAddress(content))
	return nil
}

type stgUint64 uint64

func (s *stgUint64) Encode() ([]byte, error) {
	if *s == 0 {
		return nil, nil
	}
	return rlp.EncodeToBytes(uint64(*s))
}

func (s *stgUint64) Decode(data []byte) error {
	if len(data) == 0 {
		*s = 0
		return nil
	}
	return rlp.DecodeBytes(data, (*uint64)(s))
}
