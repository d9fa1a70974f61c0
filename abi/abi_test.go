// Copyright (c) 2026 The Bao Ownership developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package abi_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"github.com/baofinance/ownership/abi"
)

func TestMethodSelector(t *testing.T) {
	// well-known selectors
	owner := abi.MustNewMethod("owner", "", "address")
	assert.Equal(t, "0x8da5cb5b", owner.ID().String())
	assert.Equal(t, "owner()", owner.Sig())

	transfer := abi.MustNewMethod("transferOwnership", "address", "")
	assert.Equal(t, "0xf2fde38b", transfer.ID().String())
}

func TestMethodCodec(t *testing.T) {
	transfer := abi.MustNewMethod("transferOwnership", "address", "")

	target := common.BytesToAddress([]byte("target"))
	input, err := transfer.EncodeInput(target)
	assert.Nil(t, err)

	id, err := abi.ExtractMethodID(input)
	assert.Nil(t, err)
	assert.Equal(t, transfer.ID(), id)

	var decoded common.Address
	assert.Nil(t, transfer.DecodeInput(input, &decoded))
	assert.Equal(t, target, decoded)
}

func TestEvent(t *testing.T) {
	ev := abi.MustNewEvent("OwnershipTransferred", "address*,address*")
	// keccak256("OwnershipTransferred(address,address)")
	assert.Equal(t,
		"0x8be0079c531659141344cd1fd0a4f28419497f9722a3daafe3b4186f6b6457e0",
		ev.ID().String())

	// all args indexed, data must be empty
	data, err := ev.Encode()
	assert.Nil(t, err)
	assert.Empty(t, data)
}

func TestInterfaceID(t *testing.T) {
	owner := abi.MustNewMethod("owner", "", "address")
	transfer := abi.MustNewMethod("transferOwnership", "address", "")

	id := abi.InterfaceID(owner, transfer)
	for i := range id {
		assert.Equal(t, owner.ID()[i]^transfer.ID()[i], id[i])
	}
	assert.NotEqual(t, abi.MethodID{}, id)
}
