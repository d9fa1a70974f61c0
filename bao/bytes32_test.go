// Copyright (c) 2026 The Bao Ownership developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bao

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytes32(t *testing.T) {
	b := BytesToBytes32([]byte("bao"))
	assert.False(t, b.IsZero())
	assert.True(t, Bytes32{}.IsZero())

	parsed, err := ParseBytes32(b.String())
	assert.Nil(t, err)
	assert.Equal(t, b, parsed)

	_, err = ParseBytes32("0xzz")
	assert.Error(t, err)
}

func TestBlake2b(t *testing.T) {
	h1 := Blake2b([]byte("pending"))
	h2 := Blake2b([]byte("pending"))
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, Blake2b([]byte("roles")))

	// split input hashes the same as joined input
	assert.Equal(t, Blake2b([]byte("ab"), []byte("cd")), Blake2b([]byte("abcd")))
}

func TestAddress(t *testing.T) {
	addr := BytesToAddress([]byte("owner"))
	assert.False(t, addr.IsZero())
	assert.True(t, Address{}.IsZero())

	parsed, err := ParseAddress(addr.String())
	assert.Nil(t, err)
	assert.Equal(t, addr, parsed)

	_, err = ParseAddress("not-an-address")
	assert.Error(t, err)
}
