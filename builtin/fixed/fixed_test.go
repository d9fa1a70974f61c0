// Copyright (c) 2026 The Bao Ownership developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package fixed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/baofinance/ownership/bao"
	"github.com/baofinance/ownership/builtin/fixed"
	"github.com/baofinance/ownership/lvldb"
	"github.com/baofinance/ownership/state"
)

func TestFixedOwnerFlip(t *testing.T) {
	kv, _ := lvldb.NewMem()
	st := state.New(kv)

	before := bao.BytesToAddress([]byte("before"))
	after := bao.BytesToAddress([]byte("after"))
	flipAt := uint64(5000)

	f := fixed.New(bao.BytesToAddress([]byte("contract")), st)
	assert.Nil(t, f.Init(before, after, flipAt))

	owner, err := f.Owner(flipAt - 1)
	assert.Nil(t, err)
	assert.Equal(t, before, owner)

	// the flip boundary itself already belongs to the after-owner
	owner, _ = f.Owner(flipAt)
	assert.Equal(t, after, owner)

	owner, _ = f.Owner(flipAt + 1000000)
	assert.Equal(t, after, owner)
}

func TestFixedZeroAfterOwner(t *testing.T) {
	kv, _ := lvldb.NewMem()
	st := state.New(kv)

	f := fixed.New(bao.BytesToAddress([]byte("contract")), st)
	err := f.Init(bao.BytesToAddress([]byte("before")), bao.Address{}, 5000)
	assert.Equal(t, fixed.ErrZeroAfterOwner, err)

	s, err := f.Schedule()
	assert.Nil(t, err)
	assert.True(t, s.IsEmpty())
}
