// Copyright (c) 2026 The Bao Ownership developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package roles_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/baofinance/ownership/bao"
	"github.com/baofinance/ownership/builtin/roles"
	"github.com/baofinance/ownership/lvldb"
	"github.com/baofinance/ownership/state"
)

func M(a ...any) []any {
	return a
}

func TestRolesAlgebra(t *testing.T) {
	kv, _ := lvldb.NewMem()
	st := state.New(kv)

	r := roles.New(bao.BytesToAddress([]byte("contract")), st)
	acc := bao.BytesToAddress([]byte("account"))

	m1 := big.NewInt(0b0011)
	m2 := big.NewInt(0b0100)
	both := big.NewInt(0b0111)

	assert.Equal(t, M(big.NewInt(0), nil), M(r.RolesOf(acc)))

	assert.Equal(t, M(m1, nil), M(r.Grant(acc, m1)))
	assert.Equal(t, M(both, nil), M(r.Grant(acc, m2)))
	// granting an already-held bit changes nothing
	assert.Equal(t, M(both, nil), M(r.Grant(acc, m1)))

	assert.Equal(t, M(true, nil), M(r.HasAny(acc, big.NewInt(0xFFFF))))
	assert.Equal(t, M(false, nil), M(r.HasAll(acc, big.NewInt(0xFFFF))))
	assert.Equal(t, M(true, nil), M(r.HasAll(acc, both)))
	assert.Equal(t, M(true, nil), M(r.HasAny(acc, big.NewInt(0b0001))))
	assert.Equal(t, M(false, nil), M(r.HasAny(acc, big.NewInt(0b1000))))

	assert.Equal(t, M(m2, nil), M(r.Revoke(acc, m1)))
	assert.Equal(t, M(m2, nil), M(r.RolesOf(acc)))
	assert.Equal(t, M(false, nil), M(r.HasAny(acc, m1)))

	// revoking everything clears the slot
	assert.Equal(t, M(big.NewInt(0), nil), M(r.Revoke(acc, both)))
	assert.Equal(t, M(big.NewInt(0), nil), M(r.RolesOf(acc)))
}
