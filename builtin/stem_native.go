// Copyright (c) 2026 The Bao Ownership developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/baofinance/ownership/bao"
	"github.com/baofinance/ownership/builtin/fixed"
	"github.com/baofinance/ownership/runtime"
	"github.com/baofinance/ownership/xenv"
)

// The stem is the emergency stop: upgrading a contract to it disables every
// business selector while keeping ownership resolvable, so the owner can
// later upgrade away again. Its method table is owner() plus the injected
// upgradeTo/supportsInterface; everything else hits ErrStemmed.
func newStemImpl() *runtime.Implementation {
	return runtime.NewImplementation(ImplStem, timeOwner).
		WithActivate(stemActivate).
		WithFallbackErr(ErrStemmed).
		AddMethods(scheduledOwnerMethod()).
		DeclareInterface(methodOwner)
}

// stemActivate records who may unstem. The caller (the owner that stemmed)
// stays in control; with non-empty params an RLP-encoded {After, Delay}
// pair hands control to a recovery address once the delay elapses. The
// owner slot is left untouched so unstemming to a slot-owned implementation
// resumes the recorded owner.
func stemActivate(env *xenv.Environment, params []byte) error {
	after := env.Caller()
	var flipAt uint64
	if len(params) > 0 {
		var args struct {
			After bao.Address
			Delay uint64
		}
		if err := rlp.DecodeBytes(params, &args); err != nil {
			return err
		}
		after = args.After
		flipAt = env.BlockTime() + args.Delay
	}
	return fixed.New(env.To(), env.State()).Init(env.Caller(), after, flipAt)
}
