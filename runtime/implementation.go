// Copyright (c) 2026 The Bao Ownership developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/baofinance/ownership/abi"
	"github.com/baofinance/ownership/bao"
	"github.com/baofinance/ownership/state"
	"github.com/baofinance/ownership/xenv"
)

// NativeMethod binds a method descriptor to its native routine.
type NativeMethod struct {
	ABI *abi.Method
	Run func(env *xenv.Environment) []any
}

// OwnerFunc resolves the current owner of a contract under an
// implementation. Most implementations read the owner slot; time-delayed
// ones compute the owner from block time.
type OwnerFunc func(st *state.State, addr bao.Address, blockTime uint64) (bao.Address, error)

// ActivateFunc is an implementation's constructor, run when a contract is
// deployed with it or upgraded to it. params carries implementation
// specific, ABI-encoded or RLP-encoded arguments.
type ActivateFunc func(env *xenv.Environment, params []byte) error

// Implementation is a named method table: the "class" a contract address
// is bound to via its implementation slot. Upgrading a contract rebinds
// the slot and leaves the storage untouched.
type Implementation struct {
	name         string
	methods      map[abi.MethodID]*NativeMethod
	interfaceIDs map[abi.MethodID]bool
	ownerOf      OwnerFunc
	activate     ActivateFunc
	fallbackErr  error
}

// NewImplementation creates an implementation with the given name and
// owner resolution.
func NewImplementation(name string, ownerOf OwnerFunc) *Implementation {
	impl := &Implementation{
		name:         name,
		methods:      make(map[abi.MethodID]*NativeMethod),
		interfaceIDs: make(map[abi.MethodID]bool),
		ownerOf:      ownerOf,
		fallbackErr:  ErrUnknownMethod,
	}
	impl.AddMethods(&NativeMethod{
		ABI: MethodSupportsInterface,
		Run: func(env *xenv.Environment) []any {
			var id [4]byte
			env.ParseArgs(&id)
			return []any{impl.interfaceIDs[abi.MethodID(id)]}
		},
	})
	return impl
}

// WithActivate sets the constructor.
func (impl *Implementation) WithActivate(fn ActivateFunc) *Implementation {
	impl.activate = fn
	return impl
}

// WithFallbackErr sets the error returned for selectors the method table
// does not contain.
func (impl *Implementation) WithFallbackErr(err error) *Implementation {
	impl.fallbackErr = err
	return impl
}

// AddMethods adds methods to the table. It panics on a selector collision;
// tables are assembled once at startup.
func (impl *Implementation) AddMethods(methods ...*NativeMethod) *Implementation {
	for _, m := range methods {
		if _, dup := impl.methods[m.ABI.ID()]; dup {
			panic("duplicate method " + m.ABI.Sig())
		}
		impl.methods[m.ABI.ID()] = m
	}
	return impl
}

// DeclareInterface advertises the interface id composed of the given
// methods through supportsInterface.
func (impl *Implementation) DeclareInterface(methods ...*abi.Method) *Implementation {
	impl.interfaceIDs[abi.InterfaceID(methods...)] = true
	return impl
}

// Name returns the implementation name.
func (impl *Implementation) Name() string {
	return impl.name
}

// OwnerOf resolves the current owner of addr.
func (impl *Implementation) OwnerOf(st *state.State, addr bao.Address, blockTime uint64) (bao.Address, error) {
	return impl.ownerOf(st, addr, blockTime)
}

// MethodByID returns the method for the given selector.
func (impl *Implementation) MethodByID(id abi.MethodID) (*NativeMethod, bool) {
	m, found := impl.methods[id]
	return m, found
}

// MethodSupportsInterface is the standard introspection method every
// implementation answers.
var MethodSupportsInterface = abi.MustNewMethod("supportsInterface", "bytes4", "bool")
