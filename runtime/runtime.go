// Copyright (c) 2026 The Bao Ownership developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime executes calls against contracts.
//
// A contract is an address bound to a named implementation through its
// implementation slot. The runtime resolves the implementation, dispatches
// on the 4-byte selector of the call input, and guarantees all-or-nothing
// semantics: a failing call rolls back every state mutation and drops
// every emitted event.
//
// Upgrades rewrite the implementation slot only, gated by the current
// owner as the active implementation resolves it. This is the mechanism
// the emergency stem rides on: stemming upgrades to the stem
// implementation, unstemming upgrades away from it. Since the upgrade call
// itself must be authorized by the current owner, swapping implementation
// and owner in one transaction is not possible; a new owner always takes
// over through the new implementation's own transfer protocol.
package runtime

import (
	"github.com/pkg/errors"

	"github.com/baofinance/ownership/abi"
	"github.com/baofinance/ownership/bao"
	"github.com/baofinance/ownership/builtin/ownable"
	"github.com/baofinance/ownership/log"
	"github.com/baofinance/ownership/metrics"
	"github.com/baofinance/ownership/state"
	"github.com/baofinance/ownership/xenv"
)

var (
	// ErrNotDeployed the callee address is not bound to any implementation.
	ErrNotDeployed = errors.New("not deployed")
	// ErrAlreadyDeployed the address is already bound to an implementation.
	ErrAlreadyDeployed = errors.New("already deployed")
	// ErrUnknownMethod the selector is not in the implementation's table.
	ErrUnknownMethod = errors.New("unknown method")
	// ErrUnknownImplementation the named implementation is not registered.
	ErrUnknownImplementation = errors.New("unknown implementation")
)

var (
	// MethodUpgradeTo rebinds the contract to another implementation and
	// runs its constructor with the given params.
	MethodUpgradeTo = abi.MustNewMethod("upgradeTo", "string,bytes", "")

	// EventUpgraded signals an implementation change.
	EventUpgraded = abi.MustNewEvent("Upgraded", "string")
)

var callsMeter = metrics.LazyLoadCounterVec("runtime_call_count", []string{"impl", "method", "result"})

// Registry holds the known implementations.
type Registry struct {
	impls map[string]*Implementation
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{impls: make(map[string]*Implementation)}
}

// Register adds an implementation, wiring the shared upgradeTo method
// into its table. It panics on duplicate names.
func (reg *Registry) Register(impl *Implementation) *Registry {
	if _, dup := reg.impls[impl.name]; dup {
		panic("duplicate implementation " + impl.name)
	}
	impl.AddMethods(&NativeMethod{
		ABI: MethodUpgradeTo,
		Run: func(env *xenv.Environment) []any {
			var args struct {
				Arg0 string
				Arg1 []byte
			}
			env.ParseArgs(&args)
			env.Check(reg.upgrade(env, impl, args.Arg0, args.Arg1))
			return nil
		},
	})
	reg.impls[impl.name] = impl
	return reg
}

// Get returns the named implementation.
func (reg *Registry) Get(name string) (*Implementation, bool) {
	impl, found := reg.impls[name]
	return impl, found
}

// upgrade rebinds the called contract to the named implementation. Only
// the current owner, as the active implementation resolves it, may
// upgrade.
func (reg *Registry) upgrade(env *xenv.Environment, active *Implementation, name string, params []byte) error {
	owner, err := active.OwnerOf(env.State(), env.To(), env.BlockTime())
	if err != nil {
		return err
	}
	if env.Caller() != owner {
		return ownable.ErrUnauthorized
	}
	next, found := reg.impls[name]
	if !found {
		return ErrUnknownImplementation
	}
	if err := env.State().SetImplementation(env.To(), name); err != nil {
		return err
	}
	if next.activate != nil {
		if err := next.activate(env, params); err != nil {
			return err
		}
	}
	env.Log(EventUpgraded, nil, name)
	return nil
}

// Output is the result of a call.
type Output struct {
	Data   []byte
	Events []*xenv.Event
}

// Runtime executes calls serially against one state.
type Runtime struct {
	reg      *Registry
	state    *state.State
	blockCtx *xenv.BlockContext
	logger   *log.Logger
}

// New creates a runtime over the given registry and state.
func New(reg *Registry, st *state.State, blockCtx *xenv.BlockContext) *Runtime {
	return &Runtime{
		reg:      reg,
		state:    st,
		blockCtx: blockCtx,
		logger:   log.New("pkg", "runtime"),
	}
}

// State returns the underlying state.
func (rt *Runtime) State() *state.State {
	return rt.state
}

// BlockContext returns the current block context.
func (rt *Runtime) BlockContext() *xenv.BlockContext {
	return rt.blockCtx
}

// Deploy binds addr to the named implementation and runs its constructor.
// The address must not be bound yet.
func (rt *Runtime) Deploy(caller, addr bao.Address, implName string, params []byte) error {
	bound, err := rt.state.GetImplementation(addr)
	if err != nil {
		return err
	}
	if bound != "" {
		return ErrAlreadyDeployed
	}
	impl, found := rt.reg.Get(implName)
	if !found {
		return ErrUnknownImplementation
	}

	checkpoint := rt.state.NewCheckpoint()
	if err := rt.state.SetImplementation(addr, implName); err != nil {
		rt.state.RevertTo(checkpoint)
		return err
	}
	if impl.activate != nil {
		env := xenv.New(nil, rt.state, rt.blockCtx, &xenv.TransactionContext{Origin: caller}, caller, addr, nil)
		if err := env.Run(func(env *xenv.Environment) {
			env.Check(impl.activate(env, params))
		}); err != nil {
			rt.state.RevertTo(checkpoint)
			return err
		}
	}
	rt.logger.Debug("deployed contract", "addr", addr, "impl", implName)
	return nil
}

// Call executes one call with all-or-nothing semantics: on error every
// state mutation is rolled back and no events are returned.
func (rt *Runtime) Call(caller, to bao.Address, input []byte) (*Output, error) {
	implName, err := rt.state.GetImplementation(to)
	if err != nil {
		return nil, err
	}
	if implName == "" {
		return nil, ErrNotDeployed
	}
	impl, found := rt.reg.Get(implName)
	if !found {
		// bound name must have been registered at genesis
		return nil, errors.WithMessage(ErrUnknownImplementation, implName)
	}

	id, err := abi.ExtractMethodID(input)
	if err != nil {
		return nil, err
	}
	method, found := impl.MethodByID(id)
	if !found {
		rt.count(implName, id.String(), "rejected")
		return nil, impl.fallbackErr
	}

	checkpoint := rt.state.NewCheckpoint()
	env := xenv.New(method.ABI, rt.state, rt.blockCtx, &xenv.TransactionContext{Origin: caller}, caller, to, input)

	data, err := env.Call(method.Run)
	if err != nil {
		rt.state.RevertTo(checkpoint)
		rt.count(implName, method.ABI.Name(), "reverted")
		rt.logger.Debug("call reverted",
			"to", to, "method", method.ABI.Name(), "caller", caller, "err", err)
		return nil, err
	}

	rt.count(implName, method.ABI.Name(), "ok")
	return &Output{Data: data, Events: env.Events()}, nil
}

func (rt *Runtime) count(impl, method, result string) {
	callsMeter().AddWithLabel(1, map[string]string{
		"impl":   impl,
		"method": method,
		"result": result,
	})
}
