// Copyright (c) 2026 The Bao Ownership developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package xenv provides the execution environment native methods run in.
package xenv

import (
	"github.com/pkg/errors"

	"github.com/baofinance/ownership/abi"
	"github.com/baofinance/ownership/bao"
	"github.com/baofinance/ownership/state"
)

// BlockContext block context.
//
// Time is block time: monotonically non-decreasing, adversarially nudgeable
// within small bounds. Protocol windows are sized in hours and days so the
// nudge never matters.
type BlockContext struct {
	Number uint32
	Time   uint64
}

// TransactionContext transaction context.
type TransactionContext struct {
	ID     bao.Bytes32
	Origin bao.Address
}

// Event a log record emitted during execution.
type Event struct {
	Address bao.Address
	Topics  []bao.Bytes32
	Data    []byte
}

type reverted struct {
	cause error
}

// Environment an env to execute a native method.
type Environment struct {
	method   *abi.Method
	state    *state.State
	blockCtx *BlockContext
	txCtx    *TransactionContext
	caller   bao.Address
	to       bao.Address
	input    []byte
	events   []*Event
}

// New creates a new env.
func New(
	method *abi.Method,
	st *state.State,
	blockCtx *BlockContext,
	txCtx *TransactionContext,
	caller bao.Address,
	to bao.Address,
	input []byte,
) *Environment {
	return &Environment{
		method:   method,
		state:    st,
		blockCtx: blockCtx,
		txCtx:    txCtx,
		caller:   caller,
		to:       to,
		input:    input,
	}
}

func (env *Environment) State() *state.State                     { return env.state }
func (env *Environment) BlockContext() *BlockContext             { return env.blockCtx }
func (env *Environment) TransactionContext() *TransactionContext { return env.txCtx }
func (env *Environment) Caller() bao.Address                     { return env.caller }
func (env *Environment) To() bao.Address                         { return env.to }

// BlockTime returns current block time in seconds.
func (env *Environment) BlockTime() uint64 {
	return env.blockCtx.Time
}

// ParseArgs decodes call data into val, reverting on malformed input.
func (env *Environment) ParseArgs(val any) {
	if err := env.method.DecodeInput(env.input, val); err != nil {
		panic(&reverted{errors.WithMessage(err, "decode native input")})
	}
}

// Require reverts with err unless cond holds.
func (env *Environment) Require(cond bool, err error) {
	if !cond {
		panic(&reverted{err})
	}
}

// Check reverts if err is non-nil. It is the bridge between the
// error-returning contract ops and the all-or-nothing call semantics.
func (env *Environment) Check(err error) {
	if err != nil {
		panic(&reverted{err})
	}
}

// Revert aborts execution with err.
func (env *Environment) Revert(err error) {
	panic(&reverted{err})
}

// Log emits an event record. The event id becomes the first topic.
func (env *Environment) Log(event *abi.Event, topics []bao.Bytes32, args ...any) {
	data, err := event.Encode(args...)
	if err != nil {
		panic(errors.WithMessage(err, "encode native event"))
	}

	allTopics := make([]bao.Bytes32, 0, len(topics)+1)
	allTopics = append(allTopics, event.ID())
	allTopics = append(allTopics, topics...)

	env.events = append(env.events, &Event{
		Address: env.to,
		Topics:  allTopics,
		Data:    data,
	})
}

// Events returns events emitted so far.
func (env *Environment) Events() []*Event {
	return env.events
}

// Run executes proc, converting reverts raised inside it into errors.
func (env *Environment) Run(proc func(env *Environment)) (err error) {
	defer func() {
		if e := recover(); e != nil {
			if rec, ok := e.(*reverted); ok {
				err = rec.cause
				return
			}
			panic(e)
		}
	}()

	proc(env)
	return
}

// Call executes proc and encodes its output. A revert raised inside proc
// is returned as err; any emitted events are discarded by the caller in
// that case together with all state mutations.
func (env *Environment) Call(proc func(env *Environment) []any) (data []byte, err error) {
	err = env.Run(func(env *Environment) {
		output := proc(env)
		encoded, encErr := env.method.EncodeOutput(output...)
		if encErr != nil {
			panic(errors.WithMessage(encErr, "encode native output"))
		}
		data = encoded
	})
	return
}
