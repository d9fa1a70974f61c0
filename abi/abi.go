// Copyright (c) 2026 The Bao Ownership developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package abi builds contract method and event descriptors in code.
//
// Method signatures are the wire protocol: callers address a method by the
// 4-byte selector of its canonical signature, and events are identified by
// the keccak256 hash of theirs, exactly as on EVM chains. Packing and
// unpacking of values is delegated to go-ethereum's abi machinery.
package abi

import (
	"fmt"
	"strings"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/baofinance/ownership/bao"
)

// MethodID 4-byte method selector.
type MethodID [4]byte

// String implements stringer.
func (id MethodID) String() string {
	return fmt.Sprintf("0x%x", id[:])
}

// ExtractMethodID extracts the method id from input data.
func ExtractMethodID(input []byte) (id MethodID, err error) {
	if len(input) < len(id) {
		return MethodID{}, errors.New("input data too short")
	}
	copy(id[:], input)
	return id, nil
}

// Method describes a callable contract method.
type Method struct {
	id      MethodID
	name    string
	sig     string
	inputs  ethabi.Arguments
	outputs ethabi.Arguments
}

// MustNewMethod creates a method descriptor from its name and
// comma-separated canonical input/output type lists, e.g.
// MustNewMethod("transferOwnership", "address", ""). It panics on malformed
// type lists; descriptors are package-level constants in practice.
func MustNewMethod(name, inputs, outputs string) *Method {
	in := mustParseArgs(inputs, false)
	out := mustParseArgs(outputs, false)

	sig := fmt.Sprintf("%s(%s)", name, inputs)
	var id MethodID
	copy(id[:], crypto.Keccak256([]byte(sig)))

	return &Method{
		id:      id,
		name:    name,
		sig:     sig,
		inputs:  in,
		outputs: out,
	}
}

// ID returns the method selector.
func (m *Method) ID() MethodID {
	return m.id
}

// Name returns the method name.
func (m *Method) Name() string {
	return m.name
}

// Sig returns the canonical signature, e.g. "transferOwnership(address)".
func (m *Method) Sig() string {
	return m.sig
}

// EncodeInput encodes args to call data prefixed with the selector.
func (m *Method) EncodeInput(args ...any) ([]byte, error) {
	data, err := m.inputs.Pack(args...)
	if err != nil {
		return nil, err
	}
	return append(m.id[:], data...), nil
}

// DecodeInput decodes call data into v.
func (m *Method) DecodeInput(input []byte, v any) error {
	if len(input) < 4 || MethodID(input[:4]) != m.id {
		return errors.New("input has incorrect selector")
	}
	values, err := m.inputs.Unpack(input[4:])
	if err != nil {
		return err
	}
	return m.inputs.Copy(v, values)
}

// EncodeOutput encodes output args to data.
func (m *Method) EncodeOutput(args ...any) ([]byte, error) {
	return m.outputs.Pack(args...)
}

// DecodeOutput decodes output data into v.
func (m *Method) DecodeOutput(output []byte, v any) error {
	values, err := m.outputs.Unpack(output)
	if err != nil {
		return err
	}
	return m.outputs.Copy(v, values)
}

// Event describes a loggable contract event.
type Event struct {
	id        bao.Bytes32
	name      string
	sig       string
	unindexed ethabi.Arguments
}

// MustNewEvent creates an event descriptor. Types suffixed with '*' are
// indexed and travel as topics rather than data,
// e.g. MustNewEvent("OwnershipTransferred", "address*,address*").
func MustNewEvent(name, inputs string) *Event {
	canonical := strings.ReplaceAll(inputs, "*", "")
	sig := fmt.Sprintf("%s(%s)", name, canonical)

	return &Event{
		id:        bao.BytesToBytes32(crypto.Keccak256([]byte(sig))),
		name:      name,
		sig:       sig,
		unindexed: mustParseArgs(inputs, true),
	}
}

// ID returns the event id, the first topic of every log record.
func (e *Event) ID() bao.Bytes32 {
	return e.id
}

// Name returns the event name.
func (e *Event) Name() string {
	return e.name
}

// Sig returns the canonical signature.
func (e *Event) Sig() string {
	return e.sig
}

// Encode encodes non-indexed args to log data.
func (e *Event) Encode(args ...any) ([]byte, error) {
	return e.unindexed.Pack(args...)
}

// Decode decodes log data into v.
func (e *Event) Decode(data []byte, v any) error {
	values, err := e.unindexed.Unpack(data)
	if err != nil {
		return err
	}
	return e.unindexed.Copy(v, values)
}

// InterfaceID computes the ERC165-style interface id of a method set:
// the XOR of all method selectors.
func InterfaceID(methods ...*Method) (id MethodID) {
	for _, m := range methods {
		for i := range id {
			id[i] ^= m.id[i]
		}
	}
	return
}

// mustParseArgs builds ethabi arguments from a comma-separated type list.
// With skipIndexed set, types marked '*' (indexed event args) are dropped.
func mustParseArgs(list string, skipIndexed bool) ethabi.Arguments {
	if list == "" {
		return nil
	}
	var args ethabi.Arguments
	for i, t := range strings.Split(list, ",") {
		t = strings.TrimSpace(t)
		indexed := strings.HasSuffix(t, "*")
		if indexed {
			t = strings.TrimSuffix(t, "*")
			if skipIndexed {
				continue
			}
		}
		typ, err := ethabi.NewType(t, "", nil)
		if err != nil {
			panic(errors.Wrapf(err, "parse abi type %q", t))
		}
		args = append(args, ethabi.Argument{
			Name:    fmt.Sprintf("arg%d", i),
			Type:    typ,
			Indexed: indexed,
		})
	}
	return args
}
