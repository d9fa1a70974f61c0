// Copyright (c) 2026 The Bao Ownership developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state provides journaled contract storage.
//
// Every mutation lands in an in-memory journal first; NewCheckpoint and
// RevertTo give callers transaction-grade all-or-nothing semantics, and
// Commit flushes the journal to the backing kv store in one batch.
package state

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/baofinance/ownership/bao"
	"github.com/baofinance/ownership/kv"
	"github.com/baofinance/ownership/stackedmap"
)

const (
	accountPrefix = "a"
	storagePrefix = "s"

	cacheSize = 1024
)

// State manages contract accounts and their storage slots.
type State struct {
	kv    kv.GetPutter
	sm    *stackedmap.StackedMap[string, []byte]
	cache *lru.Cache // raw kv reads
}

// New creates a state object backed by the given kv store.
func New(store kv.GetPutter) *State {
	cache, err := lru.New(cacheSize)
	if err != nil {
		panic(err)
	}
	s := &State{kv: store, cache: cache}
	s.sm = stackedmap.New(s.readKV)
	// base level, so Put always has somewhere to land
	s.sm.Push()
	return s
}

func (s *State) readKV(key string) ([]byte, bool, error) {
	if v, ok := s.cache.Get(key); ok {
		data, _ := v.([]byte)
		return data, len(data) > 0, nil
	}
	data, err := s.kv.Get([]byte(key))
	if err != nil {
		if s.kv.IsNotFound(err) {
			s.cache.Add(key, []byte(nil))
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, "state read")
	}
	s.cache.Add(key, data)
	return data, true, nil
}

func accountKey(addr bao.Address) string {
	return accountPrefix + string(addr.Bytes())
}

func storageKey(addr bao.Address, key bao.Bytes32) string {
	return storagePrefix + string(bao.Blake2b(addr.Bytes(), key.Bytes()).Bytes())
}

func (s *State) getAccount(addr bao.Address) (*Account, error) {
	data, _, err := s.sm.Get(accountKey(addr))
	if err != nil {
		return nil, err
	}
	return decodeAccount(data)
}

func (s *State) updateAccount(addr bao.Address, a *Account) error {
	data, err := encodeAccount(a)
	if err != nil {
		return err
	}
	s.sm.Put(accountKey(addr), data)
	return nil
}

// GetOwner returns the owner slot of the given contract address.
func (s *State) GetOwner(addr bao.Address) (bao.Address, error) {
	a, err := s.getAccount(addr)
	if err != nil {
		return bao.Address{}, err
	}
	return a.Owner, nil
}

// SetOwner overwrites the owner slot of the given contract address.
func (s *State) SetOwner(addr bao.Address, owner bao.Address) error {
	a, err := s.getAccount(addr)
	if err != nil {
		return err
	}
	a.Owner = owner
	return s.updateAccount(addr, a)
}

// GetImplementation returns the name of the logic currently bound to addr.
func (s *State) GetImplementation(addr bao.Address) (string, error) {
	a, err := s.getAccount(addr)
	if err != nil {
		return "", err
	}
	return a.Implementation, nil
}

// SetImplementation rebinds addr to the named logic. This is the strategy
// pointer an upgrade rewrites; the contract's storage stays untouched.
func (s *State) SetImplementation(addr bao.Address, name string) error {
	a, err := s.getAccount(addr)
	if err != nil {
		return err
	}
	a.Implementation = name
	return s.updateAccount(addr, a)
}

// Initialized returns whether the one-way initialization latch is set.
func (s *State) Initialized(addr bao.Address) (bool, error) {
	a, err := s.getAccount(addr)
	if err != nil {
		return false, err
	}
	return a.Initialized, nil
}

// SetInitialized sets the initialization latch. There is deliberately no
// way to clear it for the lifetime of the storage.
func (s *State) SetInitialized(addr bao.Address) error {
	a, err := s.getAccount(addr)
	if err != nil {
		return err
	}
	a.Initialized = true
	return s.updateAccount(addr, a)
}

// GetStorage returns the raw storage value for the given key.
func (s *State) GetStorage(addr bao.Address, key bao.Bytes32) (bao.Bytes32, error) {
	var v stgBytes32
	if err := s.DecodeStorage(addr, key, v.Decode); err != nil {
		return bao.Bytes32{}, err
	}
	return bao.Bytes32(v), nil
}

// SetStorage sets the raw storage value for the given key.
func (s *State) SetStorage(addr bao.Address, key bao.Bytes32, value bao.Bytes32) error {
	v := stgBytes32(value)
	return s.EncodeStorage(addr, key, v.Encode)
}

// EncodeStorage sets the storage value encoded by given enc function.
// An empty encoded value clears the slot.
func (s *State) EncodeStorage(addr bao.Address, key bao.Bytes32, enc func() ([]byte, error)) error {
	data, err := enc()
	if err != nil {
		return err
	}
	s.sm.Put(storageKey(addr, key), data)
	return nil
}

// DecodeStorage gets the storage value and decodes it via the given dec
// function. An empty slot yields zero-length data.
func (s *State) DecodeStorage(addr bao.Address, key bao.Bytes32, dec func([]byte) error) error {
	data, _, err := s.sm.Get(storageKey(addr, key))
	if err != nil {
		return err
	}
	return dec(data)
}

// GetStructuredStorage loads a structured storage value.
func (s *State) GetStructuredStorage(addr bao.Address, key bao.Bytes32, val StorageDecoder) error {
	return s.DecodeStorage(addr, key, val.Decode)
}

// SetStructuredStorage saves a structured storage value.
func (s *State) SetStructuredStorage(addr bao.Address, key bao.Bytes32, val StorageEncoder) error {
	return s.EncodeStorage(addr, key, val.Encode)
}

// GetUint64 loads a uint64 slot.
func (s *State) GetUint64(addr bao.Address, key bao.Bytes32) (uint64, error) {
	var v stgUint64
	if err := s.GetStructuredStorage(addr, key, &v); err != nil {
		return 0, err
	}
	return uint64(v), nil
}

// SetUint64 saves a uint64 slot.
func (s *State) SetUint64(addr bao.Address, key bao.Bytes32, v uint64) error {
	sv := stgUint64(v)
	return s.SetStructuredStorage(addr, key, &sv)
}

// GetAddress loads an address slot.
func (s *State) GetAddress(addr bao.Address, key bao.Bytes32) (bao.Address, error) {
	var v stgAddress
	if err := s.GetStructuredStorage(addr, key, &v); err != nil {
		return bao.Address{}, err
	}
	return bao.Address(v), nil
}

// SetAddress saves an address slot.
func (s *State) SetAddress(addr bao.Address, key bao.Bytes32, v bao.Address) error {
	sv := stgAddress(v)
	return s.SetStructuredStorage(addr, key, &sv)
}

// NewCheckpoint makes a checkpoint of the current state.
// It returns the checkpoint id to revert to.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo reverts the state to the given checkpoint.
// All mutations after the checkpoint are discarded.
func (s *State) RevertTo(checkpoint int) {
	s.sm.PopTo(checkpoint)
}

// Commit flushes journaled mutations into the backing kv store in one
// batch. The journal is kept; committed values stay visible.
func (s *State) Commit() error {
	// last write per key wins
	final := make(map[string][]byte)
	s.sm.Journal(func(key string, value []byte) bool {
		final[key] = value
		return true
	})

	batch := s.kv.NewBatch()
	for key, value := range final {
		if len(value) == 0 {
			if err := batch.Delete([]byte(key)); err != nil {
				return err
			}
		} else {
			if err := batch.Put([]byte(key), value); err != nil {
				return err
			}
		}
		s.cache.Add(key, value)
	}
	return errors.Wrap(batch.Write(), "state commit")
}
