// Copyright (c) 2026 The Bao Ownership developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baofinance/ownership/abi"
	"github.com/baofinance/ownership/bao"
	"github.com/baofinance/ownership/builtin/ownable"
	"github.com/baofinance/ownership/builtin/token"
	"github.com/baofinance/ownership/lvldb"
	"github.com/baofinance/ownership/runtime"
	"github.com/baofinance/ownership/state"
	"github.com/baofinance/ownership/xenv"
)

const t0 uint64 = 1000000

var (
	alice    = bao.BytesToAddress([]byte("alice"))
	bob      = bao.BytesToAddress([]byte("bob"))
	carol    = bao.BytesToAddress([]byte("carol"))
	contract = bao.BytesToAddress([]byte("contract"))
	tokenC   = bao.BytesToAddress([]byte("token"))
)

type testRuntime struct {
	*runtime.Runtime
	blockCtx *xenv.BlockContext
}

func newTestRuntime(t *testing.T) *testRuntime {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	blockCtx := &xenv.BlockContext{Number: 1, Time: t0}
	return &testRuntime{runtime.New(NewRegistry(), state.New(db), blockCtx), blockCtx}
}

func (rt *testRuntime) advance(seconds uint64) {
	rt.blockCtx.Time += seconds
}

func (rt *testRuntime) call(t *testing.T, caller bao.Address, m *abi.Method, args ...any) (*runtime.Output, error) {
	input, err := m.EncodeInput(args...)
	require.NoError(t, err)
	return rt.Call(caller, contract, input)
}

func (rt *testRuntime) ownerOf(t *testing.T) bao.Address {
	out, err := rt.call(t, alice, methodOwner)
	require.NoError(t, err)
	var owner common.Address
	require.NoError(t, methodOwner.DecodeOutput(out.Data, &owner))
	return bao.Address(owner)
}

// deployOwned deploys the named implementation and runs the full
// deployment protocol so that alice ends up as settled owner.
func deployOwned(t *testing.T, rt *testRuntime, impl string) {
	require.NoError(t, rt.Deploy(alice, contract, impl, nil))
	_, err := rt.call(t, alice, methodInitialize, common.Address(alice))
	require.NoError(t, err)
	_, err = rt.call(t, alice, methodTransferOwn, common.Address(alice))
	require.NoError(t, err)
}

func TestDeployAndInitialize(t *testing.T) {
	rt := newTestRuntime(t)
	require.NoError(t, rt.Deploy(alice, contract, ImplOwnable, nil))

	// deploy binds the implementation but does not initialize
	assert.True(t, rt.ownerOf(t).IsZero())

	out, err := rt.call(t, alice, methodInitialize, common.Address(bob))
	require.NoError(t, err)
	require.Len(t, out.Events, 1)
	assert.Equal(t, eventOwnershipTransferred.ID(), out.Events[0].Topics[0])
	assert.Equal(t, addrTopic(alice), out.Events[0].Topics[2])

	assert.Equal(t, alice, rt.ownerOf(t))

	// initialization is a one-way latch
	_, err = rt.call(t, bob, methodInitialize, common.Address(bob))
	assert.ErrorIs(t, err, ownable.ErrAlreadyInitialized)

	out, err = rt.call(t, alice, methodPending)
	require.NoError(t, err)
	var pending struct {
		Arg0 common.Address
		Arg1 uint64
		Arg2 bool
		Arg3 uint64
	}
	require.NoError(t, methodPending.DecodeOutput(out.Data, &pending))
	assert.Equal(t, common.Address(bob), pending.Arg0)
	assert.Equal(t, t0+bao.DeployWindow, pending.Arg1)
	assert.True(t, pending.Arg2)
}

func TestDeployParamsInitialize(t *testing.T) {
	rt := newTestRuntime(t)
	params, err := rlp.EncodeToBytes(bob)
	require.NoError(t, err)
	require.NoError(t, rt.Deploy(alice, contract, ImplOwnable, params))

	assert.Equal(t, alice, rt.ownerOf(t))
	_, err = rt.call(t, alice, methodInitialize, common.Address(bob))
	assert.ErrorIs(t, err, ownable.ErrAlreadyInitialized)
}

func TestOneShotTransfer(t *testing.T) {
	rt := newTestRuntime(t)
	require.NoError(t, rt.Deploy(alice, contract, ImplOwnable, nil))
	_, err := rt.call(t, alice, methodInitialize, common.Address(bob))
	require.NoError(t, err)

	// only the recorded target is accepted
	_, err = rt.call(t, alice, methodTransferOwn, common.Address(carol))
	assert.ErrorIs(t, err, ownable.ErrCannotCompleteTransfer)

	out, err := rt.call(t, alice, methodTransferOwn, common.Address(bob))
	require.NoError(t, err)
	require.Len(t, out.Events, 1)
	assert.Equal(t, addrTopic(alice), out.Events[0].Topics[1])
	assert.Equal(t, addrTopic(bob), out.Events[0].Topics[2])
	assert.Equal(t, bob, rt.ownerOf(t))

	// the transfer was one-shot; ownership is locked now
	_, err = rt.call(t, bob, methodTransferOwn, common.Address(carol))
	assert.ErrorIs(t, err, ownable.ErrCannotCompleteTransfer)
}

func TestOneShotTransferExpires(t *testing.T) {
	rt := newTestRuntime(t)
	require.NoError(t, rt.Deploy(alice, contract, ImplOwnable, nil))
	_, err := rt.call(t, alice, methodInitialize, common.Address(bob))
	require.NoError(t, err)

	rt.advance(bao.DeployWindow)
	_, err = rt.call(t, alice, methodTransferOwn, common.Address(bob))
	assert.ErrorIs(t, err, ownable.ErrCannotCompleteTransfer)
	assert.Equal(t, alice, rt.ownerOf(t))
}

func TestHandoverFlow(t *testing.T) {
	rt := newTestRuntime(t)
	deployOwned(t, rt, ImplHandover)

	out, err := rt.call(t, alice, methodInitiateHandover, common.Address(bob))
	require.NoError(t, err)
	require.Len(t, out.Events, 1)
	assert.Equal(t, eventHandoverInitiated.ID(), out.Events[0].Topics[0])

	// target accepts in the first half of the window
	out, err = rt.call(t, bob, methodAcceptHandover)
	require.NoError(t, err)
	assert.Equal(t, eventHandoverAccepted.ID(), out.Events[0].Topics[0])

	// completion is paused until half the window has elapsed
	_, err = rt.call(t, alice, methodCompleteHandover, common.Address(bob))
	assert.ErrorIs(t, err, ownable.ErrCannotCompleteHandover)

	rt.advance(bao.HandoverWindow/2 + 1)
	out, err = rt.call(t, alice, methodCompleteHandover, common.Address(bob))
	require.NoError(t, err)
	assert.Equal(t, eventOwnershipTransferred.ID(), out.Events[0].Topics[0])
	assert.Equal(t, bob, rt.ownerOf(t))
}

func TestHandoverLateAccept(t *testing.T) {
	rt := newTestRuntime(t)
	deployOwned(t, rt, ImplHandover)

	_, err := rt.call(t, alice, methodInitiateHandover, common.Address(bob))
	require.NoError(t, err)

	// accepting works any time before expiry, even past the pause
	rt.advance(bao.HandoverWindow/2 + 1)
	_, err = rt.call(t, bob, methodAcceptHandover)
	require.NoError(t, err)

	_, err = rt.call(t, alice, methodCompleteHandover, common.Address(bob))
	require.NoError(t, err)
	assert.Equal(t, bob, rt.ownerOf(t))
}

func TestHandoverExpiry(t *testing.T) {
	rt := newTestRuntime(t)
	deployOwned(t, rt, ImplHandover)

	_, err := rt.call(t, alice, methodInitiateHandover, common.Address(bob))
	require.NoError(t, err)

	rt.advance(bao.HandoverWindow)
	_, err = rt.call(t, bob, methodAcceptHandover)
	assert.ErrorIs(t, err, ownable.ErrHandoverExpired)
	_, err = rt.call(t, alice, methodCompleteHandover, common.Address(bob))
	assert.ErrorIs(t, err, ownable.ErrCannotCompleteHandover)
	assert.Equal(t, alice, rt.ownerOf(t))
}

func TestHandoverCancel(t *testing.T) {
	rt := newTestRuntime(t)
	deployOwned(t, rt, ImplHandover)

	// nothing pending yet
	_, err := rt.call(t, alice, methodCancelHandover)
	assert.ErrorIs(t, err, ownable.ErrNoHandoverInitiated)

	_, err = rt.call(t, alice, methodInitiateHandover, common.Address(bob))
	require.NoError(t, err)

	// the nominated target may cancel too
	out, err := rt.call(t, bob, methodCancelHandover)
	require.NoError(t, err)
	assert.Equal(t, eventHandoverCanceled.ID(), out.Events[0].Topics[0])
	assert.Equal(t, addrTopic(bob), out.Events[0].Topics[1])

	rt.advance(bao.HandoverWindow/2 + 1)
	_, err = rt.call(t, alice, methodCompleteHandover, common.Address(bob))
	assert.ErrorIs(t, err, ownable.ErrNoHandoverInitiated)

	// a third party may not cancel
	_, err = rt.call(t, alice, methodInitiateHandover, common.Address(bob))
	require.NoError(t, err)
	_, err = rt.call(t, carol, methodCancelHandover)
	assert.ErrorIs(t, err, ownable.ErrUnauthorized)
}

func TestTransferrableFlow(t *testing.T) {
	rt := newTestRuntime(t)
	deployOwned(t, rt, ImplTransferrable)

	_, err := rt.call(t, alice, methodInitiateTransfer, common.Address(bob))
	require.NoError(t, err)

	// completion requires validation first
	rt.advance(bao.TransferWindow/2 + 1)
	_, err = rt.call(t, alice, methodTransferOwn, common.Address(bob))
	assert.ErrorIs(t, err, ownable.ErrCannotCompleteTransfer)

	// and validation only works in the first half of the window
	_, err = rt.call(t, bob, methodValidateTransfer)
	assert.ErrorIs(t, err, ownable.ErrHandoverExpired)
}

func TestTransferrableValidatedFlow(t *testing.T) {
	rt := newTestRuntime(t)
	deployOwned(t, rt, ImplTransferrable)

	_, err := rt.call(t, alice, methodInitiateTransfer, common.Address(bob))
	require.NoError(t, err)

	// only the nominated target validates
	_, err = rt.call(t, carol, methodValidateTransfer)
	assert.ErrorIs(t, err, ownable.ErrUnauthorized)

	out, err := rt.call(t, bob, methodValidateTransfer)
	require.NoError(t, err)
	assert.Equal(t, eventTransferValidated.ID(), out.Events[0].Topics[0])

	// still paused
	_, err = rt.call(t, alice, methodTransferOwn, common.Address(bob))
	assert.ErrorIs(t, err, ownable.ErrCannotCompleteTransfer)

	rt.advance(bao.TransferWindow/2 + 1)
	_, err = rt.call(t, alice, methodTransferOwn, common.Address(bob))
	require.NoError(t, err)
	assert.Equal(t, bob, rt.ownerOf(t))
}

func TestRenunciation(t *testing.T) {
	rt := newTestRuntime(t)
	deployOwned(t, rt, ImplTransferrable)

	var zero common.Address
	_, err := rt.call(t, alice, methodInitiateTransfer, zero)
	require.NoError(t, err)

	// the zero target is pre-validated but still subject to the pause
	_, err = rt.call(t, alice, methodTransferOwn, zero)
	assert.ErrorIs(t, err, ownable.ErrCannotRenounceYet)

	rt.advance(bao.TransferWindow/2 + 1)
	_, err = rt.call(t, alice, methodTransferOwn, zero)
	require.NoError(t, err)
	assert.True(t, rt.ownerOf(t).IsZero())

	// renunciation is terminal: the latch blocks re-initialization
	_, err = rt.call(t, alice, methodInitialize, common.Address(alice))
	assert.ErrorIs(t, err, ownable.ErrAlreadyInitialized)
}

func TestRoles(t *testing.T) {
	rt := newTestRuntime(t)
	deployOwned(t, rt, ImplOwnable)

	mask := big.NewInt(0b110)

	_, err := rt.call(t, bob, methodGrantRoles, common.Address(bob), mask)
	assert.ErrorIs(t, err, ownable.ErrUnauthorized)

	out, err := rt.call(t, alice, methodGrantRoles, common.Address(bob), mask)
	require.NoError(t, err)
	assert.Equal(t, eventRolesUpdated.ID(), out.Events[0].Topics[0])

	out, err = rt.call(t, carol, methodRolesOf, common.Address(bob))
	require.NoError(t, err)
	held := new(big.Int)
	require.NoError(t, methodRolesOf.DecodeOutput(out.Data, &held))
	assert.Equal(t, mask, held)

	out, err = rt.call(t, carol, methodHasAnyRole, common.Address(bob), big.NewInt(0b010))
	require.NoError(t, err)
	var ok bool
	require.NoError(t, methodHasAnyRole.DecodeOutput(out.Data, &ok))
	assert.True(t, ok)

	out, err = rt.call(t, carol, methodHasAllRoles, common.Address(bob), big.NewInt(0b111))
	require.NoError(t, err)
	require.NoError(t, methodHasAllRoles.DecodeOutput(out.Data, &ok))
	assert.False(t, ok)

	// holder sheds a bit on its own
	_, err = rt.call(t, bob, methodRenounceRoles, big.NewInt(0b100))
	require.NoError(t, err)
	out, err = rt.call(t, carol, methodRolesOf, common.Address(bob))
	require.NoError(t, err)
	require.NoError(t, methodRolesOf.DecodeOutput(out.Data, &held))
	assert.Equal(t, big.NewInt(0b010), held)

	_, err = rt.call(t, alice, methodRevokeRoles, common.Address(bob), mask)
	require.NoError(t, err)
	out, err = rt.call(t, carol, methodRolesOf, common.Address(bob))
	require.NoError(t, err)
	require.NoError(t, methodRolesOf.DecodeOutput(out.Data, &held))
	assert.Zero(t, held.Sign())
}

func TestSweep(t *testing.T) {
	rt := newTestRuntime(t)
	deployOwned(t, rt, ImplOwnable)

	// a stray token balance lands on the contract
	supply := big.NewInt(1000)
	params, err := rlp.EncodeToBytes(&struct {
		Holder bao.Address
		Supply *big.Int
	}{contract, supply})
	require.NoError(t, err)
	require.NoError(t, rt.Deploy(carol, tokenC, ImplToken, params))

	_, err = rt.call(t, carol, methodSweep, common.Address(tokenC), common.Address(carol))
	assert.ErrorIs(t, err, ownable.ErrUnauthorized)

	// a sweeper role works as well as the owner
	_, err = rt.call(t, alice, methodGrantRoles, common.Address(carol), RoleSweeper)
	require.NoError(t, err)

	out, err := rt.call(t, carol, methodSweep, common.Address(tokenC), common.Address(bob))
	require.NoError(t, err)
	assert.Equal(t, eventSwept.ID(), out.Events[0].Topics[0])

	input, err := methodBalanceOf.EncodeInput(common.Address(bob))
	require.NoError(t, err)
	bout, err := rt.Call(carol, tokenC, input)
	require.NoError(t, err)
	bal := new(big.Int)
	require.NoError(t, methodBalanceOf.DecodeOutput(bout.Data, &bal))
	assert.Equal(t, supply, bal)

	// nothing left to sweep
	_, err = rt.call(t, alice, methodSweep, common.Address(tokenC), common.Address(alice))
	assert.ErrorIs(t, err, token.ErrZeroAmount)
}

func TestTokenTransfer(t *testing.T) {
	rt := newTestRuntime(t)
	params, err := rlp.EncodeToBytes(&struct {
		Holder bao.Address
		Supply *big.Int
	}{alice, big.NewInt(100)})
	require.NoError(t, err)
	require.NoError(t, rt.Deploy(alice, tokenC, ImplToken, params))

	input, err := methodTransfer.EncodeInput(common.Address(bob), big.NewInt(30))
	require.NoError(t, err)
	out, err := rt.Call(alice, tokenC, input)
	require.NoError(t, err)
	assert.Equal(t, eventTransfer.ID(), out.Events[0].Topics[0])

	input, err = methodTransfer.EncodeInput(common.Address(carol), big.NewInt(200))
	require.NoError(t, err)
	_, err = rt.Call(alice, tokenC, input)
	assert.ErrorIs(t, err, token.ErrInsufficientBalance)
}

func TestFixedOwner(t *testing.T) {
	rt := newTestRuntime(t)
	params, err := rlp.EncodeToBytes(&struct {
		Before bao.Address
		After  bao.Address
		FlipAt uint64
	}{alice, bob, t0 + 100})
	require.NoError(t, err)
	require.NoError(t, rt.Deploy(alice, contract, ImplFixed, params))

	assert.Equal(t, alice, rt.ownerOf(t))

	// the flip needs no transaction
	rt.advance(100)
	assert.Equal(t, bob, rt.ownerOf(t))
}

func TestStem(t *testing.T) {
	rt := newTestRuntime(t)
	deployOwned(t, rt, ImplHandover)

	// only the owner may stem
	input, err := runtime.MethodUpgradeTo.EncodeInput(ImplStem, []byte{})
	require.NoError(t, err)
	_, err = rt.Call(bob, contract, input)
	assert.ErrorIs(t, err, ownable.ErrUnauthorized)

	out, err := rt.Call(alice, contract, input)
	require.NoError(t, err)
	assert.Equal(t, runtime.EventUpgraded.ID(), out.Events[0].Topics[0])

	// every business selector is disabled while stemmed
	_, err = rt.call(t, alice, methodInitiateHandover, common.Address(bob))
	assert.ErrorIs(t, err, ErrStemmed)
	_, err = rt.call(t, alice, methodTransferOwn, common.Address(bob))
	assert.ErrorIs(t, err, ErrStemmed)
	_, err = rt.call(t, alice, methodGrantRoles, common.Address(bob), big.NewInt(1))
	assert.ErrorIs(t, err, ErrStemmed)

	// but ownership stays resolvable, so the owner can unstem
	assert.Equal(t, alice, rt.ownerOf(t))

	input, err = runtime.MethodUpgradeTo.EncodeInput(ImplHandover, []byte{})
	require.NoError(t, err)
	_, err = rt.Call(alice, contract, input)
	require.NoError(t, err)

	assert.Equal(t, alice, rt.ownerOf(t))
	_, err = rt.call(t, alice, methodInitiateHandover, common.Address(bob))
	require.NoError(t, err)
}

func TestStemRecovery(t *testing.T) {
	rt := newTestRuntime(t)
	deployOwned(t, rt, ImplHandover)

	// stem with a recovery schedule: carol takes over after a day
	params, err := rlp.EncodeToBytes(&struct {
		After bao.Address
		Delay uint64
	}{carol, 24 * 3600})
	require.NoError(t, err)
	input, err := runtime.MethodUpgradeTo.EncodeInput(ImplStem, params)
	require.NoError(t, err)
	_, err = rt.Call(alice, contract, input)
	require.NoError(t, err)

	assert.Equal(t, alice, rt.ownerOf(t))
	rt.advance(24 * 3600)
	assert.Equal(t, carol, rt.ownerOf(t))
}

func TestSupportsInterface(t *testing.T) {
	rt := newTestRuntime(t)
	deployOwned(t, rt, ImplOwnable)

	ifaceID := abi.InterfaceID(methodOwner, methodPending, methodInitialize, methodTransferOwn)
	out, err := rt.call(t, alice, runtime.MethodSupportsInterface, [4]byte(ifaceID))
	require.NoError(t, err)
	var ok bool
	require.NoError(t, runtime.MethodSupportsInterface.DecodeOutput(out.Data, &ok))
	assert.True(t, ok)

	out, err = rt.call(t, alice, runtime.MethodSupportsInterface, [4]byte{0xde, 0xad, 0xbe, 0xef})
	require.NoError(t, err)
	require.NoError(t, runtime.MethodSupportsInterface.DecodeOutput(out.Data, &ok))
	assert.False(t, ok)
}

func TestUnknownSelector(t *testing.T) {
	rt := newTestRuntime(t)
	deployOwned(t, rt, ImplOwnable)

	_, err := rt.Call(alice, contract, []byte{0xde, 0xad, 0xbe, 0xef})
	assert.ErrorIs(t, err, runtime.ErrUnknownMethod)
}

func TestDeployGuards(t *testing.T) {
	rt := newTestRuntime(t)

	_, err := rt.call(t, alice, methodOwner)
	assert.ErrorIs(t, err, runtime.ErrNotDeployed)

	require.NoError(t, rt.Deploy(alice, contract, ImplOwnable, nil))
	assert.ErrorIs(t, rt.Deploy(alice, contract, ImplOwnable, nil), runtime.ErrAlreadyDeployed)
	assert.ErrorIs(t, rt.Deploy(alice, tokenC, "nope", nil), runtime.ErrUnknownImplementation)
}

func TestRevertRollsBack(t *testing.T) {
	rt := newTestRuntime(t)
	deployOwned(t, rt, ImplHandover)

	// a failing call leaves no trace
	_, err := rt.call(t, bob, methodInitiateHandover, common.Address(bob))
	assert.ErrorIs(t, err, ownable.ErrUnauthorized)

	out, err := rt.call(t, alice, methodPending)
	require.NoError(t, err)
	var pending struct {
		Arg0 common.Address
		Arg1 uint64
		Arg2 bool
		Arg3 uint64
	}
	require.NoError(t, methodPending.DecodeOutput(out.Data, &pending))
	assert.Zero(t, pending.Arg1)
}
