// Copyright (c) 2026 The Bao Ownership developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ownable implements the ownership transition state machines.
//
// Three variants share one shape. All of them begin with the one-shot
// deployment protocol: the deployer initializes as provisional owner and
// has a short window to complete the single unprotected transfer to the
// recorded final owner. What differs is what is possible afterwards:
//
//   - Ownable: nothing. Ownership is locked to its final owner forever.
//   - Handover: a two-step protocol (initiate, accept, complete).
//   - Transferrable: a three-step protocol (initiate, validate, complete)
//     whose completion is folded into transferOwnership.
//
// Every variant keeps at most one pending transition record at a time;
// initiating anew silently supersedes the old record. Transfer to the zero
// address is renunciation: it runs the same machine, the zero address is
// considered pre-validated, and completion is terminal.
package ownable

import (
	"github.com/baofinance/ownership/bao"
	"github.com/baofinance/ownership/state"
)

var pendingKey = bao.Blake2b([]byte("pending"))

type core struct {
	addr  bao.Address
	state *state.State
}

// Owner returns the current owner.
func (c *core) Owner() (bao.Address, error) {
	return c.state.GetOwner(c.addr)
}

// Initialized returns whether Initialize has ever run.
func (c *core) Initialized() (bool, error) {
	return c.state.Initialized(c.addr)
}

// Pending returns the in-flight transition record, empty if none.
func (c *core) Pending() (*Pending, error) {
	var p Pending
	if err := c.state.GetStructuredStorage(c.addr, pendingKey, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *core) setPending(p *Pending) error {
	return c.state.SetStructuredStorage(c.addr, pendingKey, p)
}

func (c *core) clearPending() error {
	return c.setPending(&Pending{})
}

// Initialize makes the caller the provisional owner and records finalOwner
// as the target of the one permitted unprotected transfer, open for
// bao.DeployWindow. It succeeds at most once per storage lifetime; the
// latch survives even renunciation.
//
// When the deployer initializes ownership to itself it already controls
// both roles, so the recorded transfer is free: its target is decided at
// completion time instead.
func (c *core) Initialize(caller, finalOwner bao.Address, now uint64) error {
	inited, err := c.Initialized()
	if err != nil {
		return err
	}
	if inited {
		return ErrAlreadyInitialized
	}
	if err := c.state.SetInitialized(c.addr); err != nil {
		return err
	}
	if err := c.state.SetOwner(c.addr, caller); err != nil {
		return err
	}
	return c.setPending(&Pending{
		Target:     finalOwner,
		CreatedAt:  now,
		PauseUntil: now, // no cool-down during deployment
		ExpiresAt:  now + bao.DeployWindow,
		Validated:  true,
		Deploy:     true,
		Free:       finalOwner == caller,
	})
}

// completeDeploy performs the one unprotected transfer. The caller has
// already been authenticated as the current owner and p is known to be a
// deploy record.
func (c *core) completeDeploy(confirm bao.Address, now uint64, p *Pending) error {
	if !p.Free && confirm != p.Target {
		return ErrCannotCompleteTransfer
	}
	if now >= p.ExpiresAt {
		return ErrCannotCompleteTransfer
	}
	if err := c.state.SetOwner(c.addr, confirm); err != nil {
		return err
	}
	return c.clearPending()
}

// initiate opens (or reopens) a multi-step transition window. Re-initiating
// restarts the clock; a different target silently supersedes the previous
// record. The zero target (renunciation) is pre-validated since no one can
// accept on its behalf.
func (c *core) initiate(caller, target bao.Address, now, window uint64) error {
	owner, err := c.Owner()
	if err != nil {
		return err
	}
	if caller != owner {
		return ErrUnauthorized
	}
	return c.setPending(&Pending{
		Target:     target,
		CreatedAt:  now,
		PauseUntil: bao.PauseOf(now, window),
		ExpiresAt:  now + window,
		Validated:  target.IsZero(),
	})
}

// validate marks the pending record as validated, proving the target
// controls its address. beforePauseOnly restricts validation to the first
// half of the window (the three-step rule).
func (c *core) validate(caller bao.Address, now uint64, beforePauseOnly bool) error {
	p, err := c.Pending()
	if err != nil {
		return err
	}
	if p.IsEmpty() || p.Deploy {
		return ErrNoHandoverInitiated
	}
	if caller != p.Target {
		return ErrUnauthorized
	}
	if now >= p.ExpiresAt {
		return ErrHandoverExpired
	}
	if beforePauseOnly && now > p.PauseUntil {
		return ErrHandoverExpired
	}
	p.Validated = true
	return c.setPending(p)
}

// cancel clears the pending record. The owner or the nominated target may
// cancel; with nothing in flight the call fails with ErrNoHandoverInitiated
// regardless of who asks.
func (c *core) cancel(caller bao.Address) error {
	p, err := c.Pending()
	if err != nil {
		return err
	}
	if p.IsEmpty() || p.Deploy {
		return ErrNoHandoverInitiated
	}
	owner, err := c.Owner()
	if err != nil {
		return err
	}
	if caller != owner && caller != p.Target {
		return ErrUnauthorized
	}
	return c.clearPending()
}

// complete finishes a validated multi-step transition. The caller has
// already been authenticated as the current owner and p is known to be a
// live multi-step record. cannotComplete is the variant's failure kind.
func (c *core) complete(target bao.Address, now uint64, p *Pending, cannotComplete error) error {
	if target != p.Target {
		return cannotComplete
	}
	if now <= p.PauseUntil {
		if target.IsZero() {
			return ErrCannotRenounceYet
		}
		return cannotComplete
	}
	if now >= p.ExpiresAt {
		return cannotComplete
	}
	if !p.Validated {
		return cannotComplete
	}
	if err := c.state.SetOwner(c.addr, target); err != nil {
		return err
	}
	return c.clearPending()
}

func (c *core) requireOwner(caller bao.Address) error {
	owner, err := c.Owner()
	if err != nil {
		return err
	}
	if caller != owner {
		return ErrUnauthorized
	}
	return nil
}

// Ownable is the one-shot-then-locked variant.
type Ownable struct {
	core
}

// New creates an Ownable bound to the given contract address.
func New(addr bao.Address, st *state.State) *Ownable {
	return &Ownable{core{addr, st}}
}

// TransferOwnership performs the one permitted unprotected transfer.
// Outside the deployment window, with a mismatched target, or once the
// transfer has already happened, it fails with ErrCannotCompleteTransfer;
// there is no way back after that.
func (o *Ownable) TransferOwnership(caller, confirm bao.Address, now uint64) error {
	if err := o.requireOwner(caller); err != nil {
		return err
	}
	p, err := o.Pending()
	if err != nil {
		return err
	}
	if p.IsEmpty() || !p.Deploy {
		return ErrCannotCompleteTransfer
	}
	return o.completeDeploy(confirm, now, p)
}

// Handover is the two-step variant: the owner initiates a handover to a
// target, the target accepts any time before expiry, and the owner
// completes once the pause has elapsed.
type Handover struct {
	Ownable
	window uint64
}

// NewHandover creates a Handover bound to the given contract address.
// A zero window selects bao.HandoverWindow.
func NewHandover(addr bao.Address, st *state.State, window uint64) *Handover {
	if window == 0 {
		window = bao.HandoverWindow
	}
	return &Handover{Ownable{core{addr, st}}, window}
}

// Window returns the handover validity window.
func (h *Handover) Window() uint64 {
	return h.window
}

// InitiateHandover opens a handover window for target.
func (h *Handover) InitiateHandover(caller, target bao.Address, now uint64) error {
	return h.initiate(caller, target, now, h.window)
}

// AcceptHandover marks the handover validated. Only the nominated target,
// only before expiry.
func (h *Handover) AcceptHandover(caller bao.Address, now uint64) error {
	return h.validate(caller, now, false)
}

// CancelHandover clears the pending handover.
func (h *Handover) CancelHandover(caller bao.Address) error {
	return h.cancel(caller)
}

// CompleteHandover finishes an accepted handover within the second half of
// the window.
func (h *Handover) CompleteHandover(caller, target bao.Address, now uint64) error {
	if err := h.requireOwner(caller); err != nil {
		return err
	}
	p, err := h.Pending()
	if err != nil {
		return err
	}
	if p.IsEmpty() || p.Deploy {
		return ErrNoHandoverInitiated
	}
	return h.complete(target, now, p, ErrCannotCompleteHandover)
}

// Transferrable is the three-step variant. Completion is folded into
// TransferOwnership: while the deployment record is live that performs the
// one-shot transfer, afterwards it completes a validated three-step
// transfer.
type Transferrable struct {
	Ownable
}

// NewTransferrable creates a Transferrable bound to the given contract
// address.
func NewTransferrable(addr bao.Address, st *state.State) *Transferrable {
	return &Transferrable{Ownable{core{addr, st}}}
}

// InitiateTransfer opens a transfer window for target. The first half of
// the window accepts validation only, the second half completion only.
func (t *Transferrable) InitiateTransfer(caller, target bao.Address, now uint64) error {
	return t.initiate(caller, target, now, bao.TransferWindow)
}

// ValidateTransfer marks the transfer validated. Only the nominated
// target, and only before the pause boundary.
func (t *Transferrable) ValidateTransfer(caller bao.Address, now uint64) error {
	return t.validate(caller, now, true)
}

// CancelTransfer clears the pending transfer.
func (t *Transferrable) CancelTransfer(caller bao.Address) error {
	return t.cancel(caller)
}

// TransferOwnership completes either the one-shot deployment transfer or a
// validated three-step transfer, whichever is pending.
func (t *Transferrable) TransferOwnership(caller, target bao.Address, now uint64) error {
	if err := t.requireOwner(caller); err != nil {
		return err
	}
	p, err := t.Pending()
	if err != nil {
		return err
	}
	if p.IsEmpty() {
		return ErrCannotCompleteTransfer
	}
	if p.Deploy {
		return t.completeDeploy(target, now, p)
	}
	return t.complete(target, now, p, ErrCannotCompleteTransfer)
}
