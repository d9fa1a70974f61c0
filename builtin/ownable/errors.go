// Copyright (c) 2026 The Bao Ownership developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ownable

import "github.com/pkg/errors"

// Failure kinds of the ownership transition protocols. Every one of them
// aborts the whole call; no partial state change ever survives.
var (
	// ErrUnauthorized caller lacks the owner/target credential required
	// by the entry point.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAlreadyInitialized the one-time initialization has already run
	// for the lifetime of this storage.
	ErrAlreadyInitialized = errors.New("already initialized")

	// ErrCannotCompleteTransfer transfer completion conditions not met:
	// mismatched target, missing validation, or current time outside the
	// permitted window.
	ErrCannotCompleteTransfer = errors.New("cannot complete transfer")

	// ErrCannotCompleteHandover handover completion conditions not met.
	ErrCannotCompleteHandover = errors.New("cannot complete handover")

	// ErrNoHandoverInitiated no transition is pending.
	ErrNoHandoverInitiated = errors.New("no handover initiated")

	// ErrHandoverExpired the pending transition's window has passed, or
	// the variant forbids validation this late.
	ErrHandoverExpired = errors.New("handover expired")

	// ErrCannotRenounceYet renunciation attempted before the pause
	// boundary has elapsed.
	ErrCannotRenounceYet = errors.New("cannot renounce yet")
)
