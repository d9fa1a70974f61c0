// Copyright (c) 2026 The Bao Ownership developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bao

// Constants of the ownership transition protocols. All durations are in
// seconds, measured against block time. Windows are deliberately hours or
// days long so that the small timestamp drift a block producer can inject
// never matters.
const (
	// DeployWindow is how long after initialization the one permitted
	// unprotected ownership transfer stays open.
	DeployWindow uint64 = 3600 // 1 hour

	// HandoverWindow is the default validity window of a two-step
	// ownership handover.
	HandoverWindow uint64 = 2 * 24 * 3600 // 48 hours

	// TransferWindow is the validity window of a three-step ownership
	// transfer. The first half accepts validation only, the second half
	// accepts completion only.
	TransferWindow uint64 = 4 * 24 * 3600 // 4 days
)

// PauseOf returns the completion pause boundary for a transition window
// opened at createdAt: completion is forbidden until the first half of the
// window has elapsed.
func PauseOf(createdAt, window uint64) uint64 {
	return createdAt + window/2
}
