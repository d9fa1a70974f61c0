// Copyright (c) 2026 The Bao Ownership developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import "github.com/baofinance/ownership/abi"

// Method descriptors shared by the implementations. Their canonical
// signatures are the wire protocol.
var (
	methodOwner       = abi.MustNewMethod("owner", "", "address")
	methodPending     = abi.MustNewMethod("pending", "", "address,uint64,bool,uint64")
	methodInitialize  = abi.MustNewMethod("initialize", "address", "")
	methodTransferOwn = abi.MustNewMethod("transferOwnership", "address", "")

	methodInitiateHandover = abi.MustNewMethod("initiateOwnershipHandover", "address", "")
	methodCancelHandover   = abi.MustNewMethod("cancelOwnershipHandover", "", "")
	methodAcceptHandover   = abi.MustNewMethod("acceptOwnershipHandover", "", "")
	methodCompleteHandover = abi.MustNewMethod("completeOwnershipHandover", "address", "")

	methodInitiateTransfer = abi.MustNewMethod("initiateOwnershipTransfer", "address", "")
	methodValidateTransfer = abi.MustNewMethod("validateOwnershipTransfer", "", "")
	methodCancelTransfer   = abi.MustNewMethod("cancelOwnershipTransfer", "", "")

	methodGrantRoles    = abi.MustNewMethod("grantRoles", "address,uint256", "")
	methodRevokeRoles   = abi.MustNewMethod("revokeRoles", "address,uint256", "")
	methodRenounceRoles = abi.MustNewMethod("renounceRoles", "uint256", "")
	methodRolesOf       = abi.MustNewMethod("rolesOf", "address", "uint256")
	methodHasAnyRole    = abi.MustNewMethod("hasAnyRole", "address,uint256", "bool")
	methodHasAllRoles   = abi.MustNewMethod("hasAllRoles", "address,uint256", "bool")

	methodSweep = abi.MustNewMethod("sweep", "address,address", "")

	methodBalanceOf   = abi.MustNewMethod("balanceOf", "address", "uint256")
	methodTotalSupply = abi.MustNewMethod("totalSupply", "", "uint256")
	methodTransfer    = abi.MustNewMethod("transfer", "address,uint256", "bool")
)

// Descriptors the inspection tooling encodes calls with.
var (
	MethodOwner   = methodOwner
	MethodPending = methodPending
	MethodRolesOf = methodRolesOf
)

// Events emitted by the implementations.
var (
	eventOwnershipTransferred = abi.MustNewEvent("OwnershipTransferred", "address*,address*")

	eventHandoverInitiated = abi.MustNewEvent("OwnershipHandoverInitiated", "address*")
	eventHandoverCanceled  = abi.MustNewEvent("OwnershipHandoverCanceled", "address*")
	eventHandoverAccepted  = abi.MustNewEvent("OwnershipHandoverAccepted", "address*")

	eventTransferInitiated = abi.MustNewEvent("OwnershipTransferInitiated", "address*")
	eventTransferCanceled  = abi.MustNewEvent("OwnershipTransferCanceled", "address*")
	eventTransferValidated = abi.MustNewEvent("OwnershipTransferValidated", "address*")

	eventRolesUpdated = abi.MustNewEvent("RolesUpdated", "address*,uint256")

	eventSwept = abi.MustNewEvent("Swept", "address*,address*,uint256")

	eventTransfer = abi.MustNewEvent("Transfer", "address*,address*,uint256")
)
