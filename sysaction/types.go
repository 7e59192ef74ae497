// Package sysaction implements the action protocol of the vault system.
//
// Every boundary operation arrives as a JSON-encoded SysAction envelope. The
// sequencer decodes the envelope and Execute dispatches it to the handler
// registered for its kind (vault, ledger, access or registry).
package sysaction

import "encoding/json"

// ActionKind identifies the type of system action.
type ActionKind string

const (
	// Staking vault
	ActionVaultStake   ActionKind = "VAULT_STAKE"
	ActionVaultUnstake ActionKind = "VAULT_UNSTAKE"
	ActionVaultClaim   ActionKind = "VAULT_CLAIM"

	// Access & pause controller
	ActionAccessPause             ActionKind = "ACCESS_PAUSE"
	ActionAccessWithdraw          ActionKind = "ACCESS_WITHDRAW"
	ActionAccessSetCost           ActionKind = "ACCESS_SET_COST"
	ActionAccessSetMaxMint        ActionKind = "ACCESS_SET_MAX_MINT"
	ActionAccessTransferOwnership ActionKind = "ACCESS_TRANSFER_OWNERSHIP"

	// Reward ledger
	ActionLedgerSetController ActionKind = "LEDGER_SET_CONTROLLER"
	ActionLedgerMint          ActionKind = "LEDGER_MINT"
	ActionLedgerTransfer      ActionKind = "LEDGER_TRANSFER"

	// Token registry
	ActionRegistryMint              ActionKind = "REGISTRY_MINT"
	ActionRegistryApprove           ActionKind = "REGISTRY_APPROVE"
	ActionRegistrySetApprovalForAll ActionKind = "REGISTRY_SET_APPROVAL_FOR_ALL"
	ActionRegistryTransfer          ActionKind = "REGISTRY_TRANSFER"
)

// SysAction is the top-level envelope of every action.
type SysAction struct {
	Action  ActionKind      `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// TokenIDsPayload is the payload for VAULT_STAKE / VAULT_UNSTAKE / VAULT_CLAIM.
type TokenIDsPayload struct {
	TokenIDs []uint64 `json:"token_ids"`
}

// PausePayload is the payload for ACCESS_PAUSE. State is 1 (paused) or 2 (active).
type PausePayload struct {
	State uint8 `json:"state"`
}

// CostPayload is the payload for ACCESS_SET_COST. Cost is a decimal wei amount.
type CostPayload struct {
	Cost string `json:"cost"`
}

// MaxMintPayload is the payload for ACCESS_SET_MAX_MINT.
type MaxMintPayload struct {
	MaxMintAmountPerTx int64 `json:"max_mint_amount_per_tx"`
}

// OwnershipPayload is the payload for ACCESS_TRANSFER_OWNERSHIP.
type OwnershipPayload struct {
	NewOwner string `json:"new_owner"`
}

// ControllerPayload is the payload for LEDGER_SET_CONTROLLER.
type ControllerPayload struct {
	Controller string `json:"controller"`
	Enabled    bool   `json:"enabled"`
}

// AmountPayload is the payload for LEDGER_MINT and LEDGER_TRANSFER.
type AmountPayload struct {
	To     string `json:"to"`
	Amount string `json:"amount"`
}

// CollectionMintPayload is the payload for REGISTRY_MINT.
type CollectionMintPayload struct {
	Amount uint64 `json:"amount"`
}

// ApprovePayload is the payload for REGISTRY_APPROVE.
type ApprovePayload struct {
	To      string `json:"to"`
	TokenID uint64 `json:"token_id"`
}

// ApprovalForAllPayload is the payload for REGISTRY_SET_APPROVAL_FOR_ALL.
type ApprovalForAllPayload struct {
	Operator string `json:"operator"`
	Approved bool   `json:"approved"`
}

// TransferPayload is the payload for REGISTRY_TRANSFER.
type TransferPayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	TokenID uint64 `json:"token_id"`
}
