package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// PaymentInfo describes the fee the execution node charges for an intent.
//
// Fields:
// - ChainID: the chain the fee is taken on.
// - Token: the fee token symbol.
// - TokenAddress: the fee token contract.
// - Amount: the fee in token base units.
type PaymentInfo struct {
	ChainID      uint64         `json:"chainId"`
	Token        string         `json:"token"`
	TokenAddress common.Address `json:"tokenAddress"`
	Amount       *big.Int       `json:"tokenAmount"`
}

// Quote is the node's cost and hash descriptor for an intent.
// IntentHash must be signed by the account owner before execution.
type Quote struct {
	IntentHash  common.Hash `json:"itxHash"`
	Intent      Intent      `json:"itx"`
	PaymentInfo PaymentInfo `json:"paymentInfo"`
	ExpiresAt   int64       `json:"expiresAt,omitempty"`
}

// ExecuteResponse identifies a submitted intent. It does not confirm settlement.
type ExecuteResponse struct {
	ExecutionHash common.Hash `json:"itxHash"`
}
