package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ChainBalance is the balance of one token deployment.
type ChainBalance struct {
	ChainID      uint64         `json:"chainId"`
	TokenAddress common.Address `json:"tokenAddress"`
	Amount       *big.Int       `json:"amount"`
}

// UnifiedBalance is one logical asset summed over every mapped network.
// All deployments share Decimals.
type UnifiedBalance struct {
	Balance   *big.Int       `json:"balance"`
	Decimals  uint8          `json:"decimals"`
	Breakdown []ChainBalance `json:"breakdown"`
}
