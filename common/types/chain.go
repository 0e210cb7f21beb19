package types

import (
	"context"
	"math/big"
)

// NetworkConfig holds the configuration for a single read network.
//
// Fields:
// - Name: the human readable name of the network.
// - ChainType: the type of the chain.
// - ChainID: the unique identifier for the chain.
// - RpcUrl: the URL for the chain's JSON-RPC endpoint.
// - TokenAddress: the stablecoin contract address on this network.
type NetworkConfig struct {
	Name         string
	ChainType    ChainType
	ChainID      uint64
	RpcUrl       string
	TokenAddress string
}

// BalanceProvider provides token balance reads.
type BalanceProvider interface {
	// GetTokenBalance gets the token balance of an address.
	//
	// Parameters:
	// - ctx: the context for managing the request.
	// - address: the holder address.
	// - tokenAddress: the token contract address, empty for the native coin.
	//
	// Returns:
	// - *big.Int: the balance in base units.
	// - error: an error if the balance read fails.
	GetTokenBalance(ctx context.Context, address string, tokenAddress string) (*big.Int, error)
}

// Chain is a read-only handle on one configured network.
type Chain interface {
	BalanceProvider

	// Config returns the network configuration the chain was built from.
	Config() *NetworkConfig

	// Close releases the underlying connection.
	Close()
}

// ChainRegistry manages read handles for multiple networks.
type ChainRegistry interface {
	// Add creates a chain for config and stores it under its chain ID.
	//
	// Parameters:
	// - ctx: the context for managing the request.
	// - config: the configuration for the chain to add.
	//
	// Returns:
	// - error: an error if adding the chain fails.
	Add(ctx context.Context, config *NetworkConfig) error

	// Get retrieves a chain by its chain ID, nil if absent.
	Get(chainID uint64) Chain

	// Remove closes and removes a chain by its chain ID.
	Remove(chainID uint64)

	// Close closes every chain in the registry.
	Close()
}
