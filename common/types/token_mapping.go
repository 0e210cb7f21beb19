package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// Deployment is the address of a token contract on one chain.
type Deployment struct {
	ChainID uint64
	Address common.Address
}

// TokenMapping maps chain IDs to the contract of one logical asset.
// It is immutable once built.
type TokenMapping struct {
	symbol      string
	decimals    uint8
	deployments []Deployment
}

// NewTokenMapping builds a mapping for symbol across deployments.
//
// Parameters:
// - symbol: the asset symbol, e.g. USDC.
// - decimals: the decimal base shared by every deployment.
// - deployments: the per-chain contracts, in the order balances are read.
//
// Returns:
// - *TokenMapping: the mapping.
// - error: an error if deployments is empty, a chain repeats, or an address is zero.
func NewTokenMapping(symbol string, decimals uint8, deployments ...Deployment) (*TokenMapping, error) {
	if len(deployments) == 0 {
		return nil, errors.New("token mapping needs at least one deployment")
	}

	seen := make(map[uint64]struct{}, len(deployments))
	out := make([]Deployment, 0, len(deployments))
	for _, d := range deployments {
		if d.ChainID == 0 {
			return nil, errors.New("deployment chain id is zero")
		}
		if d.Address == (common.Address{}) {
			return nil, errors.Errorf("deployment on chain %d has zero address", d.ChainID)
		}
		if _, ok := seen[d.ChainID]; ok {
			return nil, errors.Errorf("duplicate deployment on chain %d", d.ChainID)
		}
		seen[d.ChainID] = struct{}{}
		out = append(out, d)
	}

	return &TokenMapping{
		symbol:      symbol,
		decimals:    decimals,
		deployments: out,
	}, nil
}

// Symbol returns the asset symbol.
func (m *TokenMapping) Symbol() string {
	return m.symbol
}

// Decimals returns the decimal base of the asset.
func (m *TokenMapping) Decimals() uint8 {
	return m.decimals
}

// Deployments returns a copy of the deployments in mapping order.
func (m *TokenMapping) Deployments() []Deployment {
	out := make([]Deployment, len(m.deployments))
	copy(out, m.deployments)
	return out
}

// AddressOn returns the token contract on chainID.
func (m *TokenMapping) AddressOn(chainID uint64) (common.Address, bool) {
	for _, d := range m.deployments {
		if d.ChainID == chainID {
			return d.Address, true
		}
	}
	return common.Address{}, false
}

// ChainIDs returns the mapped chain IDs in mapping order.
func (m *TokenMapping) ChainIDs() []uint64 {
	ids := make([]uint64, 0, len(m.deployments))
	for _, d := range m.deployments {
		ids = append(ids, d.ChainID)
	}
	return ids
}
