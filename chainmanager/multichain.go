package chainmanager

import (
	"context"
	"math/big"

	commonerrors "github.com/ClipFinance/xchain-mint/common/errors"
	"github.com/ClipFinance/xchain-mint/common/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// MultichainClient is a read-only client over a fixed set of networks.
type MultichainClient struct {
	registry types.ChainRegistry
	logger   *logrus.Logger
}

// NewMultichainClient builds a read client for every network. If any network
// fails, the chains built so far are closed and the error is returned.
//
// Parameters:
// - ctx: the context for managing the construction.
// - factory: the chain factory used to build each network handle.
// - networks: the networks to read from.
// - logger: the logger for logging purposes.
//
// Returns:
// - *MultichainClient: the client.
// - error: an error if any network could not be initialized.
func NewMultichainClient(ctx context.Context, factory ChainCreator, networks []*types.NetworkConfig, logger *logrus.Logger) (*MultichainClient, error) {
	if len(networks) == 0 {
		return nil, errors.Wrap(commonerrors.ErrInvalidConfig, "no networks configured")
	}

	registry := NewChainRegistry(factory, logger)
	for _, network := range networks {
		if err := registry.Add(ctx, network); err != nil {
			registry.Close()
			return nil, err
		}
	}

	return &MultichainClient{
		registry: registry,
		logger:   logger,
	}, nil
}

// UnifiedErc20Balance reads the balance of account on every deployment of
// mapping and sums them. Networks are read one after another.
//
// Parameters:
// - ctx: the context for managing the request.
// - account: the holder.
// - mapping: the token deployments to read.
//
// Returns:
// - *types.UnifiedBalance: the aggregated balance with per-chain breakdown.
// - error: an error if any deployment cannot be read.
func (c *MultichainClient) UnifiedErc20Balance(ctx context.Context, account common.Address, mapping *types.TokenMapping) (*types.UnifiedBalance, error) {
	total := new(big.Int)
	deployments := mapping.Deployments()
	breakdown := make([]types.ChainBalance, 0, len(deployments))

	for _, d := range deployments {
		chain := c.registry.Get(d.ChainID)
		if chain == nil {
			return nil, errors.Wrapf(commonerrors.ErrChainNotFound, "chain %d", d.ChainID)
		}

		amount, err := chain.GetTokenBalance(ctx, account.Hex(), d.Address.Hex())
		if err != nil {
			c.logger.WithFields(logrus.Fields{
				"chainId": d.ChainID,
				"token":   d.Address.Hex(),
			}).WithError(err).Warn("Failed to read token balance")
			return nil, errors.Wrapf(err, "failed to read %s balance on chain %d", mapping.Symbol(), d.ChainID)
		}

		total.Add(total, amount)
		breakdown = append(breakdown, types.ChainBalance{
			ChainID:      d.ChainID,
			TokenAddress: d.Address,
			Amount:       amount,
		})
	}

	return &types.UnifiedBalance{
		Balance:   total,
		Decimals:  mapping.Decimals(),
		Breakdown: breakdown,
	}, nil
}

// Close releases every network handle.
func (c *MultichainClient) Close() {
	c.registry.Close()
}
